package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"
)

// ErrInvalidID reports a malformed identifier supplied to a Parse*ID function.
// Callers detect it with errors.Is and translate it into a transport-level
// bad-request error.
var ErrInvalidID = errors.New("invalid identifier")

// recordIDTag is the CBOR tag number SurrealDB uses for record IDs.
const recordIDTag = 8

func unmarshalCBORID(data []byte, expectedTable string, target *uuid.UUID) error {
	if len(data) == 0 {
		return fmt.Errorf("empty CBOR data")
	}

	// Major type 6 is a CBOR tag; SurrealDB encodes record IDs as tag 8.
	majorType := data[0] >> 5
	if majorType != 6 {
		return fmt.Errorf("expected CBOR tag for RecordID, got major type %d", majorType)
	}

	var tag cbor.Tag
	if err := cbor.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("failed to unmarshal CBOR tag: %w", err)
	}

	if tag.Number != recordIDTag {
		return fmt.Errorf("expected RecordID tag (%d), got %d", recordIDTag, tag.Number)
	}

	arr, ok := tag.Content.([]any)
	if !ok || len(arr) != 2 {
		return fmt.Errorf("invalid RecordID format: expected [table, id] array")
	}

	table, ok := arr[0].(string)
	if !ok {
		return fmt.Errorf("invalid RecordID format: table name must be string")
	}

	if table != expectedTable {
		return fmt.Errorf("expected table %s, got %s", expectedTable, table)
	}

	idStr, ok := arr[1].(string)
	if !ok {
		return fmt.Errorf("invalid RecordID format: ID must be string")
	}

	parsedUUID, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("invalid UUID in RecordID: %w", err)
	}

	*target = parsedUUID
	return nil
}

func scanUUID(value any, target *uuid.UUID) error {
	if value == nil {
		*target = uuid.Nil
		return nil
	}

	switch v := value.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		*target = id
	case []byte:
		id, err := uuid.ParseBytes(v)
		if err != nil {
			return err
		}
		*target = id
	default:
		return fmt.Errorf("cannot scan type %T into UUID", value)
	}
	return nil
}

// CategoryID is a typed ID for categories
type CategoryID struct {
	uuid uuid.UUID
}

func NewCategoryID() CategoryID {
	return CategoryID{uuid: uuid.New()}
}

func NewCategoryIDFromUUID(id uuid.UUID) CategoryID {
	return CategoryID{uuid: id}
}

func ParseCategoryID(s string) (CategoryID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CategoryID{}, fmt.Errorf("%w: category ID %q: %v", ErrInvalidID, s, err)
	}
	return CategoryID{uuid: id}, nil
}

func (c CategoryID) UUID() uuid.UUID { return c.uuid }
func (c CategoryID) String() string  { return c.uuid.String() }
func (c CategoryID) IsZero() bool    { return c.uuid == uuid.Nil }

func (c CategoryID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{
		Table: "categories",
		ID:    c.uuid.String(),
	}
}

func (c CategoryID) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.uuid.String())
}

func (c *CategoryID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	c.uuid = id
	return nil
}

func (c CategoryID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  recordIDTag,
		Content: []any{"categories", c.uuid.String()},
	})
}

func (c *CategoryID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "categories", &c.uuid)
}

func (c CategoryID) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	return c.uuid.String(), nil
}

func (c *CategoryID) Scan(value any) error {
	return scanUUID(value, &c.uuid)
}

func (CategoryID) GormDataType() string { return "uuid" }

// CountryID is a typed ID for countries
type CountryID struct {
	uuid uuid.UUID
}

func NewCountryID() CountryID {
	return CountryID{uuid: uuid.New()}
}

func NewCountryIDFromUUID(id uuid.UUID) CountryID {
	return CountryID{uuid: id}
}

func ParseCountryID(s string) (CountryID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CountryID{}, fmt.Errorf("%w: country ID %q: %v", ErrInvalidID, s, err)
	}
	return CountryID{uuid: id}, nil
}

func (c CountryID) UUID() uuid.UUID { return c.uuid }
func (c CountryID) String() string  { return c.uuid.String() }
func (c CountryID) IsZero() bool    { return c.uuid == uuid.Nil }

func (c CountryID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{
		Table: "countries",
		ID:    c.uuid.String(),
	}
}

func (c CountryID) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.uuid.String())
}

func (c *CountryID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	c.uuid = id
	return nil
}

func (c CountryID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  recordIDTag,
		Content: []any{"countries", c.uuid.String()},
	})
}

func (c *CountryID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "countries", &c.uuid)
}

func (c CountryID) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	return c.uuid.String(), nil
}

func (c *CountryID) Scan(value any) error {
	return scanUUID(value, &c.uuid)
}

func (CountryID) GormDataType() string { return "uuid" }

// TravelID is a typed ID for travels
type TravelID struct {
	uuid uuid.UUID
}

func NewTravelID() TravelID {
	return TravelID{uuid: uuid.New()}
}

func NewTravelIDFromUUID(id uuid.UUID) TravelID {
	return TravelID{uuid: id}
}

func ParseTravelID(s string) (TravelID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TravelID{}, fmt.Errorf("%w: travel ID %q: %v", ErrInvalidID, s, err)
	}
	return TravelID{uuid: id}, nil
}

func (t TravelID) UUID() uuid.UUID { return t.uuid }
func (t TravelID) String() string  { return t.uuid.String() }
func (t TravelID) IsZero() bool    { return t.uuid == uuid.Nil }

func (t TravelID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{
		Table: "travels",
		ID:    t.uuid.String(),
	}
}

func (t TravelID) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.uuid.String())
}

func (t *TravelID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	t.uuid = id
	return nil
}

func (t TravelID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  recordIDTag,
		Content: []any{"travels", t.uuid.String()},
	})
}

func (t *TravelID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "travels", &t.uuid)
}

func (t TravelID) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.uuid.String(), nil
}

func (t *TravelID) Scan(value any) error {
	return scanUUID(value, &t.uuid)
}

func (TravelID) GormDataType() string { return "uuid" }

// UserID is a typed ID for users
type UserID struct {
	uuid uuid.UUID
}

func NewUserID() UserID {
	return UserID{uuid: uuid.New()}
}

func NewUserIDFromUUID(id uuid.UUID) UserID {
	return UserID{uuid: id}
}

func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("%w: user ID %q: %v", ErrInvalidID, s, err)
	}
	return UserID{uuid: id}, nil
}

func (u UserID) UUID() uuid.UUID { return u.uuid }
func (u UserID) String() string  { return u.uuid.String() }
func (u UserID) IsZero() bool    { return u.uuid == uuid.Nil }

func (u UserID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{
		Table: "users",
		ID:    u.uuid.String(),
	}
}

func (u UserID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.uuid.String())
}

func (u *UserID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	u.uuid = id
	return nil
}

func (u UserID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  recordIDTag,
		Content: []any{"users", u.uuid.String()},
	})
}

func (u *UserID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "users", &u.uuid)
}

func (u UserID) Value() (driver.Value, error) {
	if u.IsZero() {
		return nil, nil
	}
	return u.uuid.String(), nil
}

func (u *UserID) Scan(value any) error {
	return scanUUID(value, &u.uuid)
}

func (UserID) GormDataType() string { return "uuid" }

// OrderID is a typed ID for orders
type OrderID struct {
	uuid uuid.UUID
}

func NewOrderID() OrderID {
	return OrderID{uuid: uuid.New()}
}

func NewOrderIDFromUUID(id uuid.UUID) OrderID {
	return OrderID{uuid: id}
}

func ParseOrderID(s string) (OrderID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return OrderID{}, fmt.Errorf("%w: order ID %q: %v", ErrInvalidID, s, err)
	}
	return OrderID{uuid: id}, nil
}

func (o OrderID) UUID() uuid.UUID { return o.uuid }
func (o OrderID) String() string  { return o.uuid.String() }
func (o OrderID) IsZero() bool    { return o.uuid == uuid.Nil }

func (o OrderID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{
		Table: "orders",
		ID:    o.uuid.String(),
	}
}

func (o OrderID) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.uuid.String())
}

func (o *OrderID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	o.uuid = id
	return nil
}

func (o OrderID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  recordIDTag,
		Content: []any{"orders", o.uuid.String()},
	})
}

func (o *OrderID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "orders", &o.uuid)
}

func (o OrderID) Value() (driver.Value, error) {
	if o.IsZero() {
		return nil, nil
	}
	return o.uuid.String(), nil
}

func (o *OrderID) Scan(value any) error {
	return scanUUID(value, &o.uuid)
}

func (OrderID) GormDataType() string { return "uuid" }

// ReviewID is a typed ID for reviews. Reviews are embedded inside a Travel
// rather than stored in their own table, so the ID marshals as a plain string
// everywhere (JSON, CBOR, JSONB) instead of a SurrealDB RecordID.
type ReviewID struct {
	uuid uuid.UUID
}

func NewReviewID() ReviewID {
	return ReviewID{uuid: uuid.New()}
}

func NewReviewIDFromUUID(id uuid.UUID) ReviewID {
	return ReviewID{uuid: id}
}

func ParseReviewID(s string) (ReviewID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ReviewID{}, fmt.Errorf("%w: review ID %q: %v", ErrInvalidID, s, err)
	}
	return ReviewID{uuid: id}, nil
}

func (r ReviewID) UUID() uuid.UUID { return r.uuid }
func (r ReviewID) String() string  { return r.uuid.String() }
func (r ReviewID) IsZero() bool    { return r.uuid == uuid.Nil }

func (r ReviewID) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.uuid.String())
}

func (r *ReviewID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	r.uuid = id
	return nil
}

func (r ReviewID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(r.uuid.String())
}

func (r *ReviewID) UnmarshalCBOR(data []byte) error {
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("review ID must be a string: %w", err)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid UUID in review ID: %w", err)
	}
	r.uuid = id
	return nil
}
