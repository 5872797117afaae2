// Package surrealdb provides a SurrealDB implementation of the
// [github.com/NikMakPak/timetravelstore/pkg/store.Store] interface using
// native SurrealQL.
//
// # CBOR Marshaling
//
// SurrealDB uses CBOR internally, so the connection is configured with the
// surrealcbor codec rather than the default marshaler. With it, typed IDs
// marshal to native RecordIDs (via their MarshalCBOR methods), time.Time
// values use SurrealDB's datetime format, and embedded review arrays round
// trip without loss. Without the codec, datetimes and RecordIDs are rejected
// by the server.
//
// # Schema
//
// SurrealDB creates tables on first insert, so Migrate only defines the
// unique indexes that back the catalog's name and email constraints. A
// violated index surfaces as an "already contains" query error, which this
// package wraps as
// [github.com/NikMakPak/timetravelstore/pkg/store.ErrConstraintViolation].
//
// All queries are parameterized with $name variables. User-provided values
// are never interpolated into query strings.
package surrealdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"github.com/NikMakPak/timetravelstore/pkg/models"
	"github.com/NikMakPak/timetravelstore/pkg/store"
)

// SurrealStore implements the Store interface using SurrealDB over WebSocket
// with the surrealcbor codec.
type SurrealStore struct {
	db       *surrealdb.DB
	ns       string
	database string
}

// NewSurrealStore connects to SurrealDB at wsURL and selects the given
// namespace and database. Credentials are optional; when empty the connection
// is used unauthenticated.
func NewSurrealStore(wsURL, namespace, database, username, password string) (*SurrealStore, error) {
	ctx := context.Background()

	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	conf := connection.NewConfig(u)

	// The custom codec is required for RecordID and time.Time round trips.
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	conn := gorillaws.New(conf)

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if username != "" && password != "" {
		if _, err := db.SignIn(ctx, map[string]any{
			"user": username,
			"pass": password,
		}); err != nil {
			return nil, fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := db.Use(ctx, namespace, database); err != nil {
		return nil, fmt.Errorf("failed to use namespace/database: %w", err)
	}

	return &SurrealStore{
		db:       db,
		ns:       namespace,
		database: database,
	}, nil
}

// Migrate defines the unique indexes behind the catalog's constraints.
// Tables themselves are created implicitly on first insert. DEFINE INDEX IF
// NOT EXISTS is idempotent, so Migrate is safe to run repeatedly.
func (s *SurrealStore) Migrate(ctx context.Context) error {
	statements := []string{
		"DEFINE INDEX IF NOT EXISTS unique_category_name ON TABLE categories COLUMNS name UNIQUE",
		"DEFINE INDEX IF NOT EXISTS unique_country_name ON TABLE countries COLUMNS name UNIQUE",
		"DEFINE INDEX IF NOT EXISTS unique_travel_name ON TABLE travels COLUMNS name UNIQUE",
		"DEFINE INDEX IF NOT EXISTS unique_user_email ON TABLE users COLUMNS email UNIQUE",
	}
	for _, stmt := range statements {
		if _, err := surrealdb.Query[any](ctx, s.db, stmt, nil); err != nil {
			return fmt.Errorf("failed to define index: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SurrealStore) Close() error {
	return s.db.Close(context.Background())
}

// handleNotFound reports whether err means the record does not exist.
// The driver surfaces absence as unmarshal or cardinality errors rather than
// a sentinel, so this matches on the known message fragments.
func handleNotFound(err error) error {
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "Expected a single or multiple results but got 0") ||
			strings.Contains(errStr, "cannot unmarshal array into Go value") {
			return nil
		}
	}
	return err
}

// translateErr maps unique index violations onto the store-level sentinel.
func translateErr(err error) error {
	if err != nil && strings.Contains(err.Error(), "already contains") {
		return fmt.Errorf("%w: %v", store.ErrConstraintViolation, err)
	}
	return err
}

// Category operations

func (s *SurrealStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID.IsZero() {
		category.ID = models.NewCategoryID()
	}
	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	_, err := surrealdb.Create[models.Category](ctx, s.db, "categories", category)
	if err != nil {
		return translateErr(fmt.Errorf("failed to create category: %w", err))
	}
	return nil
}

func (s *SurrealStore) GetCategory(ctx context.Context, id models.CategoryID) (*models.Category, error) {
	category, err := surrealdb.Select[models.Category](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *SurrealStore) UpdateCategory(ctx context.Context, id models.CategoryID, patch models.CategoryPatch) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return nil
	}
	patch.Apply(category)
	category.UpdatedAt = time.Now()

	_, err = surrealdb.Update[models.Category](ctx, s.db, id.RecordID(), category)
	if err != nil {
		return translateErr(fmt.Errorf("failed to update category: %w", err))
	}
	return nil
}

func (s *SurrealStore) DeleteCategory(ctx context.Context, id models.CategoryID) error {
	_, err := surrealdb.Delete[models.Category](ctx, s.db, id.RecordID())
	return err
}

// Country operations

func (s *SurrealStore) CreateCountry(ctx context.Context, country *models.Country) error {
	if country.ID.IsZero() {
		country.ID = models.NewCountryID()
	}
	now := time.Now()
	if country.CreatedAt.IsZero() {
		country.CreatedAt = now
	}
	country.UpdatedAt = now

	_, err := surrealdb.Create[models.Country](ctx, s.db, "countries", country)
	if err != nil {
		return translateErr(fmt.Errorf("failed to create country: %w", err))
	}
	return nil
}

func (s *SurrealStore) GetCountry(ctx context.Context, id models.CountryID) (*models.Country, error) {
	country, err := surrealdb.Select[models.Country](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return country, nil
}

func (s *SurrealStore) UpdateCountry(ctx context.Context, id models.CountryID, patch models.CountryPatch) error {
	country, err := s.GetCountry(ctx, id)
	if err != nil {
		return err
	}
	if country == nil {
		return nil
	}
	patch.Apply(country)
	country.UpdatedAt = time.Now()

	_, err = surrealdb.Update[models.Country](ctx, s.db, id.RecordID(), country)
	if err != nil {
		return translateErr(fmt.Errorf("failed to update country: %w", err))
	}
	return nil
}

func (s *SurrealStore) DeleteCountry(ctx context.Context, id models.CountryID) error {
	_, err := surrealdb.Delete[models.Country](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) FindCountriesByName(ctx context.Context, name string) ([]*models.Country, error) {
	query := "SELECT * FROM countries WHERE name = $name"
	vars := map[string]any{
		"name": name,
	}
	result, err := surrealdb.Query[[]models.Country](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to find countries: %w", err)
	}

	var countries []*models.Country
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			countries = append(countries, &(*result)[0].Result[i])
		}
	}
	return countries, nil
}

// Travel operations

func (s *SurrealStore) CreateTravel(ctx context.Context, travel *models.Travel) error {
	if travel.ID.IsZero() {
		travel.ID = models.NewTravelID()
	}
	travel.Reviews = travel.Reviews.EnsureIDs()
	now := time.Now()
	if travel.CreatedAt.IsZero() {
		travel.CreatedAt = now
	}
	travel.UpdatedAt = now

	_, err := surrealdb.Create[models.Travel](ctx, s.db, "travels", travel)
	if err != nil {
		return translateErr(fmt.Errorf("failed to create travel: %w", err))
	}
	return nil
}

func (s *SurrealStore) GetTravel(ctx context.Context, id models.TravelID) (*models.Travel, error) {
	travel, err := surrealdb.Select[models.Travel](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get travel: %w", err)
	}
	return travel, nil
}

func (s *SurrealStore) UpdateTravel(ctx context.Context, id models.TravelID, patch models.TravelPatch) error {
	travel, err := s.GetTravel(ctx, id)
	if err != nil {
		return err
	}
	if travel == nil {
		return nil
	}
	patch.Apply(travel)
	travel.Reviews = travel.Reviews.EnsureIDs()
	travel.UpdatedAt = time.Now()

	_, err = surrealdb.Update[models.Travel](ctx, s.db, id.RecordID(), travel)
	if err != nil {
		return translateErr(fmt.Errorf("failed to update travel: %w", err))
	}
	return nil
}

func (s *SurrealStore) DeleteTravel(ctx context.Context, id models.TravelID) error {
	_, err := surrealdb.Delete[models.Travel](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListTravelsByCountry(ctx context.Context, countryID models.CountryID) ([]*models.Travel, error) {
	query := "SELECT * FROM travels WHERE country_id = $country_id ORDER BY name"
	vars := map[string]any{
		"country_id": countryID, // marshals to a RecordID
	}
	result, err := surrealdb.Query[[]models.Travel](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list travels: %w", err)
	}

	var travels []*models.Travel
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			travels = append(travels, &(*result)[0].Result[i])
		}
	}
	return travels, nil
}

// User operations

func (s *SurrealStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := surrealdb.Create[models.User](ctx, s.db, "users", user)
	if err != nil {
		return translateErr(fmt.Errorf("failed to create user: %w", err))
	}
	return nil
}

func (s *SurrealStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	user, err := surrealdb.Select[models.User](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *SurrealStore) UpdateUser(ctx context.Context, id models.UserID, patch models.UserPatch) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	patch.Apply(user)
	user.UpdatedAt = time.Now()

	_, err = surrealdb.Update[models.User](ctx, s.db, id.RecordID(), user)
	if err != nil {
		return translateErr(fmt.Errorf("failed to update user: %w", err))
	}
	return nil
}

func (s *SurrealStore) DeleteUser(ctx context.Context, id models.UserID) error {
	_, err := surrealdb.Delete[models.User](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) FindUsersByEmail(ctx context.Context, email string) ([]*models.User, error) {
	query := "SELECT * FROM users WHERE email = $email"
	vars := map[string]any{
		"email": email,
	}
	result, err := surrealdb.Query[[]models.User](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	var users []*models.User
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			users = append(users, &(*result)[0].Result[i])
		}
	}
	return users, nil
}

// Order operations

func (s *SurrealStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = models.NewOrderID()
	}
	now := time.Now()
	if order.OrderDate.IsZero() {
		order.OrderDate = now
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	_, err := surrealdb.Create[models.Order](ctx, s.db, "orders", order)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *SurrealStore) GetOrder(ctx context.Context, id models.OrderID) (*models.Order, error) {
	order, err := surrealdb.Select[models.Order](ctx, s.db, id.RecordID())
	if err != nil {
		if handleNotFound(err) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (s *SurrealStore) UpdateOrder(ctx context.Context, id models.OrderID, patch models.OrderPatch) error {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	patch.Apply(order)
	order.UpdatedAt = time.Now()

	_, err = surrealdb.Update[models.Order](ctx, s.db, id.RecordID(), order)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

func (s *SurrealStore) DeleteOrder(ctx context.Context, id models.OrderID) error {
	_, err := surrealdb.Delete[models.Order](ctx, s.db, id.RecordID())
	return err
}

func (s *SurrealStore) ListOrdersByUser(ctx context.Context, userID models.UserID) ([]*models.Order, error) {
	query := "SELECT * FROM orders WHERE user_id = $user_id ORDER BY order_date, created_at"
	vars := map[string]any{
		"user_id": userID, // marshals to a RecordID
	}
	result, err := surrealdb.Query[[]models.Order](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	var orders []*models.Order
	if result != nil && len(*result) > 0 {
		for i := range (*result)[0].Result {
			orders = append(orders, &(*result)[0].Result[i])
		}
	}
	return orders, nil
}
