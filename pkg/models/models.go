package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Category classifies travels (standard, promotional, VIP and so on).
// The name carries a uniqueness constraint.
type Category struct {
	ID        CategoryID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string     `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID.IsZero() {
		c.ID = NewCategoryID()
	}
	return nil
}

// Country is a destination a travel belongs to. The name carries a
// uniqueness constraint.
type Country struct {
	ID        CountryID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (c *Country) BeforeCreate(tx *gorm.DB) error {
	if c.ID.IsZero() {
		c.ID = NewCountryID()
	}
	return nil
}

// Review is a rating left by a user on a travel. Reviews live embedded in
// their Travel's reviews list, never in a table of their own. UserID is a
// soft reference: the user may have been deleted since.
type Review struct {
	ID     ReviewID `json:"id"`
	UserID UserID   `json:"user_id"`
	Text   string   `json:"text"`
	Rating int      `json:"rating"`
}

// Reviews is the ordered list of reviews embedded in a Travel. It maps to a
// JSONB column on PostgreSQL and a native array on SurrealDB.
type Reviews []Review

// Value implements the driver.Valuer interface for database storage
func (r Reviews) Value() (driver.Value, error) {
	if r == nil {
		r = Reviews{}
	}
	return json.Marshal(r)
}

// Scan implements the sql.Scanner interface for database retrieval
func (r *Reviews) Scan(value any) error {
	if value == nil {
		*r = Reviews{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot scan type %T into Reviews", value)
		}
		bytes = []byte(s)
	}
	return json.Unmarshal(bytes, r)
}

func (Reviews) GormDataType() string { return "jsonb" }

// Travel is a catalog offering: a trip to a given country and year (negative
// years are historical eras). CategoryID and CountryID are soft references,
// their existence is not checked at write time, and deleting the referenced
// record leaves them dangling. The name carries a uniqueness constraint.
type Travel struct {
	ID          TravelID   `gorm:"type:uuid;primary_key" json:"id"`
	Name        string     `gorm:"uniqueIndex;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	CategoryID  CategoryID `gorm:"type:uuid" json:"category_id"`
	CountryID   CountryID  `gorm:"type:uuid" json:"country_id"`
	Year        int        `json:"year"`
	Price       float64    `json:"price"`
	Reviews     Reviews    `gorm:"type:jsonb" json:"reviews"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (t *Travel) BeforeCreate(tx *gorm.DB) error {
	if t.ID.IsZero() {
		t.ID = NewTravelID()
	}
	return nil
}

// User is a customer account. The email carries a uniqueness constraint.
type User struct {
	ID        UserID    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID.IsZero() {
		u.ID = NewUserID()
	}
	return nil
}

// Order links a user to a travel they booked. OrderDate is set by the store
// at creation time. UserID and TravelID are soft references with no cascade:
// deleting the travel leaves the order dangling, and the query engine is
// responsible for excluding such orders from aggregations.
type Order struct {
	ID        OrderID   `gorm:"type:uuid;primary_key" json:"id"`
	UserID    UserID    `gorm:"type:uuid;index" json:"user_id"`
	TravelID  TravelID  `gorm:"type:uuid" json:"travel_id"`
	OrderDate time.Time `json:"order_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to generate ID if not set
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID.IsZero() {
		o.ID = NewOrderID()
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}
	return nil
}
