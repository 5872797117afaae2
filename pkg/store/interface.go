// Package store provides the data persistence layer abstraction for the
// timetravelstore application.
//
// The [Store] interface is the entity store: it owns the five collections
// (categories, countries, travels, users, orders) and every single-record
// operation on them, including identifier generation and partial-field merge
// semantics. Three implementations exist:
//
//   - [github.com/NikMakPak/timetravelstore/pkg/store/surrealdb.SurrealStore]:
//     document storage over the SurrealDB client with a CBOR codec
//   - [github.com/NikMakPak/timetravelstore/pkg/store/postgres.PostgresStore]:
//     GORM-backed PostgreSQL storage with JSONB for embedded reviews
//   - [github.com/NikMakPak/timetravelstore/pkg/store/memory.MemoryStore]:
//     mutex-guarded in-process maps, used by the test suites and for local
//     development without a database
//
// All implementations share the same observable contract, spelled out on the
// interface methods below; the package-level tests in pkg/query and
// pkg/store/memory exercise that contract.
package store

import (
	"context"
	"errors"

	"github.com/NikMakPak/timetravelstore/pkg/models"
)

// ErrConstraintViolation reports a write that collided with a uniqueness
// constraint (category/country/travel name, user email). Detect it with
// errors.Is; the wrapped message names the constraint.
var ErrConstraintViolation = errors.New("unique constraint violation")

// Store is the entity store: single-record persistence for the five
// collections, plus the lookup and scan primitives the query engine joins
// over.
//
// Shared contract across entity types:
//
//   - Create* generates a fresh identifier when the entity arrives without
//     one, fills CreatedAt/UpdatedAt (and Order.OrderDate), writes the full
//     record, and returns [ErrConstraintViolation] when a unique field
//     collides with an existing record. No existence check is performed on
//     soft-reference fields.
//   - Get* looks up by identifier and returns (nil, nil) when no record
//     exists; an error only signals a storage failure, never absence.
//   - Update* applies a partial patch: nil patch fields are untouched,
//     non-nil fields replace the stored value (including zero values).
//     Updating an ID that matches no record is a silent no-op. Merging is
//     read-modify-write with last-write-wins semantics; there is no version
//     token.
//   - Delete* removes the record if present and is a silent no-op otherwise.
//     Deletes never cascade: orders and embedded reviews that reference a
//     deleted record are left dangling.
//
// The Find*/List* methods are the join feet of the relational query engine:
// FindCountriesByName and FindUsersByEmail are exact-match lookups that
// return every matching record (so the caller can fail loudly on a
// uniqueness anomaly instead of picking one arbitrarily);
// ListTravelsByCountry returns travels ordered by name and ListOrdersByUser
// returns orders ordered by order date, giving the aggregations a
// deterministic scan order.
//
// All methods accept a context and respect its cancellation where the
// backend supports it.
type Store interface {
	// Category operations
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id models.CategoryID) (*models.Category, error)
	UpdateCategory(ctx context.Context, id models.CategoryID, patch models.CategoryPatch) error
	DeleteCategory(ctx context.Context, id models.CategoryID) error

	// Country operations
	CreateCountry(ctx context.Context, country *models.Country) error
	GetCountry(ctx context.Context, id models.CountryID) (*models.Country, error)
	UpdateCountry(ctx context.Context, id models.CountryID, patch models.CountryPatch) error
	DeleteCountry(ctx context.Context, id models.CountryID) error
	FindCountriesByName(ctx context.Context, name string) ([]*models.Country, error)

	// Travel operations
	CreateTravel(ctx context.Context, travel *models.Travel) error
	GetTravel(ctx context.Context, id models.TravelID) (*models.Travel, error)
	UpdateTravel(ctx context.Context, id models.TravelID, patch models.TravelPatch) error
	DeleteTravel(ctx context.Context, id models.TravelID) error
	ListTravelsByCountry(ctx context.Context, countryID models.CountryID) ([]*models.Travel, error)

	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id models.UserID) (*models.User, error)
	UpdateUser(ctx context.Context, id models.UserID, patch models.UserPatch) error
	DeleteUser(ctx context.Context, id models.UserID) error
	FindUsersByEmail(ctx context.Context, email string) ([]*models.User, error)

	// Order operations
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id models.OrderID) (*models.Order, error)
	UpdateOrder(ctx context.Context, id models.OrderID, patch models.OrderPatch) error
	DeleteOrder(ctx context.Context, id models.OrderID) error
	ListOrdersByUser(ctx context.Context, userID models.UserID) ([]*models.Order, error)

	// Migrate creates the schema objects the backend needs (tables and
	// unique indexes). It only ever adds missing objects and is safe to run
	// repeatedly.
	Migrate(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}
