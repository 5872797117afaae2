// Package postgres provides a PostgreSQL implementation of the
// [github.com/NikMakPak/timetravelstore/pkg/store.Store] interface using GORM.
//
// The relational schema maps each catalog entity to its own table. Reviews are
// not a table of their own: they live inside the travels table as a jsonb
// column, mirroring the document shape the SurrealDB backend stores natively.
// References between tables are plain uuid columns without foreign key
// constraints, so deleting a referenced row never cascades and never fails.
//
// Unique constraints on category, country and travel names and on user emails
// are enforced by the database. GORM's TranslateError option turns driver
// duplicate-key errors into [gorm.ErrDuplicatedKey], which this package wraps
// as [github.com/NikMakPak/timetravelstore/pkg/store.ErrConstraintViolation].
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/NikMakPak/timetravelstore/pkg/models"
	"github.com/NikMakPak/timetravelstore/pkg/store"
)

// PostgresStore implements the Store interface using PostgreSQL with GORM.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects to PostgreSQL with the given DSN.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Migrate creates or updates the schema using GORM's AutoMigrate. It only adds
// missing tables, columns and indexes, so it is safe to run repeatedly.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Category{},
		&models.Country{},
		&models.Travel{},
		&models.User{},
		&models.Order{},
	)
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translateErr maps GORM's duplicate-key error onto the store-level sentinel.
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", store.ErrConstraintViolation, err)
	}
	return err
}

// Category operations

func (s *PostgresStore) CreateCategory(ctx context.Context, category *models.Category) error {
	return translateErr(s.db.WithContext(ctx).Create(category).Error)
}

func (s *PostgresStore) GetCategory(ctx context.Context, id models.CategoryID) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (s *PostgresStore) UpdateCategory(ctx context.Context, id models.CategoryID, patch models.CategoryPatch) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return nil
	}
	patch.Apply(category)
	return translateErr(s.db.WithContext(ctx).Save(category).Error)
}

func (s *PostgresStore) DeleteCategory(ctx context.Context, id models.CategoryID) error {
	return s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

// Country operations

func (s *PostgresStore) CreateCountry(ctx context.Context, country *models.Country) error {
	return translateErr(s.db.WithContext(ctx).Create(country).Error)
}

func (s *PostgresStore) GetCountry(ctx context.Context, id models.CountryID) (*models.Country, error) {
	var country models.Country
	err := s.db.WithContext(ctx).First(&country, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &country, nil
}

func (s *PostgresStore) UpdateCountry(ctx context.Context, id models.CountryID, patch models.CountryPatch) error {
	country, err := s.GetCountry(ctx, id)
	if err != nil {
		return err
	}
	if country == nil {
		return nil
	}
	patch.Apply(country)
	return translateErr(s.db.WithContext(ctx).Save(country).Error)
}

func (s *PostgresStore) DeleteCountry(ctx context.Context, id models.CountryID) error {
	return s.db.WithContext(ctx).Delete(&models.Country{}, "id = ?", id).Error
}

func (s *PostgresStore) FindCountriesByName(ctx context.Context, name string) ([]*models.Country, error) {
	var countries []*models.Country
	err := s.db.WithContext(ctx).Where("name = ?", name).Find(&countries).Error
	return countries, err
}

// Travel operations

func (s *PostgresStore) CreateTravel(ctx context.Context, travel *models.Travel) error {
	travel.Reviews = travel.Reviews.EnsureIDs()
	return translateErr(s.db.WithContext(ctx).Create(travel).Error)
}

func (s *PostgresStore) GetTravel(ctx context.Context, id models.TravelID) (*models.Travel, error) {
	var travel models.Travel
	err := s.db.WithContext(ctx).First(&travel, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &travel, nil
}

func (s *PostgresStore) UpdateTravel(ctx context.Context, id models.TravelID, patch models.TravelPatch) error {
	travel, err := s.GetTravel(ctx, id)
	if err != nil {
		return err
	}
	if travel == nil {
		return nil
	}
	patch.Apply(travel)
	travel.Reviews = travel.Reviews.EnsureIDs()
	return translateErr(s.db.WithContext(ctx).Save(travel).Error)
}

func (s *PostgresStore) DeleteTravel(ctx context.Context, id models.TravelID) error {
	return s.db.WithContext(ctx).Delete(&models.Travel{}, "id = ?", id).Error
}

func (s *PostgresStore) ListTravelsByCountry(ctx context.Context, countryID models.CountryID) ([]*models.Travel, error) {
	var travels []*models.Travel
	err := s.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order("name").
		Find(&travels).Error
	return travels, err
}

// User operations

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	return translateErr(s.db.WithContext(ctx).Create(user).Error)
}

func (s *PostgresStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id models.UserID, patch models.UserPatch) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	patch.Apply(user)
	return translateErr(s.db.WithContext(ctx).Save(user).Error)
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id models.UserID) error {
	return s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}

func (s *PostgresStore) FindUsersByEmail(ctx context.Context, email string) ([]*models.User, error) {
	var users []*models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).Find(&users).Error
	return users, err
}

// Order operations

func (s *PostgresStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return translateErr(s.db.WithContext(ctx).Create(order).Error)
}

func (s *PostgresStore) GetOrder(ctx context.Context, id models.OrderID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (s *PostgresStore) UpdateOrder(ctx context.Context, id models.OrderID, patch models.OrderPatch) error {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	patch.Apply(order)
	return translateErr(s.db.WithContext(ctx).Save(order).Error)
}

func (s *PostgresStore) DeleteOrder(ctx context.Context, id models.OrderID) error {
	return s.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id).Error
}

func (s *PostgresStore) ListOrdersByUser(ctx context.Context, userID models.UserID) ([]*models.Order, error) {
	var orders []*models.Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("order_date, created_at").
		Find(&orders).Error
	return orders, err
}
