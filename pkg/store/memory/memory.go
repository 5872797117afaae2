// Package memory provides an in-process implementation of the
// [github.com/NikMakPak/timetravelstore/pkg/store.Store] interface backed by
// mutex-guarded maps.
//
// The memory store exists for the package test suites and for running the
// server locally without a database. It honors the full store contract:
// identifier generation, uniqueness constraints on names and emails,
// patch-merge update semantics, silent no-op updates and deletes on missing
// IDs, and the deterministic scan ordering the query engine relies on, so
// the query engine and HTTP handler tests run against it unchanged.
//
// Records are copied on the way in and on the way out; callers never share
// memory with the store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/NikMakPak/timetravelstore/pkg/models"
	"github.com/NikMakPak/timetravelstore/pkg/store"
)

// MemoryStore implements the Store interface with in-process maps.
// It is safe for concurrent use; every method takes the single mutex, which
// matches the per-document atomicity the database backends give.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[models.CategoryID]*models.Category
	countries  map[models.CountryID]*models.Country
	travels    map[models.TravelID]*models.Travel
	users      map[models.UserID]*models.User
	orders     map[models.OrderID]*models.Order

	// seq disambiguates orders created within the same clock tick so that
	// ListOrdersByUser stays deterministic.
	seq      uint64
	orderSeq map[models.OrderID]uint64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories: make(map[models.CategoryID]*models.Category),
		countries:  make(map[models.CountryID]*models.Country),
		travels:    make(map[models.TravelID]*models.Travel),
		users:      make(map[models.UserID]*models.User),
		orders:     make(map[models.OrderID]*models.Order),
		orderSeq:   make(map[models.OrderID]uint64),
	}
}

// Migrate is a no-op: there is no schema to create.
func (s *MemoryStore) Migrate(ctx context.Context) error { return nil }

// Close is a no-op: there is no connection to release.
func (s *MemoryStore) Close() error { return nil }

func copyCategory(c *models.Category) *models.Category {
	out := *c
	return &out
}

func copyCountry(c *models.Country) *models.Country {
	out := *c
	return &out
}

func copyTravel(t *models.Travel) *models.Travel {
	out := *t
	out.Reviews = make(models.Reviews, len(t.Reviews))
	copy(out.Reviews, t.Reviews)
	return &out
}

func copyUser(u *models.User) *models.User {
	out := *u
	return &out
}

func copyOrder(o *models.Order) *models.Order {
	out := *o
	return &out
}

// Category operations

func (s *MemoryStore) CreateCategory(ctx context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Name == category.Name {
			return fmt.Errorf("%w: category name %q", store.ErrConstraintViolation, category.Name)
		}
	}

	if category.ID.IsZero() {
		category.ID = models.NewCategoryID()
	}
	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	s.categories[category.ID] = copyCategory(category)
	return nil
}

func (s *MemoryStore) GetCategory(ctx context.Context, id models.CategoryID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	return copyCategory(category), nil
}

func (s *MemoryStore) UpdateCategory(ctx context.Context, id models.CategoryID, patch models.CategoryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return nil
	}

	updated := copyCategory(category)
	patch.Apply(updated)

	for otherID, existing := range s.categories {
		if otherID != id && existing.Name == updated.Name {
			return fmt.Errorf("%w: category name %q", store.ErrConstraintViolation, updated.Name)
		}
	}

	updated.UpdatedAt = time.Now()
	s.categories[id] = updated
	return nil
}

func (s *MemoryStore) DeleteCategory(ctx context.Context, id models.CategoryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.categories, id)
	return nil
}

// Country operations

func (s *MemoryStore) CreateCountry(ctx context.Context, country *models.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.countries {
		if existing.Name == country.Name {
			return fmt.Errorf("%w: country name %q", store.ErrConstraintViolation, country.Name)
		}
	}

	if country.ID.IsZero() {
		country.ID = models.NewCountryID()
	}
	now := time.Now()
	if country.CreatedAt.IsZero() {
		country.CreatedAt = now
	}
	country.UpdatedAt = now

	s.countries[country.ID] = copyCountry(country)
	return nil
}

func (s *MemoryStore) GetCountry(ctx context.Context, id models.CountryID) (*models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	country, ok := s.countries[id]
	if !ok {
		return nil, nil
	}
	return copyCountry(country), nil
}

func (s *MemoryStore) UpdateCountry(ctx context.Context, id models.CountryID, patch models.CountryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	country, ok := s.countries[id]
	if !ok {
		return nil
	}

	updated := copyCountry(country)
	patch.Apply(updated)

	for otherID, existing := range s.countries {
		if otherID != id && existing.Name == updated.Name {
			return fmt.Errorf("%w: country name %q", store.ErrConstraintViolation, updated.Name)
		}
	}

	updated.UpdatedAt = time.Now()
	s.countries[id] = updated
	return nil
}

func (s *MemoryStore) DeleteCountry(ctx context.Context, id models.CountryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.countries, id)
	return nil
}

func (s *MemoryStore) FindCountriesByName(ctx context.Context, name string) ([]*models.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*models.Country
	for _, country := range s.countries {
		if country.Name == name {
			matches = append(matches, copyCountry(country))
		}
	}
	return matches, nil
}

// Travel operations

func (s *MemoryStore) CreateTravel(ctx context.Context, travel *models.Travel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.travels {
		if existing.Name == travel.Name {
			return fmt.Errorf("%w: travel name %q", store.ErrConstraintViolation, travel.Name)
		}
	}

	if travel.ID.IsZero() {
		travel.ID = models.NewTravelID()
	}
	travel.Reviews = travel.Reviews.EnsureIDs()
	now := time.Now()
	if travel.CreatedAt.IsZero() {
		travel.CreatedAt = now
	}
	travel.UpdatedAt = now

	s.travels[travel.ID] = copyTravel(travel)
	return nil
}

func (s *MemoryStore) GetTravel(ctx context.Context, id models.TravelID) (*models.Travel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	travel, ok := s.travels[id]
	if !ok {
		return nil, nil
	}
	return copyTravel(travel), nil
}

func (s *MemoryStore) UpdateTravel(ctx context.Context, id models.TravelID, patch models.TravelPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	travel, ok := s.travels[id]
	if !ok {
		return nil
	}

	updated := copyTravel(travel)
	patch.Apply(updated)

	for otherID, existing := range s.travels {
		if otherID != id && existing.Name == updated.Name {
			return fmt.Errorf("%w: travel name %q", store.ErrConstraintViolation, updated.Name)
		}
	}

	updated.UpdatedAt = time.Now()
	s.travels[id] = updated
	return nil
}

func (s *MemoryStore) DeleteTravel(ctx context.Context, id models.TravelID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.travels, id)
	return nil
}

func (s *MemoryStore) ListTravelsByCountry(ctx context.Context, countryID models.CountryID) ([]*models.Travel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var travels []*models.Travel
	for _, travel := range s.travels {
		if travel.CountryID == countryID {
			travels = append(travels, copyTravel(travel))
		}
	}
	sort.Slice(travels, func(i, j int) bool { return travels[i].Name < travels[j].Name })
	return travels, nil
}

// User operations

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: user email %q", store.ErrConstraintViolation, user.Email)
		}
	}

	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id models.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(user), nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, id models.UserID, patch models.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil
	}

	updated := copyUser(user)
	patch.Apply(updated)

	for otherID, existing := range s.users {
		if otherID != id && existing.Email == updated.Email {
			return fmt.Errorf("%w: user email %q", store.ErrConstraintViolation, updated.Email)
		}
	}

	updated.UpdatedAt = time.Now()
	s.users[id] = updated
	return nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id models.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}

func (s *MemoryStore) FindUsersByEmail(ctx context.Context, email string) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*models.User
	for _, user := range s.users {
		if user.Email == email {
			matches = append(matches, copyUser(user))
		}
	}
	return matches, nil
}

// Order operations

func (s *MemoryStore) CreateOrder(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

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

	s.seq++
	s.orderSeq[order.ID] = s.seq
	s.orders[order.ID] = copyOrder(order)
	return nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, id models.OrderID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(order), nil
}

func (s *MemoryStore) UpdateOrder(ctx context.Context, id models.OrderID, patch models.OrderPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil
	}

	updated := copyOrder(order)
	patch.Apply(updated)
	updated.UpdatedAt = time.Now()
	s.orders[id] = updated
	return nil
}

func (s *MemoryStore) DeleteOrder(ctx context.Context, id models.OrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.orders, id)
	delete(s.orderSeq, id)
	return nil
}

func (s *MemoryStore) ListOrdersByUser(ctx context.Context, userID models.UserID) ([]*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []*models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			orders = append(orders, copyOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].OrderDate.Before(orders[j].OrderDate)
		}
		return s.orderSeq[orders[i].ID] < s.orderSeq[orders[j].ID]
	})
	return orders, nil
}
