package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikMakPak/timetravelstore/pkg/models"
	"github.com/NikMakPak/timetravelstore/pkg/store"
)

func TestCategoryCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	category := &models.Category{Name: "Standard travels"}
	require.NoError(t, s.CreateCategory(ctx, category))
	require.False(t, category.ID.IsZero())
	require.False(t, category.CreatedAt.IsZero())

	got, err := s.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, category.ID, got.ID)
	assert.Equal(t, "Standard travels", got.Name)

	newName := "Promotional travels"
	require.NoError(t, s.UpdateCategory(ctx, category.ID, models.CategoryPatch{Name: &newName}))

	got, err = s.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Promotional travels", got.Name)

	require.NoError(t, s.DeleteCategory(ctx, category.ID))
	got, err = s.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetAbsentReturnsNilNil(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	category, err := s.GetCategory(ctx, models.NewCategoryID())
	require.NoError(t, err)
	assert.Nil(t, category)

	travel, err := s.GetTravel(ctx, models.NewTravelID())
	require.NoError(t, err)
	assert.Nil(t, travel)

	order, err := s.GetOrder(ctx, models.NewOrderID())
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestUpdateMissingIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	name := "Atlantis"
	require.NoError(t, s.UpdateCountry(ctx, models.NewCountryID(), models.CountryPatch{Name: &name}))
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	user := &models.User{Name: "Ivan", Email: "ivan@example.com"}
	require.NoError(t, s.CreateUser(ctx, user))

	require.NoError(t, s.DeleteUser(ctx, user.ID))
	require.NoError(t, s.DeleteUser(ctx, user.ID))
}

func TestUniqueConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateCountry(ctx, &models.Country{Name: "Earth"}))
	err := s.CreateCountry(ctx, &models.Country{Name: "Earth"})
	require.ErrorIs(t, err, store.ErrConstraintViolation)

	require.NoError(t, s.CreateUser(ctx, &models.User{Name: "Ivan", Email: "ivan@example.com"}))
	err = s.CreateUser(ctx, &models.User{Name: "Other Ivan", Email: "ivan@example.com"})
	require.ErrorIs(t, err, store.ErrConstraintViolation)
}

func TestUpdateIntoUniqueConflict(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateCategory(ctx, &models.Category{Name: "Standard"}))
	vip := &models.Category{Name: "VIP"}
	require.NoError(t, s.CreateCategory(ctx, vip))

	conflicting := "Standard"
	err := s.UpdateCategory(ctx, vip.ID, models.CategoryPatch{Name: &conflicting})
	require.ErrorIs(t, err, store.ErrConstraintViolation)

	got, err := s.GetCategory(ctx, vip.ID)
	require.NoError(t, err)
	assert.Equal(t, "VIP", got.Name)
}

func TestPartialTravelUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	country := &models.Country{Name: "Mars"}
	require.NoError(t, s.CreateCountry(ctx, country))

	travel := &models.Travel{
		Name:      "Trip to Mars",
		CountryID: country.ID,
		Year:      2200,
		Price:     25000,
	}
	require.NoError(t, s.CreateTravel(ctx, travel))

	price := 0.0
	require.NoError(t, s.UpdateTravel(ctx, travel.ID, models.TravelPatch{Price: &price}))

	got, err := s.GetTravel(ctx, travel.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Price, "a zero price in the patch must overwrite the stored value")
	assert.Equal(t, "Trip to Mars", got.Name, "unset patch fields must be preserved")
	assert.Equal(t, 2200, got.Year)
}

func TestEmbeddedReviews(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	user := &models.User{Name: "Anna", Email: "anna@example.com"}
	require.NoError(t, s.CreateUser(ctx, user))

	travel := &models.Travel{
		Name: "Trip to Mars",
		Reviews: models.Reviews{
			{UserID: user.ID, Text: "Incredible experience!", Rating: 4},
		},
	}
	require.NoError(t, s.CreateTravel(ctx, travel))

	got, err := s.GetTravel(ctx, travel.ID)
	require.NoError(t, err)
	require.Len(t, got.Reviews, 1)
	assert.False(t, got.Reviews[0].ID.IsZero(), "review IDs are assigned on create")
	assert.Equal(t, 4, got.Reviews[0].Rating)

	// Mutating the returned slice must not leak into the store.
	got.Reviews[0].Text = "changed"
	again, err := s.GetTravel(ctx, travel.ID)
	require.NoError(t, err)
	assert.Equal(t, "Incredible experience!", again.Reviews[0].Text)
}

func TestFindCountriesByName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	earth := &models.Country{Name: "Earth"}
	require.NoError(t, s.CreateCountry(ctx, earth))
	require.NoError(t, s.CreateCountry(ctx, &models.Country{Name: "Mars"}))

	matches, err := s.FindCountriesByName(ctx, "Earth")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, earth.ID, matches[0].ID)

	matches, err = s.FindCountriesByName(ctx, "Venus")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestListTravelsByCountryOrdersByName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	earth := &models.Country{Name: "Earth"}
	require.NoError(t, s.CreateCountry(ctx, earth))
	mars := &models.Country{Name: "Mars"}
	require.NoError(t, s.CreateCountry(ctx, mars))

	require.NoError(t, s.CreateTravel(ctx, &models.Travel{Name: "Trip to the Future", CountryID: earth.ID}))
	require.NoError(t, s.CreateTravel(ctx, &models.Travel{Name: "Age of the Pharaohs", CountryID: earth.ID}))
	require.NoError(t, s.CreateTravel(ctx, &models.Travel{Name: "Trip to Mars", CountryID: mars.ID}))

	travels, err := s.ListTravelsByCountry(ctx, earth.ID)
	require.NoError(t, err)
	require.Len(t, travels, 2)
	assert.Equal(t, "Age of the Pharaohs", travels[0].Name)
	assert.Equal(t, "Trip to the Future", travels[1].Name)
}

func TestListOrdersByUserOrdersByDate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	user := &models.User{Name: "Ivan", Email: "ivan@example.com"}
	require.NoError(t, s.CreateUser(ctx, user))

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	second := &models.Order{UserID: user.ID, TravelID: models.NewTravelID(), OrderDate: base.Add(time.Hour)}
	require.NoError(t, s.CreateOrder(ctx, second))
	first := &models.Order{UserID: user.ID, TravelID: models.NewTravelID(), OrderDate: base}
	require.NoError(t, s.CreateOrder(ctx, first))

	// Orders for someone else must not show up.
	require.NoError(t, s.CreateOrder(ctx, &models.Order{UserID: models.NewUserID(), TravelID: models.NewTravelID()}))

	orders, err := s.ListOrdersByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)
}

func TestOrderDateDefaultsToNow(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	order := &models.Order{UserID: models.NewUserID(), TravelID: models.NewTravelID()}
	require.NoError(t, s.CreateOrder(ctx, order))
	assert.False(t, order.OrderDate.IsZero())
}
