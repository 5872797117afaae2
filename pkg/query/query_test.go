package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikMakPak/timetravelstore/pkg/models"
	"github.com/NikMakPak/timetravelstore/pkg/store/memory"
)

type fixture struct {
	store  *memory.MemoryStore
	engine *Engine

	earth models.CountryID
	mars  models.CountryID

	ivan models.UserID
	anna models.UserID

	future   *models.Travel
	pharaohs *models.Travel
	marsTrip *models.Travel
}

// seedFixture loads the catalog the aggregation tests run against: two
// countries, three travels and two users with three orders between them.
func seedFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewMemoryStore()
	f := &fixture{store: s, engine: NewEngine(s)}

	earth := &models.Country{Name: "Earth"}
	require.NoError(t, s.CreateCountry(ctx, earth))
	f.earth = earth.ID
	mars := &models.Country{Name: "Mars"}
	require.NoError(t, s.CreateCountry(ctx, mars))
	f.mars = mars.ID

	ivan := &models.User{Name: "Ivan", Email: "ivan@example.com"}
	require.NoError(t, s.CreateUser(ctx, ivan))
	f.ivan = ivan.ID
	anna := &models.User{Name: "Anna", Email: "anna@example.com"}
	require.NoError(t, s.CreateUser(ctx, anna))
	f.anna = anna.ID

	f.future = &models.Travel{Name: "Trip to the Future", CountryID: earth.ID, Year: 2523, Price: 10000}
	require.NoError(t, s.CreateTravel(ctx, f.future))
	f.pharaohs = &models.Travel{Name: "Age of the Pharaohs", CountryID: earth.ID, Year: -2500, Price: 7500}
	require.NoError(t, s.CreateTravel(ctx, f.pharaohs))
	f.marsTrip = &models.Travel{Name: "Trip to Mars", CountryID: mars.ID, Year: 2200, Price: 25000}
	require.NoError(t, s.CreateTravel(ctx, f.marsTrip))

	base := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateOrder(ctx, &models.Order{UserID: ivan.ID, TravelID: f.future.ID, OrderDate: base}))
	require.NoError(t, s.CreateOrder(ctx, &models.Order{UserID: anna.ID, TravelID: f.marsTrip.ID, OrderDate: base.Add(time.Hour)}))
	require.NoError(t, s.CreateOrder(ctx, &models.Order{UserID: anna.ID, TravelID: f.pharaohs.ID, OrderDate: base.Add(2 * time.Hour)}))

	return f
}

func TestTravelsByCountry(t *testing.T) {
	ctx := context.Background()
	f := seedFixture(t)

	result, err := f.engine.TravelsByCountry(ctx, "Earth")
	require.NoError(t, err)
	assert.Equal(t, "Earth", result.Country)
	assert.Equal(t, []string{"Age of the Pharaohs", "Trip to the Future"}, result.Travels)
}

func TestTravelsByCountryUnknownCountry(t *testing.T) {
	ctx := context.Background()
	f := seedFixture(t)

	_, err := f.engine.TravelsByCountry(ctx, "Venus")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTravelsByCountryNoTravels(t *testing.T) {
	ctx := context.Background()
	f := seedFixture(t)

	venus := &models.Country{Name: "Venus"}
	require.NoError(t, f.store.CreateCountry(ctx, venus))

	result, err := f.engine.TravelsByCountry(ctx, "Venus")
	require.NoError(t, err)
	assert.Empty(t, result.Travels)
}

func TestOrdersByUser(t *testing.T) {
	ctx := context.Background()
	f := seedFixture(t)

	summary, err := f.engine.OrdersByUser(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalOrders)
	assert.Equal(t, 32500.0, summary.TotalSpent)
	assert.Equal(t, []string{"Trip to Mars", "Age of the Pharaohs"}, summary.Travels,
		"travels follow order date, not catalog order")
}

func TestOrdersByUserAllThreeTravels(t *testing.T) {
	ctx := context.Background()
	f := seedFixture(t)

	boris := &models.User{Name: "Boris", Email: "boris@example.com"}
	require.NoError(t, f.store.CreateUser(ctx, boris))
	base := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	for i, travel := range []*models.Travel{f.future, f.pharaohs, f.marsTrip} {
		order := &models.Order{UserID: boris.ID, TravelID: travel.ID, OrderDate: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, f.store.CreateOrder(ctx, order))
	}

	summary, err := f.engine.OrdersByUser(ctx, "boris@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalOrders)
	assert.Equal(t, 42500.0, summary.TotalSpent)
	assert.Equal(t, []string{"Trip to the Future", "Age of the Pharaohs", "Trip to Mars"}, summary.Travels)
}

func TestOrdersByUserUnknownEmail(t *testing.T) {
	ctx := context.Background()
	f := seedFixture(t)

	_, err := f.engine.OrdersByUser(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrdersByUserNoOrders(t *testing.T) {
	ctx := context.Background()
	f := seedFixture(t)

	idle := &models.User{Name: "Olga", Email: "olga@example.com"}
	require.NoError(t, f.store.CreateUser(ctx, idle))

	summary, err := f.engine.OrdersByUser(ctx, "olga@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalOrders)
	assert.Equal(t, 0.0, summary.TotalSpent)
	assert.Empty(t, summary.Travels)
}

// duplicatedSubjectStore simulates a database whose unique indexes were never
// migrated: every name and email lookup that matches returns the record twice.
type duplicatedSubjectStore struct {
	*memory.MemoryStore
}

func (s *duplicatedSubjectStore) FindCountriesByName(ctx context.Context, name string) ([]*models.Country, error) {
	countries, err := s.MemoryStore.FindCountriesByName(ctx, name)
	if err != nil || len(countries) == 0 {
		return countries, err
	}
	return append(countries, countries[0]), nil
}

func (s *duplicatedSubjectStore) FindUsersByEmail(ctx context.Context, email string) ([]*models.User, error) {
	users, err := s.MemoryStore.FindUsersByEmail(ctx, email)
	if err != nil || len(users) == 0 {
		return users, err
	}
	return append(users, users[0]), nil
}

func TestViewsFailLoudlyOnDuplicateSubjects(t *testing.T) {
	ctx := context.Background()
	f := seedFixture(t)
	engine := NewEngine(&duplicatedSubjectStore{MemoryStore: f.store})

	_, err := engine.TravelsByCountry(ctx, "Earth")
	require.ErrorIs(t, err, ErrAmbiguous)

	_, err = engine.OrdersByUser(ctx, "anna@example.com")
	require.ErrorIs(t, err, ErrAmbiguous)
}

func TestOrdersByUserExcludesDanglingOrders(t *testing.T) {
	ctx := context.Background()
	f := seedFixture(t)

	// Deleting the travel leaves Anna's Mars order pointing at nothing.
	require.NoError(t, f.store.DeleteTravel(ctx, f.marsTrip.ID))

	summary, err := f.engine.OrdersByUser(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalOrders)
	assert.Equal(t, 7500.0, summary.TotalSpent)
	assert.Equal(t, []string{"Age of the Pharaohs"}, summary.Travels)
}

func TestOrdersByUserAllOrdersDangling(t *testing.T) {
	ctx := context.Background()
	f := seedFixture(t)

	require.NoError(t, f.store.DeleteTravel(ctx, f.future.ID))

	summary, err := f.engine.OrdersByUser(ctx, "ivan@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalOrders)
	assert.Empty(t, summary.Travels)
}
