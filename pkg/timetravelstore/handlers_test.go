package timetravelstore

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikMakPak/timetravelstore/pkg/models"
	"github.com/NikMakPak/timetravelstore/pkg/query"
	"github.com/NikMakPak/timetravelstore/pkg/store/memory"
)

func newTestApp() *App {
	return NewWithStore(memory.NewMemoryStore(), &Config{
		StoreKind:  StoreMemory,
		ServerPort: "8080",
	})
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp()
	router := app.Router()

	for _, path := range []string{"/health", "/api/health"} {
		rec := doRequest(t, router, "GET", path, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody[map[string]any](t, rec)
		assert.Equal(t, "healthy", body["status"])
	}
}

func TestCategoryLifecycle(t *testing.T) {
	app := newTestApp()
	router := app.Router()

	rec := doRequest(t, router, "POST", "/api/categories", map[string]string{"name": "VIP travels"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[models.Category](t, rec)
	require.False(t, created.ID.IsZero())

	rec = doRequest(t, router, "GET", "/api/categories/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.Category](t, rec)
	assert.Equal(t, "VIP travels", got.Name)

	rec = doRequest(t, router, "PUT", "/api/categories/"+created.ID.String(), map[string]string{"name": "Premium travels"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "GET", "/api/categories/"+created.ID.String(), nil)
	got = decodeBody[models.Category](t, rec)
	assert.Equal(t, "Premium travels", got.Name)

	rec = doRequest(t, router, "DELETE", "/api/categories/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, "GET", "/api/categories/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMalformedIDRejected(t *testing.T) {
	app := newTestApp()
	router := app.Router()

	rec := doRequest(t, router, "GET", "/api/travels/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, "DELETE", "/api/orders/12345", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDuplicateNameConflicts(t *testing.T) {
	app := newTestApp()
	router := app.Router()

	rec := doRequest(t, router, "POST", "/api/countries", map[string]string{"name": "Earth"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, "POST", "/api/countries", map[string]string{"name": "Earth"})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestPartialUpdatePreservesOtherFields(t *testing.T) {
	app := newTestApp()
	router := app.Router()

	rec := doRequest(t, router, "POST", "/api/countries", map[string]string{"name": "Mars"})
	country := decodeBody[models.Country](t, rec)

	rec = doRequest(t, router, "POST", "/api/travels", map[string]any{
		"name":       "Trip to Mars",
		"country_id": country.ID,
		"year":       2200,
		"price":      25000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	travel := decodeBody[models.Travel](t, rec)

	rec = doRequest(t, router, "PUT", "/api/travels/"+travel.ID.String(), map[string]any{
		"price": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "GET", "/api/travels/"+travel.ID.String(), nil)
	got := decodeBody[models.Travel](t, rec)
	assert.Equal(t, 0.0, got.Price, "explicit zero must not be skipped")
	assert.Equal(t, "Trip to Mars", got.Name)
	assert.Equal(t, 2200, got.Year)
}

func TestCountryTravelsView(t *testing.T) {
	app := newTestApp()
	router := app.Router()
	ctx := context.Background()

	earth := &models.Country{Name: "Earth"}
	require.NoError(t, app.Store().CreateCountry(ctx, earth))
	require.NoError(t, app.Store().CreateTravel(ctx, &models.Travel{Name: "Trip to the Future", CountryID: earth.ID, Price: 10000}))
	require.NoError(t, app.Store().CreateTravel(ctx, &models.Travel{Name: "Age of the Pharaohs", CountryID: earth.ID, Price: 7500}))

	rec := doRequest(t, router, "GET", "/api/countries/Earth/travels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody[query.CountryTravels](t, rec)
	assert.Equal(t, "Earth", result.Country)
	assert.Equal(t, []string{"Age of the Pharaohs", "Trip to the Future"}, result.Travels)

	rec = doRequest(t, router, "GET", "/api/countries/Venus/travels", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserOrdersView(t *testing.T) {
	app := newTestApp()
	router := app.Router()
	ctx := context.Background()

	anna := &models.User{Name: "Anna", Email: "anna@example.com"}
	require.NoError(t, app.Store().CreateUser(ctx, anna))
	mars := &models.Travel{Name: "Trip to Mars", Price: 25000}
	require.NoError(t, app.Store().CreateTravel(ctx, mars))
	require.NoError(t, app.Store().CreateOrder(ctx, &models.Order{UserID: anna.ID, TravelID: mars.ID}))

	rec := doRequest(t, router, "GET", "/api/users/anna@example.com/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeBody[query.OrderSummary](t, rec)
	assert.Equal(t, 1, summary.TotalOrders)
	assert.Equal(t, 25000.0, summary.TotalSpent)
	assert.Equal(t, []string{"Trip to Mars"}, summary.Travels)

	rec = doRequest(t, router, "GET", "/api/users/nobody@example.com/orders", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeedThenQuery(t *testing.T) {
	app := newTestApp()
	router := app.Router()
	ctx := context.Background()

	require.NoError(t, app.Migrate(ctx, &MigrateCommand{}))
	require.NoError(t, app.Seed(ctx, &SeedCommand{}))

	rec := doRequest(t, router, "GET", "/api/countries/"+url.PathEscape("Земля")+"/travels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody[query.CountryTravels](t, rec)
	assert.Len(t, result.Travels, 2)

	rec = doRequest(t, router, "GET", "/api/users/anna@example.com/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeBody[query.OrderSummary](t, rec)
	assert.Equal(t, 2, summary.TotalOrders)
	assert.Equal(t, 32500.0, summary.TotalSpent)

	// Seeding twice trips the unique indexes.
	require.Error(t, app.Seed(ctx, &SeedCommand{}))
}

func TestSeedAssignsCategories(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()

	require.NoError(t, app.Seed(ctx, &SeedCommand{}))

	wantCategory := map[string]string{
		"Путешествие в будущее":          "Стандартные путешествия",
		"Эпоха фараонов: Великий Египет": "Акционные путешествия",
		"Путешествие на Марс":            "VIP путешествия",
	}

	var travels []*models.Travel
	for _, name := range []string{"Земля", "Марс"} {
		countries, err := app.Store().FindCountriesByName(ctx, name)
		require.NoError(t, err)
		require.Len(t, countries, 1)
		found, err := app.Store().ListTravelsByCountry(ctx, countries[0].ID)
		require.NoError(t, err)
		travels = append(travels, found...)
	}
	require.Len(t, travels, len(wantCategory))

	for _, travel := range travels {
		require.False(t, travel.CategoryID.IsZero(), "travel %q has no category", travel.Name)
		category, err := app.Store().GetCategory(ctx, travel.CategoryID)
		require.NoError(t, err)
		require.NotNil(t, category)
		assert.Equal(t, wantCategory[travel.Name], category.Name)
	}
}

// doubledEmailStore returns every matching user twice from email lookups,
// as if the unique index on email were missing.
type doubledEmailStore struct {
	*memory.MemoryStore
}

func (s *doubledEmailStore) FindUsersByEmail(ctx context.Context, email string) ([]*models.User, error) {
	users, err := s.MemoryStore.FindUsersByEmail(ctx, email)
	if err != nil || len(users) == 0 {
		return users, err
	}
	return append(users, users[0]), nil
}

func TestAmbiguousLookupIsServerError(t *testing.T) {
	mem := memory.NewMemoryStore()
	app := NewWithStore(&doubledEmailStore{MemoryStore: mem}, &Config{
		StoreKind:  StoreMemory,
		ServerPort: "8080",
	})
	router := app.Router()
	ctx := context.Background()

	user := &models.User{Name: "Anna", Email: "anna@example.com"}
	require.NoError(t, mem.CreateUser(ctx, user))

	rec := doRequest(t, router, "GET", "/api/users/anna@example.com/orders", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestParseCommands(t *testing.T) {
	cmd, config, err := Parse([]string{"-store=memory", "-port=9090", "run"})
	require.NoError(t, err)
	assert.Equal(t, "run", cmd.Name())
	assert.Equal(t, StoreMemory, config.StoreKind)
	assert.Equal(t, "9090", config.ServerPort)

	cmd, _, err = Parse([]string{"migrate"})
	require.NoError(t, err)
	assert.Equal(t, "migrate", cmd.Name())

	cmd, _, err = Parse([]string{"seed"})
	require.NoError(t, err)
	assert.Equal(t, "seed", cmd.Name())

	_, _, err = Parse([]string{})
	require.Error(t, err)

	_, _, err = Parse([]string{"-store=mysql", "run"})
	require.Error(t, err)

	_, _, err = Parse([]string{"frobnicate"})
	require.Error(t, err)
}
