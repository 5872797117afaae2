package timetravelstore

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Run starts the HTTP server and blocks until the context is cancelled or a
// fatal server error occurs. On cancellation active requests get up to five
// seconds to complete.
//
// # API Endpoints
//
// Health check:
//
//	GET  /health
//	GET  /api/health
//
// Categories:
//
//	POST   /api/categories
//	GET    /api/categories/{id}
//	PUT    /api/categories/{id}
//	DELETE /api/categories/{id}
//
// Countries:
//
//	POST   /api/countries
//	GET    /api/countries/{id}
//	PUT    /api/countries/{id}
//	DELETE /api/countries/{id}
//	GET    /api/countries/{name}/travels   - travel names for a country
//
// Travels:
//
//	POST   /api/travels
//	GET    /api/travels/{id}
//	PUT    /api/travels/{id}
//	DELETE /api/travels/{id}
//
// Users:
//
//	POST   /api/users
//	GET    /api/users/{id}
//	PUT    /api/users/{id}
//	DELETE /api/users/{id}
//	GET    /api/users/{email}/orders       - order summary for a user
//
// Orders:
//
//	POST   /api/orders
//	GET    /api/orders/{id}
//	PUT    /api/orders/{id}
//	DELETE /api/orders/{id}
func (a *App) Run(ctx context.Context, cmd *RunCommand) error {
	router := a.Router()

	addr := fmt.Sprintf(":%s", a.config.ServerPort)
	a.logger.Info().Str("addr", addr).Str("store", a.config.StoreKind).Msg("starting timetravelstore server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

// Router builds the HTTP handler without starting a listener. Run uses it for
// the real server; tests use it to drive requests through httptest.
func (a *App) Router() http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", a.handleHealth).Methods("GET")

	// Category routes
	api.HandleFunc("/categories", a.handleCreateCategory).Methods("POST")
	api.HandleFunc("/categories/{id}", a.handleGetCategory).Methods("GET")
	api.HandleFunc("/categories/{id}", a.handleUpdateCategory).Methods("PUT")
	api.HandleFunc("/categories/{id}", a.handleDeleteCategory).Methods("DELETE")

	// Country routes. The travels view matches on country name, not ID.
	api.HandleFunc("/countries/{name}/travels", a.handleCountryTravels).Methods("GET")
	api.HandleFunc("/countries", a.handleCreateCountry).Methods("POST")
	api.HandleFunc("/countries/{id}", a.handleGetCountry).Methods("GET")
	api.HandleFunc("/countries/{id}", a.handleUpdateCountry).Methods("PUT")
	api.HandleFunc("/countries/{id}", a.handleDeleteCountry).Methods("DELETE")

	// Travel routes
	api.HandleFunc("/travels", a.handleCreateTravel).Methods("POST")
	api.HandleFunc("/travels/{id}", a.handleGetTravel).Methods("GET")
	api.HandleFunc("/travels/{id}", a.handleUpdateTravel).Methods("PUT")
	api.HandleFunc("/travels/{id}", a.handleDeleteTravel).Methods("DELETE")

	// User routes. The orders view matches on email, not ID.
	api.HandleFunc("/users/{email}/orders", a.handleUserOrders).Methods("GET")
	api.HandleFunc("/users", a.handleCreateUser).Methods("POST")
	api.HandleFunc("/users/{id}", a.handleGetUser).Methods("GET")
	api.HandleFunc("/users/{id}", a.handleUpdateUser).Methods("PUT")
	api.HandleFunc("/users/{id}", a.handleDeleteUser).Methods("DELETE")

	// Order routes
	api.HandleFunc("/orders", a.handleCreateOrder).Methods("POST")
	api.HandleFunc("/orders/{id}", a.handleGetOrder).Methods("GET")
	api.HandleFunc("/orders/{id}", a.handleUpdateOrder).Methods("PUT")
	api.HandleFunc("/orders/{id}", a.handleDeleteOrder).Methods("DELETE")

	// Health check route outside of the /api prefix
	router.HandleFunc("/health", a.handleHealth).Methods("GET")
	return router
}
