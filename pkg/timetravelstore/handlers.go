package timetravelstore

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/NikMakPak/timetravelstore/pkg/models"
	"github.com/NikMakPak/timetravelstore/pkg/query"
	"github.com/NikMakPak/timetravelstore/pkg/store"
)

// writeStoreError maps a store-layer error to the right HTTP status. Unique
// constraint violations become 409, everything else is a server error.
func (a *App) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrConstraintViolation) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	a.logger.Error().Err(err).Str("path", r.URL.Path).Msg("store operation failed")
	respondError(w, http.StatusInternalServerError, err.Error())
}

// Category handlers

func (a *App) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx := r.Context()
	if err := a.store.CreateCategory(ctx, &category); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

func (a *App) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseCategoryID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	ctx := r.Context()
	category, err := a.store.GetCategory(ctx, id)
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	if category == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	respondJSON(w, http.StatusOK, category)
}

func (a *App) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseCategoryID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var patch models.CategoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx := r.Context()
	if err := a.store.UpdateCategory(ctx, id, patch); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (a *App) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseCategoryID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	ctx := r.Context()
	if err := a.store.DeleteCategory(ctx, id); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Country handlers

func (a *App) handleCreateCountry(w http.ResponseWriter, r *http.Request) {
	var country models.Country
	if err := json.NewDecoder(r.Body).Decode(&country); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx := r.Context()
	if err := a.store.CreateCountry(ctx, &country); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, country)
}

func (a *App) handleGetCountry(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseCountryID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid country ID")
		return
	}

	ctx := r.Context()
	country, err := a.store.GetCountry(ctx, id)
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	if country == nil {
		respondError(w, http.StatusNotFound, "Country not found")
		return
	}

	respondJSON(w, http.StatusOK, country)
}

func (a *App) handleUpdateCountry(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseCountryID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid country ID")
		return
	}

	var patch models.CountryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx := r.Context()
	if err := a.store.UpdateCountry(ctx, id, patch); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (a *App) handleDeleteCountry(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseCountryID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid country ID")
		return
	}

	ctx := r.Context()
	if err := a.store.DeleteCountry(ctx, id); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// handleCountryTravels returns the travel names available for a country,
// looked up by country name.
func (a *App) handleCountryTravels(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	ctx := r.Context()
	result, err := a.engine.TravelsByCountry(ctx, name)
	if err != nil {
		if errors.Is(err, query.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Country not found")
			return
		}
		a.logger.Error().Err(err).Str("country", name).Msg("travels view failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Travel handlers

func (a *App) handleCreateTravel(w http.ResponseWriter, r *http.Request) {
	var travel models.Travel
	if err := json.NewDecoder(r.Body).Decode(&travel); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx := r.Context()
	if err := a.store.CreateTravel(ctx, &travel); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, travel)
}

func (a *App) handleGetTravel(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseTravelID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid travel ID")
		return
	}

	ctx := r.Context()
	travel, err := a.store.GetTravel(ctx, id)
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	if travel == nil {
		respondError(w, http.StatusNotFound, "Travel not found")
		return
	}

	respondJSON(w, http.StatusOK, travel)
}

func (a *App) handleUpdateTravel(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseTravelID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid travel ID")
		return
	}

	var patch models.TravelPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx := r.Context()
	if err := a.store.UpdateTravel(ctx, id, patch); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (a *App) handleDeleteTravel(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseTravelID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid travel ID")
		return
	}

	ctx := r.Context()
	if err := a.store.DeleteTravel(ctx, id); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// User handlers

func (a *App) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx := r.Context()
	if err := a.store.CreateUser(ctx, &user); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (a *App) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseUserID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx := r.Context()
	user, err := a.store.GetUser(ctx, id)
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (a *App) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseUserID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx := r.Context()
	if err := a.store.UpdateUser(ctx, id, patch); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (a *App) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseUserID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx := r.Context()
	if err := a.store.DeleteUser(ctx, id); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// handleUserOrders returns the order summary for a user, looked up by email.
// Orders whose travel was deleted are excluded from the summary.
func (a *App) handleUserOrders(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx := r.Context()
	summary, err := a.engine.OrdersByUser(ctx, email)
	if err != nil {
		if errors.Is(err, query.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		a.logger.Error().Err(err).Str("email", email).Msg("order summary failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// Order handlers

func (a *App) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx := r.Context()
	if err := a.store.CreateOrder(ctx, &order); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (a *App) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseOrderID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ctx := r.Context()
	order, err := a.store.GetOrder(ctx, id)
	if err != nil {
		a.writeStoreError(w, r, err)
		return
	}
	if order == nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (a *App) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseOrderID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var patch models.OrderPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx := r.Context()
	if err := a.store.UpdateOrder(ctx, id, patch); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (a *App) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseOrderID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ctx := r.Context()
	if err := a.store.DeleteOrder(ctx, id); err != nil {
		a.writeStoreError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// handleHealth reports service status. Load balancers and the e2e harness
// poll it to decide when the server is ready.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"store":  a.config.StoreKind,
		"time":   time.Now().Unix(),
	})
}

// respondJSON writes the payload as JSON with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

// respondError writes a standardized JSON error body.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
