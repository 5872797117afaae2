// Package query implements the read-side aggregation views over the store.
//
// Both views resolve their subject by a human-facing key (country name, user
// email) rather than by ID, then join the related records application-side
// using store primitives. Keeping the joins out of the backends means all
// three store implementations stay symmetric and the dangling-reference
// policy lives in exactly one place.
package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/NikMakPak/timetravelstore/pkg/store"
)

var (
	// ErrNotFound reports that the view's subject does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous reports that the subject key matched more than one
	// record. The unique indexes make this unreachable in a healthy
	// database; seeing it means the constraints were not migrated.
	ErrAmbiguous = errors.New("ambiguous lookup")
)

// CountryTravels lists the travel names available for a country, sorted by
// name.
type CountryTravels struct {
	Country string   `json:"country"`
	Travels []string `json:"travels"`
}

// OrderSummary aggregates a user's orders. Orders whose travel no longer
// exists are excluded from every figure, so TotalOrders can be smaller than
// the number of order records the user owns.
type OrderSummary struct {
	TotalOrders int      `json:"total_orders"`
	TotalSpent  float64  `json:"total_spent"`
	Travels     []string `json:"travels"`
}

// Engine evaluates aggregation views against a Store.
type Engine struct {
	store store.Store
}

// NewEngine creates a query engine over the given store.
func NewEngine(s store.Store) *Engine {
	return &Engine{store: s}
}

// TravelsByCountry returns the names of all travels destined for the named
// country. A country with no travels yields an empty list; an unknown
// country name yields ErrNotFound.
func (e *Engine) TravelsByCountry(ctx context.Context, countryName string) (*CountryTravels, error) {
	countries, err := e.store.FindCountriesByName(ctx, countryName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up country: %w", err)
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("%w: country %q", ErrNotFound, countryName)
	}
	if len(countries) > 1 {
		return nil, fmt.Errorf("%w: country name %q matches %d records", ErrAmbiguous, countryName, len(countries))
	}
	country := countries[0]

	travels, err := e.store.ListTravelsByCountry(ctx, country.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list travels: %w", err)
	}

	names := make([]string, 0, len(travels))
	for _, travel := range travels {
		names = append(names, travel.Name)
	}
	return &CountryTravels{Country: country.Name, Travels: names}, nil
}

// OrdersByUser summarizes all orders of the user with the given email. A user
// with no orders yields a zero summary, not ErrNotFound. Orders referencing a
// deleted travel are skipped entirely.
func (e *Engine) OrdersByUser(ctx context.Context, email string) (*OrderSummary, error) {
	users, err := e.store.FindUsersByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, email)
	}
	if len(users) > 1 {
		return nil, fmt.Errorf("%w: user email %q matches %d records", ErrAmbiguous, email, len(users))
	}
	user := users[0]

	orders, err := e.store.ListOrdersByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	summary := &OrderSummary{Travels: []string{}}
	for _, order := range orders {
		travel, err := e.store.GetTravel(ctx, order.TravelID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve travel for order %s: %w", order.ID, err)
		}
		if travel == nil {
			// Dangling reference: the travel was deleted after the
			// order was placed. The order is excluded rather than
			// failing the whole summary.
			continue
		}
		summary.TotalOrders++
		summary.TotalSpent += travel.Price
		summary.Travels = append(summary.Travels, travel.Name)
	}
	return summary, nil
}
