package timetravelstore

import (
	"context"
	"fmt"
	"time"

	"github.com/NikMakPak/timetravelstore/pkg/models"
)

// Seed loads the demonstration catalog: three categories, two countries,
// three time-travel offers with embedded reviews, two users and three orders.
// Running it against a non-empty store fails on the first unique constraint,
// so it is meant for fresh databases.
func (a *App) Seed(ctx context.Context, cmd *SeedCommand) error {
	a.logger.Info().Str("store", a.config.StoreKind).Msg("seeding demonstration catalog")

	standard := &models.Category{Name: "Стандартные путешествия"}
	promo := &models.Category{Name: "Акционные путешествия"}
	vip := &models.Category{Name: "VIP путешествия"}
	for _, category := range []*models.Category{standard, promo, vip} {
		if err := a.store.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", category.Name, err)
		}
	}

	earth := &models.Country{Name: "Земля"}
	if err := a.store.CreateCountry(ctx, earth); err != nil {
		return fmt.Errorf("failed to seed country: %w", err)
	}
	mars := &models.Country{Name: "Марс"}
	if err := a.store.CreateCountry(ctx, mars); err != nil {
		return fmt.Errorf("failed to seed country: %w", err)
	}

	ivan := &models.User{Name: "Иван", Email: "ivan@example.com"}
	if err := a.store.CreateUser(ctx, ivan); err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}
	anna := &models.User{Name: "Анна", Email: "anna@example.com"}
	if err := a.store.CreateUser(ctx, anna); err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	future := &models.Travel{
		Name:        "Путешествие в будущее",
		Description: "Увлекательное путешествие в 2523 год",
		CategoryID:  standard.ID,
		CountryID:   earth.ID,
		Year:        2523,
		Price:       10000,
	}
	if err := a.store.CreateTravel(ctx, future); err != nil {
		return fmt.Errorf("failed to seed travel: %w", err)
	}

	pharaohs := &models.Travel{
		Name:        "Эпоха фараонов: Великий Египет",
		Description: "Путешествие в Древний Египет времен фараонов",
		CategoryID:  promo.ID,
		CountryID:   earth.ID,
		Year:        -2500,
		Price:       7500,
	}
	if err := a.store.CreateTravel(ctx, pharaohs); err != nil {
		return fmt.Errorf("failed to seed travel: %w", err)
	}

	marsTrip := &models.Travel{
		Name:        "Путешествие на Марс",
		Description: "Первая колония на Марсе, 2200 год",
		CategoryID:  vip.ID,
		CountryID:   mars.ID,
		Year:        2200,
		Price:       25000,
		Reviews: models.Reviews{
			{UserID: ivan.ID, Text: "Отличное путешествие!", Rating: 5},
			{UserID: anna.ID, Text: "Невероятный опыт! но мало показали всего", Rating: 4},
		},
	}
	if err := a.store.CreateTravel(ctx, marsTrip); err != nil {
		return fmt.Errorf("failed to seed travel: %w", err)
	}

	now := time.Now()
	orders := []*models.Order{
		{UserID: ivan.ID, TravelID: future.ID, OrderDate: now.Add(-48 * time.Hour)},
		{UserID: anna.ID, TravelID: marsTrip.ID, OrderDate: now.Add(-24 * time.Hour)},
		{UserID: anna.ID, TravelID: pharaohs.ID, OrderDate: now.Add(-12 * time.Hour)},
	}
	for _, order := range orders {
		if err := a.store.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to seed order: %w", err)
		}
	}

	a.logger.Info().Msg("seeding complete")
	return nil
}
