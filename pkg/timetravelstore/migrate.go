package timetravelstore

import "context"

// Migrate initializes the store schema. For PostgreSQL this creates tables
// and indexes through GORM's AutoMigrate; for SurrealDB it defines the unique
// indexes; the memory store needs nothing.
func (a *App) Migrate(ctx context.Context, cmd *MigrateCommand) error {
	a.logger.Info().Str("store", a.config.StoreKind).Msg("running migrations")
	if err := a.store.Migrate(ctx); err != nil {
		return err
	}
	a.logger.Info().Msg("migrations complete")
	return nil
}
