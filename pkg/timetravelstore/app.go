// Package timetravelstore wires the catalog service together: configuration
// parsing, store selection, the HTTP API and the migrate and seed commands.
package timetravelstore

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/NikMakPak/timetravelstore/pkg/query"
	"github.com/NikMakPak/timetravelstore/pkg/store"
	"github.com/NikMakPak/timetravelstore/pkg/store/memory"
	"github.com/NikMakPak/timetravelstore/pkg/store/postgres"
	"github.com/NikMakPak/timetravelstore/pkg/store/surrealdb"
)

// Store backend names accepted by the -store flag.
const (
	StoreSurrealDB = "surrealdb"
	StorePostgres  = "postgres"
	StoreMemory    = "memory"
)

// Config holds application configuration. Values come from command line flags
// with environment variable fallbacks, see Parse.
type Config struct {
	// StoreKind selects the backend: surrealdb, postgres or memory.
	StoreKind string

	PostgresDSN string

	SurrealDBURL  string
	SurrealDBNS   string
	SurrealDBDB   string
	SurrealDBUser string
	SurrealDBPass string

	ServerPort string
}

// App holds the application state: the selected store, the query engine over
// it, and the logger shared by all handlers.
type App struct {
	store  store.Store
	engine *query.Engine
	config *Config
	logger zerolog.Logger
}

// New creates an application instance, connecting to the store backend named
// in the configuration.
func New(config *Config) (*App, error) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var appStore store.Store
	var err error

	switch config.StoreKind {
	case StoreSurrealDB:
		appStore, err = surrealdb.NewSurrealStore(
			config.SurrealDBURL,
			config.SurrealDBNS,
			config.SurrealDBDB,
			config.SurrealDBUser,
			config.SurrealDBPass,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
		}
		logger.Info().Str("url", config.SurrealDBURL).Msg("connected to SurrealDB")
	case StorePostgres:
		appStore, err = postgres.NewPostgresStore(config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		logger.Info().Msg("connected to PostgreSQL")
	case StoreMemory:
		appStore = memory.NewMemoryStore()
		logger.Info().Msg("using in-memory store")
	default:
		return nil, fmt.Errorf("unknown store kind: %s", config.StoreKind)
	}

	return &App{
		store:  appStore,
		engine: query.NewEngine(appStore),
		config: config,
		logger: logger,
	}, nil
}

// NewWithStore creates an application instance over an already constructed
// store. Used by tests to run handlers against the memory backend.
func NewWithStore(s store.Store, config *Config) *App {
	return &App{
		store:  s,
		engine: query.NewEngine(s),
		config: config,
		logger: zerolog.New(os.Stdout).With().Timestamp().Logger(),
	}
}

// Close closes the application and its resources.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Store returns the underlying store, useful for tests and seeding.
func (a *App) Store() store.Store {
	return a.store
}

// getEnv returns the environment variable value, or the default when the
// variable is unset or empty.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
