package timetravelstore

// Command represents a discrete application operation with its specific
// configuration. Commands are produced by Parse from the command line and
// dispatched by Main to the matching App method.
type Command interface {
	// Name returns the command identifier used for routing.
	Name() string
}

// RunCommand starts the HTTP server. All server configuration comes from the
// shared Config.
type RunCommand struct{}

func (c *RunCommand) Name() string { return "run" }

// MigrateCommand initializes or updates the store schema: tables and indexes
// for PostgreSQL, unique indexes for SurrealDB, nothing for the memory store.
// Safe to run repeatedly.
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string { return "migrate" }

// SeedCommand loads the demonstration catalog into the store: three
// categories, two countries, three travels with embedded reviews, two users
// and their orders.
type SeedCommand struct{}

func (c *SeedCommand) Name() string { return "seed" }
