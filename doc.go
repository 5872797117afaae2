// Package timetravelstore is a catalog and booking service for time-travel
// offers with dual database backend support (SurrealDB and PostgreSQL).
//
// The service manages five collections: categories, countries, travels with
// embedded reviews, users and orders. On top of the CRUD surface it exposes
// two aggregation views, the travels available for a country and the order
// summary for a user. References between collections are soft: nothing checks
// that a referenced record exists at write time, deletes never cascade, and
// the aggregations exclude orders whose travel has since been deleted.
//
// # Architecture Overview
//
//   - Multi-backend storage: the
//     [github.com/NikMakPak/timetravelstore/pkg/store.Store] interface
//     abstracts SurrealDB (native SurrealQL with a CBOR codec), PostgreSQL
//     (GORM with JSONB for embedded reviews) and an in-memory implementation
//     used by the test suites.
//   - Application-side joins: the
//     [github.com/NikMakPak/timetravelstore/pkg/query.Engine] evaluates the
//     aggregation views over store primitives, keeping the
//     dangling-reference policy in one place.
//   - Command pattern: the
//     [github.com/NikMakPak/timetravelstore/pkg/timetravelstore.Command]
//     interface organizes the run, migrate and seed operations.
//
// # Data Model
//
// All entities use typed IDs backed by UUIDs for type safety and seamless
// operation across both database backends. See
// [github.com/NikMakPak/timetravelstore/pkg/models] for the entity
// definitions and the partial-update patch types.
//
// # Getting Started
//
// For command-line usage and configuration, see
// [github.com/NikMakPak/timetravelstore/pkg/timetravelstore].
//
// # API Integration
//
// The [github.com/NikMakPak/timetravelstore/pkg/client] package provides a
// Go HTTP client for programmatic access to the API; the smoke test in this
// directory drives a running server through it.
package timetravelstore
