// Package models defines the timetravelstore domain entities and their typed
// identifiers.
//
// The five entities ([Category], [Country], [Travel], [User] and [Order])
// each carry a store-generated, uuid-backed typed ID ([CategoryID],
// [CountryID], [TravelID], [UserID], [OrderID]). [Review] is the one embedded
// type: reviews live inside their Travel's ordered [Reviews] list and are
// never persisted separately.
//
// Typed IDs serve three serialization worlds at once: JSON (plain string) for
// the HTTP API, CBOR RecordID tags for SurrealDB, and driver.Valuer/
// sql.Scanner for PostgreSQL. Wrapping uuid.UUID in distinct types keeps a
// TravelID from ever being passed where a UserID belongs.
//
// Foreign-key fields (Travel.CategoryID, Travel.CountryID, Order.UserID,
// Order.TravelID, Review.UserID) are soft references: the store does not
// check that the target exists when writing, and deletes do not cascade.
//
// Partial updates are expressed with the *Patch types, whose pointer fields
// distinguish "field not supplied" from "field set to its zero value".
package models
