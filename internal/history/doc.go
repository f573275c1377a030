// Package history keeps a local SQLite log of generation runs.
//
// Only batch metadata is stored: length, count, categories, pool size,
// entropy, strength and the breach-check counters. Passwords never reach
// the database.
//
// The database lives in a single file (rpg.db) under the XDG data
// directory and is opened through the CGO-free modernc.org/sqlite driver.
package history
