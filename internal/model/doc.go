// Package model defines the data structures shared between the generation
// pipeline, the report writers and the history store.
//
// This package contains the following main types:
//   - Batch: The result of one generation run (passwords plus entropy)
//   - Strength: The entropy chart bucket of a batch
//   - AuditReport: The breach status of passwords checked by `rpg check`
//
// The models carry JSON and YAML tags and are serialized directly by the
// report writers. None of them is persisted with password contents.
package model
