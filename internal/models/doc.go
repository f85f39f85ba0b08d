// Package models defines domain entities and persistence interfaces for the likesync pipeline.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing external service data
//   - [SourceItem] : A liked video pulled from the source catalog
//   - [CatalogRecord] : A track search result from the destination catalog
//   - [Plan] : The reconciliation outcome for one run
//   - [DestinationState] : Snapshot of the destination playlist's membership
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Token] : Cached OAuth2 credentials, one per service
//
// Persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
