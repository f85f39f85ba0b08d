// Package tasks orchestrates liked-video reconciliation with real-time progress reporting.
//
// # Core Operations
//
// The [SyncEngine] interface defines three operations:
//
//  1. [SyncEngine.Reconcile] : Resolve liked videos to catalog tracks
//     - Parses each display title into an (artist, title) candidate
//     - Two-tier catalog lookup: artist+title, then title-only
//     - Returns a Plan of resolved IDs (source order) and unresolved titles
//
//  2. [SyncEngine.Converge] : Apply a plan to the destination playlist
//     - Dedups against a pre-run membership snapshot
//     - Appends in bounded batches with paced, jittered pauses
//     - Not atomic across batches but idempotent on re-run
//
//  3. [SyncEngine.Run] : Full pipeline, fetch through convergence
//     - Dry-run mode stops after resolution with zero destination calls
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and
// optional data. Updates use select with default to prevent blocking.
//
// # Failure Semantics
//
// Per-item resolution misses are absorbed into the plan as unresolved
// entries. Infrastructure failures (retry-budget exhaustion, credential
// errors, append failures) abort the run with no rollback of batches
// already committed.
//
// # Implementation
//
// [LikesEngine] implements [SyncEngine] with dependencies on:
//   - [services.SourceService] : YouTube liked-videos feed
//   - [services.CatalogService] : Spotify search and playlist mutation
//   - [titles.Parser] : display-title heuristics
//   - [match.Matcher] : scored catalog resolution with retry and pacing
package tasks
