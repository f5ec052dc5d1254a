// Package store provides SQLite-backed durable storage for component
// timelines.
//
// The store is an append-only log of timeline events: lifecycle hook calls,
// emitted events, warnings, errors and plugin installations. A constructor
// writes to it through core.Recorder when the CLI runs with --record.
//
// # Logical time
//
// All ordering uses the seq column (the constructor's logical clock), never
// timestamps. Every query orders by seq ASC, id ASC COLLATE BINARY, so reads
// are identical across runs.
//
// # Idempotency
//
// Event ids are content-addressed (ir.EventID). Writing the same event twice
// is a no-op.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
