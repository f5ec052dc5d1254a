// Package ir provides the dynamic value model for component options and data.
//
// Component data, props and emitted payloads travel through the runtime as
// ir.Value. The sealed set (Null, String, Int, Float, Bool, Array, Object)
// keeps values serializable: manifests decode into it, the timeline store
// persists it as canonical JSON, and golden traces are rendered from it.
//
// ir imports only internal/shared. Everything else builds on ir.
//
// Key design constraints:
//   - Null is an explicit value; a Go nil Value means "absent"
//   - Object iteration for output always goes through SortedKeys
//   - Canonical JSON is the only serialization used for hashing
package ir
