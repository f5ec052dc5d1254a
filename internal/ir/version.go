package ir

// Version constants for the value model and the runtime.
const (
	// SchemaVersion is the timeline/value schema version.
	SchemaVersion = "1"

	// RuntimeVersion is the facet runtime version.
	RuntimeVersion = "0.1.0"
)
