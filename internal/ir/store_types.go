package ir

// EventKind categorizes timeline events.
type EventKind string

const (
	// EventHook is a lifecycle hook call (beforeCreate, mounted, ...).
	EventHook EventKind = "hook"
	// EventEmit is an event emitted through $emit.
	EventEmit EventKind = "emit"
	// EventWarn is a diagnostic warning.
	EventWarn EventKind = "warn"
	// EventPlugin is a plugin installation on a constructor.
	EventPlugin EventKind = "plugin"
	// EventError is an error routed to the error handler.
	EventError EventKind = "error"
)

// ValidEventKinds lists the kinds the store accepts.
var ValidEventKinds = map[EventKind]bool{
	EventHook:   true,
	EventEmit:   true,
	EventWarn:   true,
	EventPlugin: true,
	EventError:  true,
}

// TimelineEvent is one entry in a constructor's timeline.
// Seq comes from the constructor's logical clock, never from wall time.
type TimelineEvent struct {
	Seq           int64     `json:"seq"`
	Kind          EventKind `json:"kind"`
	ComponentUID  string    `json:"component_uid,omitempty"`
	ComponentName string    `json:"component_name,omitempty"`
	Name          string    `json:"name"`
	Payload       Array     `json:"payload,omitempty"`
}

func (ev TimelineEvent) payloadOrEmpty() Array {
	if ev.Payload == nil {
		return Array{}
	}
	return ev.Payload
}
