package core

import (
	"log/slog"

	"github.com/google/uuid"
)

// UIDGenerator hands out component uids.
// Implemented by UUIDv7Generator (production) and testutil.FixedUIDGenerator (tests).
type UIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 component uids.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// WarnHandler receives diagnostic warnings instead of the logger.
// trace is the formatted component name ("<Counter>").
type WarnHandler func(msg string, vm *Component, trace string)

// ErrorHandler receives errors raised inside hooks, handlers, watchers and
// render functions.
type ErrorHandler func(err error, vm *Component, info string)

// Config is the process-scoped configuration of one constructor.
type Config struct {
	// Production drops warnings and tips.
	Production bool

	// Silent suppresses logged warnings. A WarnHandler still receives them.
	Silent bool

	WarnHandler  WarnHandler
	ErrorHandler ErrorHandler

	// Logger is used for warnings, tips and unhandled errors.
	// Default: slog.Default().
	Logger *slog.Logger

	// UIDs generates component uids. Default: UUIDv7Generator.
	UIDs UIDGenerator

	// Recorder receives timeline events. Optional.
	Recorder Recorder
}

// Option configures a Constructor.
type Option func(*Constructor)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Constructor) {
		c.cfg.Logger = l
	}
}

// WithProduction turns off warnings and tips.
func WithProduction(production bool) Option {
	return func(c *Constructor) {
		c.cfg.Production = production
	}
}

// WithSilent suppresses logged warnings.
func WithSilent(silent bool) Option {
	return func(c *Constructor) {
		c.cfg.Silent = silent
	}
}

// WithWarnHandler routes warnings to fn.
func WithWarnHandler(fn WarnHandler) Option {
	return func(c *Constructor) {
		c.cfg.WarnHandler = fn
	}
}

// WithErrorHandler routes runtime errors to fn.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(c *Constructor) {
		c.cfg.ErrorHandler = fn
	}
}

// WithUIDGenerator sets the uid generator.
// Use testutil.NewFixedUIDGenerator for deterministic tests.
func WithUIDGenerator(g UIDGenerator) Option {
	return func(c *Constructor) {
		c.cfg.UIDs = g
	}
}

// WithRecorder attaches a timeline recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Constructor) {
		c.cfg.Recorder = r
	}
}

// WithClock replaces the logical clock. Use testutil.NewDeterministicClock
// for reproducible traces.
func WithClock(s Sequencer) Option {
	return func(c *Constructor) {
		c.clock = s
	}
}

// WithExtraCapabilities composes additional capabilities after the standard
// five. Their requirements are checked like any other.
func WithExtraCapabilities(caps ...Capability) Option {
	return func(c *Constructor) {
		c.extra = append(c.extra, caps...)
	}
}
