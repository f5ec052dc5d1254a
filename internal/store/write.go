package store

import (
	"context"
	"fmt"

	"github.com/roach88/facet/internal/ir"
)

// Record inserts a timeline event. Implements core.Recorder.
//
// The row id is the content-addressed ir.EventID, and ON CONFLICT(id) DO
// NOTHING makes duplicate writes silent no-ops. Unknown kinds are rejected
// before touching the database.
func (s *Store) Record(ctx context.Context, ev ir.TimelineEvent) error {
	if !ir.ValidEventKinds[ev.Kind] {
		return fmt.Errorf("record event: unknown kind %q", ev.Kind)
	}

	id, err := ir.EventID(ev)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}

	payloadJSON, err := marshalPayload(ev.Payload)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO timeline_events
		(id, seq, kind, component_uid, component_name, name, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		ev.Seq,
		string(ev.Kind),
		ev.ComponentUID,
		ev.ComponentName,
		ev.Name,
		payloadJSON,
	)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}

	return nil
}
