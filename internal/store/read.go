package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/facet/internal/ir"
)

// ComponentSummary describes one component seen in the timeline.
type ComponentSummary struct {
	UID    string `json:"uid"`
	Name   string `json:"name"`
	Events int    `json:"events"`
}

// ReadTimeline returns every event, ordered by seq.
//
// Returns an empty slice (not nil) if the timeline is empty.
func (s *Store) ReadTimeline(ctx context.Context) ([]ir.TimelineEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, component_uid, component_name, name, payload
		FROM timeline_events
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query timeline: %w", err)
	}
	return scanEvents(rows)
}

// ReadComponent returns the events of one component, ordered by seq.
//
// Returns an empty slice (not nil) if the component has no events.
func (s *Store) ReadComponent(ctx context.Context, uid string) ([]ir.TimelineEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, component_uid, component_name, name, payload
		FROM timeline_events
		WHERE component_uid = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, uid)
	if err != nil {
		return nil, fmt.Errorf("query component %s: %w", uid, err)
	}
	return scanEvents(rows)
}

// ReadComponents lists the components present in the timeline, in order of
// their first event.
func (s *Store) ReadComponents(ctx context.Context) ([]ComponentSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT component_uid, MAX(component_name), COUNT(*)
		FROM timeline_events
		WHERE component_uid != ''
		GROUP BY component_uid
		ORDER BY MIN(seq) ASC, component_uid COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query components: %w", err)
	}
	defer rows.Close()

	summaries := []ComponentSummary{}
	for rows.Next() {
		var cs ComponentSummary
		if err := rows.Scan(&cs.UID, &cs.Name, &cs.Events); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		summaries = append(summaries, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate components: %w", err)
	}
	return summaries, nil
}

// CountByKind returns the number of events per kind. Kinds with no events
// are absent.
func (s *Store) CountByKind(ctx context.Context) (map[ir.EventKind]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*)
		FROM timeline_events
		GROUP BY kind
		ORDER BY kind COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query kinds: %w", err)
	}
	defer rows.Close()

	counts := make(map[ir.EventKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan kind: %w", err)
		}
		counts[ir.EventKind(kind)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kinds: %w", err)
	}
	return counts, nil
}

// LastSeq returns the highest recorded seq, or 0 for an empty timeline.
// A constructor continuing an existing timeline starts its clock here.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM timeline_events`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("query last seq: %w", err)
	}
	return seq.Int64, nil
}

func scanEvents(rows *sql.Rows) ([]ir.TimelineEvent, error) {
	defer rows.Close()

	events := []ir.TimelineEvent{}
	for rows.Next() {
		var (
			ev          ir.TimelineEvent
			kind        string
			payloadJSON string
		)
		if err := rows.Scan(&ev.Seq, &kind, &ev.ComponentUID, &ev.ComponentName, &ev.Name, &payloadJSON); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Kind = ir.EventKind(kind)

		payload, err := unmarshalPayload(payloadJSON)
		if err != nil {
			return nil, fmt.Errorf("event seq=%d: %w", ev.Seq, err)
		}
		ev.Payload = payload
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
