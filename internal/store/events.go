package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/M1XZG/vrcx-query-tools/internal/report"
)

// PresenceEvents returns the join/leave rows whose date falls in
// [from, to] inclusive, ascending by created_at. Rows with a null or
// unparseable timestamp come back with a zero Timestamp so the engine
// can count them as anomalies instead of losing them silently.
func (s *Store) PresenceEvents(
	ctx context.Context, from, to string,
) ([]report.PresenceEvent, error) {
	query := `SELECT created_at, type, display_name, user_id,
			location, world_name
		FROM ` + s.opts.JoinLeaveTable + `
		WHERE DATE(created_at) BETWEEN ? AND ?
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf(
			"querying %s: %w", s.opts.JoinLeaveTable, err,
		)
	}
	defer rows.Close()

	var events []report.PresenceEvent
	for rows.Next() {
		var createdAt, kind, name, userID, location, world sql.NullString
		if err := rows.Scan(
			&createdAt, &kind, &name, &userID, &location, &world,
		); err != nil {
			return nil, fmt.Errorf("scanning presence row: %w", err)
		}
		ev := report.PresenceEvent{
			Kind:        kind.String,
			DisplayName: name.String,
			UserID:      userID.String,
			Location:    location.String,
			WorldName:   world.String,
		}
		if t, ok := report.ParseTimestamp(createdAt.String); ok {
			ev.Timestamp = t
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating presence rows: %w", err)
	}
	return events, nil
}

// LocationEvents returns the observing user's location history for
// [from, to] inclusive, ascending by created_at.
func (s *Store) LocationEvents(
	ctx context.Context, from, to string,
) ([]report.LocationEvent, error) {
	query := `SELECT created_at, location, world_id, world_name,
			time, group_name
		FROM ` + s.opts.LocationTable + `
		WHERE DATE(created_at) BETWEEN ? AND ?
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf(
			"querying %s: %w", s.opts.LocationTable, err,
		)
	}
	defer rows.Close()

	var events []report.LocationEvent
	for rows.Next() {
		var createdAt, location, worldID, world, group sql.NullString
		var duration sql.NullInt64
		if err := rows.Scan(
			&createdAt, &location, &worldID, &world,
			&duration, &group,
		); err != nil {
			return nil, fmt.Errorf("scanning location row: %w", err)
		}
		ev := report.LocationEvent{
			Location:        location.String,
			WorldID:         worldID.String,
			WorldName:       world.String,
			DurationSeconds: int(duration.Int64),
			GroupName:       group.String,
		}
		if t, ok := report.ParseTimestamp(createdAt.String); ok {
			ev.Timestamp = t
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating location rows: %w", err)
	}
	return events, nil
}
