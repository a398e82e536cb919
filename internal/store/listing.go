package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/M1XZG/vrcx-query-tools/internal/report"
)

// World summarizes one world's presence activity in a date range.
type World struct {
	ID        string
	Name      string
	Instances int
	Events    int
}

// Instance summarizes one instance's presence activity in a date range.
type Instance struct {
	Location  string
	WorldName string
	Events    int
	People    int
}

// VisitStats summarizes the observing user's time in one instance,
// from the location history table.
type VisitStats struct {
	Location     string
	WorldName    string
	Visits       int
	TotalSeconds int
	FirstVisit   string
	LastVisit    string
}

// Worlds lists the worlds seen in [from, to], folded from per-location
// counts. The join/leave table has no world_id column, so the id is
// recovered from the location string; unparseable locations are
// skipped. Ordered by event count descending, then id.
func (s *Store) Worlds(
	ctx context.Context, from, to string,
) ([]World, error) {
	query := `SELECT location, world_name, COUNT(*)
		FROM ` + s.opts.JoinLeaveTable + `
		WHERE DATE(created_at) BETWEEN ? AND ?
		GROUP BY location`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf(
			"querying %s locations: %w", s.opts.JoinLeaveTable, err,
		)
	}
	defer rows.Close()

	byWorld := make(map[string]*World)
	for rows.Next() {
		var location, world sql.NullString
		var count int
		if err := rows.Scan(&location, &world, &count); err != nil {
			return nil, fmt.Errorf("scanning world row: %w", err)
		}
		id := report.WorldIDOf(location.String)
		if id == "" {
			continue
		}
		w := byWorld[id]
		if w == nil {
			w = &World{ID: id, Name: world.String}
			byWorld[id] = w
		}
		w.Instances++
		w.Events += count
		if w.Name == "" {
			w.Name = world.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating world rows: %w", err)
	}

	worlds := make([]World, 0, len(byWorld))
	for _, w := range byWorld {
		worlds = append(worlds, *w)
	}
	sort.Slice(worlds, func(i, j int) bool {
		if worlds[i].Events != worlds[j].Events {
			return worlds[i].Events > worlds[j].Events
		}
		return worlds[i].ID < worlds[j].ID
	})
	return worlds, nil
}

// Instances lists the given world's instances seen in [from, to],
// ordered by people descending then location.
func (s *Store) Instances(
	ctx context.Context, from, to, worldID string,
) ([]Instance, error) {
	query := `SELECT location, world_name, COUNT(*),
			COUNT(DISTINCT display_name)
		FROM ` + s.opts.JoinLeaveTable + `
		WHERE DATE(created_at) BETWEEN ? AND ?
		GROUP BY location`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf(
			"querying %s instances: %w", s.opts.JoinLeaveTable, err,
		)
	}
	defer rows.Close()

	var instances []Instance
	for rows.Next() {
		var location, world sql.NullString
		var events, people int
		if err := rows.Scan(
			&location, &world, &events, &people,
		); err != nil {
			return nil, fmt.Errorf("scanning instance row: %w", err)
		}
		if report.WorldIDOf(location.String) != worldID {
			continue
		}
		instances = append(instances, Instance{
			Location:  location.String,
			WorldName: world.String,
			Events:    events,
			People:    people,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating instance rows: %w", err)
	}

	sort.Slice(instances, func(i, j int) bool {
		if instances[i].People != instances[j].People {
			return instances[i].People > instances[j].People
		}
		return instances[i].Location < instances[j].Location
	})
	return instances, nil
}

// InstanceStats aggregates the observing user's visits per instance in
// [from, to], most time first.
func (s *Store) InstanceStats(
	ctx context.Context, from, to string,
) ([]VisitStats, error) {
	query := `SELECT location, world_name, COUNT(*),
			COALESCE(SUM(time), 0),
			MIN(created_at), MAX(created_at)
		FROM ` + s.opts.LocationTable + `
		WHERE DATE(created_at) BETWEEN ? AND ?
		GROUP BY location
		ORDER BY COALESCE(SUM(time), 0) DESC, location ASC`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf(
			"querying %s stats: %w", s.opts.LocationTable, err,
		)
	}
	defer rows.Close()

	var stats []VisitStats
	for rows.Next() {
		var location, world, first, last sql.NullString
		var visits, total int
		if err := rows.Scan(
			&location, &world, &visits, &total, &first, &last,
		); err != nil {
			return nil, fmt.Errorf("scanning visit stats row: %w", err)
		}
		stats = append(stats, VisitStats{
			Location:     location.String,
			WorldName:    world.String,
			Visits:       visits,
			TotalSeconds: total,
			FirstVisit:   first.String,
			LastVisit:    last.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visit stats rows: %w", err)
	}
	return stats, nil
}
