package main

import (
	"context"
	"fmt"
	"io"

	"github.com/M1XZG/vrcx-query-tools/internal/store"
)

func runListWorlds(
	ctx context.Context, st *store.Store, start, end string,
	stdout, stderr io.Writer,
) int {
	worlds, err := st.Worlds(ctx, start, end)
	if err != nil {
		fmt.Fprintf(stderr, "vrcxquery: %v\n", err)
		return exitStore
	}
	if len(worlds) == 0 {
		fmt.Fprintln(stdout, "No worlds seen in the requested range.")
		return exitOK
	}

	fmt.Fprintf(stdout, "%-42s %-35s %10s %8s\n",
		"World ID", "Name", "Instances", "Events")
	for _, w := range worlds {
		fmt.Fprintf(stdout, "%-42s %-35s %10d %8d\n",
			w.ID, clip(w.Name, 35), w.Instances, w.Events)
	}
	return exitOK
}

func runListInstances(
	ctx context.Context, st *store.Store, worldID, start, end string,
	stdout, stderr io.Writer,
) int {
	instances, err := st.Instances(ctx, start, end, worldID)
	if err != nil {
		fmt.Fprintf(stderr, "vrcxquery: %v\n", err)
		return exitStore
	}
	if len(instances) == 0 {
		fmt.Fprintf(stdout, "No instances of %s in the requested range.\n", worldID)
		return exitOK
	}

	fmt.Fprintf(stdout, "%-50s %-30s %8s %8s\n",
		"Instance", "World", "Events", "People")
	for _, in := range instances {
		fmt.Fprintf(stdout, "%-50s %-30s %8d %8d\n",
			clip(in.Location, 50), clip(in.WorldName, 30),
			in.Events, in.People)
	}
	return exitOK
}

func runLocations(
	ctx context.Context, st *store.Store, start, end string,
	stdout, stderr io.Writer,
) int {
	visits, err := st.LocationEvents(ctx, start, end)
	if err != nil {
		fmt.Fprintf(stderr, "vrcxquery: %v\n", err)
		return exitStore
	}
	stats, err := st.InstanceStats(ctx, start, end)
	if err != nil {
		fmt.Fprintf(stderr, "vrcxquery: %v\n", err)
		return exitStore
	}
	if len(visits) == 0 {
		fmt.Fprintln(stdout, "No location history in the requested range.")
		return exitOK
	}

	fmt.Fprintf(stdout, "%-20s %-30s %-45s %8s\n",
		"When", "World", "Instance", "Hours")
	for _, v := range visits {
		when := ""
		if !v.Timestamp.IsZero() {
			when = v.Timestamp.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(stdout, "%-20s %-30s %-45s %8.2f\n",
			when, clip(v.WorldName, 30), clip(v.Location, 45),
			float64(v.DurationSeconds)/3600)
	}

	fmt.Fprintf(stdout, "\n%-45s %-30s %7s %8s\n",
		"Instance", "World", "Visits", "Hours")
	for _, s := range stats {
		fmt.Fprintf(stdout, "%-45s %-30s %7d %8.2f\n",
			clip(s.Location, 45), clip(s.WorldName, 30),
			s.Visits, float64(s.TotalSeconds)/3600)
	}
	return exitOK
}
