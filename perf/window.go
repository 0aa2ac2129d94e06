package perf

import (
	"fmt"
	"time"
)

type Preset string

const (
	Day   Preset = "1d"
	Week  Preset = "1w"
	Month Preset = "1m"
	All   Preset = "all"
)

// Window selects the time range performance metrics are aggregated over.
// Either a preset (calendar offset back from "now") or an explicit inclusive
// [Start, End] range.
type Window struct {
	Preset Preset
	Start  time.Time
	End    time.Time
}

// Range returns an explicit window.
func Range(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

// ParseWindow accepts the preset names. An empty string means "all".
func ParseWindow(s string) (Window, error) {
	switch Preset(s) {
	case Day, Week, Month, All:
		return Window{Preset: Preset(s)}, nil
	case "":
		return Window{Preset: All}, nil
	}
	return Window{}, fmt.Errorf("unknown window %q (want 1d, 1w, 1m or all)", s)
}

// Resolve turns the window into concrete bounds. bounded is false for "all",
// meaning no filtering applies. now must be supplied by the caller; the
// aggregator never reads the clock itself.
func (w Window) Resolve(now time.Time) (start, end time.Time, bounded bool) {
	switch w.Preset {
	case Day:
		return now.AddDate(0, 0, -1), now, true
	case Week:
		return now.AddDate(0, 0, -7), now, true
	case Month:
		return now.AddDate(0, -1, 0), now, true
	case All:
		return time.Time{}, time.Time{}, false
	}
	if w.Start.IsZero() && w.End.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return w.Start, w.End, true
}

// contains reports whether t falls inside the inclusive window bounds.
func contains(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
