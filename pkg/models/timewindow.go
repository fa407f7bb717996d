package models

import "fmt"

// MinutesPerDay is the exclusive upper bound for a window's end minute.
const MinutesPerDay = 24 * 60

// TimeWindow is a half-open [start, end) interval within a single day,
// expressed in minutes since midnight. A full day is [0, 1440).
type TimeWindow struct {
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

// NewTimeWindow builds a validated window.
func NewTimeWindow(start, end int) (TimeWindow, error) {
	w := TimeWindow{StartMinute: start, EndMinute: end}
	if err := w.Validate(); err != nil {
		return TimeWindow{}, err
	}
	return w, nil
}

// Validate checks the window invariants: bounds within [0, 1440] and a
// strictly positive duration.
func (w TimeWindow) Validate() error {
	if w.StartMinute < 0 || w.EndMinute > MinutesPerDay {
		return fmt.Errorf("time window %s out of day bounds", w)
	}
	if w.EndMinute <= w.StartMinute {
		return fmt.Errorf("time window %s must end after it starts", w)
	}
	return nil
}

// Duration returns the window length in minutes.
func (w TimeWindow) Duration() int {
	return w.EndMinute - w.StartMinute
}

// Overlaps reports whether two windows share any time.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.StartMinute < other.EndMinute && other.StartMinute < w.EndMinute
}

// Contains reports whether other lies entirely within w.
func (w TimeWindow) Contains(other TimeWindow) bool {
	return w.StartMinute <= other.StartMinute && w.EndMinute >= other.EndMinute
}

// String formats the window as "HH:MM-HH:MM".
func (w TimeWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		w.StartMinute/60, w.StartMinute%60,
		w.EndMinute/60, w.EndMinute%60)
}
