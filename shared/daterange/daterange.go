// Package daterange models an interval of instants used both for a resource's open
// booking window and for a single candidate or committed booking.
package daterange

import (
	"fmt"
	"time"

	"carshare/shared/failure"
)

const (
	// Day is the calendar-day unit used by the date picker.
	Day = 24 * time.Hour
	// EndOfDay widens a picker end boundary so the selected last day is covered in full.
	EndOfDay = Day - time.Millisecond
)

type DateRange struct {
	Start time.Time `json:"start" db:"start_at"`
	End   time.Time `json:"end"   db:"end_at"`
}

// New returns a range, rejecting a start after the end.
func New(start, end time.Time) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, failure.BadRequestFromString(fmt.Sprintf("range start %s is after end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))) //nolint:wrapcheck
	}

	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether t lies within the range, both ends inclusive.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Overlaps reports whether the two closed ranges share at least one instant.
func (r DateRange) Overlaps(other DateRange) bool {
	return !other.Start.After(r.End) && !other.End.Before(r.Start)
}

// WidenToEndOfDay extends End so that the whole last calendar day is included.
func (r DateRange) WidenToEndOfDay() DateRange {
	return DateRange{Start: r.Start, End: r.End.Add(EndOfDay)}
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}
