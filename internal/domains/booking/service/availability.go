package service

import (
	"time"

	"carshare/internal/domains/booking/model"
	"carshare/shared/daterange"
)

// IsDayFree reports whether day lies inside the resource's open window and outside
// every committed range. Both checks include their boundaries.
func IsDayFree(day time.Time, resource model.Resource) bool {
	if !resource.AvailableWindow.Contains(day) {
		return false
	}

	for _, committed := range resource.CommittedRanges {
		if committed.Contains(day) {
			return false
		}
	}

	return true
}

// IsRangeSelectable walks the days from candidate.Start + 1 day up to, but excluding,
// candidate.End. The start day itself is left to the picker's bounds and is not checked.
func IsRangeSelectable(candidate daterange.DateRange, resource model.Resource) bool {
	for cursor := candidate.Start.Add(daterange.Day); cursor.Before(candidate.End); cursor = cursor.Add(daterange.Day) {
		if !IsDayFree(cursor, resource) {
			return false
		}
	}

	return true
}
