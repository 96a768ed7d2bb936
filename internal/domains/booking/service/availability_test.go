package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carshare/internal/domains/booking/model"
	"carshare/internal/domains/booking/service"
	"carshare/shared/daterange"
)

func day(n int) time.Time {
	return time.Date(2024, 3, n, 0, 0, 0, 0, time.UTC)
}

func span(from, to int) daterange.DateRange {
	return daterange.DateRange{Start: day(from), End: day(to)}
}

func resourceFixture() model.Resource {
	return model.Resource{
		ID:              "car-1",
		OwnerID:         "owner-1",
		DailyPrice:      50000,
		AvailableWindow: span(1, 31),
		CommittedRanges: []daterange.DateRange{
			{Start: day(10), End: day(12).Add(daterange.EndOfDay)},
		},
	}
}

func TestIsDayFree(t *testing.T) {
	resource := resourceFixture()

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{name: "inside window, no booking", day: day(5), want: true},
		{name: "first day of window", day: day(1), want: true},
		{name: "last day of window", day: day(31), want: true},
		{name: "before window", day: day(1).Add(-time.Millisecond), want: false},
		{name: "after window", day: day(31).Add(time.Millisecond), want: false},
		{name: "committed start", day: day(10), want: false},
		{name: "inside committed", day: day(11), want: false},
		{name: "committed end of day", day: day(12).Add(daterange.EndOfDay), want: false},
		{name: "day after committed", day: day(13), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.IsDayFree(tt.day, resource))
		})
	}
}

func TestIsRangeSelectable(t *testing.T) {
	resource := resourceFixture()

	tests := []struct {
		name      string
		candidate daterange.DateRange
		want      bool
	}{
		{name: "free range", candidate: span(3, 6), want: true},
		{name: "overlaps committed", candidate: span(8, 14), want: false},
		{name: "end lands on committed day is not walked", candidate: span(7, 10), want: true},
		{name: "start on committed day is skipped", candidate: span(12, 15), want: true},
		{name: "second day committed", candidate: span(9, 13), want: false},
		{name: "start equals end", candidate: span(11, 11), want: true},
		{name: "single day", candidate: span(11, 12), want: true},
		{name: "one millisecond", candidate: daterange.DateRange{Start: day(11), End: day(11).Add(time.Millisecond)}, want: true},
		{name: "runs past window", candidate: span(29, 33), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.IsRangeSelectable(tt.candidate, resource))
		})
	}
}
