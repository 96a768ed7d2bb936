package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carshare/config"
	"carshare/internal/domains/booking/model"
	"carshare/internal/domains/booking/service"
	"carshare/shared/daterange"
)

func surcharges(medium, high int64) service.Surcharges {
	cfg := &config.Config{}
	cfg.Booking.Insurance.MediumSurcharge = medium
	cfg.Booking.Insurance.HighSurcharge = high

	return service.NewSurcharges(cfg)
}

func TestDayCount(t *testing.T) {
	tests := []struct {
		name string
		r    daterange.DateRange
		want int64
	}{
		{name: "three whole days", r: span(1, 4), want: 3},
		{name: "empty", r: span(4, 4), want: 0},
		{name: "one millisecond counts zero days", r: daterange.DateRange{Start: day(1), End: day(1).Add(time.Millisecond)}, want: 0},
		{name: "partial day rounds down", r: daterange.DateRange{Start: day(1), End: day(2).Add(daterange.EndOfDay)}, want: 1},
		{name: "reversed", r: span(4, 1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.DayCount(tt.r))
		})
	}
}

func TestComputeTotalPrice(t *testing.T) {
	table := surcharges(10000, 25000)

	tests := []struct {
		name       string
		r          daterange.DateRange
		dailyPrice int64
		tier       model.InsuranceTier
		table      service.Surcharges
		want       int64
	}{
		{name: "three days medium", r: span(1, 4), dailyPrice: 50000, tier: model.InsuranceMedium, table: table, want: 160000},
		{name: "three days low", r: span(1, 4), dailyPrice: 50000, tier: model.InsuranceLow, table: table, want: 150000},
		{name: "high", r: span(1, 2), dailyPrice: 50000, tier: model.InsuranceHigh, table: table, want: 75000},
		{name: "unset tier adds nothing", r: span(1, 2), dailyPrice: 50000, tier: "", table: table, want: 50000},
		{name: "one millisecond only pays surcharge", r: daterange.DateRange{Start: day(1), End: day(1).Add(time.Millisecond)}, dailyPrice: 50000, tier: model.InsuranceMedium, table: table, want: 10000},
		{name: "negative configuration clamps to zero", r: span(1, 2), dailyPrice: 100, tier: model.InsuranceHigh, table: surcharges(-5, -10), want: 100},
		{name: "negative daily price clamps to zero", r: span(1, 3), dailyPrice: -100, tier: model.InsuranceLow, table: table, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := service.ComputeBasePrice(tt.r, tt.dailyPrice)
			got := tt.table.ComputeTotalPrice(base, tt.tier)

			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, int64(0))
			assert.Equal(t, got, tt.table.ComputeTotalPrice(service.ComputeBasePrice(tt.r, tt.dailyPrice), tt.tier))
		})
	}
}
