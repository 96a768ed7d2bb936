package service

import (
	"carshare/config"
	"carshare/internal/domains/booking/model"
	"carshare/shared/daterange"
)

// Surcharges maps an insurance tier to its fixed price addition.
type Surcharges map[model.InsuranceTier]int64

func NewSurcharges(cfg *config.Config) Surcharges {
	return Surcharges{
		model.InsuranceLow:    0,
		model.InsuranceMedium: max(0, cfg.Booking.Insurance.MediumSurcharge),
		model.InsuranceHigh:   max(0, cfg.Booking.Insurance.HighSurcharge),
	}
}

// DayCount is the number of whole days between start and end, so a range shorter
// than one day counts zero.
func DayCount(r daterange.DateRange) int64 {
	if !r.End.After(r.Start) {
		return 0
	}

	return int64(r.End.Sub(r.Start) / daterange.Day)
}

func ComputeBasePrice(r daterange.DateRange, dailyPrice int64) int64 {
	return DayCount(r) * max(0, dailyPrice)
}

// ComputeTotalPrice adds the tier surcharge. Unknown tiers add nothing.
func (s Surcharges) ComputeTotalPrice(base int64, tier model.InsuranceTier) int64 {
	return base + max(0, s[tier])
}
