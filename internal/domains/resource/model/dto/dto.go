package dto

import (
	"carshare/internal/domains/resource/model"
	"carshare/shared/daterange"
)

// RentInfo is everything a booking attempt needs to know about a resource.
type RentInfo struct {
	ID              string                `json:"id"`
	OwnerID         string                `json:"owner_id"`
	PlateNumber     string                `json:"plate_number"`
	DailyPrice      int64                 `json:"daily_price"`
	AvailableWindow daterange.DateRange   `json:"available_window"`
	CommittedRanges []daterange.DateRange `json:"committed_ranges"`
	Images          []string              `json:"images"`
}

// FromModel keeps only the committed ranges that touch the available window.
func (r *RentInfo) FromModel(m model.Resource, committed []daterange.DateRange) {
	r.ID = m.ID
	r.OwnerID = m.OwnerID
	r.PlateNumber = m.PlateNumber
	r.DailyPrice = m.DailyPrice
	r.AvailableWindow = daterange.DateRange{Start: m.AvailableFrom, End: m.AvailableUntil}
	r.CommittedRanges = make([]daterange.DateRange, 0, len(committed))
	r.Images = m.Images

	for _, c := range committed {
		if r.AvailableWindow.Overlaps(c) {
			r.CommittedRanges = append(r.CommittedRanges, c)
		}
	}

	if r.Images == nil {
		r.Images = []string{}
	}
}

type Details struct {
	PlateNumber string `json:"plate_number"`
	FirstImage  string `json:"first_image,omitempty"`
}

func (d *Details) FromModel(m model.Resource) {
	d.PlateNumber = m.PlateNumber

	if len(m.Images) > 0 {
		d.FirstImage = m.Images[0]
	}
}

type AddImageRequest struct {
	ResourceID  string `json:"resource_id"  validate:"required"`
	UserID      string `json:"user_id"      validate:"required"`
	ContentType string `json:"content_type" validate:"required,mimetypes=image/jpeg image/png image/webp"`
	Data        []byte `json:"-"            validate:"required,maxfilesize=5"`
}

type AddImageResponse struct {
	URL string `json:"url"`
}
