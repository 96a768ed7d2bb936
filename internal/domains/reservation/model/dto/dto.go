package dto

import (
	"time"

	"carshare/internal/domains/reservation/model"
	"carshare/shared/daterange"
	gModel "carshare/shared/model"
)

type CreateReservationRequest struct {
	IdempotencyKey string              `json:"idempotency_key" validate:"required,uuid"`
	ResourceID     string              `json:"resource_id"     validate:"required"`
	RequesterID    string              `json:"requester_id"    validate:"required"`
	OwnerID        string              `json:"owner_id"        validate:"required"`
	Range          daterange.DateRange `json:"range"`
	Price          int64               `json:"price"           validate:"gte=0"`
	InsuranceTier  string              `json:"insurance_tier"  validate:"required"`
}

func (c *CreateReservationRequest) ToModel(now time.Time) model.Reservation {
	return model.Reservation{
		ID:            c.IdempotencyKey,
		ResourceID:    c.ResourceID,
		RequesterID:   c.RequesterID,
		OwnerID:       c.OwnerID,
		StartAt:       c.Range.Start,
		EndAt:         c.Range.End,
		Price:         c.Price,
		InsuranceTier: c.InsuranceTier,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

// Matches reports whether a stored reservation is the one this request would create.
func (c *CreateReservationRequest) Matches(stored model.Reservation) bool {
	return stored.ID == c.IdempotencyKey &&
		stored.ResourceID == c.ResourceID &&
		stored.RequesterID == c.RequesterID &&
		stored.StartAt.Equal(c.Range.Start) &&
		stored.EndAt.Equal(c.Range.End) &&
		stored.Price == c.Price
}

type ReservationResponse struct {
	ID            string    `json:"id"`
	ResourceID    string    `json:"resource_id"`
	RequesterID   string    `json:"requester_id"`
	OwnerID       string    `json:"owner_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Price         int64     `json:"price"`
	InsuranceTier string    `json:"insurance_tier"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *ReservationResponse) FromModel(m model.Reservation) {
	r.ID = m.ID
	r.ResourceID = m.ResourceID
	r.RequesterID = m.RequesterID
	r.OwnerID = m.OwnerID
	r.Start = m.StartAt
	r.End = m.EndAt
	r.Price = m.Price
	r.InsuranceTier = m.InsuranceTier
	r.CreatedAt = m.CreatedAt
}
