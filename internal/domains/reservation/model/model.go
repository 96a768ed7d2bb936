package model

import (
	"time"

	"carshare/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID          = "id"
	FieldResourceID  = "resource_id"
	FieldRequesterID = "requester_id"
	FieldOwnerID     = "owner_id"
	FieldStartAt     = "start_at"
	FieldEndAt       = "end_at"
)

// Reservation is immutable once stored. ID carries the idempotency key of the
// booking attempt that created it.
type Reservation struct {
	ID            string    `db:"id"`
	ResourceID    string    `db:"resource_id"`
	RequesterID   string    `db:"requester_id"`
	OwnerID       string    `db:"owner_id"`
	StartAt       time.Time `db:"start_at"`
	EndAt         time.Time `db:"end_at"`
	Price         int64     `db:"price"`
	InsuranceTier string    `db:"insurance_tier"`
	model.Metadata
}
