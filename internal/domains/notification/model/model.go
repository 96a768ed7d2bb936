package model

import "carshare/shared/model"

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldSourceUserID  = "source_user_id"
	FieldResourceID    = "resource_id"
	FieldReservationID = "reservation_id"
	FieldKind          = "kind"
)

const KindReservationRequested = "RESERVATION_REQUESTED"

// Notification is an event in a user's feed. UserID is the receiver.
type Notification struct {
	ID            string `db:"id"`
	UserID        string `db:"user_id"`
	SourceUserID  string `db:"source_user_id"`
	ResourceID    string `db:"resource_id"`
	ReservationID string `db:"reservation_id"`
	Kind          string `db:"kind"`
	model.Metadata
}
