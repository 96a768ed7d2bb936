package dto

import (
	"fmt"
	"time"

	"carshare/internal/domains/notification/model"
	"carshare/shared"
	gModel "carshare/shared/model"
)

type SaveRequest struct {
	ReceiverID    string `json:"receiver_id"    validate:"required"`
	SourceUserID  string `json:"source_user_id" validate:"required"`
	ResourceID    string `json:"resource_id"    validate:"required"`
	ReservationID string `json:"reservation_id" validate:"required"`
	Kind          string `json:"kind"           validate:"required"`
}

// ToModel derives the id from the creation time and the receiver, e.g. 1710028800000-u1.
func (r *SaveRequest) ToModel(now time.Time) model.Notification {
	return model.Notification{
		ID:            fmt.Sprintf("%d-%s", now.UnixMilli(), r.ReceiverID),
		UserID:        r.ReceiverID,
		SourceUserID:  r.SourceUserID,
		ResourceID:    r.ResourceID,
		ReservationID: r.ReservationID,
		Kind:          r.Kind,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

// Enrichment holds the optional display fields resolved from other domains.
type Enrichment struct {
	SourceNickname string `json:"source_nickname,omitempty"`
	ResourcePlate  string `json:"resource_plate,omitempty"`
	ResourceImage  string `json:"resource_image,omitempty"`
}

// Merge returns e with every non-empty field of other applied.
func (e Enrichment) Merge(other Enrichment) Enrichment {
	if other.SourceNickname != "" {
		e.SourceNickname = other.SourceNickname
	}

	if other.ResourcePlate != "" {
		e.ResourcePlate = other.ResourcePlate
	}

	if other.ResourceImage != "" {
		e.ResourceImage = other.ResourceImage
	}

	return e
}

type EventRecord struct {
	ID                   string     `json:"id"`
	Kind                 string     `json:"kind"`
	SourceUserID         string     `json:"source_user_id"`
	RelatedResourceID    string     `json:"related_resource_id"`
	RelatedReservationID string     `json:"related_reservation_id"`
	Timestamp            time.Time  `json:"timestamp"`
	Enrichment           Enrichment `json:"enrichment"`
	DisplayDate          string     `json:"display_date,omitempty"`
}

func (r *EventRecord) FromModel(m model.Notification) {
	r.ID = m.ID
	r.Kind = m.Kind
	r.SourceUserID = m.SourceUserID
	r.RelatedResourceID = m.ResourceID
	r.RelatedReservationID = m.ReservationID
	r.Timestamp = m.CreatedAt
}

// PushNotification is the payload handed to the push transport.
type PushNotification struct {
	ID            string `json:"id"`
	ReceiverID    string `json:"receiver_id"`
	SourceUserID  string `json:"source_user_id"`
	ResourceID    string `json:"resource_id"`
	ReservationID string `json:"reservation_id"`
	Kind          string `json:"kind"`
}

func (p *PushNotification) FromModel(m model.Notification) {
	p.ID = m.ID
	p.ReceiverID = m.UserID
	p.SourceUserID = m.SourceUserID
	p.ResourceID = m.ResourceID
	p.ReservationID = m.ReservationID
	p.Kind = m.Kind
}

type FeedResponse struct {
	Events    []EventRecord `json:"events"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *FeedResponse) FromModels(models []model.Notification, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Events = make([]EventRecord, len(models))
	for i, mod := range models {
		r.Events[i].FromModel(mod)
	}
}
