package service

//go:generate go run go.uber.org/mock/mockgen -source=./ports.go -destination=../mocks/ports_mock.go -package=mocks

import (
	"context"

	"carshare/internal/domains/notification/model/dto"
	reservationDto "carshare/internal/domains/reservation/model/dto"
	resourceDto "carshare/internal/domains/resource/model/dto"
)

type ReservationReader interface {
	Get(ctx context.Context, reservationID, resourceID string) (reservationDto.ReservationResponse, error)
}

type UserDirectory interface {
	GetNickname(ctx context.Context, userID string) (string, error)
	GetMessageToken(ctx context.Context, userID string) (string, error)
}

type ResourceDirectory interface {
	GetDetails(ctx context.Context, resourceID string) (resourceDto.Details, error)
}

// Transport delivers a push notification and reports whether it was accepted.
type Transport interface {
	Send(ctx context.Context, notification dto.PushNotification, destinationToken string) bool
}
