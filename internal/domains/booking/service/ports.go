package service

//go:generate go run go.uber.org/mock/mockgen -source=./ports.go -destination=../mocks/ports_mock.go -package=mocks

import (
	"context"

	notificationDto "carshare/internal/domains/notification/model/dto"
	paymentDto "carshare/internal/domains/payment/model/dto"
	reservationDto "carshare/internal/domains/reservation/model/dto"
	resourceDto "carshare/internal/domains/resource/model/dto"
)

type ReservationStore interface {
	Create(ctx context.Context, req reservationDto.CreateReservationRequest) error
}

type PaymentGateway interface {
	Charge(ctx context.Context, req paymentDto.ChargeRequest) error
}

type RentInfoProvider interface {
	GetRentInfo(ctx context.Context, id string) (resourceDto.RentInfo, error)
}

type Notifier interface {
	Save(ctx context.Context, req notificationDto.SaveRequest) (notificationDto.PushNotification, error)
	Send(ctx context.Context, notification notificationDto.PushNotification) bool
}
