package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"carshare/config"
	"carshare/infras/kafka"
	"carshare/infras/otel"
	"carshare/internal/domains/notification/model/dto"
	"carshare/shared/constant"
)

type pushEnvelope struct {
	DestinationToken string               `json:"destination_token"`
	Notification     dto.PushNotification `json:"notification"`
}

type kafkaTransport struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

// NewKafkaTransport publishes push notifications for the delivery worker, keyed by
// receiver so one user's notifications stay ordered.
func NewKafkaTransport(client kafka.Client, cfg *config.Config, otel otel.Otel) Transport {
	return &kafkaTransport{
		client: client,
		topic:  cfg.Kafka.Topics.Push,
		otel:   otel,
	}
}

func (t *kafkaTransport) Send(ctx context.Context, notification dto.PushNotification, destinationToken string) bool {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".notification.Send")
	defer scope.End()

	scope.SetAttribute("notification.id", notification.ID)

	err := t.client.SendMessages(ctx, t.topic, kafka.Message{
		Key: notification.ReceiverID,
		Value: pushEnvelope{
			DestinationToken: destinationToken,
			Notification:     notification,
		},
	})
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("notification_id", notification.ID).Msg("failed to publish push notification")

		return false
	}

	return true
}
