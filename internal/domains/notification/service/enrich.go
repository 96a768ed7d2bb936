package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"carshare/infras/otel"
	"carshare/internal/domains/notification/model/dto"
	"carshare/shared/constant"
	"carshare/shared/failure"
	"carshare/shared/timezone"
)

// Enricher fills the display fields of an event record. It never fails: a lookup that
// errors leaves its fields empty.
type Enricher interface {
	Enrich(ctx context.Context, skeleton dto.EventRecord) dto.EventRecord
}

type enricherImpl struct {
	reservations ReservationReader
	users        UserDirectory
	resources    ResourceDirectory
	otel         otel.Otel
}

func NewEnricher(reservations ReservationReader, users UserDirectory, resources ResourceDirectory, otel otel.Otel) Enricher {
	return &enricherImpl{
		reservations: reservations,
		users:        users,
		resources:    resources,
		otel:         otel,
	}
}

// Enrich resolves the reservation first, since it names the resource, then looks up the
// source user and the resource in parallel. Each lookup returns its own partial and
// the partials are merged here after both finish.
func (e *enricherImpl) Enrich(ctx context.Context, skeleton dto.EventRecord) dto.EventRecord {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.Enrich")
	defer scope.End()

	record := skeleton

	var resourceID string

	reservation, err := e.reservations.Get(ctx, skeleton.RelatedReservationID, skeleton.RelatedResourceID)
	if err != nil {
		logLookupFailure(err, "reservation", skeleton.RelatedReservationID)
	} else {
		resourceID = reservation.ResourceID
	}

	var (
		g            errgroup.Group
		userPart     dto.Enrichment
		resourcePart dto.Enrichment
	)

	if skeleton.SourceUserID != constant.Empty {
		g.Go(func() error {
			nickname, err := e.users.GetNickname(ctx, skeleton.SourceUserID)
			if err != nil {
				logLookupFailure(err, "user", skeleton.SourceUserID)

				return nil
			}

			userPart = dto.Enrichment{SourceNickname: nickname}

			return nil
		})
	}

	if resourceID != constant.Empty {
		g.Go(func() error {
			details, err := e.resources.GetDetails(ctx, resourceID)
			if err != nil {
				logLookupFailure(err, "resource", resourceID)

				return nil
			}

			resourcePart = dto.Enrichment{ResourcePlate: details.PlateNumber, ResourceImage: details.FirstImage}

			return nil
		})
	}

	_ = g.Wait()

	record.Enrichment = record.Enrichment.Merge(userPart).Merge(resourcePart)

	if !record.Timestamp.IsZero() {
		record.DisplayDate = timezone.Format(record.Timestamp, constant.ShortDateFormat)
	}

	return record
}

func logLookupFailure(err error, entity, id string) {
	if failure.IsNotFound(err) {
		log.Debug().Err(err).Str("entity", entity).Str("id", id).Msg("enrichment lookup found nothing")

		return
	}

	log.Warn().Err(err).Str("entity", entity).Str("id", id).Msg("enrichment lookup failed")
}
