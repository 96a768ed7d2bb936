package service

//go:generate go run go.uber.org/mock/mockgen -source=./ports.go -destination=../mocks/ports_mock.go -package=mocks

import (
	"context"

	"carshare/shared/daterange"
)

// CommittedRangeSource lists the reserved ranges of a resource, ordered by start.
type CommittedRangeSource interface {
	CommittedRanges(ctx context.Context, resourceID string) ([]daterange.DateRange, error)
}
