package model

import (
	"time"

	"github.com/lib/pq"

	"carshare/shared/model"
)

const (
	TableName  = "resources"
	EntityName = "resource"

	FieldID     = "id"
	FieldImages = "images"

	CacheRentInfo = "resource:rent-info"
	CacheDetails  = "resource:details"
)

type Resource struct {
	ID             string         `db:"id"`
	OwnerID        string         `db:"owner_id"`
	PlateNumber    string         `db:"plate_number"`
	DailyPrice     int64          `db:"daily_price"`
	AvailableFrom  time.Time      `db:"available_from"`
	AvailableUntil time.Time      `db:"available_until"`
	Images         pq.StringArray `db:"images"`
	model.Metadata
}
