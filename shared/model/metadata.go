package model

import "time"

type Metadata struct {
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
	ModifiedAt time.Time `json:"modified_at" db:"modified_at"`
}
