package model

import (
	"time"
)

// CityExploration marks that a user has explored a city's content page. The
// composite unique index backs the insert-or-ignore idempotency of the
// mark-explored operation: at most one row per (user, city).
type CityExploration struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_city"`
	CityName   string    `json:"city_name" gorm:"not null;uniqueIndex:idx_user_city"`
	ExploredAt time.Time `json:"explored_at" gorm:"autoCreateTime"`
}
