package db_models

import (
	"time"

	"github.com/google/uuid"
)

type ShopStatus string

const (
	StatusWant     ShopStatus = "WANT"
	StatusVisited  ShopStatus = "VISITED"
	StatusFavorite ShopStatus = "FAVORITE"
)

func (s ShopStatus) Valid() bool {
	switch s {
	case StatusWant, StatusVisited, StatusFavorite:
		return true
	}
	return false
}

// MarksVisited reports whether the status carries a visit timestamp.
func (s ShopStatus) MarksVisited() bool {
	return s == StatusVisited || s == StatusFavorite
}

// UserShop links an account to a shop. It is the unit of ownership: every
// mutation is scoped to the caller's own row. VisitedAt is non-null exactly
// when Status is VISITED or FAVORITE.
type UserShop struct {
	BaseModel
	ShopID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_shop,priority:1"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_shop,priority:2"`
	Status    ShopStatus `gorm:"type:varchar(16);not null;default:WANT"`
	Memo      *string
	VisitedAt *time.Time

	Shop Shop `gorm:"foreignKey:ShopID"`
}
