package db_models

import "github.com/google/uuid"

type ShopPhoto struct {
	BaseModel
	ShopID   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID   uuid.UUID `gorm:"type:uuid;not null"`
	ImageURL string    `gorm:"not null"`
}
