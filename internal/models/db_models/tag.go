package db_models

import "github.com/google/uuid"

// Tag names are globally unique (exact, case-sensitive match). Tags are
// created on first use and never deleted here; orphans are tolerated.
type Tag struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null"`
}

// ShopTag is the shop<->tag junction row.
type ShopTag struct {
	BaseModel
	ShopID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shop_tag,priority:1"`
	TagID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shop_tag,priority:2"`
}
