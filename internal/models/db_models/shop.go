package db_models

// Shop.Source values.
const (
	ShopSourceGoogle = "google"
	ShopSourceManual = "manual"
)

// Shop is a global catalog entry. Rows created from the place provider carry
// the provider's place id as a dedup key; manual rows never carry one.
type Shop struct {
	BaseModel
	Name            string `gorm:"not null"`
	Address         *string
	Lat             *float64
	Lng             *float64
	ExternalPlaceID *string `gorm:"column:external_place_id;uniqueIndex"`
	Source          string  `gorm:"not null;default:manual"`

	Tags   []Tag       `gorm:"many2many:shop_tags"`
	Photos []ShopPhoto `gorm:"foreignKey:ShopID"`
}
