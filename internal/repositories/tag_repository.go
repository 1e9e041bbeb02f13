package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tabemap/internal/models/db_models"
)

// TagRepositoryInterface upserts normalized tag names and their shop links.
// The mutating methods take the caller's open transaction so tag writes commit
// or roll back together with the registration or edit that triggered them.
type TagRepositoryInterface interface {
	UpsertAll(ctx context.Context, tx *gorm.DB, shopID uuid.UUID, names []string) error
	ReplaceForShop(ctx context.Context, tx *gorm.DB, shopID uuid.UUID, names []string) error
	ListForShop(ctx context.Context, shopID uuid.UUID) ([]db_models.Tag, error)
	GetAllTags(ctx context.Context, page int, pageSize int) ([]db_models.Tag, error)
}

func NewTagRepository(db *gorm.DB) TagRepositoryInterface {
	return &TagRepository{db: db}
}

type TagRepository struct {
	db *gorm.DB
}

// UpsertAll finds or creates a Tag per name and links it to the shop. Names
// are expected to be normalized already; duplicates in the slice collapse onto
// the same row via the unique constraints.
func (t *TagRepository) UpsertAll(ctx context.Context, tx *gorm.DB, shopID uuid.UUID, names []string) error {
	for _, name := range names {
		tagID, err := t.findOrCreate(ctx, tx, name)
		if err != nil {
			return err
		}

		link := db_models.ShopTag{ShopID: shopID, TagID: tagID}
		err = tx.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "shop_id"}, {Name: "tag_id"}},
				DoNothing: true,
			}).
			Create(&link).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// ReplaceForShop swaps the shop's entire tag set: the edit form always submits
// the full list, so partial diffs are not worth the complexity.
func (t *TagRepository) ReplaceForShop(ctx context.Context, tx *gorm.DB, shopID uuid.UUID, names []string) error {
	err := tx.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Delete(&db_models.ShopTag{}).Error
	if err != nil {
		return err
	}
	return t.UpsertAll(ctx, tx, shopID, names)
}

// findOrCreate resolves a tag name to its row id. Two transactions racing on
// the same new name both reach the insert; ON CONFLICT DO NOTHING lets the
// loser fall through to a fresh lookup of the winner's row instead of
// aborting the enclosing transaction.
func (t *TagRepository) findOrCreate(ctx context.Context, tx *gorm.DB, name string) (uuid.UUID, error) {
	var existing db_models.Tag
	err := tx.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	tag := db_models.Tag{Name: name}
	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&tag)
	if res.Error != nil {
		return uuid.Nil, res.Error
	}
	if res.RowsAffected > 0 {
		return tag.ID, nil
	}

	// lost the create race; the committed row is visible to us now
	if err := tx.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err != nil {
		return uuid.Nil, err
	}
	return existing.ID, nil
}

func (t *TagRepository) ListForShop(ctx context.Context, shopID uuid.UUID) ([]db_models.Tag, error) {
	var tags []db_models.Tag
	err := t.db.WithContext(ctx).
		Joins("JOIN shop_tags ON shop_tags.tag_id = tags.id").
		Where("shop_tags.shop_id = ?", shopID).
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (t *TagRepository) GetAllTags(ctx context.Context, page int, pageSize int) ([]db_models.Tag, error) {
	var tags []db_models.Tag
	err := t.db.WithContext(ctx).Scopes(func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}).Order("name").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
