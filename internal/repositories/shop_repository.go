package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tabemap/internal/models/db_models"
)

// ShopRepositoryInterface owns the transactional registration and edit flows.
// Every mutation is scoped to the caller's own UserShop row; RowsAffected
// results surface so services can distinguish "not owned" from success.
type ShopRepositoryInterface interface {
	Register(ctx context.Context, userID uuid.UUID, shop *db_models.Shop, memo *string, tagNames []string, photoURLs []string) (uuid.UUID, error)
	Update(ctx context.Context, shopID, userID uuid.UUID, name string, memo *string, status db_models.ShopStatus, tagNames []string) error
	UpdateStatus(ctx context.Context, shopID, userID uuid.UUID, status db_models.ShopStatus) (int64, error)
	DeleteUserShop(ctx context.Context, shopID, userID uuid.UUID) (int64, error)

	GetDetail(ctx context.Context, shopID, userID uuid.UUID) (*db_models.UserShop, []db_models.ShopPhoto, error)
	ListByStatuses(ctx context.Context, userID uuid.UUID, statuses []db_models.ShopStatus) ([]db_models.UserShop, error)
	ListForMap(ctx context.Context, userID uuid.UUID) ([]db_models.UserShop, error)
}

type shopRepository struct {
	db   *gorm.DB
	tags TagRepositoryInterface
}

func NewShopRepository(db *gorm.DB, tags TagRepositoryInterface) ShopRepositoryInterface {
	return &shopRepository{db: db, tags: tags}
}

// Register runs the whole registration as one transaction: resolve the shop,
// insert the caller's UserShop row with status WANT, upsert tags, record
// photo rows. Any failure rolls everything back.
func (r *shopRepository) Register(ctx context.Context, userID uuid.UUID, shop *db_models.Shop, memo *string, tagNames []string, photoURLs []string) (uuid.UUID, error) {
	var shopID uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := r.resolvePlace(ctx, tx, shop)
		if err != nil {
			return err
		}
		shopID = id

		userShop := db_models.UserShop{
			ShopID: shopID,
			UserID: userID,
			Status: db_models.StatusWant,
			Memo:   memo,
		}
		if err := tx.WithContext(ctx).Create(&userShop).Error; err != nil {
			return err
		}

		if err := r.tags.UpsertAll(ctx, tx, shopID, tagNames); err != nil {
			return err
		}

		for _, url := range photoURLs {
			photo := db_models.ShopPhoto{ShopID: shopID, UserID: userID, ImageURL: url}
			if err := tx.WithContext(ctx).Create(&photo).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return shopID, nil
}

// resolvePlace maps an external place reference onto a shop row. A shop that
// already carries the reference is authoritative: the submitted name and
// address are ignored. Manual entries (no reference) always create a new row.
func (r *shopRepository) resolvePlace(ctx context.Context, tx *gorm.DB, shop *db_models.Shop) (uuid.UUID, error) {
	if shop.ExternalPlaceID == nil {
		shop.Source = db_models.ShopSourceManual
		if err := tx.WithContext(ctx).Create(shop).Error; err != nil {
			return uuid.Nil, err
		}
		return shop.ID, nil
	}

	var existing db_models.Shop
	err := tx.WithContext(ctx).
		Where("external_place_id = ?", *shop.ExternalPlaceID).
		First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	shop.Source = db_models.ShopSourceGoogle
	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_place_id"}},
			DoNothing: true,
		}).
		Create(shop)
	if res.Error != nil {
		return uuid.Nil, res.Error
	}
	if res.RowsAffected > 0 {
		return shop.ID, nil
	}

	// a concurrent registration created the shop between lookup and insert
	if err := tx.WithContext(ctx).
		Where("external_place_id = ?", *shop.ExternalPlaceID).
		First(&existing).Error; err != nil {
		return uuid.Nil, err
	}
	return existing.ID, nil
}

// Update re-validates ownership, renames the shared shop record, updates the
// caller's status and memo, and replaces the tag set, all in one transaction.
// Returns gorm.ErrRecordNotFound when the caller has no UserShop row.
func (r *shopRepository) Update(ctx context.Context, shopID, userID uuid.UUID, name string, memo *string, status db_models.ShopStatus, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned db_models.UserShop
		err := tx.WithContext(ctx).
			Where("shop_id = ? AND user_id = ?", shopID, userID).
			First(&owned).Error
		if err != nil {
			return err
		}

		now := time.Now()
		err = tx.WithContext(ctx).Model(&db_models.Shop{}).
			Where("id = ?", shopID).
			Updates(map[string]interface{}{"name": name, "updated_at": now.Unix()}).Error
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":     status,
			"memo":       memo,
			"updated_at": now.Unix(),
		}
		// visited_at tracks status changes only; an edit that keeps the
		// status leaves the original visit timestamp alone.
		if status != owned.Status {
			if status.MarksVisited() {
				updates["visited_at"] = now
			} else {
				updates["visited_at"] = nil
			}
		}
		err = tx.WithContext(ctx).Model(&db_models.UserShop{}).
			Where("id = ?", owned.ID).
			Updates(updates).Error
		if err != nil {
			return err
		}

		return r.tags.ReplaceForShop(ctx, tx, shopID, tagNames)
	})
}

// UpdateStatus is a single conditional update; 0 rows affected means the
// caller owns no such shop and must be treated as not-found.
func (r *shopRepository) UpdateStatus(ctx context.Context, shopID, userID uuid.UUID, status db_models.ShopStatus) (int64, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now.Unix(),
	}
	if status.MarksVisited() {
		updates["visited_at"] = now
	} else {
		updates["visited_at"] = nil
	}

	res := r.db.WithContext(ctx).Model(&db_models.UserShop{}).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// DeleteUserShop removes only the ownership link. Shop, tag and photo rows
// stay behind; orphans are tolerated by design.
func (r *shopRepository) DeleteUserShop(ctx context.Context, shopID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Delete(&db_models.UserShop{})
	return res.RowsAffected, res.Error
}

func (r *shopRepository) GetDetail(ctx context.Context, shopID, userID uuid.UUID) (*db_models.UserShop, []db_models.ShopPhoto, error) {
	var userShop db_models.UserShop
	err := r.db.WithContext(ctx).
		Preload("Shop").
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		First(&userShop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var photos []db_models.ShopPhoto
	err = r.db.WithContext(ctx).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Find(&photos).Error
	if err != nil {
		return nil, nil, err
	}
	return &userShop, photos, nil
}

func (r *shopRepository) ListByStatuses(ctx context.Context, userID uuid.UUID, statuses []db_models.ShopStatus) ([]db_models.UserShop, error) {
	var rows []db_models.UserShop
	err := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Shop.Tags").
		Where("user_id = ? AND status IN ?", userID, statuses).
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *shopRepository) ListForMap(ctx context.Context, userID uuid.UUID) ([]db_models.UserShop, error) {
	var rows []db_models.UserShop
	err := r.db.WithContext(ctx).
		Joins("Shop").
		Where(`user_shops.user_id = ? AND "Shop".lat IS NOT NULL AND "Shop".lng IS NOT NULL`, userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
