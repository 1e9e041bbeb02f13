package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabemap/internal/infra"
	"tabemap/internal/models/db_models"
	"tabemap/internal/models/request_models"
	"tabemap/internal/models/response_models"
	"tabemap/internal/repositories"
	"tabemap/pkg/utils"
)

type ShopServiceInterface interface {
	RegisterShop(ctx context.Context, userID uuid.UUID, req request_models.RegisterShopRequest) (response_models.RegisterShopResponse, error)
	UpdateShop(ctx context.Context, shopID, userID uuid.UUID, req request_models.UpdateShopRequest) error
	UpdateStatus(ctx context.Context, shopID, userID uuid.UUID, status string) error
	DeleteShop(ctx context.Context, shopID, userID uuid.UUID) error

	GetShopDetail(ctx context.Context, shopID, userID uuid.UUID) (response_models.ShopDetailResponse, error)
	ListShops(ctx context.Context, userID uuid.UUID) ([]response_models.ShopListItem, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]response_models.ShopListItem, error)
	MapShops(ctx context.Context, userID uuid.UUID) ([]response_models.MapShop, error)
}

type ShopService struct {
	shopRepo repositories.ShopRepositoryInterface
	tagRepo  repositories.TagRepositoryInterface
	tags     TagServiceInterface
	places   PlacesServiceInterface
	storage  infra.PhotoStorage
}

func NewShopService(
	shopRepo repositories.ShopRepositoryInterface,
	tagRepo repositories.TagRepositoryInterface,
	tags TagServiceInterface,
	places PlacesServiceInterface,
	storage infra.PhotoStorage,
) ShopServiceInterface {
	return &ShopService{
		shopRepo: shopRepo,
		tagRepo:  tagRepo,
		tags:     tags,
		places:   places,
		storage:  storage,
	}
}

// RegisterShop turns a submitted form into one committed set of rows. Photo
// bytes go to storage before the transaction opens, so a storage failure
// aborts with zero relational writes; a later rollback can at worst leave
// orphan files, mirroring the orphan-row policy.
func (s *ShopService) RegisterShop(ctx context.Context, userID uuid.UUID, req request_models.RegisterShopRequest) (response_models.RegisterShopResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return response_models.RegisterShopResponse{}, utils.ErrNameRequired
	}

	tagNames := s.tags.NormalizeTags(req.Tags)

	shop := &db_models.Shop{
		Name:    name,
		Address: req.Address,
		Lat:     req.Lat,
		Lng:     req.Lng,
	}
	if req.PlaceID != "" {
		placeID := req.PlaceID
		shop.ExternalPlaceID = &placeID
	}

	// manual entries get best-effort coordinates from the supplied address;
	// a geocoding failure never blocks registration
	if shop.ExternalPlaceID == nil && shop.Lat == nil && shop.Address != nil {
		shop.Lat, shop.Lng = s.places.Geocode(ctx, *shop.Address)
	}
	if shop.Lat == nil || shop.Lng == nil {
		shop.Lat, shop.Lng = nil, nil
	}

	photoURLs := make([]string, 0, len(req.Photos))
	for _, photo := range req.Photos {
		if len(photo.Data) == 0 {
			continue
		}
		url, err := s.storage.Save(ctx, photo.Filename, photo.Data)
		if err != nil {
			log.Printf("Error storing photo: %v", err)
			return response_models.RegisterShopResponse{}, utils.ErrStorageFailure
		}
		photoURLs = append(photoURLs, url)
	}

	shopID, err := s.shopRepo.Register(ctx, userID, shop, req.Memo, tagNames, photoURLs)
	if err != nil {
		// the only unguarded unique constraint in the transaction is
		// (shop_id, user_id): the caller already has this shop on their list
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response_models.RegisterShopResponse{}, utils.ErrShopAlreadyRegistered
		}
		log.Printf("Error registering shop: %v", err)
		return response_models.RegisterShopResponse{}, utils.ErrDatabaseError
	}

	return response_models.RegisterShopResponse{ShopID: shopID.String()}, nil
}

// UpdateShop re-applies the registration invariants on edit. Unlike
// registration, a tag list over the cap is rejected rather than truncated:
// the caller typed it out explicitly.
func (s *ShopService) UpdateShop(ctx context.Context, shopID, userID uuid.UUID, req request_models.UpdateShopRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return utils.ErrNameRequired
	}

	status := db_models.ShopStatus(req.Status)
	if !status.Valid() {
		return utils.ErrInvalidStatus
	}

	tagNames := s.tags.CleanTags(req.Tags)
	if len(tagNames) > MaxTagsPerShop {
		return utils.ErrTooManyTags
	}

	err := s.shopRepo.Update(ctx, shopID, userID, name, req.Memo, status, tagNames)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrShopNotFound
		}
		log.Printf("Error updating shop %s: %v", shopID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ShopService) UpdateStatus(ctx context.Context, shopID, userID uuid.UUID, status string) error {
	newStatus := db_models.ShopStatus(status)
	if !newStatus.Valid() {
		return utils.ErrInvalidStatus
	}

	rows, err := s.shopRepo.UpdateStatus(ctx, shopID, userID, newStatus)
	if err != nil {
		log.Printf("Error updating shop status %s: %v", shopID, err)
		return utils.ErrDatabaseError
	}
	if rows == 0 {
		return utils.ErrShopNotFound
	}
	return nil
}

func (s *ShopService) DeleteShop(ctx context.Context, shopID, userID uuid.UUID) error {
	rows, err := s.shopRepo.DeleteUserShop(ctx, shopID, userID)
	if err != nil {
		log.Printf("Error deleting shop %s: %v", shopID, err)
		return utils.ErrDatabaseError
	}
	if rows == 0 {
		return utils.ErrShopNotFound
	}
	return nil
}

func (s *ShopService) GetShopDetail(ctx context.Context, shopID, userID uuid.UUID) (response_models.ShopDetailResponse, error) {
	userShop, photos, err := s.shopRepo.GetDetail(ctx, shopID, userID)
	if err != nil {
		log.Printf("Error fetching shop %s: %v", shopID, err)
		return response_models.ShopDetailResponse{}, utils.ErrDatabaseError
	}
	if userShop == nil {
		return response_models.ShopDetailResponse{}, utils.ErrShopNotFound
	}

	tags, err := s.tagRepo.ListForShop(ctx, shopID)
	if err != nil {
		log.Printf("Error fetching tags for shop %s: %v", shopID, err)
		return response_models.ShopDetailResponse{}, utils.ErrDatabaseError
	}

	detail := response_models.ShopDetailResponse{
		ID:      userShop.Shop.ID.String(),
		Name:    userShop.Shop.Name,
		Address: userShop.Shop.Address,
		Lat:     userShop.Shop.Lat,
		Lng:     userShop.Shop.Lng,
		Status:  string(userShop.Status),
		Memo:    userShop.Memo,
		Photos:  make([]response_models.ShopPhotoResponse, 0, len(photos)),
		Tags:    make([]response_models.TagResponse, 0, len(tags)),
	}
	if userShop.VisitedAt != nil {
		detail.VisitedAt = userShop.VisitedAt.Format(time.RFC3339)
	}
	for _, photo := range photos {
		detail.Photos = append(detail.Photos, response_models.ShopPhotoResponse{
			ID:  photo.ID.String(),
			URL: photo.ImageURL,
		})
	}
	for _, tag := range tags {
		detail.Tags = append(detail.Tags, response_models.TagResponse{
			ID:   tag.ID.String(),
			Name: tag.Name,
		})
	}
	return detail, nil
}

func (s *ShopService) ListShops(ctx context.Context, userID uuid.UUID) ([]response_models.ShopListItem, error) {
	return s.listByStatuses(ctx, userID, []db_models.ShopStatus{db_models.StatusWant, db_models.StatusVisited})
}

func (s *ShopService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]response_models.ShopListItem, error) {
	return s.listByStatuses(ctx, userID, []db_models.ShopStatus{db_models.StatusFavorite})
}

func (s *ShopService) listByStatuses(ctx context.Context, userID uuid.UUID, statuses []db_models.ShopStatus) ([]response_models.ShopListItem, error) {
	rows, err := s.shopRepo.ListByStatuses(ctx, userID, statuses)
	if err != nil {
		log.Printf("Error listing shops: %v", err)
		return nil, utils.ErrDatabaseError
	}

	items := make([]response_models.ShopListItem, 0, len(rows))
	for _, row := range rows {
		tagNames := make([]string, 0, len(row.Shop.Tags))
		for _, tag := range row.Shop.Tags {
			tagNames = append(tagNames, tag.Name)
		}
		items = append(items, response_models.ShopListItem{
			ID:      row.Shop.ID.String(),
			Name:    row.Shop.Name,
			Address: row.Shop.Address,
			Status:  string(row.Status),
			Tags:    tagNames,
		})
	}
	return items, nil
}

// MapShops returns only shops that can be pinned: both coordinates present.
func (s *ShopService) MapShops(ctx context.Context, userID uuid.UUID) ([]response_models.MapShop, error) {
	rows, err := s.shopRepo.ListForMap(ctx, userID)
	if err != nil {
		log.Printf("Error listing map shops: %v", err)
		return nil, utils.ErrDatabaseError
	}

	pins := make([]response_models.MapShop, 0, len(rows))
	for _, row := range rows {
		if row.Shop.Lat == nil || row.Shop.Lng == nil {
			continue
		}
		pins = append(pins, response_models.MapShop{
			ID:     row.Shop.ID.String(),
			Name:   row.Shop.Name,
			Lat:    *row.Shop.Lat,
			Lng:    *row.Shop.Lng,
			Status: string(row.Status),
		})
	}
	return pins, nil
}
