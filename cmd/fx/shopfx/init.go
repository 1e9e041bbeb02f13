package shopfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tabemap/internal/infra"
	"tabemap/internal/repositories"
	"tabemap/internal/services"
)

var Module = fx.Provide(
	provideShopRepo, provideShopService)

func provideShopRepo(db *gorm.DB, tagRepo repositories.TagRepositoryInterface) repositories.ShopRepositoryInterface {
	return repositories.NewShopRepository(db, tagRepo)
}

func provideShopService(
	shopRepo repositories.ShopRepositoryInterface,
	tagRepo repositories.TagRepositoryInterface,
	tagService services.TagServiceInterface,
	placesService services.PlacesServiceInterface,
	storage infra.PhotoStorage,
) services.ShopServiceInterface {
	return services.NewShopService(shopRepo, tagRepo, tagService, placesService, storage)
}
