package storagefx

import (
	"go.uber.org/fx"

	"tabemap/internal/infra"
)

var Module = fx.Provide(provideStorage)

func provideStorage() infra.PhotoStorage {
	return infra.NewLocalPhotoStorage()
}
