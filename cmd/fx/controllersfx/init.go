package controllersfx

import (
	"go.uber.org/fx"

	"tabemap/internal/api/controllers"
)

var Module = fx.Provide(
	controllers.NewAccountController,
	controllers.NewShopsController,
	controllers.NewPlacesController,
	controllers.NewTagController,
)
