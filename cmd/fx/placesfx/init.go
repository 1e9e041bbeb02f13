package placesfx

import (
	"time"

	"go.uber.org/fx"

	"tabemap/internal/services"
	"tabemap/pkg/ratelimit"
)

var Module = fx.Provide(
	provideLimiter, providePlacesService)

// One-minute windows, flushed past 500 distinct caller tokens.
func provideLimiter() *ratelimit.Limiter {
	return ratelimit.New(time.Minute, 500)
}

func providePlacesService(limiter *ratelimit.Limiter) services.PlacesServiceInterface {
	return services.NewPlacesService(limiter)
}
