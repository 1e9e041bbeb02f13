package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tabemap/internal/services"
	"tabemap/pkg/utils"
)

type PlacesController struct {
	placesService services.PlacesServiceInterface
}

func NewPlacesController(placesService services.PlacesServiceInterface) *PlacesController {
	return &PlacesController{placesService: placesService}
}

// Autocomplete godoc
// @Summary Place suggestions for the registration form
// @Description Proxies the place provider; rate-limit denial and provider errors both return an empty list
// @Tags Places
// @Produce json
// @Param q query string true "Search text (3-64 chars)"
// @Param sessiontoken query string false "Search session token"
// @Success 200 {object} utils.APIResponse
// @Router /places/autocomplete [get]
func (pc *PlacesController) Autocomplete(c *gin.Context) {
	predictions := pc.placesService.Autocomplete(
		c.Request.Context(),
		c.Query("q"),
		c.Query("sessiontoken"),
		c.ClientIP(),
	)
	utils.RespondSuccess(c, predictions, "Fetched suggestions")
}

// Details godoc
// @Summary Resolve a selected place prediction
// @Tags Places
// @Produce json
// @Param placeId query string true "Provider place id"
// @Param sessiontoken query string false "Search session token"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /places/details [get]
func (pc *PlacesController) Details(c *gin.Context) {
	placeID := c.Query("placeId")
	if placeID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Missing placeId")
		return
	}

	details, err := pc.placesService.Details(
		c.Request.Context(),
		placeID,
		c.Query("sessiontoken"),
		c.ClientIP(),
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, details, "Fetched place details")
}
