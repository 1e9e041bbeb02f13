package controllers

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tabemap/internal/models/request_models"
	"tabemap/internal/services"
	"tabemap/pkg/utils"
)

type ShopsController struct {
	shopService services.ShopServiceInterface
}

func NewShopsController(shopService services.ShopServiceInterface) *ShopsController {
	return &ShopsController{shopService: shopService}
}

// RegisterShop godoc
// @Summary Register a shop
// @Description Create a shop (provider-sourced or manual) with tags and photos
// @Tags Shops
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /shops [post]
func (sc *ShopsController) RegisterShop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	req := request_models.RegisterShopRequest{
		Name:    c.PostForm("name"),
		PlaceID: c.PostForm("place_id"),
		Tags:    parseTagsForm(c),
	}
	if memo := c.PostForm("memo"); memo != "" {
		req.Memo = &memo
	}
	if address := c.PostForm("address"); address != "" {
		req.Address = &address
	}
	req.Lat, req.Lng = parseLatLngForm(c)

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["photos"] {
			file, err := header.Open()
			if err != nil {
				utils.RespondError(c, http.StatusBadRequest, "Invalid photo upload")
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				utils.RespondError(c, http.StatusBadRequest, "Invalid photo upload")
				return
			}
			req.Photos = append(req.Photos, request_models.PhotoUpload{
				Filename: header.Filename,
				Data:     data,
			})
		}
	}

	resp, err := sc.shopService.RegisterShop(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Shop registered")
}

// UpdateShop godoc
// @Summary Update a shop
// @Description Rename the shop, update the caller's status/memo and replace its tag set
// @Tags Shops
// @Accept json
// @Produce json
// @Param id path string true "Shop ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /shops/{id} [put]
func (sc *ShopsController) UpdateShop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	var req request_models.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := sc.shopService.UpdateShop(c.Request.Context(), shopID, userID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Shop updated")
}

// UpdateStatus godoc
// @Summary Change a shop's status
// @Description Move the caller's shop between WANT, VISITED and FAVORITE
// @Tags Shops
// @Accept json
// @Produce json
// @Param id path string true "Shop ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /shops/{id}/status [patch]
func (sc *ShopsController) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	var req request_models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := sc.shopService.UpdateStatus(c.Request.Context(), shopID, userID, req.Status); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Status updated")
}

// DeleteShop godoc
// @Summary Remove a shop from the caller's list
// @Tags Shops
// @Produce json
// @Param id path string true "Shop ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /shops/{id} [delete]
func (sc *ShopsController) DeleteShop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	if err := sc.shopService.DeleteShop(c.Request.Context(), shopID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Shop removed")
}

// GetShop godoc
// @Summary Shop detail
// @Tags Shops
// @Produce json
// @Param id path string true "Shop ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /shops/{id} [get]
func (sc *ShopsController) GetShop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	detail, err := sc.shopService.GetShopDetail(c.Request.Context(), shopID, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, detail, "Fetched shop")
}

// ListShops godoc
// @Summary List the caller's WANT and VISITED shops
// @Tags Shops
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /shops [get]
func (sc *ShopsController) ListShops(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := sc.shopService.ListShops(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, items, "Fetched shops")
}

// ListFavorites godoc
// @Summary List the caller's favorite shops
// @Tags Shops
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /shops/favorites [get]
func (sc *ShopsController) ListFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := sc.shopService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, items, "Fetched favorites")
}

// MapShops godoc
// @Summary Shops with coordinates for the map page
// @Tags Shops
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /map/shops [get]
func (sc *ShopsController) MapShops(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pins, err := sc.shopService.MapShops(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, pins, "Fetched map shops")
}

// parseTagsForm accepts both a repeated "tags" field and a single
// comma-separated value; the registration form has sent both shapes.
func parseTagsForm(c *gin.Context) []string {
	if tags := c.PostFormArray("tags"); len(tags) > 1 {
		return tags
	}
	raw := c.PostForm("tags")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func parseLatLngForm(c *gin.Context) (*float64, *float64) {
	latStr, lngStr := c.PostForm("lat"), c.PostForm("lng")
	if latStr == "" || lngStr == "" {
		return nil, nil
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		log.Printf("Ignoring malformed coordinates %q,%q", latStr, lngStr)
		return nil, nil
	}
	return &lat, &lng
}
