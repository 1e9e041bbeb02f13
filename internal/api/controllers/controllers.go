package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tabemap/pkg/utils"
)

// currentUserID pulls the authenticated user id set by the JWT middleware.
// Responds 401 and returns false when it is missing or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Missing or invalid caller identity")
		return uuid.Nil, false
	}
	return userID, true
}

// shopIDParam parses the :id path segment. A malformed id gets the same 404
// as a missing row so URLs cannot be probed for other users' data.
func shopIDParam(c *gin.Context) (uuid.UUID, bool) {
	shopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrShopNotFound.Error())
		return uuid.Nil, false
	}
	return shopID, true
}
