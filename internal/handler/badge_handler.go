package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hameema-git/ramzan-challange/internal/service"
	"github.com/hameema-git/ramzan-challange/pkg/response"
)

type BadgeHandler struct {
	badgeService service.BadgeService
}

func NewBadgeHandler(badgeService service.BadgeService) *BadgeHandler {
	return &BadgeHandler{
		badgeService: badgeService,
	}
}

// Global serves the caller's global-standing badge as a PNG. With
// ?upload=true the badge is also uploaded and its public URL returned
// as JSON instead.
func (h *BadgeHandler) Global(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	png, err := h.badgeService.GlobalBadge(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	h.serve(c, userID, png)
}

func (h *BadgeHandler) Group(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	png, err := h.badgeService.GroupBadge(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	h.serve(c, userID, png)
}

func (h *BadgeHandler) serve(c *gin.Context, userID uuid.UUID, png []byte) {
	if c.Query("upload") == "true" {
		url, err := h.badgeService.UploadBadge(c.Request.Context(), userID, png)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
		return
	}

	c.Header("Content-Disposition", `inline; filename="badge.png"`)
	c.Data(http.StatusOK, "image/png", png)
}
