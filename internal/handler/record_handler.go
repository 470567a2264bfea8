package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hameema-git/ramzan-challange/internal/service"
	"github.com/hameema-git/ramzan-challange/pkg/response"
	"github.com/hameema-git/ramzan-challange/pkg/validator"
)

type RecordHandler struct {
	recordService service.RecordService
}

func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
	}
}

// Save upserts the caller's record for the date in the path. Re-saving
// the same date replaces the earlier record.
func (h *RecordHandler) Save(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input service.DailyActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	record, err := h.recordService.Save(c.Request.Context(), userID, c.Param("date"), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

func (h *RecordHandler) Get(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	record, err := h.recordService.Get(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

func (h *RecordHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	records, err := h.recordService.List(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}
