package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studywise/studywise-backend/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (ph *ProgressHandler) Create(c *gin.Context) {
	var req services.CreateProgressRecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	record, err := ph.progressService.CreateRecord(c.Request.Context(), &req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, record)
}

func (ph *ProgressHandler) List(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	records, err := ph.progressService.ListRecords(c.Request.Context(), days, c.Query("subject"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"records": records})
}

func (ph *ProgressHandler) Summary(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	summary, err := ph.progressService.Summary(c.Request.Context(), days)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, summary)
}

func (ph *ProgressHandler) Analytics(c *gin.Context) {
	analytics, err := ph.progressService.Analytics(c.Request.Context(), c.DefaultQuery("period", "month"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, analytics)
}
