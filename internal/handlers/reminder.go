package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studywise/studywise-backend/internal/services"
)

type ReminderHandler struct {
	reminderService services.ReminderService
}

func NewReminderHandler(reminderService services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

func (rh *ReminderHandler) Create(c *gin.Context) {
	var req services.CreateReminderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	reminder, err := rh.reminderService.CreateReminder(c.Request.Context(), &req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reminder)
}

func (rh *ReminderHandler) List(c *gin.Context) {
	reminders, err := rh.reminderService.ListReminders(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"reminders": reminders})
}

func (rh *ReminderHandler) Get(c *gin.Context) {
	reminderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	reminder, err := rh.reminderService.GetReminder(c.Request.Context(), reminderID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reminder)
}

func (rh *ReminderHandler) Update(c *gin.Context) {
	reminderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.UpdateReminderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	reminder, err := rh.reminderService.UpdateReminder(c.Request.Context(), reminderID, &req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reminder)
}

func (rh *ReminderHandler) Upcoming(c *gin.Context) {
	hours, _ := strconv.Atoi(c.DefaultQuery("hours", "24"))
	upcoming, err := rh.reminderService.Upcoming(c.Request.Context(), hours)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"upcoming_reminders": upcoming, "count": len(upcoming)})
}

func (rh *ReminderHandler) CreateStudySessionReminder(c *gin.Context) {
	var req struct {
		Title           string    `json:"title"`
		DurationMinutes int       `json:"duration_minutes"`
		StartTime       time.Time `json:"start_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	reminder, err := rh.reminderService.CreateStudySessionReminder(c.Request.Context(), req.Title, req.DurationMinutes, req.StartTime)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reminder)
}

func (rh *ReminderHandler) CreateBreakReminder(c *gin.Context) {
	var req struct {
		StudyDuration int `json:"study_duration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	reminder, err := rh.reminderService.CreateBreakReminder(c.Request.Context(), req.StudyDuration)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reminder)
}

func (rh *ReminderHandler) SmartRecommendations(c *gin.Context) {
	created, err := rh.reminderService.SmartRecommendations(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"reminders": created,
		"message":   fmt.Sprintf("Created %d smart reminders", len(created)),
	})
}

func (rh *ReminderHandler) MarkSent(c *gin.Context) {
	reminderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	reminder, err := rh.reminderService.MarkSent(c.Request.Context(), reminderID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reminder)
}

func (rh *ReminderHandler) Delete(c *gin.Context) {
	reminderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := rh.reminderService.DeleteReminder(c.Request.Context(), reminderID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
