package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studywise/studywise-backend/internal/services"
)

type CounselingHandler struct {
	counselingService services.CounselingService
}

func NewCounselingHandler(counselingService services.CounselingService) *CounselingHandler {
	return &CounselingHandler{counselingService: counselingService}
}

func (ch *CounselingHandler) StartSession(c *gin.Context) {
	var req struct {
		TargetProfession string `json:"target_profession"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := ch.counselingService.StartSession(c.Request.Context(), req.TargetProfession)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (ch *CounselingHandler) GenerateActionPlan(c *gin.Context) {
	var req struct {
		TargetProfession string `json:"target_profession"`
		UserResponses    string `json:"user_responses"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := ch.counselingService.GenerateActionPlan(c.Request.Context(), req.TargetProfession, req.UserResponses)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (ch *CounselingHandler) History(c *gin.Context) {
	sessions, err := ch.counselingService.History(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"sessions": sessions})
}

func (ch *CounselingHandler) ConvertToStudyPlan(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
		PlanTitle string `json:"plan_title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := ch.counselingService.ConvertToStudyPlan(c.Request.Context(), sessionID, req.PlanTitle)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}
