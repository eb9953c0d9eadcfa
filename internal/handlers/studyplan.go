package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studywise/studywise-backend/internal/services"
)

type StudyPlanHandler struct {
	planService services.StudyPlanService
}

func NewStudyPlanHandler(planService services.StudyPlanService) *StudyPlanHandler {
	return &StudyPlanHandler{planService: planService}
}

func (sph *StudyPlanHandler) Create(c *gin.Context) {
	var req services.CreateStudyPlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	plan, err := sph.planService.CreatePlan(c.Request.Context(), &req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, plan)
}

func (sph *StudyPlanHandler) Get(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	plan, err := sph.planService.GetPlan(c.Request.Context(), planID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, plan)
}

func (sph *StudyPlanHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	plans, err := sph.planService.ListPlans(c.Request.Context(), activeOnly)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"study_plans": plans})
}

func (sph *StudyPlanHandler) Update(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.UpdateStudyPlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	plan, err := sph.planService.UpdatePlan(c.Request.Context(), planID, &req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, plan)
}

func (sph *StudyPlanHandler) Deactivate(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := sph.planService.DeactivatePlan(c.Request.Context(), planID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (sph *StudyPlanHandler) GenerateAIPlan(c *gin.Context) {
	var req struct {
		Subject         string `json:"subject"`
		DurationWeeks   int    `json:"duration_weeks"`
		DifficultyLevel string `json:"difficulty_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := sph.planService.GenerateAIPlan(c.Request.Context(), req.Subject, req.DurationWeeks, req.DifficultyLevel)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}
