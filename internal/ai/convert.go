package ai

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/studywise/studywise-backend/internal/types"
)

const GeneratedFromCareerCounseling = "career_counseling"

// Used when no weekly task carries a parseable duration.
const fallbackWeeklyHours = 5

type CareerSource struct {
	SessionID        uuid.UUID `json:"session_id"`
	TargetProfession string    `json:"target_profession"`
	GeneratedFrom    string    `json:"generated_from"`
}

type StudyMaterials struct {
	Subjects     []string      `json:"subjects"`
	Skills       []string      `json:"skills"`
	Resources    []string      `json:"resources"`
	CareerSource *CareerSource `json:"career_source,omitempty"`
}

type Schedule struct {
	WeeklyTasks     []WeeklyTask    `json:"weekly_tasks"`
	DailyActivities []DailyActivity `json:"daily_activities"`
}

// StudyPlanDraft is the converter's output: everything a StudyPlan record
// needs, before persistence concerns enter the picture.
type StudyPlanDraft struct {
	Title             string
	Subject           string
	DifficultyLevel   string
	EstimatedDuration int
	Description       string
	StudyMaterials    StudyMaterials
	Schedule          Schedule
	Milestones        Milestones
}

// BuildStudyPlanDraft maps a parsed career action plan onto a study plan.
// Pure: no model call, no persistence. Weekly tasks and daily activities
// pass through with priorities preserved.
func BuildStudyPlanDraft(parsed ParsedActionPlan, sessionID uuid.UUID, profession, title, difficulty string) StudyPlanDraft {
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("Career Path: %s", profession)
	}
	if difficulty == "" {
		difficulty = types.DifficultyIntermediate
	}
	return StudyPlanDraft{
		Title:             title,
		Subject:           profession,
		DifficultyLevel:   difficulty,
		EstimatedDuration: EstimateWeeklyHours(parsed.WeeklyTasks),
		Description:       fmt.Sprintf("Study plan generated from a career counseling session targeting %s.", profession),
		StudyMaterials: StudyMaterials{
			Subjects:  parsed.Subjects,
			Skills:    parsed.Skills,
			Resources: parsed.Resources,
			CareerSource: &CareerSource{
				SessionID:        sessionID,
				TargetProfession: profession,
				GeneratedFrom:    GeneratedFromCareerCounseling,
			},
		},
		Schedule: Schedule{
			WeeklyTasks:     parsed.WeeklyTasks,
			DailyActivities: parsed.DailyActivities,
		},
		Milestones: parsed.Milestones,
	}
}

// EstimateWeeklyHours sums task durations that parse as numeric hours
// (minute-denominated durations are converted). Falls back to a fixed
// default when nothing parses.
func EstimateWeeklyHours(tasks []WeeklyTask) int {
	total := 0.0
	for _, task := range tasks {
		hours, ok := parseHours(task.Duration)
		if ok {
			total += hours
		}
	}
	if total <= 0 {
		return fallbackWeeklyHours
	}
	return int(math.Round(total))
}

func parseHours(duration string) (float64, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(duration)))
	if len(fields) == 0 {
		return 0, false
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	if len(fields) == 1 {
		return value, true
	}
	unit := fields[1]
	switch {
	case strings.HasPrefix(unit, "h"):
		return value, true
	case strings.HasPrefix(unit, "min"):
		return value / 60, true
	default:
		return 0, false
	}
}
