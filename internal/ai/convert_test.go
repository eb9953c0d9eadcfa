package ai

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/studywise/studywise-backend/internal/types"
)

func TestBuildStudyPlanDraft_MapsEverythingThrough(t *testing.T) {
	sessionID := uuid.New()
	parsed := ParsePlan(samplePlan)
	draft := BuildStudyPlanDraft(parsed, sessionID, "Doctor", "", "")

	if draft.Title != "Career Path: Doctor" {
		t.Fatalf("default title = %q", draft.Title)
	}
	if draft.Subject != "Doctor" {
		t.Fatalf("subject = %q", draft.Subject)
	}
	if draft.DifficultyLevel != types.DifficultyIntermediate {
		t.Fatalf("default difficulty = %q", draft.DifficultyLevel)
	}
	if len(draft.Schedule.WeeklyTasks) != len(parsed.WeeklyTasks) {
		t.Fatalf("weekly tasks dropped: %d != %d", len(draft.Schedule.WeeklyTasks), len(parsed.WeeklyTasks))
	}
	if len(draft.Schedule.DailyActivities) != len(parsed.DailyActivities) {
		t.Fatalf("daily activities dropped")
	}
	cs := draft.StudyMaterials.CareerSource
	if cs == nil || cs.SessionID != sessionID || cs.TargetProfession != "Doctor" || cs.GeneratedFrom != GeneratedFromCareerCounseling {
		t.Fatalf("career source = %+v", cs)
	}
}

func TestBuildStudyPlanDraft_ExplicitTitleAndDifficulty(t *testing.T) {
	draft := BuildStudyPlanDraft(NewParsedActionPlan(), uuid.New(), "Lawyer", "My Law Plan", types.DifficultyAdvanced)
	if draft.Title != "My Law Plan" {
		t.Fatalf("title = %q", draft.Title)
	}
	if draft.DifficultyLevel != types.DifficultyAdvanced {
		t.Fatalf("difficulty = %q", draft.DifficultyLevel)
	}
	if !strings.Contains(draft.Description, "Lawyer") {
		t.Fatalf("description = %q", draft.Description)
	}
}

func TestEstimateWeeklyHours_SumsParseableDurations(t *testing.T) {
	tasks := []WeeklyTask{
		{Task: "a", Duration: "4 hours"},
		{Task: "b", Duration: "3 hours"},
		{Task: "c", Duration: "2 hours"},
	}
	if got := EstimateWeeklyHours(tasks); got != 9 {
		t.Fatalf("EstimateWeeklyHours = %d, want 9", got)
	}
}

func TestEstimateWeeklyHours_MixedUnitsAndBareNumbers(t *testing.T) {
	tasks := []WeeklyTask{
		{Task: "a", Duration: "90 minutes"},
		{Task: "b", Duration: "2"},
		{Task: "c", Duration: "half a day"},
	}
	// 1.5 + 2 rounds to 4.
	if got := EstimateWeeklyHours(tasks); got != 4 {
		t.Fatalf("EstimateWeeklyHours = %d, want 4", got)
	}
}

func TestEstimateWeeklyHours_FallbackWhenNothingParses(t *testing.T) {
	if got := EstimateWeeklyHours(nil); got != 5 {
		t.Fatalf("empty tasks = %d, want 5", got)
	}
	tasks := []WeeklyTask{{Task: "a", Duration: "some time"}, {Task: "b"}}
	if got := EstimateWeeklyHours(tasks); got != 5 {
		t.Fatalf("unparseable tasks = %d, want 5", got)
	}
}
