package ai

import (
	"fmt"
	"strings"

	"github.com/studywise/studywise-backend/internal/normalization"
)

type Category string

const (
	CategoryMedical     Category = "medical"
	CategoryEngineering Category = "engineering"
	CategoryLegal       Category = "legal"
	CategoryTechnology  Category = "technology"
	CategoryGeneral     Category = "general"
)

// Fixed evaluation order: technology before engineering so "software
// engineer" resolves to technology, not engineering.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryMedical, []string{"doctor", "physician", "surgeon", "nurse", "dentist", "pharmacist", "medical", "medicine", "healthcare", "veterinarian"}},
	{CategoryTechnology, []string{"software", "developer", "programmer", "data scientist", "web", "devops", "cybersecurity", "tech", "computer"}},
	{CategoryEngineering, []string{"engineer", "engineering", "mechanical", "electrical", "civil", "aerospace", "architect"}},
	{CategoryLegal, []string{"lawyer", "attorney", "legal", "judge", "paralegal", "law"}},
}

// Classify maps a profession string onto exactly one of the five fixed
// categories. Case and surrounding whitespace are ignored; anything
// unmatched falls to general.
func Classify(profession string) Category {
	normalized := normalization.ParseInputString(profession)
	if normalized == "" {
		return CategoryGeneral
	}
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(normalized, kw) {
				return entry.category
			}
		}
	}
	return CategoryGeneral
}

var categoryFocus = map[Category]string{
	CategoryMedical:     "clinical training, licensing exams, and patient-facing skills",
	CategoryEngineering: "engineering fundamentals, accreditation, and hands-on project work",
	CategoryLegal:       "legal education, bar admission, and practical casework",
	CategoryTechnology:  "programming skills, portfolio projects, and industry certifications",
	CategoryGeneral:     "foundational education, transferable skills, and practical experience",
}

// BuildQuestionsPrompt is pure and deterministic; the same profession always
// yields the same prompt.
func BuildQuestionsPrompt(profession string) string {
	category := Classify(profession)
	var b strings.Builder
	b.WriteString("You are an experienced career counselor helping a student plan their path toward becoming a ")
	b.WriteString(profession)
	b.WriteString(".\n\n")
	fmt.Fprintf(&b, "Ask exactly 5 numbered questions to understand the student's starting point, with emphasis on %s.\n", categoryFocus[category])
	b.WriteString("Cover their current education level, relevant experience, available study time, timeline, and motivation.\n")
	b.WriteString("Output only the numbered questions, one per line.\n")
	return b.String()
}

// BuildStudyPlanPrompt covers direct AI study-plan generation outside of a
// counseling session. Output is requested in the same sectioned shape the
// parser understands.
func BuildStudyPlanPrompt(subject string, durationWeeks int, difficulty string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert educational consultant. Create a %d-week study plan for a %s level student studying %s.\n\n", durationWeeks, difficulty, subject)
	b.WriteString("Structure the plan with exactly these sections, using bulleted lists under each header:\n")
	b.WriteString("Subjects to Study:\nSkills to Develop:\nRecommended Resources:\n")
	b.WriteString("Short-term Milestones:\nMedium-term Milestones:\nLong-term Milestones:\n")
	b.WriteString("Weekly Tasks:\nDaily Activities:\n")
	b.WriteString("For weekly tasks include an estimated duration in hours and a priority (high, medium, or low). For daily activities include a duration in minutes.\n")
	b.WriteString("Keep the plan practical and achievable for a student.\n")
	return b.String()
}

// BuildPlanPrompt interpolates the user's answers verbatim.
func BuildPlanPrompt(profession, answers string) string {
	category := Classify(profession)
	var b strings.Builder
	b.WriteString("You are an experienced career counselor. Based on the student's answers below, write a career action plan for becoming a ")
	b.WriteString(profession)
	b.WriteString(".\n\nStudent answers:\n")
	b.WriteString(answers)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Focus on %s.\n", categoryFocus[category])
	b.WriteString("Structure the plan with exactly these sections, using bulleted lists under each header:\n")
	b.WriteString("Subjects to Study:\nSkills to Develop:\nRecommended Resources:\n")
	b.WriteString("Short-term Milestones:\nMedium-term Milestones:\nLong-term Milestones:\n")
	b.WriteString("Weekly Tasks:\nDaily Activities:\n")
	b.WriteString("For weekly tasks include an estimated duration in hours and a priority (high, medium, or low). For daily activities include a duration in minutes.\n")
	return b.String()
}
