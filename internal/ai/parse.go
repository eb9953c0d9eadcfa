package ai

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type WeeklyTask struct {
	Task     string `json:"task"`
	Duration string `json:"duration"`
	Priority string `json:"priority"`
}

type DailyActivity struct {
	Activity        string `json:"activity"`
	DurationMinutes int    `json:"duration_minutes"`
}

type Milestones struct {
	ShortTerm  []string `json:"short_term"`
	MediumTerm []string `json:"medium_term"`
	LongTerm   []string `json:"long_term"`
}

// ParsedActionPlan always has every field present. Downstream rendering
// relies on empty-but-present lists, never nil.
type ParsedActionPlan struct {
	Subjects        []string        `json:"subjects"`
	Skills          []string        `json:"skills"`
	Resources       []string        `json:"resources"`
	Milestones      Milestones      `json:"milestones"`
	WeeklyTasks     []WeeklyTask    `json:"weekly_tasks"`
	DailyActivities []DailyActivity `json:"daily_activities"`
}

func NewParsedActionPlan() ParsedActionPlan {
	return ParsedActionPlan{
		Subjects:  []string{},
		Skills:    []string{},
		Resources: []string{},
		Milestones: Milestones{
			ShortTerm:  []string{},
			MediumTerm: []string{},
			LongTerm:   []string{},
		},
		WeeklyTasks:     []WeeklyTask{},
		DailyActivities: []DailyActivity{},
	}
}

// ParseQuestions is cleanup only: normalized line endings, leading and
// trailing blank lines dropped.
func ParseQuestions(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSpace(text)
}

type section int

const (
	sectionNone section = iota
	sectionSubjects
	sectionSkills
	sectionResources
	sectionShortTerm
	sectionMediumTerm
	sectionLongTerm
	sectionWeeklyTasks
	sectionDailyActivities
)

var listMarkerRe = regexp.MustCompile(`^\s*(?:[-*•–]|\d+[.):])\s*`)
var durationRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(hours?|hrs?|minutes?|mins?)\b`)

// ParsePlan scans model output line by line, tracking a current-section
// cursor. It never fails: unrecognizable input yields a plan with every
// field empty. When a line matches several section keywords, the first
// match in the fixed priority order wins (subjects > skills > resources >
// milestones > weekly tasks > daily activities).
func ParsePlan(text string) ParsedActionPlan {
	plan := NewParsedActionPlan()
	current := sectionNone

	for _, rawLine := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if listMarkerRe.MatchString(rawLine) {
			item := strings.TrimSpace(listMarkerRe.ReplaceAllString(rawLine, ""))
			if item == "" {
				continue
			}
			appendItem(&plan, current, item)
			continue
		}
		if sec, ok := matchSectionHeader(line); ok {
			current = sec
		}
	}
	return plan
}

func matchSectionHeader(line string) (section, bool) {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "subject"):
		return sectionSubjects, true
	case strings.Contains(lower, "skill"):
		return sectionSkills, true
	case strings.Contains(lower, "resource"):
		return sectionResources, true
	case strings.Contains(lower, "milestone"), strings.Contains(lower, "short"),
		strings.Contains(lower, "medium"), strings.Contains(lower, "long"):
		return milestoneSection(lower), true
	case strings.Contains(lower, "weekly"), strings.Contains(lower, "task"):
		return sectionWeeklyTasks, true
	case strings.Contains(lower, "daily"), strings.Contains(lower, "activit"):
		return sectionDailyActivities, true
	default:
		return sectionNone, false
	}
}

func milestoneSection(lower string) section {
	switch {
	case strings.Contains(lower, "long"):
		return sectionLongTerm
	case strings.Contains(lower, "medium"):
		return sectionMediumTerm
	default:
		return sectionShortTerm
	}
}

func appendItem(plan *ParsedActionPlan, current section, item string) {
	switch current {
	case sectionSubjects:
		plan.Subjects = append(plan.Subjects, item)
	case sectionSkills:
		plan.Skills = append(plan.Skills, item)
	case sectionResources:
		plan.Resources = append(plan.Resources, item)
	case sectionShortTerm:
		plan.Milestones.ShortTerm = append(plan.Milestones.ShortTerm, item)
	case sectionMediumTerm:
		plan.Milestones.MediumTerm = append(plan.Milestones.MediumTerm, item)
	case sectionLongTerm:
		plan.Milestones.LongTerm = append(plan.Milestones.LongTerm, item)
	case sectionWeeklyTasks:
		plan.WeeklyTasks = append(plan.WeeklyTasks, parseWeeklyTask(item))
	case sectionDailyActivities:
		plan.DailyActivities = append(plan.DailyActivities, parseDailyActivity(item))
	}
}

func parseWeeklyTask(item string) WeeklyTask {
	task := WeeklyTask{
		Task:     stripAnnotations(item),
		Duration: "",
		Priority: PriorityMedium,
	}
	lower := strings.ToLower(item)
	if containsWord(lower, "high") {
		task.Priority = PriorityHigh
	} else if containsWord(lower, "low") {
		task.Priority = PriorityLow
	}
	if m := durationRe.FindStringSubmatch(lower); m != nil {
		task.Duration = m[1] + " " + m[2]
	}
	return task
}

func parseDailyActivity(item string) DailyActivity {
	activity := DailyActivity{Activity: stripAnnotations(item)}
	lower := strings.ToLower(item)
	if m := durationRe.FindStringSubmatch(lower); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			if strings.HasPrefix(m[2], "h") {
				value *= 60
			}
			activity.DurationMinutes = int(value)
		}
	}
	return activity
}

// stripAnnotations removes a trailing parenthetical like "(2 hours, high
// priority)" from a list item, leaving the task text.
func stripAnnotations(item string) string {
	if idx := strings.LastIndex(item, "("); idx > 0 && strings.HasSuffix(item, ")") {
		item = item[:idx]
	}
	return strings.TrimRight(strings.TrimSpace(item), " -:,")
}

func containsWord(haystack, word string) bool {
	idx := 0
	for {
		pos := strings.Index(haystack[idx:], word)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(haystack[start-1])
		afterOK := end == len(haystack) || !isWordChar(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = end
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
