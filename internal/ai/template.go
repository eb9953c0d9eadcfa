package ai

import (
	"fmt"
)

// Deterministic substitutes used when inference fails or times out. The
// action-plan templates are written in the same sectioned shape the parser
// recognizes, so a fallback plan converts to a study plan exactly like a
// model-generated one.

var fallbackQuestions = map[Category]string{
	CategoryMedical: `1. What is your current education level, and have you completed any science coursework such as biology or chemistry?
2. Do you have any hands-on experience in a healthcare setting, such as volunteering, shadowing, or certification programs?
3. How many hours per week can you realistically dedicate to studying?
4. What is your target timeline for entering a %s training program?
5. What draws you to medicine, and which patient populations or specialties interest you most?`,
	CategoryEngineering: `1. What is your current education level, and how comfortable are you with mathematics and physics?
2. Have you built, repaired, or designed anything hands-on, formally or as a hobby?
3. How many hours per week can you dedicate to studying and project work?
4. What is your target timeline for working as a %s?
5. Which area of engineering interests you most, and why?`,
	CategoryLegal: `1. What is your current education level, and have you taken any courses involving writing, debate, or government?
2. Do you have any exposure to legal work, such as internships, mock trial, or paralegal experience?
3. How many hours per week can you dedicate to reading and study?
4. What is your target timeline for practicing as a %s?
5. Which areas of law interest you most, and what motivates you to pursue them?`,
	CategoryTechnology: `1. What is your current education level, and have you written any code before? If so, in which languages?
2. Have you completed any projects, courses, or certifications related to technology?
3. How many hours per week can you dedicate to studying and building projects?
4. What is your target timeline for working as a %s?
5. Which areas of technology excite you most, such as web development, data, security, or infrastructure?`,
	CategoryGeneral: `1. What is your current education level and field of study, if any?
2. What relevant experience do you already have toward becoming a %s?
3. How many hours per week can you dedicate to studying?
4. What is your target timeline for reaching this career?
5. What motivates you to pursue this path, and what obstacles do you anticipate?`,
}

var fallbackPlans = map[Category]string{
	CategoryMedical: `Career action plan for becoming a %s.

Subjects to Study:
- Human anatomy and physiology
- General and organic chemistry
- Biology and microbiology
- Medical terminology

Skills to Develop:
- Clinical reasoning and patient communication
- Scientific reading and note-taking
- Time management under heavy course loads

Recommended Resources:
- Khan Academy medicine and MCAT collections
- Local hospital or clinic volunteering programs
- Anatomy atlases and flashcard decks

Short-term Milestones:
- Complete a foundational biology and chemistry review
- Arrange shadowing or volunteering in a clinical setting

Medium-term Milestones:
- Sit the relevant entrance examination
- Apply to accredited training programs

Long-term Milestones:
- Complete professional training and licensing requirements
- Begin supervised clinical practice

Weekly Tasks:
- Review one anatomy system in depth (4 hours, high priority)
- Complete chemistry problem sets (3 hours, high priority)
- Volunteer or shadow in a clinical setting (3 hours, medium priority)
- Review flashcards and notes from the week (2 hours, medium priority)

Daily Activities:
- Flashcard review of medical terminology (20 minutes)
- Read one section of a core science textbook (40 minutes)`,
	CategoryEngineering: `Career action plan for becoming a %s.

Subjects to Study:
- Calculus and linear algebra
- Physics and mechanics
- Materials and engineering fundamentals
- Technical drawing and CAD basics

Skills to Develop:
- Analytical problem solving
- Technical documentation and communication
- Hands-on prototyping and testing

Recommended Resources:
- MIT OpenCourseWare engineering fundamentals
- A student edition CAD package
- Local maker spaces or engineering clubs

Short-term Milestones:
- Complete a calculus and physics refresher
- Build one small documented project

Medium-term Milestones:
- Enroll in an accredited engineering program or certification track
- Complete an internship or supervised project work

Long-term Milestones:
- Earn the required degree or professional accreditation
- Obtain an entry-level engineering position

Weekly Tasks:
- Work through mathematics problem sets (4 hours, high priority)
- Study core engineering coursework (4 hours, high priority)
- Advance a hands-on project (3 hours, medium priority)

Daily Activities:
- Practice problems from the current unit (45 minutes)
- Review formulas and concepts (15 minutes)`,
	CategoryLegal: `Career action plan for becoming a %s.

Subjects to Study:
- Constitutional and civil law foundations
- Legal writing and research methods
- Logic and critical reasoning
- Government and political science

Skills to Develop:
- Persuasive writing and oral argument
- Close reading of dense texts
- Case analysis and citation practice

Recommended Resources:
- LSAT or equivalent entrance exam preparation materials
- Court opinion archives for reading practice
- Debate clubs or moot court programs

Short-term Milestones:
- Build a daily reading habit with legal opinions
- Complete an entrance examination practice course

Medium-term Milestones:
- Apply to accredited law programs
- Secure a legal internship or clerkship

Long-term Milestones:
- Complete professional legal education
- Pass the bar or equivalent licensing examination

Weekly Tasks:
- Read and brief two court opinions (4 hours, high priority)
- Entrance exam practice sections (3 hours, high priority)
- Write one practice essay or memo (2 hours, medium priority)

Daily Activities:
- Read legal news and analysis (20 minutes)
- Vocabulary and terminology review (15 minutes)`,
	CategoryTechnology: `Career action plan for becoming a %s.

Subjects to Study:
- Programming fundamentals in one primary language
- Data structures and algorithms
- Databases and version control
- Computer networks and operating systems basics

Skills to Develop:
- Building and debugging complete projects
- Reading documentation and unfamiliar code
- Collaboration through code review

Recommended Resources:
- freeCodeCamp and The Odin Project
- Official language documentation and tutorials
- Open source projects accepting first-time contributors

Short-term Milestones:
- Complete a structured programming course
- Publish two small portfolio projects

Medium-term Milestones:
- Build a substantial full-stack or domain project
- Contribute to an open source repository

Long-term Milestones:
- Complete a degree, bootcamp, or certification path
- Obtain an entry-level position or freelance clients

Weekly Tasks:
- Structured course progress (4 hours, high priority)
- Portfolio project development (4 hours, high priority)
- Algorithm practice problems (2 hours, medium priority)
- Read engineering blogs or documentation (1 hour, low priority)

Daily Activities:
- Write code toward the current project (60 minutes)
- Review one concept or documentation page (20 minutes)`,
	CategoryGeneral: `Career action plan for becoming a %s.

Subjects to Study:
- Core knowledge areas of the target field
- Communication and writing
- Basic business and workplace skills

Skills to Develop:
- Self-directed learning and note-taking
- Networking and informational interviewing
- Practical experience in the target domain

Recommended Resources:
- Introductory online courses in the target field
- Professional associations and community groups
- Books and talks by established practitioners

Short-term Milestones:
- Complete an introductory course in the field
- Conduct three informational interviews with practitioners

Medium-term Milestones:
- Gain supervised or volunteer experience
- Complete an intermediate credential or portfolio piece

Long-term Milestones:
- Meet the formal requirements of the profession
- Secure an entry-level position in the field

Weekly Tasks:
- Study core material for the field (4 hours, high priority)
- Practical exercises or volunteering (3 hours, medium priority)
- Networking and community participation (1 hour, low priority)

Daily Activities:
- Read material from the target field (30 minutes)
- Review and organize notes (15 minutes)`,
}

// FallbackStudyPlanOutline backs direct study-plan generation when the
// model is unavailable. Same sectioned shape as the career templates.
func FallbackStudyPlanOutline(subject string, durationWeeks int) string {
	if durationWeeks <= 0 {
		durationWeeks = 4
	}
	return fmt.Sprintf(`%d-week study plan for %s.

Subjects to Study:
- Core concepts and terminology of %s
- Applied practice in %s

Skills to Develop:
- Active recall and spaced repetition
- Applying %s concepts to practice problems

Recommended Resources:
- An introductory textbook or structured online course for %s
- Practice exercises with worked solutions

Short-term Milestones:
- Finish the first unit of the chosen course
- Complete an initial self-assessment

Medium-term Milestones:
- Reach the halfway point of the syllabus with passing practice scores

Long-term Milestones:
- Complete the full %d-week syllabus
- Pass a final self-assessment or practice exam

Weekly Tasks:
- Study new material from the syllabus (4 hours, high priority)
- Complete practice exercises (3 hours, high priority)
- Review previous weeks' notes (1 hour, medium priority)

Daily Activities:
- Focused study session (45 minutes)
- Flashcard or note review (15 minutes)`,
		durationWeeks, subject, subject, subject, subject, subject, durationWeeks)
}

func FallbackQuestions(category Category, profession string) string {
	tmpl, ok := fallbackQuestions[category]
	if !ok {
		tmpl = fallbackQuestions[CategoryGeneral]
	}
	return fmt.Sprintf(tmpl, profession)
}

func FallbackActionPlan(category Category, profession string) string {
	tmpl, ok := fallbackPlans[category]
	if !ok {
		tmpl = fallbackPlans[CategoryGeneral]
	}
	return fmt.Sprintf(tmpl, profession)
}
