package synthesis

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Vijay417-sys/AI-Resume-Tailor/internal/types"
)

// questionSpec is one entry of the fixed interview catalog.
// Question and ModelAnswer are templates over answerFields.
type questionSpec struct {
	ID          int
	Difficulty  types.Difficulty
	Category    string
	Question    string
	ModelAnswer string
}

type answerFields struct {
	FirstSkill     string
	SecondSkill    string
	TopThreeSkills string
	TopTwoSkills   string
	FirstRole      string
}

var questionCatalog = []questionSpec{
	{
		ID: 1, Difficulty: types.DifficultyEasy, Category: "General",
		Question:    "Tell me about yourself and your background.",
		ModelAnswer: `I'm a {{or .FirstSkill "software"}} professional with experience in {{.TopThreeSkills}}. I've worked on projects involving {{or .FirstRole "software development"}}, where I've developed strong problem-solving skills and technical expertise. I'm passionate about creating efficient solutions and staying current with technology trends.`,
	},
	{
		ID: 2, Difficulty: types.DifficultyEasy, Category: "Motivation",
		Question:    "What interests you about this role?",
		ModelAnswer: `This role aligns perfectly with my experience in {{.TopTwoSkills}}. I'm excited about the opportunity to work with technologies mentioned in the job description and contribute to projects that make a real impact. The company's focus on innovation and the specific challenges mentioned in the role description really appeal to me.`,
	},
	{
		ID: 3, Difficulty: types.DifficultyMedium, Category: "Technical",
		Question:    `Describe your experience with {{or .FirstSkill "the main technology stack"}}.`,
		ModelAnswer: `I have extensive experience with {{or .FirstSkill "this technology"}}, including {{or .FirstRole "various projects where I implemented solutions"}}. I've used it to build scalable applications, optimize performance, and solve complex problems. I stay updated with best practices and have experience with related tools and frameworks.`,
	},
	{
		ID: 4, Difficulty: types.DifficultyMedium, Category: "Experience",
		Question:    "Walk me through a challenging project you worked on.",
		ModelAnswer: `One challenging project involved {{or .FirstRole "building a complex application"}}. The main challenges were around scalability and performance optimization. I approached this by breaking down the problem, researching best practices, and implementing a solution using {{.TopTwoSkills}}. The result was a 30% improvement in performance and positive user feedback.`,
	},
	{
		ID: 5, Difficulty: types.DifficultyMedium, Category: "Behavioral",
		Question:    "How do you handle working under tight deadlines?",
		ModelAnswer: `I handle tight deadlines by prioritizing tasks based on impact and urgency, breaking complex work into manageable chunks, and communicating proactively with stakeholders. I use tools like task lists and time-blocking to stay organized. When faced with constraints, I focus on delivering the core functionality first, then iterate on improvements.`,
	},
	{
		ID: 6, Difficulty: types.DifficultyMedium, Category: "Learning",
		Question:    "Describe a time when you had to learn a new technology quickly.",
		ModelAnswer: `I recently had to learn {{or .SecondSkill "a new framework"}} for a project with a tight timeline. I started by going through official documentation, building small practice projects, and joining community forums. I dedicated extra hours outside of work and asked colleagues for guidance. Within two weeks, I was proficient enough to contribute effectively to the project.`,
	},
	{
		ID: 7, Difficulty: types.DifficultyHard, Category: "Technical",
		Question:    "What's your approach to debugging complex issues?",
		ModelAnswer: `My debugging approach involves systematic problem isolation: I reproduce the issue consistently, check logs and error messages, use debugging tools to trace execution, and create minimal test cases. I document my findings and hypotheses. For complex issues, I break them into smaller parts and use techniques like rubber duck debugging or peer review to gain fresh perspectives.`,
	},
	{
		ID: 8, Difficulty: types.DifficultyEasy, Category: "Learning",
		Question:    "How do you stay current with technology trends?",
		ModelAnswer: `I stay current through multiple channels: following industry blogs and newsletters, participating in developer communities like Stack Overflow and GitHub, attending webinars and conferences, and working on side projects with new technologies. I also set aside time weekly for learning and try to apply new concepts in my work when appropriate.`,
	},
	{
		ID: 9, Difficulty: types.DifficultyMedium, Category: "Teamwork",
		Question:    "Describe your experience working in a team environment.",
		ModelAnswer: `I thrive in collaborative environments and believe in clear communication and shared responsibility. In my previous roles, I've participated in code reviews, pair programming, and team planning sessions. I'm comfortable both leading initiatives and supporting others' work. I value different perspectives and always try to contribute constructively to team discussions and decisions.`,
	},
	{
		ID: 10, Difficulty: types.DifficultyEasy, Category: "Career",
		Question:    "Where do you see yourself in 5 years?",
		ModelAnswer: `In 5 years, I see myself having grown both technically and professionally. I'd like to have deepened my expertise in {{.TopTwoSkills}}, taken on more leadership responsibilities, and contributed to meaningful projects that have business impact. I'm also interested in mentoring junior developers and staying at the forefront of technology innovation.`,
	},
}

type compiledQuestion struct {
	spec        questionSpec
	question    *template.Template
	modelAnswer *template.Template
}

var compiledCatalog = compileCatalog(questionCatalog)

func compileCatalog(specs []questionSpec) []compiledQuestion {
	compiled := make([]compiledQuestion, 0, len(specs))
	for _, s := range specs {
		compiled = append(compiled, compiledQuestion{
			spec:        s,
			question:    template.Must(template.New("question").Parse(s.Question)),
			modelAnswer: template.Must(template.New("model_answer").Parse(s.ModelAnswer)),
		})
	}
	return compiled
}

// CatalogSize is the number of questions every generation cycle produces
func CatalogSize() int {
	return len(questionCatalog)
}

// InterviewQuestions interpolates the resume into the fixed ten-question catalog
func InterviewQuestions(resume types.ParsedResume) []types.InterviewQuestion {
	fields := answerFields{
		FirstSkill:     first(resume.Skills),
		SecondSkill:    at(resume.Skills, 1),
		TopThreeSkills: joinFirst(resume.Skills, 3, ", "),
		TopTwoSkills:   joinFirst(resume.Skills, 2, " and "),
		FirstRole:      first(resume.Roles),
	}

	questions := make([]types.InterviewQuestion, 0, len(compiledCatalog))
	for _, c := range compiledCatalog {
		questions = append(questions, types.InterviewQuestion{
			ID:          c.spec.ID,
			Question:    interpolate(c.question, fields),
			Difficulty:  c.spec.Difficulty,
			Category:    c.spec.Category,
			ModelAnswer: interpolate(c.modelAnswer, fields),
		})
	}
	return questions
}

func interpolate(t *template.Template, fields answerFields) string {
	return mustExecute(t, fields)
}

// mustExecute renders one of the package's built-in templates.
// They only read plain string fields, so a failure is a broken template and panics like template.Must.
func mustExecute(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		panic(fmt.Sprintf("synthesis: template %s: %v", t.Name(), err))
	}
	return b.String()
}
