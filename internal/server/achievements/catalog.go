// Package achievements holds the achievement catalog and the evaluator that
// decides which achievements a profile has newly earned.
package achievements

import (
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/dmitrijs2005/lumen/internal/server/progression"
)

// BonusXP is awarded once for every newly unlocked achievement.
const BonusXP = 50

// Achievement is a catalog entry. Check is evaluated against a profile
// snapshot that already includes the usage being recorded.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Check       func(u *models.User) bool
}

func usedAtLeast(tool string, n int) func(u *models.User) bool {
	return func(u *models.User) bool {
		return u.UsageCount(tool) >= n
	}
}

var catalog = []Achievement{
	{
		ID:          "first-step",
		Name:        "First Step",
		Description: "Use any tool for the first time.",
		Check:       func(u *models.User) bool { return u.ToolsUsed() > 0 },
	},
	{
		ID:          "corrector-starter",
		Name:        "Polished Essay",
		Description: "Use the Essay Corrector once.",
		Check:       usedAtLeast(progression.ToolEssayCorrector, 1),
	},
	{
		ID:          "summarizer-adept",
		Name:        "Bookworm",
		Description: "Use the Text Summarizer 5 times.",
		Check:       usedAtLeast(progression.ToolTextSummarizer, 5),
	},
	{
		ID:          "chatbot-friend",
		Name:        "AI Friend",
		Description: "Chat with the AI 10 times.",
		Check:       usedAtLeast(progression.ToolChatbot, 10),
	},
	{
		ID:          "polyglot-novice",
		Name:        "Novice Polyglot",
		Description: "Use the Translator 3 times.",
		Check:       usedAtLeast(progression.ToolTranslator, 3),
	},
	{
		ID:          "presenter-pro",
		Name:        "Born Speaker",
		Description: "Create 3 presentations.",
		Check:       usedAtLeast(progression.ToolPresentationCreator, 3),
	},
	{
		ID:          "planner-extraordinaire",
		Name:        "Expert Planner",
		Description: "Plan 2 research projects.",
		Check:       usedAtLeast(progression.ToolProjectPlanner, 2),
	},
	{
		ID:          "exam-master",
		Name:        "Exam Master",
		Description: "Create 5 different exams.",
		Check:       usedAtLeast(progression.ToolExamCreator, 5),
	},
	{
		ID:          "math-wizard",
		Name:        "Math Wizard",
		Description: "Use the explained calculator 5 times.",
		Check:       usedAtLeast(progression.ToolScientificCalculator, 5),
	},
	{
		ID:          "task-crusher",
		Name:        "Task Crusher",
		Description: "Solve 10 problems with the task assistant.",
		Check:       usedAtLeast(progression.ToolTaskAssistant, 10),
	},
}

// Catalog returns the achievements in display order.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds an achievement by id.
func Lookup(id string) (Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
