package achievements

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/dmitrijs2005/lumen/internal/server/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(usage map[string]int, owned ...string) *models.User {
	u := models.NewUser(models.Identity{ID: "u1"}, models.RoleUser, time.Now())
	for k, v := range usage {
		u.ToolUsage[k] = v
	}
	u.AddAchievements(owned...)
	return u
}

func TestCatalog(t *testing.T) {
	list := Catalog()
	require.Len(t, list, 10)
	assert.Equal(t, "first-step", list[0].ID)
	assert.Equal(t, "task-crusher", list[9].ID)

	seen := map[string]bool{}
	for _, a := range list {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.NotEmpty(t, a.Name)
		assert.NotNil(t, a.Check)
	}

	list[0].ID = "mutated"
	assert.Equal(t, "first-step", Catalog()[0].ID)
}

func TestLookup(t *testing.T) {
	a, ok := Lookup("math-wizard")
	require.True(t, ok)
	assert.Equal(t, "Math Wizard", a.Name)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		usage map[string]int
		owned []string
		want  []string
	}{
		{name: "fresh profile", usage: nil, want: []string{}},
		{
			name:  "first essay",
			usage: map[string]int{progression.ToolEssayCorrector: 1},
			want:  []string{"first-step", "corrector-starter"},
		},
		{
			name:  "owned are skipped",
			usage: map[string]int{progression.ToolEssayCorrector: 1},
			owned: []string{"first-step"},
			want:  []string{"corrector-starter"},
		},
		{
			name:  "threshold not reached",
			usage: map[string]int{progression.ToolChatbot: 9},
			owned: []string{"first-step"},
			want:  []string{},
		},
		{
			name:  "threshold reached",
			usage: map[string]int{progression.ToolChatbot: 10},
			owned: []string{"first-step"},
			want:  []string{"chatbot-friend"},
		},
		{
			name: "catalog order",
			usage: map[string]int{
				progression.ToolTaskAssistant:        10,
				progression.ToolScientificCalculator: 5,
				progression.ToolTranslator:           3,
			},
			want: []string{"first-step", "polyglot-novice", "math-wizard", "task-crusher"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IDs(Evaluate(newUser(tt.usage, tt.owned...)))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	u := newUser(map[string]int{progression.ToolExamCreator: 5, progression.ToolProjectPlanner: 2})

	first := Evaluate(u)
	require.NotEmpty(t, first)
	u.AddAchievements(IDs(first)...)

	assert.Empty(t, Evaluate(u))
	assert.Equal(t, 0, Bonus(Evaluate(u)))
}

func TestBonus(t *testing.T) {
	two := []Achievement{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, 100, Bonus(two))
	assert.Equal(t, 0, Bonus(nil))
}
