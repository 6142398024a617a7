package source

import (
	"testing"

	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want models.Category
	}{
		{"OpenAI ships a new GPT-5 model", models.CategoryAI},
		{"Why I rewrote our service in Golang", models.CategoryProgramming},
		{"Apple unveils the new iPhone", models.CategoryGadget},
		{"Nintendo confirms new Zelda game", models.CategoryGaming},
		{"NASA telescope spots distant star cluster", models.CategoryScience},
		{"Fintech startup closes Series B funding", models.CategoryBusiness},
		{"NBA finals: Celtics win the championship", models.CategorySports},
		{"Olympics opening ceremony recap", models.CategorySports},
		{"Netflix renews the series for season 3", models.CategoryEntertainment},
		{"Massive cloud outage hits Europe", models.CategoryTech},
		{"Best sourdough recipes this spring", models.CategoryOther},
		{"", models.CategoryOther},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Classify(tt.text), "text=%q", tt.text)
	}
}

func TestClassify_FirstRuleWins(t *testing.T) {
	t.Parallel()

	// Упоминание и AI, и игр — правило ai стоит раньше.
	require.Equal(t, models.CategoryAI, Classify("AI agents now play video games"))
}

func TestClassify_WordBoundaries(t *testing.T) {
	t.Parallel()

	// "said" не должно матчиться как "ai".
	require.Equal(t, models.CategoryOther, Classify("The mayor said hello"))
}
