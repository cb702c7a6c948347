package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/models"
	"github.com/ternarybob/ordino/internal/taxonomy"
)

func TestCombineVotes_AccumulatedVoteWins(t *testing.T) {
	scoring := common.DefaultConfig().Scoring

	// Two results name Technology (0.6 and 0.4), one names Business (0.3):
	// Technology accumulates 1.0 > 0.3 and must rank first
	votes := []vote{
		{categories: []string{"Technology"}, confidence: 0.6},
		{categories: []string{"Technology"}, confidence: 0.4},
		{categories: []string{"Business"}, confidence: 0.3},
	}

	result := combineVotes(votes, scoring)

	assert.Equal(t, "Technology", result.PrimaryCategory)
	assert.Equal(t, []string{"Technology", "Business"}, result.Categories)
	assert.Equal(t, models.MethodEnsemble, result.Method)
}

func TestCombineVotes_ThresholdDropsWeakCategories(t *testing.T) {
	scoring := common.DefaultConfig().Scoring

	votes := []vote{
		{categories: []string{"AI"}, confidence: 0.8},
		{categories: []string{"Sports"}, confidence: 0.05},
	}

	result := combineVotes(votes, scoring)

	assert.Equal(t, []string{"AI"}, result.Categories)
}

func TestCombineVotes_TopThreeCap(t *testing.T) {
	scoring := common.DefaultConfig().Scoring

	votes := []vote{
		{categories: []string{"A", "B", "C", "D"}, confidence: 0.5},
	}

	result := combineVotes(votes, scoring)

	assert.Len(t, result.Categories, 3)
}

func TestCombineVotes_EmptyFallsBackToGeneral(t *testing.T) {
	scoring := common.DefaultConfig().Scoring

	result := combineVotes(nil, scoring)

	assert.Equal(t, taxonomy.GeneralLabel, result.PrimaryCategory)
	assert.Equal(t, []string{taxonomy.GeneralLabel}, result.Categories)
}

func TestCombineVotes_ConfidenceCapped(t *testing.T) {
	scoring := common.DefaultConfig().Scoring

	votes := []vote{
		{categories: []string{"AI"}, confidence: 0.99},
		{categories: []string{"AI"}, confidence: 0.99},
	}

	result := combineVotes(votes, scoring)

	assert.LessOrEqual(t, result.Confidence, scoring.ConfidenceCap)
}

func TestCombineVotes_DeterministicTieBreak(t *testing.T) {
	scoring := common.DefaultConfig().Scoring

	votes := []vote{
		{categories: []string{"Zeta", "Alpha"}, confidence: 0.5},
	}

	first := combineVotes(votes, scoring)
	for i := 0; i < 10; i++ {
		again := combineVotes(votes, scoring)
		assert.Equal(t, first.Categories, again.Categories)
	}
	// Equal votes rank alphabetically
	assert.Equal(t, []string{"Alpha", "Zeta"}, first.Categories)
}
