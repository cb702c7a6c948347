package categorizer

import (
	"sort"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/models"
	"github.com/ternarybob/ordino/internal/taxonomy"
)

// vote is one sub-classifier's contribution to the ensemble: the categories
// it named and the confidence it named them with.
type vote struct {
	categories []string
	confidence float64
}

// combineVotes merges sub-results by confidence-weighted voting. Every
// category named by any vote accumulates that vote's confidence; categories
// ranked by accumulated vote, up to 3 kept above the threshold. When nothing
// survives the sentinel "General" category is returned.
func combineVotes(votes []vote, scoring common.ScoringConfig) models.EnsembleResult {
	categoryVotes := make(map[string]float64)
	var totalConfidence float64
	var resultCount int

	for _, v := range votes {
		if len(v.categories) == 0 {
			continue
		}
		resultCount++
		for _, category := range v.categories {
			categoryVotes[category] += v.confidence
			totalConfidence += v.confidence
		}
	}

	type ranked struct {
		category string
		votes    float64
	}
	order := make([]ranked, 0, len(categoryVotes))
	for category, accumulated := range categoryVotes {
		order = append(order, ranked{category: category, votes: accumulated})
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].votes != order[j].votes {
			return order[i].votes > order[j].votes
		}
		return order[i].category < order[j].category
	})

	var finalCategories []string
	for _, r := range order {
		if r.votes > scoring.VoteThreshold {
			finalCategories = append(finalCategories, r.category)
			if len(finalCategories) >= 3 {
				break
			}
		}
	}
	if len(finalCategories) == 0 {
		finalCategories = []string{taxonomy.GeneralLabel}
	}

	avgConfidence := 0.5
	if resultCount > 0 {
		avgConfidence = totalConfidence / float64(resultCount)
	}
	if avgConfidence > scoring.ConfidenceCap {
		avgConfidence = scoring.ConfidenceCap
	}

	return models.EnsembleResult{
		PrimaryCategory: finalCategories[0],
		Categories:      finalCategories,
		Confidence:      avgConfidence,
		Method:          models.MethodEnsemble,
	}
}
