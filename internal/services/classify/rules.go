package classify

import (
	"strings"

	"github.com/ternarybob/ordino/internal/common"
)

// keywordRule is one weighted keyword set for a primary category.
type keywordRule struct {
	keywords []string
	weight   float64
}

// primaryKeywordRules maps primary category keys to their trigger keywords.
// The tables mix Russian and English terms because the corpus does. Order of
// map iteration does not matter: scoring is deterministic per category and
// ties keep the higher score.
var primaryKeywordRules = map[string]keywordRule{
	"AI": {
		keywords: []string{"ai", "машинное обучение", "нейросети", "llm", "nlp", "генеративные модели",
			"искусственный интеллект", "computer vision", "mlops"},
		weight: 0.9,
	},
	"Programming": {
		keywords: []string{"программирование", "разработка", "код", "алгоритм", "python", "javascript",
			"технологии", "software", "development", "coding", "фреймворки"},
		weight: 0.8,
	},
	"Business": {
		keywords: []string{"бизнес", "деньги", "финансы", "стартап", "менеджмент", "маркетинг",
			"business", "finance", "startup", "investment", "продажи", "налоги", "налогообложение",
			"фнс", "налоговое", "резидентство", "эмиграция", "налоговое право", "ндфл"},
		weight: 0.8,
	},
	"Data": {
		keywords: []string{"данные", "аналитика", "data", "analytics", "bi", "sql", "статистика",
			"data engineering", "визуализация"},
		weight: 0.7,
	},
	"Architecture": {
		keywords: []string{"архитектура", "системы", "микросервисы", "ddd", "интеграции",
			"распределённые системы", "системный анализ"},
		weight: 0.7,
	},
	"Security": {
		keywords: []string{"безопасность", "security", "криптография", "iam", "appsec",
			"нормативы", "compliance"},
		weight: 0.7,
	},
}

// ClassifyByKeywords scores the text against the primary keyword tables and
// returns the best category key with its confidence. It is a pure function:
// no model calls, no I/O. The score for a category is the matched fraction of
// its keyword list scaled by the category weight and capped at 0.9; texts
// matching nothing land in Other with the no-match confidence.
func ClassifyByKeywords(text string, scoring common.ScoringConfig) (string, float64) {
	textLower := strings.ToLower(text)

	bestCategory := "Other"
	bestScore := 0.0

	for category, rule := range primaryKeywordRules {
		matches := 0
		for _, keyword := range rule.keywords {
			if strings.Contains(textLower, keyword) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}

		score := float64(matches) / float64(len(rule.keywords)) * rule.weight
		if score > 0.9 {
			score = 0.9
		}
		// Ties break lexicographically so map order never changes the answer
		if score > bestScore || (score == bestScore && category < bestCategory) {
			bestScore = score
			bestCategory = category
		}
	}

	if bestScore > 0 {
		confidence := bestScore
		if confidence < scoring.ConfidenceFloor {
			confidence = scoring.ConfidenceFloor
		}
		return bestCategory, confidence
	}
	return bestCategory, scoring.NoMatchConfidence
}
