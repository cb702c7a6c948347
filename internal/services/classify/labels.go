package classify

import (
	"context"
	"sort"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/interfaces"
	"github.com/ternarybob/ordino/internal/models"
)

// candidateLabels is the fixed vocabulary the label classifier ranks. The
// labels are editorial topic names, deliberately finer-grained than the
// primary taxonomy.
var candidateLabels = []string{
	"Системный анализ / Инженерия",
	"HR / Рынок труда IT",
	"Инструменты и технологии",
	"Зарплаты и компенсации",
	"Профессиональные навыки",
	"Архитектура и проектирование",
	"Управление проектами",
	"Безопасность информации",
	"Образование и обучение",
	"Бизнес и финансы",
}

// generalTopicLabel is returned when no rule matches the text.
const generalTopicLabel = "Общая тема"

// labelRule is one candidate label's weighted keyword set for the rule-based
// fallback path.
type labelRule struct {
	keywords []string
	weight   float64
}

var labelRules = map[string]labelRule{
	"Системный анализ / Инженерия": {
		keywords: []string{"системный анализ", "системный аналитик", "uml", "bpmn", "техническое задание",
			"требования", "анализ требований", "проектирование систем"},
		weight: 1.0,
	},
	"HR / Рынок труда IT": {
		keywords: []string{"вакансии", "работа", "карьера", "собеседование", "рынок труда", "зарплаты",
			"hr", "рекрутинг", "резюме", "поиск работы", "трудоустройство"},
		weight: 1.0,
	},
	"Инструменты и технологии": {
		keywords: []string{"python", "javascript", "react", "node.js", "frameworks", "библиотеки",
			"инструменты", "технологии", "ide", "разработка", "программирование"},
		weight: 0.9,
	},
	"Зарплаты и компенсации": {
		keywords: []string{"зарплата", "оклад", "компенсации", "бонусы", "доходы", "заработок",
			"стоимость специалиста", "зарплатная вилка"},
		weight: 0.9,
	},
	"Профессиональные навыки": {
		keywords: []string{"навыки", "компетенции", "обучение", "курсы", "сертификация",
			"повышение квалификации", "развитие", "скиллы"},
		weight: 0.8,
	},
	"Архитектура и проектирование": {
		keywords: []string{"архитектура", "проектирование", "паттерны", "ddd", "микросервисы",
			"design patterns", "системная архитектура"},
		weight: 0.8,
	},
	"Управление проектами": {
		keywords: []string{"управление проектами", "менеджмент", "agile", "scrum", "kanban",
			"проектный менеджмент", "планирование"},
		weight: 0.8,
	},
	"Безопасность информации": {
		keywords: []string{"безопасность", "security", "защита информации", "криптография",
			"кибербезопасность", "уязвимости"},
		weight: 0.8,
	},
	"Образование и обучение": {
		keywords: []string{"образование", "обучение", "университет", "курсы", "образовательные программы",
			"студенты", "преподавание"},
		weight: 0.7,
	},
	"Бизнес и финансы": {
		keywords: []string{"бизнес", "финансы", "стартап", "инвестиции", "налоги", "налогообложение",
			"эмиграция", "резидентство", "фнс", "ндфл", "предпринимательство"},
		weight: 0.8,
	},
}

// labelToPrimary maps candidate labels into the primary taxonomy key space
// for ensemble voting.
var labelToPrimary = map[string]string{
	"Системный анализ / Инженерия": "Architecture",
	"HR / Рынок труда IT":          "Career",
	"Инструменты и технологии":     "Programming",
	"Зарплаты и компенсации":       "Career",
	"Профессиональные навыки":      "Career",
	"Архитектура и проектирование": "Architecture",
	"Управление проектами":         "Management",
	"Безопасность информации":      "Security",
	"Образование и обучение":       "Education",
	"Бизнес и финансы":             "Business",
}

// minLabelTextLength is the minimum cleaned text length worth classifying.
const minLabelTextLength = 50

// maxZeroShotChars bounds text sent to the hosted zero-shot model.
const maxZeroShotChars = 4000

// LabelClassifier ranks the candidate vocabulary against a document via the
// hosted zero-shot model when configured, weighted keyword rules otherwise.
type LabelClassifier struct {
	zeroShot interfaces.ZeroShotClient
	logger   arbor.ILogger
}

// NewLabelClassifier creates a label classifier. A nil zero-shot client means
// rule-based only.
func NewLabelClassifier(zeroShot interfaces.ZeroShotClient, logger arbor.ILogger) *LabelClassifier {
	return &LabelClassifier{
		zeroShot: zeroShot,
		logger:   logger,
	}
}

// ClassifyLabels scores the document against the candidate labels. It never
// returns nil; failures degrade through rule-based scoring down to the
// general-topic sentinel.
func (c *LabelClassifier) ClassifyLabels(ctx context.Context, doc *models.Document) *models.LabelClassificationResult {
	text := strings.TrimSpace(doc.Title + " " + doc.CleanedText)

	if len([]rune(text)) < minLabelTextLength {
		return &models.LabelClassificationResult{
			PrimaryLabel: "Слишком короткий текст",
			Confidence:   0.0,
			Method:       models.LabelMethodTooShort,
		}
	}

	if c.zeroShot != nil && c.zeroShot.Available() {
		if result := c.classifyZeroShot(ctx, text); result != nil {
			return result
		}
	}

	return c.classifyByRules(text)
}

func (c *LabelClassifier) classifyZeroShot(ctx context.Context, text string) *models.LabelClassificationResult {
	runes := []rune(text)
	if len(runes) > maxZeroShotChars {
		text = string(runes[:maxZeroShotChars]) + "..."
	}

	scores, err := c.zeroShot.Classify(ctx, text, candidateLabels)
	if err != nil || len(scores) == 0 {
		c.logger.Warn().Err(err).Msg("Zero-shot classification failed, using rule-based scoring")
		return nil
	}

	var ranked []models.LabelScore
	for _, s := range scores {
		if s.Confidence > 0.1 {
			ranked = append(ranked, s)
			if len(ranked) >= 3 {
				break
			}
		}
	}

	c.logger.Debug().
		Str("primary", scores[0].Label).
		Float64("confidence", scores[0].Confidence).
		Msg("Zero-shot label classification completed")

	return &models.LabelClassificationResult{
		PrimaryLabel: scores[0].Label,
		RankedLabels: ranked,
		Confidence:   scores[0].Confidence,
		Method:       models.LabelMethodZeroShot,
	}
}

// classifyByRules scores every candidate label by matched keyword fraction
// scaled by its weight, capped at 0.95.
func (c *LabelClassifier) classifyByRules(text string) *models.LabelClassificationResult {
	textLower := strings.ToLower(text)

	type scored struct {
		label   string
		score   float64
		matched []string
	}
	var results []scored

	for label, rule := range labelRules {
		var matched []string
		for _, keyword := range rule.keywords {
			if strings.Contains(textLower, keyword) {
				matched = append(matched, keyword)
			}
		}
		if len(matched) == 0 {
			continue
		}
		score := float64(len(matched)) / float64(len(rule.keywords)) * rule.weight
		if score > 0.95 {
			score = 0.95
		}
		results = append(results, scored{label: label, score: score, matched: matched})
	}

	if len(results) == 0 {
		return &models.LabelClassificationResult{
			PrimaryLabel: generalTopicLabel,
			Confidence:   0.1,
			Method:       models.LabelMethodRuleBased,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].label < results[j].label
	})

	var ranked []models.LabelScore
	for _, r := range results {
		if r.score > 0.05 {
			ranked = append(ranked, models.LabelScore{Label: r.label, Confidence: r.score})
			if len(ranked) >= 3 {
				break
			}
		}
	}

	best := results[0]
	c.logger.Debug().
		Str("primary", best.label).
		Float64("confidence", best.score).
		Strs("matched_keywords", best.matched).
		Msg("Rule-based label classification completed")

	return &models.LabelClassificationResult{
		PrimaryLabel:    best.label,
		RankedLabels:    ranked,
		Confidence:      best.score,
		Method:          models.LabelMethodRuleBased,
		MatchedKeywords: best.matched,
	}
}

// MapToPrimary translates a candidate label into the primary taxonomy key
// space. Unmapped labels (including the general-topic sentinel) return "".
func (c *LabelClassifier) MapToPrimary(label string) string {
	return labelToPrimary[label]
}
