package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/interfaces"
	"github.com/ternarybob/ordino/internal/taxonomy"
)

// triggerRule maps trigger substrings to a single subcategory. The first rule
// whose trigger matches decides the subcategory outright, no model call.
type triggerRule struct {
	triggers    []string
	subcategory string
}

// subcategoryTriggers are evaluated in order per primary category. Triggers
// are lowercase substrings, Russian stems alongside English words.
var subcategoryTriggers = map[string][]triggerRule{
	"Business": {
		{triggers: []string{"налог", "ндфл", "налогообложен", "tax"}, subcategory: "Taxes"},
		{triggers: []string{"правов", "закон", "юридическ", "legal"}, subcategory: "Legal"},
		{triggers: []string{"эмиграц", "иммиграц", "переезд", "immigration"}, subcategory: "Immigration"},
		{triggers: []string{"инвестиц", "investment", "инвестор"}, subcategory: "Investment"},
	},
	"Career": {
		{triggers: []string{"вакансии", "должност", "job", "position", "рынок труда"}, subcategory: "Industry Trends"},
		{triggers: []string{"собеседован", "interview", "навыки", "skill"}, subcategory: "Interview Prep"},
	},
}

// SubcategoryService resolves subcategories and keywords for a classified
// article: deterministic trigger rules first, chat model second, with local
// fallbacks when the model is unavailable or returns garbage.
type SubcategoryService struct {
	llmService interfaces.LLMService
	taxonomy   *taxonomy.Taxonomy
	logger     arbor.ILogger
}

// NewSubcategoryService creates a subcategory and keyword extractor.
func NewSubcategoryService(llmService interfaces.LLMService, tax *taxonomy.Taxonomy, logger arbor.ILogger) *SubcategoryService {
	return &SubcategoryService{
		llmService: llmService,
		taxonomy:   tax,
		logger:     logger,
	}
}

// ExtractSubcategories returns up to maxItems subcategories for the primary
// category. Trigger rules win when they fire and the matched subcategory is
// allowed; otherwise the chat model picks from the allowed list.
func (s *SubcategoryService) ExtractSubcategories(ctx context.Context, primaryKey, summary string, maxItems int) []string {
	allowed := s.taxonomy.SubcategoriesFor(primaryKey)
	if len(allowed) == 0 {
		return nil
	}

	if match := matchTriggerRules(primaryKey, summary, allowed); match != "" {
		s.logger.Debug().
			Str("primary", primaryKey).
			Str("subcategory", match).
			Msg("Subcategory resolved by trigger rule")
		return []string{match}
	}

	result, answered := s.extractViaModel(ctx, primaryKey, summary, allowed, maxItems)
	if len(result) > 0 {
		return result
	}
	if answered {
		// The model replied but nothing usable survived filtering
		return []string{allowed[0]}
	}
	return nil
}

// matchTriggerRules evaluates the trigger tables for a primary category and
// returns the first allowed subcategory whose trigger matches.
func matchTriggerRules(primaryKey, summary string, allowed []string) string {
	rules, ok := subcategoryTriggers[primaryKey]
	if !ok {
		return ""
	}

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, sub := range allowed {
		allowedSet[sub] = struct{}{}
	}

	summaryLower := strings.ToLower(summary)
	for _, rule := range rules {
		for _, trigger := range rule.triggers {
			if strings.Contains(summaryLower, trigger) {
				if _, ok := allowedSet[rule.subcategory]; ok {
					return rule.subcategory
				}
				break
			}
		}
	}
	return ""
}

func (s *SubcategoryService) extractViaModel(ctx context.Context, primaryKey, summary string, allowed []string, maxItems int) ([]string, bool) {
	if s.llmService == nil || s.llmService.GetMode() == interfaces.LLMModeDisabled {
		return nil, false
	}

	prompt := fmt.Sprintf(`На основе краткого описания статьи выбери до %d наиболее подходящих подкатегорий из списка.
Дай ответ в виде JSON массива только с выбранными строками, без комментариев.

Доступные подкатегории: %s

Описание статьи: %s`, maxItems, strings.Join(allowed, ", "), summary)

	response, err := s.llmService.Chat(ctx, []interfaces.Message{
		{Role: "system", Content: "Ты классифицируешь статьи по подкатегориям. Отвечай только в формате JSON массива."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("primary", primaryKey).Msg("Model subcategory extraction failed")
		return nil, false
	}

	items := parseJSONStringArray(response)
	return s.taxonomy.FilterSubcategories(primaryKey, items, maxItems), true
}

// ExtractKeywords returns up to maxKeywords keywords for the summary via the
// chat model, falling back to long tokens from the summary itself.
func (s *SubcategoryService) ExtractKeywords(ctx context.Context, summary string, maxKeywords int) []string {
	if s.llmService != nil && s.llmService.GetMode() != interfaces.LLMModeDisabled {
		prompt := fmt.Sprintf(`Извлеки до %d ключевых слов из текста статьи.
Дай ответ в виде JSON массива строк без комментариев.

Текст: %s`, maxKeywords, summary)

		response, err := s.llmService.Chat(ctx, []interfaces.Message{
			{Role: "system", Content: "Ты извлекаешь ключевые слова из текстов. Отвечай только в формате JSON массива."},
			{Role: "user", Content: prompt},
		})
		if err == nil {
			if keywords := parseJSONStringArray(response); len(keywords) > 0 {
				if len(keywords) > maxKeywords {
					keywords = keywords[:maxKeywords]
				}
				return keywords
			}
		} else {
			s.logger.Warn().Err(err).Msg("Model keyword extraction failed, using token fallback")
		}
	}

	return fallbackKeywords(summary, maxKeywords)
}

// fallbackKeywords picks the first long tokens from the summary.
func fallbackKeywords(summary string, maxKeywords int) []string {
	var keywords []string
	for _, word := range strings.Fields(summary) {
		if len([]rune(word)) > 4 {
			keywords = append(keywords, word)
			if len(keywords) >= maxKeywords {
				break
			}
		}
	}
	return keywords
}

// parseJSONStringArray extracts a JSON string array from a model response,
// tolerating markdown code fences and surrounding prose.
func parseJSONStringArray(response string) []string {
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	// Narrow to the outermost array when the model added prose around it
	if start := strings.Index(text, "["); start >= 0 {
		if end := strings.LastIndex(text, "]"); end > start {
			text = text[start : end+1]
		}
	}

	var items []string
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil
	}

	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
