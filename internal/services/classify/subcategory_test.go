package classify

import (
	"context"
	"fmt"
	"testing"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/interfaces"
	"github.com/ternarybob/ordino/internal/taxonomy"
)

func subcategoryTaxonomy() *taxonomy.Taxonomy {
	return &taxonomy.Taxonomy{
		Primary: []taxonomy.CategoryDefinition{
			{Key: "Business", Label: "Бизнес"},
			{Key: "Career", Label: "Карьера"},
			{Key: "AI", Label: "Искусственный интеллект"},
		},
		Subcategories: map[string][]string{
			"Business": {"Taxes", "Legal", "Immigration", "Investment"},
			"Career":   {"Industry Trends", "Interview Prep"},
			"AI":       {"LLM", "NLP", "Computer Vision"},
		},
	}
}

func TestExtractSubcategories_TriggerRuleSkipsModel(t *testing.T) {
	llm := &mockLLM{
		chatFn: func(messages []interfaces.Message) (string, error) {
			t.Fatal("model must not be called when a trigger rule matches")
			return "", nil
		},
	}
	s := NewSubcategoryService(llm, subcategoryTaxonomy(), common.GetLogger())

	got := s.ExtractSubcategories(context.Background(), "Business", "Как платить налог при переезде", 3)

	if len(got) != 1 || got[0] != "Taxes" {
		t.Errorf("got %v, want [Taxes]", got)
	}
}

func TestExtractSubcategories_TriggerRulesOrdered(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		summary string
		want    string
	}{
		{"tax trigger", "Business", "изменения в ндфл", "Taxes"},
		{"legal trigger", "Business", "новый закон о персональных данных", "Legal"},
		{"immigration trigger", "Business", "как проходит иммиграция в Европу", "Immigration"},
		{"investment trigger", "Business", "обзор для инвесторов: investment стратегии", "Investment"},
		{"job market trigger", "Career", "вакансии на рынке", "Industry Trends"},
		{"interview trigger", "Career", "как пройти собеседование", "Interview Prep"},
	}

	llm := &mockLLM{
		chatFn: func(messages []interfaces.Message) (string, error) {
			t.Fatal("model must not be called when a trigger rule matches")
			return "", nil
		},
	}
	s := NewSubcategoryService(llm, subcategoryTaxonomy(), common.GetLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ExtractSubcategories(context.Background(), tt.primary, tt.summary, 3)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("got %v, want [%s]", got, tt.want)
			}
		})
	}
}

func TestExtractSubcategories_ModelPathFiltersToAllowed(t *testing.T) {
	llm := &mockLLM{
		chatFn: func(messages []interfaces.Message) (string, error) {
			return `["LLM", "Blockchain", "NLP"]`, nil
		},
	}
	s := NewSubcategoryService(llm, subcategoryTaxonomy(), common.GetLogger())

	got := s.ExtractSubcategories(context.Background(), "AI", "Статья про генеративные модели", 3)

	if len(got) != 2 || got[0] != "LLM" || got[1] != "NLP" {
		t.Errorf("got %v, want [LLM NLP]", got)
	}
}

func TestExtractSubcategories_CodeFencedResponseRepaired(t *testing.T) {
	llm := &mockLLM{
		chatFn: func(messages []interfaces.Message) (string, error) {
			return "```json\n[\"NLP\"]\n```", nil
		},
	}
	s := NewSubcategoryService(llm, subcategoryTaxonomy(), common.GetLogger())

	got := s.ExtractSubcategories(context.Background(), "AI", "Обработка естественного языка", 3)

	if len(got) != 1 || got[0] != "NLP" {
		t.Errorf("got %v, want [NLP]", got)
	}
}

func TestExtractSubcategories_UnparseableResponseUsesFirstAllowed(t *testing.T) {
	llm := &mockLLM{
		chatFn: func(messages []interfaces.Message) (string, error) {
			return "не могу выбрать", nil
		},
	}
	s := NewSubcategoryService(llm, subcategoryTaxonomy(), common.GetLogger())

	got := s.ExtractSubcategories(context.Background(), "AI", "Что-то невнятное", 3)

	if len(got) != 1 || got[0] != "LLM" {
		t.Errorf("got %v, want the first allowed subcategory [LLM]", got)
	}
}

func TestExtractSubcategories_ModelErrorReturnsNothing(t *testing.T) {
	llm := &mockLLM{
		chatFn: func(messages []interfaces.Message) (string, error) {
			return "", fmt.Errorf("service unavailable")
		},
	}
	s := NewSubcategoryService(llm, subcategoryTaxonomy(), common.GetLogger())

	got := s.ExtractSubcategories(context.Background(), "AI", "Любой текст", 3)

	if got != nil {
		t.Errorf("got %v, want nil on model error", got)
	}
}

func TestExtractSubcategories_UnknownPrimary(t *testing.T) {
	s := NewSubcategoryService(&mockLLM{}, subcategoryTaxonomy(), common.GetLogger())

	if got := s.ExtractSubcategories(context.Background(), "Nonexistent", "текст", 3); got != nil {
		t.Errorf("got %v, want nil for a primary with no subcategories", got)
	}
}

func TestExtractKeywords_ModelPath(t *testing.T) {
	llm := &mockLLM{
		chatFn: func(messages []interfaces.Message) (string, error) {
			return `["go", "concurrency", "channels"]`, nil
		},
	}
	s := NewSubcategoryService(llm, subcategoryTaxonomy(), common.GetLogger())

	got := s.ExtractKeywords(context.Background(), "Статья про многозадачность в Go", 8)

	if len(got) != 3 || got[0] != "go" {
		t.Errorf("got %v", got)
	}
}

func TestExtractKeywords_FallbackToLongTokens(t *testing.T) {
	llm := &mockLLM{
		chatFn: func(messages []interfaces.Message) (string, error) {
			return "", fmt.Errorf("unavailable")
		},
	}
	s := NewSubcategoryService(llm, subcategoryTaxonomy(), common.GetLogger())

	got := s.ExtractKeywords(context.Background(), "про длинные токены статьи без модели", 3)

	// Only tokens longer than 4 runes survive, capped at max
	if len(got) != 3 {
		t.Fatalf("got %v, want 3 keywords", got)
	}
	for _, kw := range got {
		if len([]rune(kw)) <= 4 {
			t.Errorf("short token %q survived fallback", kw)
		}
	}
}

func TestParseJSONStringArray(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     int
	}{
		{"plain array", `["a", "b"]`, 2},
		{"fenced array", "```json\n[\"a\"]\n```", 1},
		{"array with prose", `Вот ответ: ["a", "b", "c"] надеюсь помог`, 3},
		{"empty strings dropped", `["a", "", "  "]`, 1},
		{"not json", "просто текст", 0},
		{"object not array", `{"a": 1}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseJSONStringArray(tt.response)
			if len(got) != tt.want {
				t.Errorf("parseJSONStringArray(%q) = %v, want %d items", tt.response, got, tt.want)
			}
		})
	}
}
