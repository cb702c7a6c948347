package classify

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/models"
)

// mockZeroShot implements interfaces.ZeroShotClient.
type mockZeroShot struct {
	available bool
	classify  func(text string, labels []string) ([]models.LabelScore, error)
}

func (m *mockZeroShot) Available() bool { return m.available }

func (m *mockZeroShot) Classify(ctx context.Context, text string, labels []string) ([]models.LabelScore, error) {
	return m.classify(text, labels)
}

func labelDoc(title, text string) *models.Document {
	return &models.Document{Title: title, CleanedText: text}
}

func TestClassifyLabels_TooShort(t *testing.T) {
	c := NewLabelClassifier(nil, common.GetLogger())

	result := c.ClassifyLabels(context.Background(), labelDoc("", "короткий текст"))

	assert.Equal(t, models.LabelMethodTooShort, result.Method)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Empty(t, result.RankedLabels)
}

func TestClassifyLabels_RuleBased(t *testing.T) {
	c := NewLabelClassifier(nil, common.GetLogger())

	text := "Обзор рынка труда: вакансии, собеседование и карьера в IT, рекрутинг и резюме для поиска работы"
	result := c.ClassifyLabels(context.Background(), labelDoc("", text))

	require.Equal(t, models.LabelMethodRuleBased, result.Method)
	assert.Equal(t, "HR / Рынок труда IT", result.PrimaryLabel)
	assert.NotEmpty(t, result.MatchedKeywords)
	assert.Greater(t, result.Confidence, 0.1)
	assert.LessOrEqual(t, result.Confidence, 0.95)
	assert.LessOrEqual(t, len(result.RankedLabels), 3)
}

func TestClassifyLabels_NoMatchSentinel(t *testing.T) {
	c := NewLabelClassifier(nil, common.GetLogger())

	text := strings.Repeat("слово ", 20)
	result := c.ClassifyLabels(context.Background(), labelDoc("", text))

	assert.Equal(t, models.LabelMethodRuleBased, result.Method)
	assert.Equal(t, generalTopicLabel, result.PrimaryLabel)
	assert.InDelta(t, 0.1, result.Confidence, 1e-9)
	assert.Empty(t, result.RankedLabels)
}

func TestClassifyLabels_ZeroShotPath(t *testing.T) {
	zs := &mockZeroShot{
		available: true,
		classify: func(text string, labels []string) ([]models.LabelScore, error) {
			assert.Equal(t, candidateLabels, labels)
			return []models.LabelScore{
				{Label: "Инструменты и технологии", Confidence: 0.7},
				{Label: "Профессиональные навыки", Confidence: 0.2},
				{Label: "Бизнес и финансы", Confidence: 0.05},
			}, nil
		},
	}
	c := NewLabelClassifier(zs, common.GetLogger())

	text := strings.Repeat("статья про инструменты ", 5)
	result := c.ClassifyLabels(context.Background(), labelDoc("", text))

	require.Equal(t, models.LabelMethodZeroShot, result.Method)
	assert.Equal(t, "Инструменты и технологии", result.PrimaryLabel)
	assert.InDelta(t, 0.7, result.Confidence, 1e-9)
	// Scores at or below 0.1 are dropped from the ranked list
	require.Len(t, result.RankedLabels, 2)
	assert.Equal(t, "Профессиональные навыки", result.RankedLabels[1].Label)
}

func TestClassifyLabels_ZeroShotTruncatesInput(t *testing.T) {
	var sentLength int
	zs := &mockZeroShot{
		available: true,
		classify: func(text string, labels []string) ([]models.LabelScore, error) {
			sentLength = len([]rune(text))
			return []models.LabelScore{{Label: candidateLabels[0], Confidence: 0.5}}, nil
		},
	}
	c := NewLabelClassifier(zs, common.GetLogger())

	longText := strings.Repeat("а", 10000)
	c.ClassifyLabels(context.Background(), labelDoc("", longText))

	// 4000 chars plus the ellipsis
	assert.Equal(t, maxZeroShotChars+3, sentLength)
}

func TestClassifyLabels_ZeroShotFailureFallsBackToRules(t *testing.T) {
	zs := &mockZeroShot{
		available: true,
		classify: func(text string, labels []string) ([]models.LabelScore, error) {
			return nil, fmt.Errorf("model loading")
		},
	}
	c := NewLabelClassifier(zs, common.GetLogger())

	text := "Статья про архитектуру: паттерны, ddd и микросервисы в системной архитектуре"
	result := c.ClassifyLabels(context.Background(), labelDoc("", text))

	assert.Equal(t, models.LabelMethodRuleBased, result.Method)
	assert.Equal(t, "Архитектура и проектирование", result.PrimaryLabel)
}

func TestMapToPrimary(t *testing.T) {
	c := NewLabelClassifier(nil, common.GetLogger())

	tests := []struct {
		label string
		want  string
	}{
		{"Системный анализ / Инженерия", "Architecture"},
		{"HR / Рынок труда IT", "Career"},
		{"Инструменты и технологии", "Programming"},
		{"Бизнес и финансы", "Business"},
		{"Безопасность информации", "Security"},
		{generalTopicLabel, ""},
		{"что-то неизвестное", ""},
	}

	for _, tt := range tests {
		if got := c.MapToPrimary(tt.label); got != tt.want {
			t.Errorf("MapToPrimary(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
