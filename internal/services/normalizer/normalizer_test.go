package normalizer

import (
	"strings"
	"testing"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/models"
)

func newTestService() *Service {
	return NewService(common.GetLogger())
}

func TestCleanText_HTML(t *testing.T) {
	s := newTestService()

	html := `<html><head><script>var x = 1;</script><style>.a{color:red}</style></head>
<body><h1>Заголовок</h1><p>Первый абзац про Go.</p></body></html>`

	got := s.CleanText(html)
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Errorf("tags survived cleaning: %q", got)
	}
	if strings.Contains(got, "var x") || strings.Contains(got, "color:red") {
		t.Errorf("script/style content survived cleaning: %q", got)
	}
	if !strings.Contains(got, "Заголовок") || !strings.Contains(got, "Первый абзац про Go.") {
		t.Errorf("visible text lost: %q", got)
	}
}

func TestCleanText_Markdown(t *testing.T) {
	s := newTestService()

	md := "# Заголовок\n\nТекст с **жирным** и [ссылкой](https://example.com).\n\n```go\nfunc main() {}\n```\n"
	got := s.CleanText(md)

	if strings.Contains(got, "#") || strings.Contains(got, "**") || strings.Contains(got, "](") {
		t.Errorf("markdown syntax survived cleaning: %q", got)
	}
	if !strings.Contains(got, "Заголовок") || !strings.Contains(got, "жирным") {
		t.Errorf("text content lost: %q", got)
	}
}

func TestCleanText_StripsURLsAndWhitespace(t *testing.T) {
	s := newTestService()

	got := s.CleanText("до   https://example.com/page?q=1   после\n\nещё")
	if strings.Contains(got, "http") {
		t.Errorf("URL survived cleaning: %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("whitespace not collapsed: %q", got)
	}
}

func TestCleanText_Empty(t *testing.T) {
	s := newTestService()
	if got := s.CleanText(""); got != "" {
		t.Errorf("CleanText(\"\") = %q", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"russian", "Статья о программировании и разработке систем", models.LanguageRussian},
		{"english", "An article about programming and system design", models.LanguageEnglish},
		{"mixed mostly russian", "Статья про Kubernetes и микросервисы в облаке", models.LanguageRussian},
		{"empty defaults to english", "", models.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.text); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalize_AutoLanguage(t *testing.T) {
	s := newTestService()

	doc := s.Normalize(models.ArticleInput{
		Text:     "<p>Новая статья про налоги и финансы</p>",
		Title:    "Налоги",
		Language: models.LanguageAuto,
	})

	if doc.Language != models.LanguageRussian {
		t.Errorf("expected auto-detected ru, got %q", doc.Language)
	}
	if strings.Contains(doc.CleanedText, "<p>") {
		t.Errorf("CleanedText still has markup: %q", doc.CleanedText)
	}
}

func TestNormalize_ExplicitLanguageKept(t *testing.T) {
	s := newTestService()

	doc := s.Normalize(models.ArticleInput{
		Text:     "Русский текст статьи",
		Language: models.LanguageEnglish,
	})
	if doc.Language != models.LanguageEnglish {
		t.Errorf("explicit language hint overridden: %q", doc.Language)
	}
}

func TestHarvestMetaKeywords(t *testing.T) {
	s := newTestService()

	html := `<html><head><meta name="keywords" content="go, concurrency , testing"></head>
<body><div class="tags"><a>go</a><a>backend</a></div></body></html>`

	got := s.HarvestMetaKeywords(html)
	if len(got) != 4 {
		t.Fatalf("expected 4 unique keywords, got %v", got)
	}
	want := []string{"go", "concurrency", "testing", "backend"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keywords = %v, want %v", got, want)
			break
		}
	}
}

func TestHarvestMetaKeywords_PlainTextReturnsNil(t *testing.T) {
	s := newTestService()
	if got := s.HarvestMetaKeywords("просто текст без разметки"); got != nil {
		t.Errorf("expected nil for plain text, got %v", got)
	}
}

func TestHarvestMetaKeywords_Cap(t *testing.T) {
	s := newTestService()

	var sb strings.Builder
	sb.WriteString(`<meta name="keywords" content="`)
	for i := 0; i < 20; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strings.Repeat("k", 1) + string(rune('a'+i)))
	}
	sb.WriteString(`"><p>body</p>`)

	got := s.HarvestMetaKeywords(sb.String())
	if len(got) != maxHarvestedKeywords {
		t.Errorf("expected cap at %d keywords, got %d", maxHarvestedKeywords, len(got))
	}
}
