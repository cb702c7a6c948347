package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/ternarybob/ordino/internal/models"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[a-zA-Z][^>]*>`)
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	markdownPattern   = regexp.MustCompile("(?m)^#{1,6}\\s|\\]\\(|^```|^[-*]\\s|\\*\\*")
)

// Service normalizes raw article input into the single cleaned form every
// classifier operates on. Input may be HTML, markdown, or plain text.
type Service struct {
	logger   arbor.ILogger
	markdown goldmark.Markdown
}

// NewService creates a new normalizer service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger:   logger,
		markdown: goldmark.New(),
	}
}

// Normalize derives a Document from the input contract. CleanedText is
// computed once here and reused by every classifier downstream.
func (s *Service) Normalize(input models.ArticleInput) *models.Document {
	doc := &models.Document{
		Title: s.CleanText(input.Title),
		Text:  input.Text,
	}
	doc.CleanedText = s.CleanText(input.Text)

	language := input.Language
	if language == "" || language == models.LanguageAuto {
		language = DetectLanguage(doc.FullText())
	}
	doc.Language = language

	s.logger.Debug().
		Int("raw_length", len(input.Text)).
		Int("cleaned_length", len(doc.CleanedText)).
		Str("language", language).
		Msg("Normalized article input")

	return doc
}

// CleanText strips markup and collapses whitespace. HTML is parsed and
// reduced to its text nodes, markdown is stripped via its AST, plain text
// passes through; all three paths remove URLs and normalize whitespace.
func (s *Service) CleanText(text string) string {
	if text == "" {
		return ""
	}

	switch {
	case htmlTagPattern.MatchString(text):
		text = s.extractHTMLText(text)
	case markdownPattern.MatchString(text):
		text = s.extractMarkdownText(text)
	}

	text = urlPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// extractHTMLText pulls visible text out of an HTML fragment, skipping
// script and style content.
func (s *Service) extractHTMLText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Unparseable markup: fall back to tag removal
		return htmlTagPattern.ReplaceAllString(html, " ")
	}
	doc.Find("script, style, noscript").Remove()
	return doc.Text()
}

// extractMarkdownText walks the markdown AST and collects text nodes.
func (s *Service) extractMarkdownText(md string) string {
	source := []byte(md)
	root := s.markdown.Parser().Parse(gmtext.NewReader(source))

	var buf strings.Builder
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if _, isBlock := n.(*ast.Paragraph); isBlock {
				buf.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(source))
			buf.WriteByte(' ')
		case *ast.CodeBlock:
			for i := 0; i < node.Lines().Len(); i++ {
				line := node.Lines().At(i)
				buf.Write(line.Value(source))
				buf.WriteByte(' ')
			}
		case *ast.FencedCodeBlock:
			for i := 0; i < node.Lines().Len(); i++ {
				line := node.Lines().At(i)
				buf.Write(line.Value(source))
				buf.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// DetectLanguage performs script-based language detection on the first 1000
// characters: Cyrillic-dominant text is "ru", everything else "en".
func DetectLanguage(text string) string {
	sample := []rune(text)
	if len(sample) > 1000 {
		sample = sample[:1000]
	}

	var cyrillic, latin int
	for _, r := range sample {
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}

	if cyrillic > latin {
		return models.LanguageRussian
	}
	return models.LanguageEnglish
}
