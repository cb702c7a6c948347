package models

// Language hint values accepted on the input contract. "auto" defers to
// script-based detection in the normalizer.
const (
	LanguageAuto    = "auto"
	LanguageRussian = "ru"
	LanguageEnglish = "en"
)

// ArticleInput is the record consumed from the text-extraction collaborator.
// Text may be plain text, markdown, or raw HTML - the normalizer handles all
// three. ExtractedKeywords are meta-tag keywords harvested upstream and take
// precedence over model-extracted keywords.
type ArticleInput struct {
	Text              string   `json:"text" validate:"required_without=Title"`
	Title             string   `json:"title,omitempty"`
	Language          string   `json:"language,omitempty" validate:"omitempty,oneof=auto ru en"`
	ExtractedKeywords []string `json:"extracted_keywords,omitempty"`
}

// Document is the normalized form every classifier operates on. CleanedText
// is derived once from Text and reused everywhere so the sub-classifiers all
// score the same string.
type Document struct {
	Title       string
	Text        string
	CleanedText string
	Language    string
}

// FullText returns title and cleaned text joined for classifiers that want
// both signals in one string.
func (d *Document) FullText() string {
	if d.Title == "" {
		return d.CleanedText
	}
	if d.CleanedText == "" {
		return d.Title
	}
	return d.Title + " " + d.CleanedText
}
