package normalizer

import (
	md "github.com/JohannesKaufmann/html-to-markdown"
)

// ToMarkdown converts an HTML fragment to markdown, preserving headings and
// emphasis for the summarizer prompt. Non-HTML input is returned unchanged.
func (s *Service) ToMarkdown(html string) string {
	if !htmlTagPattern.MatchString(html) {
		return html
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		s.logger.Warn().Err(err).Msg("HTML to markdown conversion failed, using raw text")
		return s.CleanText(html)
	}
	return markdown
}
