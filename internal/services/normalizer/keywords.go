package normalizer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxHarvestedKeywords caps the meta-tag keyword harvest.
const maxHarvestedKeywords = 15

// HarvestMetaKeywords extracts publisher-declared keywords from an HTML
// fragment: the <meta name="keywords"> tag plus visible article tag
// elements. Harvested keywords take precedence over model-extracted ones.
// Returns nil when the input is not HTML or declares no keywords.
func (s *Service) HarvestMetaKeywords(html string) []string {
	if !htmlTagPattern.MatchString(html) {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var keywords []string

	if content, exists := doc.Find(`meta[name="keywords"]`).Attr("content"); exists {
		for _, kw := range strings.Split(content, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
	}

	doc.Find(".tags a, .article-tags a, a[rel='tag']").Each(func(_ int, sel *goquery.Selection) {
		if tag := strings.TrimSpace(sel.Text()); tag != "" && len(tag) < 50 {
			keywords = append(keywords, tag)
		}
	})

	// Case-insensitive dedupe, preserving first occurrence order
	seen := make(map[string]struct{}, len(keywords))
	var unique []string
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		unique = append(unique, kw)
		if len(unique) >= maxHarvestedKeywords {
			break
		}
	}

	return unique
}
