package topics

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/ternarybob/arbor"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ternarybob/ordino/internal/models"
)

const tfidfMethod = "tfidf_clustering"

// shortTextLabel is the sentinel for documents too short to cluster.
const shortTextLabel = "Текст слишком короткий"

// generalTopicLabel is the sentinel when no keywords survive filtering.
const generalTopicLabel = "Общая тема"

// fillerDocuments pad the single-document TF-IDF corpus so inverse document
// frequency has something to discriminate against.
var fillerDocuments = []string{
	"программирование разработка код",
	"управление проект команда",
	"анализ данные исследование",
}

var (
	topicURLPattern     = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	topicNonWordPattern = regexp.MustCompile(`[^\w\s\x{0400}-\x{04FF}]`)
	topicSpacePattern   = regexp.MustCompile(`\s+`)
	russianNounSuffixes = []string{"ание", "ение", "ость", "ство", "тель", "ция"}
	russianAdjSuffixes  = []string{"ный", "ская", "ское"}
	topicTitleCaser     = cases.Title(language.Und)
)

// Service discovers document topics from term statistics: TF-IDF keyword
// extraction for single documents, TF-IDF plus K-means for batches. It needs
// no external model and is always available.
type Service struct {
	logger arbor.ILogger
}

// NewService creates a topic clustering service
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// cleanTopicText strips URLs and punctuation while keeping Cyrillic.
func cleanTopicText(text string) string {
	text = topicURLPattern.ReplaceAllString(text, "")
	text = topicNonWordPattern.ReplaceAllString(text, " ")
	text = topicSpacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ClusterDocument derives the topic of a single document. Texts under 20
// characters get the too-short sentinel with topic ID -1.
func (s *Service) ClusterDocument(doc *models.Document) *models.TopicResult {
	cleanText := cleanTopicText(doc.FullText())

	if len([]rune(cleanText)) < 20 {
		s.logger.Debug().Int("length", len(cleanText)).Msg("Text too short for topic clustering")
		return &models.TopicResult{
			TopicID:    -1,
			Label:      shortTextLabel,
			Keywords:   []string{},
			Confidence: 0.0,
			Method:     tfidfMethod,
		}
	}

	keywords := s.extractDocumentKeywords(cleanText)

	var label string
	if len(keywords) > 0 {
		top := keywords
		if len(top) > 3 {
			top = top[:3]
		}
		label = strings.Join(top, " • ")
		if runes := []rune(label); len(runes) > 50 {
			label = string(runes[:47]) + "..."
		}
	} else {
		label = generalTopicLabel
	}

	confidence := 0.6
	if len(keywords) >= 3 {
		confidence = 0.75
	}
	if len(keywords) >= 5 {
		confidence = 0.85
	}

	s.logger.Debug().
		Str("topic_label", label).
		Strs("keywords", keywords).
		Float64("confidence", confidence).
		Msg("Topic clustering completed")

	return &models.TopicResult{
		TopicID:    0,
		Label:      label,
		Keywords:   keywords,
		Confidence: confidence,
		Method:     tfidfMethod,
	}
}

// extractDocumentKeywords runs TF-IDF over the document padded with the
// filler corpus and returns up to 6 representative terms.
func (s *Service) extractDocumentKeywords(cleanText string) []string {
	v := &vectorizer{
		maxFeatures: 100,
		ngramMin:    1,
		ngramMax:    2,
		useStop:     true,
	}

	corpus := append([]string{cleanText}, fillerDocuments...)
	matrix, features := v.fitTransform(corpus)
	if len(features) == 0 {
		return []string{}
	}

	scores := matrix[0]
	indices := make([]int, len(features))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})
	if len(indices) > 8 {
		indices = indices[:8]
	}

	keywords := []string{}
	for _, i := range indices {
		term := features[i]
		if scores[i] > 0.001 && len([]rune(term)) > 2 && !isDigits(term) {
			keywords = append(keywords, term)
			if len(keywords) >= 6 {
				break
			}
		}
	}
	return keywords
}

// ClusterDocuments clusters a batch of documents with K-means over TF-IDF
// vectors and labels each cluster from its characteristic terms. Documents
// too short to vectorize fall back to the single-document path.
func (s *Service) ClusterDocuments(docs []*models.Document) []*models.TopicResult {
	if len(docs) < 2 {
		results := make([]*models.TopicResult, len(docs))
		for i, doc := range docs {
			results[i] = s.ClusterDocument(doc)
		}
		return results
	}

	cleanTexts := make([]string, len(docs))
	for i, doc := range docs {
		cleanTexts[i] = cleanTopicText(doc.FullText())
	}

	var validIndices []int
	for i, text := range cleanTexts {
		if len([]rune(text)) >= 20 {
			validIndices = append(validIndices, i)
		}
	}
	if len(validIndices) < 2 {
		results := make([]*models.TopicResult, len(docs))
		for i, doc := range docs {
			results[i] = s.ClusterDocument(doc)
		}
		return results
	}

	validTexts := make([]string, len(validIndices))
	for i, idx := range validIndices {
		validTexts[i] = cleanTexts[idx]
	}

	v := &vectorizer{
		maxFeatures: 500,
		ngramMin:    1,
		ngramMax:    3,
		useStop:     false,
		maxDF:       0.95,
	}
	matrix, _ := v.fitTransform(validTexts)

	k := 5
	if half := len(validTexts) / 2; half < k {
		k = half
	}
	if k > 8 {
		k = 8
	}
	if k < 2 {
		k = 2
	}

	clusterLabels := kmeans(matrix, k)
	clusterKeywords := s.extractClusterKeywords(validTexts, clusterLabels)
	topicLabels := s.generateTopicLabels(clusterKeywords)

	// Per-document confidence from mean similarity to its cluster
	confidences := make([]float64, len(validTexts))
	for i := range validTexts {
		var sims []float64
		for j := range validTexts {
			if clusterLabels[j] == clusterLabels[i] {
				sims = append(sims, cosineRows(matrix[i], matrix[j]))
			}
		}
		confidence := 0.5
		if len(sims) > 1 {
			var sum float64
			for _, s := range sims {
				sum += s
			}
			confidence = sum / float64(len(sims))
		}
		if confidence < 0.1 {
			confidence = 0.1
		}
		if confidence > 0.95 {
			confidence = 0.95
		}
		confidences[i] = confidence
	}

	validSet := make(map[int]int, len(validIndices))
	for pos, idx := range validIndices {
		validSet[idx] = pos
	}

	results := make([]*models.TopicResult, len(docs))
	for i, doc := range docs {
		pos, ok := validSet[i]
		if !ok {
			results[i] = s.ClusterDocument(doc)
			continue
		}
		cluster := clusterLabels[pos]
		label, okLabel := topicLabels[cluster]
		if !okLabel {
			label = fmt.Sprintf("Кластер %d", cluster)
		}
		keywords := clusterKeywords[cluster]
		if keywords == nil {
			keywords = []string{}
		}
		results[i] = &models.TopicResult{
			TopicID:    cluster,
			Label:      label,
			Keywords:   keywords,
			Confidence: confidences[pos],
			Method:     tfidfMethod,
		}
	}

	s.logger.Debug().
		Int("documents", len(docs)).
		Int("clusters", k).
		Msg("Batch topic clustering completed")

	return results
}

// extractClusterKeywords finds the characteristic terms of each cluster from
// a stop-word-filtered TF-IDF pass, preferring longer and more specific
// word forms over inflections of the same root.
func (s *Service) extractClusterKeywords(documents []string, clusterLabels []int) map[int][]string {
	v := &vectorizer{
		maxFeatures: 500,
		ngramMin:    1,
		ngramMax:    3,
		useStop:     true,
	}
	matrix, features := v.fitTransform(documents)
	if len(features) == 0 {
		return map[int][]string{}
	}

	clusters := make(map[int][]int)
	for i, label := range clusterLabels {
		clusters[label] = append(clusters[label], i)
	}

	out := make(map[int][]string, len(clusters))
	for label, members := range clusters {
		meanScores := make([]float64, len(features))
		for _, m := range members {
			for j, score := range matrix[m] {
				meanScores[j] += score
			}
		}
		for j := range meanScores {
			meanScores[j] /= float64(len(members))
		}

		type scoredTerm struct {
			term  string
			score float64
		}
		var candidates []scoredTerm
		for j, term := range features {
			if meanScores[j] > 0.001 {
				candidates = append(candidates, scoredTerm{term: term, score: meanScores[j]})
			}
		}
		// Longer phrases get a boost so multi-word terms surface
		sort.SliceStable(candidates, func(a, b int) bool {
			sa := candidates[a].score + float64(len(strings.Fields(candidates[a].term)))*0.15
			sb := candidates[b].score + float64(len(strings.Fields(candidates[b].term)))*0.15
			if sa != sb {
				return sa > sb
			}
			return candidates[a].term < candidates[b].term
		})
		if len(candidates) > 25 {
			candidates = candidates[:25]
		}

		var keywords []string
		seenRoots := make(map[string]struct{})
		for _, cand := range candidates {
			term := cand.term
			runes := []rune(term)
			if len(runes) < 3 || containsDigit(term) || isStopWord(term) {
				continue
			}

			root := string(runes[:3])
			if len(runes) > 4 {
				root = string(runes[:4])
			}

			if _, seen := seenRoots[root]; seen && !isBetterTerm(term) {
				continue
			}
			keywords = append(keywords, term)
			seenRoots[root] = struct{}{}
			if len(keywords) >= 6 {
				break
			}
		}
		out[label] = keywords
	}

	return out
}

// isBetterTerm reports whether a keyword is worth keeping even when another
// form of the same root was already taken: long compounds, phrases, and
// nominative noun or adjective forms.
func isBetterTerm(term string) bool {
	if len([]rune(term)) > 6 || strings.Contains(term, " ") {
		return true
	}
	for _, suffix := range russianNounSuffixes {
		if strings.HasSuffix(term, suffix) {
			return true
		}
	}
	for _, suffix := range russianAdjSuffixes {
		if strings.HasSuffix(term, suffix) {
			return true
		}
	}
	return false
}

// generateTopicLabels builds a human-readable label per cluster from its
// keywords: one keyword is title-cased, two are bulleted, three or more take
// the "main (related)" form.
func (s *Service) generateTopicLabels(clusterKeywords map[int][]string) map[int]string {
	labels := make(map[int]string, len(clusterKeywords))

	for topicID, keywords := range clusterKeywords {
		if len(keywords) == 0 {
			labels[topicID] = fmt.Sprintf("Тема %d", topicID)
			continue
		}

		// Prefer nominative noun forms and compounds at the front
		var meaningful []string
		limit := len(keywords)
		if limit > 8 {
			limit = 8
		}
		for _, kw := range keywords[:limit] {
			if len([]rune(kw)) <= 2 || containsDigit(kw) || isStopWord(kw) {
				continue
			}
			if isNominativeForm(kw) {
				meaningful = append([]string{kw}, meaningful...)
			} else {
				meaningful = append(meaningful, kw)
			}
		}
		if len(meaningful) == 0 {
			meaningful = keywords
			if len(meaningful) > 3 {
				meaningful = meaningful[:3]
			}
		}

		var label string
		switch {
		case len(meaningful) == 1:
			label = topicTitleCaser.String(meaningful[0])
		case len(meaningful) == 2:
			label = meaningful[0] + " • " + meaningful[1]
		default:
			label = meaningful[0] + " (" + meaningful[1] + ")"
		}

		if runes := []rune(label); len(runes) > 40 {
			label = string(runes[:37]) + "..."
		}
		labels[topicID] = label
	}

	return labels
}

// isNominativeForm heuristically detects Russian nominative nouns, compound
// words and multi-word phrases.
func isNominativeForm(kw string) bool {
	if strings.Contains(kw, "ани") || strings.Contains(kw, "ени") || strings.Contains(kw, "ост") ||
		strings.Contains(kw, "ств") || strings.Contains(kw, "тор") || strings.Contains(kw, "ние") {
		return true
	}
	return len([]rune(kw)) > 6 || strings.Contains(kw, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
