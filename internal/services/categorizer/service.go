package categorizer

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/interfaces"
	"github.com/ternarybob/ordino/internal/models"
	"github.com/ternarybob/ordino/internal/services/classify"
	"github.com/ternarybob/ordino/internal/services/normalizer"
	"github.com/ternarybob/ordino/internal/taxonomy"
)

const (
	maxSubcategories = 3
	maxKeywords      = 8
)

// Service is the categorization engine's public entry point. It sequences
// normalization, summarization and the sub-classifiers, isolates their
// failures, and assembles the combined output record. Only input errors ever
// surface to the caller.
type Service struct {
	normalizer *normalizer.Service
	summarizer interfaces.Summarizer
	primary    interfaces.PrimaryClassifier
	subcats    interfaces.SubcategoryExtractor
	topics     interfaces.TopicClusterer
	labels     interfaces.LabelClassifier
	taxonomy   *taxonomy.Taxonomy
	scoring    common.ScoringConfig
	logger     arbor.ILogger
	validate   *validator.Validate
}

// NewService wires the orchestrator from its sub-classifiers.
func NewService(
	norm *normalizer.Service,
	summarizer interfaces.Summarizer,
	primary interfaces.PrimaryClassifier,
	subcats interfaces.SubcategoryExtractor,
	topicClusterer interfaces.TopicClusterer,
	labels interfaces.LabelClassifier,
	tax *taxonomy.Taxonomy,
	config *common.Config,
	logger arbor.ILogger,
) *Service {
	return &Service{
		normalizer: norm,
		summarizer: summarizer,
		primary:    primary,
		subcats:    subcats,
		topics:     topicClusterer,
		labels:     labels,
		taxonomy:   tax,
		scoring:    config.Scoring,
		logger:     logger,
		validate:   validator.New(),
	}
}

// Categorize classifies a single article. It fails only on input errors;
// every sub-classifier failure degrades to a fallback result.
func (s *Service) Categorize(ctx context.Context, input models.ArticleInput) (*models.CombinedCategorization, error) {
	doc, err := s.prepare(input)
	if err != nil {
		return nil, err
	}
	return s.categorizeDocument(ctx, input, doc, nil), nil
}

// CategorizeBatch classifies several articles together so the topic
// clusterer can group them with K-means instead of per-document TF-IDF.
func (s *Service) CategorizeBatch(ctx context.Context, inputs []models.ArticleInput) ([]*models.CombinedCategorization, error) {
	docs := make([]*models.Document, len(inputs))
	for i, input := range inputs {
		doc, err := s.prepare(input)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		docs[i] = doc
	}

	topicResults := s.topics.ClusterDocuments(docs)

	results := make([]*models.CombinedCategorization, len(inputs))
	for i := range inputs {
		var topicResult *models.TopicResult
		if i < len(topicResults) {
			topicResult = topicResults[i]
		}
		results[i] = s.categorizeDocument(ctx, inputs[i], docs[i], topicResult)
	}
	return results, nil
}

// prepare validates the input contract and normalizes it into a Document.
func (s *Service) prepare(input models.ArticleInput) (*models.Document, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid article input: %w", err)
	}

	doc := s.normalizer.Normalize(input)
	if doc.CleanedText == "" && doc.Title == "" {
		return nil, fmt.Errorf("no text content provided")
	}
	return doc, nil
}

// categorizeDocument runs the classification pipeline for one normalized
// document. A non-nil topicResult (from batch clustering) replaces the
// single-document topic path.
func (s *Service) categorizeDocument(ctx context.Context, input models.ArticleInput, doc *models.Document, topicResult *models.TopicResult) *models.CombinedCategorization {
	s.logger.Info().
		Str("title", doc.Title).
		Int("text_length", len(doc.CleanedText)).
		Str("language", doc.Language).
		Msg("Categorizing article")

	// HTML input is rendered to markdown so the summarizer prompt keeps
	// headings and emphasis; plain text passes through unchanged.
	summary := s.summarizer.Summarize(ctx, doc.Title, s.normalizer.ToMarkdown(input.Text))

	// Independent sub-classifiers fan out; a panic in one cannot take down
	// the others and a missing result degrades to a fallback below.
	var (
		wg          sync.WaitGroup
		aiResult    *models.ClassificationResult
		labelResult *models.LabelClassificationResult
	)

	wg.Add(1)
	common.SafeGo(s.logger, "classify-primary", func() {
		defer wg.Done()
		aiResult = s.primary.ClassifyPrimary(ctx, summary, doc.Language)
	})

	if topicResult == nil {
		wg.Add(1)
		common.SafeGo(s.logger, "classify-topics", func() {
			defer wg.Done()
			topicResult = s.topics.ClusterDocument(doc)
		})
	}

	wg.Add(1)
	common.SafeGo(s.logger, "classify-labels", func() {
		defer wg.Done()
		labelResult = s.labels.ClassifyLabels(ctx, doc)
	})

	wg.Wait()

	if aiResult == nil {
		key, confidence := classify.ClassifyByKeywords(summary, s.scoring)
		aiResult = &models.ClassificationResult{
			PrimaryCategory:      key,
			PrimaryCategoryLabel: s.taxonomy.LabelFor(key),
			Confidence:           confidence,
			Method:               models.MethodRuleBased,
		}
	}

	aiResult.Subcategories = s.subcats.ExtractSubcategories(ctx, aiResult.PrimaryCategory, summary, maxSubcategories)
	aiResult.Keywords = s.resolveKeywords(ctx, input, summary)

	ensemble := s.combine(summary, aiResult, labelResult)

	record := &models.CombinedCategorization{
		ID:                 common.NewResultID(),
		Summary:            summary,
		AICategorization:   *aiResult,
		TopicClustering:    topicResult,
		BartCategorization: labelResult,
		Ensemble:           ensemble,

		PrimaryCategory:      aiResult.PrimaryCategory,
		PrimaryCategoryLabel: aiResult.PrimaryCategoryLabel,
		Subcategories:        aiResult.Subcategories,
		Keywords:             aiResult.Keywords,
		Confidence:           aiResult.Confidence,
	}
	if doc.Title != "" {
		title := doc.Title
		record.Title = &title
	}

	s.logger.Info().
		Str("primary_category", aiResult.PrimaryCategory).
		Float64("confidence", aiResult.Confidence).
		Str("method", string(aiResult.Method)).
		Str("final_category", ensemble.PrimaryCategory).
		Msg("Article categorized")

	return record
}

// resolveKeywords picks the article keywords by precedence: caller-supplied
// extracted keywords, then keywords harvested from HTML meta tags, then
// model extraction with its local fallback.
func (s *Service) resolveKeywords(ctx context.Context, input models.ArticleInput, summary string) []string {
	if len(input.ExtractedKeywords) > 0 {
		keywords := input.ExtractedKeywords
		if len(keywords) > maxKeywords {
			keywords = keywords[:maxKeywords]
		}
		return keywords
	}

	if harvested := s.normalizer.HarvestMetaKeywords(input.Text); len(harvested) > 0 {
		if len(harvested) > maxKeywords {
			harvested = harvested[:maxKeywords]
		}
		return harvested
	}

	return s.subcats.ExtractKeywords(ctx, summary, maxKeywords)
}

// combine builds the ensemble vote set: the keyword rule vote is always
// present, the embedding vote joins when the similarity path actually ran,
// and the label classifier votes through its primary-taxonomy mapping.
func (s *Service) combine(summary string, aiResult *models.ClassificationResult, labelResult *models.LabelClassificationResult) models.EnsembleResult {
	// Rule-based vote, always present
	ruleKey, ruleConfidence := classify.ClassifyByKeywords(summary, s.scoring)
	votes := []vote{{categories: []string{ruleKey}, confidence: ruleConfidence}}

	if aiResult.Method == models.MethodEmbedding {
		votes = append(votes, vote{categories: []string{aiResult.PrimaryCategory}, confidence: aiResult.Confidence})
	}

	if labelResult != nil && labelResult.Method != models.LabelMethodTooShort {
		var mapped []string
		seen := make(map[string]struct{})
		for _, ls := range labelResult.RankedLabels {
			key := s.labels.MapToPrimary(ls.Label)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			mapped = append(mapped, key)
		}
		if len(mapped) > 0 {
			votes = append(votes, vote{categories: mapped, confidence: labelResult.Confidence})
		}
	}

	return combineVotes(votes, s.scoring)
}
