package classify

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/common"
	"github.com/ternarybob/ordino/internal/interfaces"
	"github.com/ternarybob/ordino/internal/models"
	"github.com/ternarybob/ordino/internal/taxonomy"
)

// EmbeddingClassifier assigns a primary category by comparing the summary's
// embedding against cached embeddings of the category descriptions. Any
// embedding failure degrades to the keyword rule tables; the classifier never
// returns an error.
type EmbeddingClassifier struct {
	llmService interfaces.LLMService
	taxonomy   *taxonomy.Taxonomy
	cache      interfaces.EmbeddingCache
	scoring    common.ScoringConfig
	maxChars   int
	logger     arbor.ILogger

	// populateMu serializes the one-time category embedding population so
	// concurrent first classifications don't each call the embed API per key.
	populateMu sync.Mutex
}

// NewEmbeddingClassifier creates an embedding similarity classifier. A nil
// cache gets an in-memory one.
func NewEmbeddingClassifier(llmService interfaces.LLMService, tax *taxonomy.Taxonomy, cache interfaces.EmbeddingCache, config *common.Config, logger arbor.ILogger) *EmbeddingClassifier {
	if cache == nil {
		cache = NewMemoryEmbeddingCache()
	}
	maxChars := config.Summary.MaxInputChars
	if maxChars <= 0 {
		maxChars = 6000
	}
	return &EmbeddingClassifier{
		llmService: llmService,
		taxonomy:   tax,
		cache:      cache,
		scoring:    config.Scoring,
		maxChars:   maxChars,
		logger:     logger,
	}
}

// ClassifyPrimary classifies the summary into a primary category. Confidence
// derives from cosine similarity: strong top scores (or a close runner-up)
// get boosted then capped, weak scores are floored.
func (c *EmbeddingClassifier) ClassifyPrimary(ctx context.Context, summary string, language string) *models.ClassificationResult {
	result, err := c.classifyByEmbedding(ctx, summary)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Embedding classification failed, using keyword rules")
		key, confidence := ClassifyByKeywords(summary, c.scoring)
		return &models.ClassificationResult{
			PrimaryCategory:      key,
			PrimaryCategoryLabel: c.taxonomy.LabelFor(key),
			Confidence:           confidence,
			Method:               models.MethodRuleBased,
		}
	}
	return result
}

func (c *EmbeddingClassifier) classifyByEmbedding(ctx context.Context, summary string) (*models.ClassificationResult, error) {
	if err := c.ensureCategoryEmbeddings(ctx); err != nil {
		return nil, err
	}

	// Embedding models bound their input; overly long summaries are cut
	// silently instead of failing the request.
	if utf8.RuneCountInString(summary) > c.maxChars {
		summary = string([]rune(summary)[:c.maxChars])
	}

	queryVector, err := c.llmService.Embed(ctx, summary)
	if err != nil {
		return nil, err
	}

	type scored struct {
		key        string
		similarity float64
	}
	scores := make([]scored, 0, len(c.taxonomy.Primary))
	for _, cat := range c.taxonomy.Primary {
		vector, ok := c.cache.Get(cat.Key)
		if !ok {
			continue
		}
		scores = append(scores, scored{key: cat.Key, similarity: cosineSimilarity(queryVector, vector)})
	}
	if len(scores) == 0 {
		return nil, errNoCategoryEmbeddings
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].similarity > scores[j].similarity
	})

	best := scores[0]
	rawConfidence := best.similarity

	// A strong top score, or a runner-up that is also close, means the text
	// genuinely resembles the taxonomy; reward that before capping.
	boosted := rawConfidence > c.scoring.BoostTriggerTop ||
		(len(scores) > 1 && scores[1].similarity > c.scoring.BoostTriggerSecond)

	var confidence float64
	if boosted {
		confidence = math.Min(rawConfidence*c.scoring.BoostMultiplier, c.scoring.ConfidenceCap)
	} else {
		confidence = math.Max(rawConfidence, c.scoring.ConfidenceFloor)
	}

	c.logger.Debug().
		Str("category", best.key).
		Float64("similarity", rawConfidence).
		Float64("confidence", confidence).
		Msg("Embedding classification completed")

	return &models.ClassificationResult{
		PrimaryCategory:      best.key,
		PrimaryCategoryLabel: c.taxonomy.LabelFor(best.key),
		Confidence:           confidence,
		Method:               models.MethodEmbedding,
	}, nil
}

// ensureCategoryEmbeddings embeds every category description once and caches
// the vectors for the process lifetime.
func (c *EmbeddingClassifier) ensureCategoryEmbeddings(ctx context.Context) error {
	missing := false
	for _, cat := range c.taxonomy.Primary {
		if _, ok := c.cache.Get(cat.Key); !ok {
			missing = true
			break
		}
	}
	if !missing {
		return nil
	}

	c.populateMu.Lock()
	defer c.populateMu.Unlock()

	for _, cat := range c.taxonomy.Primary {
		if _, ok := c.cache.Get(cat.Key); ok {
			continue
		}
		vector, err := c.llmService.Embed(ctx, cat.Description)
		if err != nil {
			return err
		}
		c.cache.Put(cat.Key, vector)
	}

	c.logger.Debug().Int("categories", len(c.taxonomy.Primary)).Msg("Category embeddings cached")
	return nil
}

var errNoCategoryEmbeddings = errors.New("no category embeddings available")

// cosineSimilarity computes the cosine of the angle between two vectors with
// an epsilon guard against zero-length vectors.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + 1e-9)
}
