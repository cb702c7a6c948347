package interfaces

import (
	"context"

	"github.com/ternarybob/ordino/internal/models"
)

// EmbeddingCache stores category-description embedding vectors keyed by
// category key. It is populated lazily on first classification and lives for
// the process lifetime; implementations must be safe for concurrent readers.
// Injecting the cache keeps the embedding classifier testable.
type EmbeddingCache interface {
	// Get returns the cached vector for a category key, if present.
	Get(key string) ([]float32, bool)

	// Put stores a vector for a category key. Duplicate concurrent puts for
	// the same key are allowed; the value is idempotent.
	Put(key string, vector []float32)
}

// PrimaryClassifier assigns a primary taxonomy category to a document
// summary. Implementations must degrade internally - a classifier never
// returns an error for service unavailability, it falls back.
type PrimaryClassifier interface {
	ClassifyPrimary(ctx context.Context, summary string, language string) *models.ClassificationResult
}

// SubcategoryExtractor resolves subcategories and keywords for a primary
// category, deterministic trigger rules first, external model second.
type SubcategoryExtractor interface {
	ExtractSubcategories(ctx context.Context, primaryKey, summary string, maxItems int) []string
	ExtractKeywords(ctx context.Context, summary string, maxKeywords int) []string
}

// TopicClusterer derives topic labels and representative keywords from
// term-frequency statistics.
type TopicClusterer interface {
	ClusterDocument(doc *models.Document) *models.TopicResult
	ClusterDocuments(docs []*models.Document) []*models.TopicResult
}

// LabelClassifier ranks a fixed candidate label vocabulary against a
// document, via a zero-shot model when available or weighted keyword rules
// otherwise. MapToPrimary translates a candidate label into the primary
// taxonomy key space for ensemble voting.
type LabelClassifier interface {
	ClassifyLabels(ctx context.Context, doc *models.Document) *models.LabelClassificationResult
	MapToPrimary(label string) string
}

// Summarizer produces a short summary of an article for downstream
// classification. Implementations fall back to truncation when no model is
// available.
type Summarizer interface {
	Summarize(ctx context.Context, title, text string) string
}

// CategorizerService is the public entry point of the categorization engine.
// Both operations fail only on input errors; sub-classifier failures degrade
// to fallback results inside the service.
type CategorizerService interface {
	Categorize(ctx context.Context, input models.ArticleInput) (*models.CombinedCategorization, error)
	CategorizeBatch(ctx context.Context, inputs []models.ArticleInput) ([]*models.CombinedCategorization, error)
}

// ZeroShotClient calls a hosted zero-shot classification model.
type ZeroShotClient interface {
	// Classify scores every candidate label against the text (multi-label)
	// and returns label/score pairs ranked by descending score.
	Classify(ctx context.Context, text string, labels []string) ([]models.LabelScore, error)

	// Available reports whether the client is configured to make calls.
	Available() bool
}
