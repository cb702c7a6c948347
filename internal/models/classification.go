package models

// Method identifies which strategy produced a ClassificationResult.
type Method string

const (
	MethodEmbedding Method = "embedding"
	MethodRuleBased Method = "rule-based"
	MethodEnsemble  Method = "ensemble"
)

// LabelMethod identifies which path produced a LabelClassificationResult.
type LabelMethod string

const (
	LabelMethodZeroShot  LabelMethod = "zero-shot"
	LabelMethodRuleBased LabelMethod = "rule-based"
	LabelMethodTooShort  LabelMethod = "text-too-short"
)

// ClassificationResult is one classifier's answer for the primary taxonomy.
// Subcategories are always a subset of the taxonomy's subcategory list for
// PrimaryCategory; Keywords carry at most 8 entries.
type ClassificationResult struct {
	PrimaryCategory      string   `json:"primary_category"`
	PrimaryCategoryLabel string   `json:"primary_category_label"`
	Subcategories        []string `json:"subcategories"`
	Keywords             []string `json:"keywords"`
	Confidence           float64  `json:"confidence"`
	Method               Method   `json:"method"`
}

// TopicResult is the topic clusterer's answer. TopicID -1 means the text was
// too short or clustering failed.
type TopicResult struct {
	TopicID    int      `json:"topic_id"`
	Label      string   `json:"topic_label"`
	Keywords   []string `json:"topic_keywords"`
	Confidence float64  `json:"confidence"`
	Method     string   `json:"method"`
}

// LabelScore is one candidate label with its confidence.
type LabelScore struct {
	Label      string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// LabelClassificationResult is the zero-shot / rule-based label classifier's
// answer over the fixed candidate vocabulary.
type LabelClassificationResult struct {
	PrimaryLabel    string       `json:"primary_category"`
	RankedLabels    []LabelScore `json:"categories"`
	Confidence      float64      `json:"confidence"`
	Method          LabelMethod  `json:"method"`
	MatchedKeywords []string     `json:"matched_keywords,omitempty"`
}

// EnsembleResult is the confidence-weighted vote across every available
// sub-result. Categories holds up to 3 surviving category keys ranked by
// accumulated vote, the first of which is PrimaryCategory.
type EnsembleResult struct {
	PrimaryCategory string   `json:"primary_category"`
	Categories      []string `json:"categories"`
	Confidence      float64  `json:"confidence"`
	Method          Method   `json:"method"`
}

// CombinedCategorization is the aggregate output record. The flattened
// primary_category/subcategories/keywords/confidence fields duplicate
// AICategorization for consumers of the original wire format.
type CombinedCategorization struct {
	ID      string  `json:"id"`
	Title   *string `json:"title"`
	Summary string  `json:"summary"`

	AICategorization   ClassificationResult       `json:"ai_categorization"`
	TopicClustering    *TopicResult               `json:"topic_clustering"`
	BartCategorization *LabelClassificationResult `json:"bart_categorization"`
	Ensemble           EnsembleResult             `json:"final_categorization"`

	// Legacy flattened duplicate of AICategorization.
	PrimaryCategory      string   `json:"primary_category"`
	PrimaryCategoryLabel string   `json:"primary_category_label"`
	Subcategories        []string `json:"subcategories"`
	Keywords             []string `json:"keywords"`
	Confidence           float64  `json:"confidence"`
}
