package topics

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[a-zа-яё]{3,}`)

// vectorizer turns documents into L2-normalized TF-IDF vectors over word
// n-grams. Stop words are removed at the token level before n-grams are
// formed, so a stop word never appears inside a phrase either.
type vectorizer struct {
	maxFeatures int
	ngramMin    int
	ngramMax    int
	useStop     bool
	maxDF       float64 // fraction of documents; terms above it are dropped (0 disables)
}

// tokenize lowercases the text and extracts letter-only tokens of three or
// more characters, dropping stop words when configured.
func (v *vectorizer) tokenize(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if !v.useStop {
		return tokens
	}
	out := tokens[:0]
	for _, tok := range tokens {
		if !isStopWord(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// terms expands a token stream into the configured n-gram range.
func (v *vectorizer) terms(tokens []string) []string {
	var out []string
	for n := v.ngramMin; n <= v.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// fitTransform builds the vocabulary from the documents and returns their
// TF-IDF matrix along with the vocabulary in index order. IDF is smoothed
// (ln((1+n)/(1+df))+1) and every row is L2-normalized.
func (v *vectorizer) fitTransform(documents []string) ([][]float64, []string) {
	termCounts := make([]map[string]int, len(documents))
	totalFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for i, doc := range documents {
		counts := make(map[string]int)
		for _, term := range v.terms(v.tokenize(doc)) {
			counts[term]++
		}
		termCounts[i] = counts
		for term, count := range counts {
			totalFreq[term] += count
			docFreq[term]++
		}
	}

	// Drop overly common terms, then keep the most frequent features
	vocabulary := make([]string, 0, len(totalFreq))
	for term := range totalFreq {
		if v.maxDF > 0 && len(documents) > 1 {
			if float64(docFreq[term])/float64(len(documents)) > v.maxDF {
				continue
			}
		}
		vocabulary = append(vocabulary, term)
	}
	sort.Slice(vocabulary, func(i, j int) bool {
		if totalFreq[vocabulary[i]] != totalFreq[vocabulary[j]] {
			return totalFreq[vocabulary[i]] > totalFreq[vocabulary[j]]
		}
		return vocabulary[i] < vocabulary[j]
	})
	if v.maxFeatures > 0 && len(vocabulary) > v.maxFeatures {
		vocabulary = vocabulary[:v.maxFeatures]
	}
	sort.Strings(vocabulary)

	index := make(map[string]int, len(vocabulary))
	for i, term := range vocabulary {
		index[term] = i
	}

	n := float64(len(documents))
	idf := make([]float64, len(vocabulary))
	for i, term := range vocabulary {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	matrix := make([][]float64, len(documents))
	for i, counts := range termCounts {
		row := make([]float64, len(vocabulary))
		for term, count := range counts {
			if j, ok := index[term]; ok {
				row[j] = float64(count) * idf[j]
			}
		}
		normalizeRow(row)
		matrix[i] = row
	}

	return matrix, vocabulary
}

func normalizeRow(row []float64) {
	var norm float64
	for _, v := range row {
		norm += v * v
	}
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	for i := range row {
		row[i] /= norm
	}
}

// cosineRows computes cosine similarity between two dense vectors.
func cosineRows(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
