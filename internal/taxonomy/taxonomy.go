package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CategoryDefinition is one primary category of the taxonomy. Key is the
// stable identifier used across results; Description feeds the embedding
// similarity classifier.
type CategoryDefinition struct {
	Key         string `yaml:"key"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

// Taxonomy is the loaded category configuration. It is immutable after
// loading - classifiers hold a shared pointer and never mutate it.
type Taxonomy struct {
	Primary       []CategoryDefinition `yaml:"primary"`
	Subcategories map[string][]string  `yaml:"subcategories"`
}

// OtherKey is the designated catch-all primary category.
const OtherKey = "Other"

// GeneralLabel is the sentinel category used when no ensemble vote survives.
const GeneralLabel = "General"

// Load reads a taxonomy document from path. A missing or unparseable file
// yields the built-in default taxonomy rather than an error so the engine
// can always start.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("taxonomy file unavailable, using default: %w", err)
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return Default(), fmt.Errorf("taxonomy file unparseable, using default: %w", err)
	}
	if len(tax.Primary) == 0 {
		return Default(), fmt.Errorf("taxonomy file %s defines no primary categories, using default", path)
	}
	if tax.Subcategories == nil {
		tax.Subcategories = map[string][]string{}
	}
	return &tax, nil
}

// LabelFor returns the display label for a primary key, or the key itself
// when the key is not part of the taxonomy.
func (t *Taxonomy) LabelFor(key string) string {
	for _, cat := range t.Primary {
		if cat.Key == key {
			return cat.Label
		}
	}
	return key
}

// HasCategory reports whether key is a configured primary category.
func (t *Taxonomy) HasCategory(key string) bool {
	for _, cat := range t.Primary {
		if cat.Key == key {
			return true
		}
	}
	return false
}

// SubcategoriesFor returns the ordered allowed subcategories for a primary
// key. The returned slice is shared and must not be modified.
func (t *Taxonomy) SubcategoriesFor(key string) []string {
	return t.Subcategories[key]
}

// FilterSubcategories drops every value not in the allowed subcategory list
// for the given primary key, preserving order and truncating to max.
func (t *Taxonomy) FilterSubcategories(key string, values []string, max int) []string {
	allowed := t.Subcategories[key]
	if len(allowed) == 0 || len(values) == 0 {
		return nil
	}
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, s := range allowed {
		allowedSet[s] = struct{}{}
	}
	var out []string
	for _, v := range values {
		if _, ok := allowedSet[v]; ok {
			out = append(out, v)
			if max > 0 && len(out) >= max {
				break
			}
		}
	}
	return out
}

// Descriptions returns the primary category descriptions in taxonomy order,
// the texts the embedding classifier compares against.
func (t *Taxonomy) Descriptions() []string {
	out := make([]string, len(t.Primary))
	for i, cat := range t.Primary {
		out[i] = cat.Description
	}
	return out
}
