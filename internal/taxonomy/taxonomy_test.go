package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefault(t *testing.T) {
	tax, err := Load("does-not-exist.yaml")
	if err == nil {
		t.Error("expected an error for a missing taxonomy file")
	}
	if tax == nil {
		t.Fatal("expected the default taxonomy, got nil")
	}
	if len(tax.Primary) != 4 {
		t.Errorf("default taxonomy should have 4 primary categories, got %d", len(tax.Primary))
	}
	if !tax.HasCategory("Other") {
		t.Error("default taxonomy must contain the Other category")
	}
}

func TestLoad_ValidFile(t *testing.T) {
	content := `primary:
  - key: AI
    label: "Искусственный интеллект"
    description: "ML, нейросети, LLM"
  - key: Other
    label: "Другое"
    description: "Прочие темы"
subcategories:
  AI: [LLM, NLP]
  Other: [General]
`
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tax, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tax.Primary) != 2 {
		t.Errorf("expected 2 primary categories, got %d", len(tax.Primary))
	}
	if got := tax.LabelFor("AI"); got != "Искусственный интеллект" {
		t.Errorf("LabelFor(AI) = %q", got)
	}
	if got := tax.SubcategoriesFor("AI"); len(got) != 2 || got[0] != "LLM" {
		t.Errorf("SubcategoriesFor(AI) = %v", got)
	}
}

func TestLoad_UnparseableFileUsesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("primary: [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	tax, err := Load(path)
	if err == nil {
		t.Error("expected an error for unparseable yaml")
	}
	if len(tax.Primary) != 4 {
		t.Errorf("expected default taxonomy, got %d categories", len(tax.Primary))
	}
}

func TestLabelFor_UnknownKeyReturnsKey(t *testing.T) {
	tax := Default()
	if got := tax.LabelFor("Nonexistent"); got != "Nonexistent" {
		t.Errorf("LabelFor(Nonexistent) = %q, want the key itself", got)
	}
}

func TestFilterSubcategories(t *testing.T) {
	tax := &Taxonomy{
		Primary: []CategoryDefinition{{Key: "Business", Label: "Бизнес"}},
		Subcategories: map[string][]string{
			"Business": {"Taxes", "Legal", "Investment"},
		},
	}

	tests := []struct {
		name   string
		values []string
		max    int
		want   []string
	}{
		{
			name:   "keeps allowed values in order",
			values: []string{"Legal", "Taxes"},
			max:    3,
			want:   []string{"Legal", "Taxes"},
		},
		{
			name:   "drops unknown values",
			values: []string{"Crypto", "Taxes"},
			max:    3,
			want:   []string{"Taxes"},
		},
		{
			name:   "truncates to max",
			values: []string{"Taxes", "Legal", "Investment"},
			max:    2,
			want:   []string{"Taxes", "Legal"},
		},
		{
			name:   "nothing allowed",
			values: []string{"Crypto"},
			max:    3,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tax.FilterSubcategories("Business", tt.values, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestDescriptions_MatchPrimaryOrder(t *testing.T) {
	tax := Default()
	descriptions := tax.Descriptions()
	if len(descriptions) != len(tax.Primary) {
		t.Fatalf("got %d descriptions for %d categories", len(descriptions), len(tax.Primary))
	}
	for i, cat := range tax.Primary {
		if descriptions[i] != cat.Description {
			t.Errorf("description %d does not match category %s", i, cat.Key)
		}
	}
}
