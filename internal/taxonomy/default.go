package taxonomy

// Default returns the built-in minimal taxonomy used when no taxonomy
// document is available. Four categories keep the engine functional without
// any configuration.
func Default() *Taxonomy {
	return &Taxonomy{
		Primary: []CategoryDefinition{
			{Key: "AI", Label: "Искусственный интеллект", Description: "ML, нейросети, LLM"},
			{Key: "Programming", Label: "Программирование", Description: "Языки, фреймворки, алгоритмы"},
			{Key: "Business", Label: "Бизнес", Description: "Бизнес-процессы, менеджмент"},
			{Key: OtherKey, Label: "Другое", Description: "Прочие темы"},
		},
		Subcategories: map[string][]string{
			"AI":          {"LLM", "NLP", "Computer Vision"},
			"Programming": {"Python", "JavaScript", "Testing"},
			"Business":    {"Management", "Strategy"},
			OtherKey:      {"General"},
		},
	}
}
