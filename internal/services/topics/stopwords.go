package topics

// russianStopWords are excluded from TF-IDF keyword extraction. The list
// covers function words plus a handful of low-signal adjectives that
// otherwise dominate article text.
var russianStopWords = map[string]struct{}{
	"а": {}, "без": {}, "более": {}, "быть": {}, "в": {}, "вам": {}, "вас": {}, "весь": {},
	"во": {}, "вот": {}, "все": {}, "всего": {}, "всех": {}, "вы": {}, "где": {}, "да": {},
	"даже": {}, "для": {}, "до": {}, "его": {}, "ее": {}, "если": {}, "есть": {}, "еще": {},
	"же": {}, "за": {}, "здесь": {}, "и": {}, "из": {}, "или": {}, "им": {}, "их": {},
	"к": {}, "как": {}, "ко": {}, "когда": {}, "кто": {}, "ли": {}, "либо": {}, "мне": {},
	"может": {}, "мы": {}, "на": {}, "над": {}, "надо": {}, "наш": {}, "не": {}, "него": {},
	"нее": {}, "нет": {}, "ни": {}, "них": {}, "но": {}, "ну": {}, "о": {}, "об": {},
	"один": {}, "он": {}, "она": {}, "они": {}, "оно": {}, "от": {}, "по": {}, "под": {},
	"при": {}, "с": {}, "со": {}, "та": {}, "так": {}, "такой": {}, "там": {}, "те": {},
	"тем": {}, "то": {}, "того": {}, "тоже": {}, "той": {}, "только": {}, "том": {}, "ты": {},
	"у": {}, "уже": {}, "хотя": {}, "чего": {}, "чем": {}, "что": {}, "чтобы": {}, "чье": {},
	"эта": {}, "эти": {}, "это": {}, "я": {}, "будет": {}, "была": {}, "были": {}, "был": {},
	"можно": {}, "нужно": {}, "очень": {}, "через": {}, "между": {}, "после": {}, "лучше": {},
	"самый": {}, "другой": {}, "новый": {}, "большой": {}, "первый": {}, "последний": {},
	"хороший": {}, "плохой": {},
}

// englishStopWords cover the most common English function words so
// mixed-language articles don't surface them as topic keywords.
var englishStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {}, "you": {}, "all": {},
	"any": {}, "can": {}, "had": {}, "her": {}, "was": {}, "one": {}, "our": {}, "out": {},
	"has": {}, "have": {}, "this": {}, "that": {}, "with": {}, "from": {}, "they": {},
	"will": {}, "would": {}, "there": {}, "their": {}, "what": {}, "about": {}, "which": {},
	"when": {}, "more": {}, "some": {}, "them": {}, "then": {}, "than": {}, "into": {},
	"only": {}, "also": {}, "its": {}, "it": {}, "is": {}, "in": {}, "on": {}, "of": {},
	"to": {}, "an": {}, "as": {}, "at": {}, "by": {}, "be": {}, "or": {}, "we": {},
	"been": {}, "were": {}, "your": {}, "how": {}, "who": {}, "other": {}, "these": {},
	"those": {}, "very": {}, "just": {}, "most": {}, "such": {}, "over": {}, "after": {},
	"before": {}, "between": {}, "each": {},
}

// isStopWord reports whether a lowercase token belongs to either stop list.
func isStopWord(token string) bool {
	if _, ok := russianStopWords[token]; ok {
		return true
	}
	_, ok := englishStopWords[token]
	return ok
}
