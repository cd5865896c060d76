package textstat

// stopwords contains common English function words excluded from term
// matrices when stopword removal is enabled.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"was": true, "were": true, "do": true, "does": true, "did": true,
	"have": true, "has": true, "had": true, "be": true, "been": true,
	"being": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "can": true, "shall": true, "must": true,
	"not": true, "no": true, "and": true, "or": true, "but": true,
	"if": true, "then": true, "than": true, "so": true, "as": true,
	"at": true, "by": true, "for": true, "from": true, "in": true,
	"into": true, "of": true, "on": true, "to": true, "with": true,
	"about": true, "over": true, "under": true, "up": true, "out": true,
	"it": true, "its": true, "this": true, "these": true, "those": true,
	"that": true, "what": true, "which": true, "who": true, "whom": true,
	"how": true, "when": true, "where": true, "why": true, "there": true,
	"here": true, "you": true, "your": true, "yours": true, "me": true,
	"i": true, "my": true, "mine": true, "we": true, "our": true,
	"ours": true, "they": true, "their": true, "theirs": true, "he": true,
	"she": true, "her": true, "his": true, "him": true, "us": true,
	"them": true, "am": true, "also": true, "very": true, "just": true,
}

// IsStopword reports whether a lowercased token is an English stopword.
func IsStopword(token string) bool {
	return stopwords[token]
}
