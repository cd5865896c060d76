package textstat

import (
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// TokenizerConfig controls how raw text is turned into terms.
type TokenizerConfig struct {
	RemoveStopwords bool
	RemovePunct     bool
	MinTokenLen     int
	Lowercase       bool
}

// DefaultTokenizerConfig returns the configuration used by the
// comparison pipeline unless the caller overrides it.
func DefaultTokenizerConfig() TokenizerConfig {
	return TokenizerConfig{
		RemoveStopwords: true,
		RemovePunct:     true,
		MinTokenLen:     2,
		Lowercase:       true,
	}
}

// Tokenize splits text into terms according to cfg. Token boundaries
// come from prose's tokenizer so contractions and hyphenation behave
// the same way here and in the readability counts.
func Tokenize(text string, cfg TokenizerConfig) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, err
	}

	var tokens []string
	for _, tok := range doc.Tokens() {
		term := tok.Text
		if cfg.Lowercase {
			term = strings.ToLower(term)
		}
		if cfg.RemovePunct {
			term = strings.TrimFunc(term, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsNumber(r)
			})
		}
		if term == "" || len(term) < cfg.MinTokenLen {
			continue
		}
		if cfg.RemoveStopwords && IsStopword(term) {
			continue
		}
		tokens = append(tokens, term)
	}

	return tokens, nil
}

// Sentences segments text into sentences using prose.
func Sentences(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, err
	}

	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		if strings.TrimSpace(s.Text) != "" {
			out = append(out, s.Text)
		}
	}
	return out, nil
}
