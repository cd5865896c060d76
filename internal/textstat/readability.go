package textstat

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"
)

// ErrEmptyText is returned when a readability score is requested for
// text with no words or sentences.
var ErrEmptyText = errors.New("textstat: empty text")

// Readability method names accepted by ScoreText.
const (
	MethodFleschKincaid = "flesch_kincaid"
	MethodFlesch        = "flesch"
	MethodGunningFog    = "gunning_fog"
	MethodSMOG          = "smog"
	MethodARI           = "ari"
	MethodColemanLiau   = "coleman_liau"
)

var readabilityFormulas = map[string]func(c textCounts) float64{
	MethodFleschKincaid: fleschKincaidGrade,
	MethodFlesch:        fleschReadingEase,
	MethodGunningFog:    gunningFogIndex,
	MethodSMOG:          smogIndex,
	MethodARI:           automatedReadabilityIndex,
	MethodColemanLiau:   colemanLiauIndex,
}

// KnownReadabilityMethod reports whether a readability method name is
// understood.
func KnownReadabilityMethod(method string) bool {
	_, ok := readabilityFormulas[method]
	return ok
}

// textCounts holds the raw counts every readability formula is
// computed from.
type textCounts struct {
	words        float64
	sentences    float64
	syllables    float64
	complexWords float64 // words with 3+ syllables
	characters   float64 // letters and digits only
}

// ScoreText computes one named readability score for a document.
func ScoreText(text, method string) (float64, error) {
	formula, ok := readabilityFormulas[method]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	counts, err := countText(text)
	if err != nil {
		return 0, err
	}
	if counts.words == 0 || counts.sentences == 0 {
		return 0, ErrEmptyText
	}

	return formula(counts), nil
}

func countText(text string) (textCounts, error) {
	var c textCounts

	sents, err := Sentences(text)
	if err != nil {
		return c, err
	}
	c.sentences = float64(len(sents))

	words, err := Tokenize(text, TokenizerConfig{
		RemovePunct: true,
		MinTokenLen: 1,
		Lowercase:   true,
	})
	if err != nil {
		return c, err
	}
	c.words = float64(len(words))

	for _, w := range words {
		syl := countSyllables(w)
		c.syllables += float64(syl)
		if syl >= 3 {
			c.complexWords++
		}
		for _, r := range w {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				c.characters++
			}
		}
	}

	return c, nil
}

// countSyllables estimates syllables by counting vowel runs, with the
// usual silent-e adjustment. Always at least 1 for a non-empty word.
func countSyllables(word string) int {
	word = strings.ToLower(word)
	const vowels = "aeiouy"

	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		count--
	}
	if count <= 0 {
		count = 1
	}
	return count
}

func fleschKincaidGrade(c textCounts) float64 {
	return 0.39*(c.words/c.sentences) + 11.8*(c.syllables/c.words) - 15.59
}

func fleschReadingEase(c textCounts) float64 {
	return 206.835 - 1.015*(c.words/c.sentences) - 84.6*(c.syllables/c.words)
}

func gunningFogIndex(c textCounts) float64 {
	return 0.4 * ((c.words / c.sentences) + 100*(c.complexWords/c.words))
}

func smogIndex(c textCounts) float64 {
	return 1.043*math.Sqrt(c.complexWords*(30/c.sentences)) + 3.1291
}

func automatedReadabilityIndex(c textCounts) float64 {
	return 4.71*(c.characters/c.words) + 0.5*(c.words/c.sentences) - 21.43
}

func colemanLiauIndex(c textCounts) float64 {
	l := c.characters / c.words * 100
	s := c.sentences / c.words * 100
	return 0.0588*l - 0.296*s - 15.8
}
