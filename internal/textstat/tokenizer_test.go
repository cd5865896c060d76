package textstat

import (
	"testing"
)

func TestTokenize_RemovesStopwordsAndPunct(t *testing.T) {
	tokens, err := Tokenize("The economy is growing, and the budget will balance.", DefaultTokenizerConfig())
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	for _, tok := range tokens {
		if IsStopword(tok) {
			t.Errorf("stopword %q survived tokenization", tok)
		}
	}

	want := map[string]bool{"economy": true, "growing": true, "budget": true, "balance": true}
	got := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		got[tok] = true
	}
	for term := range want {
		if !got[term] {
			t.Errorf("expected term %q in tokens %v", term, tokens)
		}
	}
}

func TestTokenize_KeepsStopwordsWhenDisabled(t *testing.T) {
	cfg := TokenizerConfig{RemovePunct: true, MinTokenLen: 1, Lowercase: true}
	tokens, err := Tokenize("the budget", cfg)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	found := false
	for _, tok := range tokens {
		if tok == "the" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected stopword kept, got %v", tokens)
	}
}

func TestTokenize_EmptyText(t *testing.T) {
	tokens, err := Tokenize("   ", DefaultTokenizerConfig())
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", tokens)
	}
}

func TestSentences(t *testing.T) {
	sents, err := Sentences("Taxes will fall. Spending will rise. Nothing else changes.")
	if err != nil {
		t.Fatalf("Sentences: %v", err)
	}
	if len(sents) != 3 {
		t.Errorf("expected 3 sentences, got %d: %v", len(sents), sents)
	}
}

func TestIsStopword(t *testing.T) {
	if !IsStopword("the") {
		t.Error("expected 'the' to be a stopword")
	}
	if IsStopword("economy") {
		t.Error("did not expect 'economy' to be a stopword")
	}
}
