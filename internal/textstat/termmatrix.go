package textstat

import (
	"errors"
	"sort"
)

// ErrNoDocuments is returned when a term matrix is requested for an
// empty document collection.
var ErrNoDocuments = errors.New("textstat: no documents")

// TermMatrix maps each document group to term counts over a shared,
// sorted vocabulary. Rows are dense and aligned to Terms so metric
// code can work on plain float64 slices.
type TermMatrix struct {
	Groups []string
	Terms  []string
	rows   map[string][]float64
}

// BuildTermMatrix tokenizes each group's text and assembles the count
// matrix. Group and term order is sorted for deterministic output.
func BuildTermMatrix(groups map[string]string, cfg TokenizerConfig) (*TermMatrix, error) {
	if len(groups) == 0 {
		return nil, ErrNoDocuments
	}

	counts := make(map[string]map[string]float64, len(groups))
	vocab := make(map[string]bool)

	for group, text := range groups {
		tokens, err := Tokenize(text, cfg)
		if err != nil {
			return nil, err
		}
		row := make(map[string]float64, len(tokens))
		for _, t := range tokens {
			row[t]++
			vocab[t] = true
		}
		counts[group] = row
	}

	tm := &TermMatrix{
		Groups: make([]string, 0, len(groups)),
		Terms:  make([]string, 0, len(vocab)),
		rows:   make(map[string][]float64, len(groups)),
	}
	for group := range groups {
		tm.Groups = append(tm.Groups, group)
	}
	sort.Strings(tm.Groups)
	for term := range vocab {
		tm.Terms = append(tm.Terms, term)
	}
	sort.Strings(tm.Terms)

	for group, row := range counts {
		dense := make([]float64, len(tm.Terms))
		for i, term := range tm.Terms {
			dense[i] = row[term]
		}
		tm.rows[group] = dense
	}

	return tm, nil
}

// Row returns the count vector for a group, aligned to Terms.
func (tm *TermMatrix) Row(group string) ([]float64, bool) {
	row, ok := tm.rows[group]
	return row, ok
}

// HasGroup reports whether the matrix contains a row for group.
func (tm *TermMatrix) HasGroup(group string) bool {
	_, ok := tm.rows[group]
	return ok
}

// NumGroups returns the number of document groups in the matrix.
func (tm *TermMatrix) NumGroups() int {
	return len(tm.rows)
}
