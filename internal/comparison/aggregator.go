package comparison

import (
	"errors"
	"fmt"

	"github.com/corvolab/speech-analyzer/internal/textstat"
	"github.com/corvolab/speech-analyzer/pkg/models"
)

var (
	// ErrEmptyInput is returned when the document groups or the
	// method list is empty.
	ErrEmptyInput = errors.New("comparison: empty input")

	// ErrMissingReferenceGroup is returned when the reference group
	// is not present in the computed comparison matrix. Resolving the
	// reference by key rather than row position is what makes this
	// detectable at all.
	ErrMissingReferenceGroup = errors.New("comparison: reference group not found")

	// ErrUnknownMethod is returned when the comparison provider does
	// not recognize a method name.
	ErrUnknownMethod = textstat.ErrUnknownMethod
)

// Aggregator turns grouped documents into a long-format comparison
// table: one full pairwise matrix per method, reduced to the scores
// between the reference group and every other group.
type Aggregator struct {
	tokenizer textstat.TokenizerConfig
}

// NewAggregator creates an aggregator using the given tokenizer
// configuration for term-matrix construction.
func NewAggregator(tokenizer textstat.TokenizerConfig) *Aggregator {
	return &Aggregator{tokenizer: tokenizer}
}

// Aggregate compares every group against referenceGroup under each
// method in order and returns one ComparisonRecord per (group, method)
// pair, method-major. The reference's self-comparison is never
// emitted, so the result holds exactly (groups-1) x len(methods) rows.
func (a *Aggregator) Aggregate(groups map[string]string, referenceGroup string, methods []string) ([]models.ComparisonRecord, error) {
	if len(groups) == 0 || len(methods) == 0 {
		return nil, ErrEmptyInput
	}

	tm, err := textstat.BuildTermMatrix(groups, a.tokenizer)
	if err != nil {
		if errors.Is(err, textstat.ErrNoDocuments) {
			return nil, ErrEmptyInput
		}
		return nil, err
	}

	return a.AggregateMatrix(tm, referenceGroup, methods)
}

// AggregateMatrix is Aggregate over a prebuilt term matrix. Useful
// when several method sets or reference groups are run against the
// same corpus.
func (a *Aggregator) AggregateMatrix(tm *textstat.TermMatrix, referenceGroup string, methods []string) ([]models.ComparisonRecord, error) {
	if tm == nil || tm.NumGroups() == 0 || len(methods) == 0 {
		return nil, ErrEmptyInput
	}

	records := make([]models.ComparisonRecord, 0, (tm.NumGroups()-1)*len(methods))

	for _, method := range methods {
		matrix, err := textstat.Compare(tm, method)
		if err != nil {
			return nil, err
		}

		// Resolve the reference row by key, never by position.
		if !matrix.HasGroup(referenceGroup) {
			return nil, fmt.Errorf("%w: %q", ErrMissingReferenceGroup, referenceGroup)
		}

		for _, group := range matrix.Groups {
			if group == referenceGroup {
				continue
			}
			score, _ := matrix.Score(referenceGroup, group)
			records = append(records, models.ComparisonRecord{
				Group:  group,
				Score:  score,
				Method: method,
			})
		}
	}

	return records, nil
}
