package comparison

import (
	"errors"
	"testing"

	"github.com/corvolab/speech-analyzer/internal/textstat"
)

var testGroups = map[string]string{
	"alice": "the budget deficit must shrink before taxes can fall",
	"bob":   "the budget surplus lets taxes fall this year",
	"carol": "rainfall along the coast broke every seasonal record",
}

func newTestAggregator() *Aggregator {
	return NewAggregator(textstat.DefaultTokenizerConfig())
}

func TestAggregate_RecordCount(t *testing.T) {
	agg := newTestAggregator()

	methods := []string{textstat.MethodCosine, textstat.MethodCorrelation}
	records, err := agg.Aggregate(testGroups, "alice", methods)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	// (N-1) x M records.
	want := (len(testGroups) - 1) * len(methods)
	if len(records) != want {
		t.Fatalf("expected %d records, got %d", want, len(records))
	}
}

func TestAggregate_ReferenceNeverEmitted(t *testing.T) {
	agg := newTestAggregator()

	records, err := agg.Aggregate(testGroups, "alice", []string{textstat.MethodCosine, textstat.MethodJaccard, textstat.MethodEuclidean})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	for _, rec := range records {
		if rec.Group == "alice" {
			t.Errorf("self-comparison leaked into results: %+v", rec)
		}
	}
}

func TestAggregate_MethodMajorOrder(t *testing.T) {
	agg := newTestAggregator()

	records, err := agg.Aggregate(testGroups, "alice", []string{textstat.MethodCosine, textstat.MethodDice})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	want := []struct {
		group  string
		method string
	}{
		{"bob", "cosine"},
		{"carol", "cosine"},
		{"bob", "dice"},
		{"carol", "dice"},
	}

	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i, w := range want {
		if records[i].Group != w.group || records[i].Method != w.method {
			t.Errorf("record %d: expected (%s, %s), got (%s, %s)", i, w.group, w.method, records[i].Group, records[i].Method)
		}
	}
}

func TestAggregate_ScoresInRange(t *testing.T) {
	agg := newTestAggregator()

	// carol shares no vocabulary with alice, which drives raw Pearson
	// negative; every similarity method must still report within [0,1].
	records, err := agg.Aggregate(testGroups, "alice", []string{textstat.MethodCosine, textstat.MethodCorrelation, textstat.MethodJaccard, textstat.MethodDice})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	for _, rec := range records {
		if rec.Score < 0 || rec.Score > 1 {
			t.Errorf("%s/%s: score %f outside [0,1]", rec.Group, rec.Method, rec.Score)
		}
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	agg := newTestAggregator()
	methods := []string{textstat.MethodCosine, textstat.MethodCorrelation}

	first, err := agg.Aggregate(testGroups, "alice", methods)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	second, err := agg.Aggregate(testGroups, "alice", methods)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("record %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestAggregate_MissingReferenceGroup(t *testing.T) {
	agg := newTestAggregator()

	_, err := agg.Aggregate(testGroups, "mallory", []string{textstat.MethodCosine})
	if !errors.Is(err, ErrMissingReferenceGroup) {
		t.Errorf("expected ErrMissingReferenceGroup, got %v", err)
	}
}

func TestAggregate_EmptyInputs(t *testing.T) {
	agg := newTestAggregator()

	if _, err := agg.Aggregate(nil, "alice", []string{textstat.MethodCosine}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty groups: expected ErrEmptyInput, got %v", err)
	}
	if _, err := agg.Aggregate(testGroups, "alice", nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("empty methods: expected ErrEmptyInput, got %v", err)
	}
}

func TestAggregate_UnknownMethod(t *testing.T) {
	agg := newTestAggregator()

	_, err := agg.Aggregate(testGroups, "alice", []string{"metaphone"})
	if !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestAggregate_SingleGroupYieldsNoRecords(t *testing.T) {
	agg := newTestAggregator()

	only := map[string]string{"alice": testGroups["alice"]}
	records, err := agg.Aggregate(only, "alice", []string{textstat.MethodCosine})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected 0 records for single-group corpus, got %d", len(records))
	}
}
