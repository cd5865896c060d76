package report

import (
	"strings"
	"testing"

	"github.com/corvolab/speech-analyzer/pkg/models"
)

func testRecords() []models.ComparisonRecord {
	return []models.ComparisonRecord{
		{Group: "bob", Score: 0.8, Method: "cosine"},
		{Group: "carol", Score: 0.2, Method: "cosine"},
		{Group: "bob", Score: 0.6, Method: "correlation"},
		{Group: "carol", Score: 0.4, Method: "correlation"},
	}
}

func TestGroupMeans(t *testing.T) {
	means := GroupMeans(testRecords())

	if len(means) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(means))
	}
	if means[0].Group != "bob" || means[1].Group != "carol" {
		t.Errorf("unexpected order: %v", means)
	}
	if means[0].Mean != 0.7 {
		t.Errorf("expected bob mean 0.7, got %f", means[0].Mean)
	}
	if means[1].Mean != 0.3 {
		t.Errorf("expected carol mean 0.3, got %f", means[1].Mean)
	}
}

func TestSortGroupsByMeanScore(t *testing.T) {
	groups := SortGroupsByMeanScore(testRecords())

	want := []string{"bob", "carol"}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], groups[i])
		}
	}
}

func TestComparisonCSV(t *testing.T) {
	out, err := ComparisonCSV(testRecords())
	if err != nil {
		t.Fatalf("ComparisonCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 rows, got %d lines", len(lines))
	}
	if lines[0] != "group,score,method" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "bob,0.8") {
		t.Errorf("unexpected first row: %q", lines[1])
	}
}

func TestSummaryCSV(t *testing.T) {
	summaries := []models.ReadabilitySummary{
		{Speaker: "alice", Method: "gunning_fog", Mean: 8.1, StdDev: 0.5, SampleSize: 3, StdErr: 0.29, CILower: 7.5, CIUpper: 8.7},
	}

	out, err := SummaryCSV(summaries)
	if err != nil {
		t.Fatalf("SummaryCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "alice,gunning_fog,8.1") {
		t.Errorf("unexpected row: %q", lines[1])
	}
}
