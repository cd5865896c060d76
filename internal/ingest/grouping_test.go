package ingest

import (
	"strings"
	"testing"

	"github.com/corvolab/speech-analyzer/pkg/models"
)

func TestGroupBySpeaker(t *testing.T) {
	records := []models.SpeechRecord{
		{Speaker: "alice", Text: "first speech"},
		{Speaker: "bob", Text: "only speech"},
		{Speaker: "alice", Text: "second speech"},
	}

	groups := GroupBySpeaker(records)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if !strings.Contains(groups["alice"], "first speech") || !strings.Contains(groups["alice"], "second speech") {
		t.Errorf("alice's texts not concatenated: %q", groups["alice"])
	}
	if groups["bob"] != "only speech" {
		t.Errorf("unexpected bob group: %q", groups["bob"])
	}
}

func TestGroupBySpeaker_SkipsBlankRecords(t *testing.T) {
	records := []models.SpeechRecord{
		{Speaker: "", Text: "orphan text"},
		{Speaker: "alice", Text: "   "},
		{Speaker: "alice", Text: "kept"},
	}

	groups := GroupBySpeaker(records)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups["alice"] != "kept" {
		t.Errorf("expected only the non-blank record, got %q", groups["alice"])
	}
}

func TestGroupBySpeaker_Empty(t *testing.T) {
	groups := GroupBySpeaker(nil)
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %v", groups)
	}
}
