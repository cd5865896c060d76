package ingest

import (
	"strings"

	"github.com/corvolab/speech-analyzer/pkg/models"
)

// GroupBySpeaker concatenates every speaker's texts into one document
// per speaker. The result is the immutable DocumentGroup input to the
// comparison pipeline; records with blank speaker or text are ignored.
func GroupBySpeaker(records []models.SpeechRecord) map[string]string {
	texts := make(map[string][]string)
	for _, rec := range records {
		if strings.TrimSpace(rec.Speaker) == "" || strings.TrimSpace(rec.Text) == "" {
			continue
		}
		texts[rec.Speaker] = append(texts[rec.Speaker], rec.Text)
	}

	groups := make(map[string]string, len(texts))
	for speaker, parts := range texts {
		groups[speaker] = strings.Join(parts, "\n")
	}
	return groups
}
