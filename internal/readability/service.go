package readability

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/corvolab/speech-analyzer/internal/textstat"
	"github.com/corvolab/speech-analyzer/pkg/models"
)

// ErrEmptyInput is returned when there are no records or no methods
// to summarize.
var ErrEmptyInput = errors.New("readability: empty input")

// z95 is the normal quantile for a two-sided 95% confidence interval.
const z95 = 1.959963984540054

// Service computes per-speaker summary statistics over per-document
// readability scores.
type Service struct{}

// NewService creates a readability summarization service.
func NewService() *Service {
	return &Service{}
}

// Summarize scores every record under every method and reduces the
// scores to one summary row per (speaker, method): mean, sample
// standard deviation, sample size, standard error, and a 95% normal
// confidence interval. Records whose text is too short to score are
// left out of that speaker's sample. Rows are method-major with
// speakers sorted within each method.
func (s *Service) Summarize(records []models.SpeechRecord, methods []string) ([]models.ReadabilitySummary, error) {
	if len(records) == 0 || len(methods) == 0 {
		return nil, ErrEmptyInput
	}
	for _, method := range methods {
		if !textstat.KnownReadabilityMethod(method) {
			return nil, fmt.Errorf("%w: %q", textstat.ErrUnknownMethod, method)
		}
	}

	var summaries []models.ReadabilitySummary
	for _, method := range methods {
		bySpeaker := make(map[string][]float64)
		for _, rec := range records {
			score, err := textstat.ScoreText(rec.Text, method)
			if errors.Is(err, textstat.ErrEmptyText) {
				continue
			}
			if err != nil {
				return nil, err
			}
			bySpeaker[rec.Speaker] = append(bySpeaker[rec.Speaker], score)
		}

		speakers := make([]string, 0, len(bySpeaker))
		for speaker := range bySpeaker {
			speakers = append(speakers, speaker)
		}
		sort.Strings(speakers)

		for _, speaker := range speakers {
			summaries = append(summaries, summarizeScores(speaker, method, bySpeaker[speaker]))
		}
	}

	return summaries, nil
}

func summarizeScores(speaker, method string, scores []float64) models.ReadabilitySummary {
	n := len(scores)
	mean := stat.Mean(scores, nil)

	sd := 0.0
	if n > 1 {
		sd = stat.StdDev(scores, nil)
	}

	stderr := 0.0
	if n > 0 {
		stderr = sd / math.Sqrt(float64(n))
	}

	return models.ReadabilitySummary{
		Speaker:    speaker,
		Method:     method,
		Mean:       mean,
		StdDev:     sd,
		SampleSize: n,
		StdErr:     stderr,
		CILower:    mean - z95*stderr,
		CIUpper:    mean + z95*stderr,
	}
}
