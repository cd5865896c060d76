package comparison

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/corvolab/speech-analyzer/internal/textstat"
	"github.com/corvolab/speech-analyzer/pkg/models"
)

// MissingWeekPolicy decides what happens to a week that has no
// document from the reference group. There is no default: the zero
// value is invalid and callers must choose explicitly.
type MissingWeekPolicy int

const (
	policyUnset MissingWeekPolicy = iota

	// SkipWeek drops weeks without a reference document entirely.
	SkipWeek

	// EmitNull keeps such weeks, emitting one row per present group
	// with a null score.
	EmitNull
)

// ErrInvalidPolicy is returned when AggregateWeekly is called without
// an explicit missing-week policy.
var ErrInvalidPolicy = errors.New("comparison: missing-week policy not set")

// AggregateWeekly buckets speech records by ISO week and compares each
// week's groups against the reference group under a single method.
// Weeks are emitted in ascending order; within a week, group order
// follows the comparison matrix.
func (a *Aggregator) AggregateWeekly(records []models.SpeechRecord, referenceGroup, method string, policy MissingWeekPolicy) ([]models.WeeklyScore, error) {
	if policy != SkipWeek && policy != EmitNull {
		return nil, ErrInvalidPolicy
	}
	if len(records) == 0 || method == "" {
		return nil, ErrEmptyInput
	}
	if !textstat.KnownMethod(method) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	// Bucket concatenated text per (week, speaker).
	weeks := make(map[int]map[string][]string)
	for _, rec := range records {
		week := rec.Week
		if week == 0 {
			_, week = rec.SpokenAt.ISOWeek()
		}
		if weeks[week] == nil {
			weeks[week] = make(map[string][]string)
		}
		weeks[week][rec.Speaker] = append(weeks[week][rec.Speaker], rec.Text)
	}

	weekNums := make([]int, 0, len(weeks))
	for week := range weeks {
		weekNums = append(weekNums, week)
	}
	sort.Ints(weekNums)

	var scores []models.WeeklyScore
	for _, week := range weekNums {
		speakers := weeks[week]

		groups := make(map[string]string, len(speakers))
		for speaker, texts := range speakers {
			groups[speaker] = strings.Join(texts, "\n")
		}

		if _, ok := groups[referenceGroup]; !ok {
			if policy == SkipWeek {
				continue
			}
			names := make([]string, 0, len(groups))
			for name := range groups {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				scores = append(scores, models.WeeklyScore{
					Week:   week,
					Group:  name,
					Score:  nil,
					Method: method,
				})
			}
			continue
		}

		if len(groups) == 1 {
			// Only the reference spoke this week; nothing to compare.
			continue
		}

		recs, err := a.Aggregate(groups, referenceGroup, []string{method})
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			score := rec.Score
			scores = append(scores, models.WeeklyScore{
				Week:   week,
				Group:  rec.Group,
				Score:  &score,
				Method: rec.Method,
			})
		}
	}

	return scores, nil
}
