// Package report shapes analysis results into plot-ready tables. It is
// the last stop before an external charting or spreadsheet tool, so
// everything here is ordering and formatting, never computation of new
// scores.
package report

import (
	"encoding/csv"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/corvolab/speech-analyzer/pkg/models"
)

// GroupMean is one group's mean score across all methods it appears in.
type GroupMean struct {
	Group string  `json:"group"`
	Mean  float64 `json:"mean"`
}

// GroupMeans averages each group's scores across methods and returns
// the groups ordered by descending mean. Plotting layers use this to
// order bars consistently across metric families.
func GroupMeans(records []models.ComparisonRecord) []GroupMean {
	byGroup := make(map[string][]float64)
	for _, rec := range records {
		byGroup[rec.Group] = append(byGroup[rec.Group], rec.Score)
	}

	means := make([]GroupMean, 0, len(byGroup))
	for group, scores := range byGroup {
		means = append(means, GroupMean{Group: group, Mean: stat.Mean(scores, nil)})
	}

	sort.Slice(means, func(i, j int) bool {
		if means[i].Mean == means[j].Mean {
			return means[i].Group < means[j].Group
		}
		return means[i].Mean > means[j].Mean
	})

	return means
}

// SortGroupsByMeanScore returns group names ordered by descending mean
// score across methods.
func SortGroupsByMeanScore(records []models.ComparisonRecord) []string {
	means := GroupMeans(records)
	groups := make([]string, len(means))
	for i, m := range means {
		groups[i] = m.Group
	}
	return groups
}

// ComparisonCSV renders comparison records as a long-format CSV table
// with a header row.
func ComparisonCSV(records []models.ComparisonRecord) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"group", "score", "method"}); err != nil {
		return "", err
	}
	for _, rec := range records {
		row := []string{
			rec.Group,
			strconv.FormatFloat(rec.Score, 'f', 6, 64),
			rec.Method,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}

// SummaryCSV renders readability summaries as a CSV table with a
// header row.
func SummaryCSV(summaries []models.ReadabilitySummary) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"speaker", "method", "mean", "std_dev", "sample_size", "std_err", "ci_lower", "ci_upper"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, s := range summaries {
		row := []string{
			s.Speaker,
			s.Method,
			strconv.FormatFloat(s.Mean, 'f', 6, 64),
			strconv.FormatFloat(s.StdDev, 'f', 6, 64),
			strconv.Itoa(s.SampleSize),
			strconv.FormatFloat(s.StdErr, 'f', 6, 64),
			strconv.FormatFloat(s.CILower, 'f', 6, 64),
			strconv.FormatFloat(s.CIUpper, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}
