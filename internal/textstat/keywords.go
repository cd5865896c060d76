package textstat

import (
	"math"
	"sort"
)

// Keyword is a term with its TF-IDF weight within one group.
type Keyword struct {
	Term  string
	Score float64
}

// GroupKeywords returns the topK highest TF-IDF terms per group,
// weighting each group's term frequencies against how many groups use
// the term. Terms shared by every group score zero and drop out, so
// the result highlights what distinguishes each group's vocabulary.
func GroupKeywords(tm *TermMatrix, topK int) map[string][]Keyword {
	if tm == nil || tm.NumGroups() == 0 {
		return nil
	}

	n := float64(len(tm.Groups))

	// Document frequency per term across groups.
	df := make([]float64, len(tm.Terms))
	for _, group := range tm.Groups {
		row, _ := tm.Row(group)
		for i, count := range row {
			if count > 0 {
				df[i]++
			}
		}
	}

	result := make(map[string][]Keyword, len(tm.Groups))
	for _, group := range tm.Groups {
		row, _ := tm.Row(group)

		var total float64
		for _, count := range row {
			total += count
		}
		if total == 0 {
			result[group] = []Keyword{}
			continue
		}

		keywords := make([]Keyword, 0, len(row))
		for i, count := range row {
			if count == 0 {
				continue
			}
			tf := count / total
			idf := math.Log(n / df[i])
			if idf == 0 {
				continue
			}
			keywords = append(keywords, Keyword{Term: tm.Terms[i], Score: tf * idf})
		}

		sort.Slice(keywords, func(i, j int) bool {
			if keywords[i].Score == keywords[j].Score {
				return keywords[i].Term < keywords[j].Term
			}
			return keywords[i].Score > keywords[j].Score
		})

		if topK > 0 && topK < len(keywords) {
			keywords = keywords[:topK]
		}
		result[group] = keywords
	}

	return result
}
