package textstat

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrUnknownMethod is returned when a comparison method name is not
// recognized by the provider.
var ErrUnknownMethod = errors.New("textstat: unknown method")

// Similarity method names accepted by Compare.
const (
	MethodCosine      = "cosine"
	MethodCorrelation = "correlation"
	MethodJaccard     = "jaccard"
	MethodDice        = "dice"
	MethodEuclidean   = "euclidean"
	MethodManhattan   = "manhattan"
)

// metricFunc computes one pairwise score from two aligned term vectors.
type metricFunc func(a, b []float64) float64

var metrics = map[string]metricFunc{
	MethodCosine:      cosineSimilarity,
	MethodCorrelation: pearsonCorrelation,
	MethodJaccard:     jaccardSimilarity,
	MethodDice:        diceSimilarity,
	MethodEuclidean:   euclideanDistance,
	MethodManhattan:   manhattanDistance,
}

var distanceMethods = map[string]bool{
	MethodEuclidean: true,
	MethodManhattan: true,
}

// IsDistance reports whether a method produces a distance (0.0 on the
// diagonal) rather than a similarity (1.0 on the diagonal).
func IsDistance(method string) bool {
	return distanceMethods[method]
}

// KnownMethod reports whether the provider understands a method name.
func KnownMethod(method string) bool {
	_, ok := metrics[method]
	return ok
}

// ComparisonMatrix is a full pairwise score matrix over the groups of
// a term matrix for one method. It is symmetric; the diagonal holds
// the self-comparison (1.0 for similarities, 0.0 for distances).
type ComparisonMatrix struct {
	Method string
	Groups []string
	Scores [][]float64

	index map[string]int
}

// Compare computes the full pairwise matrix for a named method.
func Compare(tm *TermMatrix, method string) (*ComparisonMatrix, error) {
	if tm == nil || tm.NumGroups() == 0 {
		return nil, ErrNoDocuments
	}

	metric, ok := metrics[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	n := len(tm.Groups)
	m := &ComparisonMatrix{
		Method: method,
		Groups: append([]string(nil), tm.Groups...),
		Scores: make([][]float64, n),
		index:  make(map[string]int, n),
	}
	for i, g := range m.Groups {
		m.index[g] = i
		m.Scores[i] = make([]float64, n)
	}

	self := 1.0
	if IsDistance(method) {
		self = 0.0
	}

	// Only compute the upper triangle; all metrics are symmetric.
	for i := 0; i < n; i++ {
		m.Scores[i][i] = self
		a, _ := tm.Row(m.Groups[i])
		for j := i + 1; j < n; j++ {
			b, _ := tm.Row(m.Groups[j])
			score := metric(a, b)
			m.Scores[i][j] = score
			m.Scores[j][i] = score
		}
	}

	return m, nil
}

// Score returns the pairwise score for two groups.
func (m *ComparisonMatrix) Score(a, b string) (float64, bool) {
	i, ok := m.index[a]
	if !ok {
		return 0, false
	}
	j, ok := m.index[b]
	if !ok {
		return 0, false
	}
	return m.Scores[i][j], true
}

// HasGroup reports whether the matrix has a row for group.
func (m *ComparisonMatrix) HasGroup(group string) bool {
	_, ok := m.index[group]
	return ok
}

// cosineSimilarity returns dot(a,b)/(|a||b|). Term counts are
// non-negative, so the result stays within [0,1].
func cosineSimilarity(a, b []float64) float64 {
	dot := floats.Dot(a, b)
	magA := math.Sqrt(floats.Dot(a, a))
	magB := math.Sqrt(floats.Dot(b, b))
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (magA * magB)
}

// pearsonCorrelation returns the Pearson correlation of the two count
// vectors across the shared vocabulary, clamped to [0,1]. Negative and
// undefined (zero variance) correlations both map to 0.
func pearsonCorrelation(a, b []float64) float64 {
	r := stat.Correlation(a, b, nil)
	if math.IsNaN(r) || r < 0 {
		return 0
	}
	return r
}

// jaccardSimilarity treats vectors as term-presence sets:
// |A intersect B| / |A union B|.
func jaccardSimilarity(a, b []float64) float64 {
	var inter, union float64
	for i := range a {
		inA := a[i] > 0
		inB := b[i] > 0
		if inA && inB {
			inter++
		}
		if inA || inB {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return inter / union
}

// diceSimilarity is the Sorensen-Dice coefficient over term presence:
// 2|A intersect B| / (|A| + |B|).
func diceSimilarity(a, b []float64) float64 {
	var inter, sizeA, sizeB float64
	for i := range a {
		inA := a[i] > 0
		inB := b[i] > 0
		if inA {
			sizeA++
		}
		if inB {
			sizeB++
		}
		if inA && inB {
			inter++
		}
	}
	if sizeA+sizeB == 0 {
		return 0
	}
	return 2 * inter / (sizeA + sizeB)
}

func euclideanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

func manhattanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}
