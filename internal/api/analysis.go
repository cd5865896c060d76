package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"

	"github.com/corvolab/speech-analyzer/internal/comparison"
	"github.com/corvolab/speech-analyzer/internal/ingest"
	"github.com/corvolab/speech-analyzer/internal/readability"
	"github.com/corvolab/speech-analyzer/internal/report"
	"github.com/corvolab/speech-analyzer/internal/storage"
	"github.com/corvolab/speech-analyzer/internal/textstat"
	"github.com/corvolab/speech-analyzer/pkg/models"
)

// CompareRequest asks for a long-format comparison of every speaker in
// the corpus against a reference speaker.
type CompareRequest struct {
	Reference string   `json:"reference"`
	Methods   []string `json:"methods"`
	Format    string   `json:"format"` // "json" (default) or "csv"
}

// CompareResponse carries the comparison table plus the group ordering
// a plotting layer should use.
type CompareResponse struct {
	Records      []models.ComparisonRecord `json:"records"`
	GroupsByMean []string                  `json:"groups_by_mean"`
}

// WeeklyCompareRequest asks for per-week comparison under one method.
// MissingWeekPolicy must be chosen explicitly: "skip" or "null".
type WeeklyCompareRequest struct {
	Reference         string `json:"reference"`
	Method            string `json:"method"`
	MissingWeekPolicy string `json:"missing_week_policy"`
}

// ReadabilityRequest asks for per-speaker readability summaries.
type ReadabilityRequest struct {
	Methods []string `json:"methods"`
	Format  string   `json:"format"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	corpus, ok := s.loadCorpus(w, r)
	if !ok {
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	groups, ok := s.loadGroups(w, r, corpus)
	if !ok {
		return
	}

	tm, err := textstat.BuildTermMatrix(groups, textstat.DefaultTokenizerConfig())
	if err != nil {
		respondComparisonError(w, err)
		return
	}

	records, err := s.aggregator.AggregateMatrix(tm, req.Reference, req.Methods)
	if err != nil {
		respondComparisonError(w, err)
		return
	}

	s.storeGroupVectors(r, corpus, tm)

	if req.Format == "csv" {
		csvBody, err := report.ComparisonCSV(records)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to render csv")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(csvBody))
		return
	}

	respondJSON(w, http.StatusOK, CompareResponse{
		Records:      records,
		GroupsByMean: report.SortGroupsByMeanScore(records),
	})
}

func (s *Server) handleCompareWeekly(w http.ResponseWriter, r *http.Request) {
	corpus, ok := s.loadCorpus(w, r)
	if !ok {
		return
	}

	var req WeeklyCompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var policy comparison.MissingWeekPolicy
	switch req.MissingWeekPolicy {
	case "skip":
		policy = comparison.SkipWeek
	case "null":
		policy = comparison.EmitNull
	default:
		respondError(w, http.StatusBadRequest, `missing_week_policy must be "skip" or "null"`)
		return
	}

	speeches, err := s.speechRepo.GetByCorpusID(r.Context(), corpus.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load speeches")
		return
	}

	records := make([]models.SpeechRecord, len(speeches))
	for i, sp := range speeches {
		records[i] = toModelSpeech(sp)
	}

	scores, err := s.aggregator.AggregateWeekly(records, req.Reference, req.Method, policy)
	if err != nil {
		respondComparisonError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"scores": scores})
}

func (s *Server) handleReadability(w http.ResponseWriter, r *http.Request) {
	corpus, ok := s.loadCorpus(w, r)
	if !ok {
		return
	}

	var req ReadabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	speeches, err := s.speechRepo.GetByCorpusID(r.Context(), corpus.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load speeches")
		return
	}

	records := make([]models.SpeechRecord, len(speeches))
	for i, sp := range speeches {
		records[i] = toModelSpeech(sp)
	}

	summaries, err := s.readability.Summarize(records, req.Methods)
	if err != nil {
		respondComparisonError(w, err)
		return
	}

	if req.Format == "csv" {
		csvBody, err := report.SummaryCSV(summaries)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to render csv")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(csvBody))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"summaries": summaries})
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	corpus, ok := s.loadCorpus(w, r)
	if !ok {
		return
	}

	topK := 10
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
		topK = n
	}

	groups, ok := s.loadGroups(w, r, corpus)
	if !ok {
		return
	}

	tm, err := textstat.BuildTermMatrix(groups, textstat.DefaultTokenizerConfig())
	if err != nil {
		respondComparisonError(w, err)
		return
	}

	byGroup := textstat.GroupKeywords(tm, topK)

	resp := make([]models.GroupKeywords, 0, len(byGroup))
	for _, group := range tm.Groups {
		terms := make([]string, 0, len(byGroup[group]))
		for _, kw := range byGroup[group] {
			terms = append(terms, kw.Term)
		}
		resp = append(resp, models.GroupKeywords{Group: group, Keywords: terms})
	}

	respondJSON(w, http.StatusOK, resp)
}

// GroupNeighbor is one stored group scored against the probe group by
// pgvector cosine similarity.
type GroupNeighbor struct {
	Group      string  `json:"group"`
	Similarity float64 `json:"similarity"`
}

// handleGroupNeighbors looks up a group's stored term vector and
// returns the nearest stored groups. Vectors are stored as a side
// effect of running a comparison.
func (s *Server) handleGroupNeighbors(w http.ResponseWriter, r *http.Request) {
	corpus, ok := s.loadCorpus(w, r)
	if !ok {
		return
	}

	group := r.URL.Query().Get("group")
	if group == "" {
		respondError(w, http.StatusBadRequest, "group is required")
		return
	}

	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	probe, err := s.groupVectorRepo.GetByGroup(r.Context(), corpus.ID, group)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load group vector")
		return
	}
	if probe == nil {
		respondError(w, http.StatusNotFound, "no stored vector for group; run a comparison first")
		return
	}

	// The probe group is its own nearest neighbor; fetch one extra row
	// and drop it.
	nearest, err := s.groupVectorRepo.FindNearest(r.Context(), corpus.ID, probe.Vector, limit+1)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to search group vectors")
		return
	}

	neighbors := make([]GroupNeighbor, 0, limit)
	for _, n := range nearest {
		if n.GroupVector.GroupKey == group {
			continue
		}
		if len(neighbors) == limit {
			break
		}
		neighbors = append(neighbors, GroupNeighbor{
			Group:      n.GroupVector.GroupKey,
			Similarity: n.Similarity,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"group":     group,
		"neighbors": neighbors,
	})
}

// loadGroups fetches a corpus's speeches and folds them into one
// document per speaker.
func (s *Server) loadGroups(w http.ResponseWriter, r *http.Request, corpus *storage.Corpus) (map[string]string, bool) {
	speeches, err := s.speechRepo.GetByCorpusID(r.Context(), corpus.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load speeches")
		return nil, false
	}
	if len(speeches) == 0 {
		respondError(w, http.StatusBadRequest, "corpus has no speeches")
		return nil, false
	}

	records := make([]models.SpeechRecord, len(speeches))
	for i, sp := range speeches {
		records[i] = toModelSpeech(sp)
	}

	return ingest.GroupBySpeaker(records), true
}

// storeGroupVectors persists the term vectors behind a comparison so
// later corpora can be matched against them. Failures are logged, not
// surfaced; the comparison result is already computed.
func (s *Server) storeGroupVectors(r *http.Request, corpus *storage.Corpus, tm *textstat.TermMatrix) {
	for _, group := range tm.Groups {
		row, _ := tm.Row(group)
		vec := make([]float32, len(row))
		for i, v := range row {
			vec[i] = float32(v)
		}
		gv := &storage.GroupVector{
			CorpusID: corpus.ID,
			GroupKey: group,
			Vector:   pgvector.NewVector(vec),
		}
		if err := s.groupVectorRepo.Upsert(r.Context(), gv); err != nil {
			logrus.WithError(err).WithField("group", group).Warn("failed to store group vector")
		}
	}
}

func toModelSpeech(sp *storage.Speech) models.SpeechRecord {
	return models.SpeechRecord{
		ID:       sp.ID.String(),
		CorpusID: sp.CorpusID.String(),
		Speaker:  sp.Speaker,
		Text:     sp.Text,
		SpokenAt: sp.SpokenAt,
		Week:     sp.Week,
	}
}

// respondComparisonError maps the analysis error taxonomy onto HTTP
// status codes.
func respondComparisonError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, comparison.ErrEmptyInput),
		errors.Is(err, readability.ErrEmptyInput),
		errors.Is(err, textstat.ErrNoDocuments),
		errors.Is(err, comparison.ErrInvalidPolicy),
		errors.Is(err, textstat.ErrUnknownMethod),
		errors.Is(err, textstat.ErrEmptyText):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, comparison.ErrMissingReferenceGroup):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "analysis failed")
	}
}
