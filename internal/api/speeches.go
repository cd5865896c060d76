package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/corvolab/speech-analyzer/internal/ingest"
	"github.com/corvolab/speech-analyzer/internal/storage"
)

// IngestRequest adds records to a corpus, either inline or fetched
// from a remote JSON endpoint. Exactly one of Records and SourceURL
// must be set.
type IngestRequest struct {
	SourceURL string `json:"source_url"`
	Records   []struct {
		Speaker string `json:"speaker"`
		Text    string `json:"text"`
		Date    string `json:"date"`
	} `json:"records"`
}

func (s *Server) handleIngestSpeeches(w http.ResponseWriter, r *http.Request) {
	corpus, ok := s.loadCorpus(w, r)
	if !ok {
		return
	}

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SourceURL != "" && len(req.Records) > 0 {
		respondError(w, http.StatusBadRequest, "provide records or source_url, not both")
		return
	}

	var speeches []*storage.Speech
	switch {
	case req.SourceURL != "":
		records, err := ingest.NewClient(req.SourceURL).Load(r.Context())
		if err != nil {
			respondError(w, http.StatusBadGateway, "failed to load records from source")
			return
		}
		for _, rec := range records {
			if rec.Speaker == "" || rec.Text == "" {
				respondError(w, http.StatusBadRequest, "speaker and text are required on every record")
				return
			}
			speeches = append(speeches, &storage.Speech{
				CorpusID: corpus.ID,
				Speaker:  rec.Speaker,
				Text:     rec.Text,
				SpokenAt: rec.SpokenAt,
				Week:     rec.Week,
			})
		}
	case len(req.Records) > 0:
		for _, rec := range req.Records {
			if rec.Speaker == "" || rec.Text == "" {
				respondError(w, http.StatusBadRequest, "speaker and text are required on every record")
				return
			}
			spokenAt, err := time.Parse("2006-01-02", rec.Date)
			if err != nil {
				respondError(w, http.StatusBadRequest, "date must be an ISO date (YYYY-MM-DD)")
				return
			}
			speeches = append(speeches, &storage.Speech{
				CorpusID: corpus.ID,
				Speaker:  rec.Speaker,
				Text:     rec.Text,
				SpokenAt: spokenAt,
				Week:     ingest.DeriveWeek(spokenAt),
			})
		}
	default:
		respondError(w, http.StatusBadRequest, "records or source_url are required")
		return
	}

	if len(speeches) == 0 {
		respondError(w, http.StatusBadRequest, "source returned no records")
		return
	}

	if err := s.speechRepo.CreateBatch(r.Context(), speeches); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store speeches")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int{"ingested": len(speeches)})
}
