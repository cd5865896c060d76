package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/corvolab/speech-analyzer/internal/auth"
	"github.com/corvolab/speech-analyzer/internal/storage"
	"github.com/corvolab/speech-analyzer/pkg/models"
)

func (s *Server) handleListCorpora(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	corpora, err := s.corpusRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list corpora")
		return
	}

	resp := make([]models.Corpus, 0, len(corpora))
	for _, c := range corpora {
		resp = append(resp, toModelCorpus(c))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCorpus(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	corpus := &storage.Corpus{
		UserID: userID,
		Name:   req.Name,
	}
	if err := s.corpusRepo.Create(r.Context(), corpus); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create corpus")
		return
	}

	respondJSON(w, http.StatusCreated, toModelCorpus(corpus))
}

func (s *Server) handleGetCorpus(w http.ResponseWriter, r *http.Request) {
	corpus, ok := s.loadCorpus(w, r)
	if !ok {
		return
	}

	// Stored vectors mark which groups a past comparison persisted,
	// so clients know what /neighbors can answer for.
	vectors, err := s.groupVectorRepo.GetByCorpusID(r.Context(), corpus.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load group vectors")
		return
	}
	storedGroups := make([]string, 0, len(vectors))
	for _, gv := range vectors {
		storedGroups = append(storedGroups, gv.GroupKey)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"corpus":        toModelCorpus(corpus),
		"stored_groups": storedGroups,
	})
}

func (s *Server) handleDeleteCorpus(w http.ResponseWriter, r *http.Request) {
	corpus, ok := s.loadCorpus(w, r)
	if !ok {
		return
	}

	// Speeches and stored vectors go with the corpus.
	if err := s.speechRepo.DeleteByCorpusID(r.Context(), corpus.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete speeches")
		return
	}
	if err := s.groupVectorRepo.DeleteByCorpusID(r.Context(), corpus.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete group vectors")
		return
	}
	if err := s.corpusRepo.Delete(r.Context(), corpus.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete corpus")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// loadCorpus resolves {corpusID} and checks ownership. On failure it
// writes the error response and returns ok=false.
func (s *Server) loadCorpus(w http.ResponseWriter, r *http.Request) (*storage.Corpus, bool) {
	claims, ok := auth.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	corpusID, err := uuid.Parse(chi.URLParam(r, "corpusID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid corpus id")
		return nil, false
	}

	corpus, err := s.corpusRepo.GetByID(r.Context(), corpusID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load corpus")
		return nil, false
	}
	if corpus == nil || corpus.UserID.String() != claims.UserID {
		respondError(w, http.StatusNotFound, "corpus not found")
		return nil, false
	}

	return corpus, true
}

func toModelCorpus(c *storage.Corpus) models.Corpus {
	return models.Corpus{
		ID:        c.ID.String(),
		UserID:    c.UserID.String(),
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
