package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/corvolab/speech-analyzer/internal/auth"
	"github.com/corvolab/speech-analyzer/internal/comparison"
	"github.com/corvolab/speech-analyzer/internal/readability"
	"github.com/corvolab/speech-analyzer/internal/storage"
	"github.com/corvolab/speech-analyzer/internal/textstat"
)

// ServerConfig holds the dependencies for the API server
type ServerConfig struct {
	DB        *sql.DB
	JWTSecret string
}

type Server struct {
	router *chi.Mux

	authService     auth.Service
	corpusRepo      storage.CorpusRepository
	speechRepo      storage.SpeechRepository
	groupVectorRepo storage.GroupVectorRepository

	aggregator  *comparison.Aggregator
	readability *readability.Service
}

func NewServer(cfg ServerConfig) *Server {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authCfg := auth.DefaultConfig()
	if cfg.JWTSecret != "" {
		authCfg.SecretKey = cfg.JWTSecret
	}

	s := &Server{
		router:          r,
		authService:     auth.NewJWTService(authCfg, auth.NewPostgresRepository(cfg.DB)),
		corpusRepo:      storage.NewPostgresCorpusRepository(cfg.DB),
		speechRepo:      storage.NewPostgresSpeechRepository(cfg.DB),
		groupVectorRepo: storage.NewPostgresGroupVectorRepository(cfg.DB),
		aggregator:      comparison.NewAggregator(textstat.DefaultTokenizerConfig()),
		readability:     readability.NewService(),
	}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// API v1
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(s.authService))

			r.Route("/corpora", func(r chi.Router) {
				r.Get("/", s.handleListCorpora)
				r.Post("/", s.handleCreateCorpus)
				r.Get("/{corpusID}", s.handleGetCorpus)
				r.Delete("/{corpusID}", s.handleDeleteCorpus)

				// Ingestion
				r.Post("/{corpusID}/speeches", s.handleIngestSpeeches)

				// Analysis
				r.Post("/{corpusID}/compare", s.handleCompare)
				r.Post("/{corpusID}/compare/weekly", s.handleCompareWeekly)
				r.Post("/{corpusID}/readability", s.handleReadability)
				r.Get("/{corpusID}/keywords", s.handleKeywords)
				r.Get("/{corpusID}/neighbors", s.handleGroupNeighbors)
			})
		})
	})
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Helper to send JSON responses
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
