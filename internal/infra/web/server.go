package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/infra/logging"
	"legal-docgen/internal/infra/redis"
	"legal-docgen/internal/usecase"
)

// RateLimiter is satisfied by the redis fixed-window limiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type Server struct {
	genUC         usecase.GenerationUseCase
	jobUC         usecase.JobUseCase
	auth          *AuthManager
	limiter       RateLimiter
	generateLimit int
	log           *zerolog.Logger
}

func NewServer(
	genUC usecase.GenerationUseCase,
	jobUC usecase.JobUseCase,
	auth *AuthManager,
	limiter RateLimiter,
	generateLimit int,
	log *zerolog.Logger,
) *Server {
	return &Server{
		genUC:         genUC,
		jobUC:         jobUC,
		auth:          auth,
		limiter:       limiter,
		generateLimit: generateLimit,
		log:           log,
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogContext)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.auth.Middleware)

		r.Get("/contract-types", s.listContractTypes)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimit)
			r.Post("/generate", s.generate)
			r.Post("/generate/async", s.generateAsync)
		})

		r.Get("/jobs/{jobID}", s.jobStatus)

		r.Get("/documents", s.listDocuments)
		r.Get("/documents/{documentID}", s.getDocument)
		r.Post("/documents/{documentID}/render", s.renderDocument)
		r.Delete("/documents/{documentID}", s.deleteDocument)
	})

	return r
}

func (s *Server) requestLogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := chimw.GetReqID(ctx); id != "" {
			ctx = logging.WithRequestID(ctx, id)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimit bounds drafting-cost endpoints per user. A broken limiter fails
// open; generation must not depend on redis availability.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		ok, err := s.limiter.Allow(r.Context(), redis.GenerateKey(userID(r)), s.generateLimit, time.Minute)
		if err != nil {
			logging.With(r.Context(), s.log).Warn().Err(err).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			s.writeError(w, r, domain.ErrRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}
