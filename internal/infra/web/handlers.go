package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
	"legal-docgen/internal/infra/logging"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps domain sentinels onto HTTP statuses. Everything unmapped is
// a 500 with a generic body; the real error goes to the log only.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeJSONError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrRateLimited):
		writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry later")
	default:
		logging.With(r.Context(), s.log).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) listContractTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Data []model.ContractTypeDefinition `json:"data"`
	}{Data: s.genUC.ListContractTypes()})
}

type generateRequest struct {
	ContractType string             `json:"contractType"`
	Parameters   map[string]any     `json:"parameters"`
	Format       model.OutputFormat `json:"format,omitempty"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.genUC.Generate(r.Context(), model.GenerationRequest{
		ContractType: req.ContractType,
		Parameters:   req.Parameters,
		Format:       req.Format,
		UserID:       userID(r),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		DownloadURL  string `json:"downloadUrl"`
		DocumentID   string `json:"documentId"`
		ContractType string `json:"contractType"`
		Status       string `json:"status"`
	}{
		DownloadURL:  res.DownloadURL,
		DocumentID:   res.DocumentID,
		ContractType: req.ContractType,
		Status:       string(model.GenerationStatusCompleted),
	})
}

func (s *Server) generateAsync(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, err := s.jobUC.Submit(r.Context(), model.GenerationRequest{
		ContractType: req.ContractType,
		Parameters:   req.Parameters,
		Format:       req.Format,
		UserID:       userID(r),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, struct {
		JobID  string `json:"jobId"`
		Status string `json:"status"`
	}{JobID: job.ID, Status: string(job.Status)})
}

type jobResponse struct {
	JobID           string                  `json:"jobId"`
	Status          string                  `json:"status"`
	Progress        int                     `json:"progress"`
	ProgressMessage string                  `json:"progressMessage,omitempty"`
	Result          *model.GenerationResult `json:"result,omitempty"`
	Error           string                  `json:"error,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	CompletedAt     *time.Time              `json:"completedAt,omitempty"`
}

func (s *Server) jobStatus(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobUC.Status(r.Context(), userID(r), chi.URLParam(r, "jobID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobResponse{
		JobID:           job.ID,
		Status:          string(job.Status),
		Progress:        job.Progress,
		ProgressMessage: job.ProgressMessage,
		Result:          job.Result,
		Error:           job.LastError,
		CreatedAt:       job.CreatedAt,
		CompletedAt:     job.CompletedAt,
	})
}

// documentSummary omits the drafted content; the full record is only served
// by the single-document endpoint.
type documentSummary struct {
	ID           string         `json:"id"`
	ContractType string         `json:"contractType"`
	Parameters   map[string]any `json:"parameters"`
	Status       string         `json:"status"`
	Error        string         `json:"error,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	recs, err := s.genUC.List(r.Context(), userID(r), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]documentSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, documentSummary{
			ID:           rec.ID,
			ContractType: rec.ContractType,
			Parameters:   rec.Parameters,
			Status:       string(rec.Status),
			Error:        rec.Error,
			CreatedAt:    rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, struct {
		Data []documentSummary `json:"data"`
	}{Data: out})
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	rec, err := s.genUC.Get(r.Context(), userID(r), chi.URLParam(r, "documentID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type renderRequest struct {
	Format model.OutputFormat `json:"format,omitempty"`
}

func (s *Server) renderDocument(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	res, err := s.genUC.ReRender(r.Context(), userID(r), chi.URLParam(r, "documentID"), req.Format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) deleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.genUC.Delete(r.Context(), userID(r), chi.URLParam(r, "documentID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
