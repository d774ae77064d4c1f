package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/hillandale/walksync/internal/auth"
	"github.com/hillandale/walksync/internal/database"
	"github.com/hillandale/walksync/internal/export"
	"github.com/hillandale/walksync/internal/models"
	"github.com/hillandale/walksync/internal/reconcile"
	"github.com/hillandale/walksync/internal/remote"
)

// ExportHandler builds and submits upload requests for the walks platform.
type ExportHandler struct {
	service   *reconcile.Service
	builder   *export.Builder
	submitter remote.Submitter
	auditRepo *database.UploadAuditRepository
	logger    *slog.Logger
}

// NewExportHandler creates a new export handler. The audit repository may
// be nil when auditing is not configured.
func NewExportHandler(service *reconcile.Service, builder *export.Builder, submitter remote.Submitter, auditRepo *database.UploadAuditRepository, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service:   service,
		builder:   builder,
		submitter: submitter,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// CandidateView reports one walk's export eligibility.
type CandidateView struct {
	WalkID   string               `json:"walk_id"`
	Title    string               `json:"title"`
	Selected bool                 `json:"selected"`
	Messages []string             `json:"messages"`
	Status   models.PublishStatus `json:"status"`
}

// PreviewResponse is the dry view of an upload: what would be sent,
// without sending it.
type PreviewResponse struct {
	Candidates []CandidateView      `json:"candidates"`
	Request    models.UploadRequest `json:"request"`
}

func (h *ExportHandler) buildCandidates(r *http.Request) ([]export.Candidate, auth.Operator, error) {
	operator, _ := auth.OperatorFromContext(r.Context())

	evaluations, err := h.service.Evaluate(r.Context())
	if err != nil {
		return nil, operator, err
	}

	opts := export.ValidateOptions{Admin: operator.IsAdmin()}
	candidates := make([]export.Candidate, 0, len(evaluations))
	for _, evaluation := range evaluations {
		candidates = append(candidates, export.Candidate{
			Walk:     evaluation.Walk,
			Status:   evaluation.Status,
			Messages: export.Validate(evaluation.Walk, opts),
		})
	}
	return candidates, operator, nil
}

// PreviewHandler handles GET /api/export/preview
func (h *ExportHandler) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	candidates, operator, err := h.buildCandidates(r)
	if err != nil {
		h.respondError(w, err, "export preview failed")
		return
	}

	response := PreviewResponse{
		Candidates: make([]CandidateView, 0, len(candidates)),
		Request:    h.builder.Build(candidates, operator.DisplayName),
	}
	for _, candidate := range candidates {
		messages := candidate.Messages
		if messages == nil {
			messages = []string{}
		}
		response.Candidates = append(response.Candidates, CandidateView{
			WalkID:   candidate.Walk.ID,
			Title:    candidate.Walk.Title,
			Selected: candidate.Selected(),
			Messages: messages,
			Status:   candidate.Status,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// UploadHandler handles POST /api/export/upload
func (h *ExportHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	candidates, operator, err := h.buildCandidates(r)
	if err != nil {
		h.respondError(w, err, "upload build failed")
		return
	}

	request := h.builder.Build(candidates, operator.DisplayName)
	if len(request.Rows) == 0 && len(request.Deletions) == 0 {
		http.Error(w, "Nothing to upload", http.StatusUnprocessableEntity)
		return
	}

	audit := database.UploadAudit{
		ID:            request.ID,
		Operator:      request.Operator,
		RowCount:      len(request.Rows),
		DeletionCount: len(request.Deletions),
		Status:        "submitted",
		CreatedAt:     time.Now().UTC(),
	}

	submitErr := h.submitter.Submit(r.Context(), request)
	if submitErr != nil {
		audit.Status = "failed"
		audit.Error = submitErr.Error()
	}

	if h.auditRepo != nil {
		if err := h.auditRepo.Store(r.Context(), audit); err != nil {
			h.logger.Error("failed to store upload audit", "upload_id", audit.ID, "error", err)
		}
	}

	if submitErr != nil {
		h.logger.Error("upload submission failed", "upload_id", request.ID, "error", submitErr)
		http.Error(w, "Upload submission failed", http.StatusBadGateway)
		return
	}

	h.logger.Info("upload submitted",
		"upload_id", request.ID,
		"operator", request.Operator,
		"rows", len(request.Rows),
		"deletions", len(request.Deletions),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(audit); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// AuditsHandler handles GET /api/export/audits
func (h *ExportHandler) AuditsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.auditRepo == nil {
		http.Error(w, "Auditing not configured", http.StatusNotFound)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	audits, err := h.auditRepo.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list upload audits", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(audits); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *ExportHandler) respondError(w http.ResponseWriter, err error, msg string) {
	var unavailable *remote.UnavailableError
	if errors.As(err, &unavailable) {
		h.logger.Error("remote platform unavailable", "error", err)
		http.Error(w, "Walks platform unavailable", http.StatusBadGateway)
		return
	}
	h.logger.Error(msg, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
