package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"log/slog"

	"github.com/hillandale/walksync/internal/reconcile"
	"github.com/hillandale/walksync/internal/remote"
)

// ReconcileHandler triggers reconciliation passes and reports publish
// status for the local programme.
type ReconcileHandler struct {
	service *reconcile.Service
	logger  *slog.Logger
}

// NewReconcileHandler creates a new reconcile handler
func NewReconcileHandler(service *reconcile.Service, logger *slog.Logger) *ReconcileHandler {
	return &ReconcileHandler{
		service: service,
		logger:  logger,
	}
}

// ReconcileResponse summarises one reconciliation pass.
type ReconcileResponse struct {
	Matched        int      `json:"matched"`
	DriftUpdates   int      `json:"drift_updates"`
	MediaBackfills int      `json:"media_backfills"`
	Unlinks        int      `json:"unlinks"`
	Writes         int      `json:"writes"`
	Failures       []string `json:"failures,omitempty"`
}

// RunHandler handles POST /api/reconcile
func (h *ReconcileHandler) RunHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.service.Run(r.Context())
	if err != nil {
		var unavailable *remote.UnavailableError
		if errors.As(err, &unavailable) {
			h.logger.Error("remote platform unavailable", "error", err)
			http.Error(w, "Walks platform unavailable", http.StatusBadGateway)
			return
		}
		h.logger.Error("reconciliation failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := ReconcileResponse{
		Matched:        result.Matched,
		DriftUpdates:   result.DriftUpdates,
		MediaBackfills: result.MediaBackfills,
		Unlinks:        result.Unlinks,
		Writes:         result.Writes,
	}
	for _, failure := range result.Failures {
		response.Failures = append(response.Failures, failure.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// PublishStatusResponse wraps the per-walk publish evaluations.
type PublishStatusResponse struct {
	Evaluations []reconcile.Evaluation `json:"evaluations"`
	Count       int                    `json:"count"`
}

// PublishStatusHandler handles GET /api/walks/publish-status and
// GET /api/walks/:id/publish-status
func (h *ReconcileHandler) PublishStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// A segment between /api/walks/ and /publish-status narrows the
	// evaluation to one walk.
	walkID := ""
	parts := strings.Split(strings.TrimSuffix(r.URL.Path, "/publish-status"), "/")
	if len(parts) >= 4 && parts[3] != "" {
		walkID = parts[3]
	}

	evaluations, err := h.service.Evaluate(r.Context())
	if err != nil {
		var unavailable *remote.UnavailableError
		if errors.As(err, &unavailable) {
			h.logger.Error("remote platform unavailable", "error", err)
			http.Error(w, "Walks platform unavailable", http.StatusBadGateway)
			return
		}
		h.logger.Error("publish status evaluation failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if walkID != "" {
		for _, evaluation := range evaluations {
			if evaluation.Walk.ID != walkID {
				continue
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.WriteHeader(http.StatusOK)
			if err := json.NewEncoder(w).Encode(evaluation); err != nil {
				h.logger.Error("failed to encode response", "error", err)
			}
			return
		}
		http.Error(w, "Walk not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	response := PublishStatusResponse{
		Evaluations: evaluations,
		Count:       len(evaluations),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
