package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/hillandale/walksync/internal/models"
	"github.com/hillandale/walksync/internal/reconcile"
	"github.com/hillandale/walksync/internal/remote"
)

// WalkHandler serves the local walk programme.
type WalkHandler struct {
	repo   reconcile.WalkRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewWalkHandler creates a new walk handler
func NewWalkHandler(repo reconcile.WalkRepository, logger *slog.Logger) *WalkHandler {
	return &WalkHandler{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WalksResponse wraps a walk listing.
type WalksResponse struct {
	Walks []models.Walk `json:"walks"`
	Count int           `json:"count"`
}

// GetWalksHandler handles GET /api/walks
func (h *WalkHandler) GetWalksHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	from, to := remote.DefaultDateRange(h.now())
	walks, err := h.repo.ListLive(r.Context(), from, to)
	if err != nil {
		h.logger.Error("failed to list walks", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	response := WalksResponse{
		Walks: walks,
		Count: len(walks),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// GetWalkByIDHandler handles GET /api/walks/:id
func (h *WalkHandler) GetWalkByIDHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 4 || parts[3] == "" {
		http.Error(w, "Walk ID required", http.StatusBadRequest)
		return
	}
	walkID := parts[3]

	walk, err := h.repo.GetByID(r.Context(), walkID)
	if err != nil {
		h.logger.Error("failed to get walk by ID", "id", walkID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if walk == nil {
		http.Error(w, "Walk not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(walk); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
