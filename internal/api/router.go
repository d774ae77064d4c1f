package api

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/hillandale/walksync/internal/auth"
	"github.com/hillandale/walksync/internal/database"
	"github.com/hillandale/walksync/internal/export"
	"github.com/hillandale/walksync/internal/reconcile"
	"github.com/hillandale/walksync/internal/remote"
)

// SetupRoutes configures all API routes
func SetupRoutes(mux *http.ServeMux, walkRepo reconcile.WalkRepository, service *reconcile.Service, builder *export.Builder, submitter remote.Submitter, auditRepo *database.UploadAuditRepository, authConfig auth.Config, logger *slog.Logger) {
	walkHandler := NewWalkHandler(walkRepo, logger)
	reconcileHandler := NewReconcileHandler(service, logger)
	exportHandler := NewExportHandler(service, builder, submitter, auditRepo, logger)
	authHandler := NewAuthHandler(authConfig, logger)

	// Auth middleware
	authMiddleware := auth.Middleware(authConfig)
	protect := func(handler http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// CORS preflight never carries credentials
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.WriteHeader(http.StatusOK)
				return
			}
			authMiddleware(handler).ServeHTTP(w, r)
		}
	}

	// Authentication routes (public)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/validate", protect(authHandler.ValidateToken))

	// Walk routes (public for reading)
	mux.HandleFunc("/api/walks", walkHandler.GetWalksHandler)
	mux.HandleFunc("/api/walks/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/publish-status") {
			protect(reconcileHandler.PublishStatusHandler)(w, r)
			return
		}
		walkHandler.GetWalkByIDHandler(w, r)
	})

	// Reconciliation and export routes (require auth)
	mux.HandleFunc("/api/reconcile", protect(reconcileHandler.RunHandler))
	mux.HandleFunc("/api/export/preview", protect(exportHandler.PreviewHandler))
	mux.HandleFunc("/api/export/upload", protect(exportHandler.UploadHandler))
	mux.HandleFunc("/api/export/audits", protect(exportHandler.AuditsHandler))
}
