package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hillandale/walksync/internal/config"
	"github.com/hillandale/walksync/internal/models"
)

// Submitter accepts a built upload request. Submission results, including
// platform rejections, are surfaced verbatim: the engine never retries a
// batch unilaterally.
type Submitter interface {
	Submit(ctx context.Context, request models.UploadRequest) error
}

// HTTPSubmitter posts upload batches to the management platform.
type HTTPSubmitter struct {
	cfg    config.RemoteConfig
	http   *http.Client
	logger *slog.Logger
}

// NewHTTPSubmitter constructs an upload submitter.
func NewHTTPSubmitter(cfg config.RemoteConfig, logger *slog.Logger) *HTTPSubmitter {
	return &HTTPSubmitter{
		cfg:    cfg,
		http:   &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// Submit sends one upload batch. A non-2xx response is returned as an error
// carrying the platform's response body, uninterpreted.
func (s *HTTPSubmitter) Submit(ctx context.Context, request models.UploadRequest) error {
	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode upload request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/walks-upload", strings.TrimSuffix(s.cfg.BaseURL, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("x-api-key", s.cfg.APIKey)
	}

	s.logger.Info("submitting upload batch",
		"upload_id", request.ID,
		"rows", len(request.Rows),
		"deletions", len(request.Deletions),
		"operator", request.Operator,
	)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
