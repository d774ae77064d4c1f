package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hillandale/walksync/internal/reconcile"
	"github.com/hillandale/walksync/internal/remote"
)

func newReconcileFixture(client remote.Client) *ReconcileHandler {
	repo := reconcile.NewMemoryWalkRepository()
	repo.Store(context.Background(), exportableWalk())

	reconciler := reconcile.NewReconciler(repo, testLogger(), reconcile.Config{})
	evaluator := reconcile.NewEvaluator(reconcile.EvaluatorConfig{})
	service := reconcile.NewService(client, repo, reconciler, evaluator, nil, testLogger())

	return NewReconcileHandler(service, testLogger())
}

func TestPublishStatusHandlerListsProgramme(t *testing.T) {
	handler := newReconcileFixture(&fakeListClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/walks/publish-status", nil)
	rr := httptest.NewRecorder()
	handler.PublishStatusHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var response PublishStatusResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Count != 1 || len(response.Evaluations) != 1 {
		t.Errorf("count = %d, evaluations = %d, want 1", response.Count, len(response.Evaluations))
	}
}

func TestPublishStatusHandlerHonoursWalkID(t *testing.T) {
	handler := newReconcileFixture(&fakeListClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/walks/w1/publish-status", nil)
	rr := httptest.NewRecorder()
	handler.PublishStatusHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var evaluation reconcile.Evaluation
	if err := json.Unmarshal(rr.Body.Bytes(), &evaluation); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if evaluation.Walk == nil || evaluation.Walk.ID != "w1" {
		t.Errorf("evaluation walk = %+v, want w1", evaluation.Walk)
	}
}

func TestPublishStatusHandlerUnknownWalkID(t *testing.T) {
	handler := newReconcileFixture(&fakeListClient{})

	req := httptest.NewRequest(http.MethodGet, "/api/walks/missing/publish-status", nil)
	rr := httptest.NewRecorder()
	handler.PublishStatusHandler(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}
