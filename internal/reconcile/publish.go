package reconcile

import (
	"fmt"

	"github.com/hillandale/walksync/internal/models"
)

// EvaluatorConfig holds publish-status evaluation settings.
type EvaluatorConfig struct {
	// CompareGridRefs enables grid-reference comparison between local and
	// remote records. Off by default: grid references round-trip through
	// the platform with precision loss.
	CompareGridRefs bool
}

// Evaluator produces a publish-status verdict for one walk and its matched
// remote summary, if any.
type Evaluator struct {
	cfg EvaluatorConfig
}

// NewEvaluator creates an evaluator with the given configuration.
func NewEvaluator(cfg EvaluatorConfig) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate compares a walk against its remote counterpart and reports
// whether a publish action is needed and why. Messages are appended in
// check order and displayed verbatim downstream.
func (e *Evaluator) Evaluate(walk *models.Walk, summary *models.RemoteWalkSummary) models.PublishStatus {
	status := models.PublishStatus{Messages: []string{}}

	if !walk.Publish {
		if summary != nil {
			status.Publish = true
			status.Messages = append(status.Messages, "needs to be unpublished")
		} else {
			status.Messages = append(status.Messages, "not to be published")
		}
		return status
	}

	if summary == nil {
		if walk.Status != models.StatusApproved {
			status.ActionRequired = true
			status.Messages = append(status.Messages, fmt.Sprintf("is %s", walk.Status.Description()))
			return status
		}
		status.Publish = true
		status.Messages = append(status.Messages, "not yet published")
		return status
	}

	e.compareFields(walk, summary, &status)

	if len(status.Messages) == 0 {
		status.Messages = append(status.Messages, "published on the walks platform and details are correct")
	}

	if status.Publish {
		status.ActionRequired = true
	}

	return status
}

func (e *Evaluator) compareFields(walk *models.Walk, summary *models.RemoteWalkSummary, status *models.PublishStatus) {
	mismatch := func(message string) {
		status.Publish = true
		status.Messages = append(status.Messages, message)
	}

	if walk.StartLocation.Postcode != summary.StartPostcode {
		mismatch(fmt.Sprintf("start postcode %q does not match published value %q",
			walk.StartLocation.Postcode, summary.StartPostcode))
	}

	if walk.FinishLocation.Postcode != summary.EndPostcode {
		mismatch(fmt.Sprintf("finish postcode %q does not match published value %q",
			walk.FinishLocation.Postcode, summary.EndPostcode))
	}

	if walk.Title != summary.Title {
		mismatch(fmt.Sprintf("title %q does not match published value %q",
			walk.Title, summary.Title))
	}

	if e.cfg.CompareGridRefs {
		if walk.StartLocation.GridReference != summary.StartGridReference {
			mismatch(fmt.Sprintf("start grid reference %q does not match published value %q",
				walk.StartLocation.GridReference, summary.StartGridReference))
		}
		if walk.FinishLocation.GridReference != summary.EndGridReference {
			mismatch(fmt.Sprintf("finish grid reference %q does not match published value %q",
				walk.FinishLocation.GridReference, summary.EndGridReference))
		}
	}
}
