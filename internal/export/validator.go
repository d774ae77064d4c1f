package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hillandale/walksync/internal/models"
	"github.com/hillandale/walksync/internal/units"
)

// maxTitleLength is the platform's hard limit on walk titles.
const maxTitleLength = 100

var (
	hhmmRe    = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	numericRe = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateOptions adjusts message wording for the current operator.
type ValidateOptions struct {
	// Admin controls the hint attached to a missing remote contact name:
	// admins can enter it themselves, others must ask the coordinator.
	Admin bool
}

// Validate accumulates export-blocking defect messages for a walk, in a
// fixed order and without short-circuiting. An empty list means the walk is
// structurally fit for upload. Pure: no side effects, no hidden clock.
func Validate(walk *models.Walk, opts ValidateOptions) []string {
	messages := []string{}

	if strings.TrimSpace(walk.Title) == "" {
		messages = append(messages, "walk title is missing")
	} else if len([]rune(walk.Title)) > maxTitleLength {
		messages = append(messages, fmt.Sprintf("title must not exceed %d characters", maxTitleLength))
	}

	if _, err := units.ParseDistance(walk.Distance); err != nil {
		messages = append(messages, err.Error())
	}

	if _, err := units.ParseAscent(walk.Ascent); err != nil {
		messages = append(messages, err.Error())
	}

	if walk.StartDate == "" {
		messages = append(messages, "start time is missing")
	} else if _, ok := walk.StartAt(); !ok {
		messages = append(messages, fmt.Sprintf("start time %q cannot be parsed", walk.StartDate))
	}

	if walk.Grade == "" {
		messages = append(messages, "difficulty grade is missing")
	}

	if strings.TrimSpace(walk.Description) == "" {
		messages = append(messages, "description is missing")
	}

	if walk.StartLocation.Postcode == "" && walk.StartLocation.GridReference == "" {
		messages = append(messages, "start location needs a postcode or a grid reference")
	}

	if walk.Contact.RemoteContactName == "" {
		if opts.Admin {
			messages = append(messages, "walk leader name for the walks platform is missing: enter it under contact details")
		} else {
			messages = append(messages, "walk leader name for the walks platform is missing: ask the walks coordinator to enter it")
		}
	}

	if walk.Contact.LegacyContactID != "" && numericRe.MatchString(walk.Contact.LegacyContactID) {
		messages = append(messages, fmt.Sprintf("contact is still the legacy numeric id %s: a walk leader name is now required", walk.Contact.LegacyContactID))
	}

	if walk.FinishTime == "" {
		messages = append(messages, "estimated finish time is missing")
	} else if !hhmmRe.MatchString(walk.FinishTime) {
		messages = append(messages, fmt.Sprintf("estimated finish time %q must be in hh:mm format", walk.FinishTime))
	}

	switch walk.Shape {
	case "":
		messages = append(messages, "walk shape (circular or linear) is missing")
	case models.ShapeLinear:
		if walk.FinishLocation.GridReference == "" {
			messages = append(messages, "a linear walk needs a finishing grid reference")
		}
	case models.ShapeCircular:
		if walk.FinishLocation.Postcode != "" && walk.FinishLocation.Postcode != walk.StartLocation.Postcode {
			messages = append(messages, "a circular walk should finish where it starts: finishing postcode differs from starting postcode")
		}
	}

	for _, assessment := range walk.RiskAssessments {
		if !assessment.Confirmed {
			messages = append(messages, fmt.Sprintf("risk assessment section %q is not confirmed", assessment.Section))
		}
	}

	return messages
}

// Selected reports export eligibility: a walk is selected iff its validation
// message list is empty and its publish status requires a publish action.
func Selected(messages []string, status models.PublishStatus) bool {
	return len(messages) == 0 && status.Publish
}
