package models

import (
	"time"
)

// Walk is the club's authoritative record for a single walk or event.
type Walk struct {
	ID                string           `json:"id"`
	GroupCode         string           `json:"group_code,omitempty"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	AdditionalDetails string           `json:"additional_details,omitempty"`
	Shape             WalkShape        `json:"shape"`
	Status            WalkStatus       `json:"status"`
	Publish           bool             `json:"publish"` // intends publication on the remote platform
	StartDate         string           `json:"start_date"`
	FinishTime        string           `json:"finish_time,omitempty"` // explicit hh:mm estimate, optional
	MeetingTime       string           `json:"meeting_time,omitempty"`
	Distance          string           `json:"distance"` // raw input, e.g. "10 km" or "6 miles"
	Ascent            string           `json:"ascent"`   // raw input, e.g. "500 ft" or "150 m"
	Grade             string           `json:"grade"`
	StartLocation     Location         `json:"start_location"`
	FinishLocation    Location         `json:"finish_location"`
	MeetingLocation   Location         `json:"meeting_location"`
	Contact           Contact          `json:"contact"`
	Features          Features         `json:"features"`
	Media             []Media          `json:"media,omitempty"`
	RiskAssessments   []RiskAssessment `json:"risk_assessments,omitempty"`
	AverageSpeedMph   float64          `json:"average_speed_mph,omitempty"` // 0 means use the configured default
	RemoteID          string           `json:"remote_id,omitempty"`
	RemoteURL         string           `json:"remote_url,omitempty"`
	Links             []Link           `json:"links,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// WalkShape describes the route topology.
type WalkShape string

const (
	ShapeCircular WalkShape = "circular"
	ShapeLinear   WalkShape = "linear"
)

// WalkStatus represents the workflow state of a walk.
type WalkStatus string

const (
	StatusDraft            WalkStatus = "draft"
	StatusAwaitingApproval WalkStatus = "awaiting-approval"
	StatusApproved         WalkStatus = "approved"
	StatusDeleted          WalkStatus = "deleted"
)

// Description returns the human-readable form used in status messages.
func (s WalkStatus) Description() string {
	switch s {
	case StatusDraft:
		return "in draft"
	case StatusAwaitingApproval:
		return "awaiting approval"
	case StatusApproved:
		return "approved"
	case StatusDeleted:
		return "deleted"
	default:
		return string(s)
	}
}

// Location is a place with optional postcode, grid references and coordinates.
type Location struct {
	Postcode string `json:"postcode,omitempty"`
	// Grid references at three precision tiers.
	GridReference   string  `json:"grid_reference,omitempty"`
	GridReference8  string  `json:"grid_reference_8,omitempty"`
	GridReference10 string  `json:"grid_reference_10,omitempty"`
	Latitude        float64 `json:"latitude,omitempty"`
	Longitude       float64 `json:"longitude,omitempty"`
	Description     string  `json:"description,omitempty"`
}

// Contact holds the walk leader's contact details.
type Contact struct {
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	// RemoteContactName is the leader name as registered on the remote
	// platform. Required for export.
	RemoteContactName string `json:"remote_contact_name,omitempty"`
	// LegacyContactID carries the numeric contact id from the superseded
	// data model. Its presence blocks export until replaced with a name.
	LegacyContactID string `json:"legacy_contact_id,omitempty"`
}

// Media is one image or document attached to a walk.
type Media struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// RiskAssessment records confirmation of one risk-assessment section.
type RiskAssessment struct {
	Section     string     `json:"section"`
	Confirmed   bool       `json:"confirmed"`
	ConfirmedBy string     `json:"confirmed_by,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

// startDateLayouts are the accepted formats for authored start dates.
var startDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// StartAt parses the authored start date. The second return value is false
// when the raw value is empty or unparsable.
func (w *Walk) StartAt() (time.Time, bool) {
	if w.StartDate == "" {
		return time.Time{}, false
	}
	for _, layout := range startDateLayouts {
		if t, err := time.Parse(layout, w.StartDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PublishedRemotely reports whether the walk is currently published on the
// remote platform: its primary-remote id and url are both populated.
func (w *Walk) PublishedRemotely() bool {
	return w.RemoteID != "" && w.RemoteURL != ""
}

// LinkWithSource returns the walk's link for the given provenance source, or
// nil. A walk carries at most one link per source.
func (w *Walk) LinkWithSource(source LinkSource) *Link {
	for i := range w.Links {
		if w.Links[i].Source == source {
			return &w.Links[i]
		}
	}
	return nil
}

// SetLink stores a link for the given source, replacing any existing link
// with the same source.
func (w *Walk) SetLink(source LinkSource, href, title string) {
	for i := range w.Links {
		if w.Links[i].Source == source {
			w.Links[i].Href = href
			w.Links[i].Title = title
			return
		}
	}
	w.Links = append(w.Links, Link{Source: source, Href: href, Title: title})
}

// ClearLink removes the link for the given source, if present.
func (w *Walk) ClearLink(source LinkSource) {
	for i := range w.Links {
		if w.Links[i].Source == source {
			w.Links = append(w.Links[:i], w.Links[i+1:]...)
			return
		}
	}
}
