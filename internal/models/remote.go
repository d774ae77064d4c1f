package models

// RemoteWalkSummary is the platform-supplied summary of a published walk.
// Read-only: the engine never mutates remote records.
type RemoteWalkSummary struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	// StartDate is the platform's human-formatted, day-granularity start
	// date string, e.g. "Tuesday, 1st April 2025".
	StartDate          string  `json:"start_date"`
	Title              string  `json:"title"`
	StartPostcode      string  `json:"start_postcode,omitempty"`
	EndPostcode        string  `json:"end_postcode,omitempty"`
	StartGridReference string  `json:"start_grid_reference,omitempty"`
	EndGridReference   string  `json:"end_grid_reference,omitempty"`
	Media              []Media `json:"media,omitempty"`
}

// RemoteWalkRaw is the fuller platform record returned when a single remote
// walk is fetched directly for import or viewing.
type RemoteWalkRaw struct {
	RemoteWalkSummary
	Shape         WalkShape `json:"shape,omitempty"`
	Description   string    `json:"description,omitempty"`
	DistanceMiles float64   `json:"distance_miles,omitempty"`
	AscentFeet    float64   `json:"ascent_feet,omitempty"`
	LeaderName    string    `json:"leader_name,omitempty"`
	LeaderEmail   string    `json:"leader_email,omitempty"`
	LeaderPhone   string    `json:"leader_phone,omitempty"`
	Features      []string  `json:"features,omitempty"`
}
