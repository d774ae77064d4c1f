package models

// LinkSource identifies the provenance of a link attached to a walk.
type LinkSource string

const (
	LinkSourceLocal           LinkSource = "local"
	LinkSourcePrimaryRemote   LinkSource = "primary-remote"
	LinkSourceAlternateRemote LinkSource = "alternate-remote"
	LinkSourceVenue           LinkSource = "venue"
)

// Link associates a walk with an external representation. A walk holds at
// most one link per source.
type Link struct {
	Source LinkSource `json:"source"`
	Href   string     `json:"href"`
	Title  string     `json:"title,omitempty"`
}
