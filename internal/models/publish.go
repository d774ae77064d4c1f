package models

// PublishStatus is the derived verdict on whether a walk's remote
// publication state is correct. It is computed on demand, never persisted.
type PublishStatus struct {
	// Publish is true when a publish (or unpublish) action is needed to
	// bring the remote platform in line with the local record.
	Publish bool `json:"publish"`

	// ActionRequired is true when the walk needs attention before it can
	// be brought in line, e.g. it is not yet approved.
	ActionRequired bool `json:"action_required"`

	// Messages explain the verdict in check order. They are displayed
	// verbatim downstream: never deduplicated or reordered.
	Messages []string `json:"messages"`
}
