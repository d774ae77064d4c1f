package models

// RemoteQuery represents a date-ranged or ID-scoped listing request against
// the remote walks-and-events platform.
type RemoteQuery struct {
	// ItemType filters by event type, e.g. "group-walk" or "group-event".
	ItemType string `json:"item_type,omitempty"`

	// IDs restricts the query to specific remote records. When set, date
	// bounds are ignored.
	IDs []string `json:"ids,omitempty"`

	// Date and DateEnd bound the query in the platform's calendar format
	// (dd-MM-yyyy). When neither IDs nor Date are given, the client applies
	// the default two-years-back to two-years-forward horizon.
	Date    string `json:"date,omitempty"`
	DateEnd string `json:"date_end,omitempty"`

	Sort  RemoteSortField `json:"sort,omitempty"`
	Order SortOrder       `json:"order,omitempty"`

	// Raw requests full records instead of summaries.
	Raw bool `json:"raw,omitempty"`

	Limit int `json:"limit,omitempty"`

	// GroupCode scopes results to one club's walks.
	GroupCode string `json:"group_code,omitempty"`
}

// RemoteSortField specifies which field the platform sorts results by.
type RemoteSortField string

const (
	SortByStartDate RemoteSortField = "date"
)

// SortOrder specifies ascending or descending sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// Validate applies query defaults: ascending start-date order unless a
// descending sort was explicitly requested, and a sane result limit.
func (q *RemoteQuery) Validate() error {
	if q.Sort == "" {
		q.Sort = SortByStartDate
	}
	if q.Order == "" {
		q.Order = SortOrderAsc
	}
	if q.Limit <= 0 {
		q.Limit = 300
	}
	if q.Limit > 1000 {
		q.Limit = 1000
	}
	return nil
}
