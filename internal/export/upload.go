package export

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hillandale/walksync/internal/models"
)

// HostRewrite holds the two configured host values used to turn a walk's
// public-site URL into its management-platform form for deletion requests.
type HostRewrite struct {
	PublicHost     string
	ManagementHost string
}

// Rewrite substitutes the public host segment with the management host.
func (h HostRewrite) Rewrite(url string) string {
	return strings.Replace(url, h.PublicHost, h.ManagementHost, 1)
}

// Candidate couples one walk with its publish verdict and validation
// messages for export selection.
type Candidate struct {
	Walk     *models.Walk
	Status   models.PublishStatus
	Messages []string
}

// Selected reports whether the candidate is export-eligible.
func (c Candidate) Selected() bool {
	return Selected(c.Messages, c.Status)
}

// Builder assembles upload requests from export candidates.
type Builder struct {
	rowCfg RowConfig
	hosts  HostRewrite
}

// NewBuilder creates an upload builder.
func NewBuilder(rowCfg RowConfig, hosts HostRewrite) *Builder {
	return &Builder{rowCfg: rowCfg, hosts: hosts}
}

// Build produces one upload request: the fixed headings, a row per selected
// walk ordered by start date descending, the deletion list for selected
// walks whose remote linkage is being withdrawn, and the operator's display
// name. Building is pure; submission belongs to the transport layer.
func (b *Builder) Build(candidates []Candidate, operator string) models.UploadRequest {
	request := models.UploadRequest{
		ID:        uuid.New().String(),
		Headings:  models.UploadColumnHeadings(),
		Rows:      [][]string{},
		Deletions: []string{},
		Operator:  operator,
	}

	var publishing []*models.Walk
	for _, candidate := range candidates {
		if !candidate.Selected() {
			continue
		}

		// A selected walk that no longer intends publication withdraws
		// its remote record instead of contributing a row.
		if !candidate.Walk.Publish {
			if candidate.Walk.PublishedRemotely() {
				request.Deletions = append(request.Deletions, b.hosts.Rewrite(candidate.Walk.RemoteURL))
			}
			continue
		}

		publishing = append(publishing, candidate.Walk)
	}

	sort.SliceStable(publishing, func(i, j int) bool {
		si, _ := publishing[i].StartAt()
		sj, _ := publishing[j].StartAt()
		return si.After(sj)
	})

	for _, walk := range publishing {
		request.Rows = append(request.Rows, BuildRow(walk, b.rowCfg).Columns())
	}

	return request
}
