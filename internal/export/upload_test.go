package export

import (
	"testing"

	"github.com/hillandale/walksync/internal/models"
)

func testHosts() HostRewrite {
	return HostRewrite{
		PublicHost:     "www.walks.example.org",
		ManagementHost: "manage.walks.example.org",
	}
}

func testBuilder() *Builder {
	return NewBuilder(rowConfig(), testHosts())
}

func publishStatus() models.PublishStatus {
	return models.PublishStatus{Publish: true}
}

func TestHostRewrite(t *testing.T) {
	got := testHosts().Rewrite("https://www.walks.example.org/walk/101")
	if got != "https://manage.walks.example.org/walk/101" {
		t.Errorf("Rewrite = %q", got)
	}
}

func TestBuildSelectsCleanPublishCandidates(t *testing.T) {
	clean := validWalk()
	defective := validWalk()
	defective.ID = "w2"
	defective.Distance = ""
	noAction := validWalk()
	noAction.ID = "w3"

	candidates := []Candidate{
		{Walk: clean, Status: publishStatus(), Messages: []string{}},
		{Walk: defective, Status: publishStatus(), Messages: Validate(defective, ValidateOptions{})},
		{Walk: noAction, Status: models.PublishStatus{}, Messages: []string{}},
	}

	request := testBuilder().Build(candidates, "Pat Walker")

	if len(request.Rows) != 1 {
		t.Fatalf("rows = %d, want only the clean publish candidate", len(request.Rows))
	}
	if len(request.Deletions) != 0 {
		t.Errorf("deletions = %v, want none", request.Deletions)
	}
	if request.Operator != "Pat Walker" {
		t.Errorf("operator = %q", request.Operator)
	}
	if request.ID == "" {
		t.Error("request id missing")
	}
	if len(request.Headings) != 38 {
		t.Errorf("headings = %d, want 38", len(request.Headings))
	}
}

func TestBuildOrdersRowsByStartDateDescending(t *testing.T) {
	early := validWalk()
	early.ID = "w-early"
	early.Title = "Early walk"
	early.StartDate = "2025-04-01T09:00"
	late := validWalk()
	late.ID = "w-late"
	late.Title = "Late walk"
	late.StartDate = "2025-05-01T09:00"

	candidates := []Candidate{
		{Walk: early, Status: publishStatus(), Messages: []string{}},
		{Walk: late, Status: publishStatus(), Messages: []string{}},
	}

	request := testBuilder().Build(candidates, "Pat Walker")

	if len(request.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(request.Rows))
	}
	if request.Rows[0][1] != "Late walk" || request.Rows[1][1] != "Early walk" {
		t.Errorf("row order = %q then %q, want latest first", request.Rows[0][1], request.Rows[1][1])
	}
}

func TestBuildWithdrawnWalkBecomesDeletion(t *testing.T) {
	withdrawn := validWalk()
	withdrawn.Publish = false
	withdrawn.RemoteID = "101"
	withdrawn.RemoteURL = "https://www.walks.example.org/walk/101"

	candidates := []Candidate{
		{Walk: withdrawn, Status: models.PublishStatus{Publish: true}, Messages: []string{}},
	}

	request := testBuilder().Build(candidates, "Pat Walker")

	if len(request.Rows) != 0 {
		t.Errorf("rows = %d, want none for a withdrawal", len(request.Rows))
	}
	if len(request.Deletions) != 1 || request.Deletions[0] != "https://manage.walks.example.org/walk/101" {
		t.Errorf("deletions = %v", request.Deletions)
	}
}

func TestBuildWithdrawnWalkWithoutRemoteURLIsSkipped(t *testing.T) {
	withdrawn := validWalk()
	withdrawn.Publish = false

	candidates := []Candidate{
		{Walk: withdrawn, Status: models.PublishStatus{Publish: true}, Messages: []string{}},
	}

	request := testBuilder().Build(candidates, "Pat Walker")

	if len(request.Rows) != 0 || len(request.Deletions) != 0 {
		t.Errorf("request = %+v, want empty", request)
	}
}

func TestCandidateSelected(t *testing.T) {
	walk := validWalk()
	selected := Candidate{Walk: walk, Status: publishStatus(), Messages: []string{}}
	if !selected.Selected() {
		t.Error("clean candidate with publish action should be selected")
	}

	blocked := Candidate{Walk: walk, Status: publishStatus(), Messages: []string{"distance is missing"}}
	if blocked.Selected() {
		t.Error("defective candidate must not be selected")
	}
}
