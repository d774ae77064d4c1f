package models

import (
	"reflect"
	"testing"
	"time"
)

func TestStartAt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"rfc3339", "2025-04-01T09:00:00Z", time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC), true},
		{"local datetime", "2025-04-01T09:00", time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC), true},
		{"spaced datetime", "2025-04-01 09:00", time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC), true},
		{"date only", "2025-04-01", time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "next tuesday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walk := Walk{StartDate: tt.input}
			got, ok := walk.StartAt()
			if ok != tt.ok {
				t.Fatalf("StartAt ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("StartAt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinkHelpersKeepOnePerSource(t *testing.T) {
	var walk Walk

	walk.SetLink(LinkSourcePrimaryRemote, "https://walks.example.org/walk/1", "First")
	walk.SetLink(LinkSourceLocal, "https://club.example.org/walks/1", "Ours")
	walk.SetLink(LinkSourcePrimaryRemote, "https://walks.example.org/walk/2", "Second")

	if len(walk.Links) != 2 {
		t.Fatalf("links = %d, want 2", len(walk.Links))
	}

	link := walk.LinkWithSource(LinkSourcePrimaryRemote)
	if link == nil || link.Href != "https://walks.example.org/walk/2" || link.Title != "Second" {
		t.Errorf("primary-remote link = %+v", link)
	}

	walk.ClearLink(LinkSourcePrimaryRemote)
	if walk.LinkWithSource(LinkSourcePrimaryRemote) != nil {
		t.Error("link not cleared")
	}
	if walk.LinkWithSource(LinkSourceLocal) == nil {
		t.Error("unrelated link removed")
	}
}

func TestWalkStatusDescription(t *testing.T) {
	tests := map[WalkStatus]string{
		StatusDraft:            "in draft",
		StatusAwaitingApproval: "awaiting approval",
		StatusApproved:         "approved",
		StatusDeleted:          "deleted",
	}
	for status, want := range tests {
		if got := status.Description(); got != want {
			t.Errorf("Description(%s) = %q, want %q", status, got, want)
		}
	}
}

func TestFeatureTagsRoundTrip(t *testing.T) {
	features := Features{
		DogFriendly:      true,
		AssistanceDogs:   true,
		ToiletsAvailable: true,
	}

	tags := features.Tags()
	want := []string{"dog-friendly", "assistance-dogs", "toilets-available"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("Tags = %v, want %v", tags, want)
	}

	rebuilt := FeaturesFromTags(append(tags, "unknown-tag"))
	if rebuilt != features {
		t.Errorf("FeaturesFromTags = %+v, want %+v", rebuilt, features)
	}
}
