package export

import (
	"testing"
	"time"

	"github.com/hillandale/walksync/internal/models"
)

func rowConfig() RowConfig {
	return RowConfig{DefaultAverageSpeedMph: 2.5}
}

func TestEstimateFinishTime(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		miles float64
		mph   float64
		want  string
	}{
		{"exact quarter stays put", at(9, 0), 8, 4, "11:00"},
		{"rounds up to next quarter", at(9, 0), 7.5, 4, "11:00"},
		{"one minute past rounds up", at(9, 0), 8.1, 4, "11:15"},
		{"half speed doubles duration", at(10, 0), 5, 2.5, "12:00"},
		{"sub-second overshoot truncated away", at(9, 0), 0.0001, 1, "09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateFinishTime(tt.start, tt.miles, tt.mph).Format("15:04")
			if got != tt.want {
				t.Errorf("EstimateFinishTime = %s, want %s", got, tt.want)
			}
		})
	}
}

func at(hour, min int) time.Time {
	return time.Date(2025, time.April, 1, hour, min, 0, 0, time.UTC)
}

func TestBuildRowFillsSchema(t *testing.T) {
	walk := validWalk()
	walk.StartLocation.Description = "Village green"
	walk.FinishLocation.Postcode = "HD1 2AB"
	walk.Features.DogFriendly = true
	walk.SetLink(models.LinkSourceLocal, "https://club.example.org/walks/w1", "River loop")

	row := BuildRow(walk, rowConfig())
	columns := row.Columns()

	headings := models.UploadColumnHeadings()
	if len(columns) != len(headings) {
		t.Fatalf("columns = %d, want %d", len(columns), len(headings))
	}

	byHeading := map[string]string{}
	for i, h := range headings {
		byHeading[h] = columns[i]
	}

	checks := map[string]string{
		"Date":                  "01-04-2025",
		"Title":                 "River loop",
		"Start Time":            "09:00",
		"Estimated Finish Time": "12:30",
		"Linear/Circular":       "Circular",
		"Starting Location":     "Village green",
		"Starting Postcode":     "HD1 2AB",
		"Walk Leaders":          "Pat Walker",
		"Website Link":          "https://club.example.org/walks/w1",
		"Difficulty":            "Leisurely",
		"Distance (km)":         "9.7",
		"Distance (miles)":      "6",
		"Ascent (metres)":       "152.4",
		"Ascent (feet)":         "500",
		"Dog Friendly":          "TRUE",
		"Introductory Walk":     "FALSE",
		"Toilets Available":     "FALSE",
	}
	for heading, want := range checks {
		if byHeading[heading] != want {
			t.Errorf("%s = %q, want %q", heading, byHeading[heading], want)
		}
	}
}

func TestBuildRowEstimatesMissingFinishTime(t *testing.T) {
	walk := validWalk()
	walk.FinishTime = ""
	walk.Distance = "8 miles"
	walk.AverageSpeedMph = 4

	row := BuildRow(walk, rowConfig())
	if row.EstimatedFinishTime != "11:00" {
		t.Errorf("estimated finish = %q, want \"11:00\"", row.EstimatedFinishTime)
	}
}

func TestBuildRowUsesDefaultSpeed(t *testing.T) {
	walk := validWalk()
	walk.FinishTime = ""
	walk.Distance = "5 miles"

	// 5 miles at the default 2.5 mph is two hours.
	row := BuildRow(walk, rowConfig())
	if row.EstimatedFinishTime != "11:00" {
		t.Errorf("estimated finish = %q, want \"11:00\"", row.EstimatedFinishTime)
	}
}

func TestBuildRowExplicitFinishTimeWins(t *testing.T) {
	walk := validWalk()
	walk.FinishTime = "14:45"
	walk.AverageSpeedMph = 4

	row := BuildRow(walk, rowConfig())
	if row.EstimatedFinishTime != "14:45" {
		t.Errorf("estimated finish = %q, want the authored value", row.EstimatedFinishTime)
	}
}

func TestBuildRowAssistanceDogsSuffix(t *testing.T) {
	walk := validWalk()
	walk.Description = "A gentle riverside walk"
	walk.Features.AssistanceDogs = true

	row := BuildRow(walk, rowConfig())
	want := "A gentle riverside walk. Assistance dogs are welcome on this walk."
	if row.Description != want {
		t.Errorf("description = %q, want %q", row.Description, want)
	}

	// Already-present note is not duplicated.
	walk.Description = want
	row = BuildRow(walk, rowConfig())
	if row.Description != want {
		t.Errorf("description = %q, note duplicated", row.Description)
	}
}

func TestBuildRowRepairsDescriptionText(t *testing.T) {
	walk := validWalk()
	walk.Description = "the groupâs [route map](https://example.org/map)"

	row := BuildRow(walk, rowConfig())
	if row.Description != "the group's route map" {
		t.Errorf("description = %q", row.Description)
	}
}

func TestBuildRowToleratesUnparsableInputs(t *testing.T) {
	walk := validWalk()
	walk.Distance = "a fair way"
	walk.Ascent = ""
	walk.StartDate = ""
	walk.FinishTime = ""

	row := BuildRow(walk, rowConfig())
	if row.DistanceKm != "" || row.AscentFeet != "" || row.Date != "" || row.EstimatedFinishTime != "" {
		t.Errorf("unparsable inputs should leave columns empty: %+v", row)
	}
}
