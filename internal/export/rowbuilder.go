package export

import (
	"strings"
	"time"

	"github.com/hillandale/walksync/internal/models"
	"github.com/hillandale/walksync/internal/remote"
	"github.com/hillandale/walksync/internal/units"
)

// assistanceDogsNote is the canonical description sentence appended when the
// assistance-dogs feature is selected. The platform has no dedicated column
// for it.
const assistanceDogsNote = "Assistance dogs are welcome on this walk."

// RowConfig holds row-building settings.
type RowConfig struct {
	// DefaultAverageSpeedMph estimates finish times for walks without an
	// average-speed hint.
	DefaultAverageSpeedMph float64
}

// BuildRow projects one walk into the platform's fixed upload row schema.
// Pure and independently parallelizable across walks.
func BuildRow(walk *models.Walk, cfg RowConfig) models.UploadRow {
	row := models.UploadRow{
		Title:                    walk.Title,
		Description:              buildDescription(walk),
		AdditionalDetails:        units.FlattenMarkdownLinks(units.RepairText(walk.AdditionalDetails)),
		WebsiteLink:              websiteLink(walk),
		WalkLeaders:              walk.Contact.RemoteContactName,
		LinearCircular:           shapeColumn(walk.Shape),
		StartingLocation:         walk.StartLocation.Description,
		StartingPostcode:         walk.StartLocation.Postcode,
		StartingGridReference:    walk.StartLocation.GridReference,
		StartingLocationDetails:  "",
		MeetingTime:              walk.MeetingTime,
		MeetingLocation:          walk.MeetingLocation.Description,
		MeetingPostcode:          walk.MeetingLocation.Postcode,
		MeetingGridReference:     walk.MeetingLocation.GridReference,
		MeetingLocationDetails:   "",
		FinishingLocation:        walk.FinishLocation.Description,
		FinishingPostcode:        walk.FinishLocation.Postcode,
		FinishingGridReference:   walk.FinishLocation.GridReference,
		FinishingLocationDetails: "",
		Difficulty:               walk.Grade,
		Features:                 walk.Features,
	}

	distance, distErr := units.ParseDistance(walk.Distance)
	if distErr == nil {
		row.DistanceKm = units.Format(distance.Kilometres)
		row.DistanceMiles = units.Format(distance.Miles)
	}

	if ascent, err := units.ParseAscent(walk.Ascent); err == nil {
		row.AscentMetres = units.Format(ascent.Metres)
		row.AscentFeet = units.Format(ascent.Feet)
	}

	start, startOK := walk.StartAt()
	if startOK {
		row.Date = remote.CalendarDate(start)
		row.StartTime = start.Format("15:04")
	}

	row.EstimatedFinishTime = walk.FinishTime
	if row.EstimatedFinishTime == "" && startOK && distErr == nil {
		speed := walk.AverageSpeedMph
		if speed <= 0 {
			speed = cfg.DefaultAverageSpeedMph
		}
		if speed > 0 {
			row.EstimatedFinishTime = EstimateFinishTime(start, distance.Miles, speed).Format("15:04")
		}
	}

	return row
}

// EstimateFinishTime computes start plus walking duration (distance in miles
// over average speed in mph), rounded up to the next quarter-hour boundary
// with seconds truncated to zero.
func EstimateFinishTime(start time.Time, miles, averageSpeedMph float64) time.Time {
	duration := time.Duration(miles / averageSpeedMph * float64(time.Hour))

	finish := start.Add(duration).Truncate(time.Second)

	quarter := finish.Truncate(15 * time.Minute)
	if finish.After(quarter) {
		quarter = quarter.Add(15 * time.Minute)
	}
	return quarter
}

// buildDescription repairs and flattens the free text, then applies the
// description-suffix rule for the assistance-dogs feature.
func buildDescription(walk *models.Walk) string {
	description := units.FlattenMarkdownLinks(units.RepairText(walk.Description))

	if walk.Features.AssistanceDogs && !strings.Contains(description, assistanceDogsNote) {
		description = appendSentence(description, assistanceDogsNote)
	}

	return description
}

// appendSentence appends a sentence, inserting a trailing period/space as
// needed.
func appendSentence(text, sentence string) string {
	trimmed := strings.TrimRight(text, " ")
	if trimmed == "" {
		return sentence
	}
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, "!") || strings.HasSuffix(trimmed, "?") {
		return trimmed + " " + sentence
	}
	return trimmed + ". " + sentence
}

func websiteLink(walk *models.Walk) string {
	if link := walk.LinkWithSource(models.LinkSourceLocal); link != nil {
		return link.Href
	}
	return ""
}

func shapeColumn(shape models.WalkShape) string {
	switch shape {
	case models.ShapeCircular:
		return "Circular"
	case models.ShapeLinear:
		return "Linear"
	default:
		return ""
	}
}
