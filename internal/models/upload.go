package models

// UploadRow is the write-only projection of a walk into the platform's
// fixed, ordered bulk-upload column schema. Every column is always present;
// empty string when not applicable.
type UploadRow struct {
	Date                     string
	Title                    string
	Description              string
	AdditionalDetails        string
	WebsiteLink              string
	WalkLeaders              string
	LinearCircular           string
	StartTime                string
	StartingLocation         string
	StartingPostcode         string
	StartingGridReference    string
	StartingLocationDetails  string
	MeetingTime              string
	MeetingLocation          string
	MeetingPostcode          string
	MeetingGridReference     string
	MeetingLocationDetails   string
	EstimatedFinishTime      string
	FinishingLocation        string
	FinishingPostcode        string
	FinishingGridReference   string
	FinishingLocationDetails string
	Difficulty               string
	DistanceKm               string
	DistanceMiles            string
	AscentMetres             string
	AscentFeet               string
	Features                 Features
}

// UploadColumnHeadings returns the platform's column headings in upload
// order. The trailing headings are the TRUE/FALSE feature columns.
func UploadColumnHeadings() []string {
	return []string{
		"Date",
		"Title",
		"Description",
		"Additional Details",
		"Website Link",
		"Walk Leaders",
		"Linear/Circular",
		"Start Time",
		"Starting Location",
		"Starting Postcode",
		"Starting Grid Reference",
		"Starting Location Details",
		"Meeting Time",
		"Meeting Location",
		"Meeting Postcode",
		"Meeting Grid Reference",
		"Meeting Location Details",
		"Estimated Finish Time",
		"Finishing Location",
		"Finishing Postcode",
		"Finishing Grid Reference",
		"Finishing Location Details",
		"Difficulty",
		"Distance (km)",
		"Distance (miles)",
		"Ascent (metres)",
		"Ascent (feet)",
		"Dog Friendly",
		"Introductory Walk",
		"No Stiles",
		"Family-Friendly",
		"Wheelchair Accessible",
		"Accessible by Public Transport",
		"Car Parking Available",
		"Car Sharing Available",
		"Coach Trip",
		"Refreshments Available",
		"Toilets Available",
	}
}

// Columns renders the row's values in heading order.
func (r UploadRow) Columns() []string {
	return []string{
		r.Date,
		r.Title,
		r.Description,
		r.AdditionalDetails,
		r.WebsiteLink,
		r.WalkLeaders,
		r.LinearCircular,
		r.StartTime,
		r.StartingLocation,
		r.StartingPostcode,
		r.StartingGridReference,
		r.StartingLocationDetails,
		r.MeetingTime,
		r.MeetingLocation,
		r.MeetingPostcode,
		r.MeetingGridReference,
		r.MeetingLocationDetails,
		r.EstimatedFinishTime,
		r.FinishingLocation,
		r.FinishingPostcode,
		r.FinishingGridReference,
		r.FinishingLocationDetails,
		r.Difficulty,
		r.DistanceKm,
		r.DistanceMiles,
		r.AscentMetres,
		r.AscentFeet,
		boolColumn(r.Features.DogFriendly),
		boolColumn(r.Features.IntroductoryWalk),
		boolColumn(r.Features.NoStiles),
		boolColumn(r.Features.FamilyFriendly),
		boolColumn(r.Features.WheelchairAccessible),
		boolColumn(r.Features.PublicTransportAccessible),
		boolColumn(r.Features.CarParkingAvailable),
		boolColumn(r.Features.CarSharingAvailable),
		boolColumn(r.Features.CoachTrip),
		boolColumn(r.Features.RefreshmentsAvailable),
		boolColumn(r.Features.ToiletsAvailable),
	}
}

func boolColumn(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// UploadRequest is one bulk-upload submission to the management platform.
type UploadRequest struct {
	ID string `json:"id"`
	// Headings is the fixed column-heading list.
	Headings []string `json:"headings"`
	// Rows holds the built rows for every export-selected walk, ordered by
	// start date descending.
	Rows [][]string `json:"rows"`
	// Deletions lists management-platform URLs of remote walks whose local
	// linkage is being withdrawn.
	Deletions []string `json:"deletions"`
	// Operator is the submitting operator's display name.
	Operator string `json:"operator"`
}
