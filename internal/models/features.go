package models

// Features is the enumerated facility/transport/accessibility tag set for a
// walk. Modelled as explicit booleans rather than a free-form keyed lookup.
type Features struct {
	DogFriendly               bool `json:"dog_friendly,omitempty"`
	AssistanceDogs            bool `json:"assistance_dogs,omitempty"`
	IntroductoryWalk          bool `json:"introductory_walk,omitempty"`
	NoStiles                  bool `json:"no_stiles,omitempty"`
	FamilyFriendly            bool `json:"family_friendly,omitempty"`
	WheelchairAccessible      bool `json:"wheelchair_accessible,omitempty"`
	PublicTransportAccessible bool `json:"public_transport_accessible,omitempty"`
	CarParkingAvailable       bool `json:"car_parking_available,omitempty"`
	CarSharingAvailable       bool `json:"car_sharing_available,omitempty"`
	CoachTrip                 bool `json:"coach_trip,omitempty"`
	RefreshmentsAvailable     bool `json:"refreshments_available,omitempty"`
	ToiletsAvailable          bool `json:"toilets_available,omitempty"`
}

// Feature tag names used for storage and for the remote platform's feature
// lists.
const (
	FeatureDogFriendly               = "dog-friendly"
	FeatureAssistanceDogs            = "assistance-dogs"
	FeatureIntroductoryWalk          = "introductory-walk"
	FeatureNoStiles                  = "no-stiles"
	FeatureFamilyFriendly            = "family-friendly"
	FeatureWheelchairAccessible      = "wheelchair-accessible"
	FeaturePublicTransportAccessible = "public-transport-accessible"
	FeatureCarParkingAvailable       = "car-parking-available"
	FeatureCarSharingAvailable       = "car-sharing-available"
	FeatureCoachTrip                 = "coach-trip"
	FeatureRefreshmentsAvailable     = "refreshments-available"
	FeatureToiletsAvailable          = "toilets-available"
)

// Tags returns the enabled feature tags in canonical order.
func (f Features) Tags() []string {
	var tags []string
	for _, e := range f.entries() {
		if e.set {
			tags = append(tags, e.tag)
		}
	}
	return tags
}

// FeaturesFromTags builds a Features set from stored tag names. Unknown tags
// are ignored.
func FeaturesFromTags(tags []string) Features {
	var f Features
	for _, tag := range tags {
		switch tag {
		case FeatureDogFriendly:
			f.DogFriendly = true
		case FeatureAssistanceDogs:
			f.AssistanceDogs = true
		case FeatureIntroductoryWalk:
			f.IntroductoryWalk = true
		case FeatureNoStiles:
			f.NoStiles = true
		case FeatureFamilyFriendly:
			f.FamilyFriendly = true
		case FeatureWheelchairAccessible:
			f.WheelchairAccessible = true
		case FeaturePublicTransportAccessible:
			f.PublicTransportAccessible = true
		case FeatureCarParkingAvailable:
			f.CarParkingAvailable = true
		case FeatureCarSharingAvailable:
			f.CarSharingAvailable = true
		case FeatureCoachTrip:
			f.CoachTrip = true
		case FeatureRefreshmentsAvailable:
			f.RefreshmentsAvailable = true
		case FeatureToiletsAvailable:
			f.ToiletsAvailable = true
		}
	}
	return f
}

type featureEntry struct {
	tag string
	set bool
}

func (f Features) entries() []featureEntry {
	return []featureEntry{
		{FeatureDogFriendly, f.DogFriendly},
		{FeatureAssistanceDogs, f.AssistanceDogs},
		{FeatureIntroductoryWalk, f.IntroductoryWalk},
		{FeatureNoStiles, f.NoStiles},
		{FeatureFamilyFriendly, f.FamilyFriendly},
		{FeatureWheelchairAccessible, f.WheelchairAccessible},
		{FeaturePublicTransportAccessible, f.PublicTransportAccessible},
		{FeatureCarParkingAvailable, f.CarParkingAvailable},
		{FeatureCarSharingAvailable, f.CarSharingAvailable},
		{FeatureCoachTrip, f.CoachTrip},
		{FeatureRefreshmentsAvailable, f.RefreshmentsAvailable},
		{FeatureToiletsAvailable, f.ToiletsAvailable},
	}
}
