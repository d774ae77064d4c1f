package units

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Conversion factors shared by every distance and ascent rendering.
const (
	KilometresPerMile = 1.60934
	FeetPerMetre      = 3.28084
)

// Distance holds a walk distance in both unit systems, rounded consistently.
type Distance struct {
	Miles      float64
	Kilometres float64
}

// Ascent holds a climb figure in both unit systems, rounded consistently.
type Ascent struct {
	Feet   float64
	Metres float64
}

var quantityRe = regexp.MustCompile(`^\s*([0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z]*)\s*$`)

// ParseDistance interprets a raw distance input such as "10 km", "6 miles"
// or "7.5". A bare number is taken as miles.
func ParseDistance(raw string) (Distance, error) {
	if strings.TrimSpace(raw) == "" {
		return Distance{}, fmt.Errorf("distance is missing")
	}

	value, unit, err := parseQuantity(raw)
	if err != nil {
		return Distance{}, fmt.Errorf("distance %q is not valid: %w", raw, err)
	}

	switch unit {
	case "", "mi", "mile", "miles":
		return Distance{Miles: round1(value), Kilometres: MilesToKilometres(value)}, nil
	case "km", "kilometre", "kilometres", "kilometer", "kilometers":
		return Distance{Miles: KilometresToMiles(value), Kilometres: round1(value)}, nil
	default:
		return Distance{}, fmt.Errorf("distance %q has an unrecognised unit %q", raw, unit)
	}
}

// ParseAscent interprets a raw ascent input such as "500 ft" or "150 m".
// A bare number is taken as feet.
func ParseAscent(raw string) (Ascent, error) {
	if strings.TrimSpace(raw) == "" {
		return Ascent{}, fmt.Errorf("ascent is missing")
	}

	value, unit, err := parseQuantity(raw)
	if err != nil {
		return Ascent{}, fmt.Errorf("ascent %q is not valid: %w", raw, err)
	}

	switch unit {
	case "", "ft", "foot", "feet":
		return Ascent{Feet: round1(value), Metres: FeetToMetres(value)}, nil
	case "m", "metre", "metres", "meter", "meters":
		return Ascent{Feet: MetresToFeet(value), Metres: round1(value)}, nil
	default:
		return Ascent{}, fmt.Errorf("ascent %q has an unrecognised unit %q", raw, unit)
	}
}

// MilesToKilometres converts miles to kilometres with standard rounding.
func MilesToKilometres(miles float64) float64 {
	return round1(miles * KilometresPerMile)
}

// KilometresToMiles converts kilometres to miles with standard rounding.
func KilometresToMiles(km float64) float64 {
	return round1(km / KilometresPerMile)
}

// FeetToMetres converts feet to metres with standard rounding.
func FeetToMetres(feet float64) float64 {
	return round1(feet / FeetPerMetre)
}

// MetresToFeet converts metres to feet with standard rounding.
func MetresToFeet(metres float64) float64 {
	return round1(metres * FeetPerMetre)
}

// Format renders a converted value without trailing zeros, e.g. 6.2 -> "6.2"
// and 10.0 -> "10".
func Format(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func parseQuantity(raw string) (float64, string, error) {
	m := quantityRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, "", fmt.Errorf("expected a number with an optional unit")
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", fmt.Errorf("expected a number with an optional unit")
	}

	return value, strings.ToLower(m[2]), nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
