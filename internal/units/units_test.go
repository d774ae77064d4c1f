package units

import (
	"strings"
	"testing"
)

func TestParseDistance(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantMiles float64
		wantKm    float64
	}{
		{"bare number is miles", "6", 6, 9.7},
		{"explicit miles", "6 miles", 6, 9.7},
		{"kilometres", "10 km", 6.2, 10},
		{"kilometres long form", "10 kilometres", 6.2, 10},
		{"fractional miles", "7.5", 7.5, 12.1},
		{"no space before unit", "5km", 3.1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDistance(tt.raw)
			if err != nil {
				t.Fatalf("ParseDistance(%q) returned error: %v", tt.raw, err)
			}
			if d.Miles != tt.wantMiles {
				t.Errorf("miles = %v, want %v", d.Miles, tt.wantMiles)
			}
			if d.Kilometres != tt.wantKm {
				t.Errorf("kilometres = %v, want %v", d.Kilometres, tt.wantKm)
			}
		})
	}
}

func TestParseDistanceErrors(t *testing.T) {
	if _, err := ParseDistance(""); err == nil || err.Error() != "distance is missing" {
		t.Errorf("empty distance error = %v", err)
	}
	if _, err := ParseDistance("   "); err == nil || err.Error() != "distance is missing" {
		t.Errorf("blank distance error = %v", err)
	}
	if _, err := ParseDistance("about five miles"); err == nil || !strings.Contains(err.Error(), "is not valid") {
		t.Errorf("non-numeric distance error = %v", err)
	}
	if _, err := ParseDistance("10 furlongs"); err == nil || !strings.Contains(err.Error(), "unrecognised unit") {
		t.Errorf("unknown unit error = %v", err)
	}
}

func TestParseAscent(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantFeet   float64
		wantMetres float64
	}{
		{"bare number is feet", "500", 500, 152.4},
		{"explicit feet", "500 ft", 500, 152.4},
		{"metres", "150 m", 492.1, 150},
		{"metres long form", "150 metres", 492.1, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseAscent(tt.raw)
			if err != nil {
				t.Fatalf("ParseAscent(%q) returned error: %v", tt.raw, err)
			}
			if a.Feet != tt.wantFeet {
				t.Errorf("feet = %v, want %v", a.Feet, tt.wantFeet)
			}
			if a.Metres != tt.wantMetres {
				t.Errorf("metres = %v, want %v", a.Metres, tt.wantMetres)
			}
		})
	}

	if _, err := ParseAscent(""); err == nil || err.Error() != "ascent is missing" {
		t.Errorf("empty ascent error = %v", err)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(6.2); got != "6.2" {
		t.Errorf("Format(6.2) = %q, want \"6.2\"", got)
	}
	if got := Format(10.0); got != "10" {
		t.Errorf("Format(10.0) = %q, want \"10\"", got)
	}
}
