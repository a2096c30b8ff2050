package model

import "testing"

func TestCanonName(t *testing.T) {
	tests := map[string]string{
		"Patrick Mahomes II":    "PATRICK MAHOMES",
		"Odell Beckham Jr.":     "ODELL BECKHAM",
		"Marvin Harrison Jr":    "MARVIN HARRISON",
		"Kenneth Walker III":    "KENNETH WALKER",
		"T.J. Hockenson":        "TJ HOCKENSON",
		"D.J. Moore":            "DJ MOORE",
		"Ja'Marr Chase":         "JAMARR CHASE",
		"JuJu Smith-Schuster":   "JUJU SMITH SCHUSTER",
		"Hollywood Brown":       "MARQUISE BROWN",
		"Gabriel Davis":         "GABE DAVIS",
		"  Tyler   Lockett  ":   "TYLER LOCKETT",
		"Amon-Ra St. Brown":     "AMON RA ST BROWN",
		"":                      "",
	}

	for input, expected := range tests {
		if got := CanonName(input); got != expected {
			t.Errorf("CanonName(%q) expected %q, got %q", input, expected, got)
		}
	}
}

func TestMakeKey(t *testing.T) {
	tests := []struct {
		name     string
		team     string
		pos      Position
		expected string
	}{
		{name: "Ja'Marr Chase", team: "CIN", pos: POS_WR, expected: "JAMARR CHASE|CIN|WR"},
		{name: "Patrick Mahomes II", team: "KAN", pos: POS_QB, expected: "PATRICK MAHOMES|KC|QB"},
		{name: "Travis Etienne Jr.", team: "JAC", pos: POS_RB, expected: "TRAVIS ETIENNE|JAX|RB"},
		{name: "Terry McLaurin", team: "WAS", pos: POS_WR, expected: "TERRY MCLAURIN|WSH|WR"},
		// Defenses anchor on the franchise no matter which field carried it.
		{name: "Cowboys D/ST", team: "", pos: POS_DST, expected: "DALLAS COWBOYS|DAL|D/ST"},
		{name: "Jacksonville Jaguars", team: "", pos: "DEF", expected: "JACKSONVILLE JAGUARS|JAX|D/ST"},
		{name: "anything", team: "DAL", pos: "DST", expected: "DALLAS COWBOYS|DAL|D/ST"},
		// Unknown franchise falls back to the plain key.
		{name: "Galaxy D/ST", team: "XYZ", pos: POS_DST, expected: "GALAXY D ST|XYZ|D/ST"},
	}

	for _, tc := range tests {
		if got := MakeKey(tc.name, tc.team, tc.pos); got != tc.expected {
			t.Errorf("MakeKey(%q, %q, %q) expected %q, got %q", tc.name, tc.team, tc.pos, tc.expected, got)
		}
	}
}
