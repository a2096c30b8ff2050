package model

import "testing"

func TestParseTeamAbbr(t *testing.T) {
	tests := map[string]string{
		"JAC": "JAX",
		"WAS": "WSH",
		"SD":  "LAC",
		"OAK": "LV",
		"LA":  "LAR",
		"STL": "LAR",
		"NOR": "NO",
		"GNB": "GB",
		"KAN": "KC",
		"TAM": "TB",
		"kc":  "KC",
		"PHI": "PHI",
		"ZZZ": "ZZZ",
		"":    "",
	}

	for input, expected := range tests {
		if got := ParseTeamAbbr(input); got != expected {
			t.Errorf("ParseTeamAbbr(%q) expected %q, got %q", input, expected, got)
		}
	}
}

func TestLookupTeam(t *testing.T) {
	tests := []struct {
		input    string
		expected *NFLTeam
	}{
		{input: "JAX", expected: TEAM_JAX},
		{input: "jac", expected: TEAM_JAX},
		{input: "Jaguars", expected: TEAM_JAX},
		{input: "Jacksonville Jaguars", expected: TEAM_JAX},
		{input: "Jacksonville", expected: TEAM_JAX},
		{input: "Commanders", expected: TEAM_WSH},
		// Ambiguous locations are not resolvable.
		{input: "New York", expected: nil},
		{input: "Los Angeles", expected: nil},
		{input: "Mars", expected: nil},
	}

	for _, tc := range tests {
		if got := LookupTeam(tc.input); got != tc.expected {
			t.Errorf("LookupTeam(%q) expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}

func TestFullName(t *testing.T) {
	if got := TEAM_GB.FullName(); got != "Green Bay Packers" {
		t.Errorf("expected 'Green Bay Packers', got %q", got)
	}
	if got := TEAM_WSH.String(); got != "WSH" {
		t.Errorf("expected 'WSH', got %q", got)
	}
}

func TestAllTeams(t *testing.T) {
	if len(AllTeams()) != 32 {
		t.Errorf("expected 32 teams, got %d", len(AllTeams()))
	}
}
