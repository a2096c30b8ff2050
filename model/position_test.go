package model

import "testing"

func TestParsePosition(t *testing.T) {
	tests := map[string]Position{
		"QB":      POS_QB,
		"qb":      POS_QB,
		" rb ":    POS_RB,
		"DEF":     POS_DST,
		"D":       POS_DST,
		"DST":     POS_DST,
		"D/ST":    POS_DST,
		"DST/DEF": POS_DST,
		"PK":      POS_K,
		"K":       POS_K,
		"FLEX":    Position("FLEX"),
	}

	for input, expected := range tests {
		if got := ParsePosition(input); got != expected {
			t.Errorf("ParsePosition(%q) expected %q, got %q", input, expected, got)
		}
	}
}

func TestDefaultRankPositions(t *testing.T) {
	expected := []Position{POS_QB, POS_RB, POS_WR, POS_TE, POS_K, POS_DST}
	if len(DefaultRankPositions) != len(expected) {
		t.Fatalf("expected %d positions, got %d", len(expected), len(DefaultRankPositions))
	}
	for i, pos := range expected {
		if DefaultRankPositions[i] != pos {
			t.Errorf("position %d expected %q, got %q", i, pos, DefaultRankPositions[i])
		}
	}
}
