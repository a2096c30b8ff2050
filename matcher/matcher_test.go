package matcher

import (
	"testing"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

func TestLookupPriority(t *testing.T) {
	idx := NewRosterIndex()
	idx.Add(Record{ExternalID: "esp-1", Name: "Ja'Marr Chase", Team: "CIN", Position: model.POS_WR}, 4)
	idx.Add(Record{Name: "Tyler Lockett", Team: "SEA", Position: model.POS_WR}, 7)

	tests := []struct {
		name     string
		rec      Record
		expected int
		found    bool
	}{
		{
			name:     "external id short-circuits everything",
			rec:      Record{ExternalID: "esp-1", Name: "Somebody Else", Team: "GB", Position: model.POS_QB},
			expected: 4,
			found:    true,
		},
		{
			name:     "full name-team-pos match",
			rec:      Record{Name: "Jamarr Chase", Team: "CIN", Position: model.POS_WR},
			expected: 4,
			found:    true,
		},
		{
			name:     "name-team match when position disagrees",
			rec:      Record{Name: "Tyler Lockett", Team: "SEA", Position: model.POS_RB},
			expected: 7,
			found:    true,
		},
		{
			name:     "name-only match when team disagrees",
			rec:      Record{Name: "Tyler Lockett", Team: "JAC", Position: model.POS_WR},
			expected: 7,
			found:    true,
		},
		{
			name:  "no match at all",
			rec:   Record{Name: "Nobody Special", Team: "DAL", Position: model.POS_TE},
			found: false,
		},
		{
			name:  "empty record",
			rec:   Record{},
			found: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			teamID, ok := idx.Lookup(tc.rec)
			if ok != tc.found {
				t.Fatalf("expected found=%v, got %v", tc.found, ok)
			}
			if ok && teamID != tc.expected {
				t.Errorf("expected team %d, got %d", tc.expected, teamID)
			}
		})
	}
}

func TestFirstInsertWins(t *testing.T) {
	idx := NewRosterIndex()
	idx.Add(Record{ExternalID: "dup", Name: "Josh Allen", Team: "BUF", Position: model.POS_QB}, 1)
	idx.Add(Record{ExternalID: "dup", Name: "Josh Allen", Team: "JAX", Position: "LB"}, 2)

	if teamID, _ := idx.Lookup(Record{ExternalID: "dup"}); teamID != 1 {
		t.Errorf("byExternalId: expected first insert (1) to win, got %d", teamID)
	}
	if teamID, _ := idx.Lookup(Record{Name: "Josh Allen", Team: "NE", Position: model.POS_K}); teamID != 1 {
		t.Errorf("byN: expected first insert (1) to win, got %d", teamID)
	}
}

func TestLegacyTeamAbbreviationsJoin(t *testing.T) {
	idx := NewRosterIndex()
	idx.Add(Record{Name: "Travis Etienne", Team: "JAX", Position: model.POS_RB}, 3)

	// The external side often carries the legacy abbreviation.
	if teamID, ok := idx.Lookup(Record{Name: "Travis Etienne Jr.", Team: "JAC", Position: model.POS_RB}); !ok || teamID != 3 {
		t.Errorf("expected (3, true), got (%d, %v)", teamID, ok)
	}
}

func TestDefenseJoinsAcrossSpellings(t *testing.T) {
	idx := NewRosterIndex()
	// The fantasy side labels the defense with the mascot spelling while
	// the ranking feed uses the full franchise name. Both anchor on the
	// franchise, so they resolve to the same team.
	idx.Add(Record{Name: "Cowboys D/ST", Team: "DAL", Position: model.POS_DST}, 5)

	tests := []struct {
		name string
		rec  Record
	}{
		{
			name: "franchise name with DST spelling",
			rec:  Record{Name: "Dallas Cowboys", Team: "DAL", Position: "DST"},
		},
		{
			name: "franchise name with DEF spelling",
			rec:  Record{Name: "Dallas Cowboys", Team: "DAL", Position: "DEF"},
		},
		{
			name: "team carried only in the name field",
			rec:  Record{Name: "Cowboys D/ST", Position: model.POS_DST},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			teamID, ok := idx.Lookup(tc.rec)
			if !ok || teamID != 5 {
				t.Errorf("expected (5, true), got (%d, %v)", teamID, ok)
			}
		})
	}
}

func TestDefensesStayTeamDistinct(t *testing.T) {
	idx := NewRosterIndex()
	idx.Add(Record{Name: "Cowboys D/ST", Team: "DAL", Position: model.POS_DST}, 1)
	idx.Add(Record{Name: "Giants D/ST", Team: "NYG", Position: model.POS_DST}, 2)

	if teamID, ok := idx.Lookup(Record{Name: "New York Giants", Team: "NYG", Position: "DST"}); !ok || teamID != 2 {
		t.Errorf("expected (2, true), got (%d, %v)", teamID, ok)
	}
}

func TestSize(t *testing.T) {
	idx := NewRosterIndex()
	if idx.Size() != 0 {
		t.Errorf("expected empty index, got size %d", idx.Size())
	}

	idx.Add(Record{Name: "Player One", Team: "KC", Position: model.POS_WR}, 1)
	idx.Add(Record{Name: "Player Two", Team: "KC", Position: model.POS_WR}, 1)
	idx.Add(Record{Name: "Player One", Team: "DAL", Position: model.POS_RB}, 2)

	if idx.Size() != 2 {
		t.Errorf("expected 2 distinct names, got %d", idx.Size())
	}
}

func TestSample(t *testing.T) {
	idx := NewRosterIndex()
	for _, name := range []string{"Delta Player", "Alpha Player", "Charlie Player", "Bravo Player", "Echo Player"} {
		idx.Add(Record{Name: name, Team: "KC", Position: model.POS_WR}, 1)
	}

	sample := idx.Sample()
	byN := sample["byN"]
	if len(byN) != 3 {
		t.Fatalf("expected 3 sampled keys, got %d", len(byN))
	}
	expected := []string{"ALPHA PLAYER", "BRAVO PLAYER", "CHARLIE PLAYER"}
	for i, k := range expected {
		if byN[i] != k {
			t.Errorf("sample key %d expected %q, got %q", i, k, byN[i])
		}
	}
	if len(sample["byExternalId"]) != 0 {
		t.Errorf("expected no external id keys, got %v", sample["byExternalId"])
	}
}
