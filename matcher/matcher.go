// Package matcher resolves external player records against a fantasy
// league's roster for one week. External ranking feeds identify players by
// fuzzy (name, team, position) tuples, sometimes with a provider id; the
// roster side carries provider-local ids and display names. The four-level
// index bridges the two.
package matcher

import (
	"sort"
	"strings"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

// Record is one player to resolve or index: who they are on the external
// side, plus (when indexing) which fantasy team holds them.
type Record struct {
	ExternalID string
	Name       string
	Team       string
	Position   model.Position
}

// RosterIndex maps player identities to fantasy team ids, in priority
// order: external id, then name|team|pos, then name|team, then name alone.
// First insert wins on every level.
type RosterIndex struct {
	byExternalID map[string]int
	byNTP        map[string]int
	byNT         map[string]int
	byN          map[string]int
}

func NewRosterIndex() *RosterIndex {
	return &RosterIndex{
		byExternalID: make(map[string]int),
		byNTP:        make(map[string]int),
		byNT:         make(map[string]int),
		byN:          make(map[string]int),
	}
}

// Add indexes one roster record for teamID. Later duplicates of any key are
// ignored so the first roster record wins.
func (idx *RosterIndex) Add(rec Record, teamID int) {
	if rec.ExternalID != "" {
		insert(idx.byExternalID, rec.ExternalID, teamID)
	}

	name, team, pos := keyParts(rec)
	if name == "" {
		return
	}

	insert(idx.byNTP, name+"|"+team+"|"+pos, teamID)
	insert(idx.byNT, name+"|"+team, teamID)
	insert(idx.byN, name, teamID)
}

// Lookup resolves a record to the owning team id. The boolean is false when
// nothing matched; Lookup never fails harder than that.
func (idx *RosterIndex) Lookup(rec Record) (int, bool) {
	if rec.ExternalID != "" {
		if teamID, ok := idx.byExternalID[rec.ExternalID]; ok {
			return teamID, true
		}
	}

	name, team, pos := keyParts(rec)
	if name == "" {
		return 0, false
	}

	if teamID, ok := idx.byNTP[name+"|"+team+"|"+pos]; ok {
		return teamID, true
	}
	if teamID, ok := idx.byNT[name+"|"+team]; ok {
		return teamID, true
	}
	if teamID, ok := idx.byN[name]; ok {
		return teamID, true
	}
	return 0, false
}

// Size returns how many distinct name keys are indexed.
func (idx *RosterIndex) Size() int {
	return len(idx.byN)
}

// Sample returns up to three keys from each level, for the zero-match
// diagnostic. Keys are sorted so the sample is deterministic.
func (idx *RosterIndex) Sample() map[string][]string {
	return map[string][]string{
		"byExternalId": sampleKeys(idx.byExternalID),
		"byNTP":        sampleKeys(idx.byNTP),
		"byNT":         sampleKeys(idx.byNT),
		"byN":          sampleKeys(idx.byN),
	}
}

// keyParts canonicalizes a record through the shared join-key rules and
// splits the result back into its name, team, and position components, so
// every index level sees the same canonical form. D/ST records end up
// anchored on the franchise name whichever field carried the team.
func keyParts(rec Record) (name, team, pos string) {
	parts := strings.SplitN(model.MakeKey(rec.Name, rec.Team, rec.Position), "|", 3)
	return parts[0], parts[1], parts[2]
}

func insert(m map[string]int, key string, teamID int) {
	if _, ok := m[key]; !ok {
		m[key] = teamID
	}
}

func sampleKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Map range order is random; sort before truncating.
	sort.Strings(keys)
	if len(keys) > 3 {
		keys = keys[:3]
	}
	return keys
}
