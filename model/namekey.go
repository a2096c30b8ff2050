package model

import (
	"regexp"
	"strings"
)

// A rank map and the roster indexes are joined on a canonical
// "NAME|TEAM|POSITION" key. Everything that produces or consumes one of
// those keys must go through MakeKey so that the two sides agree.

var (
	suffixRegex    = regexp.MustCompile(`(?i)\s+(jr|sr|ii|iii|iv|v)\.?$`)
	nonLetterRegex = regexp.MustCompile(`[^A-Za-z ]+`)
	spaceRegex     = regexp.MustCompile(`\s+`)
)

// CanonName upper-cases a player name, strips a trailing generational
// suffix, drops punctuation, collapses whitespace, and folds known synonym
// spellings (D.J. Moore / DJ Moore, Ja'Marr / Jamarr, ...) into one form.
func CanonName(name string) string {
	n := suffixRegex.ReplaceAllString(strings.TrimSpace(name), "")
	n = nonLetterRegex.ReplaceAllString(n, " ")
	n = spaceRegex.ReplaceAllString(n, " ")
	n = strings.ToUpper(strings.TrimSpace(n))
	if canon, ok := nameSynonyms[n]; ok {
		return canon
	}
	return n
}

// MakeKey builds the canonical join key for a player record. D/ST entries
// are team-anchored: the name part becomes the full franchise name and the
// team part the canonical abbreviation, no matter which of the two fields
// carried the team.
func MakeKey(name, team string, pos Position) string {
	p := ParsePosition(string(pos))
	t := ParseTeamAbbr(team)

	if p == POS_DST {
		nt := LookupTeam(t)
		if nt == nil {
			// Defensive rows often carry the team in the name field,
			// e.g. "Jaguars D/ST" or "Jacksonville Jaguars".
			trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), "D/ST"))
			nt = LookupTeam(trimmed)
		}
		if nt != nil {
			return strings.ToUpper(nt.FullName()) + "|" + nt.String() + "|" + string(POS_DST)
		}
	}

	return CanonName(name) + "|" + t + "|" + string(p)
}

// nameSynonyms maps every non-canonical spelling in an equivalence class to
// the class's canonical form. Built once from synonymClasses.
var nameSynonyms = buildSynonyms()

// synonymClasses lists spellings that refer to the same player. The first
// entry of each class is canonical. Entries are compared after the regular
// canonicalization pass, so they are written upper-case with punctuation
// already stripped.
var synonymClasses = [][]string{
	{"PATRICK MAHOMES", "PATRICK MAHOMES II"},
	{"DJ MOORE", "D J MOORE"},
	{"DK METCALF", "D K METCALF"},
	{"AJ BROWN", "A J BROWN"},
	{"AJ DILLON", "A J DILLON"},
	{"TJ HOCKENSON", "T J HOCKENSON"},
	{"CJ STROUD", "C J STROUD"},
	{"JAMARR CHASE", "JA MARR CHASE"},
	{"JUJU SMITH SCHUSTER", "JU JU SMITH SCHUSTER"},
	{"KENNETH WALKER", "KENNETH WALKER III"},
	{"MARQUISE BROWN", "HOLLYWOOD BROWN"},
	{"GABE DAVIS", "GABRIEL DAVIS"},
	{"JOSH PALMER", "JOSHUA PALMER"},
}

func buildSynonyms() map[string]string {
	m := make(map[string]string)
	for _, class := range synonymClasses {
		canon := class[0]
		for _, alias := range class[1:] {
			m[alias] = canon
		}
	}
	return m
}
