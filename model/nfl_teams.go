package model

import (
	"fmt"
	"strings"
)

// NFLTeam is one real NFL franchise. The name field is the canonical
// abbreviation used everywhere in the system; legacy provider abbreviations
// are folded into it by ParseTeamAbbr.
type NFLTeam struct {
	name   string
	loc    string
	mascot string
	legacy []string // older or provider-specific abbreviations, e.g. JAC for JAX
}

func (t *NFLTeam) String() string {
	return t.name
}

// FullName returns the location plus mascot, e.g. "Jacksonville Jaguars".
func (t *NFLTeam) FullName() string {
	return fmt.Sprintf("%s %s", t.loc, t.mascot)
}

var (
	// NFC
	TEAM_ARI *NFLTeam = &NFLTeam{name: "ARI", loc: "Arizona", mascot: "Cardinals"}
	TEAM_ATL *NFLTeam = &NFLTeam{name: "ATL", loc: "Atlanta", mascot: "Falcons"}
	TEAM_CAR *NFLTeam = &NFLTeam{name: "CAR", loc: "Carolina", mascot: "Panthers"}
	TEAM_CHI *NFLTeam = &NFLTeam{name: "CHI", loc: "Chicago", mascot: "Bears"}
	TEAM_DAL *NFLTeam = &NFLTeam{name: "DAL", loc: "Dallas", mascot: "Cowboys"}
	TEAM_DET *NFLTeam = &NFLTeam{name: "DET", loc: "Detroit", mascot: "Lions"}
	TEAM_GB  *NFLTeam = &NFLTeam{name: "GB", loc: "Green Bay", mascot: "Packers", legacy: []string{"GNB", "GBP"}}
	TEAM_LAR *NFLTeam = &NFLTeam{name: "LAR", loc: "Los Angeles", mascot: "Rams", legacy: []string{"LA", "STL"}}
	TEAM_MIN *NFLTeam = &NFLTeam{name: "MIN", loc: "Minnesota", mascot: "Vikings"}
	TEAM_NO  *NFLTeam = &NFLTeam{name: "NO", loc: "New Orleans", mascot: "Saints", legacy: []string{"NOR", "NOS"}}
	TEAM_NYG *NFLTeam = &NFLTeam{name: "NYG", loc: "New York", mascot: "Giants"}
	TEAM_PHI *NFLTeam = &NFLTeam{name: "PHI", loc: "Philadelphia", mascot: "Eagles"}
	TEAM_SF  *NFLTeam = &NFLTeam{name: "SF", loc: "San Francisco", mascot: "49ers", legacy: []string{"SFO"}}
	TEAM_SEA *NFLTeam = &NFLTeam{name: "SEA", loc: "Seattle", mascot: "Seahawks"}
	TEAM_TB  *NFLTeam = &NFLTeam{name: "TB", loc: "Tampa Bay", mascot: "Buccaneers", legacy: []string{"TAM", "TBB"}}
	TEAM_WSH *NFLTeam = &NFLTeam{name: "WSH", loc: "Washington", mascot: "Commanders", legacy: []string{"WAS"}}

	// AFC
	TEAM_BAL *NFLTeam = &NFLTeam{name: "BAL", loc: "Baltimore", mascot: "Ravens"}
	TEAM_BUF *NFLTeam = &NFLTeam{name: "BUF", loc: "Buffalo", mascot: "Bills"}
	TEAM_CIN *NFLTeam = &NFLTeam{name: "CIN", loc: "Cincinnati", mascot: "Bengals"}
	TEAM_CLE *NFLTeam = &NFLTeam{name: "CLE", loc: "Cleveland", mascot: "Browns"}
	TEAM_DEN *NFLTeam = &NFLTeam{name: "DEN", loc: "Denver", mascot: "Broncos"}
	TEAM_HOU *NFLTeam = &NFLTeam{name: "HOU", loc: "Houston", mascot: "Texans"}
	TEAM_IND *NFLTeam = &NFLTeam{name: "IND", loc: "Indianapolis", mascot: "Colts"}
	TEAM_JAX *NFLTeam = &NFLTeam{name: "JAX", loc: "Jacksonville", mascot: "Jaguars", legacy: []string{"JAC"}}
	TEAM_KC  *NFLTeam = &NFLTeam{name: "KC", loc: "Kansas City", mascot: "Chiefs", legacy: []string{"KAN", "KCC"}}
	TEAM_LV  *NFLTeam = &NFLTeam{name: "LV", loc: "Las Vegas", mascot: "Raiders", legacy: []string{"OAK", "LVR"}}
	TEAM_LAC *NFLTeam = &NFLTeam{name: "LAC", loc: "Los Angeles", mascot: "Chargers", legacy: []string{"SD", "SDG"}}
	TEAM_MIA *NFLTeam = &NFLTeam{name: "MIA", loc: "Miami", mascot: "Dolphins"}
	TEAM_NE  *NFLTeam = &NFLTeam{name: "NE", loc: "New England", mascot: "Patriots", legacy: []string{"NEP"}}
	TEAM_NYJ *NFLTeam = &NFLTeam{name: "NYJ", loc: "New York", mascot: "Jets"}
	TEAM_PIT *NFLTeam = &NFLTeam{name: "PIT", loc: "Pittsburgh", mascot: "Steelers"}
	TEAM_TEN *NFLTeam = &NFLTeam{name: "TEN", loc: "Tennessee", mascot: "Titans"}

	allTeams = []*NFLTeam{
		// NFC
		TEAM_ARI, TEAM_ATL, TEAM_CAR, TEAM_CHI, TEAM_DAL, TEAM_DET, TEAM_GB, TEAM_LAR,
		TEAM_MIN, TEAM_NO, TEAM_NYG, TEAM_PHI, TEAM_SF, TEAM_SEA, TEAM_TB, TEAM_WSH,
		// AFC
		TEAM_BAL, TEAM_BUF, TEAM_CIN, TEAM_CLE, TEAM_DEN, TEAM_HOU, TEAM_IND, TEAM_JAX,
		TEAM_KC, TEAM_LV, TEAM_LAC, TEAM_MIA, TEAM_NE, TEAM_NYJ, TEAM_PIT, TEAM_TEN,
	}

	teamMap map[string]*NFLTeam = buildTeamMap()
)

// AllTeams returns the 32 NFL franchises.
func AllTeams() []*NFLTeam {
	return allTeams
}

// LookupTeam finds a team by abbreviation (current or legacy), location,
// mascot, or full name. Returns nil when nothing matches.
func LookupTeam(name string) *NFLTeam {
	return teamMap[strings.ToLower(strings.TrimSpace(name))]
}

// ParseTeamAbbr canonicalizes an NFL team abbreviation. Legacy provider
// abbreviations (JAC, WAS, SD, OAK, LA, STL, ...) fold into the current
// ones. Unknown strings come back upper-cased and untouched; an empty
// string stays empty.
func ParseTeamAbbr(abbr string) string {
	a := strings.ToUpper(strings.TrimSpace(abbr))
	if a == "" {
		return ""
	}
	if t := teamMap[strings.ToLower(a)]; t != nil {
		return t.name
	}
	return a
}

func buildTeamMap() map[string]*NFLTeam {
	m := make(map[string]*NFLTeam)
	for _, t := range allTeams {
		m[strings.ToLower(t.name)] = t
		m[strings.ToLower(t.mascot)] = t
		m[strings.ToLower(t.FullName())] = t
		for _, l := range t.legacy {
			m[strings.ToLower(l)] = t
		}
	}
	// Locations second so that "New York" and "Los Angeles" do not clobber
	// an abbreviation; the ambiguous ones are simply left out.
	for _, t := range allTeams {
		key := strings.ToLower(t.loc)
		if _, ok := m[key]; !ok {
			m[key] = t
		} else if m[key] != t {
			delete(m, key)
		}
	}
	return m
}
