package espn

// View payloads. ESPN serves one JSON document per league parameterized by
// ?view=; every field here is optional in practice, so readers must treat
// zero values as absent.

type leaguePayload struct {
	ID       int               `json:"id"`
	Settings *leagueSetting    `json:"settings"`
	Members  []leagueMember    `json:"members"`
	Teams    []espnTeam        `json:"teams"`
	Schedule []matchupEntry    `json:"schedule"`
	Status   *leagueStatus     `json:"status"`
	Players  []playerInfoEntry `json:"players"`
}

type leagueSetting struct {
	Name             string            `json:"name"`
	Size             int               `json:"size"`
	ScoringSettings  map[string]any    `json:"scoringSettings"`
	ScheduleSettings *scheduleSettings `json:"scheduleSettings"`
}

type scheduleSettings struct {
	MatchupPeriodCount int `json:"matchupPeriodCount"`
}

type leagueStatus struct {
	CurrentMatchupPeriod int `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int `json:"finalScoringPeriod"`
}

type leagueMember struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

type espnTeam struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Location string      `json:"location"`
	Nickname string      `json:"nickname"`
	Abbrev   string      `json:"abbrev"`
	Logo     string      `json:"logo"`
	Owners   []string    `json:"owners"`
	Record   *teamRecord `json:"record"`
	Roster   *teamRoster `json:"roster"`
}

type teamRecord struct {
	Overall *recordSplit `json:"overall"`
}

type recordSplit struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

type teamRoster struct {
	Entries []rosterEntry `json:"entries"`
}

type rosterEntry struct {
	PlayerID     int          `json:"playerId"`
	LineupSlotID int          `json:"lineupSlotId"`
	PlayerPool   *poolEntry   `json:"playerPoolEntry"`
	InjuryStatus string       `json:"injuryStatus"`
	Player       *espnPlayer  `json:"player"`
}

type poolEntry struct {
	Player *espnPlayer `json:"player"`
}

type espnPlayer struct {
	ID                int     `json:"id"`
	FullName          string  `json:"fullName"`
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	DefaultPositionID int     `json:"defaultPositionId"`
	ProTeamID         int     `json:"proTeamId"`
	InjuryStatus      string  `json:"injuryStatus"`
	Injured           bool    `json:"injured"`
}

// matchupEntry is one schedule tuple from mSchedule / mMatchupScore /
// mBoxscore. The points live in different fields depending on the view and
// the point of the week; see sidePoints.
type matchupEntry struct {
	ID             int          `json:"id"`
	MatchupPeriod  int          `json:"matchupPeriodId"`
	Home           *matchupSide `json:"home"`
	Away           *matchupSide `json:"away"`
}

type matchupSide struct {
	TeamID          int              `json:"teamId"`
	TotalPoints     *float64         `json:"totalPoints"`
	Points          *float64         `json:"points"`
	Total           *float64         `json:"total"`
	CumulativeScore *cumulativeScore `json:"cumulativeScore"`
	RosterForWeek   *scoringRoster   `json:"rosterForCurrentScoringPeriod"`
}

type cumulativeScore struct {
	Score *float64 `json:"score"`
}

type scoringRoster struct {
	AppliedStatTotal *float64 `json:"appliedStatTotal"`
	AppliedTotal     *float64 `json:"appliedTotal"`
}

// points resolves the first finite value in the view-dependent preference
// order. ok is false when no field carried a usable number.
func (s *matchupSide) points() (float64, bool) {
	candidates := []*float64{s.TotalPoints, s.Points, s.Total}
	if s.CumulativeScore != nil {
		candidates = append(candidates, s.CumulativeScore.Score)
	}
	if s.RosterForWeek != nil {
		candidates = append(candidates, s.RosterForWeek.AppliedStatTotal, s.RosterForWeek.AppliedTotal)
	}
	for _, c := range candidates {
		if c != nil {
			return *c, true
		}
	}
	return 0, false
}

// kona_player_info entry.
type playerInfoEntry struct {
	ID     int         `json:"id"`
	Player *espnPlayer `json:"player"`
}

// Fan API: the user's league participation across fantasy games.
type fanPayload struct {
	Preferences []fanPreference `json:"preferences"`
}

type fanPreference struct {
	ID       string    `json:"id"`
	Metadata *fanEntry `json:"metaData"`
}

type fanEntry struct {
	Entry *fanEntryDetail `json:"entry"`
}

type fanEntryDetail struct {
	EntryID       int           `json:"entryId"`
	EntryMetadata *entryMeta    `json:"entryMetadata"`
	Groups        []fanGroup    `json:"groups"`
	EntryLocation string        `json:"entryLocation"`
	EntryNickname string        `json:"entryNickname"`
	Logo          string        `json:"logoUrl"`
}

type entryMeta struct {
	TeamName string `json:"teamName"`
}

type fanGroup struct {
	GroupID   int    `json:"groupId"`
	GroupName string `json:"groupName"`
	GroupSize int    `json:"groupSize"`
	Href      string `json:"href"`
}

// NFL scoreboard (site API), used for real-team opponent resolution.
type scoreboardPayload struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	Competitions []scoreboardCompetition `json:"competitions"`
}

type scoreboardCompetition struct {
	Competitors []scoreboardCompetitor `json:"competitors"`
}

type scoreboardCompetitor struct {
	HomeAway string          `json:"homeAway"`
	Team     *scoreboardTeam `json:"team"`
}

type scoreboardTeam struct {
	Abbreviation string `json:"abbreviation"`
}
