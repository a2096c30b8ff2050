package model

var (
	PlatformESPN    = "espn"
	PlatformSleeper = "sleeper"
)

func IsPlatformSupported(platform string) bool {
	return platform == PlatformESPN || platform == PlatformSleeper
}

// League is the platform-agnostic league shape. Leagues are produced on
// demand from provider payloads and never persisted.
type League struct {
	Platform   string            `json:"platform"`
	LeagueID   string            `json:"leagueId"`
	Season     int               `json:"season"`
	LeagueName string            `json:"leagueName"`
	Size       int               `json:"size"`
	Scoring    map[string]any    `json:"scoring,omitempty"`
	URLs       map[string]string `json:"urls,omitempty"`
}

// Team is one fantasy team inside a league. Owners maps external owner ids
// to display names for the whole league, so callers can resolve co-owners
// without another fetch.
type Team struct {
	TeamID   int               `json:"teamId"`
	TeamName string            `json:"teamName"`
	Owner    string            `json:"owner"`
	Owners   []string          `json:"owners,omitempty"`
	Logo     *string           `json:"logo"`
	Record   string            `json:"record,omitempty"`
	OwnerMap map[string]string `json:"-"`
}

// TeamRoster pairs a team with its normalized roster for one week.
type TeamRoster struct {
	Team    Team     `json:"team"`
	Players []Player `json:"players,omitempty"`
}
