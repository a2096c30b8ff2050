package model

import "time"

// SeasonTotalWeek is the sentinel week under which a team's season total is
// stored in weekly_points. The schema has no separate season-total key, so
// week 1 is overloaded; literal matchup weeks start at 2.
const SeasonTotalWeek = 1

// RosterSnapshot is the persisted roster for one (season, league, team,
// week): ordered starters followed by the bench.
type RosterSnapshot struct {
	Season   int      `json:"season"`
	LeagueID string   `json:"leagueId"`
	TeamID   int      `json:"teamId"`
	Week     int      `json:"week"`
	TeamName string   `json:"teamName"`
	Starters []string `json:"starters"`
	Bench    []string `json:"bench"`
}

// PointsRow is one row of weekly_points.
type PointsRow struct {
	Season   int       `json:"season"`
	LeagueID string    `json:"leagueId"`
	TeamID   int       `json:"teamId"`
	Week     int       `json:"week"`
	Scoring  string    `json:"scoring"`
	Points   float64   `json:"points"`
	Starters []string  `json:"starters,omitempty"`
	TeamName string    `json:"teamName"`
	Updated  time.Time `json:"updated"`
}

// PointsCacheRow is the denormalized latest-week row per (season, league,
// team, scoring).
type PointsCacheRow struct {
	Season    int       `json:"season"`
	LeagueID  string    `json:"leagueId"`
	TeamID    int       `json:"teamId"`
	Scoring   string    `json:"scoring"`
	Week      int       `json:"week"`
	WeekPts   float64   `json:"weekPts"`
	SeasonPts float64   `json:"seasonPts"`
	TeamName  string    `json:"teamName"`
	Updated   time.Time `json:"updated"`
}

// FPPointsRow is one staged row of external per-player weekly points.
type FPPointsRow struct {
	Season   int     `json:"season"`
	Week     int     `json:"week"`
	Scoring  string  `json:"scoring"`
	PlayerID string  `json:"fpId"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	TeamAbbr string  `json:"team"`
	Points   float64 `json:"points"`
}

// LeagueTeamRow is one row of the persisted league roster table
// (sport_ffl); it records which member owns which team in which league.
type LeagueTeamRow struct {
	Season   int    `json:"season"`
	LeagueID string `json:"leagueId"`
	TeamID   int    `json:"teamId"`
	MemberID string `json:"memberId,omitempty"`
	TeamName string `json:"teamName,omitempty"`
	Platform string `json:"platform,omitempty"`
}
