package controller

import (
	"context"
	"fmt"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/espn"
)

// OpponentWeek is one entry of a fantasy team's matchup schedule.
type OpponentWeek struct {
	Week             int    `json:"week"`
	OpponentTeamID   int    `json:"opponentTeamId"`
	OpponentTeamName string `json:"opponentTeamName,omitempty"`
}

// GetOpponentSchedule lists a fantasy team's opponent for every matchup
// period. Weeks come from league settings, defaulting to 14; a week the
// team is not scheduled gets opponent id 0.
func (c *controller) GetOpponentSchedule(ctx context.Context, auth ESPNAuth, leagueID string, teamID, season int) ([]OpponentWeek, error) {
	creds, _ := c.ResolveESPNCredentials(ctx, season, leagueID, auth)
	if creds.Empty() {
		return nil, espn.ErrAuthRequired
	}

	schedule, weeks, err := c.espn.GetMatchupSchedule(ctx, creds, leagueID, season)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string)
	if teams, _, err := c.espn.GetTeams(ctx, creds, leagueID, season); err == nil {
		for _, t := range teams {
			names[t.TeamID] = t.TeamName
		}
	}

	result := make([]OpponentWeek, 0, weeks)
	for week := 1; week <= weeks; week++ {
		entry := OpponentWeek{Week: week}
		if opp, ok := schedule[week][teamID]; ok {
			entry.OpponentTeamID = opp
			entry.OpponentTeamName = names[opp]
		}
		result = append(result, entry)
	}
	return result, nil
}

// GetNFLOpponent resolves a real NFL team's opponent for one week from the
// league scoreboard. Returns the canonicalized team abbreviation plus
// "BYE" when the team is not scheduled.
func (c *controller) GetNFLOpponent(ctx context.Context, season, week int, teamAbbr string) (string, string, error) {
	abbr := model.ParseTeamAbbr(teamAbbr)
	if model.LookupTeam(abbr) == nil {
		return abbr, "", fmt.Errorf("unknown NFL team: %s", teamAbbr)
	}

	opponents, err := c.espn.Opponents(ctx, season, week)
	if err != nil {
		return abbr, "", err
	}

	opp, ok := opponents[abbr]
	if !ok {
		return abbr, "BYE", nil
	}
	return abbr, opp, nil
}
