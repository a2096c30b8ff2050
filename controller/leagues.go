package controller

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/espn"
)

func (c *controller) GetESPNLeagues(ctx context.Context, auth ESPNAuth, season, gameID int) ([]model.League, model.CredentialSource, error) {
	creds, source := c.ResolveESPNCredentials(ctx, season, "", auth)
	if creds.Empty() {
		return nil, source, espn.ErrAuthRequired
	}

	leagues, err := c.espn.FanLeagues(ctx, creds, creds.SWID, season, gameID)
	if err != nil {
		return nil, source, err
	}
	return leagues, source, nil
}

func (c *controller) GetESPNTeams(ctx context.Context, auth ESPNAuth, leagueID string, season int) ([]model.Team, []string, error) {
	creds, _ := c.ResolveESPNCredentials(ctx, season, leagueID, auth)
	teams, upstream, err := c.espn.GetTeams(ctx, creds, leagueID, season)
	if err != nil {
		return nil, upstream, err
	}

	c.persistLeagueTeams(ctx, auth, leagueID, season, teams)
	return teams, upstream, nil
}

// GetESPNLeagueTeams returns the teams plus, when the caller can see them
// and asked for them, every roster. The second return reports whether the
// resolved credential was good enough to view rosters.
func (c *controller) GetESPNLeagueTeams(ctx context.Context, auth ESPNAuth, leagueID string, season int, includeRosters bool) ([]model.TeamRoster, bool, error) {
	creds, _ := c.ResolveESPNCredentials(ctx, season, leagueID, auth)

	if !includeRosters || creds.Empty() {
		teams, _, err := c.espn.GetTeams(ctx, creds, leagueID, season)
		if err != nil {
			return nil, false, err
		}
		result := make([]model.TeamRoster, 0, len(teams))
		for _, t := range teams {
			result = append(result, model.TeamRoster{Team: t})
		}
		c.persistLeagueTeams(ctx, auth, leagueID, season, teams)
		return result, false, nil
	}

	rosters, err := c.espn.GetLeagueRosters(ctx, creds, leagueID, season, 0)
	if err != nil {
		if errors.Is(err, espn.ErrAuthRequired) {
			// Degrade to the public team list.
			teams, _, terr := c.espn.GetTeams(ctx, espn.Credentials{}, leagueID, season)
			if terr != nil {
				return nil, false, err
			}
			result := make([]model.TeamRoster, 0, len(teams))
			for _, t := range teams {
				result = append(result, model.TeamRoster{Team: t})
			}
			return result, false, nil
		}
		return nil, false, err
	}
	return rosters, true, nil
}

func (c *controller) GetESPNRoster(ctx context.Context, auth ESPNAuth, leagueID string, teamID, season, week int) (*model.TeamRoster, error) {
	creds, _ := c.ResolveESPNCredentials(ctx, season, leagueID, auth)
	if creds.Empty() {
		// The team's registered owner may have linked a credential even
		// when no league peer has been seen recently.
		candidates, err := c.db.ResolveForTeam(ctx, season, leagueID, teamID)
		if err != nil {
			log.Printf("error resolving owner credentials for %s/%d: %v", leagueID, teamID, err)
		} else if len(candidates) > 0 {
			creds = espn.Credentials{SWID: candidates[0].SWID, S2: candidates[0].S2}
		}
	}
	return c.espn.GetRoster(ctx, creds, leagueID, season, week, teamID)
}

func (c *controller) GetESPNLeagueRosters(ctx context.Context, auth ESPNAuth, leagueID string, season, week int) ([]model.TeamRoster, error) {
	creds, _ := c.ResolveESPNCredentials(ctx, season, leagueID, auth)
	rosters, err := c.espn.GetLeagueRosters(ctx, creds, leagueID, season, week)
	if err != nil {
		return nil, err
	}

	c.persistRosterSnapshots(ctx, model.PlatformESPN, leagueID, season, week, rosters)
	return rosters, nil
}

// GetESPNWeeklyPoints reads the live ESPN-scored totals for one matchup
// period. An empty map means the week has a schedule but no points yet.
func (c *controller) GetESPNWeeklyPoints(ctx context.Context, auth ESPNAuth, leagueID string, season, week int) (map[int]float64, error) {
	creds, _ := c.ResolveESPNCredentials(ctx, season, leagueID, auth)
	return c.espn.GetWeeklyPoints(ctx, creds, leagueID, season, week)
}

// SearchESPNPlayers is league-scoped because ESPN's player info endpoint
// only answers inside a league context.
func (c *controller) SearchESPNPlayers(ctx context.Context, auth ESPNAuth, leagueID string, season int, q string, limit int) ([]model.Player, error) {
	creds, _ := c.ResolveESPNCredentials(ctx, season, leagueID, auth)
	return c.espn.SearchPlayers(ctx, creds, leagueID, season, q, limit)
}

func (c *controller) GetSleeperLeagues(ctx context.Context, userOrName string, season int) (string, []model.League, error) {
	userID, err := c.sleeper.ResolveUserID(ctx, userOrName)
	if err != nil {
		return "", nil, err
	}

	leagues, err := c.sleeper.GetLeaguesForUser(ctx, userID, season)
	if err != nil {
		return userID, nil, err
	}
	return userID, leagues, nil
}

func (c *controller) GetSleeperLeagueRosters(ctx context.Context, leagueID string, season int, includePlayers bool) ([]model.TeamRoster, error) {
	rosters, err := c.sleeper.GetLeagueRosters(ctx, leagueID, includePlayers)
	if err != nil {
		return nil, err
	}

	if includePlayers && season > 0 {
		c.persistRosterSnapshots(ctx, model.PlatformSleeper, leagueID, season, 0, rosters)
	}
	return rosters, nil
}

func (c *controller) GetSleeperPlayers(ctx context.Context, slim bool) (any, error) {
	if slim {
		return c.sleeper.SlimPlayers(ctx)
	}
	return c.sleeper.RawPlayers(ctx)
}

func (c *controller) SearchPlayers(ctx context.Context, platform, q string, limit int) ([]model.Player, error) {
	switch platform {
	case model.PlatformSleeper, "":
		slim, err := c.sleeper.SearchPlayers(ctx, q, limit)
		if err != nil {
			return nil, err
		}
		players := make([]model.Player, 0, len(slim))
		for _, p := range slim {
			players = append(players, model.Player{
				Platform: model.PlatformSleeper,
				ID:       p.ID,
				Name:     p.Name,
				Pos:      model.Position(p.Pos),
				NFLAbbr:  p.Team,
				Status:   p.Status,
				Injury:   p.Injury,
				Headshot: p.Headshot,
			})
		}
		return players, nil
	default:
		return nil, fmt.Errorf("%s is not a supported platform for player search", platform)
	}
}

// persistLeagueTeams records league membership in sport_ffl so credential
// resolution can find league peers. Failures only log; the read path must
// not break on a write problem.
func (c *controller) persistLeagueTeams(ctx context.Context, auth ESPNAuth, leagueID string, season int, teams []model.Team) {
	for _, t := range teams {
		row := &model.LeagueTeamRow{
			Season:   season,
			LeagueID: leagueID,
			TeamID:   t.TeamID,
			TeamName: t.TeamName,
			Platform: model.PlatformESPN,
		}
		if err := c.db.UpsertLeagueTeam(ctx, row); err != nil {
			log.Printf("error persisting league team %s/%d: %v", leagueID, t.TeamID, err)
			return
		}
	}
}

func (c *controller) persistRosterSnapshots(ctx context.Context, platform, leagueID string, season, week int, rosters []model.TeamRoster) {
	for _, tr := range rosters {
		if len(tr.Players) == 0 {
			continue
		}

		snap := &model.RosterSnapshot{
			Season:   season,
			LeagueID: leagueID,
			TeamID:   tr.Team.TeamID,
			Week:     week,
			TeamName: tr.Team.TeamName,
		}
		for _, p := range tr.Players {
			if p.LineupSlot == "BE" || p.LineupSlot == "IR" {
				snap.Bench = append(snap.Bench, p.ID)
			} else {
				snap.Starters = append(snap.Starters, p.ID)
			}
		}
		if err := c.db.SaveRosterSnapshot(ctx, snap); err != nil {
			log.Printf("error saving roster snapshot %s/%d week %d: %v", leagueID, tr.Team.TeamID, week, err)
			return
		}

		row := &model.LeagueTeamRow{
			Season:   season,
			LeagueID: leagueID,
			TeamID:   tr.Team.TeamID,
			TeamName: tr.Team.TeamName,
			Platform: platform,
		}
		if err := c.db.UpsertLeagueTeam(ctx, row); err != nil {
			log.Printf("error persisting league team %s/%d: %v", leagueID, tr.Team.TeamID, err)
			return
		}
	}
}
