package controller

import (
	"context"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

type espnAdapter struct {
	c *controller
}

func (a *espnAdapter) getLeagueRosters(ctx context.Context, auth ESPNAuth, leagueID string, season, week int) ([]model.TeamRoster, error) {
	return a.c.GetESPNLeagueRosters(ctx, auth, leagueID, season, week)
}

type sleeperAdapter struct {
	c *controller
}

func (a *sleeperAdapter) getLeagueRosters(ctx context.Context, auth ESPNAuth, leagueID string, season, week int) ([]model.TeamRoster, error) {
	return a.c.GetSleeperLeagueRosters(ctx, leagueID, season, true)
}
