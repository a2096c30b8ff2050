package mockcontroller

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/controller"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/espn"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/rankcache"
)

type C struct {
	mock.Mock
}

func (c *C) ResolveESPNCredentials(ctx context.Context, season int, leagueID string, auth controller.ESPNAuth) (espn.Credentials, model.CredentialSource) {
	args := c.Called(ctx, season, leagueID, auth)
	return args.Get(0).(espn.Credentials), args.Get(1).(model.CredentialSource)
}

func (c *C) LinkESPNCredential(ctx context.Context, swid, s2, memberID string) error {
	args := c.Called(ctx, swid, s2, memberID)
	return args.Error(0)
}

func (c *C) GetESPNLinkStatus(ctx context.Context, memberID string) (*controller.LinkStatus, error) {
	args := c.Called(ctx, memberID)

	var status *controller.LinkStatus
	if args.Get(0) != nil {
		status = args.Get(0).(*controller.LinkStatus)
	}
	return status, args.Error(1)
}

func (c *C) GetESPNLeagues(ctx context.Context, auth controller.ESPNAuth, season, gameID int) ([]model.League, model.CredentialSource, error) {
	args := c.Called(ctx, auth, season, gameID)

	var leagues []model.League
	if args.Get(0) != nil {
		leagues = args.Get(0).([]model.League)
	}
	return leagues, args.Get(1).(model.CredentialSource), args.Error(2)
}

func (c *C) GetESPNTeams(ctx context.Context, auth controller.ESPNAuth, leagueID string, season int) ([]model.Team, []string, error) {
	args := c.Called(ctx, auth, leagueID, season)

	var teams []model.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]model.Team)
	}
	var upstream []string
	if args.Get(1) != nil {
		upstream = args.Get(1).([]string)
	}
	return teams, upstream, args.Error(2)
}

func (c *C) GetESPNLeagueTeams(ctx context.Context, auth controller.ESPNAuth, leagueID string, season int, includeRosters bool) ([]model.TeamRoster, bool, error) {
	args := c.Called(ctx, auth, leagueID, season, includeRosters)

	var rosters []model.TeamRoster
	if args.Get(0) != nil {
		rosters = args.Get(0).([]model.TeamRoster)
	}
	return rosters, args.Bool(1), args.Error(2)
}

func (c *C) GetESPNRoster(ctx context.Context, auth controller.ESPNAuth, leagueID string, teamID, season, week int) (*model.TeamRoster, error) {
	args := c.Called(ctx, auth, leagueID, teamID, season, week)

	var roster *model.TeamRoster
	if args.Get(0) != nil {
		roster = args.Get(0).(*model.TeamRoster)
	}
	return roster, args.Error(1)
}

func (c *C) GetESPNLeagueRosters(ctx context.Context, auth controller.ESPNAuth, leagueID string, season, week int) ([]model.TeamRoster, error) {
	args := c.Called(ctx, auth, leagueID, season, week)

	var rosters []model.TeamRoster
	if args.Get(0) != nil {
		rosters = args.Get(0).([]model.TeamRoster)
	}
	return rosters, args.Error(1)
}

func (c *C) GetESPNWeeklyPoints(ctx context.Context, auth controller.ESPNAuth, leagueID string, season, week int) (map[int]float64, error) {
	args := c.Called(ctx, auth, leagueID, season, week)

	var points map[int]float64
	if args.Get(0) != nil {
		points = args.Get(0).(map[int]float64)
	}
	return points, args.Error(1)
}

func (c *C) SearchESPNPlayers(ctx context.Context, auth controller.ESPNAuth, leagueID string, season int, q string, limit int) ([]model.Player, error) {
	args := c.Called(ctx, auth, leagueID, season, q, limit)

	var players []model.Player
	if args.Get(0) != nil {
		players = args.Get(0).([]model.Player)
	}
	return players, args.Error(1)
}

func (c *C) GetOpponentSchedule(ctx context.Context, auth controller.ESPNAuth, leagueID string, teamID, season int) ([]controller.OpponentWeek, error) {
	args := c.Called(ctx, auth, leagueID, teamID, season)

	var sched []controller.OpponentWeek
	if args.Get(0) != nil {
		sched = args.Get(0).([]controller.OpponentWeek)
	}
	return sched, args.Error(1)
}

func (c *C) GetNFLOpponent(ctx context.Context, season, week int, teamAbbr string) (string, string, error) {
	args := c.Called(ctx, season, week, teamAbbr)
	return args.String(0), args.String(1), args.Error(2)
}

func (c *C) GetSleeperLeagues(ctx context.Context, userOrName string, season int) (string, []model.League, error) {
	args := c.Called(ctx, userOrName, season)

	var leagues []model.League
	if args.Get(1) != nil {
		leagues = args.Get(1).([]model.League)
	}
	return args.String(0), leagues, args.Error(2)
}

func (c *C) GetSleeperLeagueRosters(ctx context.Context, leagueID string, season int, includePlayers bool) ([]model.TeamRoster, error) {
	args := c.Called(ctx, leagueID, season, includePlayers)

	var rosters []model.TeamRoster
	if args.Get(0) != nil {
		rosters = args.Get(0).([]model.TeamRoster)
	}
	return rosters, args.Error(1)
}

func (c *C) GetSleeperPlayers(ctx context.Context, slim bool) (any, error) {
	args := c.Called(ctx, slim)
	return args.Get(0), args.Error(1)
}

func (c *C) SearchPlayers(ctx context.Context, platform, q string, limit int) ([]model.Player, error) {
	args := c.Called(ctx, platform, q, limit)

	var players []model.Player
	if args.Get(0) != nil {
		players = args.Get(0).([]model.Player)
	}
	return players, args.Error(1)
}

func (c *C) GetRankMap(ctx context.Context, apiKey string, season, week int, scoring, rankType string, force bool) (*rankcache.Result, error) {
	args := c.Called(ctx, apiKey, season, week, scoring, rankType, force)

	var result *rankcache.Result
	if args.Get(0) != nil {
		result = args.Get(0).(*rankcache.Result)
	}
	return result, args.Error(1)
}

func (c *C) LoadWeekPoints(ctx context.Context, apiKey string, season int, scoring string, startWeek, endWeek int) (int, error) {
	args := c.Called(ctx, apiKey, season, scoring, startWeek, endWeek)
	return args.Int(0), args.Error(1)
}

func (c *C) ApplyPointsToLeague(ctx context.Context, auth controller.ESPNAuth, req controller.ApplyRequest) (*controller.ApplyResult, error) {
	args := c.Called(ctx, auth, req)

	var result *controller.ApplyResult
	if args.Get(0) != nil {
		result = args.Get(0).(*controller.ApplyResult)
	}
	return result, args.Error(1)
}

func (c *C) GetLeaguePoints(ctx context.Context, season int, leagueID, scoring string, week int) (*controller.LeaguePoints, error) {
	args := c.Called(ctx, season, leagueID, scoring, week)

	var lp *controller.LeaguePoints
	if args.Get(0) != nil {
		lp = args.Get(0).(*controller.LeaguePoints)
	}
	return lp, args.Error(1)
}
