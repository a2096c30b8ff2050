package controller

import (
	"context"
	"fmt"

	"github.com/itbasis/go-clock"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/db"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/espn"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/fantasypros"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/sleeper"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/rankcache"
)

// ESPNAuth carries what the request knows about the caller: explicit
// cookies or headers when present, plus the viewer's member id for the
// credential-resolution policy.
type ESPNAuth struct {
	Creds          espn.Credentials
	ViewerMemberID string
}

// C encapsulates business logic without worrying about any web layers.
type C interface {
	// Credential store.
	ResolveESPNCredentials(ctx context.Context, season int, leagueID string, auth ESPNAuth) (espn.Credentials, model.CredentialSource)
	LinkESPNCredential(ctx context.Context, swid, s2, memberID string) error
	GetESPNLinkStatus(ctx context.Context, memberID string) (*LinkStatus, error)

	// ESPN surface.
	GetESPNLeagues(ctx context.Context, auth ESPNAuth, season, gameID int) ([]model.League, model.CredentialSource, error)
	GetESPNTeams(ctx context.Context, auth ESPNAuth, leagueID string, season int) ([]model.Team, []string, error)
	GetESPNLeagueTeams(ctx context.Context, auth ESPNAuth, leagueID string, season int, includeRosters bool) ([]model.TeamRoster, bool, error)
	GetESPNRoster(ctx context.Context, auth ESPNAuth, leagueID string, teamID, season, week int) (*model.TeamRoster, error)
	GetESPNLeagueRosters(ctx context.Context, auth ESPNAuth, leagueID string, season, week int) ([]model.TeamRoster, error)
	GetESPNWeeklyPoints(ctx context.Context, auth ESPNAuth, leagueID string, season, week int) (map[int]float64, error)
	SearchESPNPlayers(ctx context.Context, auth ESPNAuth, leagueID string, season int, q string, limit int) ([]model.Player, error)
	GetOpponentSchedule(ctx context.Context, auth ESPNAuth, leagueID string, teamID, season int) ([]OpponentWeek, error)
	GetNFLOpponent(ctx context.Context, season, week int, teamAbbr string) (string, string, error)

	// Sleeper surface.
	GetSleeperLeagues(ctx context.Context, userOrName string, season int) (string, []model.League, error)
	GetSleeperLeagueRosters(ctx context.Context, leagueID string, season int, includePlayers bool) ([]model.TeamRoster, error)
	GetSleeperPlayers(ctx context.Context, slim bool) (any, error)
	SearchPlayers(ctx context.Context, platform, q string, limit int) ([]model.Player, error)

	// Rank cache and points pipeline.
	GetRankMap(ctx context.Context, apiKey string, season, week int, scoring, rankType string, force bool) (*rankcache.Result, error)
	LoadWeekPoints(ctx context.Context, apiKey string, season int, scoring string, startWeek, endWeek int) (int, error)
	ApplyPointsToLeague(ctx context.Context, auth ESPNAuth, req ApplyRequest) (*ApplyResult, error)
	GetLeaguePoints(ctx context.Context, season int, leagueID, scoring string, week int) (*LeaguePoints, error)
}

type controller struct {
	clock   clock.Clock
	db      db.DB
	espn    espn.Client
	sleeper sleeper.Client
	fp      fantasypros.Client
	ranks   *rankcache.Cache
}

func New(clock clock.Clock, database db.DB, espnClient espn.Client, sleeperClient sleeper.Client, fpClient fantasypros.Client, ranks *rankcache.Cache) (C, error) {
	c := &controller{
		clock:   clock,
		db:      database,
		espn:    espnClient,
		sleeper: sleeperClient,
		fp:      fpClient,
		ranks:   ranks,
	}
	return c, nil
}

// When a call is platform-generic, grab a platform adapter and it will do
// it. Internal to the controller package.
type platformAdapter interface {
	getLeagueRosters(ctx context.Context, auth ESPNAuth, leagueID string, season, week int) ([]model.TeamRoster, error)
}

func (c *controller) getPlatformAdapter(platform string) platformAdapter {
	switch platform {
	case model.PlatformSleeper:
		return &sleeperAdapter{c}
	case model.PlatformESPN, "":
		return &espnAdapter{c}
	default:
		return &nilPlatformAdapter{err: fmt.Errorf("%s is not a supported platform", platform)}
	}
}

// nilPlatformAdapter exists so that we can always return an adapter and
// simplify the usage.
type nilPlatformAdapter struct {
	err error
}

func (a *nilPlatformAdapter) getLeagueRosters(ctx context.Context, auth ESPNAuth, leagueID string, season, week int) ([]model.TeamRoster, error) {
	return nil, a.err
}
