package mockdb

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

type DB struct {
	mock.Mock
}

func (d *DB) UpsertCredential(ctx context.Context, swid, s2, memberID string) error {
	args := d.Called(ctx, swid, s2, memberID)
	return args.Error(0)
}

func (d *DB) GetCredential(ctx context.Context, swid string) (*model.ESPNCredential, error) {
	args := d.Called(ctx, swid)

	var cred *model.ESPNCredential
	if args.Get(0) != nil {
		cred = args.Get(0).(*model.ESPNCredential)
	}
	return cred, args.Error(1)
}

func (d *DB) LinkCredential(ctx context.Context, swid, s2, memberID string) error {
	args := d.Called(ctx, swid, s2, memberID)
	return args.Error(0)
}

func (d *DB) GetQuickSnap(ctx context.Context, memberID string) (*model.QuickSnap, error) {
	args := d.Called(ctx, memberID)

	var qs *model.QuickSnap
	if args.Get(0) != nil {
		qs = args.Get(0).(*model.QuickSnap)
	}
	return qs, args.Error(1)
}

func (d *DB) ResolveForLeague(ctx context.Context, season int, leagueID, viewerMemberID string) (*model.ESPNCredential, model.CredentialSource, error) {
	args := d.Called(ctx, season, leagueID, viewerMemberID)

	var cred *model.ESPNCredential
	if args.Get(0) != nil {
		cred = args.Get(0).(*model.ESPNCredential)
	}
	return cred, args.Get(1).(model.CredentialSource), args.Error(2)
}

func (d *DB) ResolveForTeam(ctx context.Context, season int, leagueID string, teamID int) ([]model.ESPNCredential, error) {
	args := d.Called(ctx, season, leagueID, teamID)

	var creds []model.ESPNCredential
	if args.Get(0) != nil {
		creds = args.Get(0).([]model.ESPNCredential)
	}
	return creds, args.Error(1)
}

func (d *DB) UpsertLeagueTeam(ctx context.Context, row *model.LeagueTeamRow) error {
	args := d.Called(ctx, row)
	return args.Error(0)
}

func (d *DB) GetLeagueTeams(ctx context.Context, season int, leagueID string) ([]model.LeagueTeamRow, error) {
	args := d.Called(ctx, season, leagueID)

	var rows []model.LeagueTeamRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]model.LeagueTeamRow)
	}
	return rows, args.Error(1)
}

func (d *DB) SaveRosterSnapshot(ctx context.Context, snap *model.RosterSnapshot) error {
	args := d.Called(ctx, snap)
	return args.Error(0)
}

func (d *DB) GetRosterSnapshots(ctx context.Context, season int, leagueID string, week int) ([]model.RosterSnapshot, error) {
	args := d.Called(ctx, season, leagueID, week)

	var snaps []model.RosterSnapshot
	if args.Get(0) != nil {
		snaps = args.Get(0).([]model.RosterSnapshot)
	}
	return snaps, args.Error(1)
}

func (d *DB) SaveFPPoints(ctx context.Context, rows []model.FPPointsRow) error {
	args := d.Called(ctx, rows)
	return args.Error(0)
}

func (d *DB) ListFPWeeks(ctx context.Context, season int, scorings []string, cutoffWeek int) ([]int, error) {
	args := d.Called(ctx, season, scorings, cutoffWeek)

	var weeks []int
	if args.Get(0) != nil {
		weeks = args.Get(0).([]int)
	}
	return weeks, args.Error(1)
}

func (d *DB) GetFPPointsForWeek(ctx context.Context, season, week int, scorings []string) ([]model.FPPointsRow, error) {
	args := d.Called(ctx, season, week, scorings)

	var rows []model.FPPointsRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]model.FPPointsRow)
	}
	return rows, args.Error(1)
}

func (d *DB) UpsertWeeklyPoints(ctx context.Context, row *model.PointsRow) error {
	args := d.Called(ctx, row)
	return args.Error(0)
}

func (d *DB) GetWeeklyPoints(ctx context.Context, season int, leagueID, scoring string) ([]model.PointsRow, error) {
	args := d.Called(ctx, season, leagueID, scoring)

	var rows []model.PointsRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]model.PointsRow)
	}
	return rows, args.Error(1)
}

func (d *DB) RefreshPointsCache(ctx context.Context, season int, leagueID string) error {
	args := d.Called(ctx, season, leagueID)
	return args.Error(0)
}

func (d *DB) GetPointsCache(ctx context.Context, season int, leagueID string) ([]model.PointsCacheRow, error) {
	args := d.Called(ctx, season, leagueID)

	var rows []model.PointsCacheRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]model.PointsCacheRow)
	}
	return rows, args.Error(1)
}

func (d *DB) Close() {
	d.Called()
}
