package testutils

import (
	"context"
	"log"

	"github.com/itbasis/go-clock"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/containers"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/db"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

// Identities the seeded credential rows use. They line up with the ESPN
// fixture league so resolution tests can walk viewer -> peer -> public.
const (
	SeedSWID     = "{12345678-ABCD-ABCD-ABCD-123456789012}"
	SeedS2       = "AEB%2Fseeded%2Fsession%2Ftoken"
	SeedMemberID = "MEM-001"

	PeerSWID     = "{87654321-DCBA-DCBA-DCBA-210987654321}"
	PeerS2       = "AEC%2Fpeer%2Fsession%2Ftoken"
	PeerMemberID = "MEM-002"
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

// SeedCredentials links both fixture members to their SWIDs and registers
// their teams in the fixture league.
func SeedCredentials(database db.DB, season int, leagueID string) error {
	ctx := context.Background()

	if err := database.LinkCredential(ctx, SeedSWID, SeedS2, SeedMemberID); err != nil {
		return err
	}
	if err := database.LinkCredential(ctx, PeerSWID, PeerS2, PeerMemberID); err != nil {
		return err
	}

	rows := []model.LeagueTeamRow{
		{Season: season, LeagueID: leagueID, TeamID: 1, MemberID: SeedMemberID, TeamName: "Fein Dynasty", Platform: model.PlatformESPN},
		{Season: season, LeagueID: leagueID, TeamID: 2, MemberID: PeerMemberID, TeamName: "Rival Squad", Platform: model.PlatformESPN},
	}
	for i := range rows {
		if err := database.UpsertLeagueTeam(ctx, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// SeedStagedPoints loads a small fp_points_week staging set directly,
// bypassing the rankings provider.
func SeedStagedPoints(database db.DB, season int) error {
	rows := []model.FPPointsRow{
		{Season: season, Week: 2, Scoring: model.ScoringPPR, PlayerID: "19781", Name: "Jalen Hurts", Position: "QB", TeamAbbr: "PHI", Points: 24.3},
		{Season: season, Week: 2, Scoring: model.ScoringPPR, PlayerID: "18244", Name: "CeeDee Lamb", Position: "WR", TeamAbbr: "DAL", Points: 17.5},
		{Season: season, Week: 3, Scoring: model.ScoringPPR, PlayerID: "19781", Name: "Jalen Hurts", Position: "QB", TeamAbbr: "PHI", Points: 18.9},
		{Season: season, Week: 3, Scoring: model.ScoringPPR, PlayerID: "20170", Name: "Breece Hall", Position: "RB", TeamAbbr: "NYJ", Points: 21.4},
	}
	return database.SaveFPPoints(context.Background(), rows)
}
