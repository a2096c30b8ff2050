package controller

import (
	"context"
	"fmt"
	"math"
	"os"
	"testing"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/espn"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/fantasypros"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/sleeper"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/rankcache"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/testutils"
)

// A global testDB instance to use for all of the tests instead of setting up a new one each time.
var testDB *testutils.TestDB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	// Setup the global testDB variable
	testDB = testutils.NewTestDB()
	defer testDB.Shutdown()

	if err := testutils.SeedCredentials(testDB.DB, 2025, testutils.ESPNLeagueID); err != nil {
		fmt.Printf("error seeding credentials: %v", err)
		os.Exit(-1)
	}
	if err := testutils.SeedStagedPoints(testDB.DB, 2025); err != nil {
		fmt.Printf("error seeding staged points: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	os.Exit(code)
}

// newIntegrationController wires a real controller against the container db
// and the fake upstream servers.
func newIntegrationController(t *testing.T) (C, *testutils.TestController) {
	t.Helper()

	testCtrl := testutils.NewTestController(testDB)

	espnClient, err := espn.NewWithURLs(testCtrl.ESPNReadsURL(), testCtrl.ESPNLMURL(), testCtrl.ESPNSiteURL(), testCtrl.ESPNFanURL())
	if err != nil {
		t.Fatalf("error creating espn client: %v", err)
	}
	sleeperClient, err := sleeper.NewWithURL(testCtrl.SleeperURL())
	if err != nil {
		t.Fatalf("error creating sleeper client: %v", err)
	}
	fpClient, err := fantasypros.NewWithURL(testCtrl.FantasyProsURL())
	if err != nil {
		t.Fatalf("error creating fantasypros client: %v", err)
	}

	c, err := New(testCtrl.Clock, testDB.DB, espnClient, sleeperClient, fpClient, rankcache.New(testCtrl.KV, fpClient))
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	return c, testCtrl
}

func TestResolveESPNCredentials_integration(t *testing.T) {
	c, testCtrl := newIntegrationController(t)
	defer testCtrl.Close()

	ctx := context.Background()

	// The seeded viewer resolves their own link.
	creds, source := c.ResolveESPNCredentials(ctx, 2025, testutils.ESPNLeagueID, ESPNAuth{ViewerMemberID: testutils.SeedMemberID})
	if source != model.SourceViewerLink {
		t.Errorf("expected source %s, got %s", model.SourceViewerLink, source)
	}
	if creds.SWID != testutils.SeedSWID || creds.S2 != testutils.SeedS2 {
		t.Errorf("expected the seeded credential, got %q", creds.SWID)
	}

	// A stranger borrows a league member's credential.
	creds, source = c.ResolveESPNCredentials(ctx, 2025, testutils.ESPNLeagueID, ESPNAuth{ViewerMemberID: "MEM-NOBODY"})
	if source != model.SourceLeaguePeer {
		t.Errorf("expected source %s, got %s", model.SourceLeaguePeer, source)
	}
	if creds.Empty() {
		t.Error("expected a borrowed credential")
	}

	// An unknown league has no peers to borrow from.
	creds, source = c.ResolveESPNCredentials(ctx, 2025, "000000", ESPNAuth{})
	if source != model.SourcePublic || !creds.Empty() {
		t.Errorf("expected empty public credentials, got source %s", source)
	}
}

func TestApplyPointsToLeague_integration(t *testing.T) {
	c, testCtrl := newIntegrationController(t)
	defer testCtrl.Close()

	ctx := context.Background()

	// No explicit cookies: the run leans on the seeded viewer link.
	result, err := c.ApplyPointsToLeague(ctx, ESPNAuth{ViewerMemberID: testutils.SeedMemberID}, ApplyRequest{
		Season:   2025,
		LeagueID: testutils.ESPNLeagueID,
		Scorings: []string{"ppr"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// All four seeded rows belong to team 1's roster.
	if result.Matched != 4 || result.Unmatched != 0 {
		t.Errorf("expected 4 matched and 0 unmatched, got %d/%d", result.Matched, result.Unmatched)
	}

	cache, err := testDB.DB.GetPointsCache(ctx, 2025, testutils.ESPNLeagueID)
	if err != nil {
		t.Fatalf("error reading points cache: %v", err)
	}
	if len(cache) != 1 {
		t.Fatalf("expected 1 cache row, got %d", len(cache))
	}
	if cache[0].TeamID != 1 || cache[0].Week != 3 {
		t.Errorf("unexpected cache row: %+v", cache[0])
	}
	if math.Abs(cache[0].WeekPts-(18.9+21.4)) > 1e-9 {
		t.Errorf("expected week points %.1f, got %.2f", 18.9+21.4, cache[0].WeekPts)
	}
	if math.Abs(cache[0].SeasonPts-(24.3+17.5+18.9+21.4)) > 1e-9 {
		t.Errorf("expected season points %.1f, got %.2f", 24.3+17.5+18.9+21.4, cache[0].SeasonPts)
	}

	// The roster fetches also left weekly snapshots behind.
	snaps, err := testDB.DB.GetRosterSnapshots(ctx, 2025, testutils.ESPNLeagueID, 2)
	if err != nil {
		t.Fatalf("error reading snapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Errorf("expected 2 roster snapshots for week 2, got %d", len(snaps))
	}
}

func TestGetRankMap_integration(t *testing.T) {
	c, testCtrl := newIntegrationController(t)
	defer testCtrl.Close()

	result, err := c.GetRankMap(context.Background(), testutils.FPAPIKey, 2025, 3, "ppr", model.RankTypeECR, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Source != rankcache.SourceBuilt || !result.Persisted {
		t.Errorf("expected a freshly built persisted map, got %+v", result)
	}

	// A second call without force serves from the shared KV.
	result, err = c.GetRankMap(context.Background(), testutils.FPAPIKey, 2025, 3, "ppr", model.RankTypeECR, false)
	if err != nil {
		t.Fatalf("unexpected error on second fetch: %v", err)
	}
	if result.Source != rankcache.SourceKV {
		t.Errorf("expected the KV source, got %s", result.Source)
	}
}
