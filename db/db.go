package db

import (
	"context"
	"errors"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

var (
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrCredentialConflict means the SWID is already bound to a different
	// member. The second claimant is recorded as a ghost, never granted
	// ownership.
	ErrCredentialConflict = errors.New("credential already bound to another member")
)

type DB interface {
	// Credential store. UpsertCredential is keyed by canonical SWID; it
	// refreshes the session token and last-seen, and sets member_id only
	// when currently unset.
	UpsertCredential(ctx context.Context, swid, s2, memberID string) error
	GetCredential(ctx context.Context, swid string) (*model.ESPNCredential, error)
	// LinkCredential binds a SWID to a member and records the member's
	// quick-snap claim. A SWID already owned by someone else makes the
	// caller a ghost and returns ErrCredentialConflict.
	LinkCredential(ctx context.Context, swid, s2, memberID string) error
	GetQuickSnap(ctx context.Context, memberID string) (*model.QuickSnap, error)
	// ResolveForLeague picks the credential to read a league with:
	// the viewer's own claim when the viewer owns a team in the league,
	// otherwise the most recently seen credential of any league member,
	// otherwise empty tokens with SourcePublic.
	ResolveForLeague(ctx context.Context, season int, leagueID, viewerMemberID string) (*model.ESPNCredential, model.CredentialSource, error)
	// ResolveForTeam walks owner inference: (league, team) -> member ->
	// quick-snap -> credential. Multiple candidates when co-owned.
	ResolveForTeam(ctx context.Context, season int, leagueID string, teamID int) ([]model.ESPNCredential, error)

	// Persisted league roster table (sport_ffl).
	UpsertLeagueTeam(ctx context.Context, row *model.LeagueTeamRow) error
	GetLeagueTeams(ctx context.Context, season int, leagueID string) ([]model.LeagueTeamRow, error)

	// Roster snapshots (roster_week).
	SaveRosterSnapshot(ctx context.Context, snap *model.RosterSnapshot) error
	GetRosterSnapshots(ctx context.Context, season int, leagueID string, week int) ([]model.RosterSnapshot, error)

	// External ranking points staging (fp_points_week).
	SaveFPPoints(ctx context.Context, rows []model.FPPointsRow) error
	ListFPWeeks(ctx context.Context, season int, scorings []string, cutoffWeek int) ([]int, error)
	GetFPPointsForWeek(ctx context.Context, season, week int, scorings []string) ([]model.FPPointsRow, error)

	// Weekly points and the denormalized cache. Week 1 rows in
	// weekly_points are season totals, not literal matchups.
	UpsertWeeklyPoints(ctx context.Context, row *model.PointsRow) error
	GetWeeklyPoints(ctx context.Context, season int, leagueID, scoring string) ([]model.PointsRow, error)
	RefreshPointsCache(ctx context.Context, season int, leagueID string) error
	GetPointsCache(ctx context.Context, season int, leagueID string) ([]model.PointsCacheRow, error)

	Close()
}
