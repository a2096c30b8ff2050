package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

func (db *postgresDB) UpsertCredential(ctx context.Context, swid, s2, memberID string) error {
	canonical, err := model.CanonicalSWID(swid)
	if err != nil {
		return err
	}

	const query = `INSERT INTO espn_cred (swid, swid_hash, s2, member_id, first_seen, last_seen)
			VALUES (@swid, @hash, @s2, NULLIF(@member, ''), @now, @now)
		ON CONFLICT (swid) DO UPDATE SET
			s2 = EXCLUDED.s2,
			last_seen = EXCLUDED.last_seen,
			member_id = COALESCE(espn_cred.member_id, EXCLUDED.member_id)`

	args := pgx.NamedArgs{
		"swid":   canonical,
		"hash":   model.SWIDHash(canonical),
		"s2":     s2,
		"member": memberID,
		"now":    db.clock.Now().UTC(),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting credential: %w", err)
	}
	return nil
}

func (db *postgresDB) GetCredential(ctx context.Context, swid string) (*model.ESPNCredential, error) {
	canonical, err := model.CanonicalSWID(swid)
	if err != nil {
		return nil, err
	}

	const query = `SELECT swid, s2, COALESCE(member_id, ''), COALESCE(ghost_member_id, ''), first_seen, last_seen
		FROM espn_cred WHERE swid = @swid`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"swid": canonical})
	cred, err := scanCredential(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("error reading credential: %w", err)
	}
	return cred, nil
}

func (db *postgresDB) LinkCredential(ctx context.Context, swid, s2, memberID string) error {
	canonical, err := model.CanonicalSWID(swid)
	if err != nil {
		return err
	}

	if err := db.UpsertCredential(ctx, canonical, s2, memberID); err != nil {
		return err
	}

	cred, err := db.GetCredential(ctx, canonical)
	if err != nil {
		return err
	}

	if cred.MemberID != "" && cred.MemberID != memberID {
		// Record the second claimant without granting ownership.
		const ghost = `UPDATE espn_cred SET ghost_member_id = @member WHERE swid = @swid`
		if _, err := db.pool.Exec(ctx, ghost, pgx.NamedArgs{"member": memberID, "swid": canonical}); err != nil {
			return fmt.Errorf("error recording ghost member: %w", err)
		}
		return ErrCredentialConflict
	}

	const claim = `INSERT INTO quickhitter (member_id, quick_snap, updated_at)
			VALUES (@member, @swid, @now)
		ON CONFLICT (member_id) DO UPDATE SET
			quick_snap = EXCLUDED.quick_snap,
			updated_at = EXCLUDED.updated_at`
	args := pgx.NamedArgs{
		"member": memberID,
		"swid":   canonical,
		"now":    db.clock.Now().UTC(),
	}
	if _, err := db.pool.Exec(ctx, claim, args); err != nil {
		return fmt.Errorf("error saving quick-snap claim: %w", err)
	}
	return nil
}

func (db *postgresDB) GetQuickSnap(ctx context.Context, memberID string) (*model.QuickSnap, error) {
	const query = `SELECT member_id, quick_snap FROM quickhitter WHERE member_id = @member AND quick_snap IS NOT NULL`

	var qs model.QuickSnap
	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"member": memberID})
	if err := row.Scan(&qs.MemberID, &qs.SWID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("error reading quick-snap: %w", err)
	}
	return &qs, nil
}

func (db *postgresDB) ResolveForLeague(ctx context.Context, season int, leagueID, viewerMemberID string) (*model.ESPNCredential, model.CredentialSource, error) {
	// 1. The viewer's own claim, when the viewer owns a team in the league.
	if viewerMemberID != "" {
		const viewerQuery = `SELECT c.swid, c.s2, COALESCE(c.member_id, ''), COALESCE(c.ghost_member_id, ''), c.first_seen, c.last_seen
			FROM quickhitter q
			JOIN espn_cred c ON c.swid = q.quick_snap
			JOIN sport_ffl f ON f.member_id = q.member_id
			WHERE q.member_id = @viewer AND f.season = @season AND f.league_id = @league
			LIMIT 1`
		args := pgx.NamedArgs{"viewer": viewerMemberID, "season": season, "league": leagueID}
		cred, err := scanCredential(db.pool.QueryRow(ctx, viewerQuery, args))
		if err == nil {
			return cred, model.SourceViewerLink, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			// Degrade to public rather than failing the read path.
			return nil, model.SourcePublic, nil
		}
	}

	// 2. The most recently seen credential of any league member.
	const peerQuery = `SELECT c.swid, c.s2, COALESCE(c.member_id, ''), COALESCE(c.ghost_member_id, ''), c.first_seen, c.last_seen
		FROM sport_ffl f
		JOIN quickhitter q ON q.member_id = f.member_id
		JOIN espn_cred c ON c.swid = q.quick_snap
		WHERE f.season = @season AND f.league_id = @league
		ORDER BY c.last_seen DESC
		LIMIT 1`
	args := pgx.NamedArgs{"season": season, "league": leagueID}
	cred, err := scanCredential(db.pool.QueryRow(ctx, peerQuery, args))
	if err == nil {
		return cred, model.SourceLeaguePeer, nil
	}

	// 3. Nothing usable; the caller may still try an unauthenticated fetch.
	return nil, model.SourcePublic, nil
}

func (db *postgresDB) ResolveForTeam(ctx context.Context, season int, leagueID string, teamID int) ([]model.ESPNCredential, error) {
	const query = `SELECT c.swid, c.s2, COALESCE(c.member_id, ''), COALESCE(c.ghost_member_id, ''), c.first_seen, c.last_seen
		FROM sport_ffl f
		JOIN quickhitter q ON q.member_id = f.member_id
		JOIN espn_cred c ON c.swid = q.quick_snap
		WHERE f.season = @season AND f.league_id = @league AND f.team_id = @team
		ORDER BY c.last_seen DESC`

	args := pgx.NamedArgs{"season": season, "league": leagueID, "team": teamID}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error resolving team credentials: %w", err)
	}
	defer rows.Close()

	var creds []model.ESPNCredential
	for rows.Next() {
		cred, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		creds = append(creds, *cred)
	}
	return creds, rows.Err()
}

func scanCredential(row pgx.Row) (*model.ESPNCredential, error) {
	var cred model.ESPNCredential
	err := row.Scan(&cred.SWID, &cred.S2, &cred.MemberID, &cred.GhostMemberID, &cred.FirstSeen, &cred.LastSeen)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}
