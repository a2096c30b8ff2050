package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

func (db *postgresDB) UpsertLeagueTeam(ctx context.Context, row *model.LeagueTeamRow) error {
	const query = `INSERT INTO sport_ffl (season, league_id, team_id, member_id, team_name, platform, updated_at)
			VALUES (@season, @league, @team, NULLIF(@member, ''), @name, @platform, @now)
		ON CONFLICT (season, league_id, team_id) DO UPDATE SET
			member_id = COALESCE(NULLIF(EXCLUDED.member_id, ''), sport_ffl.member_id),
			team_name = EXCLUDED.team_name,
			platform = EXCLUDED.platform,
			updated_at = EXCLUDED.updated_at`

	args := pgx.NamedArgs{
		"season":   row.Season,
		"league":   row.LeagueID,
		"team":     row.TeamID,
		"member":   row.MemberID,
		"name":     row.TeamName,
		"platform": row.Platform,
		"now":      db.clock.Now().UTC(),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting league team: %w", err)
	}
	return nil
}

func (db *postgresDB) GetLeagueTeams(ctx context.Context, season int, leagueID string) ([]model.LeagueTeamRow, error) {
	const query = `SELECT season, league_id, team_id, COALESCE(member_id, ''), COALESCE(team_name, ''), COALESCE(platform, '')
		FROM sport_ffl WHERE season = @season AND league_id = @league ORDER BY team_id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"season": season, "league": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error listing league teams: %w", err)
	}
	defer rows.Close()

	var result []model.LeagueTeamRow
	for rows.Next() {
		var r model.LeagueTeamRow
		if err := rows.Scan(&r.Season, &r.LeagueID, &r.TeamID, &r.MemberID, &r.TeamName, &r.Platform); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (db *postgresDB) SaveRosterSnapshot(ctx context.Context, snap *model.RosterSnapshot) error {
	const query = `INSERT INTO roster_week (season, league_id, team_id, week, team_name, starters, bench, updated_at)
			VALUES (@season, @league, @team, @week, @name, @starters, @bench, @now)
		ON CONFLICT (season, league_id, team_id, week) DO UPDATE SET
			team_name = EXCLUDED.team_name,
			starters = EXCLUDED.starters,
			bench = EXCLUDED.bench,
			updated_at = EXCLUDED.updated_at`

	args := pgx.NamedArgs{
		"season":   snap.Season,
		"league":   snap.LeagueID,
		"team":     snap.TeamID,
		"week":     snap.Week,
		"name":     snap.TeamName,
		"starters": notNull(snap.Starters),
		"bench":    notNull(snap.Bench),
		"now":      db.clock.Now().UTC(),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving roster snapshot: %w", err)
	}
	return nil
}

func (db *postgresDB) GetRosterSnapshots(ctx context.Context, season int, leagueID string, week int) ([]model.RosterSnapshot, error) {
	const query = `SELECT season, league_id, team_id, week, COALESCE(team_name, ''), starters, bench
		FROM roster_week WHERE season = @season AND league_id = @league AND week = @week ORDER BY team_id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"season": season, "league": leagueID, "week": week})
	if err != nil {
		return nil, fmt.Errorf("error listing roster snapshots: %w", err)
	}
	defer rows.Close()

	var result []model.RosterSnapshot
	for rows.Next() {
		var s model.RosterSnapshot
		if err := rows.Scan(&s.Season, &s.LeagueID, &s.TeamID, &s.Week, &s.TeamName, &s.Starters, &s.Bench); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
