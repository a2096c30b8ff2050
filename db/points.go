package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

func (db *postgresDB) SaveFPPoints(ctx context.Context, fpRows []model.FPPointsRow) error {
	const query = `INSERT INTO fp_points_week (season, week, scoring, fp_id, name, position, team_abbr, points)
			VALUES (@season, @week, @scoring, @fp, @name, @pos, @team, @points)
		ON CONFLICT (season, week, scoring, fp_id) DO UPDATE SET
			name = EXCLUDED.name,
			position = EXCLUDED.position,
			team_abbr = EXCLUDED.team_abbr,
			points = EXCLUDED.points`

	batch := &pgx.Batch{}
	for _, r := range fpRows {
		batch.Queue(query, pgx.NamedArgs{
			"season":  r.Season,
			"week":    r.Week,
			"scoring": model.NormalizeScoring(r.Scoring),
			"fp":      r.PlayerID,
			"name":    r.Name,
			"pos":     r.Position,
			"team":    r.TeamAbbr,
			"points":  r.Points,
		})
	}

	results := db.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range fpRows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("error staging fp points: %w", err)
		}
	}
	return nil
}

func (db *postgresDB) ListFPWeeks(ctx context.Context, season int, scorings []string, cutoffWeek int) ([]int, error) {
	query := `SELECT DISTINCT week FROM fp_points_week
		WHERE season = @season AND scoring = ANY(@scorings)`
	args := pgx.NamedArgs{"season": season, "scorings": normalizeScorings(scorings)}
	if cutoffWeek > 0 {
		query += ` AND week <= @cutoff`
		args["cutoff"] = cutoffWeek
	}
	query += ` ORDER BY week`

	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing fp weeks: %w", err)
	}
	defer rows.Close()

	var weeks []int
	for rows.Next() {
		var w int
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		weeks = append(weeks, w)
	}
	return weeks, rows.Err()
}

func (db *postgresDB) GetFPPointsForWeek(ctx context.Context, season, week int, scorings []string) ([]model.FPPointsRow, error) {
	const query = `SELECT season, week, scoring, fp_id, COALESCE(name, ''), COALESCE(position, ''), COALESCE(team_abbr, ''), points
		FROM fp_points_week
		WHERE season = @season AND week = @week AND scoring = ANY(@scorings)`

	args := pgx.NamedArgs{"season": season, "week": week, "scorings": normalizeScorings(scorings)}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error reading fp points: %w", err)
	}
	defer rows.Close()

	var result []model.FPPointsRow
	for rows.Next() {
		var r model.FPPointsRow
		if err := rows.Scan(&r.Season, &r.Week, &r.Scoring, &r.PlayerID, &r.Name, &r.Position, &r.TeamAbbr, &r.Points); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (db *postgresDB) UpsertWeeklyPoints(ctx context.Context, row *model.PointsRow) error {
	const query = `INSERT INTO weekly_points (season, league_id, team_id, week, scoring, points, starters, team_name, updated_at)
			VALUES (@season, @league, @team, @week, @scoring, @points, @starters, @name, @now)
		ON CONFLICT (season, league_id, team_id, week, scoring) DO UPDATE SET
			points = EXCLUDED.points,
			starters = EXCLUDED.starters,
			team_name = EXCLUDED.team_name,
			updated_at = EXCLUDED.updated_at`

	args := pgx.NamedArgs{
		"season":   row.Season,
		"league":   row.LeagueID,
		"team":     row.TeamID,
		"week":     row.Week,
		"scoring":  model.NormalizeScoring(row.Scoring),
		"points":   row.Points,
		"starters": notNull(row.Starters),
		"name":     row.TeamName,
		"now":      db.clock.Now().UTC(),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error upserting weekly points: %w", err)
	}
	return nil
}

func (db *postgresDB) GetWeeklyPoints(ctx context.Context, season int, leagueID, scoring string) ([]model.PointsRow, error) {
	const query = `SELECT season, league_id, team_id, week, scoring, points, starters, COALESCE(team_name, ''), updated_at
		FROM weekly_points
		WHERE season = @season AND league_id = @league AND scoring = @scoring
		ORDER BY team_id, week`

	args := pgx.NamedArgs{"season": season, "league": leagueID, "scoring": model.NormalizeScoring(scoring)}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error reading weekly points: %w", err)
	}
	defer rows.Close()

	var result []model.PointsRow
	for rows.Next() {
		var r model.PointsRow
		if err := rows.Scan(&r.Season, &r.LeagueID, &r.TeamID, &r.Week, &r.Scoring, &r.Points, &r.Starters, &r.TeamName, &r.Updated); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// RefreshPointsCache recomputes points_cache for a league from
// weekly_points: the latest literal week per (team, scoring) plus the sum
// of weeks 2..N. Week 1 rows are season totals and excluded from both.
func (db *postgresDB) RefreshPointsCache(ctx context.Context, season int, leagueID string) error {
	const query = `INSERT INTO points_cache (season, league_id, team_id, scoring, week, week_pts, season_pts, team_name, updated_at)
		SELECT latest.season, latest.league_id, latest.team_id, latest.scoring,
			latest.week, latest.points,
			totals.season_pts, latest.team_name, @now
		FROM (
			SELECT DISTINCT ON (season, league_id, team_id, scoring)
				season, league_id, team_id, scoring, week, points, team_name
			FROM weekly_points
			WHERE season = @season AND league_id = @league AND week > 1
			ORDER BY season, league_id, team_id, scoring, week DESC, updated_at DESC
		) latest
		JOIN (
			SELECT season, league_id, team_id, scoring, SUM(points) AS season_pts
			FROM weekly_points
			WHERE season = @season AND league_id = @league AND week > 1
			GROUP BY season, league_id, team_id, scoring
		) totals USING (season, league_id, team_id, scoring)
		ON CONFLICT (season, league_id, team_id, scoring) DO UPDATE SET
			week = EXCLUDED.week,
			week_pts = EXCLUDED.week_pts,
			season_pts = EXCLUDED.season_pts,
			team_name = EXCLUDED.team_name,
			updated_at = EXCLUDED.updated_at`

	args := pgx.NamedArgs{"season": season, "league": leagueID, "now": db.clock.Now().UTC()}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error refreshing points cache: %w", err)
	}
	return nil
}

func (db *postgresDB) GetPointsCache(ctx context.Context, season int, leagueID string) ([]model.PointsCacheRow, error) {
	const query = `SELECT season, league_id, team_id, scoring, week, week_pts, season_pts, COALESCE(team_name, ''), updated_at
		FROM points_cache WHERE season = @season AND league_id = @league
		ORDER BY team_id, scoring`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"season": season, "league": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error reading points cache: %w", err)
	}
	defer rows.Close()

	var result []model.PointsCacheRow
	for rows.Next() {
		var r model.PointsCacheRow
		if err := rows.Scan(&r.Season, &r.LeagueID, &r.TeamID, &r.Scoring, &r.Week, &r.WeekPts, &r.SeasonPts, &r.TeamName, &r.Updated); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// notNull keeps nil slices out of NOT NULL array columns.
func notNull(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func normalizeScorings(scorings []string) []string {
	if len(scorings) == 0 {
		return model.AllScorings
	}
	out := make([]string, 0, len(scorings))
	for _, s := range scorings {
		out = append(out, model.NormalizeScoring(s))
	}
	return out
}
