package controller

import (
	"context"
	"fmt"
	"log"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/matcher"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

// ApplyRequest configures a points-aggregation run for one league.
type ApplyRequest struct {
	Season     int      `json:"season"`
	LeagueID   string   `json:"league_id"`
	CutoffWeek int      `json:"cutoffWeek,omitempty"`
	Scorings   []string `json:"scorings,omitempty"`
	Platform   string   `json:"platform,omitempty"`
}

// ApplyResult summarizes an aggregation run.
type ApplyResult struct {
	Matched   int      `json:"matched"`
	Unmatched int      `json:"unmatched"`
	Weeks     []int    `json:"weeks"`
	Warnings  []string `json:"warnings"`
}

// NoMatchesError means not a single staged ranking row resolved to a team
// across every processed week. It carries a small index sample so the
// mismatch between the two naming worlds can be debugged.
type NoMatchesError struct {
	Unmatched int                 `json:"unmatched_count"`
	Warnings  []string            `json:"warnings"`
	Sample    map[string][]string `json:"sampleIndex"`
}

func (e *NoMatchesError) Error() string {
	return fmt.Sprintf("no roster matches across all weeks (%d unmatched rows)", e.Unmatched)
}

// LeaguePoints is the stored points view for one league: the denormalized
// cache rows, plus the raw weekly rows for one scoring variant and the
// roster snapshot for one week when requested. Week 1 rows in the weekly
// set are season totals.
type LeaguePoints struct {
	Teams   []model.LeagueTeamRow  `json:"teams"`
	Cache   []model.PointsCacheRow `json:"cache"`
	Weekly  []model.PointsRow      `json:"weekly,omitempty"`
	Rosters []model.RosterSnapshot `json:"rosters,omitempty"`
}

func (c *controller) GetLeaguePoints(ctx context.Context, season int, leagueID, scoring string, week int) (*LeaguePoints, error) {
	cache, err := c.db.GetPointsCache(ctx, season, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error reading points cache: %w", err)
	}
	teams, err := c.db.GetLeagueTeams(ctx, season, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error reading league teams: %w", err)
	}

	lp := &LeaguePoints{Teams: teams, Cache: cache}
	if scoring != "" {
		weekly, err := c.db.GetWeeklyPoints(ctx, season, leagueID, model.NormalizeScoring(scoring))
		if err != nil {
			return nil, fmt.Errorf("error reading weekly points: %w", err)
		}
		lp.Weekly = weekly
	}
	if week > 0 {
		rosters, err := c.db.GetRosterSnapshots(ctx, season, leagueID, week)
		if err != nil {
			return nil, fmt.Errorf("error reading roster snapshots: %w", err)
		}
		lp.Rosters = rosters
	}
	return lp, nil
}

type aggKey struct {
	teamID  int
	week    int
	scoring string
}

// ApplyPointsToLeague joins staged per-player weekly points against the
// league's rosters and rebuilds weekly_points plus points_cache. Unmatched
// rows are dropped and counted; a week whose roster cannot be fetched
// becomes a warning. Nothing is written until matching has succeeded
// somewhere.
func (c *controller) ApplyPointsToLeague(ctx context.Context, auth ESPNAuth, req ApplyRequest) (*ApplyResult, error) {
	scorings := req.Scorings
	if len(scorings) == 0 {
		scorings = model.AllScorings
	}

	weeks, err := c.db.ListFPWeeks(ctx, req.Season, scorings, req.CutoffWeek)
	if err != nil {
		return nil, fmt.Errorf("error listing staged weeks: %w", err)
	}
	if len(weeks) == 0 {
		return nil, fmt.Errorf("no staged ranking points for season %d", req.Season)
	}

	adapter := c.getPlatformAdapter(req.Platform)

	var (
		result    = &ApplyResult{Weeks: weeks, Warnings: []string{}}
		agg       = make(map[aggKey]float64)
		teamNames = make(map[int]string)
		starters  = make(map[int]map[int][]string) // week -> teamID -> starters
		lastIndex *matcher.RosterIndex
	)

	for _, week := range weeks {
		rosters, err := adapter.getLeagueRosters(ctx, auth, req.LeagueID, req.Season, week)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("week %d: roster fetch failed: %v", week, err))
			continue
		}

		index := matcher.NewRosterIndex()
		starters[week] = make(map[int][]string)
		for _, tr := range rosters {
			teamNames[tr.Team.TeamID] = tr.Team.TeamName
			for _, p := range tr.Players {
				index.Add(matcher.Record{
					ExternalID: p.FPID,
					Name:       p.Name,
					Team:       p.NFLAbbr,
					Position:   p.Pos,
				}, tr.Team.TeamID)
				if p.LineupSlot != "BE" && p.LineupSlot != "IR" {
					starters[week][tr.Team.TeamID] = append(starters[week][tr.Team.TeamID], p.ID)
				}
			}
		}
		lastIndex = index

		rows, err := c.db.GetFPPointsForWeek(ctx, req.Season, week, scorings)
		if err != nil {
			return nil, fmt.Errorf("error reading staged points for week %d: %w", week, err)
		}

		for _, row := range rows {
			teamID, ok := index.Lookup(matcher.Record{
				ExternalID: row.PlayerID,
				Name:       row.Name,
				Team:       row.TeamAbbr,
				Position:   model.ParsePosition(row.Position),
			})
			if !ok {
				result.Unmatched++
				continue
			}
			result.Matched++
			agg[aggKey{teamID: teamID, week: week, scoring: row.Scoring}] += row.Points
		}
	}

	if result.Matched == 0 {
		sample := map[string][]string{}
		if lastIndex != nil {
			sample = lastIndex.Sample()
		}
		return nil, &NoMatchesError{
			Unmatched: result.Unmatched,
			Warnings:  result.Warnings,
			Sample:    sample,
		}
	}

	// Weekly rows.
	for key, points := range agg {
		row := &model.PointsRow{
			Season:   req.Season,
			LeagueID: req.LeagueID,
			TeamID:   key.teamID,
			Week:     key.week,
			Scoring:  key.scoring,
			Points:   points,
			Starters: starters[key.week][key.teamID],
			TeamName: teamNames[key.teamID],
		}
		if err := c.db.UpsertWeeklyPoints(ctx, row); err != nil {
			return nil, fmt.Errorf("error writing weekly points: %w", err)
		}
	}

	// Season totals live at the sentinel week, summed over the literal
	// matchup weeks only.
	totals := make(map[aggKey]float64)
	for key, points := range agg {
		if key.week <= model.SeasonTotalWeek {
			continue
		}
		totals[aggKey{teamID: key.teamID, week: model.SeasonTotalWeek, scoring: key.scoring}] += points
	}
	for key, points := range totals {
		row := &model.PointsRow{
			Season:   req.Season,
			LeagueID: req.LeagueID,
			TeamID:   key.teamID,
			Week:     model.SeasonTotalWeek,
			Scoring:  key.scoring,
			Points:   points,
			TeamName: teamNames[key.teamID],
		}
		if err := c.db.UpsertWeeklyPoints(ctx, row); err != nil {
			return nil, fmt.Errorf("error writing season totals: %w", err)
		}
	}

	if err := c.db.RefreshPointsCache(ctx, req.Season, req.LeagueID); err != nil {
		return nil, fmt.Errorf("error refreshing points cache: %w", err)
	}

	log.Printf("applied points to league %s: %d matched, %d unmatched, %d weeks",
		req.LeagueID, result.Matched, result.Unmatched, len(result.Weeks))
	return result, nil
}
