package controller

import (
	"context"
	"fmt"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/rankcache"
)

func (c *controller) GetRankMap(ctx context.Context, apiKey string, season, week int, scoring, rankType string, force bool) (*rankcache.Result, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season must be positive, got %d", season)
	}
	if week <= 0 {
		return nil, fmt.Errorf("week must be positive, got %d", week)
	}
	return c.ranks.Get(ctx, apiKey, season, week, scoring, rankType, force)
}

// LoadWeekPoints pulls per-player weekly points from the rankings provider
// into the fp_points_week staging table. Returns how many rows landed.
func (c *controller) LoadWeekPoints(ctx context.Context, apiKey string, season int, scoring string, startWeek, endWeek int) (int, error) {
	if startWeek <= 0 {
		startWeek = 1
	}
	if endWeek < startWeek {
		endWeek = startWeek
	}

	rows, err := c.fp.GetPlayerPoints(ctx, apiKey, season, model.NormalizeScoring(scoring), startWeek, endWeek)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	if err := c.db.SaveFPPoints(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
