package rankcache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/fantasypros"
)

const (
	// Rank maps go stale slowly; six hours bounds how long a bad build
	// can linger.
	DefaultTTL = 6 * time.Hour

	SourceKV    = "RANKS_KV:kv"
	SourceBuilt = "RANKS_KV:built"

	defaultMaxWeek = 18
)

// Result is a rank set plus where it came from and whether the KV write
// landed.
type Result struct {
	model.RankSet
	Source    string `json:"source"`
	Persisted bool   `json:"persisted"`
}

// Cache serves rank maps from the shared KV store, building them from the
// rankings provider on miss.
type Cache struct {
	kv      KV
	fp      fantasypros.Client
	ttl     time.Duration
	maxWeek int
}

func New(kv KV, fp fantasypros.Client) *Cache {
	return &Cache{kv: kv, fp: fp, ttl: DefaultTTL, maxWeek: defaultMaxWeek}
}

// Get returns the rank map for (season, week, scoring, rankType). force
// skips the KV read and rebuilds.
func (c *Cache) Get(ctx context.Context, apiKey string, season, week int, scoring, rankType string, force bool) (*Result, error) {
	scoring = model.NormalizeScoring(scoring)
	rankType = model.NormalizeRankType(rankType)
	key := model.RankCacheKey(season, week, scoring, rankType)

	if !force {
		if b, ok, err := c.kv.Get(ctx, key); err != nil {
			log.Printf("rank cache read failed for %s: %v", key, err)
		} else if ok {
			var set model.RankSet
			if err := json.Unmarshal(b, &set); err == nil {
				return &Result{RankSet: set, Source: SourceKV, Persisted: true}, nil
			}
			log.Printf("discarding unparseable rank cache entry %s", key)
		}
	}

	set, err := c.build(ctx, apiKey, season, week, scoring, rankType)
	if err != nil {
		return nil, err
	}

	result := &Result{RankSet: *set, Source: SourceBuilt}
	if b, err := json.Marshal(set); err == nil {
		if err := c.kv.Set(ctx, key, b, c.ttl); err != nil {
			// The built map is still good; the caller just sees
			// persisted:false.
			log.Printf("rank cache write failed for %s: %v", key, err)
		} else {
			result.Persisted = true
		}
	}
	return result, nil
}

// build fans out across the default position set, merging every row into
// one map. On duplicate keys the lower rank wins.
func (c *Cache) build(ctx context.Context, apiKey string, season, week int, scoring, rankType string) (*model.RankSet, error) {
	var (
		mu       sync.Mutex
		rankMap  = make(model.RankMap)
		firstErr error
		wg       sync.WaitGroup
	)

	for _, pos := range model.DefaultRankPositions {
		wg.Add(1)
		go func(pos model.Position) {
			defer wg.Done()
			rows, err := c.fetchPosition(ctx, apiKey, season, week, scoring, rankType, pos)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("error fetching %s rankings: %w", pos, err)
				}
				return
			}
			for _, row := range rows {
				key := model.MakeKey(row.Name, row.Team, model.ParsePosition(row.Position))
				rankMap.Merge(key, row.Rank)
			}
		}(pos)
	}
	wg.Wait()

	if firstErr != nil && len(rankMap) == 0 {
		return nil, firstErr
	}

	return &model.RankSet{
		Season:  season,
		Week:    week,
		Scoring: scoring,
		Type:    rankType,
		Count:   len(rankMap),
		RankMap: rankMap,
	}, nil
}

// fetchPosition asks for ECR first when the type allows it, then walks
// weekly rankings down from min(maxWeek, week) until something non-empty
// comes back.
func (c *Cache) fetchPosition(ctx context.Context, apiKey string, season, week int, scoring, rankType string, pos model.Position) ([]fantasypros.RankRow, error) {
	fallback := rankType == model.RankTypeAuto

	switch rankType {
	case model.RankTypeECR, model.RankTypeAuto:
		rows, err := c.fp.GetRankings(ctx, apiKey, season, week, scoring, model.RankTypeECR, pos)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 || !fallback {
			return rows, nil
		}
	case model.RankTypeROS:
		return c.fp.GetRankings(ctx, apiKey, season, week, scoring, model.RankTypeROS, pos)
	}

	start := week
	if start > c.maxWeek {
		start = c.maxWeek
	}
	for w := start; w >= 1; w-- {
		rows, err := c.fp.GetRankings(ctx, apiKey, season, w, scoring, model.RankTypeWeek, pos)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, nil
}
