package model

import (
	"fmt"
	"strings"
)

// Scoring variants understood by the rankings provider.
const (
	ScoringPPR  = "ppr"
	ScoringHalf = "half"
	ScoringStd  = "std"
)

// AllScorings in the order the points aggregator processes them.
var AllScorings = []string{ScoringStd, ScoringHalf, ScoringPPR}

// Rank map types exposed by the rankings provider.
const (
	RankTypeECR  = "ECR"
	RankTypeROS  = "ROS"
	RankTypeWeek = "WEEK"
	RankTypeAuto = "AUTO"
)

// NormalizeScoring folds the provider spellings of a scoring variant into
// one of ppr/half/std. Unrecognized input defaults to ppr.
func NormalizeScoring(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "std", "standard", "non-ppr":
		return ScoringStd
	case "half", "half-ppr", "halfppr", "0.5", "half_ppr":
		return ScoringHalf
	default:
		return ScoringPPR
	}
}

// NormalizeRankType upper-cases a rank type and defaults to AUTO.
func NormalizeRankType(t string) string {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case RankTypeECR:
		return RankTypeECR
	case RankTypeROS:
		return RankTypeROS
	case RankTypeWeek:
		return RankTypeWeek
	default:
		return RankTypeAuto
	}
}

// RankMap maps the canonical "NAME|TEAM|POS" key to a consensus rank.
type RankMap map[string]int

// RankSet is a built rank map plus the parameters it was built for.
type RankSet struct {
	Season  int     `json:"season"`
	Week    int     `json:"week"`
	Scoring string  `json:"scoring"`
	Type    string  `json:"type"`
	Count   int     `json:"count"`
	RankMap RankMap `json:"rankMap"`
}

// RankCacheKey builds the KV key for a rank map.
func RankCacheKey(season, week int, scoring, rankType string) string {
	return fmt.Sprintf("rank:%d:%d:%s:%s", season, week, NormalizeScoring(scoring), NormalizeRankType(rankType))
}

// Merge folds entries into the map. On a key collision the lower rank wins.
func (m RankMap) Merge(key string, rank int) {
	if existing, ok := m[key]; !ok || rank < existing {
		m[key] = rank
	}
}
