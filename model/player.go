package model

import (
	"fmt"
	"math"
	"strconv"
)

// Player is the normalized player shape. IDs are provider-local strings;
// FPID carries the external rankings id when the provider exposes one.
type Player struct {
	Platform   string   `json:"platform"`
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Pos        Position `json:"pos"`
	NFLAbbr    string   `json:"team"`
	LineupSlot string   `json:"lineupSlot"`
	Injury     string   `json:"injury,omitempty"`
	Status     string   `json:"status,omitempty"`
	FPID       string   `json:"fpId,omitempty"`
	Headshot   string   `json:"headshot,omitempty"`
}

// JoinName builds "First Last" without a stray separator when one of the
// components is empty.
func JoinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return fmt.Sprintf("%s %s", first, last)
	}
}

// Num coerces a loosely-typed numeric value from a provider payload.
// Strings are parsed, NaN and infinities are rejected, and anything
// unusable falls back to def.
func Num(v any, def float64) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return def
		}
		f = parsed
	default:
		return def
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// NumPtr is Num for JSON output positions where NaN must become null.
func NumPtr(v any) *float64 {
	f := Num(v, math.NaN())
	if math.IsNaN(f) {
		return nil
	}
	return &f
}
