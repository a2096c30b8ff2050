package model

import (
	"strings"
)

type Position string

const (
	POS_QB   Position = "QB"
	POS_RB   Position = "RB"
	POS_WR   Position = "WR"
	POS_TE   Position = "TE"
	POS_K    Position = "K"
	POS_DST  Position = "D/ST"
	POS_FLEX Position = "FLEX"
	POS_OP   Position = "OP"
	POS_BE   Position = "BE"
	POS_IR   Position = "IR"
)

// DefaultRankPositions is the set of positions requested when building a
// consensus rank map.
var DefaultRankPositions = []Position{POS_QB, POS_RB, POS_WR, POS_TE, POS_K, POS_DST}

// ParsePosition canonicalizes a provider position label. The defensive
// spellings collapse to D/ST and PK collapses to K; anything else passes
// through upper-cased so unknown provider labels survive a round trip.
func ParsePosition(pos string) Position {
	p := strings.ToUpper(strings.TrimSpace(pos))
	switch p {
	case "DEF", "D", "DST", "DST/DEF", "D/ST":
		return POS_DST
	case "PK":
		return POS_K
	default:
		return Position(p)
	}
}

func (p Position) String() string {
	return string(p)
}
