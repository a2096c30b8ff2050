package espn

import (
	"strconv"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

// lineupSlots maps ESPN's lineupSlotId enumeration to display labels. The
// enumeration grows season to season; unknown ids pass through as their
// decimal string form.
var lineupSlots = map[int]string{
	0:  "QB",
	1:  "TQB",
	2:  "RB",
	3:  "RB/WR",
	4:  "WR",
	5:  "WR/TE",
	6:  "TE",
	7:  "OP",
	8:  "DT",
	9:  "DE",
	10: "LB",
	11: "DL",
	12: "CB",
	13: "S",
	14: "DB",
	15: "DP",
	16: "D/ST",
	17: "K",
	18: "P",
	19: "HC",
	20: "BE",
	21: "IR",
	23: "FLEX",
	24: "EDR",
}

func lineupSlotLabel(id int) string {
	if label, ok := lineupSlots[id]; ok {
		return label
	}
	return strconv.Itoa(id)
}

// defaultPositions maps ESPN's defaultPositionId to primary positions.
var defaultPositions = map[int]model.Position{
	1:  model.POS_QB,
	2:  model.POS_QB,
	3:  model.POS_RB,
	4:  model.POS_WR,
	5:  model.POS_TE,
	16: model.POS_DST,
	17: model.POS_K,
}

func positionFor(defaultPositionID int) model.Position {
	if pos, ok := defaultPositions[defaultPositionID]; ok {
		return pos
	}
	return ""
}

// proTeams maps ESPN's proTeamId to canonical NFL abbreviations.
var proTeams = map[int]string{
	1:  "ATL",
	2:  "BUF",
	3:  "CHI",
	4:  "CIN",
	5:  "CLE",
	6:  "DAL",
	7:  "DEN",
	8:  "DET",
	9:  "GB",
	10: "TEN",
	11: "IND",
	12: "KC",
	13: "LV",
	14: "LAR",
	15: "MIA",
	16: "MIN",
	17: "NE",
	18: "NO",
	19: "NYG",
	20: "NYJ",
	21: "PHI",
	22: "ARI",
	23: "PIT",
	24: "LAC",
	25: "SF",
	26: "SEA",
	27: "TB",
	28: "WSH",
	29: "CAR",
	30: "JAX",
	33: "BAL",
	34: "HOU",
}

func proTeamAbbr(id int) string {
	if abbr, ok := proTeams[id]; ok {
		return abbr
	}
	return ""
}
