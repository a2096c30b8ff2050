package sleeper

import (
	"fmt"
	"strings"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

type sleeperUser struct {
	UserID      string         `json:"user_id"`
	Username    string         `json:"username"`
	DisplayName string         `json:"display_name"`
	Avatar      string         `json:"avatar"`
	Metadata    map[string]any `json:"metadata"`
}

type sleeperLeague struct {
	LeagueID        string         `json:"league_id"`
	Name            string         `json:"name"`
	Season          string         `json:"season"`
	TotalRosters    int            `json:"total_rosters"`
	ScoringSettings map[string]any `json:"scoring_settings"`
}

type sleeperRoster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
}

type sleeperPlayer struct {
	ID        string         `json:"player_id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Position  string         `json:"position"`
	Team      string         `json:"team"`
	Status    string         `json:"status"`
	Injury    string         `json:"injury_status"`
	Metadata  map[string]any `json:"metadata"`
}

// SlimPlayer is the reduced player card served by the players index. The
// full /v1/players/nfl payload is several MB; the slim index keeps only
// what roster rendering and matching need.
type SlimPlayer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Pos      string `json:"pos"`
	Team     string `json:"team"`
	Status   string `json:"status,omitempty"`
	Injury   string `json:"injury,omitempty"`
	Headshot string `json:"headshot,omitempty"`
}

func (p *sleeperPlayer) toSlim() SlimPlayer {
	return SlimPlayer{
		ID:       p.ID,
		Name:     model.JoinName(p.FirstName, p.LastName),
		Pos:      string(model.ParsePosition(p.Position)),
		Team:     model.ParseTeamAbbr(p.Team),
		Status:   p.Status,
		Injury:   p.Injury,
		Headshot: headshotURL(p.ID, p.Metadata),
	}
}

// Team display name preference: metadata team_name, then display name, then
// username, then a synthesized "Roster N".
func teamNameFor(u *sleeperUser, rosterID int) string {
	if u != nil {
		if u.Metadata != nil {
			if tn, ok := u.Metadata["team_name"].(string); ok && strings.TrimSpace(tn) != "" {
				return tn
			}
		}
		if u.DisplayName != "" {
			return u.DisplayName
		}
		if u.Username != "" {
			return u.Username
		}
	}
	return fmt.Sprintf("Roster %d", rosterID)
}

func ownerNameFor(u *sleeperUser) string {
	if u == nil {
		return ""
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

func avatarURL(avatar string) *string {
	if avatar == "" {
		return nil
	}
	url := avatar
	if !strings.HasPrefix(avatar, "http://") && !strings.HasPrefix(avatar, "https://") {
		url = fmt.Sprintf("https://sleepercdn.com/avatars/thumbs/%s", avatar)
	}
	return &url
}

func headshotURL(id string, meta map[string]any) string {
	if meta != nil {
		if hs, ok := meta["headshot"].(string); ok && hs != "" {
			return hs
		}
	}
	return fmt.Sprintf("https://sleepercdn.com/content/nfl/players/%s.jpg", id)
}
