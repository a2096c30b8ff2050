package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

const SleeperURL = "https://api.sleeper.app"

const (
	requestTimeout  = 10 * time.Second
	userIDCacheTTL  = 6 * 30 * 24 * time.Hour // usernames are effectively immutable
	playersCacheTTL = 10 * time.Minute
	playersCacheKey = "players/nfl"
)

// ErrUserNotFound is returned when the upstream does not know a username.
var ErrUserNotFound = errors.New("sleeper user not found")

type Client interface {
	// ResolveUserID accepts either a numeric user id or a username and
	// returns the numeric id.
	ResolveUserID(ctx context.Context, userOrID string) (string, error)
	GetLeaguesForUser(ctx context.Context, userID string, season int) ([]model.League, error)
	GetLeague(ctx context.Context, leagueID string) (*model.League, error)
	GetTeams(ctx context.Context, leagueID string) ([]model.Team, error)
	GetLeagueRosters(ctx context.Context, leagueID string, includePlayers bool) ([]model.TeamRoster, error)
	GetRoster(ctx context.Context, leagueID string, teamID int) (*model.TeamRoster, error)
	SearchPlayers(ctx context.Context, q string, limit int) ([]SlimPlayer, error)
	SlimPlayers(ctx context.Context) (map[string]SlimPlayer, error)
	RawPlayers(ctx context.Context) ([]byte, error)
}

type client struct {
	url        string
	httpClient *http.Client
	userIDs    *lru.LRU[string, string]
	players    *lru.LRU[string, map[string]SlimPlayer]
}

func New() (Client, error) {
	return NewWithURL(SleeperURL)
}

// NewWithURL exists so tests can point the client at a fake server.
func NewWithURL(url string) (Client, error) {
	c := &client{
		url:        url,
		httpClient: &http.Client{Timeout: requestTimeout},
		userIDs:    lru.NewLRU[string, string](256, nil, userIDCacheTTL),
		players:    lru.NewLRU[string, map[string]SlimPlayer](2, nil, playersCacheTTL),
	}
	return c, nil
}

var numericIDRegex = regexp.MustCompile(`^\d+$`)

func (c *client) ResolveUserID(ctx context.Context, userOrID string) (string, error) {
	if numericIDRegex.MatchString(userOrID) {
		return userOrID, nil
	}

	if id, ok := c.userIDs.Get(userOrID); ok {
		return id, nil
	}

	var u sleeperUser
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/user/%s", userOrID), &u); err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return "", fmt.Errorf("%w: %s", ErrUserNotFound, userOrID)
		}
		return "", err
	}
	if u.UserID == "" {
		// Unknown users sometimes come back as a 200 with "null".
		return "", fmt.Errorf("%w: %s", ErrUserNotFound, userOrID)
	}

	c.userIDs.Add(userOrID, u.UserID)
	return u.UserID, nil
}

func (c *client) GetLeaguesForUser(ctx context.Context, userID string, season int) ([]model.League, error) {
	var leagues []sleeperLeague
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/user/%s/leagues/nfl/%d", userID, season), &leagues); err != nil {
		return nil, err
	}

	result := make([]model.League, 0, len(leagues))
	for _, l := range leagues {
		result = append(result, toLeague(&l, season))
	}
	return result, nil
}

func (c *client) GetLeague(ctx context.Context, leagueID string) (*model.League, error) {
	var l sleeperLeague
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/league/%s", leagueID), &l); err != nil {
		return nil, err
	}
	if l.LeagueID == "" {
		return nil, fmt.Errorf("sleeper league not found: %s", leagueID)
	}
	season := int(model.Num(l.Season, 0))
	league := toLeague(&l, season)
	return &league, nil
}

func (c *client) GetTeams(ctx context.Context, leagueID string) ([]model.Team, error) {
	rosters, err := c.GetLeagueRosters(ctx, leagueID, false)
	if err != nil {
		return nil, err
	}
	teams := make([]model.Team, 0, len(rosters))
	for _, r := range rosters {
		teams = append(teams, r.Team)
	}
	return teams, nil
}

func (c *client) GetLeagueRosters(ctx context.Context, leagueID string, includePlayers bool) ([]model.TeamRoster, error) {
	var users []sleeperUser
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/league/%s/users", leagueID), &users); err != nil {
		return nil, fmt.Errorf("error loading league users: %w", err)
	}

	var rosters []sleeperRoster
	if err := c.getJSON(ctx, fmt.Sprintf("/v1/league/%s/rosters", leagueID), &rosters); err != nil {
		return nil, fmt.Errorf("error loading league rosters: %w", err)
	}

	usersByID := make(map[string]*sleeperUser, len(users))
	ownerMap := make(map[string]string, len(users))
	for i := range users {
		usersByID[users[i].UserID] = &users[i]
		ownerMap[users[i].UserID] = ownerNameFor(&users[i])
	}

	var index map[string]SlimPlayer
	if includePlayers {
		var err error
		index, err = c.SlimPlayers(ctx)
		if err != nil {
			return nil, err
		}
	}

	result := make([]model.TeamRoster, 0, len(rosters))
	for _, r := range rosters {
		owner := usersByID[r.OwnerID]
		team := model.Team{
			TeamID:   r.RosterID,
			TeamName: teamNameFor(owner, r.RosterID),
			Owner:    ownerNameFor(owner),
			OwnerMap: ownerMap,
		}
		if owner != nil {
			team.Logo = avatarURL(owner.Avatar)
			team.Owners = []string{owner.UserID}
		}

		tr := model.TeamRoster{Team: team}
		if includePlayers {
			tr.Players = normalizeRoster(&r, index)
		}
		result = append(result, tr)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Team.TeamID < result[j].Team.TeamID })
	return result, nil
}

func (c *client) GetRoster(ctx context.Context, leagueID string, teamID int) (*model.TeamRoster, error) {
	rosters, err := c.GetLeagueRosters(ctx, leagueID, true)
	if err != nil {
		return nil, err
	}
	for i := range rosters {
		if rosters[i].Team.TeamID == teamID {
			return &rosters[i], nil
		}
	}
	return nil, fmt.Errorf("team %d not found in league %s", teamID, leagueID)
}

func (c *client) SearchPlayers(ctx context.Context, q string, limit int) ([]SlimPlayer, error) {
	index, err := c.SlimPlayers(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 25
	}

	canon := model.CanonName(q)
	matches := make([]SlimPlayer, 0, limit)
	for _, p := range index {
		if canon == "" || strings.Contains(model.CanonName(p.Name), canon) {
			matches = append(matches, p)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// SlimPlayers returns the slim-indexed player directory. The underlying
// payload is a few MB, so the parsed index is held for ten minutes.
func (c *client) SlimPlayers(ctx context.Context) (map[string]SlimPlayer, error) {
	if index, ok := c.players.Get(playersCacheKey); ok {
		return index, nil
	}

	var parsed map[string]sleeperPlayer
	if err := c.getJSON(ctx, "/v1/players/nfl", &parsed); err != nil {
		return nil, err
	}

	index := make(map[string]SlimPlayer, len(parsed))
	for id, p := range parsed {
		if p.ID == "" {
			p.ID = id
		}
		if p.FirstName == "Player" && p.LastName == "Invalid" {
			continue
		}
		index[p.ID] = p.toSlim()
	}

	c.players.Add(playersCacheKey, index)
	return index, nil
}

func (c *client) RawPlayers(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/v1/players/nfl", nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, path: "/v1/players/nfl"}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading players payload: %w", err)
	}
	return b, nil
}

func normalizeRoster(r *sleeperRoster, index map[string]SlimPlayer) []model.Player {
	started := make(map[string]bool, len(r.Starters))
	for _, id := range r.Starters {
		started[id] = true
	}

	players := make([]model.Player, 0, len(r.Players))
	appendPlayer := func(id string, starter bool) {
		slim, ok := index[id]
		if !ok {
			slim = SlimPlayer{ID: id, Name: id}
		}
		slot := "BE"
		if starter {
			slot = slim.Pos
		}
		players = append(players, model.Player{
			Platform:   model.PlatformSleeper,
			ID:         id,
			Name:       slim.Name,
			Pos:        model.Position(slim.Pos),
			NFLAbbr:    slim.Team,
			LineupSlot: slot,
			Status:     slim.Status,
			Injury:     slim.Injury,
			Headshot:   slim.Headshot,
		})
	}

	// Starters first, in lineup order, then the bench.
	for _, id := range r.Starters {
		if id == "" || id == "0" {
			continue
		}
		appendPlayer(id, true)
	}
	for _, id := range r.Players {
		if started[id] {
			continue
		}
		appendPlayer(id, false)
	}
	return players
}

func toLeague(l *sleeperLeague, season int) model.League {
	return model.League{
		Platform:   model.PlatformSleeper,
		LeagueID:   l.LeagueID,
		Season:     season,
		LeagueName: l.Name,
		Size:       l.TotalRosters,
		Scoring:    l.ScoringSettings,
		URLs: map[string]string{
			"league": fmt.Sprintf("https://sleeper.com/leagues/%s", l.LeagueID),
		},
	}
}

type statusError struct {
	code int
	path string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.code, e.path)
}

func (c *client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+path, nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode, path: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error parsing response from sleeper: %w", err)
	}
	return nil
}
