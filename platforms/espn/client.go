package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

const (
	ReadsURL = "https://lm-api-reads.fantasy.espn.com/apis/v3"
	LMURL    = "https://fantasy.espn.com/apis/v3"
	SiteURL  = "https://site.api.espn.com"
	FanURL   = "https://fan.api.espn.com/apis/v2"

	requestTimeout     = 10 * time.Second
	scoreboardCacheTTL = 5 * time.Minute
	previewLimit       = 240
)

// ErrAuthRequired is returned when the upstream answers a league fetch with
// a sign-in redirect or a 401. Private leagues need a SWID/espn_s2 pair.
var ErrAuthRequired = errors.New("espn auth required")

// UpstreamError carries the upstream status plus a truncated body preview.
type UpstreamError struct {
	Status  int
	Preview string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("espn upstream returned %d: %s", e.Status, e.Preview)
}

// Credentials is the cookie pair needed to read a private league.
type Credentials struct {
	SWID string
	S2   string
}

func (c Credentials) Empty() bool {
	return c.SWID == "" || c.S2 == ""
}

type Client interface {
	GetLeague(ctx context.Context, creds Credentials, leagueID string, season int) (*model.League, error)
	GetTeams(ctx context.Context, creds Credentials, leagueID string, season int) ([]model.Team, []string, error)
	GetLeagueRosters(ctx context.Context, creds Credentials, leagueID string, season, week int) ([]model.TeamRoster, error)
	GetRoster(ctx context.Context, creds Credentials, leagueID string, season, week, teamID int) (*model.TeamRoster, error)
	// GetWeeklyPoints returns teamId -> fantasy points for one matchup
	// period. An empty map with no error means the week has a schedule but
	// no points yet.
	GetWeeklyPoints(ctx context.Context, creds Credentials, leagueID string, season, week int) (map[int]float64, error)
	// GetMatchupSchedule returns week -> teamId -> opponent teamId.
	GetMatchupSchedule(ctx context.Context, creds Credentials, leagueID string, season int) (map[int]map[int]int, int, error)
	SearchPlayers(ctx context.Context, creds Credentials, leagueID string, season int, q string, limit int) ([]model.Player, error)
	// FanLeagues lists the fantasy-football leagues a SWID participates in.
	FanLeagues(ctx context.Context, creds Credentials, swid string, season, gameID int) ([]model.League, error)
	// Opponents returns NFL abbr -> opponent abbr for one real-NFL week.
	// Teams on bye are absent from the map.
	Opponents(ctx context.Context, season, week int) (map[string]string, error)
}

type client struct {
	reads       string
	lm          string
	site        string
	fan         string
	httpClient  *http.Client
	scoreboards *lru.LRU[string, map[string]string]
}

func New() (Client, error) {
	return NewWithURLs(ReadsURL, LMURL, SiteURL, FanURL)
}

// NewWithURLs exists so tests can point every host alias at fake servers.
func NewWithURLs(reads, lm, site, fan string) (Client, error) {
	c := &client{
		reads: reads,
		lm:    lm,
		site:  site,
		fan:   fan,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			// A 3xx from the league API is a sign-in redirect, not
			// something to follow.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		scoreboards: lru.NewLRU[string, map[string]string](64, nil, scoreboardCacheTTL),
	}
	return c, nil
}

// fetchLeague runs the host-alias fallback: lm-api-reads first, then the
// fantasy host, then the leagueHistory form. A non-2xx or empty-teams
// response moves on to the next variant; the last error wins when all fail.
func (c *client) fetchLeague(ctx context.Context, creds Credentials, leagueID string, season int, views []string, extra url.Values) (*leaguePayload, []string, error) {
	q := url.Values{}
	for _, v := range views {
		q.Add("view", v)
	}
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	variants := []struct {
		url     string
		history bool
	}{
		{fmt.Sprintf("%s/games/ffl/seasons/%d/segments/0/leagues/%s?%s", c.reads, season, leagueID, q.Encode()), false},
		{fmt.Sprintf("%s/games/ffl/seasons/%d/segments/0/leagues/%s?%s", c.lm, season, leagueID, q.Encode()), false},
		{fmt.Sprintf("%s/games/ffl/leagueHistory/%s?seasonId=%d&%s", c.lm, leagueID, season, q.Encode()), true},
	}

	wantTeams := false
	for _, v := range views {
		if v == "mTeam" {
			wantTeams = true
		}
	}

	attempted := make([]string, 0, len(variants))
	var lastErr error
	for _, variant := range variants {
		attempted = append(attempted, variant.url)

		payload, err := c.fetchLeagueVariant(ctx, creds, variant.url, variant.history)
		if err != nil {
			if errors.Is(err, ErrAuthRequired) {
				return nil, attempted, err
			}
			lastErr = err
			continue
		}
		if wantTeams && len(payload.Teams) == 0 {
			lastErr = fmt.Errorf("no teams in response from %s", variant.url)
			continue
		}
		return payload, attempted, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("all espn league fetch variants failed for league %s", leagueID)
	}
	return nil, attempted, lastErr
}

func (c *client) fetchLeagueVariant(ctx context.Context, creds Credentials, rawURL string, history bool) (*leaguePayload, error) {
	body, err := c.get(ctx, creds, rawURL)
	if err != nil {
		return nil, err
	}

	if history {
		var payloads []leaguePayload
		if err := json.Unmarshal(body, &payloads); err != nil {
			return nil, &UpstreamError{Status: http.StatusBadGateway, Preview: "non-JSON league history: " + preview(body)}
		}
		if len(payloads) == 0 {
			return nil, fmt.Errorf("empty league history response")
		}
		return &payloads[0], nil
	}

	var payload leaguePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &UpstreamError{Status: http.StatusBadGateway, Preview: "non-JSON league response: " + preview(body)}
	}
	return &payload, nil
}

func (c *client) get(ctx context.Context, creds Credentials, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Fantasy-Source", "kona")
	req.Header.Set("X-Fantasy-Platform", "kona-PROD")
	if !creds.Empty() {
		req.Header.Set("Cookie", fmt.Sprintf("SWID=%s; espn_s2=%s", creds.SWID, creds.S2))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading espn response: %w", err)
	}

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return nil, ErrAuthRequired
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrAuthRequired
	case resp.StatusCode >= 400:
		return nil, &UpstreamError{Status: resp.StatusCode, Preview: preview(body)}
	}
	return body, nil
}

func (c *client) GetLeague(ctx context.Context, creds Credentials, leagueID string, season int) (*model.League, error) {
	payload, _, err := c.fetchLeague(ctx, creds, leagueID, season, []string{"mSettings"}, nil)
	if err != nil {
		return nil, err
	}

	league := &model.League{
		Platform: model.PlatformESPN,
		LeagueID: leagueID,
		Season:   season,
		URLs:     leagueURLs(leagueID, season),
	}
	if payload.Settings != nil {
		league.LeagueName = payload.Settings.Name
		league.Size = payload.Settings.Size
		league.Scoring = payload.Settings.ScoringSettings
	}
	return league, nil
}

func (c *client) GetTeams(ctx context.Context, creds Credentials, leagueID string, season int) ([]model.Team, []string, error) {
	payload, upstream, err := c.fetchLeague(ctx, creds, leagueID, season, []string{"mTeam", "mSettings"}, nil)
	if err != nil {
		return nil, upstream, err
	}
	return normalizeTeams(payload), upstream, nil
}

func (c *client) GetLeagueRosters(ctx context.Context, creds Credentials, leagueID string, season, week int) ([]model.TeamRoster, error) {
	extra := url.Values{}
	if week > 0 {
		extra.Set("scoringPeriodId", strconv.Itoa(week))
	}
	payload, _, err := c.fetchLeague(ctx, creds, leagueID, season, []string{"mRoster", "mTeam"}, extra)
	if err != nil {
		return nil, err
	}

	teams := normalizeTeams(payload)
	byID := make(map[int]*espnTeam, len(payload.Teams))
	for i := range payload.Teams {
		byID[payload.Teams[i].ID] = &payload.Teams[i]
	}

	result := make([]model.TeamRoster, 0, len(teams))
	for _, t := range teams {
		tr := model.TeamRoster{Team: t}
		if raw := byID[t.TeamID]; raw != nil && raw.Roster != nil {
			tr.Players = normalizeRoster(raw.Roster.Entries)
		}
		result = append(result, tr)
	}
	return result, nil
}

func (c *client) GetRoster(ctx context.Context, creds Credentials, leagueID string, season, week, teamID int) (*model.TeamRoster, error) {
	rosters, err := c.GetLeagueRosters(ctx, creds, leagueID, season, week)
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

// pointsViews in preference order. mSchedule carries the cleanest totals,
// mMatchupScore and mBoxscore fill in when it yields nothing.
var pointsViews = []string{"mSchedule", "mMatchupScore", "mBoxscore"}

func (c *client) GetWeeklyPoints(ctx context.Context, creds Credentials, leagueID string, season, week int) (map[int]float64, error) {
	var lastErr error
	sawSchedule := false

	for _, view := range pointsViews {
		extra := url.Values{}
		extra.Set("scoringPeriodId", strconv.Itoa(week))
		payload, _, err := c.fetchLeague(ctx, creds, leagueID, season, []string{view}, extra)
		if err != nil {
			if errors.Is(err, ErrAuthRequired) {
				return nil, err
			}
			lastErr = err
			continue
		}
		if len(payload.Schedule) == 0 {
			continue
		}
		sawSchedule = true

		points := make(map[int]float64)
		for _, entry := range payload.Schedule {
			if entry.MatchupPeriod != 0 && entry.MatchupPeriod != week {
				continue
			}
			for _, side := range []*matchupSide{entry.Home, entry.Away} {
				if side == nil {
					continue
				}
				if pts, ok := side.points(); ok {
					points[side.TeamID] = pts
				}
			}
		}
		if len(points) > 0 {
			return points, nil
		}
	}

	if sawSchedule {
		// Early in the week: the schedule exists but no side has points.
		return map[int]float64{}, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("no schedule found for league %s week %d", leagueID, week)
}

func (c *client) GetMatchupSchedule(ctx context.Context, creds Credentials, leagueID string, season int) (map[int]map[int]int, int, error) {
	payload, _, err := c.fetchLeague(ctx, creds, leagueID, season, []string{"mMatchupScore", "mSettings"}, nil)
	if err != nil {
		return nil, 0, err
	}

	weeks := 14
	if payload.Settings != nil && payload.Settings.ScheduleSettings != nil && payload.Settings.ScheduleSettings.MatchupPeriodCount > 0 {
		weeks = payload.Settings.ScheduleSettings.MatchupPeriodCount
	}

	schedule := make(map[int]map[int]int)
	for _, entry := range payload.Schedule {
		if entry.Home == nil || entry.Away == nil {
			continue
		}
		week := entry.MatchupPeriod
		if schedule[week] == nil {
			schedule[week] = make(map[int]int)
		}
		schedule[week][entry.Home.TeamID] = entry.Away.TeamID
		schedule[week][entry.Away.TeamID] = entry.Home.TeamID
	}
	return schedule, weeks, nil
}

func (c *client) SearchPlayers(ctx context.Context, creds Credentials, leagueID string, season int, q string, limit int) ([]model.Player, error) {
	payload, _, err := c.fetchLeague(ctx, creds, leagueID, season, []string{"kona_player_info"}, nil)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 25
	}

	canon := model.CanonName(q)
	players := make([]model.Player, 0, limit)
	for _, entry := range payload.Players {
		if entry.Player == nil {
			continue
		}
		p := normalizePlayer(entry.Player, "")
		if canon == "" || strings.Contains(model.CanonName(p.Name), canon) {
			players = append(players, p)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	if len(players) > limit {
		players = players[:limit]
	}
	return players, nil
}

// gameCodeRegex pulls the fantasy game code (ffl, fhl, flb, ...) out of the
// group href in a Fan API preference. Best effort; unmatched entries are
// assumed to be football.
var gameCodeRegex = regexp.MustCompile(`/(ffl|fhl|flb|fba|fwnba)/`)

func (c *client) FanLeagues(ctx context.Context, creds Credentials, swid string, season, gameID int) ([]model.League, error) {
	body, err := c.get(ctx, creds, fmt.Sprintf("%s/fans/%s", c.fan, url.PathEscape(swid)))
	if err != nil {
		return nil, err
	}

	var payload fanPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &UpstreamError{Status: http.StatusBadGateway, Preview: "non-JSON fan response: " + preview(body)}
	}

	leagues := make([]model.League, 0, len(payload.Preferences))
	for _, pref := range payload.Preferences {
		if pref.Metadata == nil || pref.Metadata.Entry == nil {
			continue
		}
		for _, group := range pref.Metadata.Entry.Groups {
			code := "ffl"
			if m := gameCodeRegex.FindStringSubmatch(group.Href); m != nil {
				code = m[1]
			}
			if gameID == 1 && code != "ffl" {
				continue
			}
			leagueID := strconv.Itoa(group.GroupID)
			leagues = append(leagues, model.League{
				Platform:   model.PlatformESPN,
				LeagueID:   leagueID,
				Season:     season,
				LeagueName: group.GroupName,
				Size:       group.GroupSize,
				URLs:       leagueURLs(leagueID, season),
			})
		}
	}
	return leagues, nil
}

func (c *client) Opponents(ctx context.Context, season, week int) (map[string]string, error) {
	cacheKey := fmt.Sprintf("%d:%d", season, week)
	if opp, ok := c.scoreboards.Get(cacheKey); ok {
		return opp, nil
	}

	sbURL := fmt.Sprintf("%s/apis/site/v2/sports/football/nfl/scoreboard?seasontype=2&week=%d&dates=%d", c.site, week, season)
	body, err := c.get(ctx, Credentials{}, sbURL)
	if err != nil {
		return nil, err
	}

	var payload scoreboardPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &UpstreamError{Status: http.StatusBadGateway, Preview: "non-JSON scoreboard: " + preview(body)}
	}

	opponents := make(map[string]string)
	for _, event := range payload.Events {
		for _, comp := range event.Competitions {
			if len(comp.Competitors) != 2 {
				continue
			}
			a := competitorAbbr(comp.Competitors[0])
			b := competitorAbbr(comp.Competitors[1])
			if a == "" || b == "" {
				continue
			}
			opponents[a] = b
			opponents[b] = a
		}
	}

	c.scoreboards.Add(cacheKey, opponents)
	return opponents, nil
}

func competitorAbbr(c scoreboardCompetitor) string {
	if c.Team == nil {
		return ""
	}
	return model.ParseTeamAbbr(c.Team.Abbreviation)
}

func normalizeTeams(payload *leaguePayload) []model.Team {
	ownersMap := make(map[string]string, len(payload.Members))
	for _, m := range payload.Members {
		name := m.DisplayName
		if name == "" {
			name = model.JoinName(m.FirstName, m.LastName)
		}
		ownersMap[m.ID] = name
	}

	teams := make([]model.Team, 0, len(payload.Teams))
	for _, t := range payload.Teams {
		name := t.Name
		if name == "" {
			name = strings.TrimSpace(model.JoinName(t.Location, t.Nickname))
		}
		if name == "" {
			name = fmt.Sprintf("Team %d", t.ID)
		}

		team := model.Team{
			TeamID:   t.ID,
			TeamName: name,
			Owners:   t.Owners,
			OwnerMap: ownersMap,
		}
		if len(t.Owners) > 0 {
			team.Owner = ownersMap[t.Owners[0]]
		}
		if t.Logo != "" {
			logo := t.Logo
			team.Logo = &logo
		}
		if t.Record != nil && t.Record.Overall != nil {
			o := t.Record.Overall
			team.Record = fmt.Sprintf("%d-%d-%d", o.Wins, o.Losses, o.Ties)
		}
		teams = append(teams, team)
	}

	sort.Slice(teams, func(i, j int) bool { return teams[i].TeamID < teams[j].TeamID })
	return teams
}

func normalizeRoster(entries []rosterEntry) []model.Player {
	players := make([]model.Player, 0, len(entries))
	for _, entry := range entries {
		p := entry.Player
		if p == nil && entry.PlayerPool != nil {
			p = entry.PlayerPool.Player
		}
		if p == nil {
			continue
		}
		np := normalizePlayer(p, lineupSlotLabel(entry.LineupSlotID))
		if np.Injury == "" {
			np.Injury = entry.InjuryStatus
		}
		players = append(players, np)
	}
	return players
}

func normalizePlayer(p *espnPlayer, slot string) model.Player {
	name := p.FullName
	if name == "" {
		name = model.JoinName(p.FirstName, p.LastName)
	}
	injury := ""
	if p.InjuryStatus != "" && p.InjuryStatus != "ACTIVE" {
		injury = p.InjuryStatus
	}
	return model.Player{
		Platform:   model.PlatformESPN,
		ID:         strconv.Itoa(p.ID),
		Name:       name,
		Pos:        positionFor(p.DefaultPositionID),
		NFLAbbr:    proTeamAbbr(p.ProTeamID),
		LineupSlot: slot,
		Injury:     injury,
		Headshot:   fmt.Sprintf("https://a.espncdn.com/i/headshots/nfl/players/full/%d.png", p.ID),
	}
}

func leagueURLs(leagueID string, season int) map[string]string {
	return map[string]string{
		"league": fmt.Sprintf("https://fantasy.espn.com/football/league?leagueId=%s&seasonId=%d", leagueID, season),
		"scores": fmt.Sprintf("https://fantasy.espn.com/football/league/scoreboard?leagueId=%s&seasonId=%d", leagueID, season),
	}
}

func preview(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > previewLimit {
		return s[:previewLimit]
	}
	return s
}
