package fantasypros

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
)

const FantasyProsURL = "https://api.fantasypros.com/public/v2/json/nfl"

const (
	requestTimeout   = 10 * time.Second
	responseCacheTTL = 3 * time.Hour
	previewLimit     = 200
)

// ErrMissingKey is returned when no API key was supplied with the request.
var ErrMissingKey = errors.New("missing fantasypros api key")

// RankRow is a single player's consensus rank for one position request.
type RankRow struct {
	PlayerID string
	Name     string
	Team     string
	Position string
	Rank     int
}

type Client interface {
	// GetRankings fetches consensus rankings for one position. rankType is
	// ECR or WEEK; the weekly form also carries the week number.
	GetRankings(ctx context.Context, apiKey string, season, week int, scoring, rankType string, position model.Position) ([]RankRow, error)
	// GetPlayerPoints fetches staged per-player weekly points.
	GetPlayerPoints(ctx context.Context, apiKey string, season int, scoring string, startWeek, endWeek int) ([]model.FPPointsRow, error)
}

type client struct {
	url        string
	httpClient *http.Client
	// responses holds raw upstream bodies keyed by URL, standing in for
	// an HTTP cache with a three-hour max-age.
	responses *lru.LRU[string, []byte]
}

func New() (Client, error) {
	return NewWithURL(FantasyProsURL)
}

// NewWithURL exists so tests can point the client at a fake server.
func NewWithURL(url string) (Client, error) {
	c := &client{
		url:        url,
		httpClient: &http.Client{Timeout: requestTimeout},
		responses:  lru.NewLRU[string, []byte](200, nil, responseCacheTTL),
	}
	return c, nil
}

type rankingsPayload struct {
	Players []rankingsPlayer `json:"players"`
}

type rankingsPlayer struct {
	PlayerID   json.Number `json:"player_id"`
	Name       string      `json:"player_name"`
	TeamID     string      `json:"player_team_id"`
	PositionID string      `json:"player_position_id"`
	RankECR    json.Number `json:"rank_ecr"`
}

func (c *client) GetRankings(ctx context.Context, apiKey string, season, week int, scoring, rankType string, position model.Position) ([]RankRow, error) {
	q := url.Values{}
	q.Set("position", fpPosition(position))
	q.Set("scoring", strings.ToUpper(model.NormalizeScoring(scoring)))
	q.Set("type", strings.ToLower(rankType))
	if strings.EqualFold(rankType, model.RankTypeWeek) {
		q.Set("week", fmt.Sprintf("%d", week))
	}
	rawURL := fmt.Sprintf("%s/%d/consensus-rankings?%s", c.url, season, q.Encode())

	body, err := c.get(ctx, apiKey, rawURL)
	if err != nil {
		return nil, err
	}

	var payload rankingsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("error parsing rankings response: %w", err)
	}

	rows := make([]RankRow, 0, len(payload.Players))
	for _, p := range payload.Players {
		rank, err := p.RankECR.Int64()
		if err != nil || rank <= 0 {
			continue
		}
		rows = append(rows, RankRow{
			PlayerID: p.PlayerID.String(),
			Name:     p.Name,
			Team:     p.TeamID,
			Position: p.PositionID,
			Rank:     int(rank),
		})
	}
	return rows, nil
}

type pointsPayload struct {
	Players []pointsPlayer `json:"players"`
}

type pointsPlayer struct {
	PlayerID   json.Number        `json:"player_id"`
	Name       string             `json:"player_name"`
	PositionID string             `json:"position_id"`
	TeamID     string             `json:"team_id"`
	Points     map[string]float64 `json:"points"`
}

func (c *client) GetPlayerPoints(ctx context.Context, apiKey string, season int, scoring string, startWeek, endWeek int) ([]model.FPPointsRow, error) {
	q := url.Values{}
	q.Set("scoring", strings.ToUpper(model.NormalizeScoring(scoring)))
	q.Set("start", fmt.Sprintf("%d", startWeek))
	q.Set("end", fmt.Sprintf("%d", endWeek))
	rawURL := fmt.Sprintf("%s/%d/player-points?%s", c.url, season, q.Encode())

	body, err := c.get(ctx, apiKey, rawURL)
	if err != nil {
		return nil, err
	}

	var payload pointsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("error parsing player-points response: %w", err)
	}

	scoring = model.NormalizeScoring(scoring)
	rows := make([]model.FPPointsRow, 0, len(payload.Players)*4)
	for _, p := range payload.Players {
		for weekStr, pts := range p.Points {
			week := int(model.Num(weekStr, 0))
			if week < startWeek || week > endWeek || week <= 0 {
				continue
			}
			rows = append(rows, model.FPPointsRow{
				Season:   season,
				Week:     week,
				Scoring:  scoring,
				PlayerID: p.PlayerID.String(),
				Name:     p.Name,
				Position: strings.ToUpper(p.PositionID),
				TeamAbbr: model.ParseTeamAbbr(p.TeamID),
				Points:   pts,
			})
		}
	}
	return rows, nil
}

func (c *client) get(ctx context.Context, apiKey, rawURL string) ([]byte, error) {
	if apiKey == "" {
		return nil, ErrMissingKey
	}

	if body, ok := c.responses.Get(rawURL); ok {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading fantasypros response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: upstream returned %d", ErrMissingKey, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fantasypros returned %d: %s", resp.StatusCode, bodyPreview(body))
	}

	c.responses.Add(rawURL, body)
	return body, nil
}

// fpPosition converts a canonical position to the provider's spelling.
func fpPosition(p model.Position) string {
	if p == model.POS_DST {
		return "DST"
	}
	return string(p)
}

func bodyPreview(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > previewLimit {
		return s[:previewLimit]
	}
	return s
}
