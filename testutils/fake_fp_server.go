package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

// FPAPIKey is the only key the fake rankings server accepts.
const FPAPIKey = "test-fp-key"

type fpRankEntry struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"player_name"`
	Team     string `json:"player_team_id"`
	Position string `json:"player_position_id"`
	Rank     int    `json:"rank_ecr"`
}

type fpPointsEntry struct {
	PlayerID string             `json:"player_id"`
	Name     string             `json:"player_name"`
	Position string             `json:"position_id"`
	Team     string             `json:"team_id"`
	Points   map[string]float64 `json:"points"`
}

// fpRanks matches the players in the embedded ESPN and Sleeper fixtures so
// matcher runs against the fakes resolve names end to end.
var fpRanks = map[string][]fpRankEntry{
	"QB": {
		{PlayerID: "19781", Name: "Jalen Hurts", Team: "PHI", Position: "QB", Rank: 1},
		{PlayerID: "15802", Name: "Patrick Mahomes", Team: "KC", Position: "QB", Rank: 2},
	},
	"RB": {
		{PlayerID: "22726", Name: "Bijan Robinson", Team: "ATL", Position: "RB", Rank: 1},
		{PlayerID: "20170", Name: "Breece Hall", Team: "NYJ", Position: "RB", Rank: 4},
	},
	"WR": {
		{PlayerID: "19196", Name: "Ja'Marr Chase", Team: "CIN", Position: "WR", Rank: 1},
		{PlayerID: "18244", Name: "CeeDee Lamb", Team: "DAL", Position: "WR", Rank: 2},
		{PlayerID: "13894", Name: "Tyler Lockett", Team: "SEA", Position: "WR", Rank: 30},
	},
	"TE": {
		{PlayerID: "17258", Name: "T.J. Hockenson", Team: "MIN", Position: "TE", Rank: 3},
	},
	"K": {
		{PlayerID: "17372", Name: "Harrison Butker", Team: "KC", Position: "K", Rank: 1},
	},
	"DST": {
		{PlayerID: "8050", Name: "Dallas Cowboys", Team: "DAL", Position: "DST", Rank: 2},
	},
}

var fpPoints = []fpPointsEntry{
	{PlayerID: "19781", Name: "Jalen Hurts", Position: "QB", Team: "PHI",
		Points: map[string]float64{"2": 24.3, "3": 18.9}},
	{PlayerID: "18244", Name: "CeeDee Lamb", Position: "WR", Team: "DAL",
		Points: map[string]float64{"2": 17.5, "3": 11.2}},
	{PlayerID: "20170", Name: "Breece Hall", Position: "RB", Team: "NYJ",
		Points: map[string]float64{"2": 9.8, "3": 21.4}},
	{PlayerID: "15802", Name: "Patrick Mahomes", Position: "QB", Team: "KC",
		Points: map[string]float64{"2": 26.1, "3": 22.0}},
	{PlayerID: "8050", Name: "Dallas Cowboys", Position: "DST", Team: "DAL",
		Points: map[string]float64{"2": 7.0, "3": 12.0}},
	{PlayerID: "99999", Name: "Unrostered Player", Position: "WR", Team: "GB",
		Points: map[string]float64{"2": 5.5}},
}

type FakeFantasyProsServer struct {
	s *httptest.Server
}

func NewFakeFantasyProsServer() *FakeFantasyProsServer {
	r := chi.NewRouter()
	r.Get("/{season}/consensus-rankings", fpRankingsHandler)
	r.Get("/{season}/player-points", fpPointsHandler)

	return &FakeFantasyProsServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeFantasyProsServer) Close() {
	f.s.Close()
}

func (f *FakeFantasyProsServer) URL() string {
	return f.s.URL
}

func fpAuthorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("x-api-key") != FPAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Forbidden"}`))
		return false
	}
	return true
}

func fpRankingsHandler(w http.ResponseWriter, r *http.Request) {
	if !fpAuthorized(w, r) {
		return
	}

	players := fpRanks[r.URL.Query().Get("position")]
	writeFPJSON(w, map[string]any{"players": players})
}

func fpPointsHandler(w http.ResponseWriter, r *http.Request) {
	if !fpAuthorized(w, r) {
		return
	}

	writeFPJSON(w, map[string]any{"players": fpPoints})
}

func writeFPJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(body)
}
