package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
)

//go:embed espndata
var espndata embed.FS

// Well-known ids the embedded ESPN fixtures use.
const (
	ESPNLeagueID        = "111222"
	ESPNHistoryLeagueID = "333444"
	ESPNSWID            = "{12345678-ABCD-ABCD-ABCD-123456789012}"
)

// FakeESPNServer stands in for all four ESPN hosts. The reads and lm hosts
// share a URL shape in production, so the fake mounts them under /reads and
// /lm prefixes and the client is pointed at each prefix separately.
type FakeESPNServer struct {
	s *httptest.Server
}

func NewFakeESPNServer() *FakeESPNServer {
	r := chi.NewRouter()

	r.Route("/reads/games/ffl", func(r chi.Router) {
		r.Get("/seasons/{season}/segments/0/leagues/{leagueID}", readsLeagueHandler)
	})
	r.Route("/lm/games/ffl", func(r chi.Router) {
		r.Get("/seasons/{season}/segments/0/leagues/{leagueID}", lmLeagueHandler)
		r.Get("/leagueHistory/{leagueID}", leagueHistoryHandler)
	})
	r.Get("/fan/fans/{swid}", fanHandler)
	r.Get("/apis/site/v2/sports/football/nfl/scoreboard", scoreboardHandler)

	return &FakeESPNServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeESPNServer) Close() {
	f.s.Close()
}

// ReadsURL, LMURL, SiteURL, and FanURL are passed to espn.NewWithURLs.
func (f *FakeESPNServer) ReadsURL() string { return f.s.URL + "/reads" }
func (f *FakeESPNServer) LMURL() string    { return f.s.URL + "/lm" }
func (f *FakeESPNServer) SiteURL() string  { return f.s.URL }
func (f *FakeESPNServer) FanURL() string   { return f.s.URL + "/fan" }

func hasESPNCookies(r *http.Request) bool {
	cookie := r.Header.Get("Cookie")
	return strings.Contains(cookie, "SWID=") && strings.Contains(cookie, "espn_s2=")
}

// readsLeagueHandler serves the private league and requires auth cookies,
// sending the browser-style redirect ESPN uses for unauthenticated calls.
func readsLeagueHandler(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	if leagueID != ESPNLeagueID {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"messages":["You are not authorized to view this League."]}`))
		return
	}
	if !hasESPNCookies(r) {
		w.Header().Set("Location", "https://www.espn.com/login")
		w.WriteHeader(http.StatusFound)
		return
	}
	serveESPNFile(w, "league.json")
}

// lmLeagueHandler always fails so the client has to fall through to the
// leagueHistory variant for the history league.
func lmLeagueHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`{"messages":["internal error"]}`))
}

func leagueHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") != ESPNHistoryLeagueID {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	serveESPNFile(w, "league_history.json")
}

func fanHandler(w http.ResponseWriter, r *http.Request) {
	if !hasESPNCookies(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	serveESPNFile(w, "fan.json")
}

func scoreboardHandler(w http.ResponseWriter, r *http.Request) {
	serveESPNFile(w, "scoreboard.json")
}

func serveESPNFile(w http.ResponseWriter, name string) {
	b, err := espndata.ReadFile(fmt.Sprintf("espndata/%s", name))
	if err != nil {
		log.Printf("error reading espndata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
