package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/unrolled/render"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/controller"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/controller/mockcontroller"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/db"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/espn"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/sleeper"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/rankcache"
)

func newRender() *render.Render {
	return render.New()
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("error decoding response body: %v", err)
	}
	return body
}

func TestESPNLeaguesHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	leagues := []model.League{
		{Platform: model.PlatformESPN, LeagueID: "111222", Season: 2025, LeagueName: "Fein Premier League", Size: 2},
	}
	ctrl.On("GetESPNLeagues", mock.Anything, mock.Anything, 2025, 1).
		Return(leagues, model.SourceViewerLink, nil)

	req := httptest.NewRequest(http.MethodGet, "/?season=2025", nil)
	req.Header.Set("Cookie", "SWID={12345678-ABCD-ABCD-ABCD-123456789012}; espn_s2=AEBtoken")

	rr := httptest.NewRecorder()
	espnLeaguesHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["ok"] != true {
		t.Errorf("expected ok envelope, got %v", body)
	}
	if body["source"] != string(model.SourceViewerLink) {
		t.Errorf("expected source viewer_link, got %v", body["source"])
	}
	if body["gameId"] != float64(1) {
		t.Errorf("expected the default football game id, got %v", body["gameId"])
	}
	if rr.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("expected no-store, got %q", rr.Header().Get("Cache-Control"))
	}

	// The auth assembled from the cookies flows through untouched.
	auth := ctrl.Calls[0].Arguments.Get(1).(controller.ESPNAuth)
	if auth.Creds.SWID != "{12345678-ABCD-ABCD-ABCD-123456789012}" || auth.Creds.S2 != "AEBtoken" {
		t.Errorf("unexpected auth from cookies: %+v", auth.Creds.SWID)
	}
}

func TestESPNLeaguesHandler_seasonRequired(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	espnLeaguesHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["error"] != "season required" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
	ctrl.AssertNotCalled(t, "GetESPNLeagues", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestESPNLeaguesHandler_authRequired(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("GetESPNLeagues", mock.Anything, mock.Anything, 2025, 1).
		Return(nil, model.SourcePublic, espn.ErrAuthRequired)

	req := httptest.NewRequest(http.MethodGet, "/?season=2025", nil)
	rr := httptest.NewRecorder()
	espnLeaguesHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["error"] != "espn_auth_required" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
	if body["hint"] == nil {
		t.Error("expected a hint for the UI")
	}
}

func TestESPNAuth_headersWinOverCookies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", `SWID="{AAAAAAAA-1111-2222-3333-444444444444}"; espn_s2=cookie-token; ff_member_id=MEM-COOKIE`)
	req.Header.Set("X-ESPN-SWID", "{12345678-ABCD-ABCD-ABCD-123456789012}")
	req.Header.Set("X-ESPN-S2", "header-token")

	auth := espnAuth(req)
	if auth.Creds.SWID != "{12345678-ABCD-ABCD-ABCD-123456789012}" {
		t.Errorf("expected header SWID to win, got %q", auth.Creds.SWID)
	}
	if auth.Creds.S2 != "header-token" {
		t.Errorf("expected header s2 to win, got %q", auth.Creds.S2)
	}
	if auth.ViewerMemberID != "MEM-COOKIE" {
		t.Errorf("expected member from ff_member_id, got %q", auth.ViewerMemberID)
	}
}

func TestRawCookie_preservesEncoding(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	// The session token contains percent escapes that must survive as-is,
	// and the SWID arrives quoted.
	req.Header.Set("Cookie", `espn_s2=AEB%2Fa%2Bb%3D; SWID="{12345678-ABCD-ABCD-ABCD-123456789012}"`)

	if got := rawCookie(req, "espn_s2"); got != "AEB%2Fa%2Bb%3D" {
		t.Errorf("expected raw token, got %q", got)
	}
	if got := rawCookie(req, "SWID"); got != "{12345678-ABCD-ABCD-ABCD-123456789012}" {
		t.Errorf("expected unquoted SWID, got %q", got)
	}
	if got := rawCookie(req, "missing"); got != "" {
		t.Errorf("expected empty value for a missing cookie, got %q", got)
	}
}

func TestESPNLinkHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("LinkESPNCredential", mock.Anything, "{12345678-ABCD-ABCD-ABCD-123456789012}", "AEBtoken", "MEM-001").
		Return(nil)

	payload := `{"swid":"{12345678-ABCD-ABCD-ABCD-123456789012}","s2":"AEBtoken","memberId":"MEM-001"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	espnLinkHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}

	var hasFlag, droppedS2 bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == "fein_has_espn" && c.Value == "1" {
			hasFlag = true
		}
		if c.Name == "espn_s2" && c.MaxAge < 0 {
			droppedS2 = true
		}
	}
	if !hasFlag {
		t.Error("expected the fein_has_espn cookie to be set")
	}
	if !droppedS2 {
		t.Error("expected the espn_s2 cookie to be expired")
	}
	ctrl.AssertExpectations(t)
}

func TestESPNLinkHandler_fallsBackToCookies(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("LinkESPNCredential", mock.Anything, "{12345678-ABCD-ABCD-ABCD-123456789012}", "AEBtoken", "MEM-001").
		Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set("Cookie", "SWID={12345678-ABCD-ABCD-ABCD-123456789012}; espn_s2=AEBtoken; ff_member=MEM-001")
	rr := httptest.NewRecorder()
	espnLinkHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}
	ctrl.AssertExpectations(t)
}

func TestESPNLinkHandler_missingCredentials(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"memberId":"MEM-001"}`))
	rr := httptest.NewRecorder()
	espnLinkHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	ctrl.AssertNotCalled(t, "LinkESPNCredential", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestESPNLinkHandler_conflict(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("LinkESPNCredential", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(db.ErrCredentialConflict)

	payload := `{"swid":"{12345678-ABCD-ABCD-ABCD-123456789012}","s2":"AEBtoken","memberId":"MEM-002"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	espnLinkHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["error"] != "multi_account_not_supported" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestESPNOpponentHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	// Legacy abbreviations canonicalize on the way out.
	ctrl.On("GetNFLOpponent", mock.Anything, 2025, 1, "JAC").Return("JAX", "BUF", nil)

	req := httptest.NewRequest(http.MethodGet, "/?season=2025&week=1&teamAbbr=JAC", nil)
	rr := httptest.NewRecorder()
	espnOpponentHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["teamAbbr"] != "JAX" {
		t.Errorf("expected canonical teamAbbr JAX, got %v", body["teamAbbr"])
	}
	if body["opponent"] != "BUF" {
		t.Errorf("expected opponent BUF, got %v", body["opponent"])
	}
}

func TestESPNOpponentHandler_teamAbbrRequired(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodGet, "/?season=2025&week=1", nil)
	rr := httptest.NewRecorder()
	espnOpponentHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["error"] != "teamAbbr required" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
	ctrl.AssertNotCalled(t, "GetNFLOpponent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestESPNLinkStatusHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("GetESPNLinkStatus", mock.Anything, "MEM-001").
		Return(&controller.LinkStatus{Linked: true, SWID: "{12345678-ABCD-ABCD-ABCD-123456789012}"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "ff_member=MEM-001")
	rr := httptest.NewRecorder()
	espnLinkStatusHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["linked"] != true {
		t.Errorf("expected linked true, got %v", body)
	}
	if body["swid"] != "{12345678-ABCD-ABCD-ABCD-123456789012}" {
		t.Errorf("expected the claimed SWID, got %v", body["swid"])
	}
}

func TestESPNLinkStatusHandler_unlinked(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("GetESPNLinkStatus", mock.Anything, "").Return(&controller.LinkStatus{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	espnLinkStatusHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["linked"] != false {
		t.Errorf("expected linked false, got %v", body)
	}
	if _, present := body["swid"]; present {
		t.Error("expected no swid for an unlinked member")
	}
}

func TestSleeperLeaguesHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	leagues := []model.League{
		{Platform: model.PlatformSleeper, LeagueID: "987654321", Season: 2025, LeagueName: "Midnight Dynasty", Size: 2},
	}
	ctrl.On("GetSleeperLeagues", mock.Anything, "sleeperuser", 2025).
		Return("12345678", leagues, nil)

	req := httptest.NewRequest(http.MethodGet, "/?user=sleeperuser&season=2025", nil)
	rr := httptest.NewRecorder()
	sleeperLeaguesHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["platform"] != model.PlatformSleeper {
		t.Errorf("expected the sleeper platform tag, got %v", body["platform"])
	}
	if body["userId"] != "12345678" {
		t.Errorf("expected resolved userId, got %v", body["userId"])
	}
}

func TestSleeperLeaguesHandler_userRequired(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodGet, "/?season=2025", nil)
	rr := httptest.NewRecorder()
	sleeperLeaguesHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["error"] != "user required" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
	ctrl.AssertNotCalled(t, "GetSleeperLeagues", mock.Anything, mock.Anything, mock.Anything)
}

func TestSleeperLeaguesHandler_userNotFound(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("GetSleeperLeagues", mock.Anything, "nobody", 2025).
		Return("", nil, sleeper.ErrUserNotFound)

	req := httptest.NewRequest(http.MethodGet, "/?user=nobody&season=2025", nil)
	rr := httptest.NewRecorder()
	sleeperLeaguesHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
}

func TestRankCacheHandler_get(t *testing.T) {
	ctrl := &mockcontroller.C{}
	result := &rankcache.Result{
		RankSet: model.RankSet{Season: 2025, Week: 3, Scoring: "ppr", Type: model.RankTypeECR, Count: 2,
			RankMap: model.RankMap{"JALEN HURTS|PHI|QB": 1, "PATRICK MAHOMES|KC|QB": 2}},
		Source:    rankcache.SourceBuilt,
		Persisted: true,
	}
	ctrl.On("GetRankMap", mock.Anything, "header-key", 2025, 3, "ppr", model.RankTypeECR, false).
		Return(result, nil)

	req := httptest.NewRequest(http.MethodGet, "/?season=2025&week=3&scoring=PPR", nil)
	req.Header.Set("X-FP-Key", "header-key")
	rr := httptest.NewRecorder()
	rankCacheHandler(ctrl, newRender(), "env-key").ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["source"] != rankcache.SourceBuilt {
		t.Errorf("expected built source, got %v", body["source"])
	}
	if body["count"] != float64(2) {
		t.Errorf("expected count 2, got %v", body["count"])
	}
	rankMap, _ := body["rankMap"].(map[string]any)
	if rankMap["JALEN HURTS|PHI|QB"] != float64(1) {
		t.Errorf("expected rankMap in the envelope, got %v", body["rankMap"])
	}
	ctrl.AssertExpectations(t)
}

func TestRankCacheHandler_post(t *testing.T) {
	ctrl := &mockcontroller.C{}
	result := &rankcache.Result{
		RankSet:   model.RankSet{Season: 2025, Week: 3, Scoring: "ppr", Type: model.RankTypeECR},
		Source:    rankcache.SourceKV,
		Persisted: true,
	}
	// No request key anywhere, so the process-level key is used. The payload
	// omits force, but a POST rebuilds regardless.
	ctrl.On("GetRankMap", mock.Anything, "env-key", 2025, 3, "ppr", model.RankTypeECR, true).
		Return(result, nil)

	payload := `{"season":2025,"week":3,"scoring":"ppr"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	rankCacheHandler(ctrl, newRender(), "env-key").ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}
	ctrl.AssertExpectations(t)
}

func TestRankCacheHandler_badParams(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodGet, "/?week=3", nil)
	rr := httptest.NewRecorder()
	rankCacheHandler(ctrl, newRender(), "").ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
}

func TestLeaguePointsHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	lp := &controller.LeaguePoints{
		Teams: []model.LeagueTeamRow{{Season: 2025, LeagueID: "111222", TeamID: 1, TeamName: "Fein Dynasty"}},
		Cache: []model.PointsCacheRow{{Season: 2025, LeagueID: "111222", TeamID: 1, Scoring: "ppr", Week: 2, WeekPts: 31.3, SeasonPts: 85.4}},
	}
	ctrl.On("GetLeaguePoints", mock.Anything, 2025, "111222", "", 0).Return(lp, nil)

	req := httptest.NewRequest(http.MethodGet, "/?leagueId=111222&season=2025", nil)
	rr := httptest.NewRecorder()
	leaguePointsHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if teams, _ := body["teams"].([]any); len(teams) != 1 {
		t.Errorf("expected one team row, got %v", body["teams"])
	}
	if cache, _ := body["cache"].([]any); len(cache) != 1 {
		t.Errorf("expected one cache row, got %v", body["cache"])
	}
	if _, present := body["weekly"]; present {
		t.Error("expected no weekly rows without a scoring filter")
	}
	if _, present := body["rosters"]; present {
		t.Error("expected no roster snapshots without a week filter")
	}
}

func TestLeaguePointsHandler_weeklyAndRosters(t *testing.T) {
	ctrl := &mockcontroller.C{}
	lp := &controller.LeaguePoints{
		Teams:   []model.LeagueTeamRow{{Season: 2025, LeagueID: "111222", TeamID: 1}},
		Cache:   []model.PointsCacheRow{},
		Weekly:  []model.PointsRow{{Season: 2025, LeagueID: "111222", TeamID: 1, Week: 2, Scoring: "ppr", Points: 31.3}},
		Rosters: []model.RosterSnapshot{{Season: 2025, LeagueID: "111222", TeamID: 1, Week: 2, Starters: []string{"3918298"}}},
	}
	ctrl.On("GetLeaguePoints", mock.Anything, 2025, "111222", "ppr", 2).Return(lp, nil)

	req := httptest.NewRequest(http.MethodGet, "/?leagueId=111222&season=2025&scoring=ppr&week=2", nil)
	rr := httptest.NewRecorder()
	leaguePointsHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if weekly, _ := body["weekly"].([]any); len(weekly) != 1 {
		t.Errorf("expected one weekly row, got %v", body["weekly"])
	}
	if rosters, _ := body["rosters"].([]any); len(rosters) != 1 {
		t.Errorf("expected one roster snapshot, got %v", body["rosters"])
	}
}

func TestLeaguePointsHandler_leagueRequired(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodGet, "/?season=2025", nil)
	rr := httptest.NewRecorder()
	leaguePointsHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	ctrl.AssertNotCalled(t, "GetLeaguePoints",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyToLeagueHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	result := &controller.ApplyResult{Matched: 4, Unmatched: 1, Weeks: []int{2, 3}, Warnings: []string{}}
	ctrl.On("ApplyPointsToLeague", mock.Anything, mock.Anything, mock.Anything).Return(result, nil)

	payload := `{"season":2025,"league_id":"111222","scorings":["ppr"]}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	applyToLeagueHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["matched"] != float64(4) || body["unmatched"] != float64(1) {
		t.Errorf("unexpected result envelope: %v", body)
	}

	apply := ctrl.Calls[0].Arguments.Get(2).(controller.ApplyRequest)
	if apply.LeagueID != "111222" || len(apply.Scorings) != 1 {
		t.Errorf("unexpected apply request: %+v", apply)
	}
}

func TestApplyToLeagueHandler_missingLeague(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"season":2025}`))
	rr := httptest.NewRecorder()
	applyToLeagueHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["error"] != "league_id required" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestApplyToLeagueHandler_noMatches(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("ApplyPointsToLeague", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &controller.NoMatchesError{
			Unmatched: 12,
			Warnings:  []string{"week 2: roster fetch failed"},
			Sample:    map[string][]string{"byN": {"JALEN HURTS"}},
		})

	payload := `{"season":2025,"league_id":"111222"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	applyToLeagueHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["error"] != "no_roster_matches" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
	if body["unmatched"] != float64(12) {
		t.Errorf("expected unmatched count in the payload, got %v", body["unmatched"])
	}
}

func TestLoadWeekPointsHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("LoadWeekPoints", mock.Anything, "env-key", 2025, "ppr", 2, 3).Return(11, nil)

	payload := `{"season":2025,"scoring":"PPR","startWeek":2,"endWeek":3}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	rr := httptest.NewRecorder()
	loadWeekPointsHandler(ctrl, newRender(), "env-key").ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["loaded"] != float64(11) {
		t.Errorf("expected 11 loaded rows, got %v", body["loaded"])
	}
}

func TestUpstreamErrorMapsToBadGateway(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("GetESPNTeams", mock.Anything, mock.Anything, "111222", 2025).
		Return(nil, []string{"https://example.com"}, &espn.UpstreamError{Status: 503, Preview: "upstream down"})

	req := httptest.NewRequest(http.MethodGet, "/?leagueId=111222&season=2025", nil)
	rr := httptest.NewRecorder()
	espnTeamsHandler(ctrl, newRender()).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["error"] != "upstream_error" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
	if body["status"] != float64(503) {
		t.Errorf("expected upstream status in payload, got %v", body["status"])
	}
}
