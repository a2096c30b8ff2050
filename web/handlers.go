package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/controller"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/db"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/espn"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/fantasypros"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/sleeper"
)

// gameFootball is the fan-API game id for fantasy football.
const gameFootball = 1

func ok(rnd *render.Render, w http.ResponseWriter, payload map[string]any) {
	body := map[string]any{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	rnd.JSON(w, http.StatusOK, body)
}

func apiError(rnd *render.Render, w http.ResponseWriter, status int, msg string, extra map[string]any) {
	body := map[string]any{"ok": false, "error": msg}
	for k, v := range extra {
		body[k] = v
	}
	rnd.JSON(w, status, body)
}

// renderErr maps the well-known error types onto HTTP statuses. Anything
// unrecognized becomes a 500.
func renderErr(rnd *render.Render, w http.ResponseWriter, err error) {
	var upstream *espn.UpstreamError
	var noMatches *controller.NoMatchesError

	switch {
	case errors.Is(err, espn.ErrAuthRequired):
		apiError(rnd, w, http.StatusUnauthorized, "espn_auth_required", map[string]any{
			"hint": "Missing ESPN auth cookies.",
		})
	case errors.Is(err, sleeper.ErrUserNotFound):
		apiError(rnd, w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, fantasypros.ErrMissingKey):
		apiError(rnd, w, http.StatusUnauthorized, "missing_key", map[string]any{
			"hint": "Provide the rankings key via the X-FP-Key header.",
		})
	case errors.Is(err, db.ErrCredentialConflict):
		apiError(rnd, w, http.StatusConflict, "multi_account_not_supported", nil)
	case errors.As(err, &noMatches):
		apiError(rnd, w, http.StatusBadRequest, "no_roster_matches", map[string]any{
			"unmatched": noMatches.Unmatched,
			"warnings":  noMatches.Warnings,
			"sample":    noMatches.Sample,
		})
	case errors.As(err, &upstream):
		apiError(rnd, w, http.StatusBadGateway, "upstream_error", map[string]any{
			"status":  upstream.Status,
			"preview": upstream.Preview,
		})
	default:
		apiError(rnd, w, http.StatusInternalServerError, err.Error(), nil)
	}
}

func intParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}

func espnLeaguesHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		season := intParam(r, "season", 0)
		if season <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season required", nil)
			return
		}
		gameID := intParam(r, "gameId", gameFootball)
		leagues, source, err := ctrl.GetESPNLeagues(r.Context(), espnAuth(r), season, gameID)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"season":  season,
			"gameId":  gameID,
			"source":  source,
			"leagues": leagues,
		})
	}
}

func espnTeamsHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		leagueID := r.URL.Query().Get("leagueId")
		if leagueID == "" {
			apiError(rnd, w, http.StatusBadRequest, "leagueId required", nil)
			return
		}
		season := intParam(r, "season", 0)
		if season <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season required", nil)
			return
		}
		teams, upstream, err := ctrl.GetESPNTeams(r.Context(), espnAuth(r), leagueID, season)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"leagueId":  leagueID,
			"season":    season,
			"teamCount": len(teams),
			"teams":     teams,
			"meta":      map[string]any{"upstream": upstream},
		})
	}
}

func espnLeagueTeamsHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		leagueID := chi.URLParam(r, "leagueID")
		season := intParam(r, "season", 0)
		if season <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season required", nil)
			return
		}
		includeRosters := r.URL.Query().Get("include") == "rosters"
		rosters, canView, err := ctrl.GetESPNLeagueTeams(r.Context(), espnAuth(r), leagueID, season, includeRosters)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"leagueId":       leagueID,
			"season":         season,
			"canViewRosters": canView,
			"teams":          rosters,
		})
	}
}

func espnRosterHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		leagueID := chi.URLParam(r, "leagueID")
		teamID := intParam(r, "teamId", 0)
		if teamID <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "teamId required", nil)
			return
		}
		season := intParam(r, "season", 0)
		if season <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season required", nil)
			return
		}
		week := intParam(r, "week", 0)
		roster, err := ctrl.GetESPNRoster(r.Context(), espnAuth(r), leagueID, teamID, season, week)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"leagueId": leagueID,
			"teamId":   teamID,
			"season":   season,
			"week":     week,
			"roster":   roster,
		})
	}
}

func espnLeagueRostersHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		leagueID := chi.URLParam(r, "leagueID")
		season := intParam(r, "season", 0)
		if season <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season required", nil)
			return
		}
		week := intParam(r, "week", 0)
		rosters, err := ctrl.GetESPNLeagueRosters(r.Context(), espnAuth(r), leagueID, season, week)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"leagueId": leagueID,
			"season":   season,
			"week":     week,
			"rosters":  rosters,
		})
	}
}

func espnWeeklyPointsHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		leagueID := chi.URLParam(r, "leagueID")
		season := intParam(r, "season", 0)
		if season <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season required", nil)
			return
		}
		week := intParam(r, "week", 0)
		if week <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "week required", nil)
			return
		}
		points, err := ctrl.GetESPNWeeklyPoints(r.Context(), espnAuth(r), leagueID, season, week)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"leagueId": leagueID,
			"season":   season,
			"week":     week,
			"points":   points,
		})
	}
}

func espnPlayersHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID := chi.URLParam(r, "leagueID")
		q := r.URL.Query().Get("q")
		if q == "" {
			apiError(rnd, w, http.StatusBadRequest, "q required", nil)
			return
		}
		season := intParam(r, "season", 0)
		if season <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season required", nil)
			return
		}
		limit := intParam(r, "limit", 25)
		players, err := ctrl.SearchESPNPlayers(r.Context(), espnAuth(r), leagueID, season, q, limit)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"leagueId": leagueID,
			"season":   season,
			"q":        q,
			"players":  players,
		})
	}
}

func espnOppSchedHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		leagueID := r.URL.Query().Get("leagueId")
		if leagueID == "" {
			apiError(rnd, w, http.StatusBadRequest, "leagueId required", nil)
			return
		}
		teamID := intParam(r, "teamId", 0)
		if teamID <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "teamId required", nil)
			return
		}
		season := intParam(r, "season", 0)
		if season <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season required", nil)
			return
		}
		sched, err := ctrl.GetOpponentSchedule(r.Context(), espnAuth(r), leagueID, teamID, season)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"leagueId": leagueID,
			"teamId":   teamID,
			"season":   season,
			"schedule": sched,
		})
	}
}

func espnOpponentHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team := r.URL.Query().Get("teamAbbr")
		if team == "" {
			apiError(rnd, w, http.StatusBadRequest, "teamAbbr required", nil)
			return
		}
		season := intParam(r, "season", 0)
		week := intParam(r, "week", 0)
		if season <= 0 || week <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season and week required", nil)
			return
		}
		abbr, opp, err := ctrl.GetNFLOpponent(r.Context(), season, week, team)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"teamAbbr": abbr,
			"week":     week,
			"opponent": opp,
		})
	}
}

type linkRequest struct {
	SWID     string `json:"swid"`
	S2       string `json:"s2"`
	MemberID string `json:"memberId"`
}

func espnLinkHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		var req linkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiError(rnd, w, http.StatusBadRequest, fmt.Sprintf("error parsing body: %v", err), nil)
			return
		}
		auth := espnAuth(r)
		if req.SWID == "" {
			req.SWID = auth.Creds.SWID
		}
		if req.S2 == "" {
			req.S2 = auth.Creds.S2
		}
		if req.MemberID == "" {
			req.MemberID = auth.ViewerMemberID
		}
		if req.SWID == "" || req.S2 == "" {
			apiError(rnd, w, http.StatusBadRequest, "swid and s2 required", nil)
			return
		}
		if err := ctrl.LinkESPNCredential(r.Context(), req.SWID, req.S2, req.MemberID); err != nil {
			renderErr(rnd, w, err)
			return
		}
		setLinkedCookies(w)
		ok(rnd, w, map[string]any{"linked": true})
	}
}

func espnLinkStatusHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		status, err := ctrl.GetESPNLinkStatus(r.Context(), espnAuth(r).ViewerMemberID)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		body := map[string]any{"linked": status.Linked}
		if status.SWID != "" {
			body["swid"] = status.SWID
		}
		ok(rnd, w, body)
	}
}

func sleeperLeaguesHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := r.URL.Query().Get("user")
		if user == "" {
			apiError(rnd, w, http.StatusBadRequest, "user required", nil)
			return
		}
		season := intParam(r, "season", 0)
		if season <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season required", nil)
			return
		}
		userID, leagues, err := ctrl.GetSleeperLeagues(r.Context(), user, season)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"platform": model.PlatformSleeper,
			"season":   season,
			"userId":   userID,
			"leagues":  leagues,
		})
	}
}

func sleeperRostersHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID := chi.URLParam(r, "leagueID")
		season := intParam(r, "season", 0)
		includePlayers := r.URL.Query().Get("include") == "players"
		rosters, err := ctrl.GetSleeperLeagueRosters(r.Context(), leagueID, season, includePlayers)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{"leagueId": leagueID, "rosters": rosters})
	}
}

func sleeperPlayersHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "" {
			limit := intParam(r, "limit", 25)
			players, err := ctrl.SearchPlayers(r.Context(), model.PlatformSleeper, q, limit)
			if err != nil {
				renderErr(rnd, w, err)
				return
			}
			ok(rnd, w, map[string]any{"q": q, "players": players})
			return
		}
		slim := r.URL.Query().Get("slim") == "1"
		players, err := ctrl.GetSleeperPlayers(r.Context(), slim)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{"players": players})
	}
}

type rankCacheRequest struct {
	Season  int    `json:"season"`
	Week    int    `json:"week"`
	Scoring string `json:"scoring"`
	Type    string `json:"type"`
	Force   bool   `json:"force"`
}

func rankCacheHandler(ctrl controller.C, rnd *render.Render, envFPKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		var req rankCacheRequest
		if r.Method == http.MethodPost {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				apiError(rnd, w, http.StatusBadRequest, fmt.Sprintf("error parsing body: %v", err), nil)
				return
			}
			// A POST always rebuilds.
			req.Force = true
		} else {
			req.Season = intParam(r, "season", 0)
			req.Week = intParam(r, "week", 0)
			req.Scoring = r.URL.Query().Get("scoring")
			req.Type = r.URL.Query().Get("type")
			req.Force = r.URL.Query().Get("force") == "1"
		}
		if req.Season <= 0 || req.Week <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season and week required", nil)
			return
		}

		scoring := model.NormalizeScoring(req.Scoring)
		rankType := model.NormalizeRankType(req.Type)
		result, err := ctrl.GetRankMap(r.Context(), fpKey(r, envFPKey), req.Season, req.Week, scoring, rankType, req.Force)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"season":    result.Season,
			"week":      result.Week,
			"scoring":   result.Scoring,
			"type":      result.Type,
			"source":    result.Source,
			"persisted": result.Persisted,
			"count":     result.Count,
			"rankMap":   result.RankMap,
		})
	}
}

type loadWeekPointsRequest struct {
	Season    int    `json:"season"`
	Scoring   string `json:"scoring"`
	StartWeek int    `json:"startWeek"`
	EndWeek   int    `json:"endWeek"`
}

func loadWeekPointsHandler(ctrl controller.C, rnd *render.Render, envFPKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		var req loadWeekPointsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiError(rnd, w, http.StatusBadRequest, fmt.Sprintf("error parsing body: %v", err), nil)
			return
		}
		if req.Season <= 0 || req.StartWeek <= 0 || req.EndWeek < req.StartWeek {
			apiError(rnd, w, http.StatusBadRequest, "season, startWeek, and endWeek required", nil)
			return
		}
		scoring := model.NormalizeScoring(req.Scoring)
		loaded, err := ctrl.LoadWeekPoints(r.Context(), fpKey(r, envFPKey), req.Season, scoring, req.StartWeek, req.EndWeek)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"season":    req.Season,
			"scoring":   scoring,
			"startWeek": req.StartWeek,
			"endWeek":   req.EndWeek,
			"loaded":    loaded,
		})
	}
}

func applyToLeagueHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		var req controller.ApplyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiError(rnd, w, http.StatusBadRequest, fmt.Sprintf("error parsing body: %v", err), nil)
			return
		}
		if req.Season <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season required", nil)
			return
		}
		if req.LeagueID == "" {
			apiError(rnd, w, http.StatusBadRequest, "league_id required", nil)
			return
		}
		result, err := ctrl.ApplyPointsToLeague(r.Context(), espnAuth(r), req)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		ok(rnd, w, map[string]any{
			"season":    req.Season,
			"leagueId":  req.LeagueID,
			"matched":   result.Matched,
			"unmatched": result.Unmatched,
			"weeks":     result.Weeks,
			"warnings":  result.Warnings,
		})
	}
}

func leaguePointsHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID := r.URL.Query().Get("leagueId")
		if leagueID == "" {
			apiError(rnd, w, http.StatusBadRequest, "leagueId required", nil)
			return
		}
		season := intParam(r, "season", 0)
		if season <= 0 {
			apiError(rnd, w, http.StatusBadRequest, "season required", nil)
			return
		}
		scoring := r.URL.Query().Get("scoring")
		week := intParam(r, "week", 0)

		lp, err := ctrl.GetLeaguePoints(r.Context(), season, leagueID, scoring, week)
		if err != nil {
			renderErr(rnd, w, err)
			return
		}
		body := map[string]any{
			"leagueId": leagueID,
			"season":   season,
			"teams":    lp.Teams,
			"cache":    lp.Cache,
		}
		if lp.Weekly != nil {
			body["weekly"] = lp.Weekly
		}
		if lp.Rosters != nil {
			body["rosters"] = lp.Rosters
		}
		ok(rnd, w, body)
	}
}

func healthHandler(rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok(rnd, w, map[string]any{"status": "up"})
	}
}
