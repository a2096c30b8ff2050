package web

import (
	"net/http"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/controller"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/espn"
)

// Cookie names understood by the gateway.
const (
	cookieSWID       = "SWID"
	cookieS2         = "espn_s2"
	cookieHasESPN    = "fein_has_espn"
	cookieMember     = "ff_member"
	cookieMemberAlt  = "ff_member_id"
	cookieSession    = "ff_sid"
	cookieInteracted = "ff-interacted"
)

// Inbound headers that take precedence over cookies.
const (
	headerSWID  = "X-ESPN-SWID"
	headerS2    = "X-ESPN-S2"
	headerFPKey = "X-FP-Key"
	headerFFID  = "X-FF-ID"
)

// rawCookie returns a cookie value without any decoding. The SWID and
// espn_s2 tokens are sensitive to encoding, so the stock cookie parser's
// unescaping must be bypassed.
func rawCookie(r *http.Request, name string) string {
	for _, header := range r.Header.Values("Cookie") {
		for _, part := range strings.Split(header, ";") {
			part = strings.TrimSpace(part)
			if eq := strings.IndexByte(part, '='); eq > 0 {
				if part[:eq] == name {
					v := part[eq+1:]
					// Strip one layer of quotes, nothing else.
					if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
						v = v[1 : len(v)-1]
					}
					return v
				}
			}
		}
	}
	return ""
}

// espnAuth assembles the caller's ESPN identity from headers first, then
// cookies.
func espnAuth(r *http.Request) controller.ESPNAuth {
	swid := r.Header.Get(headerSWID)
	if swid == "" {
		swid = rawCookie(r, cookieSWID)
	}
	s2 := r.Header.Get(headerS2)
	if s2 == "" {
		s2 = rawCookie(r, cookieS2)
	}

	member := rawCookie(r, cookieMember)
	if member == "" {
		member = rawCookie(r, cookieMemberAlt)
	}

	return controller.ESPNAuth{
		Creds:          espn.Credentials{SWID: swid, S2: s2},
		ViewerMemberID: member,
	}
}

// fpKey finds the rankings-provider key: header, then cookie, then the
// process environment.
func fpKey(r *http.Request, envKey string) string {
	if k := r.Header.Get(headerFPKey); k != "" {
		return k
	}
	if k := rawCookie(r, "fp_key"); k != "" {
		return k
	}
	return envKey
}

const interactedAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// interactedMiddleware mints the ff-interacted id on first contact and
// echoes it back as X-FF-ID on every response.
func interactedMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerFFID)
		if id == "" {
			id = rawCookie(r, cookieInteracted)
		}
		if id == "" {
			minted, err := gonanoid.Generate(interactedAlphabet, 8)
			if err == nil {
				id = minted
				http.SetCookie(w, &http.Cookie{
					Name:     cookieInteracted,
					Value:    id,
					Path:     "/",
					MaxAge:   int((2 * 365 * 24 * time.Hour).Seconds()),
					SameSite: http.SameSiteLaxMode,
				})
			}
		}
		if id != "" {
			w.Header().Set(headerFFID, id)
		}
		next.ServeHTTP(w, r)
	})
}

// setLinkedCookies marks the browser as ESPN-linked. Once the credential
// is persisted server-side the espn_s2 cookie is dropped; the UI only
// needs the readable flag.
func setLinkedCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieHasESPN,
		Value:    "1",
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     cookieS2,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
