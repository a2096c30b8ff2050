package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ESPNCredential is one stored (SWID, espn_s2) pair. MemberID is set once
// on first claim; a second member trying to claim the same SWID lands in
// GhostMemberID instead of overwriting.
type ESPNCredential struct {
	SWID          string
	S2            string
	MemberID      string
	GhostMemberID string
	FirstSeen     time.Time
	LastSeen      time.Time
}

// QuickSnap is the SWID a member has claimed as their own.
type QuickSnap struct {
	MemberID string
	SWID     string
}

// CredentialSource tags where a resolved credential came from.
type CredentialSource string

const (
	SourceViewerLink CredentialSource = "viewer_link"
	SourceLeaguePeer CredentialSource = "league_peer"
	SourcePublic     CredentialSource = "public"
)

var swidRegex = regexp.MustCompile(`(?i)[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}`)

// CanonicalSWID normalizes an ESPN SWID to the canonical braced upper-hex
// form {XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}. Returns an error when no
// 36-char hex UUID is present.
func CanonicalSWID(raw string) (string, error) {
	m := swidRegex.FindString(raw)
	if m == "" {
		return "", fmt.Errorf("not a valid SWID: %q", preview(raw, 40))
	}
	return "{" + strings.ToUpper(m) + "}", nil
}

// SWIDHash is the sha-256 hex digest of the canonical SWID, mirrored into
// the database for hash-based joins.
func SWIDHash(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
