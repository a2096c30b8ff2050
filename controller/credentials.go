package controller

import (
	"context"
	"errors"
	"log"

	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/db"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/model"
	"github.com/chadskiw/fortifiedfantasyfootballfein-sub004/platforms/espn"
)

// ResolveESPNCredentials decides which SWID/espn_s2 pair to call ESPN with.
// Explicit request credentials always win and are refreshed in the store;
// otherwise the store picks the viewer's own link, then any league peer's
// most recent credential, then nothing (public).
func (c *controller) ResolveESPNCredentials(ctx context.Context, season int, leagueID string, auth ESPNAuth) (espn.Credentials, model.CredentialSource) {
	if !auth.Creds.Empty() {
		canonical, err := model.CanonicalSWID(auth.Creds.SWID)
		if err != nil {
			log.Printf("rejecting malformed SWID on request")
			return espn.Credentials{}, model.SourcePublic
		}
		creds := espn.Credentials{SWID: canonical, S2: auth.Creds.S2}
		if err := c.db.UpsertCredential(ctx, canonical, creds.S2, auth.ViewerMemberID); err != nil {
			// Still usable for this request even if the touch failed.
			log.Printf("error touching credential: %v", err)
		}
		return creds, model.SourceViewerLink
	}

	cred, source, err := c.db.ResolveForLeague(ctx, season, leagueID, auth.ViewerMemberID)
	if err != nil || cred == nil {
		return espn.Credentials{}, model.SourcePublic
	}
	return espn.Credentials{SWID: cred.SWID, S2: cred.S2}, source
}

func (c *controller) LinkESPNCredential(ctx context.Context, swid, s2, memberID string) error {
	return c.db.LinkCredential(ctx, swid, s2, memberID)
}

// LinkStatus reports whether a member has claimed an ESPN credential. Only
// the SWID identifier is exposed; the session token stays server-side.
type LinkStatus struct {
	Linked bool   `json:"linked"`
	SWID   string `json:"swid,omitempty"`
}

func (c *controller) GetESPNLinkStatus(ctx context.Context, memberID string) (*LinkStatus, error) {
	if memberID == "" {
		return &LinkStatus{}, nil
	}
	qs, err := c.db.GetQuickSnap(ctx, memberID)
	if err != nil {
		if errors.Is(err, db.ErrCredentialNotFound) {
			return &LinkStatus{}, nil
		}
		return nil, err
	}
	return &LinkStatus{Linked: true, SWID: qs.SWID}, nil
}
