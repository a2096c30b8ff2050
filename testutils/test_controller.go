package testutils

import (
	"github.com/itbasis/go-clock"
)

// TestController bundles the fake upstream servers and the in-memory KV so
// tests can wire a real controller against them.
type TestController struct {
	Clock       clock.Clock
	KV          *MemKV
	fakeESPN    *FakeESPNServer
	fakeSleeper *FakeSleeperServer
	fakeFP      *FakeFantasyProsServer
}

func (c *TestController) Close() {
	c.fakeESPN.Close()
	c.fakeSleeper.Close()
	c.fakeFP.Close()
}

func (c *TestController) ESPNReadsURL() string { return c.fakeESPN.ReadsURL() }
func (c *TestController) ESPNLMURL() string    { return c.fakeESPN.LMURL() }
func (c *TestController) ESPNSiteURL() string  { return c.fakeESPN.SiteURL() }
func (c *TestController) ESPNFanURL() string   { return c.fakeESPN.FanURL() }

func (c *TestController) SleeperURL() string { return c.fakeSleeper.URL() }

func (c *TestController) FantasyProsURL() string { return c.fakeFP.URL() }

func NewTestController(db *TestDB) *TestController {
	return &TestController{
		Clock:       db.Clock,
		KV:          NewMemKV(),
		fakeESPN:    NewFakeESPNServer(),
		fakeSleeper: NewFakeSleeperServer(),
		fakeFP:      NewFakeFantasyProsServer(),
	}
}
