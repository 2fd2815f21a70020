package pokergame

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// testConfig returns a config with a deterministic clock and deterministic ids.
func testConfig(rate, buyIn float64) Config {
	n := 0
	clock := time.Date(2025, time.August, 1, 20, 0, 0, 0, time.UTC)
	return Config{
		Rate:          USD(rate),
		StandardBuyIn: USD(buyIn),
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
		NewID: func() uuid.UUID {
			n++
			return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.Itoa(n)))
		},
	}
}

// ok fails the test if an operation is rejected.
func ok(t *testing.T) func(Session, error) Session {
	t.Helper()
	return func(s Session, err error) Session {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.CheckInvariants(); err != nil {
			t.Fatalf("invariants broken: %v", err)
		}
		return s
	}
}

// newTestSession opens a session and seats players.
func newTestSession(t *testing.T, cfg Config, names ...string) Session {
	t.Helper()
	s := ok(t)(NewSession(cfg))
	for _, name := range names {
		s = ok(t)(s.AddPlayer(name))
	}
	return s
}

// id returns the id of a seated player.
func id(t *testing.T, s Session, name string) uuid.UUID {
	t.Helper()
	p, found := s.PlayerByName(name)
	if !found {
		t.Fatalf("player %q not found", name)
	}
	return p.ID()
}

// snapshot returns the JSON state of s, to compare sessions.
func snapshot(t *testing.T, s Session) string {
	t.Helper()
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("cannot marshal session: %v", err)
	}
	return string(data)
}
