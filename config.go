package pokergame

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Config holds the parameters of a Session.
type Config struct {
	// Rate is the cash value of one point.
	Rate Money
	// StandardBuyIn is the cash buy-in given to every player joining the game.
	StandardBuyIn Money
	// FreezeOnClose rejects buy-in edits and deletions once the game is
	// pending close. By default they are allowed until the game is completed.
	FreezeOnClose bool

	// Now is the session clock, time.Now if nil.
	Now func() time.Time
	// NewID generates player and record identifiers, uuid.New if nil.
	NewID func() uuid.UUID
}

// DefaultConfig returns a one-dollar-per-point game with a $20 buy-in.
func DefaultConfig() Config {
	return Config{
		Rate:          M(1, DefaultCurrency),
		StandardBuyIn: M(20, DefaultCurrency),
	}
}

// Currency returns the currency of the session.
func (c Config) Currency() string { return c.Rate.Currency() }

// Validate checks that rate and buy-in are positive and share a known currency.
func (c Config) Validate() error {
	if err := ValidateCurrency(c.Rate.Currency()); err != nil {
		return fmt.Errorf("invalid rate currency: %w", err)
	}
	if c.StandardBuyIn.Currency() != c.Rate.Currency() {
		return fmt.Errorf("standard buy-in is in %q but rate is in %q: %w", c.StandardBuyIn.Currency(), c.Rate.Currency(), ErrInvalidAmount)
	}
	if !c.Rate.IsPositive() {
		return fmt.Errorf("rate must be positive, got %s: %w", c.Rate.Decimal(), ErrInvalidAmount)
	}
	if !c.StandardBuyIn.IsPositive() {
		return fmt.Errorf("standard buy-in must be positive, got %s: %w", c.StandardBuyIn, ErrInvalidAmount)
	}
	if !c.StandardBuyIn.Round().Equal(c.StandardBuyIn) {
		return fmt.Errorf("standard buy-in %s is finer than %s: %w", c.StandardBuyIn.Decimal(), c.StandardBuyIn.Unit(), ErrInvalidAmount)
	}
	if PointsFor(c.StandardBuyIn, c.Rate) == 0 {
		return fmt.Errorf("standard buy-in %s buys no point at %s per point: %w", c.StandardBuyIn, c.Rate.Decimal(), ErrInvalidAmount)
	}
	return nil
}

func (c Config) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c Config) newID() uuid.UUID {
	if c.NewID == nil {
		return uuid.New()
	}
	return c.NewID()
}
