package pokergame

import (
	"errors"
	"fmt"
)

// Errors returned by Session operations. They are wrapped with context, use
// errors.Is to test for them.
var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidName          = errors.New("invalid name")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrRecordNotFound       = errors.New("record not found")
	ErrDuplicateName        = errors.New("duplicate name")
	ErrPlayerAlreadySettled = errors.New("player already settled")
	ErrSessionClosed        = errors.New("session closed")
	ErrLastBuyInProtected   = errors.New("last buy-in cannot be deleted")
	ErrPointMismatch        = errors.New("point mismatch")
	ErrNoPlayers            = errors.New("no players")
	ErrSessionNotClosed     = errors.New("session not closed")
	ErrSessionNotCompleted  = errors.New("session not completed")
)

// PointMismatchError reports a final count that does not reconcile with the
// points on the table.
type PointMismatchError struct {
	Table       Points // points on the table before finalization
	Submitted   Points // sum of the submitted final counts
	LeftOnTable Points // points left behind by early cash-outs
}

func (e *PointMismatchError) Error() string {
	return fmt.Sprintf("%s: %d submitted + %d left on table = %d, table holds %d",
		ErrPointMismatch, e.Submitted, e.LeftOnTable, e.Submitted+e.LeftOnTable, e.Table)
}

func (e *PointMismatchError) Unwrap() error { return ErrPointMismatch }
