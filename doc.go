// Package pokergame keeps the books of a home poker game.
//
// A Session is the authoritative record of one game: who sat down, every cash
// buy-in converted into points, partial cash-outs, and the final count that
// closes the game. The core functionalities include:
//   - Session lifecycle: active, pending close and completed, forward only.
//   - Point conservation: the points on the table always equal the points held
//     by active players plus the points left behind by early cash-outs.
//   - Exact arithmetic: cash amounts are decimals, points are whole chips and
//     cash is converted into points by rounding down.
//   - Journal: every accepted operation is a Command that can be written as one
//     JSONL line and replayed to rebuild the same Session.
//
// A Session is a value. Every operation returns a new Session or an error, and
// the receiver is never modified, so a rejected operation leaves no trace.
//
// The settle package turns the net results of a completed Session into a short
// list of payments.
package pokergame
