package pokergame

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CommandType is a typed string for identifying session commands.
type CommandType string

// Command types used for identifying commands in a journal.
const (
	CmdOpen        CommandType = "open"
	CmdAddPlayer   CommandType = "add-player"
	CmdBuyIn       CommandType = "buy-in"
	CmdEditBuyIn   CommandType = "edit-buy-in"
	CmdDeleteBuyIn CommandType = "delete-buy-in"
	CmdCashOut     CommandType = "cash-out"
	CmdClose       CommandType = "close"
	CmdFinalize    CommandType = "finalize"
)

// Command is one operation on a Session. Commands carry every identifier and
// timestamp they produce, so replaying them rebuilds the same Session.
type Command interface {
	What() CommandType // What returns the command type (e.g., "buy-in", "close").
	When() time.Time   // When returns the time the command was issued.

	// apply validates the command and mutates s, which is a private copy.
	// It must not mutate s if it returns an error.
	apply(s *Session) error
}

type baseCmd struct {
	Command CommandType `json:"command"` // Command specifies the type of command (e.g., "buy-in").
	Time    time.Time   `json:"time"`    // Time is when the command was issued.
}

// What returns the command name.
func (t baseCmd) What() CommandType { return t.Command }

// When returns the time of the command.
func (t baseCmd) When() time.Time { return t.Time }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("time", t.Time)
	return w.MarshalJSON()
}

// Open starts a session. It is always the first command of a journal.
type Open struct {
	baseCmd
	Session       uuid.UUID
	Currency      string
	Rate          Money
	StandardBuyIn Money
	FreezeOnClose bool
}

// MarshalJSON implements the json.Marshaler interface for Open.
func (t Open) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("session", t.Session)
	w.Append("currency", t.Currency)
	w.Append("rate", t.Rate)
	w.Append("standardBuyIn", t.StandardBuyIn)
	w.Optional("freezeOnClose", t.FreezeOnClose)
	return w.MarshalJSON()
}

func (t Open) apply(s *Session) error {
	rate, err := t.Rate.In(t.Currency)
	if err != nil {
		return err
	}
	buyIn, err := t.StandardBuyIn.In(t.Currency)
	if err != nil {
		return err
	}
	cfg := s.config
	cfg.Rate, cfg.StandardBuyIn, cfg.FreezeOnClose = rate, buyIn, t.FreezeOnClose
	if err := cfg.Validate(); err != nil {
		return err
	}
	if t.Session == uuid.Nil {
		return fmt.Errorf("session id is missing")
	}
	s.id = t.Session
	s.config = cfg
	s.status = StatusActive
	s.start = t.Time
	return nil
}

// AddPlayer seats a new player with one standard buy-in.
type AddPlayer struct {
	baseCmd
	Player uuid.UUID
	Name   string
	Record uuid.UUID // id of the initial buy-in record
}

// MarshalJSON implements the json.Marshaler interface for AddPlayer.
func (t AddPlayer) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("player", t.Player)
	w.Append("name", t.Name)
	w.Append("record", t.Record)
	return w.MarshalJSON()
}

func (t AddPlayer) apply(s *Session) error {
	if s.status != StatusActive {
		return fmt.Errorf("cannot add a player to a %s game: %w", s.status, ErrSessionClosed)
	}
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return fmt.Errorf("player name is empty: %w", ErrInvalidName)
	}
	if p, exists := s.PlayerByName(name); exists {
		return fmt.Errorf("%q already plays as %q: %w", name, p.name, ErrDuplicateName)
	}
	if t.Player == uuid.Nil || s.player(t.Player) >= 0 {
		return fmt.Errorf("invalid player id %s", t.Player)
	}
	points := PointsFor(s.config.StandardBuyIn, s.config.Rate)
	s.players = append(s.players, Player{
		id:      t.Player,
		name:    name,
		stack:   points,
		buyIns:  []BuyInRecord{{ID: t.Record, Amount: s.config.StandardBuyIn, Time: t.Time}},
		cashOut: s.zero(),
		status:  PlayerActive,
	})
	s.table += points
	return nil
}

// BuyIn adds a cash buy-in to an active player.
type BuyIn struct {
	baseCmd
	Player uuid.UUID
	Record uuid.UUID
	Amount Money
}

// MarshalJSON implements the json.Marshaler interface for BuyIn.
func (t BuyIn) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("player", t.Player)
	w.Append("record", t.Record)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

func (t BuyIn) apply(s *Session) error {
	amount, err := s.cash(t.Amount)
	if err != nil {
		return err
	}
	i, err := s.activePlayer(t.Player)
	if err != nil {
		return err
	}
	if s.status != StatusActive {
		return fmt.Errorf("no buy-in once the game is %s: %w", s.status, ErrSessionClosed)
	}
	p := &s.players[i]
	if p.buyIn(t.Record) >= 0 || t.Record == uuid.Nil {
		return fmt.Errorf("invalid buy-in record id %s", t.Record)
	}
	points := PointsFor(amount, s.config.Rate)
	p.buyIns = append(p.buyIns, BuyInRecord{ID: t.Record, Amount: amount, Time: t.Time})
	p.stack += points
	s.table += points
	return nil
}

// EditBuyIn changes the amount of a buy-in. Only the points difference
// between the old and the new amount is applied.
type EditBuyIn struct {
	baseCmd
	Player uuid.UUID
	Record uuid.UUID
	Amount Money
}

// MarshalJSON implements the json.Marshaler interface for EditBuyIn.
func (t EditBuyIn) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("player", t.Player)
	w.Append("record", t.Record)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

func (t EditBuyIn) apply(s *Session) error {
	if err := s.editable(); err != nil {
		return err
	}
	amount, err := s.cash(t.Amount)
	if err != nil {
		return err
	}
	i, j, err := s.record(t.Player, t.Record)
	if err != nil {
		return err
	}
	if _, err := s.activePlayer(t.Player); err != nil {
		return err
	}
	p := &s.players[i]
	old := p.buyIns[j]
	// an active stack is exactly what its buy-ins bought, so it covers any decrease.
	delta := PointsFor(amount, s.config.Rate) - PointsFor(old.Amount, s.config.Rate)
	p.buyIns[j] = BuyInRecord{ID: old.ID, Amount: amount, Time: old.Time, EditedAt: t.Time}
	p.stack += delta
	s.table += delta
	return nil
}

// DeleteBuyIn removes a buy-in and the points it bought.
type DeleteBuyIn struct {
	baseCmd
	Player uuid.UUID
	Record uuid.UUID
}

// MarshalJSON implements the json.Marshaler interface for DeleteBuyIn.
func (t DeleteBuyIn) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("player", t.Player)
	w.Append("record", t.Record)
	return w.MarshalJSON()
}

func (t DeleteBuyIn) apply(s *Session) error {
	if err := s.editable(); err != nil {
		return err
	}
	i, j, err := s.record(t.Player, t.Record)
	if err != nil {
		return err
	}
	p := &s.players[i]
	if len(p.buyIns) == 1 {
		return fmt.Errorf("%q has a single buy-in: %w", p.name, ErrLastBuyInProtected)
	}
	if _, err := s.activePlayer(t.Player); err != nil {
		return err
	}
	points := PointsFor(p.buyIns[j].Amount, s.config.Rate)
	p.buyIns = slices.Delete(p.buyIns, j, j+1)
	p.stack -= points
	s.table -= points
	return nil
}

// CashOut converts part or all of an active player's stack into cash when
// the player leaves before the end of the game. Points not cashed out stay on
// the table.
type CashOut struct {
	baseCmd
	Player uuid.UUID
	Points Points
}

// MarshalJSON implements the json.Marshaler interface for CashOut.
func (t CashOut) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("player", t.Player)
	w.Append("points", t.Points)
	return w.MarshalJSON()
}

func (t CashOut) apply(s *Session) error {
	if t.Points < 0 {
		return fmt.Errorf("cannot cash out %d points: %w", t.Points, ErrInvalidAmount)
	}
	i, err := s.activePlayer(t.Player)
	if err != nil {
		return err
	}
	if s.status != StatusActive {
		return fmt.Errorf("no early cash-out once the game is %s: %w", s.status, ErrSessionClosed)
	}
	p := &s.players[i]
	// a player cashes out from their own stack, never from the rest of the table.
	if t.Points > p.stack {
		return fmt.Errorf("%q cannot cash out %d points from a stack of %d: %w", p.name, t.Points, p.stack, ErrInvalidAmount)
	}
	value := t.Points.Value(s.config.Rate)
	p.cashOutLog = append(p.cashOutLog, CashOutRecord{Points: t.Points, Value: value, Time: t.Time})
	p.cashOut = p.cashOut.Add(value)
	p.leftOnTable, p.hasLeft = p.stack-t.Points, true
	p.stack = 0
	p.status = PlayerCashedOutEarly
	s.table -= t.Points
	return nil
}

// Close ends the play. The game then waits for the final count.
type Close struct {
	baseCmd
}

// MarshalJSON implements the json.Marshaler interface for Close.
func (t Close) MarshalJSON() ([]byte, error) { return t.baseCmd.MarshalJSON() }

func (t Close) apply(s *Session) error {
	if s.status != StatusActive {
		return fmt.Errorf("game is already %s: %w", s.status, ErrSessionClosed)
	}
	if len(s.players) == 0 {
		return fmt.Errorf("cannot close a game nobody joined: %w", ErrNoPlayers)
	}
	s.status = StatusPendingClose
	return nil
}

// Finalize records the final count of every active player and completes the
// session.
type Finalize struct {
	baseCmd
	Points map[uuid.UUID]Points
}

// MarshalJSON implements the json.Marshaler interface for Finalize.
func (t Finalize) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("points", t.Points)
	return w.MarshalJSON()
}

func (t Finalize) apply(s *Session) error {
	if s.status != StatusPendingClose {
		return fmt.Errorf("game must be closed before the final count: %w", ErrSessionNotClosed)
	}
	// sorted for a deterministic first error.
	ids := slices.SortedFunc(maps.Keys(t.Points), func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })
	for _, id := range ids {
		if _, err := s.activePlayer(id); err != nil {
			return err
		}
		if t.Points[id] < 0 {
			return fmt.Errorf("final count for %s is negative: %w", id, ErrInvalidAmount)
		}
	}

	var submitted, left Points
	for _, p := range s.players {
		switch p.status {
		case PlayerActive:
			final, ok := t.Points[p.id]
			if !ok {
				return fmt.Errorf("no final count for %q: %w", p.name, ErrInvalidAmount)
			}
			submitted += final
		case PlayerCashedOutEarly:
			left += p.leftOnTable
		}
	}
	if submitted+left != s.table {
		return &PointMismatchError{Table: s.table, Submitted: submitted, LeftOnTable: left}
	}

	for i := range s.players {
		p := &s.players[i]
		if p.status != PlayerActive {
			continue
		}
		final := t.Points[p.id]
		value := final.Value(s.config.Rate)
		p.cashOutLog = append(p.cashOutLog, CashOutRecord{Points: final, Value: value, Time: t.Time, Final: true})
		p.cashOut = p.cashOut.Add(value)
		p.stack = 0
		p.status = PlayerCompleted
	}
	s.status = StatusCompleted
	s.end = t.Time
	s.table = 0
	return nil
}

// record returns the indexes of a player and one of its buy-ins.
func (s Session) record(player, record uuid.UUID) (int, int, error) {
	i := s.player(player)
	if i < 0 {
		return i, -1, fmt.Errorf("%s: %w", player, ErrPlayerNotFound)
	}
	j := s.players[i].buyIn(record)
	if j < 0 {
		return i, j, fmt.Errorf("buy-in %s of %q: %w", record, s.players[i].name, ErrRecordNotFound)
	}
	return i, j, nil
}
