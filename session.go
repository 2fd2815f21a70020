package pokergame

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the state of a Session. It only moves forward:
// active, pending close, completed.
type SessionStatus string

const (
	StatusActive       SessionStatus = "active"
	StatusPendingClose SessionStatus = "pending_close"
	StatusCompleted    SessionStatus = "completed"
)

// PlayerStatus is the state of a Player within a Session.
type PlayerStatus string

const (
	PlayerActive         PlayerStatus = "active"
	PlayerCashedOutEarly PlayerStatus = "cashed_out_early"
	PlayerCompleted      PlayerStatus = "completed"
)

// BuyInRecord is one cash payment converted into points.
type BuyInRecord struct {
	ID       uuid.UUID `json:"id"`
	Amount   Money     `json:"amount"`
	Time     time.Time `json:"time"`
	EditedAt time.Time `json:"editedAt,omitzero"`
}

// CashOutRecord is one conversion of points back into cash.
type CashOutRecord struct {
	Points Points    `json:"points"`
	Value  Money     `json:"value"`
	Time   time.Time `json:"time"`
	Final  bool      `json:"final,omitempty"` // written by the final count
}

// Player is the position of a participant within one Session.
type Player struct {
	id          uuid.UUID
	name        string
	stack       Points
	buyIns      []BuyInRecord
	cashOut     Money
	cashOutLog  []CashOutRecord
	status      PlayerStatus
	leftOnTable Points
	hasLeft     bool
}

func (p Player) ID() uuid.UUID        { return p.id }
func (p Player) Name() string         { return p.name }
func (p Player) Stack() Points        { return p.stack }
func (p Player) Status() PlayerStatus { return p.status }
func (p Player) CashOut() Money       { return p.cashOut }

// BuyIns returns a copy of the player's buy-in records in chronological order.
func (p Player) BuyIns() []BuyInRecord { return slices.Clone(p.buyIns) }

// CashOuts returns a copy of the player's cash-out log.
func (p Player) CashOuts() []CashOutRecord { return slices.Clone(p.cashOutLog) }

// LeftOnTable returns the points the player left behind when cashing out
// early. ok is false if the player never cashed out early.
func (p Player) LeftOnTable() (points Points, ok bool) { return p.leftOnTable, p.hasLeft }

// Invested returns the total cash paid in by the player.
func (p Player) Invested() Money {
	total := Money{cur: p.cashOut.cur}
	for _, b := range p.buyIns {
		total = total.Add(b.Amount)
	}
	return total
}

// Net returns the cash realized minus the cash invested.
func (p Player) Net() Money { return p.cashOut.Sub(p.Invested()) }

func (p Player) buyIn(id uuid.UUID) int {
	return slices.IndexFunc(p.buyIns, func(b BuyInRecord) bool { return b.ID == id })
}

func (p Player) clone() Player {
	p.buyIns = slices.Clone(p.buyIns)
	p.cashOutLog = slices.Clone(p.cashOutLog)
	return p
}

// Session is the ledger of one poker game.
//
// Session is a value: operations return a new Session and never modify the
// receiver. The zero Session is not usable, create one with NewSession or
// DecodeJournal.
type Session struct {
	id      uuid.UUID
	config  Config
	table   Points // physical points in circulation
	status  SessionStatus
	players []Player
	start   time.Time
	end     time.Time
	history []Command
}

// NewSession opens a new active game.
func NewSession(cfg Config) (Session, error) {
	if err := cfg.Validate(); err != nil {
		return Session{}, err
	}
	var s Session
	s.config = cfg
	return s.Apply(Open{
		baseCmd:       s.base(CmdOpen),
		Session:       cfg.newID(),
		Currency:      cfg.Currency(),
		Rate:          cfg.Rate,
		StandardBuyIn: cfg.StandardBuyIn,
		FreezeOnClose: cfg.FreezeOnClose,
	})
}

func (s Session) ID() uuid.UUID         { return s.id }
func (s Session) Config() Config        { return s.config }
func (s Session) Status() SessionStatus { return s.status }
func (s Session) Started() time.Time    { return s.start }

// TablePoints returns the physical points currently in circulation.
func (s Session) TablePoints() Points { return s.table }

// Ended returns the completion time, ok is false until the session is completed.
func (s Session) Ended() (t time.Time, ok bool) { return s.end, s.status == StatusCompleted }

// Players returns a copy of the players in the order they joined.
func (s Session) Players() []Player {
	players := make([]Player, len(s.players))
	for i, p := range s.players {
		players[i] = p.clone()
	}
	return players
}

// Player returns the player with this id.
func (s Session) Player(id uuid.UUID) (Player, bool) {
	i := s.player(id)
	if i < 0 {
		return Player{}, false
	}
	return s.players[i].clone(), true
}

// PlayerByName returns the player with this name, ignoring case.
func (s Session) PlayerByName(name string) (Player, bool) {
	name = strings.TrimSpace(name)
	for _, p := range s.players {
		if strings.EqualFold(p.name, name) {
			return p.clone(), true
		}
	}
	return Player{}, false
}

// History returns the commands accepted so far, starting with Open.
func (s Session) History() []Command { return slices.Clone(s.history) }

// WithClock returns a copy of s using now as its clock.
func (s Session) WithClock(now func() time.Time) Session {
	s.config.Now = now
	return s
}

// WithIDs returns a copy of s using newID to generate identifiers.
func (s Session) WithIDs(newID func() uuid.UUID) Session {
	s.config.NewID = newID
	return s
}

// TotalInvested returns the cash paid in by all players.
func (s Session) TotalInvested() Money {
	total := s.zero()
	for _, p := range s.players {
		total = total.Add(p.Invested())
	}
	return total
}

// TotalCashedOut returns the cash realized by all players.
func (s Session) TotalCashedOut() Money {
	total := s.zero()
	for _, p := range s.players {
		total = total.Add(p.cashOut)
	}
	return total
}

// Unclaimed returns the cash value of the points left on the table by early
// cash-outs. Once the session is completed nobody redeems them, and the net
// results sum to minus this amount.
func (s Session) Unclaimed() Money {
	var left Points
	for _, p := range s.players {
		if p.hasLeft {
			left += p.leftOnTable
		}
	}
	return left.Value(s.config.Rate)
}

// Result is the cash outcome of one player.
type Result struct {
	PlayerID  uuid.UUID
	Name      string
	Invested  Money
	CashedOut Money
	Net       Money
}

// Results returns the cash outcome of every player, in joining order.
func (s Session) Results() []Result {
	results := make([]Result, 0, len(s.players))
	for _, p := range s.players {
		results = append(results, Result{
			PlayerID:  p.id,
			Name:      p.name,
			Invested:  p.Invested(),
			CashedOut: p.cashOut,
			Net:       p.Net(),
		})
	}
	return results
}

// CheckInvariants verifies the point bookkeeping of s.
func (s Session) CheckInvariants() error {
	var held Points
	for _, p := range s.players {
		if p.stack < 0 {
			return fmt.Errorf("player %q has a negative stack %d", p.name, p.stack)
		}
		if len(p.buyIns) == 0 {
			return fmt.Errorf("player %q has no buy-in", p.name)
		}
		switch p.status {
		case PlayerActive:
			var bought Points
			for _, b := range p.buyIns {
				bought += PointsFor(b.Amount, s.config.Rate)
			}
			if p.stack != bought {
				return fmt.Errorf("player %q holds %d points but bought %d", p.name, p.stack, bought)
			}
			held += p.stack
		case PlayerCashedOutEarly:
			if p.stack != 0 {
				return fmt.Errorf("player %q cashed out with %d points in stack", p.name, p.stack)
			}
			held += p.leftOnTable
		case PlayerCompleted:
			if p.stack != 0 {
				return fmt.Errorf("player %q completed with %d points in stack", p.name, p.stack)
			}
		}
	}
	if s.status == StatusCompleted {
		held = 0
	}
	if held != s.table {
		return fmt.Errorf("table holds %d points but players hold %d", s.table, held)
	}
	return nil
}

// Apply validates cmd against s and returns the resulting Session. On error
// the returned Session is s, unchanged.
func (s Session) Apply(cmd Command) (Session, error) {
	switch {
	case s.id == uuid.Nil && cmd.What() != CmdOpen:
		return s, fmt.Errorf("%s: session is not open", cmd.What())
	case s.id != uuid.Nil && cmd.What() == CmdOpen:
		return s, fmt.Errorf("%s: session %s is already open", cmd.What(), s.id)
	case s.status == StatusCompleted:
		return s, fmt.Errorf("%s: %w", cmd.What(), ErrSessionClosed)
	}
	next := s.clone()
	if err := cmd.apply(&next); err != nil {
		return s, fmt.Errorf("%s: %w", cmd.What(), err)
	}
	next.history = append(next.history, cmd)
	return next, nil
}

// AddPlayer seats a new player with one standard buy-in.
func (s Session) AddPlayer(name string) (Session, error) {
	return s.Apply(AddPlayer{
		baseCmd: s.base(CmdAddPlayer),
		Player:  s.config.newID(),
		Name:    name,
		Record:  s.config.newID(),
	})
}

// BuyIn adds a cash buy-in to an active player.
func (s Session) BuyIn(player uuid.UUID, cash Money) (Session, error) {
	return s.Apply(BuyIn{
		baseCmd: s.base(CmdBuyIn),
		Player:  player,
		Record:  s.config.newID(),
		Amount:  cash,
	})
}

// EditBuyIn changes the amount of an existing buy-in.
func (s Session) EditBuyIn(player, record uuid.UUID, cash Money) (Session, error) {
	return s.Apply(EditBuyIn{
		baseCmd: s.base(CmdEditBuyIn),
		Player:  player,
		Record:  record,
		Amount:  cash,
	})
}

// DeleteBuyIn removes a buy-in. A player's last buy-in cannot be deleted.
func (s Session) DeleteBuyIn(player, record uuid.UUID) (Session, error) {
	return s.Apply(DeleteBuyIn{
		baseCmd: s.base(CmdDeleteBuyIn),
		Player:  player,
		Record:  record,
	})
}

// CashOut cashes out points from an active player who leaves the game early.
// The rest of the player's stack stays on the table.
func (s Session) CashOut(player uuid.UUID, points Points) (Session, error) {
	return s.Apply(CashOut{
		baseCmd: s.base(CmdCashOut),
		Player:  player,
		Points:  points,
	})
}

// Close stops the game: no more players or buy-ins.
func (s Session) Close() (Session, error) {
	return s.Apply(Close{baseCmd: s.base(CmdClose)})
}

// Finalize converts the final count of every active player into cash and
// completes the session. final must hold a count for every active player.
func (s Session) Finalize(final map[uuid.UUID]Points) (Session, error) {
	counts := make(map[uuid.UUID]Points, len(final))
	for id, p := range final {
		counts[id] = p
	}
	return s.Apply(Finalize{baseCmd: s.base(CmdFinalize), Points: counts})
}

func (s Session) base(cmd CommandType) baseCmd {
	return baseCmd{Command: cmd, Time: s.config.now().UTC()}
}

func (s Session) zero() Money { return Money{cur: s.config.Currency()} }

func (s Session) player(id uuid.UUID) int {
	return slices.IndexFunc(s.players, func(p Player) bool { return p.id == id })
}

// cash normalizes an amount to the session currency.
func (s Session) cash(m Money) (Money, error) {
	m, err := m.In(s.config.Currency())
	if err != nil {
		return m, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	if !m.IsPositive() {
		return m, fmt.Errorf("amount must be positive, got %s: %w", m, ErrInvalidAmount)
	}
	if !m.Round().Equal(m) {
		return m, fmt.Errorf("amount %s is finer than %s: %w", m.Decimal(), m.Unit(), ErrInvalidAmount)
	}
	return m, nil
}

// activePlayer returns the index of an active player.
func (s Session) activePlayer(id uuid.UUID) (int, error) {
	i := s.player(id)
	if i < 0 {
		return i, fmt.Errorf("%s: %w", id, ErrPlayerNotFound)
	}
	if p := s.players[i]; p.status != PlayerActive {
		return i, fmt.Errorf("%q is %s: %w", p.name, p.status, ErrPlayerAlreadySettled)
	}
	return i, nil
}

// editable reports whether buy-ins can still be edited or deleted.
func (s Session) editable() error {
	if s.status == StatusPendingClose && s.config.FreezeOnClose {
		return fmt.Errorf("buy-ins are frozen once the game is closing: %w", ErrSessionClosed)
	}
	return nil
}

func (s Session) clone() Session {
	s.players = s.Players()
	s.history = slices.Clone(s.history)
	return s
}
