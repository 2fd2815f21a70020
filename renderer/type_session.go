package renderer

import (
	"time"

	pokergame "github.com/KidMaxi/pokergamemanager-sub001"
)

// Session is a struct to represent the state of a game in json.
// Numbers are handled using the exact types (Money, Points)
// So that they already contain basics renderers (SignedString etc.)
type Session struct {
	// ID of the session.
	ID string `json:"id"`
	// Status of the session: active, pending_close or completed.
	Status pokergame.SessionStatus `json:"status"`
	// Started is when the session was opened.
	Started time.Time `json:"started"`
	// Ended is when the session was finalized, zero until then.
	Ended time.Time `json:"ended,omitzero"`
	// Rate is the cash value of one point.
	Rate pokergame.Money `json:"rate"`
	// StandardBuyIn is the buy-in every player starts with.
	StandardBuyIn pokergame.Money `json:"standardBuyIn"`
	// TablePoints is the number of points still in play.
	TablePoints pokergame.Points `json:"tablePoints"`
	// TotalInvested is the sum of all buy-ins.
	TotalInvested pokergame.Money `json:"totalInvested"`
	// TotalCashedOut is the sum of all cash-outs.
	TotalCashedOut pokergame.Money `json:"totalCashedOut"`
	// Unclaimed is the value of the points left on the table by early cash-outs.
	Unclaimed pokergame.Money `json:"unclaimed"`
	// Players in joining order.
	Players []SessionPlayer `json:"players"`
	// History is the list of commands applied to the session, oldest first.
	History []SessionEvent `json:"history,omitempty"`
}

// SessionPlayer represents the position of a single player.
type SessionPlayer struct {
	Name        string                 `json:"name"`
	Status      pokergame.PlayerStatus `json:"status"`
	BuyIns      int                    `json:"buyIns"`
	Invested    pokergame.Money        `json:"invested"`
	Stack       pokergame.Points       `json:"stack"`
	CashOut     pokergame.Money        `json:"cashOut"`
	Net         pokergame.Money        `json:"net"`
	LeftOnTable pokergame.Points       `json:"leftOnTable,omitempty"`
}

// SessionEvent is one line of the session history.
type SessionEvent struct {
	Time time.Time `json:"time"`
	Text string    `json:"text"`
}

// NewSession creates a new Session struct from a ledger session.
func NewSession(s pokergame.Session) *Session {
	cfg := s.Config()
	v := &Session{
		ID:             s.ID().String(),
		Status:         s.Status(),
		Started:        s.Started(),
		Rate:           cfg.Rate,
		StandardBuyIn:  cfg.StandardBuyIn,
		TablePoints:    s.TablePoints(),
		TotalInvested:  s.TotalInvested(),
		TotalCashedOut: s.TotalCashedOut(),
		Unclaimed:      s.Unclaimed(),
		Players:        []SessionPlayer{},
	}
	if end, ok := s.Ended(); ok {
		v.Ended = end
	}
	for _, p := range s.Players() {
		left, _ := p.LeftOnTable()
		v.Players = append(v.Players, SessionPlayer{
			Name:        p.Name(),
			Status:      p.Status(),
			BuyIns:      len(p.BuyIns()),
			Invested:    p.Invested(),
			Stack:       p.Stack(),
			CashOut:     p.CashOut(),
			Net:         p.Net(),
			LeftOnTable: left,
		})
	}
	for _, cmd := range s.History() {
		v.History = append(v.History, SessionEvent{Time: cmd.When(), Text: Command(s, cmd)})
	}
	return v
}
