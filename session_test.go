package pokergame

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
)

func TestNewSession(t *testing.T) {
	s := newTestSession(t, testConfig(0.25, 20))
	if s.Status() != StatusActive {
		t.Errorf("Status() = %q; want %q", s.Status(), StatusActive)
	}
	if s.TablePoints() != 0 {
		t.Errorf("TablePoints() = %d; want 0", s.TablePoints())
	}
	if len(s.History()) != 1 || s.History()[0].What() != CmdOpen {
		t.Errorf("History() = %v; want a single open command", s.History())
	}

	testCases := []struct {
		name string
		cfg  Config
	}{
		{"zero rate", testConfig(0, 20)},
		{"negative buy-in", testConfig(1, -20)},
		{"buy-in below one point", testConfig(5, 4)},
		{"buy-in finer than a cent", testConfig(0.001, 20.0005)},
		{"currency mismatch", Config{Rate: USD(1), StandardBuyIn: M(20, "EUR")}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSession(tc.cfg); !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("NewSession() error = %v; want %v", err, ErrInvalidAmount)
			}
		})
	}
	if _, err := NewSession(Config{Rate: M(1, "XXXX"), StandardBuyIn: M(1, "XXXX")}); err == nil {
		t.Errorf("NewSession() with an unknown currency succeeded")
	}
}

func TestSession_AddPlayer(t *testing.T) {
	s := newTestSession(t, testConfig(0.25, 20), "Alice")

	alice, _ := s.PlayerByName("alice")
	if alice.Stack() != 80 {
		t.Errorf("Stack() = %d; want 80", alice.Stack())
	}
	if s.TablePoints() != 80 {
		t.Errorf("TablePoints() = %d; want 80", s.TablePoints())
	}
	if got := alice.BuyIns(); len(got) != 1 || !got[0].Amount.Equal(USD(20)) {
		t.Errorf("BuyIns() = %v; want one buy-in of 20", got)
	}
	if alice.Status() != PlayerActive {
		t.Errorf("Status() = %q; want %q", alice.Status(), PlayerActive)
	}

	testCases := []struct {
		name string
		in   string
		want error
	}{
		{"same name", "Alice", ErrDuplicateName},
		{"different case", "ALICE", ErrDuplicateName},
		{"surrounding spaces", "  alice ", ErrDuplicateName},
		{"blank", "   ", ErrInvalidName},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.AddPlayer(tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("AddPlayer(%q) error = %v; want %v", tc.in, err, tc.want)
			}
			if snapshot(t, got) != snapshot(t, s) {
				t.Errorf("AddPlayer(%q) changed the session on error", tc.in)
			}
		})
	}
}

func TestSession_BuyIn(t *testing.T) {
	s := newTestSession(t, testConfig(1, 20), "Alice", "Bob")
	alice := id(t, s, "Alice")

	s = ok(t)(s.BuyIn(alice, USD(10.07)))
	p, _ := s.Player(alice)
	if p.Stack() != 30 {
		t.Errorf("Stack() = %d; want 30 (20 + floor(10.07))", p.Stack())
	}
	if s.TablePoints() != 50 {
		t.Errorf("TablePoints() = %d; want 50", s.TablePoints())
	}
	if !p.Invested().Equal(USD(30.07)) {
		t.Errorf("Invested() = %s; want 30.07", p.Invested().Decimal())
	}

	cashedOut := ok(t)(s.CashOut(id(t, s, "Bob"), 5))
	closed := ok(t)(s.Close())

	testCases := []struct {
		name    string
		session Session
		player  uuid.UUID
		amount  Money
		want    error
	}{
		{"zero amount", s, alice, USD(0), ErrInvalidAmount},
		{"negative amount", s, alice, USD(-5), ErrInvalidAmount},
		{"below a cent", s, alice, USD(0.001), ErrInvalidAmount},
		{"fraction of a cent", s, alice, USD(10.075), ErrInvalidAmount},
		{"other currency", s, alice, M(5, "EUR"), ErrInvalidAmount},
		{"unknown player", s, uuid.New(), USD(5), ErrPlayerNotFound},
		{"cashed out player", cashedOut, id(t, s, "Bob"), USD(5), ErrPlayerAlreadySettled},
		{"pending close", closed, alice, USD(5), ErrSessionClosed},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.session.BuyIn(tc.player, tc.amount)
			if !errors.Is(err, tc.want) {
				t.Fatalf("BuyIn() error = %v; want %v", err, tc.want)
			}
			if snapshot(t, got) != snapshot(t, tc.session) {
				t.Errorf("BuyIn() changed the session on error")
			}
		})
	}
}

func TestSession_EditBuyIn(t *testing.T) {
	s := newTestSession(t, testConfig(0.25, 20), "Alice", "Bob")
	alice := id(t, s, "Alice")
	s = ok(t)(s.BuyIn(alice, USD(10)))
	p, _ := s.Player(alice)
	second := p.BuyIns()[1].ID

	// 10 -> 12.60: floor(50.4) - floor(40) = 10 points more.
	s = ok(t)(s.EditBuyIn(alice, second, USD(12.6)))
	p, _ = s.Player(alice)
	if p.Stack() != 130 {
		t.Errorf("Stack() = %d; want 130", p.Stack())
	}
	if s.TablePoints() != 210 {
		t.Errorf("TablePoints() = %d; want 210", s.TablePoints())
	}
	rec := p.BuyIns()[1]
	if !rec.Amount.Equal(USD(12.6)) || rec.EditedAt.IsZero() {
		t.Errorf("edited record = %+v; want amount 12.6 with an edit time", rec)
	}
	if first := p.BuyIns()[0]; !first.Amount.Equal(USD(20)) || !first.EditedAt.IsZero() {
		t.Errorf("first record = %+v; want untouched", first)
	}

	// and back down.
	s = ok(t)(s.EditBuyIn(alice, second, USD(1)))
	p, _ = s.Player(alice)
	if p.Stack() != 84 {
		t.Errorf("Stack() = %d; want 84", p.Stack())
	}

	testCases := []struct {
		name   string
		player uuid.UUID
		record uuid.UUID
		amount Money
		want   error
	}{
		{"zero amount", alice, second, USD(0), ErrInvalidAmount},
		{"fraction of a cent", alice, second, USD(12.605), ErrInvalidAmount},
		{"unknown player", uuid.New(), second, USD(5), ErrPlayerNotFound},
		{"unknown record", alice, uuid.New(), USD(5), ErrRecordNotFound},
		{"record of another player", id(t, s, "Bob"), second, USD(5), ErrRecordNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.EditBuyIn(tc.player, tc.record, tc.amount)
			if !errors.Is(err, tc.want) {
				t.Fatalf("EditBuyIn() error = %v; want %v", err, tc.want)
			}
			if snapshot(t, got) != snapshot(t, s) {
				t.Errorf("EditBuyIn() changed the session on error")
			}
		})
	}
}

func TestSession_DeleteBuyIn(t *testing.T) {
	s := newTestSession(t, testConfig(1, 20), "Alice")
	alice := id(t, s, "Alice")
	first := func(s Session) uuid.UUID {
		p, _ := s.Player(alice)
		return p.BuyIns()[0].ID
	}

	got, err := s.DeleteBuyIn(alice, first(s))
	if !errors.Is(err, ErrLastBuyInProtected) {
		t.Fatalf("DeleteBuyIn() on the sole buy-in error = %v; want %v", err, ErrLastBuyInProtected)
	}
	if snapshot(t, got) != snapshot(t, s) {
		t.Errorf("DeleteBuyIn() changed the session on error")
	}

	s = ok(t)(s.BuyIn(alice, USD(15)))
	s = ok(t)(s.DeleteBuyIn(alice, first(s)))
	p, _ := s.Player(alice)
	if len(p.BuyIns()) != 1 || !p.BuyIns()[0].Amount.Equal(USD(15)) {
		t.Errorf("BuyIns() = %v; want the 15 buy-in only", p.BuyIns())
	}
	if p.Stack() != 15 || s.TablePoints() != 15 {
		t.Errorf("Stack() = %d, TablePoints() = %d; want 15, 15", p.Stack(), s.TablePoints())
	}

	if _, err := s.DeleteBuyIn(alice, uuid.New()); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("DeleteBuyIn() of an unknown record error = %v; want %v", err, ErrRecordNotFound)
	}
	if _, err := s.DeleteBuyIn(alice, first(s)); !errors.Is(err, ErrLastBuyInProtected) {
		t.Errorf("DeleteBuyIn() of the remaining buy-in error = %v; want %v", err, ErrLastBuyInProtected)
	}
}

func TestSession_StackFollowsBuyIns(t *testing.T) {
	s := newTestSession(t, testConfig(0.3, 20), "Alice")
	alice := id(t, s, "Alice")
	s = ok(t)(s.BuyIn(alice, USD(0.89)))
	s = ok(t)(s.BuyIn(alice, USD(10)))
	p, _ := s.Player(alice)
	second, third := p.BuyIns()[1].ID, p.BuyIns()[2].ID

	// 66 + 2 + 33 points, then shrink and drop buy-ins down to the first one.
	steps := []struct {
		name string
		op   func(Session) (Session, error)
		want Points
	}{
		{"edit down", func(s Session) (Session, error) { return s.EditBuyIn(alice, third, USD(0.3)) }, 69},
		{"edit to nothing", func(s Session) (Session, error) { return s.EditBuyIn(alice, second, USD(0.01)) }, 67},
		{"delete", func(s Session) (Session, error) { return s.DeleteBuyIn(alice, third) }, 66},
		{"delete the empty one", func(s Session) (Session, error) { return s.DeleteBuyIn(alice, second) }, 66},
	}
	for _, step := range steps {
		s = ok(t)(step.op(s))
		p, _ := s.Player(alice)
		if p.Stack() != step.want || s.TablePoints() != step.want {
			t.Errorf("%s: Stack() = %d, TablePoints() = %d; want %d", step.name, p.Stack(), s.TablePoints(), step.want)
		}
	}

	tampered := s.clone()
	tampered.players[0].stack--
	tampered.table--
	if err := tampered.CheckInvariants(); err == nil {
		t.Errorf("CheckInvariants() accepted a stack that differs from its buy-ins")
	}
}

func TestSession_CashOut(t *testing.T) {
	s := newTestSession(t, testConfig(0.25, 20), "Alice", "Bob")
	alice := id(t, s, "Alice")

	out := ok(t)(s.CashOut(alice, 40))
	p, _ := out.Player(alice)
	if p.Status() != PlayerCashedOutEarly || p.Stack() != 0 {
		t.Errorf("player = %s with %d points; want %s with 0", p.Status(), p.Stack(), PlayerCashedOutEarly)
	}
	if left, found := p.LeftOnTable(); !found || left != 40 {
		t.Errorf("LeftOnTable() = %d, %v; want 40, true", left, found)
	}
	if !p.CashOut().Equal(USD(10)) {
		t.Errorf("CashOut() = %s; want 10", p.CashOut().Decimal())
	}
	if log := p.CashOuts(); len(log) != 1 || log[0].Points != 40 || !log[0].Value.Equal(USD(10)) || log[0].Final {
		t.Errorf("CashOuts() = %+v; want one early entry of 40 points for 10", log)
	}
	if out.TablePoints() != 120 {
		t.Errorf("TablePoints() = %d; want 120", out.TablePoints())
	}

	// cashing out nothing leaves the whole stack on the table.
	all := ok(t)(s.CashOut(alice, 0))
	if left, _ := all.Players()[0].LeftOnTable(); left != 80 || all.TablePoints() != 160 {
		t.Errorf("LeftOnTable() = %d, TablePoints() = %d; want 80, 160", left, all.TablePoints())
	}

	testCases := []struct {
		name    string
		session Session
		player  uuid.UUID
		points  Points
		want    error
	}{
		{"negative points", s, alice, -1, ErrInvalidAmount},
		{"more than the stack", s, alice, 81, ErrInvalidAmount},
		{"more than the stack within the table", s, alice, 150, ErrInvalidAmount},
		{"unknown player", s, uuid.New(), 10, ErrPlayerNotFound},
		{"twice", out, alice, 10, ErrPlayerAlreadySettled},
		{"pending close", ok(t)(s.Close()), alice, 10, ErrSessionClosed},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.session.CashOut(tc.player, tc.points)
			if !errors.Is(err, tc.want) {
				t.Fatalf("CashOut() error = %v; want %v", err, tc.want)
			}
			if snapshot(t, got) != snapshot(t, tc.session) {
				t.Errorf("CashOut() changed the session on error")
			}
		})
	}
}

func TestSession_Close(t *testing.T) {
	empty := newTestSession(t, testConfig(1, 20))
	if _, err := empty.Close(); !errors.Is(err, ErrNoPlayers) {
		t.Errorf("Close() of an empty game error = %v; want %v", err, ErrNoPlayers)
	}

	s := ok(t)(newTestSession(t, testConfig(1, 20), "Alice").Close())
	if s.Status() != StatusPendingClose {
		t.Errorf("Status() = %q; want %q", s.Status(), StatusPendingClose)
	}
	if _, err := s.Close(); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Close() twice error = %v; want %v", err, ErrSessionClosed)
	}
	if _, err := s.AddPlayer("Bob"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("AddPlayer() after close error = %v; want %v", err, ErrSessionClosed)
	}
}

func TestSession_FreezeOnClose(t *testing.T) {
	for _, freeze := range []bool{false, true} {
		cfg := testConfig(1, 20)
		cfg.FreezeOnClose = freeze
		s := newTestSession(t, cfg, "Alice")
		alice := id(t, s, "Alice")
		s = ok(t)(s.BuyIn(alice, USD(10)))
		s = ok(t)(s.Close())
		p, _ := s.Player(alice)

		_, editErr := s.EditBuyIn(alice, p.BuyIns()[1].ID, USD(5))
		_, deleteErr := s.DeleteBuyIn(alice, p.BuyIns()[1].ID)
		if freeze {
			if !errors.Is(editErr, ErrSessionClosed) || !errors.Is(deleteErr, ErrSessionClosed) {
				t.Errorf("frozen: EditBuyIn() = %v, DeleteBuyIn() = %v; want %v", editErr, deleteErr, ErrSessionClosed)
			}
			continue
		}
		if editErr != nil || deleteErr != nil {
			t.Errorf("permissive: EditBuyIn() = %v, DeleteBuyIn() = %v; want nil", editErr, deleteErr)
		}
	}
}

func TestSession_Finalize(t *testing.T) {
	s := newTestSession(t, testConfig(1, 20), "Alice", "Bob", "Carol")
	alice, bob, carol := id(t, s, "Alice"), id(t, s, "Bob"), id(t, s, "Carol")
	s = ok(t)(s.CashOut(carol, 15)) // 5 left on the table

	if _, err := s.Finalize(map[uuid.UUID]Points{alice: 20, bob: 20}); !errors.Is(err, ErrSessionNotClosed) {
		t.Fatalf("Finalize() before close error = %v; want %v", err, ErrSessionNotClosed)
	}
	s = ok(t)(s.Close())

	testCases := []struct {
		name  string
		final map[uuid.UUID]Points
		want  error
	}{
		{"short", map[uuid.UUID]Points{alice: 20, bob: 19}, ErrPointMismatch},
		{"over", map[uuid.UUID]Points{alice: 30, bob: 20}, ErrPointMismatch},
		{"left on table counted twice", map[uuid.UUID]Points{alice: 25, bob: 20}, ErrPointMismatch},
		{"missing player", map[uuid.UUID]Points{alice: 40}, ErrInvalidAmount},
		{"negative count", map[uuid.UUID]Points{alice: 41, bob: -1}, ErrInvalidAmount},
		{"unknown player", map[uuid.UUID]Points{alice: 20, bob: 20, uuid.New(): 0}, ErrPlayerNotFound},
		{"cashed out player", map[uuid.UUID]Points{alice: 20, bob: 15, carol: 5}, ErrPlayerAlreadySettled},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Finalize(tc.final)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Finalize() error = %v; want %v", err, tc.want)
			}
			if snapshot(t, got) != snapshot(t, s) {
				t.Errorf("Finalize() changed the session on error")
			}
		})
	}

	var mismatch *PointMismatchError
	if _, err := s.Finalize(map[uuid.UUID]Points{alice: 20, bob: 19}); !errors.As(err, &mismatch) {
		t.Fatalf("Finalize() error = %v; want a *PointMismatchError", err)
	} else if mismatch.Table != 45 || mismatch.Submitted != 39 || mismatch.LeftOnTable != 5 {
		t.Errorf("PointMismatchError = %+v; want table 45, submitted 39, left 5", mismatch)
	}

	// Alice took 12 points from Bob.
	done := ok(t)(s.Finalize(map[uuid.UUID]Points{alice: 32, bob: 8}))
	if done.Status() != StatusCompleted || done.TablePoints() != 0 {
		t.Errorf("Status() = %q, TablePoints() = %d; want completed, 0", done.Status(), done.TablePoints())
	}
	if _, ended := done.Ended(); !ended {
		t.Errorf("Ended() = false; want true")
	}
	want := map[string]struct {
		status PlayerStatus
		net    Money
	}{
		"Alice": {PlayerCompleted, USD(12)},
		"Bob":   {PlayerCompleted, USD(-12)},
		"Carol": {PlayerCashedOutEarly, USD(-5)},
	}
	for _, p := range done.Players() {
		if p.Status() != want[p.Name()].status || !p.Net().Equal(want[p.Name()].net) {
			t.Errorf("%s: %s with net %s; want %s with net %s", p.Name(), p.Status(), p.Net(), want[p.Name()].status, want[p.Name()].net)
		}
		if p.Stack() != 0 {
			t.Errorf("%s: Stack() = %d; want 0", p.Name(), p.Stack())
		}
	}
	if !done.Unclaimed().Equal(USD(5)) {
		t.Errorf("Unclaimed() = %s; want 5", done.Unclaimed())
	}
}

func TestSession_CompletedIsImmutable(t *testing.T) {
	s := newTestSession(t, testConfig(1, 20), "Alice")
	alice := id(t, s, "Alice")
	p, _ := s.Player(alice)
	record := p.BuyIns()[0].ID
	s = ok(t)(s.Close())
	s = ok(t)(s.Finalize(map[uuid.UUID]Points{alice: 20}))

	ops := map[string]func() (Session, error){
		"AddPlayer":   func() (Session, error) { return s.AddPlayer("Bob") },
		"BuyIn":       func() (Session, error) { return s.BuyIn(alice, USD(5)) },
		"EditBuyIn":   func() (Session, error) { return s.EditBuyIn(alice, record, USD(5)) },
		"DeleteBuyIn": func() (Session, error) { return s.DeleteBuyIn(alice, record) },
		"CashOut":     func() (Session, error) { return s.CashOut(alice, 1) },
		"Close":       func() (Session, error) { return s.Close() },
		"Finalize":    func() (Session, error) { return s.Finalize(map[uuid.UUID]Points{alice: 20}) },
	}
	for name, op := range ops {
		got, err := op()
		if !errors.Is(err, ErrSessionClosed) {
			t.Errorf("%s() on a completed session error = %v; want %v", name, err, ErrSessionClosed)
		}
		if snapshot(t, got) != snapshot(t, s) {
			t.Errorf("%s() changed a completed session", name)
		}
	}
}

func TestSession_ValueSemantics(t *testing.T) {
	s := newTestSession(t, testConfig(1, 20), "Alice")
	alice := id(t, s, "Alice")
	before := snapshot(t, s)

	_ = ok(t)(s.BuyIn(alice, USD(10)))
	_ = ok(t)(s.CashOut(alice, 5))
	p, _ := s.Player(alice)
	p.BuyIns()[0].Amount = USD(1000)

	if after := snapshot(t, s); after != before {
		t.Errorf("operations modified the receiver:\n got %s\nwant %s", after, before)
	}
}

// TestSession_FullGame walks through a whole evening at a quarter per point.
func TestSession_FullGame(t *testing.T) {
	s := newTestSession(t, testConfig(0.25, 20), "Alice")
	alice := id(t, s, "Alice")
	if p, _ := s.Player(alice); p.Stack() != 80 || s.TablePoints() != 80 {
		t.Fatalf("Alice has %d points, table %d; want 80, 80", p.Stack(), s.TablePoints())
	}

	// Bob joins for 15 instead of the standard 20.
	s = ok(t)(s.AddPlayer("Bob"))
	bob := id(t, s, "Bob")
	p, _ := s.Player(bob)
	s = ok(t)(s.EditBuyIn(bob, p.BuyIns()[0].ID, USD(15)))
	if p, _ := s.Player(bob); p.Stack() != 60 || s.TablePoints() != 140 {
		t.Fatalf("Bob has %d points, table %d; want 60, 140", p.Stack(), s.TablePoints())
	}

	s = ok(t)(s.CashOut(alice, 40))
	if left, _ := s.Players()[0].LeftOnTable(); left != 40 || s.TablePoints() != 100 {
		t.Fatalf("Alice left %d points, table %d; want 40, 100", left, s.TablePoints())
	}

	s = ok(t)(s.Close())
	s = ok(t)(s.Finalize(map[uuid.UUID]Points{bob: 60}))
	if s.Status() != StatusCompleted {
		t.Fatalf("Status() = %q; want %q", s.Status(), StatusCompleted)
	}

	results := s.Results()
	if !results[0].Net.Equal(USD(-10)) || !results[1].Net.Equal(USD(0)) {
		t.Errorf("nets = %s, %s; want -10, 0", results[0].Net, results[1].Net)
	}
	if !s.TotalCashedOut().Sub(s.TotalInvested()).Equal(s.Unclaimed().Neg()) {
		t.Errorf("cashed out %s - invested %s; want -%s", s.TotalCashedOut(), s.TotalInvested(), s.Unclaimed())
	}
}

// TestSession_ConservationUnderRandomOperations applies a long sequence of
// operations, valid or not, and checks the point bookkeeping after each one.
func TestSession_ConservationUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := newTestSession(t, testConfig(0.5, 20), "Alice", "Bob", "Carol", "Dave")
	amounts := []float64{-5, 0, 0.49, 1, 7.75, 10.07, 25}

	for step := range 500 {
		players := s.Players()
		p := players[rng.IntN(len(players))]
		var record uuid.UUID
		if buyIns := p.BuyIns(); rng.IntN(5) > 0 {
			record = buyIns[rng.IntN(len(buyIns))].ID
		} else {
			record = uuid.New()
		}
		amount := USD(amounts[rng.IntN(len(amounts))])

		var next Session
		var err error
		switch rng.IntN(6) {
		case 0, 1:
			next, err = s.BuyIn(p.ID(), amount)
		case 2:
			next, err = s.EditBuyIn(p.ID(), record, amount)
		case 3:
			next, err = s.DeleteBuyIn(p.ID(), record)
		case 4:
			if rng.IntN(10) == 0 {
				next, err = s.CashOut(p.ID(), Points(rng.IntN(int(p.Stack())+10)))
			} else {
				next, err = s.BuyIn(p.ID(), amount)
			}
		case 5:
			next, err = s.EditBuyIn(p.ID(), record, USD(float64(rng.IntN(3001))/100))
		}
		if cerr := next.CheckInvariants(); cerr != nil {
			t.Fatalf("step %d: invariants broken: %v", step, cerr)
		}
		if err != nil {
			if snapshot(t, next) != snapshot(t, s) {
				t.Fatalf("step %d: rejected operation %v changed the session", step, err)
			}
			continue
		}
		s = next
	}

	// everybody still seated reports their stack.
	s = ok(t)(s.Close())
	final := make(map[uuid.UUID]Points)
	for _, p := range s.Players() {
		if p.Status() == PlayerActive {
			final[p.ID()] = p.Stack()
		}
	}
	s = ok(t)(s.Finalize(final))
	// cash is only lost to the points left on the table and to the fractions
	// of buy-ins that bought no point.
	net, lost := USD(0), s.Unclaimed()
	for _, p := range s.Players() {
		net = net.Add(p.Net())
		for _, b := range p.BuyIns() {
			lost = lost.Add(b.Amount.Sub(PointsFor(b.Amount, USD(0.5)).Value(USD(0.5))))
		}
	}
	if !net.Equal(lost.Neg()) {
		t.Errorf("sum of nets = %s; want -%s", net.Decimal(), lost.Decimal())
	}
}
