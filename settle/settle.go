package settle

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	pokergame "github.com/KidMaxi/pokergamemanager-sub001"
)

var (
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrDuplicateParty   = errors.New("duplicate party")
)

// NoPayments is the summary of a settlement without transfers.
const NoPayments = "No payments needed."

// Party is the net result of one player: positive when the player won money.
type Party struct {
	Name string
	Net  pokergame.Money
}

// Transfer is one advisory payment.
type Transfer struct {
	From   string // debtor
	To     string // creditor
	Amount pokergame.Money
}

func (t Transfer) String() string {
	return fmt.Sprintf("%s pays %s %s", t.From, t.To, t.Amount)
}

// Settlement is the outcome of Compute.
type Settlement struct {
	Transfers []Transfer
	// Residual is what the transfers could not settle because the net results
	// do not sum to zero. Positive when creditors are still owed money,
	// negative when debtors paid in more than anybody won.
	Residual pokergame.Money
}

// Balance is the total paid and received by one party.
type Balance struct {
	Paid     pokergame.Money
	Received pokergame.Money
}

// position is a creditor or a debtor still to be settled.
type position struct {
	name   string
	amount pokergame.Money // remaining magnitude, always positive
}

// Compute returns the transfers that settle parties.
//
// Parties whose rounded result is zero are ignored. Transfers are emitted in
// the order they are found. When two creditors or two debtors hold the same
// amount, the first one in parties is settled first.
func Compute(parties []Party) (Settlement, error) {
	var currency string
	seen := make(map[string]bool, len(parties))
	for _, p := range parties {
		if seen[p.Name] {
			return Settlement{}, fmt.Errorf("%q: %w", p.Name, ErrDuplicateParty)
		}
		seen[p.Name] = true
		switch c := p.Net.Currency(); {
		case c == "":
		case currency == "":
			currency = c
		case c != currency:
			return Settlement{}, fmt.Errorf("%q is in %s, expected %s: %w", p.Name, c, currency, ErrCurrencyMismatch)
		}
	}
	if currency == "" {
		currency = pokergame.DefaultCurrency
	}

	zero := pokergame.M(0, currency)
	unit := zero.Unit()

	var creditors, debtors []position
	for i, net := range roundNets(parties, currency) {
		switch {
		case net.Abs().LessThan(unit):
		case net.IsPositive():
			creditors = append(creditors, position{name: parties[i].Name, amount: net})
		default:
			debtors = append(debtors, position{name: parties[i].Name, amount: net.Abs()})
		}
	}

	var transfers []Transfer
	for len(creditors) > 0 && len(debtors) > 0 {
		c, d := largest(creditors), largest(debtors)
		amount := creditors[c].amount.Min(debtors[d].amount)
		transfers = append(transfers, Transfer{From: debtors[d].name, To: creditors[c].name, Amount: amount})
		creditors[c].amount = creditors[c].amount.Sub(amount)
		debtors[d].amount = debtors[d].amount.Sub(amount)
		creditors = settled(creditors, c, unit)
		debtors = settled(debtors, d, unit)
	}

	residual := zero
	for _, c := range creditors {
		residual = residual.Add(c.amount)
	}
	for _, d := range debtors {
		residual = residual.Sub(d.amount)
	}
	return Settlement{Transfers: transfers, Residual: residual}, nil
}

// roundNets rounds every net to the currency minor unit so that the rounded
// nets add up to the rounded total. Nets are rounded down, then the units
// still missing go to the largest remainders, the first party on ties.
func roundNets(parties []Party, currency string) []pokergame.Money {
	zero := pokergame.M(0, currency)
	unit := zero.Unit()

	total, floored := zero, zero
	nets := make([]pokergame.Money, len(parties))
	remainders := make([]pokergame.Money, len(parties))
	for i, p := range parties {
		net, _ := p.Net.In(currency)
		total = total.Add(net)
		nets[i] = net.Floor()
		remainders[i] = net.Sub(nets[i])
		floored = floored.Add(nets[i])
	}

	order := make([]int, len(parties))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return remainders[b].Cmp(remainders[a]) })

	for _, i := range order {
		if !floored.Add(unit).LessThanOrEqual(total.Round()) || !remainders[i].IsPositive() {
			break
		}
		nets[i] = nets[i].Add(unit)
		floored = floored.Add(unit)
	}
	return nets
}

// largest returns the index of the largest position, the first one on ties.
func largest(positions []position) int {
	best := 0
	for i, p := range positions[1:] {
		if p.amount.GreaterThan(positions[best].amount) {
			best = i + 1
		}
	}
	return best
}

// settled removes positions[i] if nothing is left to settle, keeping the order.
func settled(positions []position, i int, unit pokergame.Money) []position {
	if positions[i].amount.LessThan(unit) {
		return append(positions[:i], positions[i+1:]...)
	}
	return positions
}

// FromSession returns the net result of every player of a completed session.
func FromSession(s pokergame.Session) ([]Party, error) {
	if s.Status() != pokergame.StatusCompleted {
		return nil, fmt.Errorf("session is %s: %w", s.Status(), pokergame.ErrSessionNotCompleted)
	}
	var parties []Party
	for _, r := range s.Results() {
		parties = append(parties, Party{Name: r.Name, Net: r.Net})
	}
	return parties, nil
}

// Summary returns the transfers as plain text, one per line, ready to be
// copied into a chat.
func (s Settlement) Summary() string {
	var b strings.Builder
	if len(s.Transfers) == 0 {
		b.WriteString(NoPayments)
	}
	for i, t := range s.Transfers {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.String())
	}
	if !s.Residual.Round().IsZero() {
		fmt.Fprintf(&b, "\nUnsettled: %s", s.Residual.Abs())
	}
	return b.String()
}

// ByParty returns the total paid and received by every party in the transfers.
func (s Settlement) ByParty() map[string]Balance {
	balances := make(map[string]Balance)
	zero := pokergame.M(0, s.Residual.Currency())
	get := func(name string) Balance {
		b, ok := balances[name]
		if !ok {
			b = Balance{Paid: zero, Received: zero}
		}
		return b
	}
	for _, t := range s.Transfers {
		from := get(t.From)
		from.Paid = from.Paid.Add(t.Amount)
		balances[t.From] = from
		to := get(t.To)
		to.Received = to.Received.Add(t.Amount)
		balances[t.To] = to
	}
	return balances
}
