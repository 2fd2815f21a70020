package renderer

import (
	"fmt"

	pokergame "github.com/KidMaxi/pokergamemanager-sub001"
	"github.com/google/uuid"
)

// Command renders a command of s's history to a string.
func Command(s pokergame.Session, cmd pokergame.Command) string {
	name := func(id uuid.UUID) string {
		if p, ok := s.Player(id); ok {
			return p.Name()
		}
		return id.String()
	}
	// amounts decoded from a journal carry no currency.
	cash := func(m pokergame.Money) pokergame.Money {
		if v, err := m.In(s.Config().Currency()); err == nil {
			return v
		}
		return m
	}
	switch v := cmd.(type) {
	case pokergame.Open:
		return fmt.Sprintf("Opened the game at %s per point, standard buy-in %s", cash(v.Rate), cash(v.StandardBuyIn))
	case pokergame.AddPlayer:
		return fmt.Sprintf("%s joined with the standard buy-in", v.Name)
	case pokergame.BuyIn:
		return fmt.Sprintf("%s bought in for %s", name(v.Player), cash(v.Amount))
	case pokergame.EditBuyIn:
		return fmt.Sprintf("Changed a buy-in of %s to %s", name(v.Player), cash(v.Amount))
	case pokergame.DeleteBuyIn:
		return fmt.Sprintf("Deleted a buy-in of %s", name(v.Player))
	case pokergame.CashOut:
		return fmt.Sprintf("%s cashed out %s points", name(v.Player), v.Points)
	case pokergame.Close:
		return "Closed the game"
	case pokergame.Finalize:
		return fmt.Sprintf("Finalized the game with %d final counts", len(v.Points))
	default:
		return string(cmd.What())
	}
}
