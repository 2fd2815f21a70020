package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	pokergame "github.com/KidMaxi/pokergamemanager-sub001"
	"github.com/google/subcommands"
)

type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "seat new players with the standard buy-in" }
func (*addCmd) Usage() string {
	return `pgm add <player>...

  Seats one or more players. Each of them buys in for the standard buy-in.
  Names are unique, regardless of case.
`
}

func (*addCmd) SetFlags(f *flag.FlagSet) {}

func (*addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing player name")
		return subcommands.ExitUsageError
	}
	for _, name := range f.Args() {
		if status := update(func(s pokergame.Session) (pokergame.Session, error) { return s.AddPlayer(name) }); status != subcommands.ExitSuccess {
			return status
		}
	}
	return subcommands.ExitSuccess
}

type buyInCmd struct{}

func (*buyInCmd) Name() string     { return "buyin" }
func (*buyInCmd) Synopsis() string { return "record an additional buy-in" }
func (*buyInCmd) Usage() string {
	return `pgm buyin <player> <amount>

  Records a cash buy-in. The player receives the points the amount buys at the
  game rate, rounded down.

Usage Examples:
$ pgm buyin bob 10
`
}

func (*buyInCmd) SetFlags(f *flag.FlagSet) {}

func (*buyInCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expecting <player> <amount>")
		return subcommands.ExitUsageError
	}
	return update(func(s pokergame.Session) (pokergame.Session, error) {
		p, err := findPlayer(s, f.Arg(0))
		if err != nil {
			return s, err
		}
		amount, err := pokergame.ParseMoney(f.Arg(1), s.Config().Currency())
		if err != nil {
			return s, err
		}
		return s.BuyIn(p.ID(), amount)
	})
}

type editBuyInCmd struct{}

func (*editBuyInCmd) Name() string     { return "edit-buyin" }
func (*editBuyInCmd) Synopsis() string { return "change the amount of a buy-in" }
func (*editBuyInCmd) Usage() string {
	return `pgm edit-buyin <player> <buy-in> <amount>

  Changes the amount of a buy-in. The buy-in is either its position in the
  player's buy-ins, starting at 1, or its id as shown by 'pgm show'. The
  player's stack is adjusted by the difference in points.

Usage Examples:
# Bob's first buy-in was 15, not 20.
$ pgm edit-buyin bob 1 15
`
}

func (*editBuyInCmd) SetFlags(f *flag.FlagSet) {}

func (*editBuyInCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: expecting <player> <buy-in> <amount>")
		return subcommands.ExitUsageError
	}
	return update(func(s pokergame.Session) (pokergame.Session, error) {
		p, err := findPlayer(s, f.Arg(0))
		if err != nil {
			return s, err
		}
		record, err := findBuyIn(p, f.Arg(1))
		if err != nil {
			return s, err
		}
		amount, err := pokergame.ParseMoney(f.Arg(2), s.Config().Currency())
		if err != nil {
			return s, err
		}
		return s.EditBuyIn(p.ID(), record, amount)
	})
}

type deleteBuyInCmd struct{}

func (*deleteBuyInCmd) Name() string     { return "delete-buyin" }
func (*deleteBuyInCmd) Synopsis() string { return "remove a buy-in recorded by mistake" }
func (*deleteBuyInCmd) Usage() string {
	return `pgm delete-buyin <player> <buy-in>

  Removes a buy-in and its points. The buy-in is either its position in the
  player's buy-ins, starting at 1, or its id. The only buy-in of a player
  cannot be removed.
`
}

func (*deleteBuyInCmd) SetFlags(f *flag.FlagSet) {}

func (*deleteBuyInCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expecting <player> <buy-in>")
		return subcommands.ExitUsageError
	}
	return update(func(s pokergame.Session) (pokergame.Session, error) {
		p, err := findPlayer(s, f.Arg(0))
		if err != nil {
			return s, err
		}
		record, err := findBuyIn(p, f.Arg(1))
		if err != nil {
			return s, err
		}
		return s.DeleteBuyIn(p.ID(), record)
	})
}

type cashOutCmd struct{}

func (*cashOutCmd) Name() string     { return "cashout" }
func (*cashOutCmd) Synopsis() string { return "cash out a player leaving early" }
func (*cashOutCmd) Usage() string {
	return `pgm cashout <player> <points>

  Cashes out a player who leaves before the end of the game. The points are
  converted at the game rate. The rest of the player's stack stays on the
  table for the others to win.

Usage Examples:
$ pgm cashout carol 30
`
}

func (*cashOutCmd) SetFlags(f *flag.FlagSet) {}

func (*cashOutCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expecting <player> <points>")
		return subcommands.ExitUsageError
	}
	return update(func(s pokergame.Session) (pokergame.Session, error) {
		p, err := findPlayer(s, f.Arg(0))
		if err != nil {
			return s, err
		}
		points, err := pokergame.ParsePoints(f.Arg(1))
		if err != nil {
			return s, err
		}
		return s.CashOut(p.ID(), points)
	})
}
