package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	pokergame "github.com/KidMaxi/pokergamemanager-sub001"
	"github.com/KidMaxi/pokergamemanager-sub001/renderer"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

type newCmd struct {
	rate     string
	buyIn    string
	currency string
	freeze   bool
	force    bool
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "start a new game" }
func (*newCmd) Usage() string {
	return `pgm new [-rate <amount>] [-buyin <amount>] [-currency <code>] [-freeze] [-force]

  Starts a new game in the session file. Every player joins with the standard
  buy-in, converted into points at the given rate (the cash value of one point).

Usage Examples:
# A game at a quarter per point with a 20 dollars buy-in.
$ pgm new -rate 0.25 -buyin 20
`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	def := pokergame.DefaultConfig()
	f.StringVar(&c.rate, "rate", def.Rate.Decimal().String(), "Cash value of one point.")
	f.StringVar(&c.buyIn, "buyin", def.StandardBuyIn.Decimal().String(), "Standard buy-in of every player.")
	f.StringVar(&c.currency, "currency", pokergame.DefaultCurrency, "Currency of the game (ISO 4217 code).")
	f.BoolVar(&c.freeze, "freeze", false, "Forbid buy-in edits once the game is closing.")
	f.BoolVar(&c.force, "force", false, "Overwrite an existing session file.")
}

func (c *newCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %q\n", f.Args())
		return subcommands.ExitUsageError
	}
	currency := strings.ToUpper(c.currency)
	if err := pokergame.ValidateCurrency(currency); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	rate, err := pokergame.ParseMoney(c.rate, currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: -rate:", err)
		return subcommands.ExitUsageError
	}
	buyIn, err := pokergame.ParseMoney(c.buyIn, currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: -buyin:", err)
		return subcommands.ExitUsageError
	}

	s, err := pokergame.NewSession(pokergame.Config{
		Rate:          rate,
		StandardBuyIn: buyIn,
		FreezeOnClose: c.freeze,
		Now:           Now,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	_, err = os.Stat(*sessionFile)
	switch {
	case err == nil && !c.force:
		fmt.Fprintf(os.Stderr, "Error: %q already holds a game, use -force to overwrite it\n", *sessionFile)
		return subcommands.ExitFailure
	case err == nil:
		logger.Warn("overwriting game", "file", *sessionFile)
		if err := os.Remove(*sessionFile); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
	case !errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	open := s.History()[0]
	if err := EncodeCommand(open); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println(renderer.Command(s, open))
	return subcommands.ExitSuccess
}

type closeCmd struct{}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "stop the game and wait for the final counts" }
func (*closeCmd) Usage() string {
	return `pgm close

  Stops the game: no player can join or buy in anymore. Count the chips of
  every player still seated, then run 'pgm finalize'.
`
}

func (*closeCmd) SetFlags(f *flag.FlagSet) {}

func (*closeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %q\n", f.Args())
		return subcommands.ExitUsageError
	}
	return update(pokergame.Session.Close)
}

type finalizeCmd struct{}

func (*finalizeCmd) Name() string     { return "finalize" }
func (*finalizeCmd) Synopsis() string { return "record the final counts and complete the game" }
func (*finalizeCmd) Usage() string {
	return `pgm finalize <player>=<points>...

  Records the final number of points of every player still seated and
  converts them into cash. The counts, plus the points left on the table by
  early cash-outs, must add up to the points in play.

Usage Examples:
$ pgm finalize alice=150 bob=50
`
}

func (*finalizeCmd) SetFlags(f *flag.FlagSet) {}

func (*finalizeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing final counts")
		return subcommands.ExitUsageError
	}
	status := update(func(s pokergame.Session) (pokergame.Session, error) {
		counts := make(map[uuid.UUID]pokergame.Points)
		for _, arg := range f.Args() {
			name, value, ok := strings.Cut(arg, "=")
			if !ok {
				return s, fmt.Errorf("%q is not <player>=<points>", arg)
			}
			p, err := findPlayer(s, name)
			if err != nil {
				return s, err
			}
			points, err := pokergame.ParsePoints(value)
			if err != nil {
				return s, fmt.Errorf("%s: %w", p.Name(), err)
			}
			counts[p.ID()] = points
		}
		return s.Finalize(counts)
	})
	if status == subcommands.ExitSuccess {
		fmt.Println("Run 'pgm settle' to see who pays whom.")
	}
	return status
}
