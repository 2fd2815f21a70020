// Package cmd implements the CLI application to keep the ledger of a home poker game.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	pokergame "github.com/KidMaxi/pokergamemanager-sub001"
	"github.com/KidMaxi/pokergamemanager-sub001/renderer"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&newCmd{}, "session")
	c.Register(&closeCmd{}, "session")
	c.Register(&finalizeCmd{}, "session")
	c.Register(&checkCmd{}, "session")

	c.Register(&addCmd{}, "players")
	c.Register(&buyInCmd{}, "players")
	c.Register(&editBuyInCmd{}, "players")
	c.Register(&deleteBuyInCmd{}, "players")
	c.Register(&cashOutCmd{}, "players")

	c.Register(&statusCmd{}, "reports")
	c.Register(&settleCmd{}, "reports")
	c.Register(&showCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var sessionFile = flag.String("session", defaultSessionFile(), "Path to the game journal (JSONL format)")

// Verbose enables debug logs on stderr.
var Verbose = flag.Bool("v", false, "Print debug logs on stderr")

var logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel, Prefix: "pgm"})

// SetupLogging applies the global flags to the logger. Call it after flag.Parse().
func SetupLogging() {
	if *Verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

func defaultSessionFile() string {
	if f := os.Getenv(EnvSessionFile); f != "" {
		return f
	}
	return "game.jsonl"
}

// Now is the current time used by commands.
// Setting POKERGAME_TESTING_NOW pins it, so that documentation examples are stable.
func Now() time.Time {
	if v := os.Getenv(EnvTestingNow); v != "" {
		t, err := time.Parse("2006-01-02 15:04:05", v)
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

// DecodeSession replays the journal of the app session file.
func DecodeSession() (pokergame.Session, error) {
	f, err := os.Open(*sessionFile)
	if errors.Is(err, fs.ErrNotExist) {
		return pokergame.Session{}, fmt.Errorf("no game in %q, start one with 'pgm new'", *sessionFile)
	}
	if err != nil {
		return pokergame.Session{}, err
	}
	defer f.Close()

	s, err := pokergame.DecodeJournal(f)
	if err != nil {
		return s, fmt.Errorf("%s: %w", *sessionFile, err)
	}
	logger.Debug("session loaded", "file", *sessionFile, "commands", len(s.History()), "status", s.Status())
	return s.WithClock(Now), nil
}

// EncodeCommand appends a single command into the app session file.
func EncodeCommand(cmd pokergame.Command) error {
	filename := *sessionFile
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening game file %q: %w", filename, err)
	}
	defer f.Close()

	if err := pokergame.EncodeCommand(f, cmd); err != nil {
		return fmt.Errorf("writing to game file %q: %w", filename, err)
	}
	logger.Debug("command appended", "file", filename, "command", cmd.What())
	return nil
}

// update runs one ledger operation on the app session and appends the
// resulting command to the journal.
func update(op func(s pokergame.Session) (pokergame.Session, error)) subcommands.ExitStatus {
	s, err := DecodeSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	next, err := op(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	history := next.History()
	cmd := history[len(history)-1]
	if err := EncodeCommand(cmd); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println(renderer.Command(next, cmd))
	return subcommands.ExitSuccess
}

// findPlayer looks a player up by name.
func findPlayer(s pokergame.Session, name string) (pokergame.Player, error) {
	p, ok := s.PlayerByName(name)
	if !ok {
		return p, fmt.Errorf("%q: %w", name, pokergame.ErrPlayerNotFound)
	}
	return p, nil
}

// findBuyIn looks a buy-in record of p up, either by its position in the
// player's buy-ins (starting at 1) or by its id.
func findBuyIn(p pokergame.Player, ref string) (uuid.UUID, error) {
	buyIns := p.BuyIns()
	if i, err := strconv.Atoi(ref); err == nil {
		if i < 1 || i > len(buyIns) {
			return uuid.Nil, fmt.Errorf("%s has %d buy-ins, no #%d: %w", p.Name(), len(buyIns), i, pokergame.ErrRecordNotFound)
		}
		return buyIns[i-1].ID, nil
	}
	id, err := uuid.Parse(ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid buy-in reference %q: %w", ref, err)
	}
	return id, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		logger.Warn("cannot render markdown", "err", err)
		out = md
	}
	fmt.Print(out)
}
