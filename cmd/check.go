package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	pokergame "github.com/KidMaxi/pokergamemanager-sub001"
	"github.com/google/subcommands"
)

type checkCmd struct {
	write bool
}

func (*checkCmd) Name() string { return "check" }
func (*checkCmd) Synopsis() string {
	return "validates the session file and optionally rewrites it in canonical form"
}
func (*checkCmd) Usage() string {
	return `pgm check [-w]

  Replays every command of the session file through the ledger and verifies
  the point bookkeeping. With -w, the file is rewritten in its canonical
  JSONL form.

Usage Examples:
$ pgm check -w
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "w", false, "Rewrite the session file in canonical form.")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := DecodeSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := s.CheckInvariants(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.write {
		var b bytes.Buffer
		if err := pokergame.EncodeJournal(&b, s); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(*sessionFile, b.Bytes(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving %q: %v\n", *sessionFile, err)
			return subcommands.ExitFailure
		}
		logger.Debug("session rewritten", "file", *sessionFile)
	}

	fmt.Printf("%s: %d commands, game %s\n", *sessionFile, len(s.History()), s.Status())
	return subcommands.ExitSuccess
}
