package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/KidMaxi/pokergamemanager-sub001/renderer"
	"github.com/KidMaxi/pokergamemanager-sub001/settle"
	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

type statusCmd struct {
	history bool
}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "display the players and the points in play" }
func (*statusCmd) Usage() string {
	return `pgm status [-history]

  Displays the state of the game: points in play, and for every player the
  buy-ins, stack, cash-out and net result.
`
}

func (c *statusCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.history, "history", false, "Also list every recorded operation.")
}

func (c *statusCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := DecodeSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SessionMarkdown(s, renderer.SessionRenderOptions{SkipHistory: !c.history}))
	return subcommands.ExitSuccess
}

type settleCmd struct {
	plain bool
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "compute who pays whom at the end of the game" }
func (*settleCmd) Usage() string {
	return `pgm settle [-plain]

  Computes the payments that settle a completed game, using as few payments as
  possible. Nothing is paid by this command, it only suggests.

  With -plain, prints one payment per line, ready to be pasted in a chat.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "Print the payments as plain text.")
}

func (c *settleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := DecodeSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if !c.plain {
		md, err := renderer.SettlementMarkdown(s)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		printMarkdown(md)
		return subcommands.ExitSuccess
	}

	parties, err := settle.FromSession(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	st, err := settle.Compute(parties)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println(st.Summary())
	return subcommands.ExitSuccess
}

type showCmd struct {
	query string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "print the game state as JSON" }
func (*showCmd) Usage() string {
	return `pgm show [-q <jsonpath>]

  Prints a JSON snapshot of the game. With -q, prints only the values selected
  by a JSONPath expression.

Usage Examples:
# Net result of every player.
$ pgm show -q '$.players[*].net'
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "JSONPath expression selecting what to print.")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := DecodeSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	snapshot, err := json.Marshal(s)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	var v any
	if err := json.Unmarshal(snapshot, &v); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if c.query != "" {
		v, err = jsonpath.Get(c.query, v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: query %q: %v\n", c.query, err)
			return subcommands.ExitUsageError
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
