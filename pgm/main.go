// Command pgm keeps the ledger of a home poker game in a local journal file.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/KidMaxi/pokergamemanager-sub001/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Exits when invoked by the shell to complete a command line.
	cmd.Completion().Complete("pgm")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	cmd.SetupLogging()

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if ok, code := cmd.RunExtension(name, flag.Args()[1:]); ok {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
