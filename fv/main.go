package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/finvest/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	completer := &complete.Command{Sub: map[string]*complete.Command{}}
	for _, c := range cmd.Commands {
		commander.Register(c, "")
		completer.Sub[c.Name()] = &complete.Command{}
	}
	// Shell completion for subcommand names; a no-op outside of a
	// completion request.
	completer.Complete("fv")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
