package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"quantfolio/internal/cli"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, "quantfolio")
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cli.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
