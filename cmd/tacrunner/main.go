// Command tacrunner is the command-line interface to the TAC virtual
// machine: it parses a three-address-code source file and executes it.
package main

import (
	"context"
	"os"

	"github.com/smoynes/tacrunner/internal/cli"
	"github.com/smoynes/tacrunner/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Runner(),
}

func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
