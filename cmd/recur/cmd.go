package main

import (
	"fmt"

	"github.com/urfave/cli"
)

const description = `Runs named shell commands from schedule.toml once their recurrence
window has elapsed, remembering the last successful run in .state.json.

Without flags, lists the tasks and runs the one you pick.
With -a/--auto, runs every task that is due.`

func newCLI(run func(auto bool) error) *cli.App {
	var auto bool
	app := cli.NewApp()
	app.Name = "recur"
	app.HelpName = "recur"
	app.Usage = "a personal recurring task runner"
	app.UsageText = "recur [-a|--auto]"
	app.Description = description
	app.HideHelp = true
	app.HideVersion = true
	app.UseShortOptionHandling = true
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:        "auto, a",
			Usage:       "run every due task without prompting (default: false)",
			Destination: &auto,
		},
	}
	app.OnUsageError = func(_ *cli.Context, err error, _ bool) error {
		return fmt.Errorf("usage: %w", err)
	}
	app.Action = func(c *cli.Context) error {
		return run(auto || hasAutoArg(c.Args()))
	}
	return app
}

// hasAutoArg catches the flag when it follows a positional argument, which
// the flag parser stops at.
func hasAutoArg(args []string) bool {
	for _, a := range args {
		if a == "-a" || a == "--auto" {
			return true
		}
	}
	return false
}

func execute(args []string, run func(auto bool) error) error {
	return newCLI(run).Run(args)
}
