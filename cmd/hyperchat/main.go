package main

import (
	"fmt"
	"os"

	"github.com/mattmireles/Hyperchat-sub000/internal/cli"
	"github.com/mattmireles/Hyperchat-sub000/internal/cli/cmd"
)

// Build-time variable (set via ldflags).
var version = "dev"

func main() {
	// GUI mode bypasses cobra so GTK never sees its arguments.
	if len(os.Args) > 1 && os.Args[1] == "browse" {
		os.Exit(runGUI())
	}

	cmd.SetVersion(version)
	cmd.Execute()
}

func runGUI() int {
	app, err := cli.NewApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "hyperchat:", err)
		return 1
	}
	defer func() { _ = app.Close() }()

	return cli.RunGUI(app)
}
