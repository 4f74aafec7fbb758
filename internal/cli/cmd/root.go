// Package cmd provides the Cobra commands for hyperchat.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattmireles/Hyperchat-sub000/internal/cli"
)

var (
	app     *cli.App
	version = "dev"

	rootCmd = &cobra.Command{
		Use:   "hyperchat",
		Short: "One prompt, every AI chat service, side by side",
		Long: `Hyperchat opens the major AI chat services in a single window and
fans one prompt out to all of them at once.

Use 'hyperchat browse' to launch the graphical window, or explore the
subcommands for prompt history, service listing, and diagnostics.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}
			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app for subcommands.
func GetApp() *cli.App {
	return app
}

// SetVersion records the build version (set from main via ldflags).
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("hyperchat %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
