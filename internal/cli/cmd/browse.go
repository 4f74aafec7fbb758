package cmd

import (
	"github.com/spf13/cobra"
)

// browseCmd is a placeholder for help output; the GUI path is taken in
// main before cobra runs, so GTK never sees cobra's arguments.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Launch the graphical window",
	Long: `Launch the GTK window with one pane per enabled service.

The shared input at the bottom submits to every service at once:
  Enter       submit (replies in place when reply-to-all is on)
  Ctrl+Enter  force new conversation threads everywhere
  Ctrl+R      reload every pane`,
	Run: func(_ *cobra.Command, _ []string) {
		// Handled in main before cobra dispatch.
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
