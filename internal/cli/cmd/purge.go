package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattmireles/Hyperchat-sub000/internal/cli/styles"
)

var purgeDays int

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete old prompt history",
	Long: `Delete prompt history older than the given number of days. With no
flag, the configured retention window is used.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		theme := styles.NewTheme()

		days := purgeDays
		if days <= 0 {
			days = app.Config.History.RetentionDays
		}
		if days <= 0 {
			return fmt.Errorf("no retention window: pass --days or set history.retention_days")
		}

		deleted, err := app.Prompts.DeleteOlderThan(app.Ctx(), days)
		if err != nil {
			return fmt.Errorf("purge history: %w", err)
		}
		fmt.Println(theme.OK.Render(fmt.Sprintf("deleted %d prompts older than %d days", deleted, days)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
	purgeCmd.Flags().IntVar(&purgeDays, "days", 0, "Delete prompts older than this many days")
}
