package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mattmireles/Hyperchat-sub000/internal/cli/model"
	"github.com/mattmireles/Hyperchat-sub000/internal/cli/styles"
	"github.com/mattmireles/Hyperchat-sub000/internal/infrastructure/clipboard"
)

var (
	historyLimit int
	historyPlain bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past shared prompts",
	Long: `Browse the prompt submission history interactively. The selected
prompt can be copied back to the clipboard with y or Enter.

Use --plain for scriptable tabular output.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Number of entries to show (default from config)")
	historyCmd.Flags().BoolVar(&historyPlain, "plain", false, "Print a plain table instead of the interactive browser")
}

func runHistory(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	limit := historyLimit
	if limit <= 0 {
		limit = app.Config.History.RecentLimit
	}

	if historyPlain {
		return printHistory(limit)
	}

	theme := styles.NewTheme()
	m := model.NewHistoryModel(app.Ctx(), theme, app.Prompts, clipboard.New(), limit)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("history browser: %w", err)
	}
	if hm, ok := final.(model.HistoryModel); ok && hm.Err() != nil {
		return hm.Err()
	}
	return nil
}

func printHistory(limit int) error {
	app := GetApp()
	records, err := app.Prompts.Recent(app.Ctx(), limit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tMODE\tPROMPT")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			styles.FormatPromptTime(rec.SubmittedAt), rec.Mode, rec.Text)
	}
	return w.Flush()
}
