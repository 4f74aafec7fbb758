package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattmireles/Hyperchat-sub000/internal/cli/styles"
	"github.com/mattmireles/Hyperchat-sub000/internal/delivery"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List configured AI services",
	Long: `List the configured services in display order, with their prompt
delivery mode and home URL. Disabled services are shown dimmed.`,
	RunE: runServices,
}

func init() {
	rootCmd.AddCommand(servicesCmd)
}

func runServices(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	theme := styles.NewTheme()

	catalog, err := delivery.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("delivery catalog: %w", err)
	}

	fmt.Println(theme.Title.Render("Services"))
	for _, desc := range entity.Sorted(app.Config.Descriptors()) {
		mode := "unknown"
		home := ""
		if profile, ok := catalog.Lookup(desc.ID); ok {
			mode = profile.Mode().String()
			home = profile.HomeURL
		}
		line := fmt.Sprintf("%-12s %-10s %s", desc.ID, mode, home)
		if desc.Enabled {
			fmt.Println(theme.Item.Render(line))
		} else {
			fmt.Println(theme.Dim.Render("  " + line + "  (disabled)"))
		}
	}
	return nil
}
