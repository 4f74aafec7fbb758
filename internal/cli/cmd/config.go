package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/mattmireles/Hyperchat-sub000/internal/cli/styles"
	"github.com/mattmireles/Hyperchat-sub000/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		theme := styles.NewTheme()

		path, err := config.GetConfigFile()
		if err == nil {
			fmt.Println(theme.Subtitle.Render("# " + path))
		}
		out, err := toml.Marshal(app.Config)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema for the configuration file",
	RunE: func(_ *cobra.Command, _ []string) error {
		schema, err := config.SchemaJSON()
		if err != nil {
			return fmt.Errorf("generate schema: %w", err)
		}
		fmt.Println(string(schema))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSchemaCmd)
	rootCmd.AddCommand(configCmd)
}
