package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/iftar-timer/internal/astro"
	"github.com/smokyabdulrahman/iftar-timer/internal/city"
	"github.com/smokyabdulrahman/iftar-timer/internal/config"
	"github.com/smokyabdulrahman/iftar-timer/internal/display"
	"github.com/smokyabdulrahman/iftar-timer/internal/geo"
)

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the built-in cities",
		Long:  "Print the built-in city list usable with --city and `compare` without any network access.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if FlagJSON {
				data, err := json.MarshalIndent(city.Popular, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			tbl := &display.Table{Headers: []string{"  City", "Country", "Timezone"}}
			for _, c := range city.Popular {
				tbl.Rows = append(tbl.Rows, display.Row{
					Cells: []string{"  " + c.Name, c.Country, c.Timezone},
				})
			}
			fmt.Println()
			fmt.Print(tbl.Render())
			fmt.Println()
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search for a city by name",
		Long:  "Look up a place via OpenStreetMap Nominatim and print matching coordinates.\nUse a result with --latitude/--longitude, or save it with `config set`.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			results, err := geo.SearchCities(query)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if len(results) == 0 {
				fmt.Printf("No matches for %q.\n", query)
				return nil
			}

			if FlagJSON {
				data, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			tbl := &display.Table{Headers: []string{"  Name", "Country", "Latitude", "Longitude"}}
			for _, r := range results {
				tbl.Rows = append(tbl.Rows, display.Row{
					Cells: []string{
						"  " + r.Name, r.Country,
						fmt.Sprintf("%.4f", r.Lat), fmt.Sprintf("%.4f", r.Lng),
					},
				})
			}
			fmt.Println()
			fmt.Print(tbl.Render())
			fmt.Println()
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  iftar-timer config set city Riyadh\n  iftar-timer config set method UmmAlQura\n  iftar-timer config set madhab hanafi\n  iftar-timer config set time_format 24h",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = "(not set)"
		}
		if key == "method" && val != "" {
			shown = formatMethodValue(val)
		}
		fmt.Printf("  %-14s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	// Set canonicalizes (e.g. "ummalqura" -> "UmmAlQura"), so echo the
	// stored value rather than the raw argument.
	stored, _ := cfg.Get(key)
	fmt.Printf("Set %s = %s\n", key, stored)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Println("Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// formatMethodValue adds the full method name to the stored identifier.
func formatMethodValue(val string) string {
	for _, m := range astro.Methods() {
		if string(m.ID) == val {
			return fmt.Sprintf("%s (%s)", val, m.Name)
		}
	}
	return val
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List calculation methods",
		Long:  "Print the supported calculation methods and Asr madhabs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Calculation methods:")
			fmt.Println()
			for _, m := range astro.Methods() {
				star := " "
				if m.ID == astro.DefaultMethod {
					star = "*"
				}
				fmt.Printf("  %s %-12s %s %s\n", star, m.ID, m.Name, display.Gray("("+m.Description+")"))
			}
			fmt.Println()
			fmt.Println("Asr madhabs: shafi (default), hanafi")
			fmt.Println()
			fmt.Println("Use --method <name> and --madhab <name>, or persist them with `config set`.")
			return nil
		},
	}
}
