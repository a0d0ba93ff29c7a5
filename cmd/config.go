package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/autoeda-cli/internal/common"
	cfgpkg "github.com/KaramelBytes/autoeda-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set AutoEDA configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "preview_rows: %d\n", c.PreviewRows)
		fmt.Fprintf(out, "low_cardinality_max: %d\n", c.LowCardinalityMax)
		fmt.Fprintf(out, "identifier_suffixes: %s\n", strings.Join(c.IdentifierSuffixes, ","))
		fmt.Fprintf(out, "missing_tokens: %q\n", c.MissingTokens)
		fmt.Fprintf(out, "skew_tolerance: %g\n", c.SkewTolerance)
		if c.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", c.Delimiter)
		}
		if c.Decimal != "" {
			fmt.Fprintf(out, "decimal: %s\n", c.Decimal)
		}
		if c.Thousands != "" {
			fmt.Fprintf(out, "thousands: %s\n", c.Thousands)
		}
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := currentConfig()
		if err != nil {
			return err
		}
		if err := applySetting(c, key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func applySetting(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "preview_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for preview_rows: %v", val)
		}
		c.PreviewRows = i
	case "low_cardinality_max":
		i, err := strconv.Atoi(val)
		if err != nil || i < 3 {
			return fmt.Errorf("invalid int for low_cardinality_max: %v (must be >= 3)", val)
		}
		c.LowCardinalityMax = i
	case "identifier_suffixes":
		c.IdentifierSuffixes = splitList(val)
	case "missing_tokens":
		c.MissingTokens = append([]string{""}, splitList(val)...)
	case "skew_tolerance":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid float for skew_tolerance: %v", val)
		}
		c.SkewTolerance = f
	case "delimiter":
		switch val {
		case ",", ";", "tab", "":
			c.Delimiter = val
		case "\t":
			c.Delimiter = "tab"
		default:
			return fmt.Errorf("invalid delimiter: %s (use ',' ';' or tab)", val)
		}
	case "decimal":
		c.Decimal = val
	case "thousands":
		c.Thousands = val
	case "log_level":
		if _, err := common.ParseLevel(val); err != nil {
			return err
		}
		c.LogLevel = val
	case "log_format":
		switch val {
		case "console", "text", "json":
			c.LogFormat = val
		default:
			return fmt.Errorf("invalid log_format: %s (use console or json)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// splitList parses a comma-separated value; the empty string yields an empty list.
func splitList(val string) []string {
	out := []string{}
	for _, s := range strings.Split(val, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
