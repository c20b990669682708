package cmd

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/releve-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set relevé configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "analysis_url: %s\n", cfg.AnalysisURL)
		fmt.Fprintf(out, "http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Fprintf(out, "default_rows: %d\n", cfg.DefaultRows)
		fmt.Fprintf(out, "default_cols: %d\n", cfg.DefaultCols)
		fmt.Fprintf(out, "workbooks_dir: %s\n", cfg.WorkbooksDir)
		fmt.Fprintf(out, "plot_output: %s\n", cfg.PlotOutput)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		positive := func() (int, error) {
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return 0, fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			return i, nil
		}
		switch key {
		case "analysis_url":
			u, err := url.Parse(val)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("invalid analysis_url: %s", val)
			}
			cfg.AnalysisURL = val
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
			}
			cfg.HTTPTimeoutSec = i
		case "default_rows":
			i, err := positive()
			if err != nil {
				return err
			}
			cfg.DefaultRows = i
		case "default_cols":
			i, err := positive()
			if err != nil {
				return err
			}
			cfg.DefaultCols = i
		case "workbooks_dir":
			cfg.WorkbooksDir = val
		case "plot_output":
			cfg.PlotOutput = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
