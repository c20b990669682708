package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/releve-cli/internal/config"
	"github.com/KaramelBytes/releve-cli/internal/logging"
)

var (
	cfgFile string
	debug   bool
	// HTTP flags (override config if set)
	flagHTTPTimeoutSec int
	flagAnalysisURL    string
	// Workbook selection, shared by every command that edits one.
	workbookName string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "releve",
	Short: "Relevé CLI: edit a species x habitat survey matrix and analyze it",
	Long: `Relevé keeps a phytosociological survey grid (habitats across the header row,
species down the columns), lets you paste blocks into it from a spreadsheet,
submits the selected habitats to an analysis service and renders the returned
projection.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.releve/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagAnalysisURL, "analysis-url", "", "analysis endpoint URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&workbookName, "workbook", "w", "", "workbook name (default: the workbook in the current directory)")
}

func loadConfig() {
	if debug {
		logging.SetLogger(logging.NewText(os.Stderr, true))
	} else {
		logging.SetLogger(nil)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("analysis-url") && flagAnalysisURL != "" {
		cfg.AnalysisURL = flagAnalysisURL
	}
	logging.Logger().Debug("config loaded", "analysis_url", cfg.AnalysisURL,
		"workbooks_dir", cfg.WorkbooksDir, "http_timeout_sec", cfg.HTTPTimeoutSec)
}

// effectiveConfig returns the loaded configuration, falling back to defaults
// when the file could not be read.
func effectiveConfig() *cfgpkg.Global {
	if cfg == nil {
		cfg = &cfgpkg.Global{
			AnalysisURL: "http://localhost:8888/api/analyze",
			DefaultRows: 11,
			DefaultCols: 5,
			PlotOutput:  "plot.html",
		}
	}
	return cfg
}
