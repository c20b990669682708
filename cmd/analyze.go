package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/releve-cli/internal/analysis"
)

var (
	analyzeBackend string
	analyzeReplay  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Submit the grid and selected habitats to the analysis service",
	Long: `Analyze posts the whole grid and the selected habitat indices to the
analysis endpoint, then prints the communalities and the best matching
syntaxons. A successful result replaces the stored one; a failed run clears it
so no stale projection is kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkbook()
		if err != nil {
			return err
		}
		c := effectiveConfig()
		bcfg := analysis.BackendConfig{
			Endpoint:    c.AnalysisURL,
			HTTPTimeout: c.HTTPTimeout(),
			ReplayPath:  analyzeReplay,
		}
		backend, ok := analysis.GetBackend(analyzeBackend, bcfg)
		if !ok {
			return fmt.Errorf("unknown backend %q (available: %s)", analyzeBackend, strings.Join(analysis.Backends(), ", "))
		}
		runner := analysis.NewRunner(backend)
		runner.OnBusy = func(busy bool) {
			if busy {
				fmt.Fprintln(cmd.ErrOrStderr(), "… Analyse en cours")
			}
		}

		sh := w.Sheet()
		run, err := runner.Run(cmd.Context(), sh, sh.Selected())
		if err != nil {
			var noSel *analysis.NoSelectionError
			if errors.As(err, &noSel) {
				// Nothing was sent; keep whatever result is stored.
				return err
			}
			w.ClearResult()
			if serr := w.Save(); serr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: failed to save workbook: %v\n", serr)
			}
			return err
		}

		endpoint := ""
		if analyzeBackend == analysis.BackendHTTP {
			endpoint = c.AnalysisURL
		}
		w.SetResult(run, endpoint)
		if err := w.Save(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Analysis complete: %d species, %d variables\n", len(run.Response.Species), len(run.Response.Communalities))
		fmt.Fprintln(out)
		printResult(out, w)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeBackend, "backend", analysis.BackendHTTP, "analysis backend: http or replay")
	analyzeCmd.Flags().StringVar(&analyzeReplay, "replay", "", "saved response JSON for --backend replay")
}
