package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/releve-cli/internal/render"
	"github.com/KaramelBytes/releve-cli/internal/workbook"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the grid, habitat selection and last analysis",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkbook()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		sh := w.Sheet()
		fmt.Fprintf(out, "Workbook: %s (%dx%d)\n", w.Name, sh.Rows(), sh.Cols())
		if w.Description != "" {
			fmt.Fprintf(out, "Description: %s\n", w.Description)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, render.Grid(sh.ReadAll()))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Habitats:")
		fmt.Fprintln(out, render.Habitats(sh.Controls()))
		if w.Result != nil {
			fmt.Fprintln(out)
			printResult(out, w)
		}
		return nil
	},
}

func printResult(out io.Writer, w *workbook.Workbook) {
	x, y := w.View().Axes()
	resp := w.Result.Response
	fmt.Fprintf(out, "Analysis %s (%s)\n", w.Result.RunID, w.Result.ReceivedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(out, render.Communalities(resp.Communalities, x, y))
	fmt.Fprintln(out)
	fmt.Fprintln(out, render.Syntaxons(resp.TopSyntaxons))
}

func init() {
	rootCmd.AddCommand(showCmd)
}
