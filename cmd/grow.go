package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addRowCount int
	addColCount int
)

var addRowCmd = &cobra.Command{
	Use:   "add-row",
	Short: "Append empty species rows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return grow(cmd, addRowCount, false)
	},
}

var addColCmd = &cobra.Command{
	Use:   "add-col",
	Short: "Append empty relevé columns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return grow(cmd, addColCount, true)
	},
}

func grow(cmd *cobra.Command, n int, columns bool) error {
	if n < 1 {
		return fmt.Errorf("count must be at least 1, got %d", n)
	}
	w, err := openWorkbook()
	if err != nil {
		return err
	}
	sh := w.Sheet()
	hadSelection := len(sh.Selected()) > 0
	if columns {
		sh.Resize(sh.Rows(), sh.Cols()+n)
	} else {
		sh.Resize(sh.Rows()+n, sh.Cols())
	}
	if err := w.Save(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Grid is now %dx%d\n", sh.Rows(), sh.Cols())
	if hadSelection {
		fmt.Fprintln(out, "⚠ Warning: habitat selection was reset")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(addRowCmd)
	rootCmd.AddCommand(addColCmd)
	addRowCmd.Flags().IntVarP(&addRowCount, "count", "n", 1, "number of rows to add")
	addColCmd.Flags().IntVarP(&addColCount, "count", "n", 1, "number of columns to add")
}
