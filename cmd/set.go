package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/releve-cli/internal/render"
)

var setCmd = &cobra.Command{
	Use:   "set <row> <col> <value>",
	Short: "Set one cell; row 0 is the habitat header",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid row: %s", args[0])
		}
		col, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid col: %s", args[1])
		}
		w, err := openWorkbook()
		if err != nil {
			return err
		}
		sh := w.Sheet()
		if !sh.SetCell(row, col, args[2]) {
			return fmt.Errorf("cell (%d,%d) is outside the %dx%d grid", row, col, sh.Rows(), sh.Cols())
		}
		if err := w.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Set (%d,%d)\n", row, col)
		if row == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), render.Habitats(sh.Controls()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
