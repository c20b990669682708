package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/releve-cli/internal/render"
)

var selectClear bool

var selectCmd = &cobra.Command{
	Use:   "select [index...]",
	Short: "Toggle habitats in or out of the analysis selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !selectClear && len(args) == 0 {
			w, err := openWorkbook()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Habitats(w.Sheet().Controls()))
			return nil
		}
		indices := make([]int, 0, len(args))
		for _, a := range args {
			i, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("invalid habitat index: %s", a)
			}
			indices = append(indices, i)
		}
		w, err := openWorkbook()
		if err != nil {
			return err
		}
		sh := w.Sheet()
		if selectClear {
			sh.ClearSelection()
		}
		for _, i := range indices {
			if err := sh.Toggle(i); err != nil {
				return fmt.Errorf("habitat %d: %w (grid has %d columns)", i, err, sh.Cols())
			}
		}
		if err := w.Save(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, render.Habitats(sh.Controls()))
		if len(sh.Selected()) == 0 {
			fmt.Fprintln(out, "⚠ Warning: no habitat selected; analyze will refuse to run")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().BoolVar(&selectClear, "clear", false, "deselect every habitat before toggling")
}
