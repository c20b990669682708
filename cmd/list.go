package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/releve-cli/internal/workbook"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List workbooks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := defaultWorkbooksDir()
		if err != nil {
			return err
		}
		dirs, err := os.ReadDir(root)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		found := false
		for _, e := range dirs {
			if !e.IsDir() {
				continue
			}
			w, err := workbook.Load(filepath.Join(root, e.Name()))
			if err != nil {
				continue
			}
			sh := w.Sheet()
			line := fmt.Sprintf("- %s (%dx%d, %d selected)", e.Name(), sh.Rows(), sh.Cols(), len(sh.Selected()))
			if w.Result != nil {
				line += ", analyzed " + w.Result.ReceivedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintln(out, line)
			found = true
		}
		if !found {
			fmt.Fprintln(out, "(no workbooks)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
