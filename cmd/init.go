package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/releve-cli/internal/utils"
	"github.com/KaramelBytes/releve-cli/internal/workbook"
)

var (
	initDescription string
	initRows        int
	initCols        int
)

var initCmd = &cobra.Command{
	Use:   "init <workbook-name>",
	Short: "Create a new empty relevé workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		dir, err := resolveWorkbookDirByName(name)
		if err != nil {
			return err
		}
		// Refuse to overwrite an existing workbook.
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			if _, err := os.Stat(filepath.Join(dir, workbook.FileName)); err == nil {
				return fmt.Errorf("workbook already exists at %s", dir)
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("inspect workbook directory: %w", err)
			}
			if len(entries) > 0 {
				return fmt.Errorf("directory %s already exists and is not empty; refusing to initialize workbook", dir)
			}
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("stat workbook directory: %w", err)
		}
		rows, cols := initRows, initCols
		if rows <= 0 {
			rows = effectiveConfig().DefaultRows
		}
		if cols <= 0 {
			cols = effectiveConfig().DefaultCols
		}
		if err := utils.EnsureDir(dir); err != nil {
			return err
		}
		w := workbook.New(name, initDescription, dir, rows, cols)
		if err := w.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Workbook initialized: %s (%dx%d)\n", dir, rows, cols)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initDescription, "desc", "d", "", "workbook description")
	initCmd.Flags().IntVar(&initRows, "rows", 0, "row count including the header row (default from config)")
	initCmd.Flags().IntVar(&initCols, "cols", 0, "relevé column count (default from config)")
}
