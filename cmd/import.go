package cmd

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/releve-cli/internal/parser"
)

var (
	importRow       int
	importCol       int
	importSheet     string
	importDelimiter string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a csv, tsv, txt or xlsx block through the paste path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := parser.Options{Sheet: importSheet}
		if importDelimiter != "" {
			r, size := utf8.DecodeRuneInString(importDelimiter)
			if size != len(importDelimiter) {
				return fmt.Errorf("delimiter must be a single character: %q", importDelimiter)
			}
			opt.Delimiter = r
		}
		block, err := parser.ReadFile(args[0], opt)
		if err != nil {
			return err
		}
		w, err := openWorkbook()
		if err != nil {
			return err
		}
		sh := w.Sheet()
		st := sh.PasteBlock(block, importRow, importCol)
		if err := w.Save(); err != nil {
			return err
		}
		reportPaste(cmd.OutOrStdout(), sh, st)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().IntVar(&importRow, "row", 0, "anchor row (0 is the habitat header)")
	importCmd.Flags().IntVar(&importCol, "col", 0, "anchor column")
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "xlsx sheet name (default: first sheet)")
	importCmd.Flags().StringVar(&importDelimiter, "delimiter", "", "csv delimiter (default: sniffed)")
}
