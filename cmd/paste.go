package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/releve-cli/internal/matrix"
	"github.com/KaramelBytes/releve-cli/internal/render"
	"github.com/KaramelBytes/releve-cli/internal/sheet"
)

var (
	pasteRow       int
	pasteCol       int
	pasteFile      string
	pasteText      string
	pasteClipboard bool
)

// readClipboard is swapped in tests; headless runners have no clipboard.
var readClipboard = clipboard.ReadAll

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Paste a tab-separated block anchored at --row/--col",
	Long: `Paste overwrites the block anchored at (--row, --col) with tab/newline
separated text, the format spreadsheets put on the clipboard. Cells that fall
outside the grid are dropped; the grid never grows. The text is read from
--text, --file, the system clipboard (--clipboard) or standard input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := pasteSource(cmd.InOrStdin())
		if err != nil {
			return err
		}
		w, err := openWorkbook()
		if err != nil {
			return err
		}
		sh := w.Sheet()
		st := sh.Paste(text, pasteRow, pasteCol)
		if err := w.Save(); err != nil {
			return err
		}
		reportPaste(cmd.OutOrStdout(), sh, st)
		return nil
	},
}

func pasteSource(stdin io.Reader) (string, error) {
	n := 0
	for _, set := range []bool{pasteFile != "", pasteText != "", pasteClipboard} {
		if set {
			n++
		}
	}
	if n > 1 {
		return "", errors.New("use only one of --file, --text or --clipboard")
	}
	switch {
	case pasteText != "":
		return pasteText, nil
	case pasteFile != "":
		b, err := os.ReadFile(pasteFile)
		if err != nil {
			return "", fmt.Errorf("read paste file: %w", err)
		}
		return string(b), nil
	case pasteClipboard:
		s, err := readClipboard()
		if err != nil {
			return "", fmt.Errorf("read clipboard: %w", err)
		}
		return s, nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func reportPaste(out io.Writer, sh *sheet.Sheet, st matrix.PasteStats) {
	fmt.Fprintf(out, "✓ Pasted %d cell(s)\n", st.Written)
	if st.Clipped > 0 {
		fmt.Fprintf(out, "⚠ Warning: %d cell(s) fell outside the %dx%d grid and were dropped (use add-row/add-col to grow it)\n",
			st.Clipped, sh.Rows(), sh.Cols())
	}
	fmt.Fprintln(out, render.Habitats(sh.Controls()))
}

func init() {
	rootCmd.AddCommand(pasteCmd)
	pasteCmd.Flags().IntVar(&pasteRow, "row", 0, "anchor row (0 is the habitat header)")
	pasteCmd.Flags().IntVar(&pasteCol, "col", 0, "anchor column")
	pasteCmd.Flags().StringVarP(&pasteFile, "file", "f", "", "read the block from a file")
	pasteCmd.Flags().StringVarP(&pasteText, "text", "t", "", "block text (use $'a\\tb' for tabs)")
	pasteCmd.Flags().BoolVar(&pasteClipboard, "clipboard", false, "read the block from the system clipboard")
}
