package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/releve-cli/internal/projection"
	"github.com/KaramelBytes/releve-cli/internal/render"
	"github.com/KaramelBytes/releve-cli/internal/utils"
)

var (
	plotX      string
	plotY      string
	plotOutput string
	plotSave   bool
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the projection of the last analysis",
	Long: `Plot groups the analyzed species by habitat on the chosen X and Y
variables and adds one centroid per habitat. Without -o a text summary is
printed; -o writes a Plotly figure as .html (standalone page) or .json.
--save writes to the configured plot_output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkbook()
		if err != nil {
			return err
		}
		if w.Result == nil {
			return errors.New("no analysis result yet; run analyze first")
		}
		v := w.View()
		if plotX != "" {
			if _, err := v.SetX(plotX); err != nil {
				return fmt.Errorf("%w (variables: %s)", err, strings.Join(v.Response().Variables(), ", "))
			}
		}
		if plotY != "" {
			if _, err := v.SetY(plotY); err != nil {
				return fmt.Errorf("%w (variables: %s)", err, strings.Join(v.Response().Variables(), ", "))
			}
		}
		if plotX != "" || plotY != "" {
			w.SaveAxes(v)
			if err := w.Save(); err != nil {
				return err
			}
		}

		p := v.Render()
		out := cmd.OutOrStdout()
		dest := plotOutput
		if dest == "" && plotSave {
			dest = effectiveConfig().PlotOutput
		}
		if dest == "" {
			fmt.Fprintln(out, render.Projection(p))
			return nil
		}
		if p.Empty() {
			return errors.New(p.Placeholder)
		}
		data, err := encodePlot(p, dest)
		if err != nil {
			return err
		}
		if err := utils.SafeWriteFile(dest, data); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Plot written: %s\n", dest)
		return nil
	},
}

func encodePlot(p projection.Plot, dest string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(dest)) {
	case ".json":
		return projection.PlotlyJSON(p)
	case ".html", ".htm":
		var buf bytes.Buffer
		if err := projection.WriteHTML(&buf, p); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported plot output %q (use .html or .json)", dest)
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVar(&plotX, "x", "", "X axis variable")
	plotCmd.Flags().StringVar(&plotY, "y", "", "Y axis variable")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "write the figure to a .html or .json file")
	plotCmd.Flags().BoolVar(&plotSave, "save", false, "write the figure to the configured plot_output")
}
