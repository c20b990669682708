// Package workbook persists a relevé sheet, its habitat selection and the last
// analysis result as one JSON document on disk.
package workbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/releve-cli/internal/analysis"
	"github.com/KaramelBytes/releve-cli/internal/logging"
	"github.com/KaramelBytes/releve-cli/internal/projection"
	"github.com/KaramelBytes/releve-cli/internal/sheet"
	"github.com/KaramelBytes/releve-cli/internal/utils"
)

// FileName is the on-disk document inside a workbook directory.
const FileName = "workbook.json"

// Workbook is one survey matrix with its analysis state.
type Workbook struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Releves     [][]string `json:"releves"`
	Selected    []int      `json:"selected_indices"`
	Result      *Result    `json:"result,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	rootDir string
	sheet   *sheet.Sheet
}

// Result is the last successful analysis, replaced wholesale on each run.
type Result struct {
	RunID      string             `json:"run_id"`
	RequestID  string             `json:"request_id,omitempty"`
	Endpoint   string             `json:"endpoint,omitempty"`
	ReceivedAt time.Time          `json:"received_at"`
	XAxis      string             `json:"x_axis,omitempty"`
	YAxis      string             `json:"y_axis,omitempty"`
	Response   *analysis.Response `json:"response"`
}

// New constructs an in-memory workbook with an empty rows x cols sheet. Call
// Save to persist.
func New(name, description, rootDir string, rows, cols int) *Workbook {
	now := time.Now()
	return &Workbook{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		rootDir:     rootDir,
		sheet:       sheet.New(rows, cols),
	}
}

// Load reads workbook.json from dir.
func Load(dir string) (*Workbook, error) {
	path := filepath.Join(dir, FileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("workbook not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	var w Workbook
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}
	w.rootDir = dir
	w.sheet = sheet.Restore(w.Releves, w.Selected)
	return &w, nil
}

// RootDir returns the on-disk workbook directory.
func (w *Workbook) RootDir() string { return w.rootDir }

// Sheet returns the live editing surface.
func (w *Workbook) Sheet() *sheet.Sheet { return w.sheet }

// Save writes workbook.json atomically, syncing the sheet first.
func (w *Workbook) Save() error {
	if w.rootDir == "" {
		return errors.New("workbook root directory not set")
	}
	if err := utils.EnsureDir(w.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	w.Releves = w.sheet.ReadAll()
	w.Selected = w.sheet.Selected()
	w.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(w)
	if err != nil {
		return err
	}
	path := filepath.Join(w.rootDir, FileName)
	if err := utils.SafeWriteFile(path, data); err != nil {
		return err
	}
	logging.Logger().Debug("workbook saved", "path", path,
		"rows", w.sheet.Rows(), "cols", w.sheet.Cols(), "selected", len(w.Selected))
	return nil
}

// SetResult stores run as the current result with the view's default axes.
func (w *Workbook) SetResult(run *analysis.Run, endpoint string) {
	var v projection.View
	v.Load(run.Response)
	x, y := v.Axes()
	w.Result = &Result{
		RunID:      run.ID,
		RequestID:  run.Response.RequestID,
		Endpoint:   endpoint,
		ReceivedAt: run.FinishedAt,
		XAxis:      x,
		YAxis:      y,
		Response:   run.Response,
	}
}

// ClearResult drops the stored result so no stale plot survives a failed run.
func (w *Workbook) ClearResult() { w.Result = nil }

// View rebuilds the projection view from the stored result and axis choice.
// Stored axes that no longer match a variable fall back to the defaults.
func (w *Workbook) View() *projection.View {
	v := &projection.View{}
	if w.Result == nil || w.Result.Response == nil {
		return v
	}
	v.Load(w.Result.Response)
	if w.Result.XAxis != "" {
		_, _ = v.SetX(w.Result.XAxis)
	}
	if w.Result.YAxis != "" {
		_, _ = v.SetY(w.Result.YAxis)
	}
	return v
}

// SaveAxes records the view's axis choice in the stored result.
func (w *Workbook) SaveAxes(v *projection.View) {
	if w.Result == nil {
		return
	}
	w.Result.XAxis, w.Result.YAxis = v.Axes()
}
