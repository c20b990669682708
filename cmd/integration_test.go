package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KaramelBytes/releve-cli/internal/analysis"
	"github.com/KaramelBytes/releve-cli/internal/workbook"
)

const sampleResponse = `{
  "communalities": [{"Variable": "Humidité", "Communalité (%)": 91.5}, {"Variable": "pH", "Communalité (%)": 80}, {"Variable": "Lumière", "Communalité (%)": 42}],
  "species_data": [
    {"Source_Habitat": "Tourbière", "Espece_User_Input_Raw": "Carex nigra", "Ecologie": "hygrophile", "Humidité": 8, "pH": 4, "Lumière": 7},
    {"Source_Habitat": "Tourbière", "Espece_User_Input_Raw": "Viola palustris", "Ecologie": "hygrophile", "Humidité": 9, "pH": 3, "Lumière": 6},
    {"Source_Habitat": "Prairie", "Espece_User_Input_Raw": "Juncus effusus", "Ecologie": "mésohygrophile", "Humidité": 7, "pH": 5, "Lumière": 8}
  ],
  "top_syntaxons": [{"name_latin": "Caricion fuscae", "score": 2, "common_species": ["carex nigra"], "absent_species": ["viola palustris"]}]
}`

type ipv4Server struct {
	URL string
	srv *http.Server
	ln  net.Listener
}

func newIPv4Server(t *testing.T, handler http.Handler) *ipv4Server {
	t.Helper()
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		if errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM) {
			t.Skipf("skipping test: cannot open local listener (%v)", err)
		}
		t.Fatalf("listen tcp4: %v", err)
	}
	srv := &http.Server{Handler: handler}
	s := &ipv4Server{URL: "http://" + ln.Addr().String(), srv: srv, ln: ln}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(fmt.Sprintf("test server serve: %v", err))
		}
	}()
	return s
}

func (s *ipv4Server) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = s.srv.Shutdown(ctx)
}

// resetFlags puts every flag of c and its children back to its default so
// sticky values do not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd runs the root command with args and returns stdout and the error.
func execCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, "", args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"RELEVE_ANALYSIS_URL", "RELEVE_HTTP_TIMEOUT_SEC", "RELEVE_WORKBOOKS_DIR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return home
}

func loadWorkbook(t *testing.T, home, name string) *workbook.Workbook {
	t.Helper()
	w, err := workbook.Load(filepath.Join(home, ".releve", "workbooks", name))
	if err != nil {
		t.Fatalf("load workbook: %v", err)
	}
	return w
}

const block = "Tourbière\tPrairie\nCarex nigra\tJuncus effusus\nViola palustris\t"

func TestCLI_Init_Paste_Select_Analyze_Plot(t *testing.T) {
	home := isolateHome(t)

	var got analysis.Request
	var hits int32
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	out := runCmd(t, "init", "marais", "-d", "survey", "--rows", "4", "--cols", "3")
	if !strings.Contains(out, "✓ Workbook initialized") {
		t.Fatalf("init output: %q", out)
	}
	out = runCmd(t, "paste", "-w", "marais", "--text", block)
	if !strings.Contains(out, "✓ Pasted 6 cell(s)") {
		t.Fatalf("paste output: %q", out)
	}
	if !strings.Contains(out, "[ ] 0 Tourbière") || !strings.Contains(out, "[ ] 2 Relevé 3") {
		t.Fatalf("habitat controls not derived: %q", out)
	}
	runCmd(t, "select", "-w", "marais", "0", "1")

	out = runCmd(t, "analyze", "-w", "marais", "--analysis-url", srv.URL+"/api/analyze")
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("expected one request, got %d", hits)
	}
	if len(got.RelevesData) != 4 || len(got.RelevesData[0]) != 3 {
		t.Fatalf("unexpected grid shape: %v", got.RelevesData)
	}
	if got.RelevesData[1][1] != "Juncus effusus" {
		t.Fatalf("grid content not sent: %v", got.RelevesData)
	}
	if fmt.Sprint(got.SelectedIndices) != "[0 1]" {
		t.Fatalf("selected_indices = %v", got.SelectedIndices)
	}
	for _, want := range []string{"✓ Analysis complete: 3 species, 3 variables", "Humidité", "91.5%", "Caricion fuscae", "Carex nigra"} {
		if !strings.Contains(out, want) {
			t.Fatalf("analyze output missing %q: %q", want, out)
		}
	}

	w := loadWorkbook(t, home, "marais")
	if w.Result == nil || w.Result.XAxis != "Humidité" || w.Result.YAxis != "pH" {
		t.Fatalf("result not stored with default axes: %+v", w.Result)
	}

	out = runCmd(t, "plot", "-w", "marais")
	if !strings.Contains(out, "pH vs. Humidité") || !strings.Contains(out, "Tourbière: 2 espèce(s)") {
		t.Fatalf("plot summary: %q", out)
	}

	htmlPath := filepath.Join(home, "plot.html")
	runCmd(t, "plot", "-w", "marais", "--y", "Lumière", "-o", htmlPath)
	b, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	if !strings.Contains(string(b), "Plotly.newPlot") || !strings.Contains(string(b), "<title>Lumière vs. Humidité</title>") {
		t.Fatalf("html page incomplete")
	}
	if w := loadWorkbook(t, home, "marais"); w.Result.YAxis != "Lumière" {
		t.Fatalf("axis choice not persisted: %q", w.Result.YAxis)
	}

	jsonPath := filepath.Join(home, "plot.json")
	runCmd(t, "plot", "-w", "marais", "-o", jsonPath)
	b, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var fig map[string]any
	if err := json.Unmarshal(b, &fig); err != nil {
		t.Fatalf("plot json: %v", err)
	}
	if _, ok := fig["data"]; !ok {
		t.Fatalf("plot json has no data: %s", b)
	}

	if _, err := execCmd(t, "", "plot", "-w", "marais", "--x", "Salinité"); err == nil {
		t.Fatalf("expected unknown variable error")
	}
}

func TestCLI_AnalyzeWithoutSelectionMakesNoCall(t *testing.T) {
	isolateHome(t)
	var hits int32
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	runCmd(t, "init", "vide")
	_, err := execCmd(t, "", "analyze", "-w", "vide", "--analysis-url", srv.URL)
	var noSel *analysis.NoSelectionError
	if !errors.As(err, &noSel) {
		t.Fatalf("expected NoSelectionError, got %v", err)
	}
	if hits != 0 {
		t.Fatalf("no request expected, got %d", hits)
	}
}

func TestCLI_FailedAnalyzeClearsResult(t *testing.T) {
	home := isolateHome(t)
	replay := filepath.Join(home, "reply.json")
	if err := os.WriteFile(replay, []byte(sampleResponse), 0o644); err != nil {
		t.Fatalf("write replay: %v", err)
	}
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", "req-42")
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	runCmd(t, "init", "lande")
	runCmd(t, "select", "-w", "lande", "0")
	runCmd(t, "analyze", "-w", "lande", "--backend", "replay", "--replay", replay)
	if w := loadWorkbook(t, home, "lande"); w.Result == nil {
		t.Fatalf("replay result not stored")
	}

	_, err := execCmd(t, "", "analyze", "-w", "lande", "--analysis-url", srv.URL)
	var te *analysis.TransportError
	if !errors.As(err, &te) || te.StatusCode != 500 {
		t.Fatalf("expected transport error with status 500, got %v", err)
	}
	if !strings.Contains(err.Error(), "req-42") {
		t.Fatalf("request id missing from %q", err)
	}
	if w := loadWorkbook(t, home, "lande"); w.Result != nil {
		t.Fatalf("stale result kept after failed run")
	}
	if _, err := execCmd(t, "", "plot", "-w", "lande"); err == nil {
		t.Fatalf("plot should refuse without a result")
	}
}

func TestCLI_PasteFromStdinClipsAndWarns(t *testing.T) {
	home := isolateHome(t)
	runCmd(t, "init", "petit", "--rows", "2", "--cols", "2")

	out, err := execCmd(t, "a\tb\tc\nd\te\tf\ng\th\ti\n", "paste", "-w", "petit")
	if err != nil {
		t.Fatalf("paste: %v", err)
	}
	if !strings.Contains(out, "✓ Pasted 4 cell(s)") || !strings.Contains(out, "⚠ Warning: 5 cell(s)") {
		t.Fatalf("paste output: %q", out)
	}
	w := loadWorkbook(t, home, "petit")
	if got := w.Sheet().ReadAll(); fmt.Sprint(got) != "[[a b] [d e]]" {
		t.Fatalf("grid = %v", got)
	}
}

func TestCLI_PasteFromClipboard(t *testing.T) {
	home := isolateHome(t)
	old := readClipboard
	defer func() { readClipboard = old }()
	readClipboard = func() (string, error) { return "Roselière\r\nPhragmites australis\r\n", nil }

	runCmd(t, "init", "clip", "--rows", "3", "--cols", "1")
	runCmd(t, "paste", "-w", "clip", "--clipboard")
	w := loadWorkbook(t, home, "clip")
	if w.Sheet().GetCell(1, 0) != "Phragmites australis" || w.Sheet().Labels()[0] != "Roselière" {
		t.Fatalf("clipboard paste not applied: %v", w.Sheet().ReadAll())
	}

	if _, err := execCmd(t, "", "paste", "-w", "clip", "--clipboard", "--text", "x"); err == nil {
		t.Fatalf("expected error for two paste sources")
	}
}

func TestCLI_ImportGrowAndReset(t *testing.T) {
	home := isolateHome(t)
	csvPath := filepath.Join(home, "releves.csv")
	if err := os.WriteFile(csvPath, []byte("Tourbière;Prairie;Lande\nCarex nigra;Juncus effusus;Calluna vulgaris\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	runCmd(t, "init", "imp", "--rows", "2", "--cols", "2")
	runCmd(t, "select", "-w", "imp", "1")

	out := runCmd(t, "add-col", "-w", "imp")
	if !strings.Contains(out, "2x3") || !strings.Contains(out, "selection was reset") {
		t.Fatalf("add-col output: %q", out)
	}
	runCmd(t, "add-row", "-w", "imp", "-n", "2")
	runCmd(t, "import", "-w", "imp", csvPath)

	w := loadWorkbook(t, home, "imp")
	if w.Sheet().Rows() != 4 || w.Sheet().Cols() != 3 {
		t.Fatalf("size = %dx%d", w.Sheet().Rows(), w.Sheet().Cols())
	}
	if w.Sheet().GetCell(1, 2) != "Calluna vulgaris" {
		t.Fatalf("import not applied: %v", w.Sheet().ReadAll())
	}
	if len(w.Sheet().Selected()) != 0 {
		t.Fatalf("selection should be empty after re-derive")
	}
}

func TestCLI_SetAndSelectBounds(t *testing.T) {
	home := isolateHome(t)
	runCmd(t, "init", "b", "--rows", "2", "--cols", "2")
	if _, err := execCmd(t, "", "set", "-w", "b", "5", "0", "x"); err == nil {
		t.Fatalf("expected out-of-bounds error")
	}
	if _, err := execCmd(t, "", "select", "-w", "b", "7"); err == nil {
		t.Fatalf("expected unknown habitat error")
	}
	out := runCmd(t, "set", "-w", "b", "0", "1", "Mégaphorbiaie")
	if !strings.Contains(out, "Mégaphorbiaie") {
		t.Fatalf("set header output: %q", out)
	}
	runCmd(t, "select", "-w", "b", "0", "1")
	runCmd(t, "select", "-w", "b", "--clear", "1")
	if got := loadWorkbook(t, home, "b").Sheet().Selected(); fmt.Sprint(got) != "[1]" {
		t.Fatalf("selected = %v", got)
	}
}

func TestCLI_InitRefusesExisting(t *testing.T) {
	isolateHome(t)
	runCmd(t, "init", "dup")
	if _, err := execCmd(t, "", "init", "dup"); err == nil {
		t.Fatalf("expected error for existing workbook")
	}
	out := runCmd(t, "list")
	if !strings.Contains(out, "- dup (11x5, 0 selected)") {
		t.Fatalf("list output: %q", out)
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	isolateHome(t)
	runCmd(t, "config", "set", "analysis_url", "http://10.1.2.3:8888/api/analyze")
	runCmd(t, "config", "set", "default_cols", "7")
	if _, err := execCmd(t, "", "config", "set", "default_rows", "0"); err == nil {
		t.Fatalf("expected invalid value error")
	}
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "analysis_url: http://10.1.2.3:8888/api/analyze") || !strings.Contains(out, "default_cols: 7") {
		t.Fatalf("config show: %q", out)
	}
	out = runCmd(t, "init", "seven")
	if !strings.Contains(out, "(11x7)") {
		t.Fatalf("init did not use configured default_cols: %q", out)
	}
}
