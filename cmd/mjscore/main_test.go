package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/mjscore/internal/score"
	"github.com/dshills/mjscore/internal/sheet"
)

// run executes the root command with args and returns stdout and the error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := runCapture(t, args...)
	return stdout, err
}

// runCapture is run with stderr as well. Every run gets its own missing
// .env so the working directory never leaks in.
func runCapture(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	envFile := filepath.Join(t.TempDir(), ".env")
	root.SetArgs(append(args, "--env-file", envFile))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func assertExitCode(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected exit code %d, got nil error", want)
	}
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatalf("expected *exitErr with code %d, got %T: %v", want, err, err)
	}
	if ee.code != want {
		t.Errorf("exit code = %d, want %d (msg: %s)", ee.code, want, ee.msg)
	}
}

func decodeScore(t *testing.T, out string) scoreOutput {
	t.Helper()
	var so scoreOutput
	if err := json.Unmarshal([]byte(out), &so); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	return so
}

// --- score ---

func TestScoreJSON(t *testing.T) {
	out, err := run(t, "score", "--han", "3", "--fu", "30", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	so := decodeScore(t, out)
	if so.Rules != "standard" {
		t.Errorf("rules = %q, want standard", so.Rules)
	}
	if so.Result.Total != 3900 {
		t.Errorf("total = %d, want 3900", so.Result.Total)
	}
	if so.Result.Discard == nil || *so.Result.Discard != 3900 {
		t.Errorf("discard payment = %v, want 3900", so.Result.Discard)
	}
	if so.Result.SelfDraw != nil {
		t.Error("self-draw payment should be absent on a discard win")
	}
}

func TestScoreTotalPolicyByRules(t *testing.T) {
	tests := []struct {
		rules string
		want  int
	}{
		{"standard", 1000},
		{"summed", 1100},
	}
	for _, tt := range tests {
		t.Run(tt.rules, func(t *testing.T) {
			out, err := run(t, "score", "--han", "1", "--fu", "30", "--win", "tsumo", "--rules", tt.rules, "--format", "json")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			so := decodeScore(t, out)
			if so.Result.Total != tt.want {
				t.Errorf("total = %d, want %d", so.Result.Total, tt.want)
			}
			if so.Result.SelfDraw == nil || so.Result.SelfDraw.Kind != score.DealerAndOthers {
				t.Errorf("expected dealer_and_others split, got %+v", so.Result.SelfDraw)
			}
		})
	}
}

func TestScoreDealerThreePlayers(t *testing.T) {
	out, err := run(t, "score", "--han", "2", "--fu", "30", "--dealer", "--win", "self_draw", "--players", "three", "--honba", "1", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	so := decodeScore(t, out)
	if so.Input.Players != score.Three || so.Input.Role != score.Dealer {
		t.Errorf("input = %+v", so.Input)
	}
	if so.Result.SelfDraw == nil || so.Result.SelfDraw.NonDealerShare != 1100 {
		t.Fatalf("self-draw payment = %+v, want 1100 all", so.Result.SelfDraw)
	}
	if so.Result.Total != 2200 {
		t.Errorf("total = %d, want 2200", so.Result.Total)
	}
}

func TestScoreTextAndMarkdown(t *testing.T) {
	out, err := run(t, "score", "--han", "3", "--fu", "30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "3,900 pts") {
		t.Errorf("text output missing total:\n%s", out)
	}

	out, err = run(t, "score", "--han", "5", "--fu", "30", "--format", "md", "--locale", "en-US")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "# 5 han 30 fu (Capped Tier)") {
		t.Errorf("markdown output missing heading:\n%s", out)
	}
	if !strings.Contains(out, "**Total:** 8,000 pts") {
		t.Errorf("markdown output missing total:\n%s", out)
	}
}

func TestScoreOutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	out, err := run(t, "score", "--han", "4", "--fu", "30", "--format", "json", "--out", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty when --out is set, got %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if so := decodeScore(t, string(data)); so.Result.Total != 7700 {
		t.Errorf("total = %d, want 7700", so.Result.Total)
	}
}

func TestScoreErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"zero han", []string{"--han", "0"}, 2},
		{"negative fu", []string{"--fu", "-10"}, 2},
		{"negative honba", []string{"--honba", "-1"}, 2},
		{"strict han", []string{"--han", "14", "--strict"}, 2},
		{"strict fu", []string{"--fu", "35", "--strict"}, 2},
		{"unknown win", []string{"--win", "chombo"}, 3},
		{"unknown format", []string{"--format", "html"}, 3},
		{"unknown rules", []string{"--rules", "nosuch"}, 3},
		{"missing rules file", []string{"--rules", "nosuch.yaml"}, 3},
		{"unknown players", []string{"--players", "five"}, 3},
		{"missing config", []string{"--config", "does-not-exist.yaml"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"score"}, tt.args...)...)
			assertExitCode(t, err, tt.code)
		})
	}
}

func TestScoreLenientAcceptsOffMenuValues(t *testing.T) {
	out, err := run(t, "score", "--han", "14", "--fu", "35", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if so := decodeScore(t, out); so.Result.RankLabel != "Top Tier" {
		t.Errorf("rank = %q, want Top Tier", so.Result.RankLabel)
	}
}

// --- config ---

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "mjscore.yaml")
	if err := os.WriteFile(cfgPath, []byte("rules: summed\nformat: json\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "score", "--config", cfgPath, "--win", "tsumo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if so := decodeScore(t, out); so.Result.Total != 1100 {
		t.Errorf("total under config rules = %d, want 1100", so.Result.Total)
	}

	out, err = run(t, "score", "--config", cfgPath, "--win", "tsumo", "--rules", "standard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if so := decodeScore(t, out); so.Result.Total != 1000 {
		t.Errorf("total with --rules override = %d, want 1000", so.Result.Total)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MJSCORE_FORMAT", "json")
	t.Setenv("MJSCORE_PLAYERS", "three")
	out, err := run(t, "score", "--han", "2", "--fu", "30", "--win", "tsumo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	so := decodeScore(t, out)
	if so.Input.Players != score.Three {
		t.Errorf("players = %q, want three", so.Input.Players)
	}
	// 480 base: dealer 1200, other 800.
	if so.Result.Total != 2000 {
		t.Errorf("total = %d, want 2000", so.Result.Total)
	}
}

func TestFlagOverridesInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"env format", map[string]string{"MJSCORE_FORMAT": "html"}, []string{"--format", "json"}},
		{"env players", map[string]string{"MJSCORE_PLAYERS": "five"}, []string{"--players", "four", "--format", "json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			out, err := run(t, append([]string{"score", "--han", "3", "--fu", "30"}, tt.args...)...)
			if err != nil {
				t.Fatalf("flag should override the bad setting, got: %v", err)
			}
			if so := decodeScore(t, out); so.Result.Total != 3900 {
				t.Errorf("total = %d, want 3900", so.Result.Total)
			}
		})
	}
}

func TestFlagOverridesInvalidConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "mjscore.yaml")
	if err := os.WriteFile(cfgPath, []byte("format: html\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "score", "--config", cfgPath)
	assertExitCode(t, err, 3)

	if _, err := run(t, "score", "--config", cfgPath, "--format", "md"); err != nil {
		t.Fatalf("--format should override the config file, got: %v", err)
	}
}

func TestInvalidEnvWithoutOverride(t *testing.T) {
	t.Setenv("MJSCORE_FORMAT", "html")
	_, err := run(t, "score")
	assertExitCode(t, err, 3)
}

func TestEnvPlayersCaseInsensitive(t *testing.T) {
	t.Setenv("MJSCORE_PLAYERS", "Three")
	out, err := run(t, "score", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if so := decodeScore(t, out); so.Input.Players != score.Three {
		t.Errorf("players = %q, want three", so.Input.Players)
	}
}

func TestQuietSuppressesLogs(t *testing.T) {
	sheetPath := filepath.Join("..", "..", "testdata", "sheets", "session.yaml")

	_, stderr, err := runCapture(t, "batch", sheetPath)
	assertExitCode(t, err, 2)
	if !strings.Contains(stderr, "hand rejected") {
		t.Errorf("expected a rejection warning on stderr, got %q", stderr)
	}

	_, stderr, err = runCapture(t, "batch", sheetPath, "--quiet")
	assertExitCode(t, err, 2)
	if stderr != "" {
		t.Errorf("--quiet should silence logs, got %q", stderr)
	}
}

// --- table ---

func TestTableMarkdown(t *testing.T) {
	out, err := run(t, "table", "--han", "1,2", "--fu", "30,40", "--format", "md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checks := []string{
		"# Non-dealer discard, 4 players",
		"| Han | 30 fu | 40 fu |",
		"| 1 | 1,000 | 1,300 |",
		"| 2 | 2,000 | 2,600 |",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestTableDefaultsToFullChart(t *testing.T) {
	out, err := run(t, "table", "--dealer", "--win", "tsumo", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var chart struct {
		Hans  []int            `json:"hans"`
		Fus   []int            `json:"fus"`
		Cells [][]score.Result `json:"cells"`
	}
	if err := json.Unmarshal([]byte(out), &chart); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(chart.Hans) != 15 || len(chart.Fus) != 11 {
		t.Fatalf("chart is %dx%d, want 15x11", len(chart.Hans), len(chart.Fus))
	}
	// 13 han row, any fu: 16,000 all.
	for _, res := range chart.Cells[12] {
		if res.SelfDraw == nil || res.SelfDraw.NonDealerShare != 16000 {
			t.Errorf("13 han dealer self-draw = %+v, want 16000 all", res.SelfDraw)
		}
	}
}

func TestTableQuickRows(t *testing.T) {
	out, err := run(t, "table", "--quick", "--fu", "30", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var chart struct {
		Hans []int `json:"hans"`
	}
	if err := json.Unmarshal([]byte(out), &chart); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := []int{1, 2, 3, 4, 5}
	if len(chart.Hans) != len(want) {
		t.Fatalf("hans = %v, want %v", chart.Hans, want)
	}
	for i := range want {
		if chart.Hans[i] != want[i] {
			t.Errorf("hans = %v, want %v", chart.Hans, want)
			break
		}
	}
}

func TestTableText(t *testing.T) {
	out, err := run(t, "table", "--han", "8", "--fu", "30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "8 Second Tier") || !strings.Contains(out, "16,000") {
		t.Errorf("text chart missing row:\n%s", out)
	}
}

func TestTableErrors(t *testing.T) {
	_, err := run(t, "table", "--fu", "30,-5")
	assertExitCode(t, err, 2)

	_, err = run(t, "table", "--win", "chombo")
	assertExitCode(t, err, 3)
}

// --- batch ---

func TestBatchJSONWithRejectedHand(t *testing.T) {
	out, err := run(t, "batch", filepath.Join("..", "..", "testdata", "sheets", "session.yaml"), "--format", "json")
	assertExitCode(t, err, 2)

	var rep sheet.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("report is not valid JSON: %v\n%s", err, out)
	}
	if rep.Tool != "mjscore" || rep.Version != version {
		t.Errorf("tool/version = %s/%s", rep.Tool, rep.Version)
	}
	if rep.Summary.Scored != 4 || rep.Summary.Rejected != 1 {
		t.Errorf("summary = %+v, want 4 scored 1 rejected", rep.Summary)
	}
	if !strings.HasPrefix(rep.Input.SheetHash, "sha256:") {
		t.Errorf("sheet hash = %q", rep.Input.SheetHash)
	}
}

func TestBatchMarkdown(t *testing.T) {
	out, err := run(t, "batch", filepath.Join("..", "..", "testdata", "sheets", "session.json"), "--format", "md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"# Score Sheet", "| hand-003 | 1 | 30 |", "18,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestBatchMissingSheet(t *testing.T) {
	_, err := run(t, "batch", filepath.Join(t.TempDir(), "missing.yaml"))
	assertExitCode(t, err, 3)
}

func TestBatchRequiresArg(t *testing.T) {
	_, err := run(t, "batch")
	if err == nil {
		t.Fatal("expected error without a sheet argument")
	}
}

// --- rules ---

func TestRulesList(t *testing.T) {
	out, err := run(t, "rules")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"standard", "summed", "kiriage"} {
		if !strings.Contains(out, name) {
			t.Errorf("list missing %q:\n%s", name, out)
		}
	}
}

func TestRulesShow(t *testing.T) {
	out, err := run(t, "rules", "kiriage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "name: kiriage") || !strings.Contains(out, "total_policy: closed_form") {
		t.Errorf("unexpected rules dump:\n%s", out)
	}

	_, err = run(t, "rules", "nosuch")
	assertExitCode(t, err, 3)
}
