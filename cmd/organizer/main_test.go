package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"organizer/internal/config"
	"organizer/internal/organizer"
	"organizer/internal/rules"
	"organizer/internal/testsupport"
)

const testRules = `{
  "categories": {
    "Video": [".mp4", ".mkv"],
    "Subtitles": [".vtt", ".transcript.vtt"],
    "Documents": [".pdf"],
    "Scripts": [".py"]
  }
}`

type cliEnv struct {
	cfg        *config.Config
	configPath string
	target     string
}

func setupCLIEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("ORGANIZER_LOG_LEVEL", "error")

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(base, "organizer.toml")
	testsupport.WriteConfig(t, configPath, cfg)

	target := filepath.Join(base, "inbox")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir target: %v", err)
	}
	return &cliEnv{cfg: cfg, configPath: configPath, target: target}
}

func runCLI(t *testing.T, env *cliEnv, args ...string) (string, string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), env, args...)
}

func runCLIContext(t *testing.T, ctx context.Context, env *cliEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack string, needles ...string) {
	t.Helper()
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			t.Fatalf("expected output to contain %q:\n%s", needle, haystack)
		}
	}
}

func TestOrganizeMovesFilesAndWritesAuditLog(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithRules(testRules))
	testsupport.WriteFiles(t, env.target, "a.pdf", "clip.MKV", "talk.transcript.vtt", "notes.txt", "organizer.py")

	stdout, _, err := runCLI(t, env, env.target)
	if err != nil {
		t.Fatalf("organize failed: %v\n%s", err, stdout)
	}
	requireContains(t, stdout,
		"Organizing folder: "+env.target,
		"Moving a.pdf to Documents",
		"Moving talk.transcript.vtt to Subtitles",
		"Organization complete",
		"Organized 3 files.",
		env.cfg.Paths.AuditLog,
	)

	testsupport.RequireFile(t, filepath.Join(env.target, "Documents", "a.pdf"))
	testsupport.RequireFile(t, filepath.Join(env.target, "Video", "clip.MKV"))
	testsupport.RequireFile(t, filepath.Join(env.target, "Subtitles", "talk.transcript.vtt"))
	testsupport.RequireFile(t, filepath.Join(env.target, "notes.txt"))
	testsupport.RequireFile(t, filepath.Join(env.target, "organizer.py"))
	testsupport.RequireNoFile(t, filepath.Join(env.target, "Scripts"))

	data, err := os.ReadFile(env.cfg.Paths.AuditLog)
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 audit lines, got %d:\n%s", len(lines), data)
	}
	if !strings.HasSuffix(lines[0], " - Moved a.pdf to Documents") {
		t.Fatalf("unexpected audit line %q", lines[0])
	}

	stdout, _, err = runCLI(t, env, "organize", env.target)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	requireContains(t, stdout, "Organized 0 files.")
}

func TestOrganizeReportsMissingRules(t *testing.T) {
	env := setupCLIEnv(t)
	t.Chdir(t.TempDir())
	testsupport.WriteFiles(t, env.target, "a.pdf")

	stdout, _, err := runCLI(t, env, env.target)
	if !errors.Is(err, rules.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	requireContains(t, stdout, rules.FileName, "Configuration error")
	testsupport.RequireFile(t, filepath.Join(env.target, "a.pdf"))
	if _, err := os.Stat(env.cfg.Paths.AuditLog); err == nil {
		t.Fatal("expected no audit log for an aborted run")
	}
}

func TestOrganizeReportsMalformedRules(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithRules(`{"categories": {"Documents": [".pdf"]`))
	testsupport.WriteFiles(t, env.target, "a.pdf")

	stdout, _, err := runCLI(t, env, env.target)
	if !errors.Is(err, rules.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	requireContains(t, stdout, env.cfg.Paths.RulesFile)
	testsupport.RequireFile(t, filepath.Join(env.target, "a.pdf"))
	testsupport.RequireNoFile(t, filepath.Join(env.target, "Documents"))
}

func TestOrganizeRejectsEmptyTable(t *testing.T) {
	for _, body := range []string{`{"script_name": "run.py"}`, `{"categories": {}}`} {
		env := setupCLIEnv(t, testsupport.WithRules(body))
		testsupport.WriteFiles(t, env.target, "a.pdf")

		stdout, _, err := runCLI(t, env, env.target)
		if !errors.Is(err, organizer.ErrNoCategories) {
			t.Fatalf("%s: expected ErrNoCategories, got %v", body, err)
		}
		requireContains(t, stdout, "Configuration error")
		testsupport.RequireFile(t, filepath.Join(env.target, "a.pdf"))
	}
}

func TestOrganizeStopsWhenInterrupted(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithRules(testRules), testsupport.WithHistory(true))
	testsupport.WriteFiles(t, env.target, "a.pdf", "clip.mkv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stdout, stderr, err := runCLIContext(t, ctx, env, env.target)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var reported *reportedError
	if errors.As(err, &reported) {
		t.Fatalf("interruption should not be wrapped as a reported error: %v", err)
	}
	requireContains(t, stdout, "Interrupted after 0 moves.")
	if strings.Contains(stdout, "Moving ") {
		t.Fatalf("expected no move attempts:\n%s", stdout)
	}
	if stderr != "" {
		t.Fatalf("expected quiet stderr, got %q", stderr)
	}
	testsupport.RequireFile(t, filepath.Join(env.target, "a.pdf"))
	testsupport.RequireFile(t, filepath.Join(env.target, "clip.mkv"))
	testsupport.RequireNoFile(t, filepath.Join(env.target, "Documents"))

	store := testsupport.MustOpenHistory(t, env.cfg)
	runs, err := store.Runs(context.Background(), 0)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 || !runs[0].Finished() || runs[0].Moved != 0 {
		t.Fatalf("expected one finished run with no moves, got %#v", runs)
	}
}

func TestOrganizeRulesFlagOverridesSettings(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithRules(testRules))
	override := testsupport.WriteRules(t, t.TempDir(), `{"categories": {"Papers": [".pdf"]}}`)
	testsupport.WriteFiles(t, env.target, "a.pdf")

	if _, _, err := runCLI(t, env, "--rules", override, env.target); err != nil {
		t.Fatalf("organize failed: %v", err)
	}
	testsupport.RequireFile(t, filepath.Join(env.target, "Papers", "a.pdf"))
}

func TestOrganizeDiscoversRulesInWorkingDirectory(t *testing.T) {
	env := setupCLIEnv(t)
	workDir := t.TempDir()
	testsupport.WriteRules(t, workDir, testRules)
	t.Chdir(workDir)
	testsupport.WriteFiles(t, env.target, "movie.mp4")

	if _, _, err := runCLI(t, env, env.target); err != nil {
		t.Fatalf("organize failed: %v", err)
	}
	testsupport.RequireFile(t, filepath.Join(env.target, "Video", "movie.mp4"))
}

func TestOrganizeWithoutFolderExitsQuietly(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithRules(testRules))

	stdout, _, err := runCLI(t, env)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	requireContains(t, stdout, "No folder selected. Exiting.")
}

func TestHistoryListsRunsAndMoves(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithRules(testRules))
	testsupport.WriteFiles(t, env.target, "a.pdf", "b.mp4")

	if _, _, err := runCLI(t, env, env.target); err != nil {
		t.Fatalf("organize failed: %v", err)
	}

	stdout, _, err := runCLI(t, env, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	requireContains(t, stdout, env.target, "MOVED", "FAILED")

	store := testsupport.MustOpenHistory(t, env.cfg)
	runs, err := store.Runs(context.Background(), 0)
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected one run, got %d (%v)", len(runs), err)
	}
	if runs[0].Moved != 2 || !runs[0].Finished() {
		t.Fatalf("unexpected run %#v", runs[0])
	}

	stdout, _, err = runCLI(t, env, "history", "--run", runs[0].ID[:8])
	if err != nil {
		t.Fatalf("history --run failed: %v", err)
	}
	requireContains(t, stdout, runs[0].ID, "a.pdf", "Documents", "b.mp4", "Video", "2 moves")
}

func TestHistoryDisabled(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithRules(testRules), testsupport.WithHistory(false))
	testsupport.WriteFiles(t, env.target, "a.pdf")

	if _, _, err := runCLI(t, env, env.target); err != nil {
		t.Fatalf("organize failed: %v", err)
	}
	testsupport.RequireNoFile(t, env.cfg.Paths.HistoryDB)

	stdout, _, err := runCLI(t, env, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	requireContains(t, stdout, "disabled")
}

func TestRulesShowListsCategoriesInOrder(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithRules(testRules))

	stdout, _, err := runCLI(t, env, "rules", "show")
	if err != nil {
		t.Fatalf("rules show failed: %v", err)
	}
	requireContains(t, stdout, env.cfg.Paths.RulesFile, "organizer.py", ".transcript.vtt .vtt")
	if strings.Index(stdout, "Video") > strings.Index(stdout, "Documents") {
		t.Fatalf("expected table order to be preserved:\n%s", stdout)
	}
}

func TestCheckReportsStatus(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithRules(testRules))

	stdout, _, err := runCLI(t, env, "check", env.target)
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, stdout)
	}
	requireContains(t, stdout, "== Organizer ==", "Category rules:", "[OK]", env.configPath)

	stdout, _, err = runCLI(t, env, "check", filepath.Join(env.target, "missing"))
	if err == nil {
		t.Fatal("expected failure for missing folder")
	}
	requireContains(t, stdout, "[ERROR]", "does not exist")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLIEnv(t)
	target := filepath.Join(t.TempDir(), "settings", "organizer.toml")

	stdout, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	requireContains(t, stdout, target)
	if _, _, err := runCLI(t, env, "config", "init", "--path", target); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", target, "config", "validate"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config validate failed: %v\n%s", err, out.String())
	}
	requireContains(t, out.String(), "Config path: "+target, "Configuration valid")
}

func TestDescribeFailure(t *testing.T) {
	perm := organizer.Failure{Name: "a.pdf", Category: "Documents", Err: organizer.ErrPermission}
	if got := describeFailure(perm); got != "Could not move a.pdf due to permission issues" {
		t.Fatalf("unexpected permission message %q", got)
	}
	conflict := organizer.Failure{Name: "a.pdf", Category: "Documents", Err: organizer.ErrDestinationExists}
	requireContains(t, describeFailure(conflict), "Skipped a.pdf", filepath.Join("Documents", "a.pdf"))
}

func TestLogShowsRecentMoves(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithRules(testRules))

	stdout, _, err := runCLI(t, env, "log")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	requireContains(t, stdout, "No moves logged")

	testsupport.WriteFiles(t, env.target, "a.pdf", "b.pdf", "c.mp4")
	if _, _, err := runCLI(t, env, env.target); err != nil {
		t.Fatalf("organize failed: %v", err)
	}

	stdout, _, err = runCLI(t, env, "log", "-n", "2")
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if strings.Contains(stdout, "Moved a.pdf") {
		t.Fatalf("expected only the last two lines:\n%s", stdout)
	}
	requireContains(t, stdout, "Moved b.pdf to Documents", "Moved c.mp4 to Video")
}
