package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"organizer/internal/config"
)

func writeRules(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	return path
}

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckWritableFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "organizer.log")
	if err := os.WriteFile(existing, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if r := CheckWritableFile("log", existing); !r.Passed {
		t.Fatalf("expected existing file to pass: %s", r.Detail)
	}
	r := CheckWritableFile("log", filepath.Join(dir, "a", "b", "history.db"))
	if !r.Passed || !strings.Contains(r.Detail, "will be created") {
		t.Fatalf("expected creatable path to pass, got %+v", r)
	}
	if r := CheckWritableFile("log", dir); r.Passed {
		t.Fatal("expected directory to fail")
	}
	if r := CheckWritableFile("log", filepath.Join(existing, "nested.log")); r.Passed {
		t.Fatal("expected path under a file to fail")
	}
	if r := CheckWritableFile("log", ""); r.Passed {
		t.Fatal("expected empty path to fail")
	}
}

func TestCheckRules(t *testing.T) {
	programDir := t.TempDir()
	workDir := t.TempDir()

	if r := CheckRules("", programDir, workDir); r.Passed {
		t.Fatal("expected failure without rules file")
	}

	writeRules(t, workDir, `{"categories": {"Images": [".png"], "Docs": [".pdf"]}}`)
	r := CheckRules("", programDir, workDir)
	if !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if !strings.Contains(r.Detail, "2 categories") || !strings.Contains(r.Detail, "organizer.py") {
		t.Fatalf("unexpected detail %q", r.Detail)
	}

	empty := writeRules(t, programDir, `{"script_name": "run.py"}`)
	if r := CheckRules(empty, programDir, workDir); r.Passed {
		t.Fatal("expected failure for empty table")
	}

	broken := writeRules(t, t.TempDir(), `{"categories": `)
	if r := CheckRules(broken, programDir, workDir); r.Passed || !strings.Contains(r.Detail, broken) {
		t.Fatalf("expected parse failure naming %s, got %+v", broken, r)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(Inputs{}); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.AuditLog = filepath.Join(base, "organizer.log")
	cfg.Paths.HistoryDB = filepath.Join(base, "state", "history.db")
	writeRules(t, base, `{"categories": {"Images": [".png"]}}`)

	results := RunAll(Inputs{Config: &cfg, ProgramDir: base, WorkDir: base, Target: base})
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if Failed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}

	cfg.Organizer.History = false
	results = RunAll(Inputs{Config: &cfg, ProgramDir: base, WorkDir: base, Target: filepath.Join(base, "missing")})
	if len(results) != 3 {
		t.Fatalf("expected history check to be skipped, got %d results", len(results))
	}
	if !Failed(results) {
		t.Fatal("expected missing target to fail")
	}
}
