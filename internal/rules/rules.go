package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FileName is the rules file searched for during discovery.
	FileName = "config.json"
	// DefaultScriptName is excluded from every run when script_name is absent.
	DefaultScriptName = "organizer.py"
)

var (
	// ErrNotFound reports that no candidate rules file exists.
	ErrNotFound = errors.New("rules file not found")
	// ErrParse reports a rules file that is not valid JSON or has the wrong shape.
	ErrParse = errors.New("invalid rules file")
)

// Rules is a loaded rules file.
type Rules struct {
	Table      Table
	ScriptName string
	// Source is the path the rules were read from.
	Source string
}

// Candidates returns the discovery order: next to the program, then the
// working directory. Duplicates are collapsed.
func Candidates(programDir, workDir string) []string {
	paths := make([]string, 0, 2)
	for _, dir := range []string{programDir, workDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		candidate := filepath.Join(dir, FileName)
		if len(paths) > 0 && paths[0] == candidate {
			continue
		}
		paths = append(paths, candidate)
	}
	return paths
}

// Locate returns the first candidate that exists as a regular file.
func Locate(programDir, workDir string) (string, error) {
	candidates := Candidates(programDir, workDir)
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s not found at %s", ErrNotFound, FileName, strings.Join(candidates, " or "))
}

// Resolve returns explicit when set, otherwise the discovered rules path.
func Resolve(explicit, programDir, workDir string) (string, error) {
	explicit = strings.TrimSpace(explicit)
	if explicit == "" {
		return Locate(programDir, workDir)
	}
	info, err := os.Stat(explicit)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, explicit)
		}
		return "", fmt.Errorf("stat rules file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrNotFound, explicit)
	}
	return explicit, nil
}

// Load reads and parses the rules file at path.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read rules file %s: %w", path, err)
	}
	parsed, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	parsed.Source = path
	return parsed, nil
}

// Discover resolves and loads the rules file in one step.
func Discover(explicit, programDir, workDir string) (*Rules, error) {
	path, err := Resolve(explicit, programDir, workDir)
	if err != nil {
		return nil, err
	}
	return Load(path)
}
