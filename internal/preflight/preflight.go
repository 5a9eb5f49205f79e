package preflight

import (
	"organizer/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Inputs describes what RunAll should inspect.
type Inputs struct {
	Config *config.Config
	// RulesFile pins the rules path, bypassing discovery.
	RulesFile  string
	ProgramDir string
	WorkDir    string
	// Target is the folder that would be organized. Empty skips the check.
	Target string
}

// RunAll executes all applicable checks.
func RunAll(in Inputs) []Result {
	if in.Config == nil {
		return nil
	}
	cfg := in.Config

	explicit := in.RulesFile
	if explicit == "" {
		explicit = cfg.Paths.RulesFile
	}

	results := []Result{
		CheckRules(explicit, in.ProgramDir, in.WorkDir),
		CheckWritableFile("Audit log", cfg.Paths.AuditLog),
	}
	if cfg.Organizer.History {
		results = append(results, CheckWritableFile("History database", cfg.Paths.HistoryDB))
	}
	if in.Target != "" {
		results = append(results, CheckDirectoryAccess("Target folder", in.Target))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
