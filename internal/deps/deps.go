// Package deps reports whether the external programs subtrans shells out to
// are installed.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"subtrans/internal/config"
)

// Requirement defines an external dependency subtrans relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// Requirements lists the binaries the configuration needs. The ollama CLI is
// required only when at least one target language is routed to it.
func Requirements(cfg *config.Config) []Requirement {
	if cfg == nil {
		return nil
	}
	var users []string
	for _, lang := range cfg.Translation.TargetLanguages {
		if cfg.BackendFor(lang) == config.BackendOllama {
			users = append(users, lang)
		}
	}
	desc := "Local model runner for per-segment translation"
	if len(users) > 0 {
		desc = fmt.Sprintf("%s (%s)", desc, strings.Join(users, ", "))
	}
	return []Requirement{{
		Name:        "Ollama",
		Command:     cfg.Ollama.Binary,
		Description: desc,
		Optional:    len(users) == 0,
	}}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the statuses of required dependencies that are
// unavailable.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}
