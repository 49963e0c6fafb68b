package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subtrans/internal/testsupport"
)

const sampleSRT = testsupport.SampleSRT

type cliTestEnv struct {
	baseDir     string
	configPath  string
	metricsPath string
	server      *testsupport.TranslateServer
}

// setupCLITestEnv isolates HOME and the working directory and writes a config
// that routes every language to a fake translate endpoint which upper-cases
// its input.
func setupCLITestEnv(t *testing.T, extra string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("OLLAMA_MODEL", "")
	t.Setenv("GOOGLE_TRANSLATE_API_KEY", "")
	t.Chdir(base)

	env := &cliTestEnv{
		baseDir:     base,
		configPath:  filepath.Join(base, "subtrans.toml"),
		metricsPath: filepath.Join(base, "metrics", "subtrans.prom"),
	}

	env.server = testsupport.NewTranslateServer(t)

	content := fmt.Sprintf(`[paths]
metrics_file = %q

[translation]
target_languages = ["fr", "de"]
default_backend = "google"
backend_overrides = {}

[google]
base_url = %q
batch_delay_ms = 0
%s`, env.metricsPath, env.server.URL, extra)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e *cliTestEnv) writeSubtitle(t *testing.T, name, content string) string {
	t.Helper()
	return testsupport.WriteSubtitle(t, e.baseDir, name, content)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	flags = append(flags, "--log-level", "error")
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
