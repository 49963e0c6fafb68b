package ollama

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"subtrans/internal/services"
)

const (
	// DefaultBinary is the CLI looked up on PATH when none is configured.
	DefaultBinary = "ollama"
	// DefaultTimeout bounds a single generation call.
	DefaultTimeout = 60 * time.Second
)

// CommandRunner executes name with args and returns captured stdout. A
// non-nil error may still carry stderr text for diagnostics.
type CommandRunner func(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)

// Config captures the CLI invocation settings.
type Config struct {
	Binary  string
	Timeout time.Duration
}

// Client invokes the ollama CLI.
type Client struct {
	binary        string
	timeout       time.Duration
	commandRunner CommandRunner
}

// NewClient constructs a client using the supplied configuration.
func NewClient(cfg Config) *Client {
	binary := strings.TrimSpace(cfg.Binary)
	if binary == "" {
		binary = DefaultBinary
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{binary: binary, timeout: timeout}
}

// WithCommandRunner sets a custom command runner (for testing).
func (c *Client) WithCommandRunner(runner CommandRunner) {
	c.commandRunner = runner
}

// Binary returns the configured executable name.
func (c *Client) Binary() string {
	return c.binary
}

// Generate runs prompt against model and returns the trimmed output. Empty
// output is returned as-is; deciding whether it counts as a translation is
// left to the caller.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return "", services.Wrap(services.ErrConfiguration, "ollama", "generate", "model required", nil)
	}
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	stdout, stderr, err := c.run(callCtx, c.binary, "run", model, prompt)
	if err != nil {
		return "", c.classify(callCtx, err, stderr)
	}
	return strings.TrimSpace(stdout), nil
}

func (c *Client) classify(ctx context.Context, err error, stderr string) error {
	if isSpawnFailure(err) {
		return services.Wrap(services.ErrBackendUnavailable, "ollama", "spawn", fmt.Sprintf("%q not runnable", c.binary), err)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, "ollama", "generate", fmt.Sprintf("no response within %s", c.timeout), err)
	}
	message := "command failed"
	if detail := strings.TrimSpace(stderr); detail != "" {
		message = detail
	}
	return services.Wrap(services.ErrTransient, "ollama", "generate", message, err)
}

func isSpawnFailure(err error) bool {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return true
	}
	var execErr *exec.Error
	return errors.As(err, &execErr)
}

// run executes a command, using the custom runner if set.
func (c *Client) run(ctx context.Context, name string, args ...string) (string, string, error) {
	if c.commandRunner != nil {
		return c.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
