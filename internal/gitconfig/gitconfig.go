// Package gitconfig reads identity settings from the user's git
// configuration by invoking the git CLI.
package gitconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/opencode-ai/lic/internal/logging"
	"github.com/rs/zerolog"
)

// ErrNotSet is returned when git has no value for the requested key.
var ErrNotSet = errors.New("git config value not set")

// DefaultTimeout bounds a single git invocation.
const DefaultTimeout = 2 * time.Second

// Runner executes git with args and returns stdout.
type Runner func(ctx context.Context, args ...string) (string, error)

// Client reads git configuration values.
type Client struct {
	run     Runner
	dir     string
	timeout time.Duration
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRunner replaces the git executor.
func WithRunner(run Runner) Option {
	return func(c *Client) {
		if run != nil {
			c.run = run
		}
	}
}

// WithDir runs git with -C dir so repository-local config is honored.
func WithDir(dir string) Option {
	return func(c *Client) {
		c.dir = dir
	}
}

// WithTimeout bounds each git invocation.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient returns a Client that shells out to git.
func NewClient(opts ...Option) *Client {
	c := &Client{
		run:     execGit,
		timeout: DefaultTimeout,
		logger:  logging.Component("gitconfig"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the trimmed value of key. A key git reports as unset yields
// ErrNotSet.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("git config key is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{"config", "--get", key}
	if c.dir != "" {
		args = append([]string{"-C", c.dir}, args...)
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", fmt.Errorf("%s: %w", key, ErrNotSet)
		}
		return "", err
	}

	value := strings.TrimSpace(out)
	if value == "" {
		return "", fmt.Errorf("%s: %w", key, ErrNotSet)
	}
	c.logger.Debug().Str("key", key).Msg("read git config")
	return value, nil
}

// UserName returns git's user.name.
func (c *Client) UserName(ctx context.Context) (string, error) {
	return c.Get(ctx, "user.name")
}

// UserEmail returns git's user.email.
func (c *Client) UserEmail(ctx context.Context) (string, error) {
	return c.Get(ctx, "user.email")
}

func execGit(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, "git", args...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w (stderr: %s)",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
