// Package rmapi drives the external rmapi binary for reMarkable Cloud
// uploads and device registration. The binary's sync protocol and token
// handling are its own business; this package only builds invocations and
// interprets exit status.
package rmapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/daily-planner/plannerd/internal/logging"
)

// ErrNotRegistered indicates the sync binary rejected the stored credentials.
// The operator has to rerun device registration; plannerd never retries.
var ErrNotRegistered = errors.New("rmapi is not authenticated, run 'plannerd register'")

// Client wraps rmapi execution with an optional binary path and credentials
// file override.
type Client struct {
	// Bin is the rmapi binary name or path, resolved through PATH.
	Bin string
	// ConfigPath, when set, is exported as RMAPI_CONFIG so the binary reads
	// credentials from the same file the bootstrapper wrote.
	ConfigPath string

	logger *slog.Logger
}

// NewClient constructs an rmapi client wrapper.
func NewClient(bin, configPath string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{Bin: bin, ConfigPath: configPath, logger: logger}
}

// Available reports whether the rmapi binary can be found in PATH.
func (c *Client) Available() bool {
	_, err := exec.LookPath(c.Bin)
	return err == nil
}

// Upload sends a PDF to the given reMarkable folder. The folder is created
// first (an already-existing folder is fine). When documentName differs from
// the file's stem, the file is staged under that name in a temp directory
// because rmapi names documents after the uploaded filename.
func (c *Client) Upload(ctx context.Context, pdfPath, folder, documentName string) error {
	if !c.Available() {
		return fmt.Errorf("rmapi binary %q not found in PATH", c.Bin)
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("pdf file: %w", err)
	}

	if strings.ContainsAny(documentName, `/\`) {
		return fmt.Errorf("document name %q must not contain path separators", documentName)
	}

	uploadPath := pdfPath
	stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	if documentName != "" && documentName != stem {
		staged, cleanup, err := stageAs(pdfPath, documentName+".pdf")
		if err != nil {
			return fmt.Errorf("stage upload as %q: %w", documentName, err)
		}
		defer cleanup()
		uploadPath = staged
	}

	target := folder
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}

	// The folder may already exist, so a mkdir failure is not fatal.
	if err := c.run(ctx, "mkdir", target); err != nil {
		c.logger.Debug("rmapi mkdir failed, assuming folder exists", "folder", target, "error", err)
	}

	c.logger.Info("uploading to reMarkable Cloud", "file", filepath.Base(uploadPath), "folder", target)
	if err := c.run(ctx, "put", uploadPath, target); err != nil {
		return fmt.Errorf("upload %s: %w", filepath.Base(uploadPath), err)
	}

	c.logger.Info("upload complete", "file", filepath.Base(uploadPath), "folder", target)
	return nil
}

// Register runs the binary's interactive one-time authentication flow by
// listing the cloud root. Terminal streams are passed through so the operator
// can enter the pairing code.
func (c *Client) Register(ctx context.Context) error {
	if !c.Available() {
		return fmt.Errorf("rmapi binary %q not found in PATH", c.Bin)
	}

	cmd := exec.CommandContext(ctx, c.Bin, "ls")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = c.environ()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("rmapi registration: %w", err)
	}
	return nil
}

// run executes one rmapi subcommand. stdout is streamed into the logger;
// stderr is captured so auth failures can be told apart from ordinary ones
// and mapped to ErrNotRegistered.
func (c *Client) run(ctx context.Context, args ...string) error {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, c.Bin, args...)
	cmd.Stdout = logging.NewWriter(c.logger, "stdout")
	cmd.Stderr = &stderr
	cmd.Env = c.environ()

	err := cmd.Run()
	for _, line := range outputLines(&stderr) {
		c.logger.Debug("rmapi output", "stream", "stderr", "line", line)
	}

	if err != nil {
		if authFailure(stderr.String()) {
			return fmt.Errorf("rmapi %s: %w", args[0], ErrNotRegistered)
		}
		return fmt.Errorf("rmapi %v failed: %w: %s", args, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (c *Client) environ() []string {
	env := os.Environ()
	if c.ConfigPath == "" {
		return env
	}
	const prefix = "RMAPI_CONFIG="
	for i := range env {
		if strings.HasPrefix(env[i], prefix) {
			env[i] = prefix + c.ConfigPath
			return env
		}
	}
	return append(env, prefix+c.ConfigPath)
}

// authFailure reports whether rmapi's stderr indicates missing or expired
// credentials rather than an ordinary failure.
func authFailure(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "log in") || strings.Contains(s, "auth")
}

// stageAs copies src into a temp directory under the given filename and
// returns the staged path plus a cleanup func.
func stageAs(src, name string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "plannerd-upload-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	in, err := os.Open(src)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	defer func() { _ = in.Close() }()

	staged := filepath.Join(dir, name)
	out, err := os.Create(staged)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		cleanup()
		return "", nil, err
	}
	if err := out.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return staged, cleanup, nil
}

func outputLines(buf *bytes.Buffer) []string {
	text := strings.TrimRight(buf.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
