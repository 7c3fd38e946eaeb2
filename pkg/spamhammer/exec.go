package spamhammer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"time"

	"spamoverflow/pkg/logger"
	"spamoverflow/pkg/serrors"

	"go.uber.org/zap"
)

// DefaultTimeout bounds one engine invocation when no timeout is
// configured. Expiry is treated as a scan failure and nothing is
// persisted for the email.
const DefaultTimeout = 30 * time.Second

// ExecClient runs the engine binary as a subprocess per scan, invoking it
// as `<command> scan --input - --output -`.
type ExecClient struct {
	// command is the path to the engine binary.
	command string
	// timeout bounds one invocation end to end.
	timeout time.Duration
}

var _ Client = (*ExecClient)(nil)

// NewExecClient creates a subprocess-backed client for the engine binary
// at command. A non-positive timeout falls back to DefaultTimeout.
func NewExecClient(command string, timeout time.Duration) *ExecClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &ExecClient{command: command, timeout: timeout}
}

// Scan serializes req to the engine's stdin, waits for the process to
// exit and decodes the verdict from its stdout. The engine's exit code is
// not inspected on its own: output carrying a usable verdict is accepted
// regardless, and a missing or malformed verdict is a scan failure even
// on exit code zero.
func (c *ExecClient) Scan(ctx context.Context, req Request) (*Verdict, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrScanFailed, err, "could not encode scan request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.command, "scan", "--input", "-", "--output", "-")
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, serrors.Wrap(serrors.ErrScanFailed, ctx.Err(), "scan engine timed out after %s", c.timeout)
	}

	var out struct {
		Malicious *bool `json:"malicious"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		if runErr != nil {
			return nil, serrors.Wrap(serrors.ErrScanFailed, runErr,
				"scan engine failed: %s", bytes.TrimSpace(stderr.Bytes()))
		}

		return nil, serrors.Wrap(serrors.ErrScanFailed, err, "could not decode scan engine output")
	}
	if out.Malicious == nil {
		return nil, serrors.With(serrors.ErrScanFailed, "scan engine output is missing the verdict")
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		// usable verdict on a non-zero exit; keep the verdict but leave a trace
		logger.Warn(ctx, "scan engine exited non-zero with usable output",
			zap.Int("exit_code", exitErr.ExitCode()),
			zap.String("email_id", req.ID))
	}

	return &Verdict{Malicious: *out.Malicious}, nil
}
