// Package cmd provides helpers for executing shell commands with proper error handling.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/wtproj/internal/log"
)

// RunContext executes a command in dir and returns stderr as the error
// message if it fails. A cancelled context is reported as ctx.Err().
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext executes a command in dir and returns stdout.
// On failure the error carries the trimmed stderr when there is any.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stderr bytes.Buffer
	c.Stderr = &stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	out, err := c.Output()
	done(time.Since(start))

	if err != nil {
		return nil, commandError(ctx, err, stderr.String())
	}
	return out, nil
}

// RunPassthrough executes a command in dir with its output streamed to the
// given writers, for long-running commands the user should watch (clone,
// rebase, pull).
func RunPassthrough(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdout = stdout
	c.Stderr = stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	if err != nil {
		return commandError(ctx, err, "")
	}
	return nil
}

func commandError(ctx context.Context, err error, stderr string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if msg := strings.TrimSpace(stderr); msg != "" {
		return errors.New(msg)
	}
	return err
}
