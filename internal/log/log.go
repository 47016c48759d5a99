// Package log provides context-aware logging for wt.
//
// Diagnostics go to stderr in plain text. When a log file is configured,
// every record (debug, commands, warnings) is also written as JSON through a
// zap core backed by a rotating lumberjack file.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

// Logger provides output and verbose command logging.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	zap     *zap.SugaredLogger
	closer  io.Closer
}

// New creates a new logger. quiet suppresses everything written to out.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet, zap: zap.NewNop().Sugar()}
}

// FileOptions configures the rotating JSON log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// WithFile tees all records into a rotating JSON log file.
// The returned logger must be closed to flush the file.
func (l *Logger) WithFile(opts FileOptions) (*Logger, error) {
	if opts.MaxSizeMB == 0 {
		opts.MaxSizeMB = 5
	}
	if opts.MaxBackups == 0 {
		opts.MaxBackups = 3
	}
	if opts.MaxAgeDays == 0 {
		opts.MaxAgeDays = 14
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(fileWriter),
		zapcore.DebugLevel,
	)

	return &Logger{
		out:     l.out,
		verbose: l.verbose,
		quiet:   l.quiet,
		zap:     zap.New(core).Named("wt").Sugar(),
		closer:  fileWriter,
	}, nil
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	_ = l.zap.Sync()
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return New(io.Discard, false, false)
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Warnf prints a warning line and records it in the log file.
func (l *Logger) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.zap.Warn(msg)
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, "Warning: %s\n", msg)
}

// Command logs an external command execution and returns a function that
// records its duration. Only prints when verbose mode is enabled.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	return func(d time.Duration) {
		l.zap.Debugw("exec", "dir", dir, "cmd", line, "duration", d)
		if !l.echo() {
			return
		}
		if dir != "" {
			fmt.Fprintf(l.out, "[%s] $ %s (%s)\n", dir, line, d.Round(time.Millisecond))
			return
		}
		fmt.Fprintf(l.out, "$ %s (%s)\n", line, d.Round(time.Millisecond))
	}
}

// Debug logs a message with key-value pairs. Printed only in verbose mode.
// A trailing key without a value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if len(keyvals)%2 != 0 {
		keyvals = keyvals[:len(keyvals)-1]
	}
	l.zap.Debugw(msg, keyvals...)
	if !l.echo() {
		return
	}
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i < len(keyvals); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.out, sb.String())
}

// echo reports whether debug and command lines reach the terminal.
func (l *Logger) echo() bool {
	return l.verbose && !l.quiet
}
