// Package output writes command results to stdout.
//
// Results are what scripts consume: paths printed by init and create, and
// the project and worktree listings in text, JSON or YAML. Progress and
// warnings go through the log package to stderr instead.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
)

type ctxKey struct{}

// Printer writes results to a single writer.
type Printer struct {
	w io.Writer
}

// WithPrinter attaches a Printer writing to w.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, &Printer{w: w})
}

// FromContext returns the attached Printer, or one on os.Stdout.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Println writes a single result line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Writer returns the result writer for renderers that stream their output.
func (p *Printer) Writer() io.Writer {
	return p.w
}
