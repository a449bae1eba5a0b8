// Package cli provides a small command/help scaffolding, modeled directly
// on the teacher's own internal/cli package (a Command table plus a thin
// IO writer). The docindexd and docindex entry points do not use it: they
// parse their flags with pflag directly.
package cli

import (
	"fmt"
	"io"
)

// IO centralizes stdout/stderr writes for a command invocation.
type IO struct {
	out    io.Writer
	errOut io.Writer
}

// NewIO creates an IO writing to out and errOut.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) { fmt.Fprintln(o.out, a...) }

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) { fmt.Fprintf(o.out, format, a...) }

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) { fmt.Fprintln(o.errOut, a...) }
