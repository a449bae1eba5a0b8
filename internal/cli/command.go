package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines one CLI command with unified help generation, modeled
// on the teacher's internal/cli.Command.
type Command struct {
	// Flags defines command-specific flags. May be nil for flagless commands.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after the binary name.
	Usage string

	// Short is a one-line description for the top-level help listing.
	Short string

	// Exec runs the command after flags are parsed.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the command name (the first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the one-line summary for the top-level help listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-28s %s", c.Usage, c.Short)
}

// Run parses flags (if any) and executes the command, returning an exit code.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	if c.Flags != nil {
		c.Flags.SetOutput(&strings.Builder{}) // discard pflag's own usage output

		if err := c.Flags.Parse(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				o.Println("Usage:", c.Usage)
				return 0
			}

			o.ErrPrintln("error:", err)
			return 2
		}

		args = c.Flags.Args()
	}

	if err := c.Exec(ctx, o, args); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	return 0
}
