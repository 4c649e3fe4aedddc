package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Confirmer blocks until the operator acknowledges a pending tool call.
// The payload is the confirmation request as received; implementations may
// surface it or ignore it. The wait is open-ended but must honor ctx.
type Confirmer interface {
	Confirm(ctx context.Context, payload map[string]any) error
}

// StdinConfirmer reads one line from its input to acknowledge a tool call.
// The line's content is not validated; its presence is the approval.
type StdinConfirmer struct {
	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	once  sync.Once
	lines chan error
}

// NewStdinConfirmer creates a confirmer reading from in and prompting on out.
// The prompt is only shown when in is an interactive terminal.
func NewStdinConfirmer(in io.Reader, out io.Writer) *StdinConfirmer {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &StdinConfirmer{
		reader:      bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Confirm blocks until a line is read or ctx is cancelled. The read runs on
// a dedicated goroutine so a cancellation during the wait unblocks the
// caller; the dangling read is abandoned.
func (c *StdinConfirmer) Confirm(ctx context.Context, _ map[string]any) error {
	if c.interactive {
		fmt.Fprint(c.out, "Press Enter to proceed: ")
	}

	c.once.Do(func() {
		c.lines = make(chan error)
		go func() {
			for {
				_, err := c.reader.ReadString('\n')
				c.lines <- err
			}
		}()
	})

	select {
	case err := <-c.lines:
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
