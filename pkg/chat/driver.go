package chat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/google/uuid"
)

// Config configures a conversation Driver.
type Config struct {
	// Client sends messages and yields response streams.
	// Required.
	Client StreamClient

	// Confirmer blocks for operator approval of tool calls.
	// Default: StdinConfirmer on os.Stdin/os.Stdout.
	Confirmer Confirmer

	// Output receives all conversation output. Default: os.Stdout.
	Output io.Writer
}

// Driver runs a single conversation against a remote agent. It sends one
// message at a time and fully drains the resulting stream before sending
// the next; there is never more than one message in flight.
type Driver struct {
	client    StreamClient
	confirmer Confirmer
	out       io.Writer
}

// NewDriver creates a conversation driver.
func NewDriver(cfg Config) (*Driver, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Confirmer == nil {
		cfg.Confirmer = NewStdinConfirmer(os.Stdin, cfg.Output)
	}
	return &Driver{
		client:    cfg.Client,
		confirmer: cfg.Confirmer,
		out:       cfg.Output,
	}, nil
}

// NewUserMessage builds the initial outgoing message: one text part plus the
// locally defined tool descriptors advertised as metadata.
func NewUserMessage(text string) *a2a.Message {
	return &a2a.Message{
		ID:       uuid.NewString(),
		Role:     a2a.MessageRoleUser,
		Parts:    a2a.ContentParts{a2a.TextPart{Text: text}},
		Metadata: ToolMetadata(),
	}
}

// Run executes the conversation loop: send the message, consume the stream
// to exhaustion, and repeat while a confirmation reply is owed. The loop
// ends when a final status update is observed with no reply queued.
//
// An abrupt stream closure is the one recognized failure: it is logged as a
// warning and treated as terminal. Everything else propagates to the caller.
func (d *Driver) Run(ctx context.Context, initial *a2a.Message) error {
	msg := initial
	var next *a2a.Message

	for done := false; !done; {
		if next != nil {
			msg = next
			next = nil
		}
		fmt.Fprintln(d.out, "\n--- Sending Message ---")

		cur := turn{}
		for event, err := range d.client.SendStream(ctx, msg) {
			if err != nil {
				slog.Warn("Stream closed early", "error", err)
				fmt.Fprintln(d.out, "\n[Warning] Stream was closed by the client or server early.")
				fmt.Fprintln(d.out, "\n--- Stream Consumption Ended ---")
				return nil
			}
			cur, err = d.handleEvent(ctx, event, cur)
			if err != nil {
				return err
			}
		}

		next = cur.next
		done = cur.done
	}

	fmt.Fprintln(d.out, "\n--- Stream Consumption Ended ---")
	return nil
}
