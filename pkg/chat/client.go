// Package chat drives a streaming conversation against a remote A2A agent:
// it resolves the agent card, sends messages, prints the response stream and
// answers tool-call confirmation requests with operator-approved replies.
package chat

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2aclient"
	"github.com/a2aproject/a2a-go/a2aclient/agentcard"
)

// StreamClient sends a single message and yields the resulting response
// stream. It abstracts the underlying a2aclient so the driver can be
// exercised against scripted streams in tests.
type StreamClient interface {
	SendStream(ctx context.Context, msg *a2a.Message) iter.Seq2[a2a.Event, error]
}

// ResolveCard fetches the agent card from the server's well-known location.
// The timeout is a generous ceiling on the transport call, not a
// conversation deadline.
func ResolveCard(ctx context.Context, baseURL string, timeout time.Duration) (*a2a.AgentCard, error) {
	if timeout == 0 {
		timeout = 300 * time.Second
	}
	resolver := agentcard.NewResolver(&http.Client{Timeout: timeout})
	card, err := resolver.Resolve(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve agent card from %s: %w", baseURL, err)
	}
	return card, nil
}

// NativeClient wraps a2aclient.Client as a StreamClient.
type NativeClient struct {
	client *a2aclient.Client
	card   *a2a.AgentCard
}

// NewNativeClient creates a client bound to a resolved agent card.
func NewNativeClient(ctx context.Context, card *a2a.AgentCard) (*NativeClient, error) {
	client, err := a2aclient.NewFromCard(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("failed to create a2a client: %w", err)
	}
	return &NativeClient{client: client, card: card}, nil
}

func (c *NativeClient) SendStream(ctx context.Context, msg *a2a.Message) iter.Seq2[a2a.Event, error] {
	params := &a2a.MessageSendParams{Message: msg}
	return c.client.SendStreamingMessage(ctx, params)
}

// Card returns the agent card the client was created from.
func (c *NativeClient) Card() *a2a.AgentCard {
	return c.card
}

// Close releases the underlying transport connection.
func (c *NativeClient) Close() error {
	return c.client.Destroy()
}
