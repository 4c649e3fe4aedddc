package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/google/uuid"
)

// Metadata discriminator for status-update events carrying tool-call data.
const (
	metaKeyCoderAgent = "coderAgent"

	kindToolCallConfirmation = "tool-call-confirmation"
	kindToolCallUpdate       = "tool-call-update"
)

// turn accumulates the outcome of draining one response stream. It is passed
// by value between events; the zero value means "keep streaming".
type turn struct {
	// next is the queued follow-up message, set when a tool-call
	// confirmation was approved during this stream.
	next *a2a.Message

	// done is set when a final status update arrives with no reply queued.
	done bool
}

// handleEvent dispatches one stream event. The event space is a closed sum:
// anything outside it is logged and skipped.
func (d *Driver) handleEvent(ctx context.Context, event a2a.Event, cur turn) (turn, error) {
	switch e := event.(type) {
	case *a2a.Message:
		d.printMessage(e)
		return cur, nil

	case *a2a.TaskArtifactUpdateEvent:
		fmt.Fprintf(d.out, "Received artifact update: %s\n", e.Artifact.ID)
		return cur, nil

	case *a2a.TaskStatusUpdateEvent:
		return d.handleStatusUpdate(ctx, e, cur)

	case *a2a.Task:
		// Task snapshots carry no printable surface of their own.
		slog.Debug("Task snapshot", "task_id", string(e.ID), "state", string(e.Status.State))
		return cur, nil

	default:
		slog.Debug("Skipping unknown event", "type", fmt.Sprintf("%T", event))
		return cur, nil
	}
}

// printMessage prints every text part of a complete message, in part order.
func (d *Driver) printMessage(msg *a2a.Message) {
	for _, part := range msg.Parts {
		if tp, ok := part.(a2a.TextPart); ok {
			fmt.Fprintln(d.out, tp.Text)
		}
	}
}

func (d *Driver) handleStatusUpdate(ctx context.Context, update *a2a.TaskStatusUpdateEvent, cur turn) (turn, error) {
	if msg := update.Status.Message; msg != nil {
		for _, part := range msg.Parts {
			switch p := part.(type) {
			case a2a.TextPart:
				fmt.Fprintln(d.out, p.Text)

			case a2a.FilePart:
				fmt.Fprintln(d.out, "[File Part] Received file")

			case a2a.DataPart:
				var err error
				cur, err = d.handleDataPart(ctx, update, p, cur)
				if err != nil {
					return cur, err
				}
			}
		}
	}

	// A final flag does not end the conversation while a reply is owed.
	if update.Final && cur.next == nil {
		cur.done = true
	}
	return cur, nil
}

// handleDataPart inspects a structured-data part against the event metadata
// discriminator. Confirmation requests block for operator approval and queue
// the continuation message; progress updates print the tool name; any other
// subtype is ignored.
func (d *Driver) handleDataPart(ctx context.Context, update *a2a.TaskStatusUpdateEvent, part a2a.DataPart, cur turn) (turn, error) {
	request, _ := part.Data["request"].(map[string]any)

	switch coderAgentKind(update.Metadata) {
	case kindToolCallConfirmation:
		payload, err := json.Marshal(part.Data)
		if err != nil {
			return cur, fmt.Errorf("failed to encode confirmation payload: %w", err)
		}
		fmt.Fprintf(d.out, "[Tool Call Confirmation] %s\n", payload)

		if err := d.confirmer.Confirm(ctx, part.Data); err != nil {
			return cur, err
		}

		callID, _ := request["callId"].(string)
		cur.next = &a2a.Message{
			ID:   uuid.NewString(),
			Role: a2a.MessageRoleUser,
			Parts: a2a.ContentParts{a2a.DataPart{Data: map[string]any{
				"callId":  callID,
				"outcome": "proceed_once",
			}}},
			TaskID:    update.TaskID,
			ContextID: update.ContextID,
		}

	case kindToolCallUpdate:
		name, ok := request["name"].(string)
		if !ok {
			name = "toolName"
		}
		fmt.Fprintf(d.out, "[Tool Call Update] %q\n", name)
	}

	return cur, nil
}

// coderAgentKind extracts the event subtype from status-update metadata.
func coderAgentKind(meta map[string]any) string {
	if meta == nil {
		return ""
	}
	coderAgent, _ := meta[metaKeyCoderAgent].(map[string]any)
	kind, _ := coderAgent["kind"].(string)
	return kind
}
