package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/docstudy/internal/client/api"
	"github.com/dmitrijs2005/docstudy/internal/client/models"
	"github.com/dmitrijs2005/docstudy/internal/logging"
)

// Chat is an ephemeral conversation with the assistant, scoped to one
// document. The transcript is append-only and lives only in memory.
//
// Exactly one request is in flight at a time. A Send issued while another
// is pending appends the user message immediately (so typed input is
// never lost) and queues the request; queued requests go out strictly in
// order, and replies are appended in the same order, so the transcript is
// always causally ordered. Remote failures surface in-band as a synthetic
// assistant message and never block the next queued send.
type Chat struct {
	broadcaster

	mu     sync.Mutex
	client api.Client
	log    logging.Logger

	documentID string
	messages   []models.ChatMessage
	queue      []outgoing
	pending    bool
}

type outgoing struct {
	ctx  context.Context
	text string
}

// NewChat starts an empty conversation for the given document.
func NewChat(client api.Client, documentID string, log logging.Logger) *Chat {
	return &Chat{
		client:     client,
		documentID: documentID,
		log:        log.With("store", "chat", "document", documentID),
	}
}

// Send appends the user's message to the transcript and delivers it to
// the assistant. The only error returned is local validation of empty
// input; delivery failures appear in the transcript itself.
//
// If a send is already in flight the message is queued and the call
// returns immediately; the goroutine draining the queue will deliver it
// after the in-flight request resolves.
func (c *Chat) Send(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("%w: message is empty", api.ErrValidation)
	}

	c.mu.Lock()
	c.messages = append(c.messages, models.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    models.SenderUser,
		Text:      text,
		Timestamp: time.Now(),
	})
	if c.pending {
		c.queue = append(c.queue, outgoing{ctx: ctx, text: text})
		c.mu.Unlock()
		c.notify()
		return nil
	}
	c.pending = true
	c.mu.Unlock()
	c.notify()

	c.drain(outgoing{ctx: ctx, text: text})
	return nil
}

// drain delivers msg and then everything queued behind it, one at a time.
func (c *Chat) drain(msg outgoing) {
	for {
		reply, err := c.client.SendChat(msg.ctx, c.documentID, msg.text)

		text := reply
		if err != nil {
			text = failureReply(err)
			c.log.Warn(msg.ctx, "chat send failed", "error", err)
		}

		c.mu.Lock()
		c.messages = append(c.messages, models.ChatMessage{
			ID:        uuid.NewString(),
			Sender:    models.SenderAssistant,
			Text:      text,
			Timestamp: time.Now(),
		})
		if len(c.queue) > 0 {
			msg = c.queue[0]
			c.queue = c.queue[1:]
			c.mu.Unlock()
			c.notify()
			continue
		}
		c.pending = false
		c.mu.Unlock()
		c.notify()
		return
	}
}

// failureReply turns a delivery failure into the assistant-side message
// shown in the transcript.
func failureReply(err error) string {
	switch {
	case errors.Is(err, api.ErrAuthExpired):
		return "Your session has expired. Please log in again."
	case errors.Is(err, api.ErrValidation):
		return "Invalid request. Please check your input."
	case errors.Is(err, api.ErrNetwork):
		return "The assistant could not be reached. Please try again."
	default:
		return "Sorry, something went wrong: " + api.Message(err)
	}
}

// Messages returns a copy of the transcript in display order.
func (c *Chat) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Pending reports whether a request is in flight.
func (c *Chat) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// DocumentID returns the document this conversation is scoped to.
func (c *Chat) DocumentID() string {
	return c.documentID
}
