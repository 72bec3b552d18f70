package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/docstudy/internal/client/api"
	"github.com/dmitrijs2005/docstudy/internal/client/models"
	"github.com/dmitrijs2005/docstudy/internal/logging"
)

// ErrEditInFlight is returned when an edit is requested while another
// note's edit has not resolved yet. No request is issued.
var ErrEditInFlight = errors.New("another note edit is in progress")

// Notes owns the note collection for one document at a time. Switching
// documents clears the collection immediately, and a fetch that resolves
// after the user has moved to a different document is dropped, so stale
// notes never show up under the wrong document.
//
// At most one edit may be in flight across the collection; a second edit
// is rejected locally until the first resolves.
type Notes struct {
	broadcaster

	mu     sync.Mutex
	client api.Client
	log    logging.Logger

	// documentID is the document the collection is desired for; compared
	// against the requested id when a fetch resolves.
	documentID string
	notes      []models.Note

	fetchStatus OpStatus
	fetchErr    string

	addStatus OpStatus
	addErr    string

	editingID  string
	editStatus OpStatus
	editErr    string

	deleteStatus OpStatus
	deleteErr    string
}

// NewNotes constructs the note store.
func NewNotes(client api.Client, log logging.Logger) *Notes {
	return &Notes{
		client: client,
		log:    log.With("store", "notes"),
		fetchStatus: StatusIdle, addStatus: StatusIdle,
		editStatus: StatusIdle, deleteStatus: StatusIdle,
	}
}

// Fetch replaces the collection with the notes of the given document.
// The old collection is cleared before the request goes out.
func (n *Notes) Fetch(ctx context.Context, documentID string) error {
	n.mu.Lock()
	n.documentID = documentID
	n.notes = nil
	n.fetchStatus = StatusPending
	n.fetchErr = ""
	n.mu.Unlock()
	n.notify()

	notes, err := n.client.ListNotes(ctx, documentID)

	n.mu.Lock()
	if n.documentID != documentID {
		n.mu.Unlock()
		n.log.Debug(ctx, "dropping stale note fetch", "document", documentID)
		return nil
	}
	if err != nil {
		n.fetchStatus = StatusFailed
		n.fetchErr = api.Message(err)
	} else {
		n.notes = notes
		n.fetchStatus = StatusReady
	}
	n.mu.Unlock()
	n.notify()
	return err
}

// Add creates a note on the given document and appends it on success.
// Content must be non-empty after trimming; empty content is rejected
// without a network call.
func (n *Notes) Add(ctx context.Context, documentID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		err := fmt.Errorf("%w: note content is empty", api.ErrValidation)
		n.mu.Lock()
		n.addStatus = StatusFailed
		n.addErr = api.Message(err)
		n.mu.Unlock()
		n.notify()
		return err
	}

	n.mu.Lock()
	n.addStatus = StatusPending
	n.addErr = ""
	n.mu.Unlock()
	n.notify()

	note, err := n.client.AddNote(ctx, documentID, content)

	n.mu.Lock()
	if err != nil {
		n.addStatus = StatusFailed
		n.addErr = api.Message(err)
		n.mu.Unlock()
		n.notify()
		return err
	}
	n.addStatus = StatusReady
	if n.documentID == documentID {
		n.notes = append(n.notes, *note)
	}
	n.mu.Unlock()
	n.notify()
	return nil
}

// Edit updates a note's content, replacing it in place on success. While
// one edit is pending every further edit is rejected with ErrEditInFlight.
func (n *Notes) Edit(ctx context.Context, id, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("%w: note content is empty", api.ErrValidation)
	}

	n.mu.Lock()
	if n.editingID != "" {
		n.mu.Unlock()
		return fmt.Errorf("%w: editing %q", ErrEditInFlight, id)
	}
	n.editingID = id
	n.editStatus = StatusPending
	n.editErr = ""
	n.mu.Unlock()
	n.notify()

	note, err := n.client.UpdateNote(ctx, id, content)

	n.mu.Lock()
	n.editingID = ""
	if err != nil {
		n.editStatus = StatusFailed
		n.editErr = api.Message(err)
		n.mu.Unlock()
		n.notify()
		return err
	}
	n.editStatus = StatusReady
	for i := range n.notes {
		if n.notes[i].ID == note.ID {
			n.notes[i] = *note
			break
		}
	}
	n.mu.Unlock()
	n.notify()
	return nil
}

// Delete removes a note on the server and from the collection.
func (n *Notes) Delete(ctx context.Context, id string) error {
	n.mu.Lock()
	n.deleteStatus = StatusPending
	n.deleteErr = ""
	n.mu.Unlock()
	n.notify()

	err := n.client.DeleteNote(ctx, id)

	n.mu.Lock()
	if err != nil {
		n.deleteStatus = StatusFailed
		n.deleteErr = api.Message(err)
		n.mu.Unlock()
		n.notify()
		return err
	}
	n.deleteStatus = StatusReady
	kept := n.notes[:0]
	for _, note := range n.notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	n.notes = kept
	n.mu.Unlock()
	n.notify()
	return nil
}

// Reset drops the collection and returns every status to idle, e.g. when
// the detail view closes.
func (n *Notes) Reset() {
	n.mu.Lock()
	n.documentID = ""
	n.notes = nil
	n.fetchStatus = StatusIdle
	n.fetchErr = ""
	n.addStatus = StatusIdle
	n.addErr = ""
	n.editingID = ""
	n.editStatus = StatusIdle
	n.editErr = ""
	n.deleteStatus = StatusIdle
	n.deleteErr = ""
	n.mu.Unlock()
	n.notify()
}

// List returns a copy of the current collection.
func (n *Notes) List() []models.Note {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.Note, len(n.notes))
	copy(out, n.notes)
	return out
}

// DocumentID returns the document the collection is scoped to.
func (n *Notes) DocumentID() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.documentID
}

// EditingID returns the id of the note whose edit is in flight, or "".
func (n *Notes) EditingID() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.editingID
}

// FetchStatus returns the fetch status and error message.
func (n *Notes) FetchStatus() (OpStatus, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.fetchStatus, n.fetchErr
}

// AddStatus returns the add status and error message.
func (n *Notes) AddStatus() (OpStatus, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.addStatus, n.addErr
}

// EditStatus returns the edit status and error message.
func (n *Notes) EditStatus() (OpStatus, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.editStatus, n.editErr
}

// DeleteStatus returns the delete status and error message.
func (n *Notes) DeleteStatus() (OpStatus, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.deleteStatus, n.deleteErr
}
