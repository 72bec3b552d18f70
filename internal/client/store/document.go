package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/docstudy/internal/client/api"
	"github.com/dmitrijs2005/docstudy/internal/client/models"
	"github.com/dmitrijs2005/docstudy/internal/logging"
)

// ErrNotFocused is returned when a generation is requested for a document
// that is not the currently focused one. This is a caller error, not a
// remote failure: no request is issued.
var ErrNotFocused = errors.New("document is not focused")

// Documents owns the document list and the focused document shown in
// detail view. The list entry and the focused entry for the same id are
// kept semantically identical: every successful fetch, generation merge,
// or delete updates both.
//
// Generation results for the focused document may resolve out of order;
// they are folded in per field group with an updatedAt staleness check
// (see models.Document.MergeGenerated), so a slower response can never
// erase an artifact a faster one already delivered.
type Documents struct {
	broadcaster

	mu     sync.Mutex
	client api.Client
	log    logging.Logger

	docs        []models.Document
	listStatus  OpStatus
	listErr     string
	listWaiters []chan error

	focused     *models.Document
	focusStatus OpStatus
	focusErr    string
	// focusEpoch is bumped whenever the focus target changes (fetch of a
	// new document, delete of the focused one, explicit clear). In-flight
	// resolutions carry the epoch they started under and are dropped if
	// it moved on.
	focusEpoch uint64

	uploadStatus OpStatus
	uploadErr    string

	deleteStatus OpStatus
	deleteErr    string

	genStatus map[models.GenerationKind]OpStatus
	genErr    map[models.GenerationKind]string
}

// NewDocuments constructs the document store.
func NewDocuments(client api.Client, log logging.Logger) *Documents {
	d := &Documents{
		client:     client,
		log:        log.With("store", "documents"),
		listStatus: StatusIdle, focusStatus: StatusIdle,
		uploadStatus: StatusIdle, deleteStatus: StatusIdle,
		genStatus: make(map[models.GenerationKind]OpStatus),
		genErr:    make(map[models.GenerationKind]string),
	}
	for _, k := range models.Kinds() {
		d.genStatus[k] = StatusIdle
	}
	return d
}

// FetchList loads the document list, replacing it wholesale on success.
//
// Re-entrant: if a list fetch is already pending, no second request is
// issued; the call blocks until the in-flight one resolves and returns
// its result.
func (d *Documents) FetchList(ctx context.Context) error {
	d.mu.Lock()
	if d.listStatus == StatusPending {
		ch := make(chan error, 1)
		d.listWaiters = append(d.listWaiters, ch)
		d.mu.Unlock()
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	d.listStatus = StatusPending
	d.listErr = ""
	d.mu.Unlock()
	d.notify()

	docs, err := d.client.ListDocuments(ctx)

	d.mu.Lock()
	if err != nil {
		d.listStatus = StatusFailed
		d.listErr = api.Message(err)
	} else {
		d.docs = docs
		d.listStatus = StatusReady
	}
	waiters := d.listWaiters
	d.listWaiters = nil
	d.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
	d.notify()
	return err
}

// FetchOne loads a single document into focus and reconciles the list
// entry with the same id so both views agree. A resolution that lands
// after the focus has moved elsewhere is dropped.
func (d *Documents) FetchOne(ctx context.Context, id string) error {
	d.mu.Lock()
	d.focusStatus = StatusPending
	d.focusErr = ""
	d.focusEpoch++
	epoch := d.focusEpoch
	d.mu.Unlock()
	d.notify()

	doc, err := d.client.GetDocument(ctx, id)

	d.mu.Lock()
	if d.focusEpoch != epoch {
		d.mu.Unlock()
		d.log.Debug(ctx, "dropping superseded focus fetch", "id", id)
		return nil
	}
	if err != nil {
		d.focusStatus = StatusFailed
		d.focusErr = api.Message(err)
		d.mu.Unlock()
		d.notify()
		return err
	}
	d.focused = doc
	d.focusStatus = StatusReady
	d.resetGenerationLocked()
	d.reconcileListLocked(*doc)
	d.mu.Unlock()
	d.notify()
	return nil
}

// Upload sends a file to the server. On success the new document is
// appended to the list; focus is untouched.
func (d *Documents) Upload(ctx context.Context, filename string, file io.Reader) error {
	if strings.TrimSpace(filename) == "" {
		err := fmt.Errorf("%w: filename is required", api.ErrValidation)
		d.mu.Lock()
		d.uploadStatus = StatusFailed
		d.uploadErr = api.Message(err)
		d.mu.Unlock()
		d.notify()
		return err
	}

	d.mu.Lock()
	d.uploadStatus = StatusPending
	d.uploadErr = ""
	d.mu.Unlock()
	d.notify()

	doc, err := d.client.UploadDocument(ctx, filename, file)

	d.mu.Lock()
	if err != nil {
		d.uploadStatus = StatusFailed
		d.uploadErr = api.Message(err)
	} else {
		d.docs = append(d.docs, *doc)
		d.uploadStatus = StatusReady
	}
	d.mu.Unlock()
	d.notify()
	return err
}

// Delete removes the document everywhere it is held: from the list and,
// if it is the focused one, from focus as well.
func (d *Documents) Delete(ctx context.Context, id string) error {
	d.mu.Lock()
	d.deleteStatus = StatusPending
	d.deleteErr = ""
	d.mu.Unlock()
	d.notify()

	err := d.client.DeleteDocument(ctx, id)

	d.mu.Lock()
	if err != nil {
		d.deleteStatus = StatusFailed
		d.deleteErr = api.Message(err)
		d.mu.Unlock()
		d.notify()
		return err
	}
	d.deleteStatus = StatusReady
	kept := d.docs[:0]
	for _, doc := range d.docs {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	d.docs = kept
	if d.focused != nil && d.focused.ID == id {
		d.focused = nil
		d.focusStatus = StatusIdle
		d.focusEpoch++
		d.resetGenerationLocked()
	}
	d.mu.Unlock()
	d.notify()
	return nil
}

// Generate requests the AI artifact of the given kind for the focused
// document. The response is merged per field group: only the artifact
// owned by kind plus shared metadata overwrite the held value, and a
// response older than what is already held is discarded. A discarded
// response still settles the generation status as ready, because the
// server-side generation did succeed.
func (d *Documents) Generate(ctx context.Context, kind models.GenerationKind, id string) error {
	d.mu.Lock()
	if d.focused == nil || d.focused.ID != id {
		d.mu.Unlock()
		return fmt.Errorf("%w: cannot generate %s for %q", ErrNotFocused, kind, id)
	}
	d.genStatus[kind] = StatusPending
	d.genErr[kind] = ""
	epoch := d.focusEpoch
	d.mu.Unlock()
	d.notify()

	resp, err := d.client.Generate(ctx, kind, id)

	d.mu.Lock()
	if d.focusEpoch != epoch {
		// Focus moved on while the request was in flight; generation
		// statuses already belong to the new document.
		d.mu.Unlock()
		d.log.Debug(ctx, "dropping superseded generation", "kind", kind, "id", id)
		return err
	}
	if err != nil {
		d.genStatus[kind] = StatusFailed
		d.genErr[kind] = api.Message(err)
		d.mu.Unlock()
		d.notify()
		return err
	}
	d.genStatus[kind] = StatusReady
	merged, applied := d.focused.MergeGenerated(kind, *resp)
	if applied {
		d.focused = &merged
		d.reconcileListLocked(merged)
	} else {
		d.log.Debug(ctx, "discarding stale generation response",
			"kind", kind, "id", id,
			"held", d.focused.UpdatedAt, "response", resp.UpdatedAt)
	}
	d.mu.Unlock()
	d.notify()
	return nil
}

// ClearFocused drops the focused document and resets its statuses.
func (d *Documents) ClearFocused() {
	d.mu.Lock()
	d.focused = nil
	d.focusStatus = StatusIdle
	d.focusErr = ""
	d.focusEpoch++
	d.resetGenerationLocked()
	d.mu.Unlock()
	d.notify()
}

// ResetUploadStatus returns the upload state machine to idle, e.g. after
// the UI has shown the result.
func (d *Documents) ResetUploadStatus() {
	d.mu.Lock()
	d.uploadStatus = StatusIdle
	d.uploadErr = ""
	d.mu.Unlock()
	d.notify()
}

func (d *Documents) resetGenerationLocked() {
	for _, k := range models.Kinds() {
		d.genStatus[k] = StatusIdle
		d.genErr[k] = ""
	}
}

func (d *Documents) reconcileListLocked(doc models.Document) {
	for i := range d.docs {
		if d.docs[i].ID == doc.ID {
			d.docs[i] = doc
			return
		}
	}
}

// List returns a copy of the document list.
func (d *Documents) List() []models.Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Document, len(d.docs))
	copy(out, d.docs)
	return out
}

// Focused returns a copy of the focused document, or nil.
func (d *Documents) Focused() *models.Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.focused == nil {
		return nil
	}
	doc := *d.focused
	return &doc
}

// ListStatus returns the list fetch status and error message.
func (d *Documents) ListStatus() (OpStatus, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listStatus, d.listErr
}

// FocusStatus returns the detail fetch status and error message.
func (d *Documents) FocusStatus() (OpStatus, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.focusStatus, d.focusErr
}

// UploadStatus returns the upload status and error message.
func (d *Documents) UploadStatus() (OpStatus, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.uploadStatus, d.uploadErr
}

// DeleteStatus returns the delete status and error message.
func (d *Documents) DeleteStatus() (OpStatus, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deleteStatus, d.deleteErr
}

// GenerationStatus returns the status of one generation kind for the
// focused document.
func (d *Documents) GenerationStatus(kind models.GenerationKind) (OpStatus, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.genStatus[kind], d.genErr[kind]
}
