package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docstudy/internal/client/api"
	"github.com/dmitrijs2005/docstudy/internal/client/models"
)

func note(id, documentID, content string) models.Note {
	return models.Note{ID: id, DocumentID: documentID, Content: content, CreatedAt: baseTime}
}

func TestNotes_Fetch_ClearsBeforeRequest(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fake := &fakeClient{
		listNotesFn: func(documentID string) ([]models.Note, error) {
			close(started)
			<-release
			return []models.Note{note("n1", documentID, "hello")}, nil
		},
	}
	n := NewNotes(fake, newTestLog())

	done := make(chan error, 1)
	go func() { done <- n.Fetch(context.Background(), "dA") }()
	<-started

	// Old notes are gone the moment the switch happens, not when the
	// response lands.
	require.Empty(t, n.List())
	require.Equal(t, "dA", n.DocumentID())
	st, _ := n.FetchStatus()
	require.Equal(t, StatusPending, st)

	close(release)
	require.NoError(t, <-done)
	require.Len(t, n.List(), 1)
}

func TestNotes_Fetch_StaleResolutionDropped(t *testing.T) {
	releaseA := make(chan struct{})
	startedA := make(chan struct{})
	fake := &fakeClient{}
	fake.listNotesFn = func(documentID string) ([]models.Note, error) {
		if documentID == "dA" {
			close(startedA)
			<-releaseA
			return []models.Note{note("n1", "dA", "from A")}, nil
		}
		return []models.Note{note("n2", "dB", "from B")}, nil
	}
	n := NewNotes(fake, newTestLog())

	doneA := make(chan error, 1)
	go func() { doneA <- n.Fetch(context.Background(), "dA") }()
	<-startedA

	// User switches to document B while A's fetch is still in flight.
	require.NoError(t, n.Fetch(context.Background(), "dB"))

	close(releaseA)
	require.NoError(t, <-doneA)

	// A's late resolution must not replace B's notes.
	notes := n.List()
	require.Len(t, notes, 1)
	require.Equal(t, "dB", notes[0].DocumentID)
	require.Equal(t, "dB", n.DocumentID())
	st, _ := n.FetchStatus()
	require.Equal(t, StatusReady, st)
}

func TestNotes_Add_AppendsOnSuccess(t *testing.T) {
	fake := &fakeClient{
		addNoteFn: func(documentID, content string) (*models.Note, error) {
			nt := note("n9", documentID, content)
			return &nt, nil
		},
	}
	n := NewNotes(fake, newTestLog())
	require.NoError(t, n.Fetch(context.Background(), "dA"))

	require.NoError(t, n.Add(context.Background(), "dA", "  remember this  "))

	notes := n.List()
	require.Len(t, notes, 1)
	require.Equal(t, "remember this", notes[0].Content)
	st, _ := n.AddStatus()
	require.Equal(t, StatusReady, st)
}

func TestNotes_Add_EmptyContentNoRequest(t *testing.T) {
	var calls int32
	fake := &fakeClient{
		addNoteFn: func(documentID, content string) (*models.Note, error) {
			atomic.AddInt32(&calls, 1)
			return nil, nil
		},
	}
	n := NewNotes(fake, newTestLog())

	err := n.Add(context.Background(), "dA", "   \n\t ")
	require.ErrorIs(t, err, api.ErrValidation)
	require.Zero(t, atomic.LoadInt32(&calls))

	st, msg := n.AddStatus()
	require.Equal(t, StatusFailed, st)
	require.NotEmpty(t, msg)
}

func TestNotes_Edit_ReplacesInPlace(t *testing.T) {
	fake := &fakeClient{
		listNotesFn: func(documentID string) ([]models.Note, error) {
			return []models.Note{
				note("n1", documentID, "first"),
				note("n2", documentID, "second"),
				note("n3", documentID, "third"),
			}, nil
		},
		updateNoteFn: func(id, content string) (*models.Note, error) {
			nt := note(id, "dA", content)
			nt.UpdatedAt = baseTime.Add(time.Hour)
			return &nt, nil
		},
	}
	n := NewNotes(fake, newTestLog())
	require.NoError(t, n.Fetch(context.Background(), "dA"))

	require.NoError(t, n.Edit(context.Background(), "n2", "second, revised"))

	notes := n.List()
	require.Len(t, notes, 3)
	require.Equal(t, []string{"first", "second, revised", "third"},
		[]string{notes[0].Content, notes[1].Content, notes[2].Content})
	require.Empty(t, n.EditingID())
}

func TestNotes_Edit_SecondEditRejectedWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	var startedOnce sync.Once
	release := make(chan struct{})
	var calls int32
	fake := &fakeClient{
		updateNoteFn: func(id, content string) (*models.Note, error) {
			atomic.AddInt32(&calls, 1)
			startedOnce.Do(func() { close(started) })
			<-release
			nt := note(id, "dA", content)
			return &nt, nil
		},
	}
	n := NewNotes(fake, newTestLog())
	require.NoError(t, n.Fetch(context.Background(), "dA"))

	done := make(chan error, 1)
	go func() { done <- n.Edit(context.Background(), "n1", "slow edit") }()
	<-started

	err := n.Edit(context.Background(), "n2", "eager edit")
	require.ErrorIs(t, err, ErrEditInFlight)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls), "rejected edit must not reach the server")
	require.Equal(t, "n1", n.EditingID())

	close(release)
	require.NoError(t, <-done)
	require.Empty(t, n.EditingID())

	// Once the first edit resolves, edits are accepted again.
	require.NoError(t, n.Edit(context.Background(), "n2", "eager edit"))
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestNotes_Edit_FailureClearsInFlightMarker(t *testing.T) {
	fake := &fakeClient{
		updateNoteFn: func(id, content string) (*models.Note, error) {
			return nil, &api.Error{Kind: api.ErrServer, Message: "update failed"}
		},
	}
	n := NewNotes(fake, newTestLog())

	err := n.Edit(context.Background(), "n1", "doomed")
	require.ErrorIs(t, err, api.ErrServer)
	require.Empty(t, n.EditingID())
	st, msg := n.EditStatus()
	require.Equal(t, StatusFailed, st)
	require.Equal(t, "update failed", msg)
}

func TestNotes_Delete_RemovesFromCollection(t *testing.T) {
	fake := &fakeClient{
		listNotesFn: func(documentID string) ([]models.Note, error) {
			return []models.Note{note("n1", documentID, "a"), note("n2", documentID, "b")}, nil
		},
	}
	n := NewNotes(fake, newTestLog())
	require.NoError(t, n.Fetch(context.Background(), "dA"))

	require.NoError(t, n.Delete(context.Background(), "n1"))

	notes := n.List()
	require.Len(t, notes, 1)
	require.Equal(t, "n2", notes[0].ID)
}

func TestNotes_Reset_ReturnsToIdle(t *testing.T) {
	fake := &fakeClient{
		listNotesFn: func(documentID string) ([]models.Note, error) {
			return []models.Note{note("n1", documentID, "a")}, nil
		},
	}
	n := NewNotes(fake, newTestLog())
	require.NoError(t, n.Fetch(context.Background(), "dA"))
	require.NotEmpty(t, n.List())

	n.Reset()

	require.Empty(t, n.List())
	require.Empty(t, n.DocumentID())
	for _, status := range []func() (OpStatus, string){
		n.FetchStatus, n.AddStatus, n.EditStatus, n.DeleteStatus,
	} {
		st, msg := status()
		require.Equal(t, StatusIdle, st)
		require.Empty(t, msg)
	}
}
