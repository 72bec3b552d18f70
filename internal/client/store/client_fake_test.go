package store

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrijs2005/docstudy/internal/client/api"
	"github.com/dmitrijs2005/docstudy/internal/client/models"
	"github.com/dmitrijs2005/docstudy/internal/logging"
)

func newTestLog() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeClient implements api.Client for store unit tests. Behavior is
// plugged in per test via function fields; unset operations succeed with
// zero values.
type fakeClient struct {
	registerFn   func(name, email, password string) (*api.Credentials, error)
	loginFn      func(email, password string) (*api.Credentials, error)
	listFn       func() ([]models.Document, error)
	getFn        func(id string) (*models.Document, error)
	uploadFn     func(filename string) (*models.Document, error)
	deleteFn     func(id string) error
	generateFn   func(kind models.GenerationKind, id string) (*models.Document, error)
	listNotesFn  func(documentID string) ([]models.Note, error)
	addNoteFn    func(documentID, content string) (*models.Note, error)
	updateNoteFn func(id, content string) (*models.Note, error)
	deleteNoteFn func(id string) error
	chatFn       func(documentID, message string) (string, error)
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Register(ctx context.Context, name, email, password string) (*api.Credentials, error) {
	if f.registerFn != nil {
		return f.registerFn(name, email, password)
	}
	return &api.Credentials{}, nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.Credentials, error) {
	if f.loginFn != nil {
		return f.loginFn(email, password)
	}
	return &api.Credentials{}, nil
}

func (f *fakeClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	if f.listFn != nil {
		return f.listFn()
	}
	return nil, nil
}

func (f *fakeClient) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	if f.getFn != nil {
		return f.getFn(id)
	}
	return &models.Document{ID: id}, nil
}

func (f *fakeClient) UploadDocument(ctx context.Context, filename string, file io.Reader) (*models.Document, error) {
	if f.uploadFn != nil {
		return f.uploadFn(filename)
	}
	return &models.Document{OriginalFilename: filename}, nil
}

func (f *fakeClient) DeleteDocument(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return nil
}

func (f *fakeClient) Generate(ctx context.Context, kind models.GenerationKind, documentID string) (*models.Document, error) {
	if f.generateFn != nil {
		return f.generateFn(kind, documentID)
	}
	return &models.Document{ID: documentID}, nil
}

func (f *fakeClient) ListNotes(ctx context.Context, documentID string) ([]models.Note, error) {
	if f.listNotesFn != nil {
		return f.listNotesFn(documentID)
	}
	return nil, nil
}

func (f *fakeClient) AddNote(ctx context.Context, documentID, content string) (*models.Note, error) {
	if f.addNoteFn != nil {
		return f.addNoteFn(documentID, content)
	}
	return &models.Note{DocumentID: documentID, Content: content}, nil
}

func (f *fakeClient) UpdateNote(ctx context.Context, id, content string) (*models.Note, error) {
	if f.updateNoteFn != nil {
		return f.updateNoteFn(id, content)
	}
	return &models.Note{ID: id, Content: content}, nil
}

func (f *fakeClient) DeleteNote(ctx context.Context, id string) error {
	if f.deleteNoteFn != nil {
		return f.deleteNoteFn(id)
	}
	return nil
}

func (f *fakeClient) SendChat(ctx context.Context, documentID, message string) (string, error) {
	if f.chatFn != nil {
		return f.chatFn(documentID, message)
	}
	return "ok", nil
}
