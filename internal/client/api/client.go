package api

import (
	"context"
	"io"

	"github.com/dmitrijs2005/docstudy/internal/client/models"
)

// Credentials is the result of a successful register or login call.
type Credentials struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// TokenSource supplies the bearer token for outgoing calls and is told to
// drop it when the server reports the token invalid. The session store
// implements this.
type TokenSource interface {
	// Token returns the current bearer token, or "" when unauthenticated.
	Token() string
	// Clear atomically discards the token and identity. Must be idempotent.
	Clear()
}

// Client is the transport-agnostic contract to the docstudy backend.
// Implementations attach the current token to every call and normalize all
// failures into the sentinel errors of this package.
type Client interface {
	Close() error

	Register(ctx context.Context, name, email, password string) (*Credentials, error)
	Login(ctx context.Context, email, password string) (*Credentials, error)

	ListDocuments(ctx context.Context) ([]models.Document, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	UploadDocument(ctx context.Context, filename string, file io.Reader) (*models.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	Generate(ctx context.Context, kind models.GenerationKind, documentID string) (*models.Document, error)

	ListNotes(ctx context.Context, documentID string) ([]models.Note, error)
	AddNote(ctx context.Context, documentID, content string) (*models.Note, error)
	UpdateNote(ctx context.Context, id, content string) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error

	SendChat(ctx context.Context, documentID, message string) (string, error)
}
