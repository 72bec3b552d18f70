package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/docstudy/internal/client/models"
	"github.com/dmitrijs2005/docstudy/internal/logging"
)

// HTTPClient is the REST implementation of Client. Every request carries
// the current bearer token (when present) and an X-Request-Id; every
// non-2xx response is mapped to the package's error taxonomy. On a 401 the
// token source is cleared before the error is returned, so the very next
// call already goes out unauthenticated.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewHTTPClient builds a client for the API rooted at baseURL
// (e.g. "http://localhost:5000/api"). The timeout applies per request.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With("component", "api"),
	}
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// errorBody is the JSON shape the backend uses for failures.
type errorBody struct {
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: ErrValidation, Message: err.Error()}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return &Error{Kind: ErrNetwork, Message: "server unreachable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(ctx, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: ErrServer, StatusCode: resp.StatusCode, Message: "malformed response"}
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: ErrValidation, Message: err.Error()}
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, "application/json", body, out)
}

// mapError normalizes an HTTP failure response into the closed taxonomy.
func (c *HTTPClient) mapError(ctx context.Context, resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Token rejected: drop the session once, then surface a
		// terminal error. Clear is idempotent, so a burst of 401s from
		// concurrent calls collapses into a single logout.
		c.tokens.Clear()
		c.log.Warn(ctx, "session invalidated by server")
		return &Error{Kind: ErrAuthExpired, StatusCode: resp.StatusCode, Message: eb.Message}
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Kind: ErrNotFound, StatusCode: resp.StatusCode, Message: eb.Message}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &Error{Kind: ErrValidation, StatusCode: resp.StatusCode, Message: eb.Message}
	default:
		return &Error{Kind: ErrServer, StatusCode: resp.StatusCode, Message: eb.Message}
	}
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*Credentials, error) {
	in := map[string]string{"name": name, "email": email, "password": password}
	var creds Credentials
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", in, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*Credentials, error) {
	in := map[string]string{"email": email, "password": password}
	var creds Credentials
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", in, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (c *HTTPClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := c.doJSON(ctx, http.MethodGet, "/documents", nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *HTTPClient) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := c.doJSON(ctx, http.MethodGet, "/documents/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) UploadDocument(ctx context.Context, filename string, file io.Reader) (*models.Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Kind: ErrValidation, Message: err.Error()}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &Error{Kind: ErrValidation, Message: err.Error()}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Kind: ErrValidation, Message: err.Error()}
	}

	var doc models.Document
	if err := c.do(ctx, http.MethodPost, "/documents/upload", mw.FormDataContentType(), &buf, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/documents/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) Generate(ctx context.Context, kind models.GenerationKind, documentID string) (*models.Document, error) {
	path := fmt.Sprintf("/documents/%s/process/%s", url.PathEscape(documentID), kind)
	var doc models.Document
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) ListNotes(ctx context.Context, documentID string) ([]models.Note, error) {
	var notes []models.Note
	if err := c.doJSON(ctx, http.MethodGet, "/notes/document/"+url.PathEscape(documentID), nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *HTTPClient) AddNote(ctx context.Context, documentID, content string) (*models.Note, error) {
	in := map[string]string{"documentId": documentID, "content": content}
	var note models.Note
	if err := c.doJSON(ctx, http.MethodPost, "/notes", in, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) UpdateNote(ctx context.Context, id, content string) (*models.Note, error) {
	in := map[string]string{"content": content}
	var note models.Note
	if err := c.doJSON(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), in, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) SendChat(ctx context.Context, documentID, message string) (string, error) {
	in := map[string]string{"documentId": documentID, "message": message}
	var out struct {
		Response string `json:"response"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/chat", in, &out); err != nil {
		return "", err
	}
	if out.Response == "" {
		return "", &Error{Kind: ErrServer, Message: "empty assistant reply"}
	}
	return out.Response, nil
}
