package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/docstudy/internal/client/api"
	"github.com/dmitrijs2005/docstudy/internal/client/models"
	"github.com/dmitrijs2005/docstudy/internal/logging"
)

// AuthAPI is the slice of the gateway the session store needs.
type AuthAPI interface {
	Register(ctx context.Context, name, email, password string) (*api.Credentials, error)
	Login(ctx context.Context, email, password string) (*api.Credentials, error)
}

// Session is the single source of truth for whether the user is
// authenticated. Token and identity are always set and cleared together:
// there is no observable state where one is present without the other.
//
// Session implements api.TokenSource, which is how the gateway both reads
// the token for outgoing calls and revokes the session on a 401.
type Session struct {
	broadcaster

	mu     sync.RWMutex
	client AuthAPI
	log    logging.Logger

	user   *models.User
	token  string
	status OpStatus
	errMsg string
}

// NewSession creates an empty, unauthenticated session store.
//
// The store is constructed before the gateway (the gateway needs it as a
// token source), so the auth endpoints are attached afterwards with Bind.
func NewSession(log logging.Logger) *Session {
	return &Session{status: StatusIdle, log: log.With("store", "session")}
}

// Bind attaches the API client used by Login and Register.
func (s *Session) Bind(c AuthAPI) {
	s.mu.Lock()
	s.client = c
	s.mu.Unlock()
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type registerInput struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// Login authenticates against the server and, on success, installs the
// returned identity and token atomically.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if err := validate.Struct(loginInput{Email: email, Password: password}); err != nil {
		return s.failAuth(fmt.Errorf("%w: %s", api.ErrValidation, "enter a valid email and a password of at least 8 characters"))
	}

	s.beginAuth()
	creds, err := s.authClient().Login(ctx, email, password)
	if err != nil {
		return s.failAuth(err)
	}
	s.SetCredentials(creds.User, creds.Token)
	s.log.Info(ctx, "logged in", "user", creds.User.Email)
	return nil
}

// Register creates a new account and logs it in.
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	if err := validate.Struct(registerInput{Name: name, Email: email, Password: password}); err != nil {
		return s.failAuth(fmt.Errorf("%w: %s", api.ErrValidation, "name, valid email and a password of at least 8 characters are required"))
	}

	s.beginAuth()
	creds, err := s.authClient().Register(ctx, name, email, password)
	if err != nil {
		return s.failAuth(err)
	}
	s.SetCredentials(creds.User, creds.Token)
	s.log.Info(ctx, "registered", "user", creds.User.Email)
	return nil
}

func (s *Session) authClient() AuthAPI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.client == nil {
		panic("store: session used before Bind")
	}
	return s.client
}

func (s *Session) beginAuth() {
	s.mu.Lock()
	s.status = StatusPending
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Session) failAuth(err error) error {
	s.mu.Lock()
	s.status = StatusFailed
	s.errMsg = api.Message(err)
	s.mu.Unlock()
	s.notify()
	return err
}

// SetCredentials installs identity and token in one step.
func (s *Session) SetCredentials(user models.User, token string) {
	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	s.status = StatusReady
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

// Clear removes both token and identity. Idempotent; safe to call from
// the gateway on a 401 and from an explicit logout at the same time.
func (s *Session) Clear() {
	s.mu.Lock()
	changed := s.token != "" || s.user != nil
	s.user = nil
	s.token = ""
	s.status = StatusIdle
	s.errMsg = ""
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the authenticated identity, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a token and identity are present.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Status returns the auth operation status and its error message.
func (s *Session) Status() (OpStatus, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.errMsg
}

// ExpiresAt decodes the bearer token without verifying its signature and
// returns the expiry claim. Verification is the server's job; the client
// only uses this to warn the user that a re-login is coming up.
func (s *Session) ExpiresAt() (time.Time, bool) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return time.Time{}, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
