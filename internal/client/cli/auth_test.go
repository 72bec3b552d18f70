package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dmitrijs2005/docstudy/internal/client/api"
	"github.com/dmitrijs2005/docstudy/internal/client/models"
	"github.com/dmitrijs2005/docstudy/internal/client/store"
	"github.com/dmitrijs2005/docstudy/internal/logging"
)

func testLog() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func stubInputs(t *testing.T, texts []string, password string) {
	t.Helper()
	origST, origGP, origPrint := getSimpleText, getPassword, printlnFn
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			return "", io.EOF
		}
		s := texts[i]
		i++
		return s, nil
	}
	getPassword = func(_ io.Writer) (string, error) { return password, nil }
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
		printlnFn = origPrint
	})
}

// fakeAuth implements store.AuthAPI for login/register tests.
type fakeAuth struct {
	regName, regEmail, regPass string
	loginEmail, loginPass      string
	creds                      *api.Credentials
	err                        error
}

func (f *fakeAuth) Register(_ context.Context, name, email, password string) (*api.Credentials, error) {
	f.regName, f.regEmail, f.regPass = name, email, password
	return f.creds, f.err
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*api.Credentials, error) {
	f.loginEmail, f.loginPass = email, password
	return f.creds, f.err
}

func newAuthApp(f *fakeAuth) *App {
	session := store.NewSession(testLog())
	session.Bind(f)
	return &App{
		session: session,
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

func TestRegister_Success(t *testing.T) {
	f := &fakeAuth{creds: &api.Credentials{
		User:  models.User{ID: "u1", Name: "Alice", Email: "alice@example.org"},
		Token: "tok",
	}}
	a := newAuthApp(f)

	stubInputs(t, []string{"Alice", "alice@example.org"}, "secretsecret")

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if f.regName != "Alice" || f.regEmail != "alice@example.org" || f.regPass != "secretsecret" {
		t.Fatalf("Register inputs mismatch: %+v", f)
	}
	if !a.session.Authenticated() {
		t.Fatal("session not authenticated after register")
	}
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAuth{creds: &api.Credentials{
		User:  models.User{ID: "u1", Email: "alice@example.org"},
		Token: "tok",
	}}
	a := newAuthApp(f)

	stubInputs(t, []string{"alice@example.org"}, "secretsecret")

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginEmail != "alice@example.org" || f.loginPass != "secretsecret" {
		t.Fatalf("Login inputs mismatch: %+v", f)
	}
	if !a.isLoggedIn() {
		t.Fatal("expected logged-in app")
	}
}

func TestLogin_FailurePropagates(t *testing.T) {
	f := &fakeAuth{err: &api.Error{Kind: api.ErrValidation, Message: "invalid credentials"}}
	a := newAuthApp(f)

	stubInputs(t, []string{"alice@example.org"}, "wrongpassword")

	if err := a.Login(context.Background()); err == nil {
		t.Fatal("want error from failed login")
	}
	if a.isLoggedIn() {
		t.Fatal("session must stay unauthenticated")
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	a := newAuthApp(&fakeAuth{})
	a.session.SetCredentials(models.User{ID: "u1"}, "tok")

	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if a.isLoggedIn() {
		t.Fatal("session not cleared")
	}
}
