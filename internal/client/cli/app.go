package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/docstudy/internal/client/api"
	"github.com/dmitrijs2005/docstudy/internal/client/config"
	"github.com/dmitrijs2005/docstudy/internal/client/store"
	"github.com/dmitrijs2005/docstudy/internal/logging"
)

// App wires the stores to an interactive terminal session.
type App struct {
	config *config.Config
	log    logging.Logger

	client    api.Client
	session   *store.Session
	documents *store.Documents
	notes     *store.Notes

	reader *bufio.Reader
}

// NewApp constructs the application: session first (the gateway needs it
// as a token source), then the gateway, then the entity stores on top.
func NewApp(c *config.Config, log logging.Logger) *App {
	session := store.NewSession(log)
	client := api.NewHTTPClient(c.ServerURL, c.RequestTimeout, session, log)
	session.Bind(client)

	documents := store.NewDocuments(client, log)
	notes := store.NewNotes(client, log)

	app := &App{
		config:    c,
		log:       log,
		client:    client,
		session:   session,
		documents: documents,
		notes:     notes,
		reader:    bufio.NewReader(os.Stdin),
	}

	// When the session goes away (explicit logout or a 401 noticed by the
	// gateway), document focus and the note collection belong to nobody:
	// drop them so the next login starts clean.
	wasAuth := false
	session.Subscribe(func() {
		isAuth := session.Authenticated()
		if wasAuth && !isAuth {
			documents.ClearFocused()
			notes.Reset()
		}
		wasAuth = isAuth
	})

	return app
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) getStatus() string {
	user := a.session.User()
	if user == nil {
		return "(not logged in)"
	}
	return "(" + user.Email + ")"
}
