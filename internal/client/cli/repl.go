package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/docstudy/internal/client/api"
	"github.com/dmitrijs2005/docstudy/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Open(ctx context.Context, arg string) error
	Upload(ctx context.Context, path string) error
	Delete(ctx context.Context, arg string) error
	Generate(ctx context.Context, kind models.GenerationKind) error
	ShowDoc(ctx context.Context) error
	Notes(ctx context.Context) error
	AddNote(ctx context.Context) error
	EditNote(ctx context.Context, arg string) error
	DeleteNote(ctx context.Context, arg string) error
	Chat(ctx context.Context) error
	Play(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the docstudy CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, context cancellation,
// or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - list           — list documents
//	  - open <n|id>    — focus a document for detail commands
//	  - upload <path>  — upload a file
//	  - delete <n|id>  — delete a document
//	  - summary | qa | quiz — generate an artifact for the open document
//	  - doc            — show the open document with its artifacts
//	  - notes | addnote | editnote <n> | delnote <n>
//	  - chat           — converse with the assistant about the document
//	  - play           — play the generated quiz
//	  - status         — session and store status
//	  - logout, exit | quit
//
// Command handlers report their own failures; the loop only reacts to an
// expired session by telling the user to log in again.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		printlnFn(fmt.Sprintf("ds> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var err error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: list, open <n>, upload <path>, delete <n>, summary, qa, quiz, doc, notes, addnote, editnote <n>, delnote <n>, chat, play, status, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "l", "list":
			err = a.List(ctx)

		case "open":
			err = a.Open(ctx, arg)

		case "upload":
			err = a.Upload(ctx, arg)

		case "delete":
			err = a.Delete(ctx, arg)

		case "summary":
			err = a.Generate(ctx, models.KindSummary)

		case "qa":
			err = a.Generate(ctx, models.KindQA)

		case "quiz":
			err = a.Generate(ctx, models.KindQuiz)

		case "doc":
			err = a.ShowDoc(ctx)

		case "notes":
			err = a.Notes(ctx)

		case "addnote":
			err = a.AddNote(ctx)

		case "editnote":
			err = a.EditNote(ctx, arg)

		case "delnote":
			err = a.DeleteNote(ctx, arg)

		case "chat":
			err = a.Chat(ctx)

		case "play":
			err = a.Play(ctx)

		case "status":
			err = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if errors.Is(err, api.ErrAuthExpired) {
			printlnFn(color.RedString("Your session has expired, please login again."))
		}
	}
}
