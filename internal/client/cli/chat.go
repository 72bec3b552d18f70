package cli

import (
	"context"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/docstudy/internal/client/models"
	"github.com/dmitrijs2005/docstudy/internal/client/store"
)

// Chat opens an interactive conversation with the assistant about the
// focused document. The transcript lives only for the duration of the
// command; type /exit to leave.
func (a *App) Chat(ctx context.Context) error {
	doc := a.documents.Focused()
	if doc == nil {
		printlnFn("Open a document first ('open <n>').")
		return nil
	}

	chat := store.NewChat(a.client, doc.ID, a.log)
	printlnFn(color.CyanString("Chatting about %s. Type /exit to leave.", doc.OriginalFilename))

	printed := 0
	for {
		line, err := getSimpleText(a.reader, "you", os.Stdout)
		if err != nil {
			return nil
		}
		if line == "/exit" {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if err := chat.Send(ctx, line); err != nil {
			printlnFn(color.RedString("%s", err))
			continue
		}

		// Send blocks until the reply (or in-band failure message) is in
		// the transcript; print whatever arrived since last time.
		for _, m := range chat.Messages()[printed:] {
			if m.Sender == models.SenderAssistant {
				printlnFn(color.CyanString("assistant:"), m.Text)
			}
		}
		printed = len(chat.Messages())

		if !a.session.Authenticated() {
			printlnFn(color.RedString("Your session has expired, please login again."))
			return nil
		}
	}
}
