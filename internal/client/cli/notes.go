package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/docstudy/internal/client/models"
)

// Notes refreshes and prints the note collection of the open document.
func (a *App) Notes(ctx context.Context) error {
	doc := a.documents.Focused()
	if doc == nil {
		printlnFn("Open a document first ('open <n>').")
		return nil
	}

	if err := a.notes.Fetch(ctx, doc.ID); err != nil {
		_, msg := a.notes.FetchStatus()
		printlnFn(color.RedString("Could not load notes: %s", msg))
		return err
	}

	notes := a.notes.List()
	if len(notes) == 0 {
		printlnFn("No notes yet. Use 'addnote' to create one.")
		return nil
	}
	for i, n := range notes {
		printlnFn(fmt.Sprintf("%3d. %s  (%s)", i+1, n.Content, n.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return nil
}

// resolveNote turns a 1-based index argument into a note from the
// current collection.
func (a *App) resolveNote(arg string) (models.Note, error) {
	notes := a.notes.List()
	if arg == "" {
		return models.Note{}, fmt.Errorf("note number required")
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(notes) {
		return models.Note{}, fmt.Errorf("no note %s; run 'notes' first", arg)
	}
	return notes[n-1], nil
}

// AddNote reads a note body and attaches it to the open document.
func (a *App) AddNote(ctx context.Context) error {
	doc := a.documents.Focused()
	if doc == nil {
		printlnFn("Open a document first ('open <n>').")
		return nil
	}

	content, err := GetMultiline(a.reader, "Enter note text", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.notes.Add(ctx, doc.ID, content); err != nil {
		_, msg := a.notes.AddStatus()
		printlnFn(color.RedString("Could not add note: %s", msg))
		return err
	}
	printlnFn(color.GreenString("Note added."))
	return nil
}

// EditNote replaces the content of one note.
func (a *App) EditNote(ctx context.Context, arg string) error {
	note, err := a.resolveNote(arg)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	content, err := GetMultiline(a.reader, "Enter new note text", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.notes.Edit(ctx, note.ID, content); err != nil {
		_, msg := a.notes.EditStatus()
		if msg == "" {
			msg = err.Error()
		}
		printlnFn(color.RedString("Could not edit note: %s", msg))
		return err
	}
	printlnFn(color.GreenString("Note updated."))
	return nil
}

// DeleteNote removes one note.
func (a *App) DeleteNote(ctx context.Context, arg string) error {
	note, err := a.resolveNote(arg)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	if err := a.notes.Delete(ctx, note.ID); err != nil {
		_, msg := a.notes.DeleteStatus()
		printlnFn(color.RedString("Could not delete note: %s", msg))
		return err
	}
	printlnFn("Note deleted.")
	return nil
}
