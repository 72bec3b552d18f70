package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/docstudy/internal/client/models"
	"github.com/dmitrijs2005/docstudy/internal/client/store"
)

func statusColor(s models.DocumentStatus) string {
	switch s {
	case models.StatusReady:
		return color.GreenString(string(s))
	case models.StatusFailed:
		return color.RedString(string(s))
	default:
		return color.YellowString(string(s))
	}
}

// artifactMarks renders which artifacts a document already has, e.g. "S-Q".
func artifactMarks(d models.Document) string {
	marks := []byte{'-', '-', '-'}
	if d.HasArtifact(models.KindSummary) {
		marks[0] = 'S'
	}
	if d.HasArtifact(models.KindQA) {
		marks[1] = 'A'
	}
	if d.HasArtifact(models.KindQuiz) {
		marks[2] = 'Q'
	}
	return string(marks)
}

// List refreshes and prints the document list.
func (a *App) List(ctx context.Context) error {
	if err := a.documents.FetchList(ctx); err != nil {
		_, msg := a.documents.ListStatus()
		printlnFn(color.RedString("Could not load documents: %s", msg))
		return err
	}

	docs := a.documents.List()
	if len(docs) == 0 {
		printlnFn("No documents yet. Use 'upload <path>' to add one.")
		return nil
	}
	for i, d := range docs {
		printlnFn(fmt.Sprintf("%3d. %-30s %-10s %s %s",
			i+1, d.OriginalFilename, statusColor(d.Status), artifactMarks(d),
			d.UploadedAt.Format("2006-01-02 15:04")))
	}
	return nil
}

// resolveDocument turns a command argument (1-based list index or raw id)
// into a document from the current list.
func (a *App) resolveDocument(arg string) (models.Document, error) {
	docs := a.documents.List()
	if arg == "" {
		return models.Document{}, fmt.Errorf("document number or id required")
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(docs) {
			return models.Document{}, fmt.Errorf("no document %d; run 'list' first", n)
		}
		return docs[n-1], nil
	}
	for _, d := range docs {
		if d.ID == arg {
			return d, nil
		}
	}
	return models.Document{}, fmt.Errorf("no document with id %q; run 'list' first", arg)
}

// Open focuses a document and loads its notes.
func (a *App) Open(ctx context.Context, arg string) error {
	doc, err := a.resolveDocument(arg)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	if err := a.documents.FetchOne(ctx, doc.ID); err != nil {
		_, msg := a.documents.FocusStatus()
		printlnFn(color.RedString("Could not open document: %s", msg))
		return err
	}
	if err := a.notes.Fetch(ctx, doc.ID); err != nil {
		_, msg := a.notes.FetchStatus()
		printlnFn(color.YellowString("Notes unavailable: %s", msg))
	}

	return a.ShowDoc(ctx)
}

// Upload sends a local file to the server and appends it to the list.
func (a *App) Upload(ctx context.Context, path string) error {
	if path == "" {
		printlnFn("Usage: upload <path>")
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		printlnFn(color.RedString("Cannot read %s: %s", path, err))
		return nil
	}
	defer f.Close()

	if err := a.documents.Upload(ctx, filepath.Base(path), f); err != nil {
		_, msg := a.documents.UploadStatus()
		printlnFn(color.RedString("Upload failed: %s", msg))
		return err
	}

	printlnFn(color.GreenString("Uploaded %s; processing has started.", filepath.Base(path)))
	a.documents.ResetUploadStatus()
	return nil
}

// Delete removes a document.
func (a *App) Delete(ctx context.Context, arg string) error {
	doc, err := a.resolveDocument(arg)
	if err != nil {
		printlnFn(err.Error())
		return nil
	}

	if err := a.documents.Delete(ctx, doc.ID); err != nil {
		_, msg := a.documents.DeleteStatus()
		printlnFn(color.RedString("Delete failed: %s", msg))
		return err
	}
	printlnFn(fmt.Sprintf("Deleted %s.", doc.OriginalFilename))
	return nil
}

// Generate requests an AI artifact for the focused document.
func (a *App) Generate(ctx context.Context, kind models.GenerationKind) error {
	focused := a.documents.Focused()
	if focused == nil {
		printlnFn("Open a document first ('open <n>').")
		return nil
	}

	printlnFn(fmt.Sprintf("Generating %s for %s ...", kind, focused.OriginalFilename))
	if err := a.documents.Generate(ctx, kind, focused.ID); err != nil {
		_, msg := a.documents.GenerationStatus(kind)
		printlnFn(color.RedString("Generation failed: %s", msg))
		return err
	}

	printlnFn(color.GreenString("%s ready.", kind))
	return a.ShowDoc(ctx)
}

// ShowDoc prints the focused document with whatever artifacts it has.
func (a *App) ShowDoc(ctx context.Context) error {
	doc := a.documents.Focused()
	if doc == nil {
		printlnFn("No document is open.")
		return nil
	}

	printlnFn(color.CyanString("%s", doc.OriginalFilename))
	printlnFn(fmt.Sprintf("  status: %s  updated: %s", statusColor(doc.Status), doc.UpdatedAt.Format("2006-01-02 15:04:05")))

	if doc.Summary != "" {
		printlnFn(color.CyanString("Summary:"))
		printlnFn("  " + doc.Summary)
	}
	if len(doc.QA) > 0 {
		printlnFn(color.CyanString("Questions & answers:"))
		for i, p := range doc.QA {
			printlnFn(fmt.Sprintf("  %d. Q: %s", i+1, p.Question))
			printlnFn("     A: " + p.Answer)
		}
	}
	if len(doc.Quiz) > 0 {
		printlnFn(color.CyanString("Quiz: %d questions ('play' to start)", len(doc.Quiz)))
	}
	if doc.Summary == "" && len(doc.QA) == 0 && len(doc.Quiz) == 0 {
		printlnFn("No artifacts yet; try 'summary', 'qa' or 'quiz'.")
	}
	return nil
}

// Status prints the session and per-store operation states.
func (a *App) Status(ctx context.Context) error {
	if user := a.session.User(); user != nil {
		printlnFn(fmt.Sprintf("Logged in as %s <%s>", user.Name, user.Email))
		if exp, ok := a.session.ExpiresAt(); ok {
			printlnFn("  session expires: " + exp.Format("2006-01-02 15:04:05"))
		}
	} else {
		printlnFn("Not logged in.")
	}

	ls, _ := a.documents.ListStatus()
	fs, _ := a.documents.FocusStatus()
	printlnFn(fmt.Sprintf("documents: list=%s focus=%s", ls, fs))
	for _, k := range models.Kinds() {
		gs, gmsg := a.documents.GenerationStatus(k)
		if gs != store.StatusIdle {
			line := fmt.Sprintf("  %s: %s", k, gs)
			if gmsg != "" {
				line += " (" + gmsg + ")"
			}
			printlnFn(line)
		}
	}
	ns, _ := a.notes.FetchStatus()
	printlnFn(fmt.Sprintf("notes: fetch=%s editing=%q", ns, a.notes.EditingID()))
	return nil
}
