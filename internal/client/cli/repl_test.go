package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/docstudy/internal/client/api"
	"github.com/dmitrijs2005/docstudy/internal/client/models"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
	err   error
}

func (f *fakeExec) record(call, arg string) error {
	f.calls = append(f.calls, call)
	f.args = append(f.args, arg)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", "")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", "")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", "")
}
func (f *fakeExec) List(ctx context.Context) error { return f.record("list", "") }
func (f *fakeExec) Open(ctx context.Context, arg string) error {
	return f.record("open", arg)
}
func (f *fakeExec) Upload(ctx context.Context, path string) error {
	return f.record("upload", path)
}
func (f *fakeExec) Delete(ctx context.Context, arg string) error {
	return f.record("delete", arg)
}
func (f *fakeExec) Generate(ctx context.Context, kind models.GenerationKind) error {
	return f.record("generate:"+string(kind), "")
}
func (f *fakeExec) ShowDoc(ctx context.Context) error { return f.record("doc", "") }
func (f *fakeExec) Notes(ctx context.Context) error   { return f.record("notes", "") }
func (f *fakeExec) AddNote(ctx context.Context) error { return f.record("addnote", "") }
func (f *fakeExec) EditNote(ctx context.Context, arg string) error {
	return f.record("editnote", arg)
}
func (f *fakeExec) DeleteNote(ctx context.Context, arg string) error {
	return f.record("delnote", arg)
}
func (f *fakeExec) Chat(ctx context.Context) error   { return f.record("chat", "") }
func (f *fakeExec) Play(ctx context.Context) error   { return f.record("play", "") }
func (f *fakeExec) Status(ctx context.Context) error { return f.record("status", "") }

func muteOutput(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"list",
		"open 1",
		"summary",
		"qa",
		"doc",
		"notes",
		"chat",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "list", "open", "generate:summary", "generate:qa", "doc", "notes", "chat"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_ArgumentsPassedThrough(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"open 3",
		"upload /tmp/lecture.pdf",
		"delete doc-42",
		"editnote 2",
		"delnote 1",
		"quit",
	}, "\n"))

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	want := map[string]string{
		"open":     "3",
		"upload":   "/tmp/lecture.pdf",
		"delete":   "doc-42",
		"editnote": "2",
		"delnote":  "1",
	}
	for i, c := range exec.calls {
		if arg, ok := want[c]; ok && exec.args[i] != arg {
			t.Fatalf("command %q got arg %q, want %q", c, exec.args[i], arg)
		}
	}
}

func TestRunREPL_UnknownAndEmptyLinesIgnored(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("\n   \nfoobar\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	muteOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("list\n")))

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_ExitsOnCancelledContext(t *testing.T) {
	muteOutput(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{loggedIn: true}
	runREPL(ctx, exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("list\nlist\n")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls after cancel: %v", exec.calls)
	}
}

func TestRunREPL_AuthExpiredNotice(t *testing.T) {
	var printed []string
	origPrint := printlnFn
	printlnFn = func(args ...any) (int, error) {
		for _, a := range args {
			if s, ok := a.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{loggedIn: true, err: &api.Error{Kind: api.ErrAuthExpired}}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("list\nexit\n")))

	found := false
	for _, s := range printed {
		if strings.Contains(s, "session has expired") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an expiry notice, printed: %v", printed)
	}
}
