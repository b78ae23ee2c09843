package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) rec(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.rec("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.rec("logout")
}
func (f *fakeExec) Whoami(ctx context.Context) error { return f.rec("whoami") }
func (f *fakeExec) List(ctx context.Context) error { return f.rec("list") }
func (f *fakeExec) Reload(ctx context.Context) error { return f.rec("reload") }
func (f *fakeExec) Next(ctx context.Context) error { return f.rec("next") }
func (f *fakeExec) Prev(ctx context.Context) error { return f.rec("prev") }
func (f *fakeExec) Page(ctx context.Context, n int) error { return f.rec("page %d", n) }
func (f *fakeExec) Add(ctx context.Context) error { return f.rec("add") }
func (f *fakeExec) Details(ctx context.Context, id int) error { return f.rec("details %d", id) }
func (f *fakeExec) Edit(ctx context.Context, id int) error { return f.rec("edit %d", id) }
func (f *fakeExec) Delete(ctx context.Context, id int) error { return f.rec("delete %d", id) }

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrintln(t)

	r := newScript(
		"help",
		"list",
		"login",
		"help",
		"list",
		"details 2",
		"edit 7",
		"delete 3",
		"add",
		"next",
		"prev",
		"page 2",
		"reload",
		"whoami",
		"logout",
		"next",
		"exit",
		"list",
	)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "" }, r)

	assert.Equal(t, []string{
		"login", "list", "details 2", "edit 7", "delete 3", "add", "next", "prev",
		"page 2", "reload", "whoami", "logout",
	}, exec.calls)
	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
	assert.Equal(t, []string{"list"}, r.lines, "input after exit is not read")
}

func TestRunREPL_RejectsCommandsBeforeLogin(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, newScript("delete 1", "whoami"))

	assert.Empty(t, exec.calls)
	require.Len(t, *out, 2)
	assert.Contains(t, (*out)[0], "not logged in")
}

func TestRunREPL_Usage(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" },
		newScript("details", "edit abc", "delete 0", "page 1 2", "frobnicate", "quit"))

	assert.Empty(t, exec.calls)
	assert.Equal(t, []string{
		"Usage: details <number>",
		"Usage: edit <number>",
		"Usage: delete <number>",
		"Usage: page <number>",
		"Unknown command: frobnicate",
		"Bye!",
	}, *out)
}

type interruptOnce struct {
	*scriptReader
	done bool
}

func (r *interruptOnce) Readline() (string, error) {
	if !r.done {
		r.done = true
		return "", readline.ErrInterrupt
	}
	return r.scriptReader.Readline()
}

func TestRunREPL_InterruptContinues(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" },
		&interruptOnce{scriptReader: newScript("reload")})

	assert.Equal(t, []string{"reload"}, exec.calls)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	capturePrintln(t)

	r := newScript("")
	runREPL(context.Background(), &fakeExec{}, func() string { return "(eve@reqres.in)" }, r)

	require.NotEmpty(t, r.prompts)
	assert.Equal(t, "diradmin (eve@reqres.in)> ", r.prompts[0])
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newScript("login")
	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, r)

	assert.Empty(t, exec.calls)
	assert.Len(t, r.lines, 1)
}
