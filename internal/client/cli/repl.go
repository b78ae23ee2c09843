package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context) error
	Reload(ctx context.Context) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Page(ctx context.Context, n int) error
	Add(ctx context.Context) error
	Details(ctx context.Context, id int) error
	Edit(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = "Available commands: (l)ist, details <id>, edit <id>, delete <id>, add, next, prev, page <n>, reload, whoami, logout, help, exit"
)

// runREPL reads commands until EOF, "exit"/"quit" or ctx cancellation.
// Before login only login, help and exit are accepted. Handler errors are
// dropped here; handlers report to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r LineReader) {
	for {
		if ctx.Err() != nil {
			return
		}

		prompt := "diradmin> "
		if s := statusFn(); s != "" {
			prompt = "diradmin " + s + "> "
		}
		r.SetPrompt(prompt)

		line, err := r.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("Input error:", err)
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "login":
			_ = a.Login(ctx)
			continue
		}

		if !a.isLoggedIn() {
			printlnFn("Unknown command:", cmd, "(not logged in, type 'login')")
			continue
		}

		switch cmd {
		case "l", "list":
			_ = a.List(ctx)
		case "reload":
			_ = a.Reload(ctx)
		case "next":
			_ = a.Next(ctx)
		case "prev":
			_ = a.Prev(ctx)
		case "add":
			_ = a.Add(ctx)
		case "whoami":
			_ = a.Whoami(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "page":
			if n, ok := intArg(cmd, args); ok {
				_ = a.Page(ctx, n)
			}
		case "details", "show":
			if id, ok := intArg(cmd, args); ok {
				_ = a.Details(ctx, id)
			}
		case "edit":
			if id, ok := intArg(cmd, args); ok {
				_ = a.Edit(ctx, id)
			}
		case "delete", "rm":
			if id, ok := intArg(cmd, args); ok {
				_ = a.Delete(ctx, id)
			}
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// intArg parses the single numeric argument of cmd, printing usage when it
// is missing or malformed.
func intArg(cmd string, args []string) (int, bool) {
	if len(args) != 1 {
		printlnFn(fmt.Sprintf("Usage: %s <number>", cmd))
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		printlnFn(fmt.Sprintf("Usage: %s <number>", cmd))
		return 0, false
	}
	return n, true
}
