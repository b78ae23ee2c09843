package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/dmitrijs2005/diradmin/internal/client/client"
	"github.com/dmitrijs2005/diradmin/internal/client/session"
	"github.com/dmitrijs2005/diradmin/internal/logging"
)

// Deps are the collaborators App is built from.
type Deps struct {
	API    client.Client
	Tokens session.Store
	Reader LineReader
	Out    io.Writer
	Log    logging.Logger
}

type App struct {
	api    client.Client
	tokens session.Store
	reader LineReader
	out    io.Writer
	log    logging.Logger
	now    func() time.Time

	authenticated bool
	email         string
	list          *listView
}

// NewApp seeds the authenticated flag from the session store. A stored
// token counts as a session without asking the service.
func NewApp(ctx context.Context, d Deps) (*App, error) {
	if d.API == nil || d.Tokens == nil || d.Reader == nil {
		return nil, errors.New("cli: api, tokens and reader are required")
	}
	if d.Out == nil {
		d.Out = io.Discard
	}
	if d.Log == nil {
		d.Log = logging.Nop()
	}

	a := &App{
		api:    d.API,
		tokens: d.Tokens,
		reader: d.Reader,
		out:    d.Out,
		log:    d.Log,
		now:    time.Now,
	}

	s, err := a.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s.Authenticated() {
		if info := session.Inspect(s.Token, a.now()); info.Expired {
			a.log.Warn(ctx, "stored token has expired", "expired_at", info.ExpiresAt)
		}
		a.setAuthenticated(s.Email)
	}
	return a, nil
}

func (a *App) isLoggedIn() bool {
	return a.authenticated
}

func (a *App) setAuthenticated(email string) {
	a.authenticated = true
	a.email = email
	a.list = newListView(a.api, a.reader, a.out, a.log)
}

func (a *App) getStatus() string {
	if !a.authenticated {
		return ""
	}
	if a.email == "" {
		return "(logged in)"
	}
	return "(" + a.email + ")"
}

// Run shows the list when a session exists and then serves commands until
// exit, EOF or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	renderHeading(a.out, "diradmin (type 'help' for commands)")
	if a.authenticated {
		_ = a.list.reload(ctx)
	} else {
		renderMuted(a.out, "Not logged in. Type 'login' to sign in.")
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Login runs the login view. After success the list view is opened.
func (a *App) Login(ctx context.Context) error {
	if a.authenticated {
		renderMuted(a.out, "Already logged in. Type 'logout' first.")
		return nil
	}

	v := newLoginView(a.api, a.reader, a.out, a.log, func(ctx context.Context, email string) {
		a.setAuthenticated(email)
	})
	if err := v.run(ctx); err != nil {
		return err
	}

	renderLine(a.out, "Logged in as %s.", a.email)
	return a.list.reload(ctx)
}

// Logout forgets the token locally. The service is not told.
func (a *App) Logout(ctx context.Context) error {
	if err := a.tokens.Remove(ctx); err != nil {
		renderError(a.out, "Failed to log out.")
		a.log.Error(ctx, "remove token", "error", err)
		return err
	}
	a.authenticated = false
	a.email = ""
	a.list = nil
	renderLine(a.out, "Logged out.")
	return nil
}

// Whoami prints the session's email and what the token itself claims.
func (a *App) Whoami(ctx context.Context) error {
	s, err := a.tokens.Get(ctx)
	if err != nil {
		renderError(a.out, "Failed to read session.")
		return err
	}

	if s.Email != "" {
		renderLine(a.out, "Logged in as %s", s.Email)
	} else {
		renderLine(a.out, "Logged in")
	}

	info := session.Inspect(s.Token, a.now())
	switch {
	case !info.JWT:
		renderMuted(a.out, "Token: opaque")
	case info.ExpiresAt.IsZero():
		renderMuted(a.out, "Token: JWT, subject "+info.Subject+", no expiry")
	case info.Expired:
		renderError(a.out, "Token: JWT, expired at "+info.ExpiresAt.UTC().Format(time.RFC3339))
	default:
		renderMuted(a.out, "Token: JWT, subject "+info.Subject+", expires at "+info.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return nil
}

func (a *App) List(ctx context.Context) error {
	a.list.render()
	return nil
}

func (a *App) Reload(ctx context.Context) error { return a.list.reload(ctx) }
func (a *App) Next(ctx context.Context) error { return a.list.next(ctx) }
func (a *App) Prev(ctx context.Context) error { return a.list.prev(ctx) }
func (a *App) Page(ctx context.Context, n int) error { return a.list.jump(ctx, n) }
func (a *App) Add(ctx context.Context) error { return a.list.add(ctx) }
func (a *App) Details(ctx context.Context, id int) error { return a.list.details(ctx, id) }
func (a *App) Edit(ctx context.Context, id int) error { return a.list.edit(ctx, id) }
func (a *App) Delete(ctx context.Context, id int) error { return a.list.remove(ctx, id) }
