package cli

import (
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/diradmin/internal/client/client"
	"github.com/dmitrijs2005/diradmin/internal/client/form"
	"github.com/dmitrijs2005/diradmin/internal/client/models"
	"github.com/dmitrijs2005/diradmin/internal/client/validation"
	"github.com/dmitrijs2005/diradmin/internal/common"
	"github.com/dmitrijs2005/diradmin/internal/logging"
)

const msgInvalidCredentials = "Invalid credentials"

// loginView collects credentials and exchanges them for a token.
type loginView struct {
	api     client.Client
	in      LineReader
	out     io.Writer
	form    *form.Form[models.Credentials, validation.Errors]
	onLogin func(ctx context.Context, email string)

	// notice is the page-level message shown after a failed login.
	notice string
}

func newLoginView(api client.Client, in LineReader, out io.Writer, log logging.Logger,
	onLogin func(ctx context.Context, email string)) *loginView {
	v := &loginView{api: api, in: in, out: out, onLogin: onLogin}
	v.form = form.New(models.Credentials{}, validation.Credentials, v.submit, form.WithLogger(log))
	return v
}

func (v *loginView) submit(ctx context.Context, c models.Credentials) error {
	if err := v.api.Login(ctx, c.Email, c.Password); err != nil {
		v.notice = msgInvalidCredentials
		return err
	}
	v.notice = ""
	if v.onLogin != nil {
		v.onLogin(ctx, c.Email)
	}
	return nil
}

// run prompts for email and password, printing each field's message as
// soon as it is entered, then submits.
func (v *loginView) run(ctx context.Context) error {
	email, err := getSimpleText(v.in, "Email: ")
	if err != nil {
		return err
	}
	if err := v.change(models.FieldEmail, email); err != nil {
		return err
	}

	password, err := getPassword(v.in, "Password: ")
	if err != nil {
		return err
	}
	err = v.change(models.FieldPassword, string(password))
	// Best effort: the form keeps its own string copy of the password.
	common.WipeByteArray(password)
	if err != nil {
		return err
	}

	// Field messages were already printed as each value was entered.
	err = v.form.Submit(ctx)
	if err != nil && !errors.Is(err, form.ErrInvalid) {
		renderError(v.out, v.notice)
	}
	return err
}

func (v *loginView) change(name, value string) error {
	msg, err := v.form.Change(name, value)
	if err != nil {
		return err
	}
	if msg != "" {
		renderError(v.out, "  "+msg)
	}
	return nil
}
