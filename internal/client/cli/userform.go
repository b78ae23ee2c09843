package cli

import (
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/diradmin/internal/client/client"
	"github.com/dmitrijs2005/diradmin/internal/client/form"
	"github.com/dmitrijs2005/diradmin/internal/client/models"
	"github.com/dmitrijs2005/diradmin/internal/client/validation"
	"github.com/dmitrijs2005/diradmin/internal/logging"
)

const msgSaveFailed = "Failed to save user."

type formField struct {
	name   string
	prompt string
}

var userFields = []formField{
	{models.FieldFirstName, "First name: "},
	{models.FieldLastName, "Last name: "},
	{models.FieldEmail, "Email: "},
}

// userFormView creates a record when it has no id and updates it otherwise.
type userFormView struct {
	api     client.Client
	in      LineReader
	out     io.Writer
	form    *form.Form[models.User, validation.Errors]
	onSaved func(ctx context.Context)
}

func newUserFormView(api client.Client, in LineReader, out io.Writer, log logging.Logger,
	initial models.User, onSaved func(ctx context.Context)) *userFormView {
	v := &userFormView{api: api, in: in, out: out, onSaved: onSaved}
	v.form = form.New(initial, validation.User, v.submit, form.WithLogger(log))
	return v
}

func (v *userFormView) submit(ctx context.Context, u models.User) error {
	var (
		saved *models.User
		err   error
	)
	if u.HasID() {
		saved, err = v.api.UpdateUser(ctx, u.IDValue(), u)
	} else {
		saved, err = v.api.CreateUser(ctx, u)
	}
	if err != nil {
		return err
	}

	renderLine(v.out, "Saved %s", saved.String())
	if v.onSaved != nil {
		v.onSaved(ctx)
	}
	return nil
}

func (v *userFormView) run(ctx context.Context) error {
	current := v.form.Values()
	if current.HasID() {
		renderHeading(v.out, "Edit user "+itoa(current.IDValue()))
	} else {
		renderHeading(v.out, "Add user")
	}

	for _, f := range userFields {
		value, err := getTextWithDefault(v.in, f.prompt, fieldValue(current, f.name))
		if err != nil {
			return err
		}
		msg, err := v.form.Change(f.name, value)
		if err != nil {
			return err
		}
		if msg != "" {
			renderError(v.out, "  "+msg)
		}
	}

	err := v.form.Submit(ctx)
	switch {
	case errors.Is(err, form.ErrInvalid):
		renderMuted(v.out, "User not saved.")
		return err
	case err != nil:
		renderError(v.out, msgSaveFailed)
		return err
	}
	return nil
}

func fieldValue(u models.User, name string) string {
	switch name {
	case models.FieldFirstName:
		return u.FirstName
	case models.FieldLastName:
		return u.LastName
	case models.FieldEmail:
		return u.Email
	}
	return ""
}
