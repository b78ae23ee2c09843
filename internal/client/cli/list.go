package cli

import (
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/diradmin/internal/client/client"
	"github.com/dmitrijs2005/diradmin/internal/client/models"
	"github.com/dmitrijs2005/diradmin/internal/logging"
)

const (
	msgLoading      = "Loading users..."
	msgLoadFailed   = "Failed to load users."
	msgDeleteFailed = "Failed to delete user."
)

// listView shows one page of the directory. Its state survives between
// commands until logout.
type listView struct {
	api client.Client
	in  LineReader
	out io.Writer
	log logging.Logger

	users      []models.User
	page       int
	totalPages int
	loading    bool
	listErr    string
	deleteErr  string
}

func newListView(api client.Client, in LineReader, out io.Writer, log logging.Logger) *listView {
	return &listView{api: api, in: in, out: out, log: log, page: 1, totalPages: 1}
}

// load fetches the current page. On failure the previous rows are kept.
// When the service reports fewer pages than the cursor, the cursor moves to
// the last page and that page is fetched instead.
func (v *listView) load(ctx context.Context) error {
	renderMuted(v.out, msgLoading)
	v.loading = true
	defer func() { v.loading = false }()

	p, err := v.api.ListUsers(ctx, v.page)
	if err != nil {
		v.listErr = msgLoadFailed
		v.log.Error(ctx, "load users", "page", v.page, "error", err)
		return err
	}

	v.users = p.Data
	v.totalPages = p.TotalPages
	v.listErr = ""
	v.log.Debug(ctx, "users loaded", "page", v.page, "count", len(p.Data))

	if v.page > v.totalPages && v.totalPages >= 1 {
		v.page = v.totalPages
		return v.load(ctx)
	}
	return nil
}

func (v *listView) render() {
	renderHeading(v.out, "Users")
	for _, u := range v.users {
		renderLine(v.out, "%s", u.String())
	}
	if len(v.users) == 0 && v.listErr == "" {
		renderMuted(v.out, "No users.")
	}
	renderMuted(v.out, pageLabel(v.page, v.totalPages))
	if v.listErr != "" {
		renderError(v.out, v.listErr)
	}
	if v.deleteErr != "" {
		renderError(v.out, v.deleteErr)
	}
}

func pageLabel(page, total int) string {
	return "Page " + itoa(page) + " of " + itoa(total)
}

func (v *listView) hasNext() bool { return v.page < v.totalPages }
func (v *listView) hasPrev() bool { return v.page > 1 }

// setPage moves to n and reloads. Out-of-range pages are refused.
func (v *listView) setPage(ctx context.Context, n int) (bool, error) {
	if n < 1 || n > v.totalPages {
		return false, nil
	}
	v.page = n
	return true, v.load(ctx)
}

func (v *listView) next(ctx context.Context) error {
	if !v.hasNext() {
		renderMuted(v.out, "Already on the last page.")
		return nil
	}
	_, err := v.setPage(ctx, v.page+1)
	v.render()
	return err
}

func (v *listView) prev(ctx context.Context) error {
	if !v.hasPrev() {
		renderMuted(v.out, "Already on the first page.")
		return nil
	}
	_, err := v.setPage(ctx, v.page-1)
	v.render()
	return err
}

func (v *listView) jump(ctx context.Context, n int) error {
	ok, err := v.setPage(ctx, n)
	if !ok {
		renderError(v.out, "No such page. "+pageLabel(v.page, v.totalPages))
		return nil
	}
	v.render()
	return err
}

func (v *listView) reload(ctx context.Context) error {
	err := v.load(ctx)
	v.render()
	return err
}

// remove deletes id and reloads the current page.
func (v *listView) remove(ctx context.Context, id int) error {
	if err := v.api.DeleteUser(ctx, id); err != nil {
		v.deleteErr = msgDeleteFailed
		v.log.Error(ctx, "delete user", "id", id, "error", err)
		v.render()
		return err
	}
	v.deleteErr = ""
	renderLine(v.out, "Deleted user %d.", id)
	return v.reload(ctx)
}

func (v *listView) details(ctx context.Context, id int) error {
	return showDetails(ctx, v.api, v.out, v.log, id)
}

// add opens an empty form. The list reloads after a successful save.
func (v *listView) add(ctx context.Context) error {
	return newUserFormView(v.api, v.in, v.out, v.log, models.User{}, v.onSaved).run(ctx)
}

// edit opens the form pre-filled with the record, taken from the current
// page when it is there.
func (v *listView) edit(ctx context.Context, id int) error {
	u, ok := v.find(id)
	if !ok {
		fetched, err := v.api.GetUser(ctx, id)
		if err != nil {
			if errors.Is(err, client.ErrNotFound) {
				renderError(v.out, "User "+itoa(id)+" not found.")
			} else {
				renderError(v.out, msgDetailsFailed)
			}
			v.log.Error(ctx, "fetch user for edit", "id", id, "error", err)
			return err
		}
		u = *fetched
	}
	return newUserFormView(v.api, v.in, v.out, v.log, u, v.onSaved).run(ctx)
}

func (v *listView) onSaved(ctx context.Context) {
	_ = v.reload(ctx)
}

func (v *listView) find(id int) (models.User, bool) {
	for _, u := range v.users {
		if u.HasID() && u.IDValue() == id {
			return u, true
		}
	}
	return models.User{}, false
}
