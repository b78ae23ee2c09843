package cli

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/dmitrijs2005/diradmin/internal/client/models"
	"github.com/dmitrijs2005/diradmin/internal/client/session"
)

// scriptReader replays scripted lines and records what it was asked.
type scriptReader struct {
	lines    []string
	prompts  []string
	defaults []string
}

func newScript(lines ...string) *scriptReader {
	return &scriptReader{lines: lines}
}

func (s *scriptReader) next() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	l := s.lines[0]
	s.lines = s.lines[1:]
	return l, nil
}

func (s *scriptReader) SetPrompt(p string) { s.prompts = append(s.prompts, p) }

func (s *scriptReader) Readline() (string, error) { return s.next() }

// ReadlineWithDefault treats the line "=" as pressing Enter on the
// pre-filled value.
func (s *scriptReader) ReadlineWithDefault(what string) (string, error) {
	s.defaults = append(s.defaults, what)
	l, err := s.next()
	if err == nil && l == "=" {
		return what, nil
	}
	return l, err
}

func (s *scriptReader) ReadPassword(prompt string) ([]byte, error) {
	s.prompts = append(s.prompts, prompt)
	l, err := s.next()
	return []byte(l), err
}

var errFake = errors.New("fake failure")

// fakeAPI is an in-memory client.Client recording every call.
type fakeAPI struct {
	mu sync.Mutex

	tokens session.Store
	pages  map[int][]models.User
	onList func(page int)

	loginErr  error
	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	calls      []string
	listed     []int
	created    []models.User
	updatedIDs []int
	updated    []models.User
	deleted    []int
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) error {
	f.record("login")
	if f.loginErr != nil {
		return f.loginErr
	}
	if f.tokens != nil {
		return f.tokens.Set(ctx, session.Session{Token: "tok-" + email, Email: email})
	}
	return nil
}

func (f *fakeAPI) ListUsers(_ context.Context, page int) (*models.UserPage, error) {
	f.record("list")
	f.listed = append(f.listed, page)
	if f.onList != nil {
		f.onList(page)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	data := f.pages[page]
	if data == nil {
		data = []models.User{}
	}
	return &models.UserPage{Page: page, TotalPages: len(f.pages), Data: data}, nil
}

func (f *fakeAPI) GetUser(_ context.Context, id int) (*models.User, error) {
	f.record("get")
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, users := range f.pages {
		for _, u := range users {
			if u.IDValue() == id {
				return &u, nil
			}
		}
	}
	u := testUser(id, "Fetched", "User")
	return &u, nil
}

func (f *fakeAPI) CreateUser(_ context.Context, u models.User) (*models.User, error) {
	f.record("create")
	f.created = append(f.created, u)
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = models.IntPtr(100)
	return &u, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, id int, u models.User) (*models.User, error) {
	f.record("update")
	f.updatedIDs = append(f.updatedIDs, id)
	f.updated = append(f.updated, u)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u.ID = models.IntPtr(id)
	return &u, nil
}

func (f *fakeAPI) DeleteUser(_ context.Context, id int) error {
	f.record("delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	for p, users := range f.pages {
		kept := users[:0:0]
		for _, u := range users {
			if u.IDValue() != id {
				kept = append(kept, u)
			}
		}
		f.pages[p] = kept
	}
	return nil
}

func (f *fakeAPI) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func testUser(id int, first, last string) models.User {
	return models.User{
		ID:        models.IntPtr(id),
		FirstName: first,
		LastName:  last,
		Email:     first + "." + last + "@reqres.in",
	}
}

// twoPages has users 1-3 on page 1 and 7 on page 2.
func twoPages() map[int][]models.User {
	return map[int][]models.User{
		1: {testUser(1, "George", "Bluth"), testUser(2, "Janet", "Weaver"), testUser(3, "Emma", "Wong")},
		2: {testUser(7, "Michael", "Lawson")},
	}
}
