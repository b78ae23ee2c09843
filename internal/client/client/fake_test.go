package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/dmitrijs2005/diradmin/internal/client/models"
	"github.com/gorilla/mux"
)

const (
	fakeEmail    = "eve.holt@reqres.in"
	fakePassword = "cityslicka"
	fakeToken    = "QpwL5tke4Pnpja7X4"
)

// fakeDirectory is an in-memory directory service with the reqres.in wire
// shapes: string ids on create, no id on update, {data} around single users.
type fakeDirectory struct {
	mu          sync.Mutex
	users       map[int]models.User
	nextID      int
	perPage     int
	requireAuth bool
	failWith    int
	headers     []http.Header
	bodies      []map[string]any
}

func newFakeDirectory(t *testing.T, n int) (*fakeDirectory, *httptest.Server) {
	t.Helper()

	f := &fakeDirectory{users: map[int]models.User{}, nextID: n + 1, perPage: 6}
	for i := 1; i <= n; i++ {
		f.users[i] = models.User{
			ID:        models.IntPtr(i),
			FirstName: "User",
			LastName:  strconv.Itoa(i),
			Email:     "user" + strconv.Itoa(i) + "@reqres.in",
		}
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(f.record)
	api.HandleFunc("/login", f.login).Methods(http.MethodPost)

	users := api.PathPrefix("/users").Subrouter()
	users.Use(f.auth)
	users.HandleFunc("", f.list).Methods(http.MethodGet)
	users.HandleFunc("", f.create).Methods(http.MethodPost)
	users.HandleFunc("/{id:[0-9]+}", f.get).Methods(http.MethodGet)
	users.HandleFunc("/{id:[0-9]+}", f.update).Methods(http.MethodPut)
	users.HandleFunc("/{id:[0-9]+}", f.remove).Methods(http.MethodDelete)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeDirectory) lastHeader() http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.headers) == 0 {
		return nil
	}
	return f.headers[len(f.headers)-1]
}

func (f *fakeDirectory) lastBody() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.bodies) == 0 {
		return nil
	}
	return f.bodies[len(f.bodies)-1]
}

func (f *fakeDirectory) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.headers = append(f.headers, r.Header.Clone())
		fail := f.failWith
		f.mu.Unlock()

		if fail != 0 {
			writeJSON(w, fail, map[string]string{"error": http.StatusText(fail)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeDirectory) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		required := f.requireAuth
		f.mu.Unlock()

		if required && r.Header.Get("Authorization") != "Bearer "+fakeToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Missing API key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeDirectory) decode(r *http.Request) map[string]any {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.bodies = append(f.bodies, body)
	f.mu.Unlock()
	return body
}

func (f *fakeDirectory) login(w http.ResponseWriter, r *http.Request) {
	body := f.decode(r)
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)

	switch {
	case password == "":
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing password"})
	case email != fakeEmail || password != fakePassword:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user not found"})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"token": fakeToken})
	}
}

func (f *fakeDirectory) list(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]int, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	totalPages := (len(ids) + f.perPage - 1) / f.perPage
	data := []models.User{}
	for i := (page - 1) * f.perPage; i < len(ids) && i < page*f.perPage; i++ {
		data = append(data, f.users[ids[i]])
	}

	writeJSON(w, http.StatusOK, models.UserPage{
		Page:       page,
		PerPage:    f.perPage,
		Total:      len(ids),
		TotalPages: totalPages,
		Data:       data,
	})
}

func (f *fakeDirectory) get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	f.mu.Lock()
	u, ok := f.users[id]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": u})
}

func (f *fakeDirectory) create(w http.ResponseWriter, r *http.Request) {
	body := f.decode(r)

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.mu.Unlock()

	body["id"] = strconv.Itoa(id)
	body["createdAt"] = "2026-10-18T10:00:00.000Z"
	writeJSON(w, http.StatusCreated, body)
}

func (f *fakeDirectory) update(w http.ResponseWriter, r *http.Request) {
	body := f.decode(r)
	delete(body, "id")
	body["updatedAt"] = "2026-10-18T10:00:00.000Z"
	writeJSON(w, http.StatusOK, body)
}

func (f *fakeDirectory) remove(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	f.mu.Lock()
	delete(f.users, id)
	f.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
