// Package models defines the records exchanged with the directory service
// and edited by the client's forms.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Field names, matching the JSON keys the service uses.
const (
	FieldID        = "id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPassword  = "password"
)

// ErrUnknownField is returned by WithField for a name the record does not have.
var ErrUnknownField = errors.New("unknown field")

// User is a directory entry. ID is nil until the service assigns one; after
// that it never changes.
type User struct {
	ID        *int   `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
}

// UserPage is the envelope returned by GET /users.
type UserPage struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Data       []User `json:"data"`
}

// IntPtr returns a pointer to id.
func IntPtr(id int) *int {
	return &id
}

// HasID reports whether the record was already created by the service.
func (u User) HasID() bool {
	return u.ID != nil
}

// IDValue returns the identifier or 0 for records without one.
func (u User) IDValue() int {
	if u.ID == nil {
		return 0
	}
	return *u.ID
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) String() string {
	if u.ID == nil {
		return fmt.Sprintf("[new] %s (%s)", u.FullName(), u.Email)
	}
	return fmt.Sprintf("[%d] %s (%s)", *u.ID, u.FullName(), u.Email)
}

// WithField returns a copy of u with the named editable field set to value.
// The identifier is not editable.
func (u User) WithField(name, value string) (User, error) {
	switch name {
	case FieldFirstName:
		u.FirstName = value
	case FieldLastName:
		u.LastName = value
	case FieldEmail:
		u.Email = value
	default:
		return u, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return u, nil
}

// UnmarshalJSON accepts the id as a number or as a numeric string; the
// service echoes string ids when a record is created.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(u)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	u.ID = nil
	raw := bytes.TrimSpace(aux.ID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		u.ID = &n
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("invalid user id %s", raw)
	}
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", s, err)
	}
	u.ID = &n
	return nil
}

// Credentials are the values of the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// WithField returns a copy of c with the named field set to value.
func (c Credentials) WithField(name, value string) (Credentials, error) {
	switch name {
	case FieldEmail:
		c.Email = value
	case FieldPassword:
		c.Password = value
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return c, nil
}
