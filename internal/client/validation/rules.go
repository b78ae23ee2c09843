// Package validation holds the field rules shared by the login and user
// forms. A rule returns "" for a valid value or a message fit for display.
package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/dmitrijs2005/diradmin/internal/client/models"
)

// MinPasswordLength is the shortest password the login form accepts.
const MinPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern  = regexp.MustCompile(`^[A-Za-z\s]+$`)
)

// Rule checks a single raw field value.
type Rule func(value string) string

// Email requires a local@domain.tld shape without whitespace.
func Email(value string) string {
	if value == "" {
		return "Email is required."
	}
	if !emailPattern.MatchString(value) {
		return "Email is not valid."
	}
	return ""
}

// Password requires at least MinPasswordLength characters.
func Password(value string) string {
	if value == "" {
		return "Password is required."
	}
	if utf8.RuneCountInString(value) < MinPasswordLength {
		return "Password must be at least 6 characters."
	}
	return ""
}

// Name returns a rule for a person's name field. label prefixes the
// messages, e.g. "First name".
func Name(label string) Rule {
	return func(value string) string {
		if value == "" {
			return label + " is required."
		}
		if !namePattern.MatchString(value) {
			return label + " can only contain alphabets and spaces."
		}
		return ""
	}
}

// Errors maps field names to messages. Only failing fields are present.
type Errors map[string]string

// set records msg for field when msg is non-empty.
func (e Errors) set(field, msg string) {
	if msg != "" {
		e[field] = msg
	}
}

// Credentials validates the login form.
func Credentials(c models.Credentials) Errors {
	errs := Errors{}
	errs.set(models.FieldEmail, Email(c.Email))
	errs.set(models.FieldPassword, Password(c.Password))
	return errs
}

var (
	firstName = Name("First name")
	lastName  = Name("Last name")
)

// User validates the editable fields of a directory entry.
func User(u models.User) Errors {
	errs := Errors{}
	errs.set(models.FieldFirstName, firstName(u.FirstName))
	errs.set(models.FieldLastName, lastName(u.LastName))
	errs.set(models.FieldEmail, Email(u.Email))
	return errs
}
