// Package cli is the interactive terminal front end of diradmin.
//
// App is the shell: it seeds the authenticated flag from the session store
// and runs a REPL that routes commands either to the login view or, once a
// token is present, to the user-list view. The list view delegates to the
// detail and form views. Every view reads input through a LineReader
// (readline in production, a scripted fake in tests) and writes to an
// io.Writer.
package cli
