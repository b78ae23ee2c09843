package cli

import (
	"strings"
)

// LineReader is the subset of *readline.Instance the views need.
type LineReader interface {
	Readline() (string, error)
	ReadlineWithDefault(what string) (string, error)
	ReadPassword(prompt string) ([]byte, error)
	SetPrompt(p string)
}

// GetSimpleText shows prompt and reads one trimmed line.
func GetSimpleText(r LineReader, prompt string) (string, error) {
	r.SetPrompt(prompt)
	line, err := r.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetTextWithDefault shows prompt with current already in the edit buffer,
// so pressing Enter keeps it.
func GetTextWithDefault(r LineReader, prompt, current string) (string, error) {
	r.SetPrompt(prompt)
	line, err := r.ReadlineWithDefault(current)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password without echo.
func GetPassword(r LineReader, prompt string) ([]byte, error) {
	return r.ReadPassword(prompt)
}

// getSimpleText, getTextWithDefault and getPassword are seams for tests.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
	getPassword        = GetPassword
)
