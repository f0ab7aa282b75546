package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

var errAborted = errors.New("aborted")

// confirm is swapped in tests.
var confirm = promptConfirm

// promptConfirm asks a yes/no question on the terminal. Without a terminal
// it refuses, so scripts must pass --yes.
func promptConfirm(title, description string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New("not a terminal: pass --yes to confirm")
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
