package util

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// IsTerminal reports whether stdin is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PromptSecret prints prompt to stderr and reads a line from the terminal without echoing it
func PromptSecret(prompt string) (string, error) {
	//nolint:forbidigo // Secret input requires direct terminal I/O
	fmt.Fprint(os.Stderr, prompt)

	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", errors.Wrap(err, "failed to read secret from terminal")
	}

	//nolint:forbidigo // Secret input requires direct terminal I/O
	fmt.Fprintln(os.Stderr) // New line after hidden input

	return string(secret), nil
}
