package bootstrap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// NamePrompt asks for the repository name.
const NamePrompt = "Type the name of the repo. No spaces allowed."

var (
	// ErrInvalidRepoName is returned when no valid
	// repository name was entered.
	ErrInvalidRepoName = errors.New("invalid repository name")
	// ErrNoInput is returned when input ends before a
	// name was entered.
	ErrNoInput = errors.New("no input")
)

// ValidateRepoName rejects empty names and names
// containing whitespace.
func ValidateRepoName(name string) error {
	if name == "" {
		return fmt.Errorf(
			"%w: name must not be empty", ErrInvalidRepoName,
		)
	}

	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf(
			"%w: %q contains spaces", ErrInvalidRepoName, name,
		)
	}

	return nil
}

// ReadRepoName prompts on w and reads one line per
// attempt from r until a valid name is entered.
// Surrounding whitespace is trimmed before validation.
func ReadRepoName(
	r *bufio.Reader,
	w io.Writer,
	attempts int,
) (string, error) {
	const errCtx = "reading repository name"

	if attempts < 1 {
		attempts = 1
	}

	var lastErr error

	for range attempts {
		if _, err := fmt.Fprintln(w, NamePrompt); err != nil {
			return "", fmt.Errorf("%s: %w", errCtx, err)
		}

		line, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return "", fmt.Errorf("%s: %w", errCtx, readErr)
		}

		name := strings.TrimSpace(line)

		if errors.Is(readErr, io.EOF) && name == "" {
			return "", fmt.Errorf("%s: %w", errCtx, ErrNoInput)
		}

		lastErr = ValidateRepoName(name)
		if lastErr == nil {
			return name, nil
		}

		if _, err := fmt.Fprintln(w, lastErr); err != nil {
			return "", fmt.Errorf("%s: %w", errCtx, err)
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
	}

	return "", fmt.Errorf("%s: %w", errCtx, lastErr)
}
