// Package exec runs local helper commands, such as the system browser
// launcher, and logs their output.
package exec

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Ex executes the named command and returns combined
// stdout+stderr output.
func Ex(
	ctx context.Context,
	name string,
	arg ...string,
) (string, error) {
	const errCtx = "executing command"

	slog.Debug(
		"executing",
		"cmd", name,
		"args", strings.Join(arg, " "),
	)

	cmd := exec.CommandContext(ctx, name, arg...)

	by, err := cmd.CombinedOutput()
	if len(by) > 0 {
		slog.Debug("output", "result", string(by))
	}

	if err != nil {
		return string(by), fmt.Errorf(
			"%s: %s %s: %w",
			errCtx, name, strings.Join(arg, " "), err,
		)
	}

	return string(by), nil
}

// LookPath reports whether name resolves to an
// executable in PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}
