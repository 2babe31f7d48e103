// Package browser opens URLs in the user's web browser through the platform
// launcher command.
package browser

import (
	"context"
	"fmt"
	"runtime"

	"github.com/byte4ever/repo_creator/workflow/exec"
)

// Opener opens a URL for the user.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a plain function to the Opener
// interface.
type OpenerFunc func(ctx context.Context, url string) error

// Open delegates to the wrapped function.
func (f OpenerFunc) Open(ctx context.Context, url string) error {
	return f(ctx, url)
}

// System opens URLs with the operating system's
// launcher (open, xdg-open or rundll32).
type System struct {
	// GOOS overrides runtime.GOOS when set.
	GOOS string
}

// Open launches the browser on url.
func (s System) Open(ctx context.Context, url string) error {
	const errCtx = "opening browser"

	name, args, err := Command(s.goos(), url)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if !exec.LookPath(name) {
		return fmt.Errorf(
			"%s: launcher %q not found", errCtx, name,
		)
	}

	if _, err := exec.Ex(ctx, name, args...); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func (s System) goos() string {
	if s.GOOS != "" {
		return s.GOOS
	}

	return runtime.GOOS
}

// Command returns the launcher command line for goos.
func Command(goos string, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32",
			[]string{"url.dll,FileProtocolHandler", url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	default:
		return "", nil, fmt.Errorf(
			"unsupported platform %q", goos,
		)
	}
}
