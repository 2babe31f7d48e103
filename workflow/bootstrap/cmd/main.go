// Command repo_creator bootstraps a repository on a
// hosting service: it creates the repository, adds a
// README and its own source, opens an issue, branches,
// edits the README on the branch and opens a merge
// request.
//
// Any aborted run, including a rejected repository
// creation or source upload, logs the failure and exits
// with status 1 instead of returning with status 0.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"

	"github.com/byte4ever/repo_creator/templating"
	"github.com/byte4ever/repo_creator/workflow/bootstrap"
	"github.com/byte4ever/repo_creator/workflow/browser"
)

// sliceFlag implements flag.Value for repeated
// --flag=val usage.
type sliceFlag []string

// String returns the values joined by commas.
func (s *sliceFlag) String() string {
	if s == nil {
		return ""
	}

	return strings.Join(*s, ",")
}

// Set appends a value to the slice.
func (s *sliceFlag) Set(val string) error {
	*s = append(*s, val)

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // CLI flag setup is inherently long
func run() error {
	const errCtx = "running repo_creator"

	// Hosting server flags.
	server := flag.String(
		"server", bootstrap.ServerREST,
		"Hosting backend: rest, github, or gitlab",
	)
	apiURL := flag.String(
		"api_url", "",
		"API root for the rest and github backends",
	)
	ghEnterprise := flag.String(
		"github_enterprise_host", "",
		"GitHub Enterprise hostname",
	)
	glHost := flag.String(
		"gitlab_host", "",
		"GitLab instance URL",
	)

	// Credential flags.
	tokenEnv := flag.String(
		"token_env", "",
		"Environment variable holding the access token "+
			"(default GITHUB_ACCESS_TOKEN, "+
			"GITLAB_ACCESS_TOKEN for gitlab)",
	)
	envFile := flag.String(
		"env_file", "",
		"Optional dotenv file loaded before reading "+
			"the token",
	)

	// Workflow flags.
	workflow := flag.String(
		"workflow", "",
		"YAML file overriding the workflow texts",
	)

	var vars sliceFlag

	flag.Var(
		&vars,
		"var",
		"Placeholder NAME=value for workflow texts "+
			"(repeatable)",
	)

	noBrowser := flag.Bool(
		"no_browser", false,
		"Do not open the repository in a browser",
	)
	logLevel := flag.String(
		"log_level", "info",
		"Log level: debug, info, warn, or error",
	)

	flag.Parse()

	if err := setupLogging(*logLevel); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if *envFile != "" {
		if err := bootstrap.LoadEnvFile(*envFile); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	client, err := bootstrap.NewClient(bootstrap.ClientConfig{
		Server:         *server,
		TokenEnv:       *tokenEnv,
		APIURL:         *apiURL,
		EnterpriseHost: *ghEnterprise,
		GitLabHost:     *glHost,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	texts, err := bootstrap.LoadTexts(*workflow)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	extra, err := templating.ParseVars(vars)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	cfg := bootstrap.Config{
		Client: client,
		In:     os.Stdin,
		Out:    os.Stdout,
		Texts:  texts,
		Vars:   extra,
	}

	if !*noBrowser {
		cfg.Browser = browser.System{}
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt,
	)
	defer stop()

	rep, runErr := bootstrap.Run(ctx, cfg)
	if rep != nil {
		rep.Render(os.Stdout)
	}

	if runErr != nil {
		return fmt.Errorf("%s: %w", errCtx, runErr)
	}

	return nil
}

// setupLogging installs a text handler on stderr that
// tags every record with a fresh run id.
func setupLogging(level string) error {
	var lvl slog.Level

	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	runID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating run id: %w", err)
	}

	handler := slog.NewTextHandler(
		os.Stderr,
		&slog.HandlerOptions{Level: lvl},
	)

	slog.SetDefault(
		slog.New(handler).With("run", runID.String()),
	)

	return nil
}
