package bootstrap

import (
	"fmt"
	"net/http"

	"github.com/byte4ever/repo_creator/workflow/hosting"
	"github.com/byte4ever/repo_creator/workflow/hosting/github"
	"github.com/byte4ever/repo_creator/workflow/hosting/gitlab"
	"github.com/byte4ever/repo_creator/workflow/hosting/rest"
)

// Supported hosting servers.
const (
	ServerREST   = "rest"
	ServerGitHub = "github"
	ServerGitLab = "gitlab"
)

// ClientConfig selects and configures a hosting
// backend.
type ClientConfig struct {
	// Server is one of ServerREST, ServerGitHub or
	// ServerGitLab. Empty means ServerREST.
	Server string
	// TokenEnv names the variable holding the access
	// token. Empty means the server's default.
	TokenEnv string
	// APIURL overrides the rest and github API root.
	APIURL string
	// EnterpriseHost is the GitHub Enterprise host.
	EnterpriseHost string
	// GitLabHost is the GitLab instance URL.
	GitLabHost string
	// HTTPClient is passed to the backend; nil keeps
	// the backend default.
	HTTPClient *http.Client
	// Lookup resolves environment variables; nil uses
	// os.LookupEnv.
	Lookup LookupFunc
}

// DefaultTokenEnv returns the token variable used by
// server when none is configured.
func DefaultTokenEnv(server string) string {
	if server == ServerGitLab {
		return GitLabTokenEnv
	}

	return GitHubTokenEnv
}

// NewClient resolves the access token, then builds the
// backend for cc.Server. A missing token fails with
// ErrMissingToken before any backend exists.
//
// Pattern: Factory -- selects the backend at runtime.
func NewClient(cc ClientConfig) (hosting.Client, error) {
	const errCtx = "creating hosting client"

	server := cc.Server
	if server == "" {
		server = ServerREST
	}

	envVar := cc.TokenEnv
	if envVar == "" {
		envVar = DefaultTokenEnv(server)
	}

	token, err := LookupToken(envVar, cc.Lookup)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var client hosting.Client

	switch server {
	case ServerREST:
		client, err = rest.NewClient(rest.Config{
			BaseURL:     cc.APIURL,
			AccessToken: token,
			HTTPClient:  cc.HTTPClient,
		})

	case ServerGitHub:
		client, err = github.NewClient(github.Config{
			AccessToken:    token,
			EnterpriseHost: cc.EnterpriseHost,
			BaseURL:        cc.APIURL,
			HTTPClient:     cc.HTTPClient,
		})

	case ServerGitLab:
		client, err = gitlab.NewClient(gitlab.Config{
			Host:        cc.GitLabHost,
			AccessToken: token,
			HTTPClient:  cc.HTTPClient,
		})

	default:
		return nil, fmt.Errorf(
			"%s: unknown server %q", errCtx, server,
		)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return client, nil
}
