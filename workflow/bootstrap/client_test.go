package bootstrap_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/repo_creator/workflow/bootstrap"
)

func noEnv(string) (string, bool) { return "", false }

func TestNewClient_missing_token_makes_no_calls(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(
		func(http.ResponseWriter, *http.Request) {
			hits.Add(1)
		},
	))
	t.Cleanup(ts.Close)

	for _, server := range []string{
		bootstrap.ServerREST,
		bootstrap.ServerGitHub,
		bootstrap.ServerGitLab,
	} {
		client, err := bootstrap.NewClient(bootstrap.ClientConfig{
			Server:     server,
			APIURL:     ts.URL,
			GitLabHost: ts.URL,
			Lookup:     noEnv,
		})

		assert.Nil(t, client, server)
		require.ErrorIs(t, err, bootstrap.ErrMissingToken, server)
		assert.ErrorContains(
			t, err, bootstrap.DefaultTokenEnv(server), server,
		)
	}

	assert.Zero(t, hits.Load())
}

func TestNewClient_empty_token_is_missing(t *testing.T) {
	t.Parallel()

	_, err := bootstrap.NewClient(bootstrap.ClientConfig{
		Lookup: func(string) (string, bool) { return "", true },
	})

	assert.ErrorIs(t, err, bootstrap.ErrMissingToken)
}

func TestNewClient_servers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		server   string
		tokenEnv string
		wantEnv  string
	}{
		{server: "", wantEnv: bootstrap.GitHubTokenEnv},
		{server: bootstrap.ServerREST, wantEnv: bootstrap.GitHubTokenEnv},
		{server: bootstrap.ServerGitHub, wantEnv: bootstrap.GitHubTokenEnv},
		{server: bootstrap.ServerGitLab, wantEnv: bootstrap.GitLabTokenEnv},
		{
			server:   bootstrap.ServerGitHub,
			tokenEnv: "CUSTOM_TOKEN",
			wantEnv:  "CUSTOM_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.server+tt.tokenEnv, func(t *testing.T) {
			t.Parallel()

			var asked []string

			client, err := bootstrap.NewClient(bootstrap.ClientConfig{
				Server:   tt.server,
				TokenEnv: tt.tokenEnv,
				Lookup: func(key string) (string, bool) {
					asked = append(asked, key)

					return "tok", true
				},
			})

			require.NoError(t, err)
			assert.NotNil(t, client)
			assert.Equal(t, []string{tt.wantEnv}, asked)
		})
	}
}

func TestNewClient_unknown_server(t *testing.T) {
	t.Parallel()

	_, err := bootstrap.NewClient(bootstrap.ClientConfig{
		Server: "bitbucket",
		Lookup: func(string) (string, bool) { return "tok", true },
	})

	assert.ErrorContains(t, err, `unknown server "bitbucket"`)
}

func TestLookupToken(t *testing.T) {
	t.Parallel()

	token, err := bootstrap.LookupToken(
		"TOKEN",
		func(key string) (string, bool) {
			return "secret-" + key, true
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "secret-TOKEN", token)
}

//nolint:paralleltest // mutates the process environment
func TestLoadEnvFile(t *testing.T) {
	const key = "REPO_CREATOR_TEST_TOKEN"

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(
		path, []byte(key+"=from-file\n"), 0o600,
	))

	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	require.NoError(t, bootstrap.LoadEnvFile(path))

	token, err := bootstrap.LookupToken(key, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-file", token)
}

//nolint:paralleltest // mutates the process environment
func TestLoadEnvFile_keeps_existing(t *testing.T) {
	const key = "REPO_CREATOR_TEST_TOKEN_KEEP"

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(
		path, []byte(key+"=from-file\n"), 0o600,
	))

	t.Setenv(key, "from-env")

	require.NoError(t, bootstrap.LoadEnvFile(path))

	token, err := bootstrap.LookupToken(key, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", token)
}

func TestLoadEnvFile_missing(t *testing.T) {
	t.Parallel()

	err := bootstrap.LoadEnvFile(
		filepath.Join(t.TempDir(), "absent.env"),
	)

	assert.ErrorContains(t, err, "loading env file")
}
