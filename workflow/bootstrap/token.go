package bootstrap

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Token environment variables per server.
const (
	GitHubTokenEnv = "GITHUB_ACCESS_TOKEN"
	GitLabTokenEnv = "GITLAB_ACCESS_TOKEN"
)

// ErrMissingToken is returned when the access token
// variable is unset or empty.
var ErrMissingToken = errors.New("missing access token")

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// LookupToken reads the access token from envVar.
// A nil lookup uses os.LookupEnv.
func LookupToken(envVar string, lookup LookupFunc) (string, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	token, ok := lookup(envVar)
	if !ok || token == "" {
		return "", fmt.Errorf(
			"%w: set the %s environment variable",
			ErrMissingToken, envVar,
		)
	}

	return token, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file
// into the process environment. Variables already set
// are left untouched.
func LoadEnvFile(path string) error {
	const errCtx = "loading env file"

	envMap, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	for key, val := range envMap {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}

		if err := os.Setenv(key, val); err != nil {
			return fmt.Errorf("%s: set %s: %w", errCtx, key, err)
		}
	}

	return nil
}
