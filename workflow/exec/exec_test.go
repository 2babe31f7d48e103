package exec_test

import (
	"context"
	"testing"

	"github.com/byte4ever/repo_creator/workflow/exec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEx_success(t *testing.T) {
	t.Parallel()

	out, err := exec.Ex(context.Background(), "echo", "hello")

	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}

func TestEx_failure(t *testing.T) {
	t.Parallel()

	_, err := exec.Ex(context.Background(), "false")

	assert.ErrorContains(t, err, "executing command: false")
}

func TestEx_cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exec.Ex(ctx, "echo", "never")

	assert.Error(t, err)
}

func TestLookPath(t *testing.T) {
	t.Parallel()

	assert.True(t, exec.LookPath("echo"))
	assert.False(t, exec.LookPath("definitely-not-a-command-4242"))
}
