package bootstrap_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/repo_creator/workflow/bootstrap"
)

func TestValidateRepoName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "demo"},
		{name: "dashes and dots", input: "my-repo.v2"},
		{name: "empty", input: "", wantErr: true},
		{name: "space", input: "my repo", wantErr: true},
		{name: "tab", input: "my\trepo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := bootstrap.ValidateRepoName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, bootstrap.ErrInvalidRepoName)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestReadRepoName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		attempts    int
		want        string
		wantPrompts int
	}{
		{
			name:        "first line",
			input:       "demo\n",
			attempts:    3,
			want:        "demo",
			wantPrompts: 1,
		},
		{
			name:        "trims surrounding whitespace",
			input:       "  demo \r\n",
			attempts:    3,
			want:        "demo",
			wantPrompts: 1,
		},
		{
			name:        "no trailing newline",
			input:       "demo",
			attempts:    3,
			want:        "demo",
			wantPrompts: 1,
		},
		{
			name:        "retries after spaces",
			input:       "my repo\ndemo\n",
			attempts:    3,
			want:        "demo",
			wantPrompts: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			got, err := bootstrap.ReadRepoName(
				bufio.NewReader(strings.NewReader(tt.input)),
				&out,
				tt.attempts,
			)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(
				t, tt.wantPrompts,
				strings.Count(out.String(), bootstrap.NamePrompt),
			)
		})
	}
}

func TestReadRepoName_attempts_exhausted(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	_, err := bootstrap.ReadRepoName(
		bufio.NewReader(strings.NewReader("a b\nc d\ne f\ng\n")),
		&out,
		3,
	)

	require.ErrorIs(t, err, bootstrap.ErrInvalidRepoName)
	assert.ErrorContains(t, err, `"e f"`)
	assert.Equal(t, 3, strings.Count(out.String(), bootstrap.NamePrompt))
}

func TestReadRepoName_end_of_input(t *testing.T) {
	t.Parallel()

	_, err := bootstrap.ReadRepoName(
		bufio.NewReader(strings.NewReader("")),
		&bytes.Buffer{},
		3,
	)

	assert.ErrorIs(t, err, bootstrap.ErrNoInput)
}

func TestReadRepoName_invalid_then_end_of_input(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	_, err := bootstrap.ReadRepoName(
		bufio.NewReader(strings.NewReader("a b")),
		&out,
		3,
	)

	require.ErrorIs(t, err, bootstrap.ErrInvalidRepoName)
	assert.Equal(t, 1, strings.Count(out.String(), bootstrap.NamePrompt))
}
