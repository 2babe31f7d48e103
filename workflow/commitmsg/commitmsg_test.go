package commitmsg_test

import (
	"testing"

	"github.com/byte4ever/repo_creator/workflow/commitmsg"
	"github.com/byte4ever/repo_creator/workflow/hosting"

	"github.com/stretchr/testify/assert"
)

func TestCreated(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Created readme.md.", commitmsg.Created("readme.md"))
}

func TestModified(t *testing.T) {
	t.Parallel()

	assert.Equal(
		t, "Modified docs/a.md.", commitmsg.Modified("docs/a.md"),
	)
}

func TestFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fw   hosting.FileWrite
		want string
	}{
		{
			name: "create",
			fw:   hosting.FileWrite{Path: "readme.md"},
			want: "Created readme.md.",
		},
		{
			name: "update",
			fw:   hosting.FileWrite{Path: "readme.md", SHA: "abc123"},
			want: "Modified readme.md.",
		},
		{
			name: "explicit message wins",
			fw: hosting.FileWrite{
				Path:    "readme.md",
				Message: "docs: tweak",
			},
			want: "docs: tweak",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, commitmsg.For(tt.fw))
		})
	}
}
