package commitmsg

import (
	"strings"

	"github.com/byte4ever/repo_creator/workflow/hosting"
)

const (
	created  = "Created"
	modified = "Modified"
)

// Created returns the commit message for a new file.
func Created(path string) string {
	return build(created, path)
}

// Modified returns the commit message for an updated
// file.
func Modified(path string) string {
	return build(modified, path)
}

// For returns fw.Message when set, otherwise the
// generated message matching the kind of write.
func For(fw hosting.FileWrite) string {
	if fw.Message != "" {
		return fw.Message
	}

	if fw.IsUpdate() {
		return Modified(fw.Path)
	}

	return Created(fw.Path)
}

func build(verb string, path string) string {
	var sb strings.Builder

	sb.WriteString(verb)
	sb.WriteByte(' ')
	sb.WriteString(path)
	sb.WriteByte('.')

	return sb.String()
}
