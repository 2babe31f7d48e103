// Package gitlab implements hosting.Client for GitLab using client-go.
//
// GitLab addresses projects by "namespace/path", so owner and repo are joined
// into the project id. File writes carry no content hash on GitLab; the commit
// id of the branch head right after a write stands in for it and is sent back
// as last_commit_id when the file is updated.
package gitlab
