package hosting

import "context"

// Pattern: Strategy -- swap hosting platform without
// changing the bootstrap workflow.

// Client drives a source-code hosting service on
// behalf of one authenticated account.
type Client interface {
	// CurrentUser returns the authenticated account.
	CurrentUser(ctx context.Context) (*User, error)

	// CreateRepository creates a repository owned by
	// the authenticated account.
	CreateRepository(
		ctx context.Context,
		repo NewRepository,
	) (*Repository, error)

	// PutFile creates a file, or updates it when
	// fw.SHA holds the prior content hash.
	PutFile(
		ctx context.Context,
		fw FileWrite,
	) (*FileCommit, error)

	// CreateIssue opens an issue.
	CreateIssue(
		ctx context.Context,
		issue NewIssue,
	) (*Issue, error)

	// CreateBranch creates a branch pointing at a
	// commit.
	CreateBranch(
		ctx context.Context,
		ref BranchRef,
	) (*Branch, error)

	// CreatePullRequest opens a merge request.
	CreatePullRequest(
		ctx context.Context,
		mr NewMergeRequest,
	) (*MergeRequest, error)
}

// NewRepository describes a repository to create.
type NewRepository struct {
	Name        string
	Description string
}

// FileWrite describes a file creation or update.
type FileWrite struct {
	Owner string
	Repo  string
	// Path is the file path inside the repository.
	Path string
	// Content is the plain text of the file. Backends
	// base64-encode it on the wire.
	Content string
	// Message is the commit message. Backends fall
	// back to a generated message when empty.
	Message string
	// Branch is optional; empty targets the default
	// branch.
	Branch string
	// SHA is the prior content hash. Setting it turns
	// the write into an update.
	SHA string
}

// IsUpdate reports whether fw modifies an existing
// file.
func (fw FileWrite) IsUpdate() bool {
	return fw.SHA != ""
}

// BranchRef describes a branch to create.
type BranchRef struct {
	Owner string
	Repo  string
	// Name is the short branch name (without the
	// refs/heads/ prefix).
	Name string
	// SHA is the commit the branch points at.
	SHA string
}

// NewIssue describes an issue to open.
type NewIssue struct {
	Owner string
	Repo  string
	Title string
	Body  string
}

// NewMergeRequest describes a merge request to open
// from Head into Base.
type NewMergeRequest struct {
	Owner string
	Repo  string
	Head  string
	Base  string
	Title string
	Body  string
}

// User is the authenticated account.
type User struct {
	Response

	Login string
}

// Repository is a created repository.
type Repository struct {
	Response

	Name          string
	FullName      string
	HTMLURL       string
	DefaultBranch string
}

// FileCommit is the outcome of a file write.
type FileCommit struct {
	Response

	// Path is the repository path of the written
	// file.
	Path string
	// SHA is the content hash to pass back when
	// updating the file.
	SHA string
	// CommitSHA identifies the commit created by the
	// write.
	CommitSHA string
}

// Issue is an opened issue.
type Issue struct {
	Response

	Number  int
	HTMLURL string
}

// Branch is a created branch.
type Branch struct {
	Response

	Ref string
	SHA string
}

// MergeRequest is an opened merge request.
type MergeRequest struct {
	Response

	Number  int
	HTMLURL string
}
