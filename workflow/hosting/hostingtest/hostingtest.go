// Package hostingtest provides a hosting.Client double that records every
// request and answers with scripted results.
package hostingtest

import (
	"context"
	"net/http"

	"github.com/byte4ever/repo_creator/workflow/hosting"
)

// Client records requests in call order. Each *Func
// field scripts the matching operation; a nil field
// answers with a canned success.
type Client struct {
	// Calls lists operation names in call order.
	Calls []string

	Repos    []hosting.NewRepository
	Files    []hosting.FileWrite
	Issues   []hosting.NewIssue
	Branches []hosting.BranchRef
	Merges   []hosting.NewMergeRequest

	UserFunc   func() (*hosting.User, error)
	RepoFunc   func(hosting.NewRepository) (*hosting.Repository, error)
	FileFunc   func(hosting.FileWrite) (*hosting.FileCommit, error)
	IssueFunc  func(hosting.NewIssue) (*hosting.Issue, error)
	BranchFunc func(hosting.BranchRef) (*hosting.Branch, error)
	MergeFunc  func(hosting.NewMergeRequest) (*hosting.MergeRequest, error)
}

var _ hosting.Client = (*Client)(nil)

// Operation names recorded in Calls.
const (
	OpCurrentUser       = "CurrentUser"
	OpCreateRepository  = "CreateRepository"
	OpPutFile           = "PutFile"
	OpCreateIssue       = "CreateIssue"
	OpCreateBranch      = "CreateBranch"
	OpCreatePullRequest = "CreatePullRequest"
)

// Fail returns the *hosting.StatusError a backend
// reports when op expected want but got status.
func Fail(op string, want int, status int, body string) error {
	return &hosting.StatusError{
		Response: hosting.Response{
			StatusCode: status,
			Body:       []byte(body),
		},
		Op:   op,
		Want: want,
	}
}

// Count returns how many times op was called.
func (c *Client) Count(op string) int {
	n := 0

	for _, call := range c.Calls {
		if call == op {
			n++
		}
	}

	return n
}

// CurrentUser implements hosting.Client.
func (c *Client) CurrentUser(
	_ context.Context,
) (*hosting.User, error) {
	c.Calls = append(c.Calls, OpCurrentUser)

	if c.UserFunc != nil {
		return c.UserFunc()
	}

	return &hosting.User{
		Response: ok(http.StatusOK, `{"login":"alice"}`),
		Login:    "alice",
	}, nil
}

// CreateRepository implements hosting.Client.
func (c *Client) CreateRepository(
	_ context.Context,
	repo hosting.NewRepository,
) (*hosting.Repository, error) {
	c.Calls = append(c.Calls, OpCreateRepository)
	c.Repos = append(c.Repos, repo)

	if c.RepoFunc != nil {
		return c.RepoFunc(repo)
	}

	url := "https://example.test/alice/" + repo.Name

	return &hosting.Repository{
		Response: ok(
			http.StatusCreated,
			`{"html_url":"`+url+`"}`,
		),
		Name:          repo.Name,
		FullName:      "alice/" + repo.Name,
		HTMLURL:       url,
		DefaultBranch: "main",
	}, nil
}

// PutFile implements hosting.Client.
func (c *Client) PutFile(
	_ context.Context,
	fw hosting.FileWrite,
) (*hosting.FileCommit, error) {
	c.Calls = append(c.Calls, OpPutFile)
	c.Files = append(c.Files, fw)

	if c.FileFunc != nil {
		return c.FileFunc(fw)
	}

	status := http.StatusCreated
	if fw.IsUpdate() {
		status = http.StatusOK
	}

	return &hosting.FileCommit{
		Response:  ok(status, `{}`),
		Path:      fw.Path,
		SHA:       "sha-" + fw.Path,
		CommitSHA: "commit-" + fw.Path,
	}, nil
}

// CreateIssue implements hosting.Client.
func (c *Client) CreateIssue(
	_ context.Context,
	issue hosting.NewIssue,
) (*hosting.Issue, error) {
	c.Calls = append(c.Calls, OpCreateIssue)
	c.Issues = append(c.Issues, issue)

	if c.IssueFunc != nil {
		return c.IssueFunc(issue)
	}

	return &hosting.Issue{
		Response: ok(http.StatusCreated, `{"number":1}`),
		Number:   1,
	}, nil
}

// CreateBranch implements hosting.Client.
func (c *Client) CreateBranch(
	_ context.Context,
	ref hosting.BranchRef,
) (*hosting.Branch, error) {
	c.Calls = append(c.Calls, OpCreateBranch)
	c.Branches = append(c.Branches, ref)

	if c.BranchFunc != nil {
		return c.BranchFunc(ref)
	}

	return &hosting.Branch{
		Response: ok(http.StatusCreated, `{}`),
		Ref:      "refs/heads/" + ref.Name,
		SHA:      ref.SHA,
	}, nil
}

// CreatePullRequest implements hosting.Client.
func (c *Client) CreatePullRequest(
	_ context.Context,
	mr hosting.NewMergeRequest,
) (*hosting.MergeRequest, error) {
	c.Calls = append(c.Calls, OpCreatePullRequest)
	c.Merges = append(c.Merges, mr)

	if c.MergeFunc != nil {
		return c.MergeFunc(mr)
	}

	return &hosting.MergeRequest{
		Response: ok(http.StatusCreated, `{"number":2}`),
		Number:   2,
	}, nil
}

func ok(status int, body string) hosting.Response {
	return hosting.Response{
		StatusCode: status,
		Body:       []byte(body),
	}
}
