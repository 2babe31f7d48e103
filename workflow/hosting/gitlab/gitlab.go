package gitlab

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/byte4ever/repo_creator/workflow/commitmsg"
	"github.com/byte4ever/repo_creator/workflow/hosting"
)

const (
	// DefaultHost is the public GitLab instance.
	DefaultHost = "https://gitlab.com"
	// DefaultBranch is used for writes that name no
	// branch.
	DefaultBranch = "main"
	// DefaultUserAgent identifies this client.
	DefaultUserAgent = "repo_creator"
)

// Config holds the settings needed to create a GitLab
// client.
type Config struct {
	// Host is the base URL of the GitLab instance
	// (e.g. "https://gitlab.com").
	Host string
	// AccessToken is a personal or project access
	// token used for authentication.
	AccessToken string
	// DefaultBranch names the branch new projects
	// start on. Defaults to DefaultBranch.
	DefaultBranch string
	// HTTPClient is the underlying transport; nil
	// keeps the client-go default.
	HTTPClient *http.Client
}

// Client drives GitLab through client-go.
//
// Pattern: Strategy -- implements hosting.Client.
type Client struct {
	client        *gl.Client
	defaultBranch string
}

// NewClient validates cfg and returns a Client. Retries
// are disabled: every call is sent exactly once.
func NewClient(cfg Config) (*Client, error) {
	const errCtx = "creating gitlab client"

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}

	branch := cfg.DefaultBranch
	if branch == "" {
		branch = DefaultBranch
	}

	opts := []gl.ClientOptionFunc{
		gl.WithBaseURL(host),
		gl.WithCustomRetryMax(0),
	}

	if cfg.HTTPClient != nil {
		opts = append(opts, gl.WithHTTPClient(cfg.HTTPClient))
	}

	client, err := gl.NewClient(cfg.AccessToken, opts...)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: new client: %w", errCtx, err,
		)
	}

	client.UserAgent = DefaultUserAgent

	return &Client{
		client:        client,
		defaultBranch: branch,
	}, nil
}

// CurrentUser returns the authenticated user; Login
// is the GitLab username.
func (c *Client) CurrentUser(
	ctx context.Context,
) (*hosting.User, error) {
	user, resp, err := c.client.Users.CurrentUser(
		gl.WithContext(ctx),
	)

	r, err := outcome(
		"get current user", resp, user, err, http.StatusOK,
	)
	if err != nil {
		return nil, err
	}

	return &hosting.User{
		Response: r,
		Login:    user.Username,
	}, nil
}

// CreateRepository creates a project in the user
// namespace.
func (c *Client) CreateRepository(
	ctx context.Context,
	repo hosting.NewRepository,
) (*hosting.Repository, error) {
	project, resp, err := c.client.Projects.CreateProject(
		&gl.CreateProjectOptions{
			Name:          gl.Ptr(repo.Name),
			Description:   gl.Ptr(repo.Description),
			DefaultBranch: gl.Ptr(c.defaultBranch),
		},
		gl.WithContext(ctx),
	)

	r, err := outcome(
		"create repository", resp, project, err,
		http.StatusCreated,
	)
	if err != nil {
		return nil, err
	}

	slog.Info("created project", "url", project.WebURL)

	return &hosting.Repository{
		Response:      r,
		Name:          project.Name,
		FullName:      project.PathWithNamespace,
		HTMLURL:       project.WebURL,
		DefaultBranch: project.DefaultBranch,
	}, nil
}

// PutFile creates or updates a file, then reads the
// branch head to report the resulting commit.
func (c *Client) PutFile(
	ctx context.Context,
	fw hosting.FileWrite,
) (*hosting.FileCommit, error) {
	pid := projectID(fw.Owner, fw.Repo)

	branch := fw.Branch
	if branch == "" {
		branch = c.defaultBranch
	}

	var (
		info *gl.FileInfo
		resp *gl.Response
		err  error
	)

	op := "create file"
	want := http.StatusCreated

	if fw.IsUpdate() {
		op = "update file"
		want = http.StatusOK

		info, resp, err = c.client.RepositoryFiles.UpdateFile(
			pid, fw.Path,
			&gl.UpdateFileOptions{
				Branch:        gl.Ptr(branch),
				Encoding:      gl.Ptr("base64"),
				Content:       gl.Ptr(hosting.EncodeContent(fw.Content)),
				CommitMessage: gl.Ptr(commitmsg.For(fw)),
				LastCommitID:  gl.Ptr(fw.SHA),
			},
			gl.WithContext(ctx),
		)
	} else {
		info, resp, err = c.client.RepositoryFiles.CreateFile(
			pid, fw.Path,
			&gl.CreateFileOptions{
				Branch:        gl.Ptr(branch),
				Encoding:      gl.Ptr("base64"),
				Content:       gl.Ptr(hosting.EncodeContent(fw.Content)),
				CommitMessage: gl.Ptr(commitmsg.For(fw)),
			},
			gl.WithContext(ctx),
		)
	}

	r, err := outcome(op, resp, info, err, want)
	if err != nil {
		return nil, err
	}

	head, resp, err := c.client.Branches.GetBranch(
		pid, branch, gl.WithContext(ctx),
	)
	if _, err := outcome(
		"get branch head", resp, head, err, http.StatusOK,
	); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	commitID := ""
	if head.Commit != nil {
		commitID = head.Commit.ID
	}

	return &hosting.FileCommit{
		Response:  r,
		Path:      info.FilePath,
		SHA:       commitID,
		CommitSHA: commitID,
	}, nil
}

// CreateIssue opens an issue.
func (c *Client) CreateIssue(
	ctx context.Context,
	issue hosting.NewIssue,
) (*hosting.Issue, error) {
	created, resp, err := c.client.Issues.CreateIssue(
		projectID(issue.Owner, issue.Repo),
		&gl.CreateIssueOptions{
			Title:       gl.Ptr(issue.Title),
			Description: gl.Ptr(issue.Body),
		},
		gl.WithContext(ctx),
	)

	r, err := outcome(
		"create issue", resp, created, err,
		http.StatusCreated,
	)
	if err != nil {
		return nil, err
	}

	return &hosting.Issue{
		Response: r,
		Number:   int(created.IID),
		HTMLURL:  created.WebURL,
	}, nil
}

// CreateBranch creates a branch using ref.SHA as the
// source ref.
func (c *Client) CreateBranch(
	ctx context.Context,
	ref hosting.BranchRef,
) (*hosting.Branch, error) {
	created, resp, err := c.client.Branches.CreateBranch(
		projectID(ref.Owner, ref.Repo),
		&gl.CreateBranchOptions{
			Branch: gl.Ptr(ref.Name),
			Ref:    gl.Ptr(ref.SHA),
		},
		gl.WithContext(ctx),
	)

	r, err := outcome(
		"create branch", resp, created, err,
		http.StatusCreated,
	)
	if err != nil {
		return nil, err
	}

	sha := ""
	if created.Commit != nil {
		sha = created.Commit.ID
	}

	return &hosting.Branch{
		Response: r,
		Ref:      "refs/heads/" + created.Name,
		SHA:      sha,
	}, nil
}

// CreatePullRequest opens a merge request from
// mr.Head into mr.Base.
func (c *Client) CreatePullRequest(
	ctx context.Context,
	mr hosting.NewMergeRequest,
) (*hosting.MergeRequest, error) {
	created, resp, err := c.client.MergeRequests.CreateMergeRequest(
		projectID(mr.Owner, mr.Repo),
		&gl.CreateMergeRequestOptions{
			Title:        gl.Ptr(mr.Title),
			Description:  gl.Ptr(mr.Body),
			SourceBranch: gl.Ptr(mr.Head),
			TargetBranch: gl.Ptr(mr.Base),
		},
		gl.WithContext(ctx),
	)

	r, err := outcome(
		"create merge request", resp, created, err,
		http.StatusCreated,
	)
	if err != nil {
		return nil, err
	}

	slog.Info("created merge request", "url", created.WebURL)

	return &hosting.MergeRequest{
		Response: r,
		Number:   int(created.IID),
		HTMLURL:  created.WebURL,
	}, nil
}

// projectID joins namespace and project path.
func projectID(owner string, repo string) string {
	return owner + "/" + repo
}

// outcome converts a client-go call result into a
// hosting.Response, re-marshalling the decoded value
// or the API error as the body.
func outcome(
	op string,
	resp *gl.Response,
	value any,
	callErr error,
	want int,
) (hosting.Response, error) {
	if resp == nil || resp.Response == nil {
		if callErr == nil {
			callErr = errors.New("no response")
		}

		return hosting.Response{}, fmt.Errorf(
			"%s: %w", op, callErr,
		)
	}

	r := hosting.Response{StatusCode: resp.StatusCode}

	var apiErr *gl.ErrorResponse

	switch {
	case errors.As(callErr, &apiErr):
		r.Body = marshal(map[string]string{
			"message": apiErr.Message,
		})
	case callErr == nil:
		r.Body = marshal(value)
	}

	if err := r.Expect(op, want); err != nil {
		slog.Warn(
			"gitlab response",
			"op", op,
			"status", r.StatusCode,
			"body", string(r.Body),
		)

		return r, err
	}

	if callErr != nil {
		return r, fmt.Errorf("%s: %w", op, callErr)
	}

	return r, nil
}

func marshal(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn(
			"cannot marshal response body",
			"error", err,
		)

		return nil
	}

	return raw
}
