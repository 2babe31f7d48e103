package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	gh "github.com/google/go-github/v68/github"

	"github.com/byte4ever/repo_creator/workflow/commitmsg"
	"github.com/byte4ever/repo_creator/workflow/hosting"
)

// DefaultUserAgent identifies this client.
const DefaultUserAgent = "repo_creator"

// Config holds the settings needed to create a GitHub
// client.
type Config struct {
	// AccessToken is a personal access token or
	// GitHub App token used for authentication.
	AccessToken string
	// EnterpriseHost is an optional GitHub Enterprise
	// hostname (e.g. "git.corp.example.com"). Leave
	// empty for github.com.
	EnterpriseHost string
	// BaseURL overrides the API root verbatim. It
	// takes precedence over EnterpriseHost.
	BaseURL string
	// UserAgent defaults to DefaultUserAgent.
	UserAgent string
	// HTTPClient is the underlying transport; nil
	// uses http.DefaultClient.
	HTTPClient *http.Client
}

// Client drives GitHub through go-github.
//
// Pattern: Strategy -- implements hosting.Client.
type Client struct {
	client *gh.Client
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config) (*Client, error) {
	const errCtx = "creating github client"

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	client := gh.NewClient(cfg.HTTPClient).
		WithAuthToken(cfg.AccessToken)

	switch {
	case cfg.BaseURL != "":
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}

		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: base url: %w", errCtx, err,
			)
		}

		client.BaseURL = u

	case cfg.EnterpriseHost != "":
		baseURL := "https://" +
			cfg.EnterpriseHost + "/api/v3/"
		uploadURL := "https://" +
			cfg.EnterpriseHost + "/api/uploads/"

		var err error

		client, err = client.WithEnterpriseURLs(
			baseURL, uploadURL,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: enterprise urls: %w",
				errCtx, err,
			)
		}
	}

	client.UserAgent = cfg.UserAgent
	if client.UserAgent == "" {
		client.UserAgent = DefaultUserAgent
	}

	return &Client{client: client}, nil
}

// CurrentUser returns the authenticated user.
func (c *Client) CurrentUser(
	ctx context.Context,
) (*hosting.User, error) {
	user, resp, err := c.client.Users.Get(ctx, "")

	r, err := outcome(
		"get current user", resp, user, err, http.StatusOK,
	)
	if err != nil {
		return nil, err
	}

	return &hosting.User{
		Response: r,
		Login:    user.GetLogin(),
	}, nil
}

// CreateRepository creates a repository for the
// authenticated user.
func (c *Client) CreateRepository(
	ctx context.Context,
	repo hosting.NewRepository,
) (*hosting.Repository, error) {
	created, resp, err := c.client.Repositories.Create(
		ctx, "", &gh.Repository{
			Name:        gh.Ptr(repo.Name),
			Description: gh.Ptr(repo.Description),
		},
	)

	r, err := outcome(
		"create repository", resp, created, err,
		http.StatusCreated,
	)
	if err != nil {
		return nil, err
	}

	slog.Info(
		"created repository",
		"url", created.GetHTMLURL(),
	)

	return &hosting.Repository{
		Response:      r,
		Name:          created.GetName(),
		FullName:      created.GetFullName(),
		HTMLURL:       created.GetHTMLURL(),
		DefaultBranch: created.GetDefaultBranch(),
	}, nil
}

// PutFile creates or updates a file through the
// contents API. go-github base64-encodes Content.
func (c *Client) PutFile(
	ctx context.Context,
	fw hosting.FileWrite,
) (*hosting.FileCommit, error) {
	opts := &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(commitmsg.For(fw)),
		Content: []byte(fw.Content),
	}

	if fw.Branch != "" {
		opts.Branch = gh.Ptr(fw.Branch)
	}

	var (
		res  *gh.RepositoryContentResponse
		resp *gh.Response
		err  error
	)

	op := "create file"
	want := http.StatusCreated

	if fw.IsUpdate() {
		op = "update file"
		want = http.StatusOK
		opts.SHA = gh.Ptr(fw.SHA)

		res, resp, err = c.client.Repositories.UpdateFile(
			ctx, fw.Owner, fw.Repo, fw.Path, opts,
		)
	} else {
		res, resp, err = c.client.Repositories.CreateFile(
			ctx, fw.Owner, fw.Repo, fw.Path, opts,
		)
	}

	r, err := outcome(op, resp, res, err, want)
	if err != nil {
		return nil, err
	}

	return &hosting.FileCommit{
		Response:  r,
		Path:      res.GetContent().GetPath(),
		SHA:       res.GetContent().GetSHA(),
		CommitSHA: res.Commit.GetSHA(),
	}, nil
}

// CreateIssue opens an issue.
func (c *Client) CreateIssue(
	ctx context.Context,
	issue hosting.NewIssue,
) (*hosting.Issue, error) {
	created, resp, err := c.client.Issues.Create(
		ctx, issue.Owner, issue.Repo, &gh.IssueRequest{
			Title: gh.Ptr(issue.Title),
			Body:  gh.Ptr(issue.Body),
		},
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
		Number:   created.GetNumber(),
		HTMLURL:  created.GetHTMLURL(),
	}, nil
}

// CreateBranch creates refs/heads/<name> at ref.SHA.
func (c *Client) CreateBranch(
	ctx context.Context,
	ref hosting.BranchRef,
) (*hosting.Branch, error) {
	created, resp, err := c.client.Git.CreateRef(
		ctx, ref.Owner, ref.Repo, &gh.Reference{
			Ref: gh.Ptr("refs/heads/" + ref.Name),
			Object: &gh.GitObject{
				SHA: gh.Ptr(ref.SHA),
			},
		},
	)

	r, err := outcome(
		"create branch", resp, created, err,
		http.StatusCreated,
	)
	if err != nil {
		return nil, err
	}

	return &hosting.Branch{
		Response: r,
		Ref:      created.GetRef(),
		SHA:      created.GetObject().GetSHA(),
	}, nil
}

// CreatePullRequest opens a pull request from mr.Head
// into mr.Base.
func (c *Client) CreatePullRequest(
	ctx context.Context,
	mr hosting.NewMergeRequest,
) (*hosting.MergeRequest, error) {
	created, resp, err := c.client.PullRequests.Create(
		ctx, mr.Owner, mr.Repo, &gh.NewPullRequest{
			Title: gh.Ptr(mr.Title),
			Head:  gh.Ptr(mr.Head),
			Base:  gh.Ptr(mr.Base),
			Body:  gh.Ptr(mr.Body),
		},
	)

	r, err := outcome(
		"create pull request", resp, created, err,
		http.StatusCreated,
	)
	if err != nil {
		return nil, err
	}

	slog.Info(
		"created pull request",
		"url", created.GetHTMLURL(),
	)

	return &hosting.MergeRequest{
		Response: r,
		Number:   created.GetNumber(),
		HTMLURL:  created.GetHTMLURL(),
	}, nil
}

// outcome converts a go-github call result into a
// hosting.Response. go-github consumes the body, so
// the decoded value (or the API error) is marshalled
// back to JSON.
func outcome(
	op string,
	resp *gh.Response,
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

	var apiErr *gh.ErrorResponse

	switch {
	case errors.As(callErr, &apiErr):
		r.Body = marshal(apiErr)
	case callErr == nil:
		r.Body = marshal(value)
	}

	if err := r.Expect(op, want); err != nil {
		slog.Warn(
			"github response",
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
