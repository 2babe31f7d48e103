package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/repo_creator/workflow/commitmsg"
	"github.com/byte4ever/repo_creator/workflow/hosting"
)

const (
	// DefaultBaseURL is the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com"
	// DefaultUserAgent identifies this client.
	DefaultUserAgent = "repo_creator"
)

// Config holds the settings needed to create a REST
// client.
type Config struct {
	// BaseURL is the API root. Defaults to
	// DefaultBaseURL.
	BaseURL string
	// AccessToken is sent as a bearer token.
	AccessToken string
	// UserAgent defaults to DefaultUserAgent.
	UserAgent string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Client talks to the REST API.
//
// Pattern: Strategy -- implements hosting.Client.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	http      *http.Client
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config) (*Client, error) {
	const errCtx = "creating rest client"

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf(
			"%s: base url: %w", errCtx, err,
		)
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	return &Client{
		baseURL:   strings.TrimSuffix(base, "/"),
		token:     cfg.AccessToken,
		userAgent: ua,
		http:      hc,
	}, nil
}

type userBody struct {
	Login string `json:"login"`
}

type repoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type repoBody struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	HTMLURL       string `json:"html_url"`
	DefaultBranch string `json:"default_branch"`
}

type contentsRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

type contentsBody struct {
	Content struct {
		Path string `json:"path"`
		SHA  string `json:"sha"`
	} `json:"content"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

type issueRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type numberedBody struct {
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
}

type refRequest struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

type refBody struct {
	Ref    string `json:"ref"`
	Object struct {
		SHA string `json:"sha"`
	} `json:"object"`
}

type pullRequest struct {
	Title string `json:"title"`
	Head  string `json:"head"`
	Base  string `json:"base"`
	Body  string `json:"body"`
}

// CurrentUser calls GET /user.
func (c *Client) CurrentUser(
	ctx context.Context,
) (*hosting.User, error) {
	const op = "get current user"

	var body userBody

	resp, err := c.call(
		ctx, op, http.MethodGet, "/user", nil,
		http.StatusOK, &body,
	)
	if err != nil {
		return nil, err
	}

	return &hosting.User{
		Response: resp,
		Login:    body.Login,
	}, nil
}

// CreateRepository calls POST /user/repos.
func (c *Client) CreateRepository(
	ctx context.Context,
	repo hosting.NewRepository,
) (*hosting.Repository, error) {
	const op = "create repository"

	var body repoBody

	resp, err := c.call(
		ctx, op, http.MethodPost, "/user/repos",
		repoRequest{
			Name:        repo.Name,
			Description: repo.Description,
		},
		http.StatusCreated, &body,
	)
	if err != nil {
		return nil, err
	}

	return &hosting.Repository{
		Response:      resp,
		Name:          body.Name,
		FullName:      body.FullName,
		HTMLURL:       body.HTMLURL,
		DefaultBranch: body.DefaultBranch,
	}, nil
}

// PutFile calls PUT /repos/{owner}/{repo}/contents/{path}.
// Creation expects 201, update (fw.SHA set) expects 200.
func (c *Client) PutFile(
	ctx context.Context,
	fw hosting.FileWrite,
) (*hosting.FileCommit, error) {
	op := "create file"
	want := http.StatusCreated

	if fw.IsUpdate() {
		op = "update file"
		want = http.StatusOK
	}

	var body contentsBody

	resp, err := c.call(
		ctx, op, http.MethodPut,
		repoPath(fw.Owner, fw.Repo, "contents", filePath(fw.Path)),
		contentsRequest{
			Message: commitmsg.For(fw),
			Content: hosting.EncodeContent(fw.Content),
			Branch:  fw.Branch,
			SHA:     fw.SHA,
		},
		want, &body,
	)
	if err != nil {
		return nil, err
	}

	return &hosting.FileCommit{
		Response:  resp,
		Path:      body.Content.Path,
		SHA:       body.Content.SHA,
		CommitSHA: body.Commit.SHA,
	}, nil
}

// CreateIssue calls POST /repos/{owner}/{repo}/issues.
func (c *Client) CreateIssue(
	ctx context.Context,
	issue hosting.NewIssue,
) (*hosting.Issue, error) {
	const op = "create issue"

	var body numberedBody

	resp, err := c.call(
		ctx, op, http.MethodPost,
		repoPath(issue.Owner, issue.Repo, "issues"),
		issueRequest{Title: issue.Title, Body: issue.Body},
		http.StatusCreated, &body,
	)
	if err != nil {
		return nil, err
	}

	return &hosting.Issue{
		Response: resp,
		Number:   body.Number,
		HTMLURL:  body.HTMLURL,
	}, nil
}

// CreateBranch calls POST /repos/{owner}/{repo}/git/refs.
func (c *Client) CreateBranch(
	ctx context.Context,
	ref hosting.BranchRef,
) (*hosting.Branch, error) {
	const op = "create branch"

	var body refBody

	resp, err := c.call(
		ctx, op, http.MethodPost,
		repoPath(ref.Owner, ref.Repo, "git/refs"),
		refRequest{
			Ref: "refs/heads/" + ref.Name,
			SHA: ref.SHA,
		},
		http.StatusCreated, &body,
	)
	if err != nil {
		return nil, err
	}

	return &hosting.Branch{
		Response: resp,
		Ref:      body.Ref,
		SHA:      body.Object.SHA,
	}, nil
}

// CreatePullRequest calls POST /repos/{owner}/{repo}/pulls.
func (c *Client) CreatePullRequest(
	ctx context.Context,
	mr hosting.NewMergeRequest,
) (*hosting.MergeRequest, error) {
	const op = "create pull request"

	var body numberedBody

	resp, err := c.call(
		ctx, op, http.MethodPost,
		repoPath(mr.Owner, mr.Repo, "pulls"),
		pullRequest{
			Title: mr.Title,
			Head:  mr.Head,
			Base:  mr.Base,
			Body:  mr.Body,
		},
		http.StatusCreated, &body,
	)
	if err != nil {
		return nil, err
	}

	return &hosting.MergeRequest{
		Response: resp,
		Number:   body.Number,
		HTMLURL:  body.HTMLURL,
	}, nil
}

// call sends one request and checks the status code.
// On the expected status the body is decoded into out.
func (c *Client) call(
	ctx context.Context,
	op string,
	method string,
	path string,
	payload any,
	want int,
	out any,
) (hosting.Response, error) {
	resp, err := c.do(ctx, method, path, payload)
	if err != nil {
		return resp, fmt.Errorf("%s: %w", op, err)
	}

	if err := resp.Expect(op, want); err != nil {
		slog.Warn(
			"unexpected response",
			"op", op,
			"status", resp.StatusCode,
			"body", string(resp.Body),
		)

		return resp, err
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return resp, fmt.Errorf(
			"%s: decode response: %w", op, err,
		)
	}

	return resp, nil
}

// do performs the HTTP exchange and reads the whole
// body.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	payload any,
) (hosting.Response, error) {
	const errCtx = "sending request"

	var reqBody io.Reader

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return hosting.Response{}, fmt.Errorf(
				"%s: marshal request: %w", errCtx, err,
			)
		}

		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(
		ctx, method, c.baseURL+path, reqBody,
	)
	if err != nil {
		return hosting.Response{}, fmt.Errorf(
			"%s: build request: %w", errCtx, err,
		)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", "Bearer "+c.token)

	if payload != nil {
		req.Header.Set(
			"Content-Type",
			"application/json; charset=utf-8",
		)
	}

	slog.Debug("api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return hosting.Response{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	defer resp.Body.Close() //nolint:errcheck

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return hosting.Response{StatusCode: resp.StatusCode},
			fmt.Errorf(
				"%s: read response: %w", errCtx, err,
			)
	}

	return hosting.Response{
		StatusCode: resp.StatusCode,
		Body:       rb,
	}, nil
}

// repoPath joins the escaped owner and repository
// with the trailing endpoint segments.
func repoPath(owner string, repo string, rest ...string) string {
	parts := append(
		[]string{
			"/repos",
			url.PathEscape(owner),
			url.PathEscape(repo),
		},
		rest...,
	)

	return strings.Join(parts, "/")
}

// filePath escapes each segment of a repository file
// path, keeping the separators.
func filePath(p string) string {
	segs := strings.Split(strings.TrimPrefix(p, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}

	return strings.Join(segs, "/")
}
