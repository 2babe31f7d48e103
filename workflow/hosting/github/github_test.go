package github_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/repo_creator/workflow/hosting"
	ghcl "github.com/byte4ever/repo_creator/workflow/hosting/github"
)

func TestNewClient_valid(t *testing.T) {
	t.Parallel()

	cl, err := ghcl.NewClient(ghcl.Config{AccessToken: "tok"})

	require.NoError(t, err)
	assert.NotNil(t, cl)
}

func TestNewClient_missing_token(t *testing.T) {
	t.Parallel()

	cl, err := ghcl.NewClient(ghcl.Config{})

	assert.Nil(t, cl)
	assert.ErrorContains(t, err, "access token")
}

func TestNewClient_enterprise(t *testing.T) {
	t.Parallel()

	cl, err := ghcl.NewClient(ghcl.Config{
		AccessToken:    "tok",
		EnterpriseHost: "git.corp.example.com",
	})

	require.NoError(t, err)
	assert.NotNil(t, cl)
}

// handle registers a handler replying with status and
// body, decoding the request body into got.
func handle(
	mux *http.ServeMux,
	pattern string,
	status int,
	body string,
	got *map[string]any,
) {
	mux.HandleFunc(
		pattern,
		func(w http.ResponseWriter, r *http.Request) {
			if got != nil {
				raw, err := io.ReadAll(r.Body)
				if err == nil && len(raw) > 0 {
					_ = json.Unmarshal(raw, got)
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = io.WriteString(w, body)
		},
	)
}

func newTestClient(
	tb testing.TB,
	mux *http.ServeMux,
) *ghcl.Client {
	tb.Helper()

	ts := httptest.NewServer(mux)
	tb.Cleanup(ts.Close)

	cl, err := ghcl.NewClient(ghcl.Config{
		AccessToken: "tok",
		BaseURL:     ts.URL,
	})
	require.NoError(tb, err)

	return cl
}

func TestClient_CurrentUser(t *testing.T) {
	t.Parallel()

	var (
		gotAuth string
		gotUA   string
	)

	mux := http.NewServeMux()
	mux.HandleFunc(
		"GET /user",
		func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotUA = r.Header.Get("User-Agent")

			_, _ = io.WriteString(w, `{"login":"alice"}`)
		},
	)

	user, err := newTestClient(t, mux).CurrentUser(
		context.Background(),
	)

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Login)
	assert.Equal(t, http.StatusOK, user.StatusCode)
	assert.Contains(t, string(user.Body), `"login":"alice"`)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, ghcl.DefaultUserAgent, gotUA)
}

func TestClient_CreateRepository(t *testing.T) {
	t.Parallel()

	var got map[string]any

	mux := http.NewServeMux()
	handle(
		mux, "POST /user/repos", http.StatusCreated,
		`{"name":"demo","full_name":"alice/demo",`+
			`"html_url":"https://x/alice/demo"}`,
		&got,
	)

	repo, err := newTestClient(t, mux).CreateRepository(
		context.Background(),
		hosting.NewRepository{Name: "demo", Description: "desc"},
	)

	require.NoError(t, err)
	assert.Equal(t, "demo", got["name"])
	assert.Equal(t, "desc", got["description"])
	assert.Equal(t, "https://x/alice/demo", repo.HTMLURL)
	assert.Equal(t, http.StatusCreated, repo.StatusCode)
}

func TestClient_CreateRepository_failure(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	handle(
		mux, "POST /user/repos", http.StatusUnprocessableEntity,
		`{"message":"Repository creation failed."}`,
		nil,
	)

	repo, err := newTestClient(t, mux).CreateRepository(
		context.Background(),
		hosting.NewRepository{Name: "demo"},
	)

	assert.Nil(t, repo)

	var se *hosting.StatusError

	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.Contains(t, string(se.Body), "Repository creation failed.")
}

func TestClient_PutFile_create(t *testing.T) {
	t.Parallel()

	var got map[string]any

	mux := http.NewServeMux()
	handle(
		mux, "PUT /repos/alice/demo/contents/readme.md",
		http.StatusCreated,
		`{"content":{"path":"readme.md","sha":"abc123"},`+
			`"commit":{"sha":"c0ffee"}}`,
		&got,
	)

	fc, err := newTestClient(t, mux).PutFile(
		context.Background(),
		hosting.FileWrite{
			Owner:   "alice",
			Repo:    "demo",
			Path:    "readme.md",
			Content: "# Auto Generated",
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "Created readme.md.", got["message"])
	assert.Equal(t, "IyBBdXRvIEdlbmVyYXRlZA==", got["content"])
	assert.NotContains(t, got, "sha")
	assert.Equal(t, "readme.md", fc.Path)
	assert.Equal(t, "abc123", fc.SHA)
	assert.Equal(t, "c0ffee", fc.CommitSHA)
}

func TestClient_PutFile_update(t *testing.T) {
	t.Parallel()

	var got map[string]any

	mux := http.NewServeMux()
	handle(
		mux, "PUT /repos/alice/demo/contents/readme.md",
		http.StatusOK,
		`{"content":{"path":"readme.md","sha":"fff"},`+
			`"commit":{"sha":"111"}}`,
		&got,
	)

	fc, err := newTestClient(t, mux).PutFile(
		context.Background(),
		hosting.FileWrite{
			Owner:   "alice",
			Repo:    "demo",
			Path:    "readme.md",
			Content: "more",
			Branch:  "a_branch",
			SHA:     "abc123",
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "Modified readme.md.", got["message"])
	assert.Equal(t, "a_branch", got["branch"])
	assert.Equal(t, "abc123", got["sha"])
	assert.Equal(t, "fff", fc.SHA)
}

func TestClient_CreateIssue(t *testing.T) {
	t.Parallel()

	var got map[string]any

	mux := http.NewServeMux()
	handle(
		mux, "POST /repos/alice/demo/issues", http.StatusCreated,
		`{"number":3,"html_url":"https://x/alice/demo/issues/3"}`,
		&got,
	)

	issue, err := newTestClient(t, mux).CreateIssue(
		context.Background(),
		hosting.NewIssue{
			Owner: "alice", Repo: "demo",
			Title: "title", Body: "body",
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "title", got["title"])
	assert.Equal(t, "body", got["body"])
	assert.Equal(t, 3, issue.Number)
}

func TestClient_CreateBranch(t *testing.T) {
	t.Parallel()

	var got map[string]any

	mux := http.NewServeMux()
	handle(
		mux, "POST /repos/alice/demo/git/refs", http.StatusCreated,
		`{"ref":"refs/heads/a_branch","object":{"sha":"def456"}}`,
		&got,
	)

	br, err := newTestClient(t, mux).CreateBranch(
		context.Background(),
		hosting.BranchRef{
			Owner: "alice", Repo: "demo",
			Name: "a_branch", SHA: "def456",
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "refs/heads/a_branch", got["ref"])
	assert.Equal(t, "def456", got["sha"])
	assert.Equal(t, "def456", br.SHA)
}

func TestClient_CreatePullRequest(t *testing.T) {
	t.Parallel()

	var got map[string]any

	mux := http.NewServeMux()
	handle(
		mux, "POST /repos/alice/demo/pulls", http.StatusCreated,
		`{"number":4,"html_url":"https://x/alice/demo/pull/4"}`,
		&got,
	)

	mr, err := newTestClient(t, mux).CreatePullRequest(
		context.Background(),
		hosting.NewMergeRequest{
			Owner: "alice", Repo: "demo",
			Head: "a_branch", Base: "main",
			Title: "t", Body: "b",
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "a_branch", got["head"])
	assert.Equal(t, "main", got["base"])
	assert.Equal(t, 4, mr.Number)
	assert.Equal(t, "https://x/alice/demo/pull/4", mr.HTMLURL)
}
