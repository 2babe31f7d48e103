package bootstrap

import (
	"bufio"
	"context"
	_ "embed" // own source upload
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/byte4ever/repo_creator/templating"
	"github.com/byte4ever/repo_creator/workflow/browser"
	"github.com/byte4ever/repo_creator/workflow/hosting"
)

//go:embed bootstrap.go
var ownSource string

// DefaultNameAttempts bounds how often the repository
// name is prompted for.
const DefaultNameAttempts = 3

var (
	// ErrStepFailed wraps the error of the step that
	// aborted the workflow.
	ErrStepFailed = errors.New("step failed")
	// ErrIncompleteResponse is returned when a
	// successful response lacks a field a later step
	// depends on.
	ErrIncompleteResponse = errors.New("incomplete response")
)

// Config holds all collaborators and texts for a
// bootstrap run.
type Config struct {
	// Client talks to the hosting service.
	Client hosting.Client

	// In supplies the repository name. Defaults to
	// os.Stdin.
	In io.Reader

	// Out receives prompts and progress output.
	// Defaults to os.Stdout.
	Out io.Writer

	// Browser opens the new repository. Nil skips the
	// final step.
	Browser browser.Opener

	// Texts are the workflow texts. Empty fields take
	// their DefaultTexts value.
	Texts Texts

	// Vars are extra placeholders available to Texts.
	// owner, repo, branch and base always take the run
	// values.
	Vars map[string]any

	// NameAttempts defaults to DefaultNameAttempts.
	NameAttempts int
}

// OwnSource returns the program text uploaded by the
// add-source step.
func OwnSource() string {
	return ownSource
}

// Run executes the workflow steps in order. The
// returned Report lists every attempted step, also when
// Run fails; the first failed step aborts the run with
// an error wrapping ErrStepFailed.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	const errCtx = "running bootstrap"

	if cfg.Client == nil {
		return nil, fmt.Errorf(
			"%s: client must be set", errCtx,
		)
	}

	cfg = cfg.withDefaults()

	if err := cfg.Texts.validate(); err != nil {
		return &Report{}, fmt.Errorf(
			"%s: texts: %w", errCtx, err,
		)
	}

	r := &runner{
		cfg:    cfg,
		report: &Report{},
	}

	if err := r.run(ctx); err != nil {
		return r.report, fmt.Errorf("%s: %w", errCtx, err)
	}

	return r.report, nil
}

func (cfg Config) withDefaults() Config {
	if cfg.In == nil {
		cfg.In = os.Stdin
	}

	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	cfg.Texts = cfg.Texts.withDefaults()

	if cfg.NameAttempts <= 0 {
		cfg.NameAttempts = DefaultNameAttempts
	}

	return cfg
}

type runner struct {
	cfg    Config
	report *Report
}

//nolint:funlen,cyclop // the workflow is one linear sequence
func (r *runner) run(ctx context.Context) error {
	client := r.cfg.Client

	// Step 1: Identify the current user.
	user, err := client.CurrentUser(ctx)
	if err == nil && user.Login == "" {
		err = missing("login")
	}

	if err != nil {
		return r.fail(StepIdentify, err)
	}

	r.pass(StepIdentify, user.Response, user.Login)

	owner := user.Login

	// Step 2: Read the repository name.
	name, err := ReadRepoName(
		bufio.NewReader(r.cfg.In),
		r.cfg.Out,
		r.cfg.NameAttempts,
	)
	if err != nil {
		return r.fail(StepReadName, err)
	}

	r.pass(StepReadName, hosting.Response{}, name)

	texts, err := r.cfg.Texts.render(
		r.engine(owner, name), ownSource,
	)
	if err != nil {
		return r.fail(StepRenderTexts, err)
	}

	// Step 3: Create the repository.
	repo, err := client.CreateRepository(
		ctx,
		hosting.NewRepository{
			Name:        name,
			Description: texts.description,
		},
	)
	r.print(StepCreateRepo, repo, err)

	if err != nil {
		return r.fail(StepCreateRepo, err)
	}

	r.pass(StepCreateRepo, repo.Response, repo.HTMLURL)

	// Later calls address the repository by the path
	// the service assigned.
	owner, name = repoLocation(owner, name, repo.FullName)

	// Step 4: Add the README on the default branch.
	readme, err := client.PutFile(ctx, hosting.FileWrite{
		Owner:   owner,
		Repo:    name,
		Path:    texts.readmePath,
		Content: texts.readme,
	})
	if err == nil {
		switch {
		case readme.Path == "":
			err = missing("content.path")
		case readme.SHA == "":
			err = missing("content.sha")
		}
	}

	if err != nil {
		return r.fail(StepAddReadme, err)
	}

	r.pass(StepAddReadme, readme.Response, readme.SHA)

	// Step 5: Add the program's own source.
	source, err := client.PutFile(ctx, hosting.FileWrite{
		Owner:   owner,
		Repo:    name,
		Path:    texts.sourcePath,
		Content: texts.source,
	})
	r.print(StepAddSource, source, err)

	if err == nil && source.CommitSHA == "" {
		err = missing("commit.sha")
	}

	if err != nil {
		return r.fail(StepAddSource, err)
	}

	r.pass(StepAddSource, source.Response, source.CommitSHA)

	// Step 6: Open an issue.
	issue, err := client.CreateIssue(ctx, hosting.NewIssue{
		Owner: owner,
		Repo:  name,
		Title: texts.issueTitle,
		Body:  texts.issueBody,
	})
	if err != nil {
		return r.fail(StepCreateIssue, err)
	}

	r.pass(
		StepCreateIssue, issue.Response,
		numbered(issue.Number, issue.HTMLURL),
	)

	// Step 7: Branch from the source commit.
	branch, err := client.CreateBranch(ctx, hosting.BranchRef{
		Owner: owner,
		Repo:  name,
		Name:  texts.branch,
		SHA:   source.CommitSHA,
	})
	if err != nil {
		return r.fail(StepCreateBranch, err)
	}

	r.pass(StepCreateBranch, branch.Response, branch.Ref)

	// Step 8: Modify the README on the new branch.
	modified, err := client.PutFile(ctx, hosting.FileWrite{
		Owner:   owner,
		Repo:    name,
		Path:    readme.Path,
		Content: texts.readme + texts.appendix,
		Branch:  texts.branch,
		SHA:     readme.SHA,
	})
	if err != nil {
		return r.fail(StepModifyReadme, err)
	}

	r.pass(
		StepModifyReadme, modified.Response,
		modified.CommitSHA,
	)

	// Step 9: Open the merge request.
	mr, err := client.CreatePullRequest(
		ctx,
		hosting.NewMergeRequest{
			Owner: owner,
			Repo:  name,
			Head:  texts.branch,
			Base:  texts.base,
			Title: texts.mergeTitle,
			Body:  texts.mergeBody,
		},
	)
	if err != nil {
		return r.fail(StepMergeRequest, err)
	}

	r.pass(
		StepMergeRequest, mr.Response,
		numbered(mr.Number, mr.HTMLURL),
	)

	// Step 10: Show the repository.
	r.openBrowser(ctx, repo.HTMLURL)

	return nil
}

// engine builds the placeholder context for one run.
func (r *runner) engine(owner string, name string) *templating.Engine {
	en := templating.New(r.cfg.Vars)

	en.Set("owner", owner)
	en.Set("repo", name)
	en.Set("branch", r.cfg.Texts.Branch)
	en.Set("base", r.cfg.Texts.BaseBranch)

	return en
}

// repoLocation splits fullName ("owner/name", owner
// possibly a nested namespace) into owner and name.
// It keeps the given values when fullName has no
// usable separator.
func repoLocation(
	owner string,
	name string,
	fullName string,
) (string, string) {
	i := strings.LastIndex(fullName, "/")
	if i <= 0 || i == len(fullName)-1 {
		return owner, name
	}

	return fullName[:i], fullName[i+1:]
}

// openBrowser never fails the run.
func (r *runner) openBrowser(ctx context.Context, url string) {
	if r.cfg.Browser == nil {
		return
	}

	var err error
	if url == "" {
		err = missing("html_url")
	} else {
		err = r.cfg.Browser.Open(ctx, url)
	}

	if err != nil {
		slog.Warn(
			"could not open browser",
			"url", url,
			"error", err,
		)
	}

	r.report.add(StepResult{
		Step:   StepOpenBrowser,
		Detail: url,
		Err:    err,
	})
}

// print writes the status code and JSON body of a
// step's response, successful or not.
func (r *runner) print(step Step, v responder, err error) {
	resp, ok := hosting.ResponseOf(err)
	if err == nil {
		resp, ok = v.Raw(), true
	}

	if !ok {
		return
	}

	r.printf("%s status code: %d\n", step, resp.StatusCode)
	r.printf("%s JSON: %s\n", step, resp.Body)
}

func (r *runner) pass(
	step Step,
	resp hosting.Response,
	detail string,
) {
	slog.Info(
		"step done",
		"step", step,
		"status", resp.StatusCode,
		"detail", detail,
	)

	r.report.add(StepResult{
		Step:       step,
		StatusCode: resp.StatusCode,
		Detail:     detail,
	})
}

// fail records step as failed, tells the user and
// returns the abort error.
func (r *runner) fail(step Step, err error) error {
	resp, _ := hosting.ResponseOf(err)

	r.report.add(StepResult{
		Step:       step,
		StatusCode: resp.StatusCode,
		Err:        err,
	})

	r.printf("Failed to %s. Exiting.\n", step)

	return fmt.Errorf("%w: %s: %w", ErrStepFailed, step, err)
}

// printf ignores write errors; output is informational.
func (r *runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.cfg.Out, format, args...)
}

// responder is satisfied by every hosting result
// through its embedded hosting.Response.
type responder interface {
	Raw() hosting.Response
}

func missing(field string) error {
	return fmt.Errorf("%w: no %s", ErrIncompleteResponse, field)
}

func numbered(n int, url string) string {
	if url != "" {
		return url
	}

	return "#" + strconv.Itoa(n)
}
