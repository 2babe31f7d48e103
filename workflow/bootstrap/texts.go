package bootstrap

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/byte4ever/repo_creator/templating"
)

// Default workflow texts.
const (
	DefaultDescription = "I made this repo using a Go program. " +
		"That program is even in this repo!! Neat."
	DefaultReadmePath     = "readme.md"
	DefaultReadme         = "# Auto Generated\n\n Isn't this sweet?"
	DefaultReadmeAppendix = "\n\n It's way sweet."
	DefaultSourcePath     = "repo_creator.go"
	DefaultIssueTitle     = "This repo is actually whack."
	DefaultIssueBody      = "It's my view that you should fix it."
	DefaultBranch         = "a_branch"
	DefaultBaseBranch     = "main"
	DefaultMergeTitle     = "We need to merge!"
	DefaultMergeBody      = "This new branch is way better, " +
		"you need to merge it."
)

// Texts holds every fixed text of the workflow. Values
// may reference {{owner}}, {{repo}}, {{branch}} and
// {{base}} placeholders.
type Texts struct {
	Description string `yaml:"description"`

	ReadmePath string `yaml:"readme_path"`
	Readme     string `yaml:"readme"`
	// ReadmeFile, when set, replaces Readme with the
	// expanded content of that file.
	ReadmeFile     string `yaml:"readme_file"`
	ReadmeAppendix string `yaml:"readme_appendix"`

	SourcePath string `yaml:"source_path"`
	// SourceFile, when set, uploads that file verbatim
	// instead of the embedded program source.
	SourceFile string `yaml:"source_file"`

	IssueTitle string `yaml:"issue_title"`
	IssueBody  string `yaml:"issue_body"`

	Branch     string `yaml:"branch"`
	BaseBranch string `yaml:"base_branch"`

	MergeTitle string `yaml:"merge_title"`
	MergeBody  string `yaml:"merge_body"`
}

// DefaultTexts returns the built-in workflow texts.
func DefaultTexts() Texts {
	return Texts{
		Description:    DefaultDescription,
		ReadmePath:     DefaultReadmePath,
		Readme:         DefaultReadme,
		ReadmeAppendix: DefaultReadmeAppendix,
		SourcePath:     DefaultSourcePath,
		IssueTitle:     DefaultIssueTitle,
		IssueBody:      DefaultIssueBody,
		Branch:         DefaultBranch,
		BaseBranch:     DefaultBaseBranch,
		MergeTitle:     DefaultMergeTitle,
		MergeBody:      DefaultMergeBody,
	}
}

// LoadTexts reads a YAML workflow file over the
// defaults. Keys absent from the file keep their
// default value. An empty path returns the defaults.
func LoadTexts(path string) (Texts, error) {
	const errCtx = "loading workflow texts"

	texts := DefaultTexts()
	if path == "" {
		return texts, nil
	}

	raw, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return Texts{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := yaml.Unmarshal(raw, &texts); err != nil {
		return Texts{}, fmt.Errorf(
			"%s: parse %s: %w", errCtx, path, err,
		)
	}

	if err := texts.validate(); err != nil {
		return Texts{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return texts, nil
}

// withDefaults fills empty fields from DefaultTexts.
// ReadmeFile and SourceFile stay optional.
func (t Texts) withDefaults() Texts {
	def := DefaultTexts()

	fill := func(dst *string, val string) {
		if *dst == "" {
			*dst = val
		}
	}

	fill(&t.Description, def.Description)
	fill(&t.ReadmePath, def.ReadmePath)
	fill(&t.Readme, def.Readme)
	fill(&t.ReadmeAppendix, def.ReadmeAppendix)
	fill(&t.SourcePath, def.SourcePath)
	fill(&t.IssueTitle, def.IssueTitle)
	fill(&t.IssueBody, def.IssueBody)
	fill(&t.Branch, def.Branch)
	fill(&t.BaseBranch, def.BaseBranch)
	fill(&t.MergeTitle, def.MergeTitle)
	fill(&t.MergeBody, def.MergeBody)

	return t
}

// validate rejects texts that would produce invalid
// requests.
func (t Texts) validate() error {
	required := []struct {
		key string
		val string
	}{
		{key: "readme_path", val: t.ReadmePath},
		{key: "source_path", val: t.SourcePath},
		{key: "branch", val: t.Branch},
		{key: "base_branch", val: t.BaseBranch},
	}

	for _, r := range required {
		if r.val == "" {
			return fmt.Errorf("%s must not be empty", r.key)
		}
	}

	if t.Branch == t.BaseBranch {
		return fmt.Errorf(
			"branch and base_branch must differ, both %q",
			t.Branch,
		)
	}

	return nil
}

// render expands every text against en. The source
// file is read verbatim; it is program text, not a
// template.
func (t Texts) render(
	en *templating.Engine,
	ownSource string,
) (rendered, error) {
	const errCtx = "rendering workflow texts"

	out := rendered{
		description: en.Expand(t.Description),
		readmePath:  en.Expand(t.ReadmePath),
		readme:      en.Expand(t.Readme),
		appendix:    en.Expand(t.ReadmeAppendix),
		sourcePath:  en.Expand(t.SourcePath),
		source:      ownSource,
		issueTitle:  en.Expand(t.IssueTitle),
		issueBody:   en.Expand(t.IssueBody),
		branch:      t.Branch,
		base:        t.BaseBranch,
		mergeTitle:  en.Expand(t.MergeTitle),
		mergeBody:   en.Expand(t.MergeBody),
	}

	if t.ReadmeFile != "" {
		readme, err := en.ExpandFile(t.ReadmeFile)
		if err != nil {
			return rendered{}, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		out.readme = readme
	}

	if t.SourceFile != "" {
		src, err := os.ReadFile(t.SourceFile) //nolint:gosec // path from config
		if err != nil {
			return rendered{}, fmt.Errorf(
				"%s: source file: %w", errCtx, err,
			)
		}

		out.source = string(src)
	}

	return out, nil
}

// rendered is the fully expanded form of Texts.
type rendered struct {
	description string
	readmePath  string
	readme      string
	appendix    string
	sourcePath  string
	source      string
	issueTitle  string
	issueBody   string
	branch      string
	base        string
	mergeTitle  string
	mergeBody   string
}
