// Package bootstrap runs the repository bootstrap workflow against a
// hosting.Client: identify the account, read a repository name, create the
// repository, add a README and the program's own source, open an issue,
// branch from the source commit, modify the README on that branch, open a
// merge request and finally show the repository in a browser.
//
// The main entry point is Run, which accepts a Config struct with all
// collaborators and texts for the workflow. Every step's outcome is checked
// before its fields feed a later step; the first failed step aborts the run
// with ErrStepFailed.
package bootstrap
