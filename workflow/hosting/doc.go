// Package hosting defines the capability used to drive a source-code hosting
// service: look up the authenticated user, create a repository, write files,
// open issues, create branches and open merge requests.
//
// The Client interface abstracts the hosting platform. Implementations live in
// sub-packages: rest (raw GitHub-compatible REST over net/http), github
// (go-github) and gitlab (GitLab client-go). The hostingtest sub-package
// provides a recording double for tests.
//
// Every result embeds a Response carrying the raw status code and JSON body of
// the call. A status code other than the one expected for the operation is
// reported as a *StatusError so callers must branch on it before using any
// derived field.
package hosting
