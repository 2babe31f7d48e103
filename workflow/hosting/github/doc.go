// Package github implements hosting.Client on top of go-github for GitHub
// (cloud or enterprise). Configure with a Config containing the access token.
// Set EnterpriseHost for GitHub Enterprise installations, or BaseURL to point
// the client at an arbitrary API root.
package github
