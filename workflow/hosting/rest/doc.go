// Package rest implements hosting.Client against a GitHub-compatible REST API
// using plain HTTP requests. Each call sends a JSON body with fixed headers
// (JSON accept type, client identifier, bearer token) and returns the status
// code and verbatim JSON body alongside the decoded fields.
package rest
