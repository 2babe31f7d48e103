package rest

// RepoPathForTest exposes repoPath.
var RepoPathForTest = repoPath

// FilePathForTest exposes filePath.
var FilePathForTest = filePath
