package bootstrap

// RepoLocationForTest exposes repoLocation.
var RepoLocationForTest = repoLocation
