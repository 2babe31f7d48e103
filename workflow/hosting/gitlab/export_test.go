package gitlab

// ProjectIDForTest exposes projectID.
var ProjectIDForTest = projectID
