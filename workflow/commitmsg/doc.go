// Package commitmsg generates the commit messages attached to file writes made
// through the hosting API. Creations read "Created <path>." and updates read
// "Modified <path>.".
package commitmsg
