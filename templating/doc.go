// Package templating expands placeholders in the texts the bootstrap workflow
// sends to the hosting service (descriptions, file contents, issue and merge
// request bodies). It uses valyala/fasttemplate with configurable delimiters
// (default "{{" and "}}"); unknown placeholders are kept verbatim.
package templating
