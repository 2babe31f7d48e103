package templating

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Engine expands templates against a variable context.
type Engine struct {
	StartTag string
	EndTag   string
	// Vars maps placeholder names to values.
	Vars map[string]any
}

// New returns an Engine with default tags and a copy
// of vars.
func New(vars map[string]any) *Engine {
	en := &Engine{Vars: make(map[string]any, len(vars))}
	for key, val := range vars {
		en.Vars[key] = val
	}

	return en
}

// Set stores a variable, overriding any previous
// value.
func (en *Engine) Set(name string, value any) {
	if en.Vars == nil {
		en.Vars = make(map[string]any)
	}

	en.Vars[name] = value
}

// Expand substitutes placeholders in tpl. Unknown
// placeholders are preserved as-is.
func (en *Engine) Expand(tpl string) string {
	startTag, endTag := en.tags()

	// fasttemplate panics on templates containing an
	// unterminated start tag; return those unchanged.
	if !balanced(tpl, startTag, endTag) {
		return tpl
	}

	return fasttemplate.ExecuteFuncString(
		tpl, startTag, endTag,
		func(w io.Writer, tag string) (int, error) {
			return en.writeTag(w, tag, startTag, endTag)
		},
	)
}

// writeTag writes the value of tag. Strings and byte
// slices are written as-is, other values through
// fmt.Sprint. Unknown or nil tags are kept verbatim.
func (en *Engine) writeTag(
	w io.Writer,
	tag string,
	startTag string,
	endTag string,
) (int, error) {
	switch val := en.Vars[tag].(type) {
	case nil:
		return io.WriteString(w, startTag+tag+endTag)
	case string:
		return io.WriteString(w, val)
	case []byte:
		return w.Write(val)
	default:
		return io.WriteString(w, fmt.Sprint(val))
	}
}

// ExpandFile reads the template at path and expands
// it.
func (en *Engine) ExpandFile(path string) (string, error) {
	const errCtx = "expanding template file"

	content, err := os.ReadFile(path) //nolint:gosec // path from config
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return en.Expand(string(content)), nil
}

// tags returns the configured start/end tags, falling
// back to double-brace defaults.
func (en *Engine) tags() (string, string) {
	startTag := en.StartTag
	if startTag == "" {
		startTag = "{{"
	}

	endTag := en.EndTag
	if endTag == "" {
		endTag = "}}"
	}

	return startTag, endTag
}

// ParseVars turns NAME=VALUE pairs into a variable
// context.
func ParseVars(pairs []string) (map[string]any, error) {
	const errCtx = "parsing variables"

	vars := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf(
				"%s: variable must be NAME=value, got %q",
				errCtx, pair,
			)
		}

		vars[parts[0]] = parts[1]
	}

	return vars, nil
}

// balanced reports whether every start tag in s is
// followed by an end tag.
func balanced(s string, startTag string, endTag string) bool {
	for {
		i := strings.Index(s, startTag)
		if i < 0 {
			return true
		}

		s = s[i+len(startTag):]

		j := strings.Index(s, endTag)
		if j < 0 {
			return false
		}

		s = s[j+len(endTag):]
	}
}
