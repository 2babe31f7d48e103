package hosting

import (
	"encoding/base64"
	"fmt"
)

// EncodeContent returns the base64 encoding (standard
// alphabet, padded) of text's UTF-8 bytes, the form
// file contents take inside JSON request bodies.
func EncodeContent(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// DecodeContent reverses EncodeContent.
func DecodeContent(encoded string) (string, error) {
	const errCtx = "decoding content"

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return string(raw), nil
}
