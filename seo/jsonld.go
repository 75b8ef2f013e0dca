package seo

import (
	"encoding/json"
	"strings"
)

// jsonLDSanitizer closes the remaining holes after encoding/json's default
// escaping: a literal "</script>" or the U+2028/U+2029 line separators must
// never reach the document when the payload is concatenated into an HTML
// template as a raw string.
var jsonLDSanitizer = strings.NewReplacer(
	"</", `<\/`,
	" ", ` `,
	" ", ` `,
)

// MarshalJSONLD serializes v for raw embedding inside a
// <script type="application/ld+json"> tag.
func MarshalJSONLD(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return jsonLDSanitizer.Replace(string(raw)), nil
}
