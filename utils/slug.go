package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// turkishASCII maps the Turkish letters that survive Unicode decomposition
// (dotless ı and ligature-free ğ/ş decompose, but not all consistently across
// fonts and sources) to their ASCII slug forms.
var turkishASCII = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "I", "i",
	"İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases a string and strips diacritics so that "Müren" and "muren"
// compare equal. Used both for the stored search column and for incoming
// search queries.
func Fold(s string) string {
	s = turkishASCII.Replace(s)
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Slugify converts a display name into a URL slug: diacritics folded,
// non-alphanumerics collapsed into single hyphens, no leading or trailing
// hyphen. Slugify("Zeki Müren") == "zeki-muren".
func Slugify(name string) string {
	folded := Fold(name)

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
