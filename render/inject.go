package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nasiloldu/backend/seo"
)

// StateGlobal is the well-known global the client rehydrates from.
const StateGlobal = "window.__NASILOLDU_STATE__"

// Injected regions are delimited by marker comments so that re-injecting into
// an already-composed document replaces the previous instance instead of
// accumulating duplicates.
var (
	appBlockRe   = regexp.MustCompile(`(?s)<!-- ssr:app -->.*?<!-- /ssr:app -->`)
	stateBlockRe = regexp.MustCompile(`(?s)[ \t]*<!-- ssr:state -->.*?<!-- /ssr:state -->\n?`)
	headBlockRe  = regexp.MustCompile(`(?s)[ \t]*<!-- ssr:head -->.*?<!-- /ssr:head -->\n?`)

	rootDivRe = regexp.MustCompile(`<div id="root">\s*</div>`)

	titleRe      = regexp.MustCompile(`(?s)<title>.*?</title>`)
	metaDescRe   = regexp.MustCompile(`<meta\s+name="description"[^>]*>`)
	canonicalRe  = regexp.MustCompile(`<link\s+rel="canonical"[^>]*>`)
	socialMetaRe = regexp.MustCompile(`<meta\s+(?:property|name)="(?:og:|twitter:)[^"]*"[^>]*>`)
	jsonLDRe     = regexp.MustCompile(`(?s)<script type="application/ld\+json">.*?</script>`)
)

// injectMarkup splices rendered markup into the shell's mount point.
func injectMarkup(doc, markup string) (string, error) {
	doc = appBlockRe.ReplaceAllString(doc, "")
	loc := rootDivRe.FindStringIndex(doc)
	if loc == nil {
		return "", fmt.Errorf("shell has no empty mount point <div id=\"root\">")
	}
	replacement := `<div id="root"><!-- ssr:app -->` + markup + `<!-- /ssr:app --></div>`
	return doc[:loc[0]] + replacement + doc[loc[1]:], nil
}

// injectState appends the serialized prefetch cache as a script assigning the
// rehydration global.
func injectState(doc, stateJSON string) string {
	doc = stateBlockRe.ReplaceAllString(doc, "")
	script := "<!-- ssr:state --><script>" + StateGlobal + " = " + stateJSON + ";</script><!-- /ssr:state -->"
	if idx := strings.LastIndex(doc, "</body>"); idx >= 0 {
		return doc[:idx] + script + "\n" + doc[idx:]
	}
	return doc + script
}

// InjectMetadata replaces the document's head metadata with md. Any
// previously injected block, and the shell's own title, description,
// canonical, social and JSON-LD tags, are removed first so repeated
// injection never produces duplicate tags.
func InjectMetadata(doc string, md *seo.Metadata) string {
	doc = headBlockRe.ReplaceAllString(doc, "")
	doc = titleRe.ReplaceAllString(doc, "")
	doc = metaDescRe.ReplaceAllString(doc, "")
	doc = canonicalRe.ReplaceAllString(doc, "")
	doc = socialMetaRe.ReplaceAllString(doc, "")
	doc = jsonLDRe.ReplaceAllString(doc, "")

	block := buildHeadBlock(md)
	if idx := strings.Index(doc, "</head>"); idx >= 0 {
		return doc[:idx] + block + doc[idx:]
	}
	return block + doc
}

func buildHeadBlock(md *seo.Metadata) string {
	var b strings.Builder
	b.WriteString("<!-- ssr:head -->\n")
	b.WriteString("<title>" + md.Title + "</title>\n")
	b.WriteString(`<meta name="description" content="` + md.Description + "\">\n")
	b.WriteString(`<link rel="canonical" href="` + html.EscapeString(md.Canonical) + "\">\n")

	b.WriteString(`<meta property="og:title" content="` + md.Title + "\">\n")
	b.WriteString(`<meta property="og:description" content="` + md.Description + "\">\n")
	b.WriteString(`<meta property="og:type" content="` + md.OGType + "\">\n")
	b.WriteString(`<meta property="og:url" content="` + html.EscapeString(md.Canonical) + "\">\n")
	if md.Image != nil && *md.Image != "" {
		b.WriteString(`<meta property="og:image" content="` + html.EscapeString(*md.Image) + "\">\n")
		b.WriteString(`<meta name="twitter:card" content="summary_large_image">` + "\n")
		b.WriteString(`<meta name="twitter:image" content="` + html.EscapeString(*md.Image) + "\">\n")
	} else {
		b.WriteString(`<meta name="twitter:card" content="summary">` + "\n")
	}
	b.WriteString(`<meta name="twitter:title" content="` + md.Title + "\">\n")
	b.WriteString(`<meta name="twitter:description" content="` + md.Description + "\">\n")

	if md.JSONLD != "" {
		b.WriteString(`<script type="application/ld+json">` + md.JSONLD + "</script>\n")
	}
	b.WriteString("<!-- /ssr:head -->\n")
	return b.String()
}
