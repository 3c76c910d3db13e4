package placeholder

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

const linkSeparator = "\n      "

var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// LinksHTML renders links as anchor tags, one per line. Titles and URLs are
// escaped and a URL with any other scheme than http, https, mailto or tel
// is replaced with "#".
func LinksHTML(links []Link) string {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, fmt.Sprintf(
			`<a href="%s" target="_blank" rel="noopener noreferrer" class="link-item">%s</a>`,
			html.EscapeString(SafeURL(l.URL)),
			html.EscapeString(l.Title),
		))
	}
	return strings.Join(parts, linkSeparator)
}

// SafeURL returns raw when it is an absolute URL with an allowed scheme,
// and "#" otherwise.
func SafeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || !allowedSchemes[strings.ToLower(u.Scheme)] {
		return "#"
	}
	return raw
}
