// Package placeholder fills the fixed {{token}} vocabulary of generated page
// templates with profile values.
package placeholder

import (
	"html"
	"strings"
)

// Field identifies one substitutable profile value.
type Field int

const (
	FieldName Field = iota
	FieldUsername
	FieldImage
	FieldBio
	FieldLinks
)

// tokens lists every accepted token. Older templates use the short aliases.
var tokens = []struct {
	token string
	field Field
}{
	{"{{userName}}", FieldName},
	{"{{name}}", FieldName},
	{"{{username}}", FieldUsername},
	{"{{userImage}}", FieldImage},
	{"{{avatar}}", FieldImage},
	{"{{userBio}}", FieldBio},
	{"{{bio}}", FieldBio},
	{"{{userLinks}}", FieldLinks},
	{"{{links}}", FieldLinks},
}

// Link is one entry of the links list.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Values holds what gets substituted into a template.
type Values struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image"`
	Bio      string `json:"bio"`
	Links    []Link `json:"links"`
}

// Options tunes a substitution. Raw fields are inserted without HTML
// escaping; the links fragment is always markup and ignores this setting.
// A non-raw image must be a URL with an allowed scheme or it becomes "#".
type Options struct {
	Raw map[Field]bool
}

// Substitute replaces every token occurrence in tmpl in a single pass.
// Inserted values are not rescanned, so a value that itself looks like a
// token is kept verbatim.
func Substitute(tmpl string, v Values, opts Options) string {
	values := map[Field]string{
		FieldName:     opts.escape(FieldName, v.Name),
		FieldUsername: opts.escape(FieldUsername, v.Username),
		FieldImage:    opts.escape(FieldImage, opts.imageURL(v.Image)),
		FieldBio:      opts.escape(FieldBio, v.Bio),
		FieldLinks:    LinksHTML(v.Links),
	}

	pairs := make([]string, 0, 2*len(tokens))
	for _, t := range tokens {
		pairs = append(pairs, t.token, values[t.field])
	}

	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func (o Options) escape(f Field, s string) string {
	if o.Raw[f] {
		return s
	}
	return html.EscapeString(s)
}

func (o Options) imageURL(s string) string {
	if o.Raw[FieldImage] || strings.TrimSpace(s) == "" {
		return s
	}
	return SafeURL(s)
}

// Tokens returns the accepted token strings in match order.
func Tokens() []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.token
	}
	return out
}
