package generator

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// Templates use [[ ]] so the {{token}} placeholders pass through untouched.
var prompts = template.Must(
	template.New("prompts").Delims("[[", "]]").ParseFS(promptFS, "prompts/*.tmpl"),
)

type placeholderHint struct {
	Token   string
	Meaning string
}

type promptData struct {
	Prompt       string
	Placeholders []placeholderHint
}

var pagePlaceholders = []placeholderHint{
	{"{{userName}}", "the display name"},
	{"{{username}}", "the username"},
	{"{{userImage}}", "the avatar image URL"},
	{"{{userBio}}", "the bio"},
	{"{{userLinks}}", "the links (one placeholder only)"},
}

func render(name string, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
