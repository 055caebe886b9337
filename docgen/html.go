package docgen

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
)

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #1a1a2e; }
h1 { border-bottom: 2px solid #7e1bcc; padding-bottom: 0.3rem; }
h2 { color: #7e1bcc; margin-top: 1.5rem; }
code { background: #f2f2f7; padding: 0.1rem 0.3rem; border-radius: 3px; }
a { color: #7e1bcc; }
</style>
</head>
<body>
%s</body>
</html>
`

// markdownToHTML derives the hypertext rendering from the markdown bytes.
// Headings, lists, bold and link markup are converted line for line, so the
// two renderings stay representationally equivalent.
func markdownToHTML(title, md string) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(md), &body); nil != err {
		return nil, fmt.Errorf("failed to convert markdown: %v", err)
	}

	return fmt.Appendf(nil, htmlShell, html.EscapeString(title), body.String()), nil
}
