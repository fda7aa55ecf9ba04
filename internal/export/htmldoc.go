package export

import "html"

const docStyle = `
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif;
       max-width: 800px; margin: 0 auto; padding: 2rem; line-height: 1.6; color: #24292e; }
h1, h2, h3 { border-bottom: 1px solid #eaecef; padding-bottom: .3em; }
pre { background: #f6f8fa; padding: 16px; border-radius: 6px; overflow-x: auto; }
code { background: #f6f8fa; padding: .2em .4em; border-radius: 3px; font-size: 85%; }
pre code { background: none; padding: 0; }
blockquote { border-left: 4px solid #dfe2e5; color: #6a737d; margin: 0; padding: 0 1em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #dfe2e5; padding: 6px 13px; }
img { max-width: 100%; }
@media print { body { max-width: none; padding: 0; } }
`

const printScript = `<script>window.addEventListener("load",function(){window.print()});</script>`

// htmlDocument wraps rendered body HTML in a standalone styled document.
// printable adds an auto-print hook for the print-to-PDF path.
func htmlDocument(title, body string, printable bool) string {
	script := ""
	if printable {
		script = printScript
	}
	return `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>` + html.EscapeString(title) + `</title>
<style>` + docStyle + `</style>
</head>
<body>
` + body + `
` + script + `</body>
</html>
`
}
