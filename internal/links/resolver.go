// Package links rewrites wiki-style cross-reference tokens in rendered HTML.
package links

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// Resolve rewrites every [[name]] token in rendered HTML. A token that
// matches a workspace file becomes an anchor carrying the file id; an
// unmatched token becomes a broken-link marker followed by a create
// affordance. Matching is case-insensitive against the file name, the name
// with ".md" appended, and the name with ".md" stripped.
//
// ids must be in lexicographic order: when several files satisfy the same
// normalized name the first id wins, which pins ambiguous resolution to a
// deterministic result.
func Resolve(rendered string, ids []string, names map[string]string) string {
	return tokenRe.ReplaceAllStringFunc(rendered, func(match string) string {
		token := strings.TrimSpace(tokenRe.FindStringSubmatch(match)[1])
		if token == "" {
			return match
		}
		if id, name, ok := lookup(token, ids, names); ok {
			return fmt.Sprintf(
				`<a href="#" class="wiki-link" data-file-id="%s" title="Open %s">%s</a>`,
				id, html.EscapeString(name), html.EscapeString(token))
		}
		return fmt.Sprintf(
			`<span class="wiki-link broken" title="File not found">%s</span>`+
				`<a href="#" class="wiki-link create" data-create-name="%s" title="Create this file">[Create]</a>`,
			html.EscapeString(token), html.EscapeString(CreateName(token)))
	})
}

func lookup(token string, ids []string, names map[string]string) (id, name string, ok bool) {
	want := strings.ToLower(token)
	for _, id := range ids {
		name := strings.ToLower(names[id])
		if name == want || name == want+".md" || strings.TrimSuffix(name, ".md") == want {
			return id, names[id], true
		}
	}
	return "", "", false
}

// CreateName derives the file name offered for a broken link, appending
// ".md" when the token lacks it.
func CreateName(token string) string {
	if strings.HasSuffix(token, ".md") {
		return token
	}
	return token + ".md"
}
