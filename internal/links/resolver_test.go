package links_test

import (
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/links"
)

func TestResolve_Matching(t *testing.T) {
	ids := []string{"file_1", "file_2", "file_3"}
	names := map[string]string{
		"file_1": "Getting Started.md",
		"file_2": "notes",
		"file_3": "Roadmap.md",
	}

	cases := []struct {
		name   string
		in     string
		wantID string
	}{
		{"exact name", "<p>[[Getting Started.md]]</p>", "file_1"},
		{"without extension", "<p>[[Getting Started]]</p>", "file_1"},
		{"case insensitive", "<p>[[getting started.MD]]</p>", "file_1"},
		{"token with md against bare name", "<p>[[notes.md]]</p>", "file_2"},
		{"bare against bare", "<p>[[Notes]]</p>", "file_2"},
		{"surrounding whitespace", "<p>[[  Roadmap  ]]</p>", "file_3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := links.Resolve(tc.in, ids, names)
			if !strings.Contains(got, `data-file-id="`+tc.wantID+`"`) {
				t.Errorf("Resolve(%q) = %q, want link to %s", tc.in, got, tc.wantID)
			}
			if strings.Contains(got, "[[") {
				t.Errorf("token left unrewritten: %q", got)
			}
		})
	}
}

func TestResolve_BrokenLink(t *testing.T) {
	got := links.Resolve("<p>[[Missing Page]]</p>", nil, nil)

	if !strings.Contains(got, `class="wiki-link broken"`) {
		t.Errorf("missing broken marker: %q", got)
	}
	if !strings.Contains(got, `data-create-name="Missing Page.md"`) {
		t.Errorf("create affordance should append .md: %q", got)
	}
	if !strings.Contains(got, ">[Create]</a>") {
		t.Errorf("missing create label: %q", got)
	}
}

func TestResolve_CreateNameKeepsExtension(t *testing.T) {
	got := links.Resolve("[[draft.md]]", nil, nil)
	if !strings.Contains(got, `data-create-name="draft.md"`) {
		t.Errorf("extension should not be doubled: %q", got)
	}
}

func TestResolve_AmbiguityPicksSmallestID(t *testing.T) {
	ids := []string{"file_10", "file_2"} // caller supplies lexicographic order
	names := map[string]string{
		"file_10": "Dup.md",
		"file_2":  "dup",
	}
	got := links.Resolve("[[dup]]", ids, names)
	if !strings.Contains(got, `data-file-id="file_10"`) {
		t.Errorf("ambiguous token should resolve to first id in order, got %q", got)
	}
}

func TestResolve_EmptyTokenUntouched(t *testing.T) {
	in := "<p>[[  ]]</p>"
	if got := links.Resolve(in, nil, nil); got != in {
		t.Errorf("empty token rewritten: %q", got)
	}
}

func TestResolve_EscapesNames(t *testing.T) {
	got := links.Resolve(`[[a<b]]`, nil, nil)
	if strings.Contains(got, "a<b") {
		t.Errorf("token not escaped: %q", got)
	}
	if !strings.Contains(got, "a&lt;b") {
		t.Errorf("expected escaped token: %q", got)
	}
}

func TestResolve_MultipleTokens(t *testing.T) {
	ids := []string{"file_1"}
	names := map[string]string{"file_1": "a.md"}
	got := links.Resolve("[[a]] and [[b]]", ids, names)
	if !strings.Contains(got, `data-file-id="file_1"`) {
		t.Errorf("first token unresolved: %q", got)
	}
	if !strings.Contains(got, `data-create-name="b.md"`) {
		t.Errorf("second token not marked broken: %q", got)
	}
}

func TestCreateName(t *testing.T) {
	if got := links.CreateName("Ideas"); got != "Ideas.md" {
		t.Errorf("CreateName = %q", got)
	}
	if got := links.CreateName("Ideas.md"); got != "Ideas.md" {
		t.Errorf("CreateName = %q", got)
	}
}
