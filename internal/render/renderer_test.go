package render_test

import (
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/render"
)

func TestRender_Markdown(t *testing.T) {
	r := render.New()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"heading with auto id", "# Hello World", []string{`<h1 id="hello-world">Hello World</h1>`}},
		{"emphasis", "some *emphasis* here", []string{"<em>emphasis</em>"}},
		{"gfm table", "| a | b |\n|---|---|\n| 1 | 2 |", []string{"<table>", "<td>1</td>"}},
		{"strikethrough", "~~gone~~", []string{"<del>gone</del>"}},
		{"task list", "- [x] done\n- [ ] todo", []string{`type="checkbox"`, "checked"}},
		{"autolink", "see https://example.com now", []string{`<a href="https://example.com"`}},
		{"raw html passes through", `<div class="note">hi</div>`, []string{`<div class="note">hi</div>`}},
		{"fenced code", "```\nx := 1\n```", []string{"<pre><code>x := 1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Render(tc.in)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Errorf("Render(%q) = %q, missing %q", tc.in, got, want)
				}
			}
		})
	}
}

func TestRender_BlankContent(t *testing.T) {
	r := render.New()
	for _, in := range []string{"", "   ", "\n\t\n"} {
		got, err := r.Render(in)
		if err != nil {
			t.Fatalf("Render(%q): %v", in, err)
		}
		if got != render.EmptyPreview {
			t.Errorf("Render(%q) = %q, want empty-preview placeholder", in, got)
		}
	}
}

func TestGuard_StaleResultRejected(t *testing.T) {
	g := render.NewGuard()

	first := g.Begin("file_1")
	second := g.Begin("file_1")

	if g.Accept("file_1", first) {
		t.Error("superseded request accepted")
	}
	if !g.Accept("file_1", second) {
		t.Error("latest request rejected")
	}
	// accepting is not consuming
	if !g.Accept("file_1", second) {
		t.Error("latest request rejected on recheck")
	}
}

func TestGuard_SurfacesAreIndependent(t *testing.T) {
	g := render.NewGuard()

	main := g.Begin("file_1")
	split := g.Begin("split_a")
	g.Begin("file_1")

	if g.Accept("file_1", main) {
		t.Error("stale main-surface request accepted")
	}
	if !g.Accept("split_a", split) {
		t.Error("unrelated surface invalidated")
	}
}

func TestGuard_Forget(t *testing.T) {
	g := render.NewGuard()
	seq := g.Begin("file_1")
	g.Forget("file_1")
	if g.Accept("file_1", seq) {
		t.Error("forgotten surface still accepts old sequence")
	}
	if got := g.Begin("file_1"); got != 1 {
		t.Errorf("sequence after Forget = %d, want restart at 1", got)
	}
}
