package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/doctree/pkg/jsonvalue"
)

func decode(t *testing.T, s string) jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.DecodeBytes([]byte(s))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

const sample = `{
	"meta": {"id": "not-a-node"},
	"sections": [
		{"id": "s1", "type": "section", "level": 1, "title": "Intro", "children": [
			{"id": "s1.1", "type": "clause", "level": 2},
			"text",
			{"note": {"id": "x", "type": "aside"}}
		]},
		{"id": "s2", "type": "section", "children": "none"}
	]
}`

func TestExtract(t *testing.T) {
	g := Extract(decode(t, sample))

	var ids []string
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
	}
	if got := strings.Join(ids, ","); got != "s1,s1.1,x,s2" {
		t.Errorf("node order = %s, want s1,s1.1,x,s2", got)
	}

	if len(g.Edges) != 1 || g.Edges[0] != (Edge{From: "n0", To: "n1"}) {
		t.Errorf("edges = %+v, want n0 -> n1 only", g.Edges)
	}
	if g.Nodes[2].Parent != "" {
		t.Error("node nested outside children should start a new tree")
	}
	if g.Nodes[3].Level != "NO_LEVEL" || g.Nodes[3].Title != "NO_TITLE" {
		t.Errorf("missing fields should use sentinels: %+v", g.Nodes[3])
	}
}

func TestExtract_NoNodes(t *testing.T) {
	g := Extract(decode(t, `{"a": [1, 2, {"b": null}]}`))
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("Extract() = %+v, want empty graph", g)
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(decode(t, sample), Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `n0 [label="s1 (section)"`) {
		t.Errorf("ToDOT() output missing node s1:\n%s", dot)
	}
	if !strings.Contains(dot, `n1 [label="s1.1 (clause)"]`) {
		t.Errorf("ToDOT() output missing child node:\n%s", dot)
	}
	if !strings.Contains(dot, "n0 -> n1;") {
		t.Error("ToDOT() output missing edge")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(decode(t, `{"id": 7, "type": "part", "level": 0, "title": "Scope"}`), Options{Detailed: true})

	if !strings.Contains(dot, `7 (part)\nlevel: 0\ntitle: Scope`) {
		t.Errorf("ToDOT() detailed output missing level and title:\n%s", dot)
	}
}

func TestToDOT_QuotesLabels(t *testing.T) {
	dot := ToDOT(decode(t, `{"id": "say \"hi\"", "type": "t"}`), Options{})
	if !strings.Contains(dot, `label="say \"hi\" (t)"`) {
		t.Errorf("ToDOT() should escape quotes:\n%s", dot)
	}
}

func TestFmtLabel_Simple(t *testing.T) {
	n := Node{ID: "a", Type: "t", Level: "1", Title: "x"}
	if label := fmtLabel(n, false); label != "a (t)" {
		t.Errorf("fmtLabel() simple mode = %q, want %q", label, "a (t)")
	}
}

func TestFmtLabel_DetailedTruncatesTitle(t *testing.T) {
	n := Node{ID: "a", Type: "t", Level: "1", Title: strings.Repeat("é", 50)}
	label := fmtLabel(n, true)

	if !strings.HasSuffix(label, "title: "+strings.Repeat("é", labelLimit)) {
		t.Errorf("fmtLabel() detailed title not truncated: %q", label)
	}
}

func TestFmtAttrs(t *testing.T) {
	root := fmtAttrs(Node{Name: "n0"}, "l")
	if len(root) != 3 || !strings.Contains(strings.Join(root, " "), "lightgrey") {
		t.Errorf("fmtAttrs() root = %v", root)
	}

	child := fmtAttrs(Node{Name: "n1", Parent: "n0"}, "l")
	if len(child) != 1 || !strings.Contains(child[0], "label=") {
		t.Errorf("fmtAttrs() child = %v", child)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(decode(t, sample), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(`not valid DOT {{{`)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
