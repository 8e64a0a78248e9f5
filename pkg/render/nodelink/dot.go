package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/doctree/pkg/doctree"
	"github.com/matzehuels/doctree/pkg/jsonvalue"
	"github.com/matzehuels/doctree/pkg/render"
)

// labelLimit caps titles shown in detailed labels.
const labelLimit = 40

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the level and title to node labels.
	// When false, labels show "id (type)".
	Detailed bool
}

// Node is one node-shaped object found in a document.
type Node struct {
	Name   string // Graphviz identifier
	ID     string // Rendered "id" value
	Type   string // Rendered "type" value
	Level  string // Rendered "level" value or doctree.MissingLevel
	Title  string // Rendered "title" value or doctree.MissingTitle
	Parent string // Name of the parent node; empty for roots
}

// Edge joins a node to one of its children.
type Edge struct {
	From, To string
}

// Graph is the node hierarchy extracted from a document.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Extract collects the node hierarchy of doc in document order.
func Extract(doc jsonvalue.Value) Graph {
	var g Graph
	g.walk(doc, "")
	return g
}

// walk visits v. parent is the Graphviz name of the node whose "children"
// list holds v, or empty.
func (g *Graph) walk(v jsonvalue.Value, parent string) {
	switch v.Kind() {
	case jsonvalue.Object:
		if doctree.IsNode(v) {
			g.addNode(v, parent)
			return
		}
		for _, m := range v.Members() {
			g.walk(m.Value, "")
		}
	case jsonvalue.Array:
		for _, item := range v.Items() {
			g.walk(item, "")
		}
	}
}

func (g *Graph) addNode(v jsonvalue.Value, parent string) {
	n := Node{
		Name:   "n" + strconv.Itoa(len(g.Nodes)),
		ID:     field(v, "id", doctree.MissingID),
		Type:   field(v, "type", doctree.MissingType),
		Level:  field(v, "level", doctree.MissingLevel),
		Title:  field(v, "title", doctree.MissingTitle),
		Parent: parent,
	}
	g.Nodes = append(g.Nodes, n)
	if parent != "" {
		g.Edges = append(g.Edges, Edge{From: parent, To: n.Name})
	}

	for _, m := range v.Members() {
		if m.Key == "children" && m.Value.Kind() == jsonvalue.Array {
			for _, child := range m.Value.Items() {
				if doctree.IsNode(child) {
					g.addNode(child, n.Name)
				} else {
					g.walk(child, "")
				}
			}
			continue
		}
		g.walk(m.Value, "")
	}
}

func field(v jsonvalue.Value, key, fallback string) string {
	if f, ok := v.Get(key); ok {
		return jsonvalue.Str(f)
	}
	return fallback
}

// ToDOT converts the node hierarchy of doc to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(doc jsonvalue.Value, opts Options) string {
	return Extract(doc).DOT(opts)
}

// DOT writes g in Graphviz DOT format.
func (g Graph) DOT(opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %s [%s];\n", n.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %s -> %s;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n Node, detailed bool) string {
	label := fmt.Sprintf("%s (%s)", n.ID, n.Type)
	if !detailed {
		return label
	}
	return label + "\nlevel: " + n.Level + "\ntitle: " + jsonvalue.Truncate(n.Title, labelLimit)
}

func fmtAttrs(n Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Parent == "" {
		attrs = append(attrs, "fillcolor=lightgrey", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from its
// viewBox instead of Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
