// Package nodelink renders the node hierarchy of a JSON document as a
// node-link diagram.
//
// # Overview
//
// Every object carrying both an "id" and a "type" key becomes a box. An
// arrow joins a node to each node-shaped element of its "children" list.
// Nodes found anywhere else in the document (inside generic objects or
// lists) start a new tree, so the diagram shows the same nodes as the
// detailed text report.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: When true, labels add the node's level and title.
//
// # DOT Format
//
// Graphviz identifiers are synthetic ("n0", "n1", ...) because document
// ids need not be unique. The generated DOT uses top-to-bottom layout
// (rankdir=TB) with rounded box nodes; tree roots are shaded.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
