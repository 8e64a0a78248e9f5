// Package render turns JSON documents into graphical artifacts.
//
// # Overview
//
// The text tree produced by [doctree] is the primary output of doctree.
// This package adds a graphical view of the same node hierarchy:
//
//   - Node-link diagrams of node-shaped objects (in [nodelink] subpackage)
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [doctree]: github.com/matzehuels/doctree/pkg/doctree
// [nodelink]: github.com/matzehuels/doctree/pkg/render/nodelink
package render
