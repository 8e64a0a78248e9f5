// Package pkg provides the core libraries for doctree.
//
// # Overview
//
// doctree walks a JSON document and renders its shape as an indented text
// tree. Objects that carry an "id" and a "type" are nodes; their "children"
// are drawn as a hierarchy, and every value stored under a "level" key is
// counted into a per-level histogram.
//
// # Architecture
//
// The typical data flow:
//
//	JSON file / request body
//	         ↓
//	    [io] package (ordered decode, size checks)
//	         ↓
//	    [doctree] package (explore nodes and structure, collect levels)
//	         ↓
//	    [pipeline] package (render formats, cache artifacts)
//	         ↓
//	    text / JSON / DOT / SVG / PNG / PDF output
//
// # Quick Start
//
//	doc, _ := io.ImportJSON("data/policy.json")
//	report, _ := doctree.New(doctree.Options{}).
//	    BuildReport(doc.Value, doctree.ReportOptions{Source: "data/policy.json"})
//	fmt.Println(report.Text())
//
// # Main Packages
//
// [jsonvalue] - Ordered JSON values with the type names and string forms
// used in reports.
//
// [doctree] - The Node Explorer, Structure Explorer, Statistics Collector
// and Line Accumulator.
//
// [io] - Reading documents and writing reports.
//
// [render/nodelink] - Graphviz diagrams of the node hierarchy.
//
// [render] - SVG to PDF/PNG conversion.
//
// [pipeline] - Explore and render with caching, shared by CLI and server.
//
// [cache] - File, Redis, MongoDB and null artifact caches.
//
// [config] - TOML and YAML configuration.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Coded errors and input validation.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [jsonvalue]: https://pkg.go.dev/github.com/matzehuels/doctree/pkg/jsonvalue
// [doctree]: https://pkg.go.dev/github.com/matzehuels/doctree/pkg/doctree
// [io]: https://pkg.go.dev/github.com/matzehuels/doctree/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/doctree/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/doctree/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/doctree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/doctree/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/doctree/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/doctree/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/doctree/pkg/errors
package pkg
