package doctree

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/jsonvalue"
)

const (
	// DefaultTitle names the document in the report banner.
	DefaultTitle = "Consumer Rights Structure"

	hierarchyKey = "hierarchical_document_structure"
	structureKey = "document_structure"
)

// ReportOptions describes the document being reported on.
type ReportOptions struct {
	Title  string // Banner title; DefaultTitle when empty
	Source string // Where the document came from, shown as "Generated from"
}

// Report is the rendered text report for one document.
type Report struct {
	Title        string
	Source       string
	TopLevelKeys int
	Lines        *Lines
	Levels       *Histogram
}

// Text returns the report joined with newlines.
func (r *Report) Text() string { return r.Lines.String() }

// NodeErrors returns the node failures recorded while rendering.
func (r *Report) NodeErrors() []*NodeError { return r.Lines.NodeErrors() }

// BuildReport renders the full report for doc: a banner, the top-level
// structure, the detailed hierarchy when the document carries a
// "hierarchical_document_structure" key, and level statistics.
//
// doc must be an object. Depth failures outside of list items abort the
// report.
func (e *Explorer) BuildReport(doc jsonvalue.Value, opts ReportOptions) (*Report, error) {
	if doc.Kind() != jsonvalue.Object {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"top-level JSON value must be an object, got %s", jsonvalue.TypeName(doc))
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}

	out := &Lines{}
	out.Appendf("=== %s JSON Tree Hierarchy ===", opts.Title)
	out.Append("")
	out.Appendf("Generated from: %s", opts.Source)
	out.Appendf("Total top-level keys: %d", doc.Len())
	out.Append("")

	out.Append("=== TOP-LEVEL STRUCTURE ===")
	if err := e.ExploreStructure(out, doc); err != nil {
		return nil, err
	}

	if hier, ok := doc.Get(hierarchyKey); ok {
		out.Append("")
		out.Append("=== DETAILED HIERARCHICAL DOCUMENT STRUCTURE ===")
		if err := e.exploreHierarchy(out, hier); err != nil {
			return nil, err
		}
	}

	levels := CollectLevels(doc)
	writeStatistics(out, levels)

	return &Report{
		Title:        opts.Title,
		Source:       opts.Source,
		TopLevelKeys: doc.Len(),
		Lines:        out,
		Levels:       levels,
	}, nil
}

func (e *Explorer) exploreHierarchy(out *Lines, hier jsonvalue.Value) error {
	structure, ok := hier.Get(structureKey)
	if !ok {
		return nil
	}
	if structure.Kind() != jsonvalue.Object {
		return e.ExploreStructure(out, structure)
	}

	for _, group := range structure.Members() {
		out.Appendf("\n--- %s ---", upper(group.Key))

		if group.Value.Kind() != jsonvalue.Array {
			if err := e.ExploreStructure(out, group.Value); err != nil {
				return err
			}
			continue
		}

		items := group.Value.Items()
		for i, item := range items {
			if !item.Has("id") {
				out.Appendf("Item %d: %s", i, jsonvalue.TypeName(item))
				continue
			}
			if err := e.ExploreNode(out, item, 0, "", i == len(items)-1); err != nil {
				return err
			}
		}
	}
	return nil
}

// upper applies full Unicode case mapping, so "ß" becomes "SS".
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func writeStatistics(out *Lines, levels *Histogram) {
	out.Append("")
	out.Append("=== STATISTICS ===")

	lo, hi, ok := levels.Range()
	if !ok {
		return
	}
	out.Append("Node counts by level:")
	for _, b := range levels.Sorted() {
		out.Appendf("  Level %s: %d nodes", jsonvalue.Str(b.Level), b.Count)
	}
	out.Appendf("Total levels: %d (levels %s to %s)", levels.Len(), jsonvalue.Str(lo), jsonvalue.Str(hi))
}
