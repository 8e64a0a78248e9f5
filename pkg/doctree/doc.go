// Package doctree renders hierarchical JSON documents as text trees.
//
// A document is any decoded [jsonvalue.Value]. The package does not assume a
// schema: at every position it decides how to draw the value from its shape.
//
//   - An object with both an "id" and a "type" key is a node. Nodes render as
//     one summary line ("root (section) - Level 0: Root") followed by their
//     "children", see [Explorer.ExploreNode].
//   - Any other object renders one line per key, see [Explorer.ExploreStructure].
//   - Arrays render one "Item N" line per element.
//   - Scalars render as a type and preview line under their key.
//
// Lines use the conventional box-drawing connectors:
//
//	└── root (section) - Level 0: Root
//	    ├── c1 (sub) - Level 1: First
//	    │   └── c1a (para) - Level 2: Nested
//	    └── c2 (sub) - Level 1: Second
//
// All output goes to a [Lines] accumulator that is threaded through the whole
// traversal and only ever appended to. A separate pass, [CollectLevels],
// counts the values stored under every "level" key.
//
// [Explorer.BuildReport] combines both into the full text report.
package doctree
