// Package io reads JSON documents from disk and writes rendered reports.
//
// # Overview
//
// The package sits between the file system and [doctree]. It keeps the raw
// bytes of every document it reads, so callers can hash the input for
// caching, and decodes them into an insertion-ordered [jsonvalue.Value] so
// that rendered trees list keys in the order they appear in the file.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader:
//
//	doc, err := io.ImportJSON("data/consumer_rights_structure.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Size(), doc.Value.Len())
//
// Failures carry a code from [errors]:
//
//   - FILE_NOT_FOUND: the path does not exist
//   - INVALID_JSON: the bytes are not exactly one JSON value
//   - INVALID_PATH: the path is empty or malformed
//
// # Export
//
// Reports are written as plain text with [WriteText] / [ExportText], which
// produce the lines joined by single newlines with no trailing newline, or
// as a JSON summary with [WriteJSON] / [ExportJSON]:
//
//	{
//	  "title": "Consumer Rights Structure",
//	  "source": "data/consumer_rights_structure.json",
//	  "top_level_keys": 2,
//	  "lines": ["=== Consumer Rights Structure JSON Tree Hierarchy ===", ...],
//	  "levels": [{"level": "1", "count": 4}],
//	  "node_errors": []
//	}
//
// [WriteFile] writes any artifact atomically enough for CLI use: the target
// directory is created if needed and the file is replaced in one write.
//
// # Concurrency
//
// All functions are safe to call concurrently. Each call to [ReadJSON]
// produces an independent value.
//
// [doctree]: github.com/matzehuels/doctree/pkg/doctree
package io
