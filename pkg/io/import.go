package io

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/jsonvalue"
)

// Document is a decoded JSON document together with the bytes it came from.
type Document struct {
	Path  string          // Source path; empty for documents read from a stream
	Raw   []byte          // Bytes as read
	Value jsonvalue.Value // Decoded, insertion-ordered value
}

// Size returns the length of the raw input in bytes.
func (d *Document) Size() int { return len(d.Raw) }

// SizeMB returns the raw input size in megabytes.
func (d *Document) SizeMB() float64 { return float64(len(d.Raw)) / (1024 * 1024) }

// ReadJSON reads all of r and decodes it as exactly one JSON value.
//
// Syntax errors, empty input and trailing data are reported with code
// INVALID_JSON. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read input")
	}
	return ParseJSON(raw)
}

// ParseJSON decodes raw as exactly one JSON value. The returned document
// keeps a reference to raw.
func ParseJSON(raw []byte) (*Document, error) {
	v, err := jsonvalue.DecodeBytes(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidJSON, err, "invalid JSON%s", syntaxOffset(err))
	}
	return &Document{Raw: raw, Value: v}, nil
}

// ImportJSON reads and decodes the JSON file at path.
//
// A missing file yields FILE_NOT_FOUND; other open or read failures are
// INTERNAL_ERROR. Decoding failures are INVALID_JSON as in [ReadJSON].
func ImportJSON(path string) (*Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}

	doc, err := ParseJSON(raw)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

func syntaxOffset(err error) string {
	var se *json.SyntaxError
	if stderrors.As(err, &se) {
		return " at offset " + strconv.FormatInt(se.Offset, 10)
	}
	return ""
}
