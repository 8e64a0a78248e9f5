package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/doctree/pkg/doctree"
	"github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/jsonvalue"
)

type report struct {
	Title        string      `json:"title"`
	Source       string      `json:"source"`
	TopLevelKeys int         `json:"top_level_keys"`
	Lines        []string    `json:"lines"`
	Levels       []level     `json:"levels"`
	NodeErrors   []nodeError `json:"node_errors"`
}

type level struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

type nodeError struct {
	Index   int    `json:"index"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// WriteText writes the report lines to w joined by single newlines.
func WriteText(r *doctree.Report, w io.Writer) error {
	if _, err := r.Lines.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write report")
	}
	return nil
}

// ExportText writes the report text to the file at path.
func ExportText(r *doctree.Report, path string) error {
	return WriteFile(path, []byte(r.Text()))
}

// WriteJSON encodes a summary of the report as indented JSON.
// Level values are rendered the way the text report shows them.
func WriteJSON(r *doctree.Report, w io.Writer) error {
	out := report{
		Title:        r.Title,
		Source:       r.Source,
		TopLevelKeys: r.TopLevelKeys,
		Lines:        r.Lines.Slice(),
		Levels:       []level{},
		NodeErrors:   []nodeError{},
	}
	for _, b := range r.Levels.Sorted() {
		out.Levels = append(out.Levels, level{Level: jsonvalue.Str(b.Level), Count: b.Count})
	}
	for _, ne := range r.NodeErrors() {
		out.NodeErrors = append(out.NodeErrors, nodeError{
			Index:   ne.Index,
			ID:      ne.ID,
			Message: errors.UserMessage(ne.Err),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
	}
	return nil
}

// ExportJSON writes the JSON summary of the report to the file at path.
func ExportJSON(r *doctree.Report, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(r, f)
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create directory %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	return f, nil
}
