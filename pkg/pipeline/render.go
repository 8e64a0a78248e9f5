package pipeline

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/matzehuels/doctree/pkg/doctree"
	"github.com/matzehuels/doctree/pkg/errors"
	pkgio "github.com/matzehuels/doctree/pkg/io"
	"github.com/matzehuels/doctree/pkg/jsonvalue"
	"github.com/matzehuels/doctree/pkg/render/nodelink"
)

// pngScale is the resolution multiplier for PNG output.
const pngScale = 2.0

// Render generates artifacts for the given formats from a built report and
// the document it was built from. The DOT source is generated at most once.
func Render(r *doctree.Report, doc jsonvalue.Value, formats []string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))

	var dot string
	dotSource := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.Detailed})
		}
		return dot
	}

	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			data = []byte(r.Text())
		case FormatJSON:
			var buf bytes.Buffer
			err = pkgio.WriteJSON(r, &buf)
			data = buf.Bytes()
		case FormatDOT:
			data = []byte(dotSource())
		case FormatSVG:
			data, err = nodelink.RenderSVG(dotSource())
		case FormatPNG:
			data, err = nodelink.RenderPNG(dotSource(), pngScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dotSource())
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// OutputPath derives the path for a format's artifact from the text output
// path: the text format keeps base, other formats swap the extension.
func OutputPath(base, format string) string {
	if format == FormatText {
		return base
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + FormatExtensions[format]
}
