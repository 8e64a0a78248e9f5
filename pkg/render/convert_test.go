package render

import (
	"testing"

	"github.com/matzehuels/doctree/pkg/errors"
)

func TestToPDFWithoutConverter(t *testing.T) {
	if ConverterAvailable() {
		t.Skip("rsvg-convert installed")
	}
	_, err := ToPDF([]byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want UNSUPPORTED", err)
	}
}

func TestToPNG(t *testing.T) {
	if !ConverterAvailable() {
		t.Skip("rsvg-convert not installed")
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`
	png, err := ToPNG([]byte(svg), 1.0)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Error("ToPNG() output is not a PNG")
	}
}
