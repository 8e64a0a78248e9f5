package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/doctree/pkg/cache"
	"github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"text", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" text, svg ,,json")
	if strings.Join(got, "|") != "text|svg|json" {
		t.Errorf("ParseFormats() = %v", got)
	}
	if ParseFormats("") != nil {
		t.Error("ParseFormats(\"\") should be nil")
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Empty options should pass: %v", err)
	}

	if opts.MaxDepth != DefaultMaxDepth {
		t.Errorf("MaxDepth should be %d, got %d", DefaultMaxDepth, opts.MaxDepth)
	}
	if opts.Title != "Consumer Rights Structure" {
		t.Errorf("Title default = %q", opts.Title)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatText {
		t.Errorf("Formats should be [text], got %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidation(t *testing.T) {
	opts := Options{MaxDepth: -1}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative depth error = %v", err)
	}

	opts = Options{Formats: []string{"text", "gif"}}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v", err)
	}

	opts = Options{Formats: []string{"svg", "text", "svg"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if strings.Join(opts.Formats, ",") != "svg,text" {
		t.Errorf("duplicate formats should collapse: %v", opts.Formats)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Title: "T"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	original := opts

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.MaxDepth != original.MaxDepth || opts.Title != original.Title || len(opts.Formats) != len(original.Formats) {
		t.Error("options changed on second call")
	}
}

func TestOptionsNeedsGraph(t *testing.T) {
	tests := []struct {
		formats []string
		want    bool
	}{
		{[]string{"text"}, false},
		{[]string{"text", "json"}, false},
		{[]string{"dot"}, true},
		{[]string{"text", "svg"}, true},
	}
	for _, tt := range tests {
		opts := Options{Formats: tt.formats}
		if got := opts.NeedsGraph(); got != tt.want {
			t.Errorf("NeedsGraph(%v) = %v, want %v", tt.formats, got, tt.want)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	a := Options{Title: "A", Detailed: true}
	b := Options{Title: "B", Detailed: false}

	if a.ArtifactKeyOpts(FormatText) == b.ArtifactKeyOpts(FormatText) {
		t.Error("title should be part of text artifact keys")
	}
	if a.ArtifactKeyOpts(FormatDOT) == b.ArtifactKeyOpts(FormatDOT) {
		t.Error("detailed should be part of diagram artifact keys")
	}

	c := Options{Title: "C"}
	if b.ArtifactKeyOpts(FormatSVG) != c.ArtifactKeyOpts(FormatSVG) {
		t.Error("title should not affect diagram artifact keys")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		base, format, want string
	}{
		{"out/tree.txt", FormatText, "out/tree.txt"},
		{"out/tree.txt", FormatSVG, "out/tree.svg"},
		{"tree", FormatJSON, "tree.json"},
		{"a.b/tree", FormatDOT, "a.b/tree.dot"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.base, tt.format); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.base, tt.format, got, tt.want)
		}
	}
}

// memCache is an in-memory cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

const doc = `{
	"metadata": {"version": 1},
	"hierarchical_document_structure": {
		"document_structure": {
			"parts": [{"id": "p1", "type": "part", "title": "One", "level": 1,
				"children": [{"id": "p1.1", "type": "clause", "level": 2}]}]
		}
	}
}`

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), []byte(doc), Options{
		Source:  "doc.json",
		Formats: []string{FormatText, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	text := string(res.Artifacts[FormatText])
	if text != res.Report.Text() {
		t.Error("text artifact should equal the report text")
	}
	if !strings.HasPrefix(text, "=== Consumer Rights Structure JSON Tree Hierarchy ===\n\nGenerated from: doc.json") {
		t.Errorf("unexpected report header:\n%s", text)
	}
	if !strings.Contains(string(res.Artifacts[FormatJSON]), `"source": "doc.json"`) {
		t.Error("json artifact missing source")
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), "n0 -> n1;") {
		t.Error("dot artifact missing parent edge")
	}

	if res.Stats.Nodes != 2 || res.Stats.Levels != 2 {
		t.Errorf("stats = %+v, want 2 nodes over 2 levels", res.Stats)
	}
	if res.Stats.Lines != res.Report.Lines.Len() || res.Stats.InputBytes != len(doc) {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.InputHash != cache.Hash([]byte(doc)) {
		t.Error("InputHash should hash the raw input")
	}
}

func TestRunnerExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		data string
		opts Options
		code errors.Code
	}{
		{"invalid json", `{"a":`, Options{}, errors.ErrCodeInvalidJSON},
		{"empty", ``, Options{}, errors.ErrCodeInvalidJSON},
		{"not an object", `[1]`, Options{}, errors.ErrCodeInvalidInput},
		{"bad format", `{}`, Options{Formats: []string{"bmp"}}, errors.ErrCodeInvalidFormat},
		{"too deep", `{"a": {"b": {"c": {"d": 1}}}}`, Options{MaxDepth: 2}, errors.ErrCodeDepthExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, []byte(tt.data), tt.opts)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestRunnerCachesArtifacts(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Source: "doc.json", Formats: []string{FormatText, FormatDOT}}

	first, err := r.Execute(ctx, []byte(doc), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit || len(first.CacheInfo.Hits) != 0 {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}
	if c.sets != 2 {
		t.Errorf("sets = %d, want 2", c.sets)
	}

	second, err := r.Execute(ctx, []byte(doc), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if string(second.Artifacts[FormatText]) != string(first.Artifacts[FormatText]) {
		t.Error("cached artifact differs")
	}

	// A new format renders only what is missing.
	opts.Formats = []string{FormatText, FormatJSON}
	third, err := r.Execute(ctx, []byte(doc), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit || strings.Join(third.CacheInfo.Hits, ",") != FormatText {
		t.Errorf("partial hit expected: %+v", third.CacheInfo)
	}
	if c.sets != 3 {
		t.Errorf("sets = %d, want 3", c.sets)
	}

	// Refresh skips cache reads.
	gets := c.gets
	opts.Refresh = true
	if _, err := r.Execute(ctx, []byte(doc), opts); err != nil {
		t.Fatal(err)
	}
	if c.gets != gets {
		t.Error("refresh should not read the cache")
	}
}

func TestRunnerCacheKeyFollowsInput(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	if _, err := r.Execute(ctx, []byte(`{"a": 1}`), Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, []byte(`{"a": 2}`), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("different input must not hit the cache")
	}
	if !strings.Contains(string(res.Artifacts[FormatText]), "int: 2") {
		t.Error("artifact should reflect the new input")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnDecodeStart(context.Context, string, int) { h.record("decode") }
func (h *recordingHooks) OnExploreComplete(_ context.Context, _ string, _, nodeErrors int, _ time.Duration, err error) {
	if err != nil {
		h.record("explore-error")
		return
	}
	h.record("explore")
}
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render")
}

func TestRunnerFiresHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), []byte(doc), Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Execute(context.Background(), []byte(`[]`), Options{}); err == nil {
		t.Fatal("expected error for non-object document")
	}

	got := strings.Join(hooks.events, ",")
	if got != "decode,explore,render,decode,explore-error" {
		t.Errorf("events = %s", got)
	}
}
