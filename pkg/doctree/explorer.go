package doctree

import (
	"fmt"

	"github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/jsonvalue"
)

const (
	// DefaultMaxDepth bounds explorer recursion. Nesting beyond it fails with
	// an errors.ErrCodeDepthExceeded error.
	DefaultMaxDepth = 1000

	// PreviewLimit is the number of characters shown for scalar previews.
	PreviewLimit = 100
)

// Sentinels rendered for node fields whose key is absent.
const (
	MissingID    = "NO_ID"
	MissingType  = "NO_TYPE"
	MissingTitle = "NO_TITLE"
	MissingLevel = "NO_LEVEL"
)

const (
	connectorLast = "└── "
	connectorMid  = "├── "
	indentLast    = "    "
	indentMid     = "│   "
)

// Options configures an [Explorer].
type Options struct {
	// MaxDepth is the deepest nesting level explored. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Explorer walks JSON documents and writes tree lines. An Explorer holds no
// per-traversal state, so one value can serve concurrent traversals that
// each use their own [Lines].
type Explorer struct {
	maxDepth int
}

// New returns an Explorer configured by opts.
func New(opts Options) *Explorer {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Explorer{maxDepth: opts.MaxDepth}
}

// NodeError describes a node inside a list whose detailed rendering failed.
// The traversal records it and continues with the next sibling.
type NodeError struct {
	Index int    // Position of the node in its list
	ID    string // Rendered id of the node
	Err   error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("item %d (%s): %v", e.Index, e.ID, e.Err)
}

// Unwrap returns the underlying failure.
func (e *NodeError) Unwrap() error { return e.Err }

// IsNode reports whether v has the shape of a document node: an object with
// both an "id" and a "type" key.
func IsNode(v jsonvalue.Value) bool {
	return v.Has("id") && v.Has("type")
}

func connector(isLast bool) string {
	if isLast {
		return connectorLast
	}
	return connectorMid
}

func childPrefix(prefix string, isLast bool) string {
	if isLast {
		return prefix + indentLast
	}
	return prefix + indentMid
}

func (e *Explorer) checkDepth(level int) error {
	if level > e.maxDepth {
		return errors.New(errors.ErrCodeDepthExceeded, "maximum depth %d exceeded", e.maxDepth)
	}
	return nil
}

// field renders the member stored under key, or fallback when the key is
// absent. Present but empty or zero values render as themselves.
func field(v jsonvalue.Value, key, fallback string) string {
	if f, ok := v.Get(key); ok {
		return jsonvalue.Str(f)
	}
	return fallback
}
