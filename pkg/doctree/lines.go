package doctree

import (
	"fmt"
	"io"
	"strings"
)

// Lines is an append-only sequence of rendered output lines. Lines already
// written are never modified. The zero value is ready to use. A section
// header may be a single entry that starts with a newline.
//
// A Lines value is owned by a single traversal and is not safe for
// concurrent use.
type Lines struct {
	lines []string
	errs  []*NodeError
}

// Append adds one line.
func (l *Lines) Append(line string) {
	l.lines = append(l.lines, line)
}

// Appendf adds one formatted line.
func (l *Lines) Appendf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// Len returns the number of lines written so far.
func (l *Lines) Len() int { return len(l.lines) }

// Slice returns a copy of all lines.
func (l *Lines) Slice() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// String joins the lines with single newlines, without a trailing newline.
func (l *Lines) String() string {
	return strings.Join(l.lines, "\n")
}

// WriteTo writes the joined lines to w.
func (l *Lines) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, l.String())
	return int64(n), err
}

// NodeErrors returns the node failures recorded during traversal, in the
// order they occurred.
func (l *Lines) NodeErrors() []*NodeError {
	return l.errs
}

func (l *Lines) recordError(e *NodeError) {
	l.errs = append(l.errs, e)
}
