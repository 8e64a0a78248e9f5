package doctree

import (
	"unicode/utf8"

	"github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/jsonvalue"
)

// ExploreStructure appends the tree for an arbitrary document to out.
//
// The value is classified at every position:
//   - an object with "id" and "type" is handed to [Explorer.ExploreNode] as a
//     last sibling;
//   - any other object lists its keys in source order, descending into
//     container values and showing scalar values as "{type}: {preview}";
//   - an array lists its elements as "Item N". Elements that are objects with
//     an "id" are rendered in full by ExploreNode; a failure there is recorded
//     on out as a [NodeError] and shown as an "Error exploring node" line
//     while the remaining elements still render;
//   - a bare scalar produces no output.
func (e *Explorer) ExploreStructure(out *Lines, v jsonvalue.Value) error {
	return e.explore(out, v, 0, "")
}

func (e *Explorer) explore(out *Lines, v jsonvalue.Value, level int, prefix string) error {
	if err := e.checkDepth(level); err != nil {
		return err
	}

	switch v.Kind() {
	case jsonvalue.Object:
		if IsNode(v) {
			return e.ExploreNode(out, v, level, prefix, true)
		}
		return e.exploreObject(out, v, level, prefix)
	case jsonvalue.Array:
		return e.exploreArray(out, v, level, prefix)
	}
	return nil
}

func (e *Explorer) exploreObject(out *Lines, v jsonvalue.Value, level int, prefix string) error {
	members := v.Members()
	for i, m := range members {
		isLast := i == len(members)-1
		out.Append(prefix + connector(isLast) + m.Key)

		next := childPrefix(prefix, isLast)
		if m.Value.IsContainer() {
			if err := e.explore(out, m.Value, level+1, next); err != nil {
				return err
			}
			continue
		}
		out.Appendf("%s%s%s: %s", next, connectorLast, jsonvalue.TypeName(m.Value), scalarPreview(m.Value))
	}
	return nil
}

func (e *Explorer) exploreArray(out *Lines, v jsonvalue.Value, level int, prefix string) error {
	items := v.Items()
	for i, item := range items {
		isLast := i == len(items)-1
		conn := connector(isLast)
		next := childPrefix(prefix, isLast)

		if id, ok := item.Get("id"); ok {
			idText := jsonvalue.Str(id)
			out.Appendf("%s%sItem %d: %s", prefix, conn, i, idText)
			// The node is drawn as a last sibling whatever its position.
			if err := e.ExploreNode(out, item, level+1, next, true); err != nil {
				out.recordError(&NodeError{Index: i, ID: idText, Err: err})
				out.Appendf("%s%sError exploring node: %s", next, connectorLast, errors.UserMessage(err))
			}
			continue
		}

		out.Appendf("%s%sItem %d (%s)", prefix, conn, i, jsonvalue.TypeName(item))
		if item.IsContainer() {
			if err := e.explore(out, item, level+1, next); err != nil {
				return err
			}
		}
	}
	return nil
}

// scalarPreview shows the first PreviewLimit characters of a scalar,
// marking cut values with "...".
func scalarPreview(v jsonvalue.Value) string {
	s := jsonvalue.Str(v)
	if utf8.RuneCountInString(s) > PreviewLimit {
		return jsonvalue.Truncate(s, PreviewLimit) + "..."
	}
	return s
}
