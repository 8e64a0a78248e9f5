package doctree

import (
	"github.com/matzehuels/doctree/pkg/jsonvalue"
)

// ExploreNode appends the summary line for v at the given prefix and then
// renders its children one level deeper.
//
// An object renders as "{id} ({type}) - Level {level}: {title}" with the
// NO_* sentinels for absent keys. Any other value renders as a "Non-dict
// node" line carrying its type name and a preview, and is not descended
// into. Children are read from a "children" array; a missing, empty or
// non-array "children" ends the branch.
//
// The returned error is non-nil only when the depth limit is exceeded.
// Lines appended before the failure stay in out.
func (e *Explorer) ExploreNode(out *Lines, v jsonvalue.Value, level int, prefix string, isLast bool) error {
	if err := e.checkDepth(level); err != nil {
		return err
	}

	conn := connector(isLast)
	if v.Kind() != jsonvalue.Object {
		out.Appendf("%s%sNon-dict node: %s = %s", prefix, conn,
			jsonvalue.TypeName(v), jsonvalue.Preview(v, PreviewLimit))
		return nil
	}

	out.Appendf("%s%s%s (%s) - Level %s: %s", prefix, conn,
		field(v, "id", MissingID),
		field(v, "type", MissingType),
		field(v, "level", MissingLevel),
		field(v, "title", MissingTitle))

	children, ok := v.Get("children")
	if !ok || children.Kind() != jsonvalue.Array {
		return nil
	}

	next := childPrefix(prefix, isLast)
	items := children.Items()
	for i, child := range items {
		if err := e.ExploreNode(out, child, level+1, next, i == len(items)-1); err != nil {
			return err
		}
	}
	return nil
}
