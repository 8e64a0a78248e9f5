package jsonvalue

import (
	"math/big"
	"strings"
)

// Key returns a string that is equal for two values exactly when they
// denote the same JSON value. Numbers compare by numeric value, so 1, 1.0
// and 1e0 share a key; containers compare by their rendered form.
func Key(v Value) string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		if v.b {
			return "bool:true"
		}
		return "bool:false"
	case Number:
		if f, ok := numeric(v.s); ok {
			return "num:" + f.Text('g', -1)
		}
		return "num:" + v.s
	case String:
		return "str:" + v.s
	}
	return v.kind.String() + ":" + Repr(v)
}

// Compare orders values for display. Kinds sort as null < bool < number <
// string < array < object; numbers sort numerically, strings bytewise and
// containers by their rendered form. It returns -1, 0 or +1.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return cmpInt(int(a.kind), int(b.kind))
	}

	switch a.kind {
	case Null:
		return 0
	case Bool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		}
		return 1
	case Number:
		fa, okA := numeric(a.s)
		fb, okB := numeric(b.s)
		if okA && okB {
			if c := fa.Cmp(fb); c != 0 {
				return c
			}
		}
		return strings.Compare(a.s, b.s)
	case String:
		return strings.Compare(a.s, b.s)
	}
	return strings.Compare(Repr(a), Repr(b))
}

// numeric parses a JSON number literal with enough precision to keep large
// integers distinct.
func numeric(lit string) (*big.Float, bool) {
	f, _, err := big.ParseFloat(lit, 10, 256, big.ToNearestEven)
	if err != nil {
		return nil, false
	}
	return f, true
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
