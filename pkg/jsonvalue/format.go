package jsonvalue

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TypeName returns the runtime type name printed in tree lines:
// "dict", "list", "str", "int", "float", "bool" or "NoneType".
// A number is an "int" unless its literal has a fraction or an exponent.
func TypeName(v Value) string {
	switch v.kind {
	case Object:
		return "dict"
	case Array:
		return "list"
	case String:
		return "str"
	case Number:
		if isIntLiteral(v.s) {
			return "int"
		}
		return "float"
	case Bool:
		return "bool"
	}
	return "NoneType"
}

// Str renders v for display. Strings render raw; every other kind renders
// the way it would appear inside a container (see [Repr]).
func Str(v Value) string {
	if v.kind == String {
		return v.s
	}
	return Repr(v)
}

// Repr renders v in literal notation: strings are quoted, null is None,
// booleans are True and False, arrays are [a, b] and objects are {'k': v}.
func Repr(v Value) string {
	var b strings.Builder
	writeRepr(&b, v)
	return b.String()
}

func writeRepr(b *strings.Builder, v Value) {
	switch v.kind {
	case Null:
		b.WriteString("None")
	case Bool:
		if v.b {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case Number:
		b.WriteString(formatNumber(v.s))
	case String:
		b.WriteString(quote(v.s))
	case Array:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, item)
		}
		b.WriteByte(']')
	case Object:
		b.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quote(m.Key))
			b.WriteString(": ")
			writeRepr(b, m.Value)
		}
		b.WriteByte('}')
	}
}

// Truncate returns the first n characters (runes) of s.
func Truncate(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Preview returns Str(v) cut to n characters.
func Preview(v Value, n int) string {
	return Truncate(Str(v), n)
}

func isIntLiteral(lit string) bool {
	return lit != "" && !strings.ContainsAny(lit, ".eE")
}

// formatNumber canonicalizes a JSON number literal: integers keep arbitrary
// precision, floats use the shortest round-trip digits with a ".0" suffix
// for integral values and exponent notation outside [1e-4, 1e16).
func formatNumber(lit string) string {
	if isIntLiteral(lit) {
		n, ok := new(big.Int).SetString(lit, 10)
		if !ok {
			return lit
		}
		return n.String()
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		if math.IsInf(f, 0) {
			if f > 0 {
				return "inf"
			}
			return "-inf"
		}
		return lit
	}
	return formatFloat(f)
}

func formatFloat(f float64) string {
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	e := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])

	if exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// quote renders s as a single-quoted literal, switching to double quotes when
// s contains a single quote but no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case !unicode.IsPrint(r) && r > 0x7f:
			if r <= 0xffff {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				fmt.Fprintf(&b, `\U%08x`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
