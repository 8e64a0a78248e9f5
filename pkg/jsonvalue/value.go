// Package jsonvalue provides an order-preserving, immutable model of a
// decoded JSON document.
//
// Every value is one of six kinds ([Null], [Bool], [Number], [String],
// [Array], [Object]). Objects remember the order in which their members
// appeared in the source text, which the tree renderers rely on to produce
// deterministic output. Numbers keep their original literal so that integers
// of any size survive decoding untouched.
//
// Values are built by [Decode] or by the constructors ([ObjectOf], [ArrayOf],
// [StringOf], ...), and are safe to share between goroutines once built.
package jsonvalue

// Kind identifies the variant held by a [Value].
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

var kindNames = [...]string{
	Null:   "null",
	Bool:   "bool",
	Number: "number",
	String: "string",
	Array:  "array",
	Object: "object",
}

// String returns the JSON name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is a decoded JSON value. The zero Value is JSON null.
type Value struct {
	kind    Kind
	b       bool
	s       string // string contents or number literal
	items   []Value
	members []Member
	index   map[string]int
}

// NullValue returns JSON null.
func NullValue() Value { return Value{} }

// BoolOf returns a boolean value.
func BoolOf(b bool) Value { return Value{kind: Bool, b: b} }

// NumberOf returns a number value holding the literal lit, e.g. "42" or "1.5e3".
// The literal is not validated.
func NumberOf(lit string) Value { return Value{kind: Number, s: lit} }

// StringOf returns a string value.
func StringOf(s string) Value { return Value{kind: String, s: s} }

// ArrayOf returns an array holding items in order.
func ArrayOf(items ...Value) Value {
	return Value{kind: Array, items: items}
}

// ObjectOf returns an object holding members in order. A repeated key keeps
// the position of its first occurrence and the value of its last one.
func ObjectOf(members ...Member) Value {
	v := Value{kind: Object, index: make(map[string]int, len(members))}
	v.members = make([]Member, 0, len(members))
	for _, m := range members {
		if i, ok := v.index[m.Key]; ok {
			v.members[i].Value = m.Value
			continue
		}
		v.index[m.Key] = len(v.members)
		v.members = append(v.members, m)
	}
	return v
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsContainer reports whether v is an object or an array.
func (v Value) IsContainer() bool { return v.kind == Object || v.kind == Array }

// Bool returns the boolean held by v, false for other kinds.
func (v Value) Bool() bool { return v.b }

// Text returns the string contents of a String value or the literal of a
// Number value. It is empty for other kinds.
func (v Value) Text() string { return v.s }

// Len returns the number of items of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	}
	return 0
}

// Items returns the elements of an array. The slice must not be modified.
func (v Value) Items() []Value { return v.items }

// Members returns the members of an object in source order. The slice must
// not be modified.
func (v Value) Members() []Member { return v.members }

// Get returns the member value stored under key. The second result is false
// when v is not an object or has no such key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}
	return v.members[i].Value, true
}

// Has reports whether v is an object with the given key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}
