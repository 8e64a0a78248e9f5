package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxNesting bounds how deeply arrays and objects may nest in decoded input.
// It matches the limit enforced by encoding/json.
const MaxNesting = 10000

var (
	// ErrEmpty is returned when the input holds no JSON value.
	ErrEmpty = errors.New("input is empty or contains only whitespace")

	// ErrTrailingData is returned when more than one value follows the first.
	ErrTrailingData = errors.New("invalid trailing data after top-level value")

	// ErrTooDeep is returned when nesting exceeds MaxNesting.
	ErrTooDeep = fmt.Errorf("exceeded max nesting depth of %d", MaxNesting)
)

// Decode reads exactly one JSON value from r, keeping object member order.
//
// Syntax errors are returned as produced by encoding/json (typically
// *json.SyntaxError), so callers can report the failing offset.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, ErrEmpty
		}
		return Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return Value{}, err
		}
		return Value{}, ErrTrailingData
	}
	return v, nil
}

// DecodeBytes is a convenience wrapper around [Decode].
func DecodeBytes(data []byte) (Value, error) {
	return Decode(bytes.NewReader(data))
}

func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if depth >= MaxNesting {
			return Value{}, ErrTooDeep
		}
		switch t {
		case '{':
			return decodeObject(dec, depth+1)
		case '[':
			return decodeArray(dec, depth+1)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q at offset %d", rune(t), dec.InputOffset())
	case string:
		return StringOf(t), nil
	case json.Number:
		return NumberOf(string(t)), nil
	case bool:
		return BoolOf(t), nil
	case nil:
		return NullValue(), nil
	}
	return Value{}, fmt.Errorf("unexpected token %v at offset %d", tok, dec.InputOffset())
}

func decodeObject(dec *json.Decoder, depth int) (Value, error) {
	var members []Member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected object key at offset %d", dec.InputOffset())
		}
		val, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}
		members = append(members, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, unexpectedEOF(err)
	}
	return ObjectOf(members...), nil
}

func decodeArray(dec *json.Decoder, depth int) (Value, error) {
	items := []Value{}
	for dec.More() {
		val, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}
		items = append(items, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, unexpectedEOF(err)
	}
	return ArrayOf(items...), nil
}

// unexpectedEOF turns a bare io.EOF inside a container into
// io.ErrUnexpectedEOF so that truncated input is not mistaken for empty input.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
