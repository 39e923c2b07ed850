// Package wire implements a schema-driven binary protobuf codec:
// encode/decode a generic value tree to and from protobuf wire format
// using only a runtime field-descriptor list, with no compile-time
// knowledge of any particular message shape. It stands in for the
// WebAssembly-resident codec the generated ReScript's "wasm" mode calls
// into (see the "wasm" plugin directive parsed by internal/gen) — this
// package is the reference implementation its round-trip behavior is
// grounded on.
package wire

import "fmt"

// TypeTag is one of the fifteen protobuf scalar names plus message and
// enum.
type TypeTag string

const (
	TypeDouble   TypeTag = "double"
	TypeFloat    TypeTag = "float"
	TypeInt32    TypeTag = "int32"
	TypeInt64    TypeTag = "int64"
	TypeUint32   TypeTag = "uint32"
	TypeUint64   TypeTag = "uint64"
	TypeSint32   TypeTag = "sint32"
	TypeSint64   TypeTag = "sint64"
	TypeFixed32  TypeTag = "fixed32"
	TypeFixed64  TypeTag = "fixed64"
	TypeSfixed32 TypeTag = "sfixed32"
	TypeSfixed64 TypeTag = "sfixed64"
	TypeBool     TypeTag = "bool"
	TypeString   TypeTag = "string"
	TypeBytes    TypeTag = "bytes"
	TypeMessage  TypeTag = "message"
	TypeEnum     TypeTag = "enum"
)

// FieldDescriptor is one entry of the runtime schema: a field number,
// name, type tag, repeated/optional flags, and — only when Type is
// "message" — the nested descriptor list.
type FieldDescriptor struct {
	Number   int
	Name     string
	Type     TypeTag
	Repeated bool
	Optional bool
	Fields   []FieldDescriptor
}

// Schema is the ordered root field-descriptor list the encoder and
// decoder both walk.
type Schema []FieldDescriptor

// SchemaError reports a malformed schema: a missing required key, an
// unknown type tag, or a message-typed descriptor with no nested fields
// array.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string { return fmt.Sprintf("schema error: %s", e.Reason) }

// ParseSchema validates a decoded JSON schema value and returns the
// typed Schema, or a *SchemaError describing the first violation
// found.
func ParseSchema(raw []map[string]any) (Schema, error) {
	out := make(Schema, 0, len(raw))
	for _, entry := range raw {
		fd, err := parseFieldDescriptor(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, fd)
	}
	return out, nil
}

func parseFieldDescriptor(entry map[string]any) (FieldDescriptor, error) {
	var fd FieldDescriptor

	n, ok := entry["n"].(float64)
	if !ok {
		return fd, &SchemaError{Reason: "missing or non-numeric \"n\""}
	}
	fd.Number = int(n)

	name, ok := entry["name"].(string)
	if !ok || name == "" {
		return fd, &SchemaError{Reason: "missing or non-string \"name\""}
	}
	fd.Name = name

	typ, ok := entry["type"].(string)
	if !ok {
		return fd, &SchemaError{Reason: "missing or non-string \"type\""}
	}
	tag := TypeTag(typ)
	if !validTypeTag(tag) {
		return fd, &SchemaError{Reason: fmt.Sprintf("unknown type tag %q", typ)}
	}
	fd.Type = tag

	if v, ok := entry["repeated"].(bool); ok {
		fd.Repeated = v
	}
	if v, ok := entry["optional"].(bool); ok {
		fd.Optional = v
	}

	if tag == TypeMessage {
		nestedRaw, ok := entry["fields"].([]any)
		if !ok {
			return fd, &SchemaError{Reason: fmt.Sprintf("field %q: message type requires a \"fields\" array", name)}
		}
		nested := make([]map[string]any, 0, len(nestedRaw))
		for _, item := range nestedRaw {
			m, ok := item.(map[string]any)
			if !ok {
				return fd, &SchemaError{Reason: fmt.Sprintf("field %q: nested field entry is not an object", name)}
			}
			nested = append(nested, m)
		}
		sub, err := ParseSchema(nested)
		if err != nil {
			return fd, err
		}
		fd.Fields = sub
	}

	return fd, nil
}

func validTypeTag(t TypeTag) bool {
	switch t {
	case TypeDouble, TypeFloat, TypeInt32, TypeInt64, TypeUint32, TypeUint64,
		TypeSint32, TypeSint64, TypeFixed32, TypeFixed64, TypeSfixed32, TypeSfixed64,
		TypeBool, TypeString, TypeBytes, TypeMessage, TypeEnum:
		return true
	default:
		return false
	}
}
