package render

import (
	"encoding/json"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/toba/protoc-gen-rescript/internal/ir"
	"github.com/toba/protoc-gen-rescript/internal/wire"
)

// schemaRegistry resolves a message-typed field's bare module name (the
// same name moduleOf derives from a "Name.t" type expression) to the
// MessageInfo it references, so buildSchema can recurse into a nested
// message's own fields the way internal/wire.Encode/Decode expect.
type schemaRegistry map[string]*ir.MessageInfo

func newSchemaRegistry(messages []*ir.MessageInfo) schemaRegistry {
	reg := schemaRegistry{}
	var walk func([]*ir.MessageInfo)
	walk = func(ms []*ir.MessageInfo) {
		for _, m := range ms {
			reg[m.Name] = m
			walk(m.NestedMessages)
		}
	}
	walk(messages)
	return reg
}

// buildSchema walks m's fields (record fields plus oneof members) into
// the same wire.Schema shape internal/wire.ParseSchema accepts, so the
// JSON text renderBinaryCodecStubs embeds is the real runtime schema,
// not a placeholder. Map fields have no representation in wire.Schema
// and are left out of the schema entirely: a field of this shape is
// never written to or read from the wire in wasm mode.
func buildSchema(m *ir.MessageInfo, reg schemaRegistry) wire.Schema {
	var out wire.Schema
	for _, f := range m.Fields {
		if f.Map != nil {
			continue
		}
		out = append(out, buildFieldDescriptor(f, reg))
	}
	for _, oo := range m.Oneofs {
		for _, member := range oo.Members {
			out = append(out, buildFieldDescriptor(member, reg))
		}
	}
	return out
}

func buildFieldDescriptor(f *ir.FieldInfo, reg schemaRegistry) wire.FieldDescriptor {
	fd := wire.FieldDescriptor{
		Number:   int(f.Number),
		Name:     f.ProtoName,
		Type:     wireTypeTag(f),
		Repeated: f.Repeated,
		Optional: f.Optional,
	}
	if fd.Type == wire.TypeMessage {
		fd.Fields = wire.Schema{}
		if nested, ok := reg[moduleOf(f.TypeExpr)]; ok {
			fd.Fields = buildSchema(nested, reg)
		}
		// A well-known-type or cross-file message reference has no
		// MessageInfo available here; it degrades to an empty nested
		// schema rather than failing schema construction.
	}
	return fd
}

func wireTypeTag(f *ir.FieldInfo) wire.TypeTag {
	switch {
	case f.IsEnum:
		return wire.TypeEnum
	case f.IsMessage:
		return wire.TypeMessage
	default:
		return scalarWireTypeTag(f.Kind)
	}
}

func scalarWireTypeTag(kind protoreflect.Kind) wire.TypeTag {
	switch kind {
	case protoreflect.DoubleKind:
		return wire.TypeDouble
	case protoreflect.FloatKind:
		return wire.TypeFloat
	case protoreflect.Int32Kind:
		return wire.TypeInt32
	case protoreflect.Int64Kind:
		return wire.TypeInt64
	case protoreflect.Uint32Kind:
		return wire.TypeUint32
	case protoreflect.Uint64Kind:
		return wire.TypeUint64
	case protoreflect.Sint32Kind:
		return wire.TypeSint32
	case protoreflect.Sint64Kind:
		return wire.TypeSint64
	case protoreflect.Fixed32Kind:
		return wire.TypeFixed32
	case protoreflect.Fixed64Kind:
		return wire.TypeFixed64
	case protoreflect.Sfixed32Kind:
		return wire.TypeSfixed32
	case protoreflect.Sfixed64Kind:
		return wire.TypeSfixed64
	case protoreflect.BoolKind:
		return wire.TypeBool
	case protoreflect.StringKind:
		return wire.TypeString
	default:
		// GroupKind and anything else unrecognised degrades to an
		// opaque byte blob rather than refusing to build a schema.
		return wire.TypeBytes
	}
}

// schemaJSON renders m's wire.Schema as the exact JSON text
// wire.ParseSchema parses after a json.Unmarshal into []map[string]any.
// Marshaling failure here would mean wire.FieldDescriptor itself
// stopped being JSON-serializable, which schemaFieldsAsJSON's types
// never cause.
func schemaJSON(m *ir.MessageInfo, reg schemaRegistry) string {
	schema := buildSchema(m, reg)
	raw, err := json.Marshal(schemaFieldsAsJSON(schema))
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// schemaFieldsAsJSON converts a wire.Schema into the []map[string]any
// shape wire.ParseSchema's input takes — the lowercase "n"/"name"/
// "type"/"repeated"/"optional"/"fields" keys it reads, rather than
// wire.FieldDescriptor's exported Go field names.
func schemaFieldsAsJSON(schema wire.Schema) []map[string]any {
	out := make([]map[string]any, 0, len(schema))
	for _, fd := range schema {
		entry := map[string]any{
			"n":    fd.Number,
			"name": fd.Name,
			"type": string(fd.Type),
		}
		if fd.Repeated {
			entry["repeated"] = true
		}
		if fd.Optional {
			entry["optional"] = true
		}
		if fd.Type == wire.TypeMessage {
			entry["fields"] = schemaFieldsAsJSON(fd.Fields)
		}
		out = append(out, entry)
	}
	return out
}
