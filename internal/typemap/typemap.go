// Package typemap implements the scalar and well-known-type mapping rules:
// protobuf field types to ReScript type expressions, and the
// google.protobuf.* well-known-type override table.
package typemap

import "google.golang.org/protobuf/reflect/protoreflect"

// Scalar maps a protobuf scalar/enum/message kind to its bare ReScript
// type expression (the wrapper — array<T>/option<T> — is layered on by the
// field classifier in internal/ir, not here).
func Scalar(kind protoreflect.Kind) string {
	switch kind {
	case protoreflect.DoubleKind, protoreflect.FloatKind:
		return "float"
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Uint32Kind,
		protoreflect.Fixed32Kind, protoreflect.Sfixed32Kind:
		return "int"
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Uint64Kind,
		protoreflect.Fixed64Kind, protoreflect.Sfixed64Kind:
		return "bigint"
	case protoreflect.BoolKind:
		return "bool"
	case protoreflect.StringKind:
		return "string"
	case protoreflect.BytesKind:
		return "Js.TypedArray2.Uint8Array.t"
	case protoreflect.GroupKind:
		// proto2 groups are an inert placeholder; not generated.
		return "unit"
	default:
		return "unit"
	}
}

// JSONCodec names the pair of function names used by a message/enum
// template's toJson/fromJson bodies to encode/decode one field value. The
// default codec for an ordinary message or enum field is the field type's
// own toJson/fromJson pair, generated by the message/enum template itself;
// WellKnown below overrides it for google.protobuf.* types.
type JSONCodec struct {
	// Encode renders an expression encoding the Go-side variable named by
	// valueExpr to a Js.Json.t.
	Encode func(valueExpr string) string
	// Decode renders an expression decoding the Js.Json.t named by
	// jsonExpr to an option of the field's scalar type.
	Decode func(jsonExpr string) string
}

// WellKnown describes the override a message-typed field gets when its
// qualified type begins with ".google.protobuf.".
type WellKnown struct {
	// TargetType is the bare ReScript type substituted for the field.
	TargetType string
	Codec      JSONCodec
	// ForceOptional is always true for well-known types, kept explicit so
	// callers don't have to special-case this table.
	ForceOptional bool
}

// wellKnownTable maps well-known google.protobuf.* message names to their
// ReScript override. Keys are the message's short name under the
// google.protobuf package.
var wellKnownTable = map[string]WellKnown{
	"Timestamp": {
		TargetType: "Js.Date.t",
		Codec: JSONCodec{
			Encode: func(v string) string { return "Js.Json.string(Js.Date.toISOString(" + v + "))" },
			Decode: func(j string) string { return "decodeTimestamp(" + j + ")" },
		},
		ForceOptional: true,
	},
	"Duration": {
		TargetType: "float",
		Codec: JSONCodec{
			Encode: func(v string) string { return `Js.Json.string(Js.Float.toString(` + v + `) ++ "s")` },
			Decode: func(j string) string { return "decodeDurationSeconds(" + j + ")" },
		},
		ForceOptional: true,
	},
	"Empty": {
		TargetType: "unit",
		Codec: JSONCodec{
			Encode: func(string) string { return `Js.Json.object_(Js.Dict.empty())` },
			Decode: func(string) string { return "Some()" },
		},
		ForceOptional: true,
	},
	"DoubleValue": numberWrapper("float"),
	"FloatValue":  numberWrapper("float"),
	"Int32Value":  numberWrapper("int"),
	"UInt32Value": numberWrapper("int"),
	"SInt32Value": numberWrapper("int"),
	"Int64Value":  stringWrapper("bigint"),
	"UInt64Value": stringWrapper("bigint"),
	"SInt64Value": stringWrapper("bigint"),
	"BoolValue": {
		TargetType: "bool",
		Codec: JSONCodec{
			Encode: func(v string) string { return "Js.Json.boolean(" + v + ")" },
			Decode: func(j string) string { return "Js.Json.decodeBoolean(" + j + ")" },
		},
		ForceOptional: true,
	},
	"StringValue": {
		TargetType: "string",
		Codec: JSONCodec{
			Encode: func(v string) string { return "Js.Json.string(" + v + ")" },
			Decode: func(j string) string { return "Js.Json.decodeString(" + j + ")" },
		},
		ForceOptional: true,
	},
	"BytesValue": {
		TargetType: "Js.TypedArray2.Uint8Array.t",
		Codec: JSONCodec{
			Encode: func(v string) string { return "Js.Json.string(Base64.encode(" + v + "))" },
			Decode: func(j string) string { return "Belt.Option.flatMap(Js.Json.decodeString(" + j + "), Base64.decode)" },
		},
		ForceOptional: true,
	},
	"Struct": {
		TargetType: "Js.Dict.t<Js.Json.t>",
		Codec: JSONCodec{
			Encode: func(v string) string { return "Js.Json.object_(" + v + ")" },
			Decode: func(j string) string { return "Js.Json.decodeObject(" + j + ")" },
		},
		ForceOptional: true,
	},
	"Value": {
		TargetType: "Js.Json.t",
		Codec: JSONCodec{
			Encode: func(v string) string { return v },
			Decode: func(j string) string { return "Some(" + j + ")" },
		},
		ForceOptional: true,
	},
	"ListValue": {
		TargetType: "array<Js.Json.t>",
		Codec: JSONCodec{
			Encode: func(v string) string { return "Js.Json.array(" + v + ")" },
			Decode: func(j string) string { return "Js.Json.decodeArray(" + j + ")" },
		},
		ForceOptional: true,
	},
	"NullValue": {
		TargetType: "unit",
		Codec: JSONCodec{
			Encode: func(string) string { return "Js.Json.null" },
			Decode: func(string) string { return "Some()" },
		},
		ForceOptional: true,
	},
	"Any": {
		TargetType: "anyMessage",
		Codec: JSONCodec{
			Encode: func(v string) string { return "anyMessageToJson(" + v + ")" },
			Decode: func(j string) string { return "anyMessageFromJson(" + j + ")" },
		},
		ForceOptional: true,
	},
}

func numberWrapper(t string) WellKnown {
	return WellKnown{
		TargetType: t,
		Codec: JSONCodec{
			Encode: func(v string) string { return "Js.Json.number(" + numToFloat(t, v) + ")" },
			Decode: func(j string) string {
				if t == "int" {
					return "Belt.Option.map(Js.Json.decodeNumber(" + j + "), Belt.Float.toInt)"
				}
				return "Js.Json.decodeNumber(" + j + ")"
			},
		},
		ForceOptional: true,
	}
}

func numToFloat(t, v string) string {
	if t == "int" {
		return "Belt.Int.toFloat(" + v + ")"
	}
	return v
}

func stringWrapper(t string) WellKnown {
	return WellKnown{
		TargetType: t,
		Codec: JSONCodec{
			Encode: func(v string) string { return "Js.Json.string(Int64Codec.toString(" + v + "))" },
			Decode: func(j string) string { return "Belt.Option.flatMap(Js.Json.decodeString(" + j + "), Int64Codec.fromString)" },
		},
		ForceOptional: true,
	}
}

// WellKnownFor looks up the override table by a field's fully-qualified
// message type name (e.g. ".google.protobuf.Timestamp"). ok is false for
// any type outside the google.protobuf package, or one not in the table
// (e.g. FileDescriptorProto, which well-known-type handling never covers).
func WellKnownFor(qualifiedName string) (WellKnown, bool) {
	const prefix = ".google.protobuf."
	if len(qualifiedName) <= len(prefix) || qualifiedName[:len(prefix)] != prefix {
		return WellKnown{}, false
	}
	short := qualifiedName[len(prefix):]
	wkt, ok := wellKnownTable[short]
	return wkt, ok
}
