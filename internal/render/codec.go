package render

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/toba/protoc-gen-rescript/internal/ir"
)

// scalarEncode renders an expression converting a bare-typed value
// (identifier or sub-expression) named valueExpr into a Js.Json.t, for
// every protobuf scalar kind plus enum/message (which defer to the
// referenced module's own toJson).
func scalarEncode(f *ir.FieldInfo, valueExpr string) string {
	if f.WellKnown != nil {
		return wellKnownEncode(f.WellKnown.QualifiedName, valueExpr)
	}
	if f.IsMessage {
		return moduleOf(f.TypeExpr) + ".toJson(" + valueExpr + ")"
	}
	if f.IsEnum {
		return "Js.Json.number(Belt.Int.toFloat(" + moduleOf(f.TypeExpr) + ".toInt(" + valueExpr + ")))"
	}
	switch f.Kind {
	case protoreflect.DoubleKind, protoreflect.FloatKind:
		return "Js.Json.number(" + valueExpr + ")"
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Uint32Kind,
		protoreflect.Fixed32Kind, protoreflect.Sfixed32Kind:
		return "Js.Json.number(Belt.Int.toFloat(" + valueExpr + "))"
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Uint64Kind,
		protoreflect.Fixed64Kind, protoreflect.Sfixed64Kind:
		return "Js.Json.string(Int64Codec.toString(" + valueExpr + "))"
	case protoreflect.BoolKind:
		return "Js.Json.boolean(" + valueExpr + ")"
	case protoreflect.StringKind:
		return "Js.Json.string(" + valueExpr + ")"
	case protoreflect.BytesKind:
		return "Js.Json.string(Base64.encode(" + valueExpr + "))"
	default:
		return "Js.Json.null /* " + f.Kind.String() + " placeholder */"
	}
}

// scalarDecode renders an expression decoding the Js.Json.t named by
// jsonExpr into an option<T> for the field's bare type.
func scalarDecode(f *ir.FieldInfo, jsonExpr string) string {
	if f.WellKnown != nil {
		return wellKnownDecode(f.WellKnown.QualifiedName, jsonExpr)
	}
	if f.IsMessage {
		return moduleOf(f.TypeExpr) + ".fromJson(" + jsonExpr + ")"
	}
	if f.IsEnum {
		return "Belt.Option.flatMap(Js.Json.decodeNumber(" + jsonExpr + "), n => " +
			moduleOf(f.TypeExpr) + ".fromInt(Belt.Float.toInt(n)))"
	}
	switch f.Kind {
	case protoreflect.DoubleKind, protoreflect.FloatKind:
		return "Js.Json.decodeNumber(" + jsonExpr + ")"
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Uint32Kind,
		protoreflect.Fixed32Kind, protoreflect.Sfixed32Kind:
		return "Belt.Option.map(Js.Json.decodeNumber(" + jsonExpr + "), Belt.Float.toInt)"
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Uint64Kind,
		protoreflect.Fixed64Kind, protoreflect.Sfixed64Kind:
		return "Belt.Option.flatMap(Js.Json.decodeString(" + jsonExpr + "), Int64Codec.fromString)"
	case protoreflect.BoolKind:
		return "Js.Json.decodeBoolean(" + jsonExpr + ")"
	case protoreflect.StringKind:
		return "Js.Json.decodeString(" + jsonExpr + ")"
	case protoreflect.BytesKind:
		return "Belt.Option.flatMap(Js.Json.decodeString(" + jsonExpr + "), Base64.decode)"
	default:
		return "None"
	}
}

// moduleOf extracts the leading module path from a "Module.t" or
// "Pkg.Module.t" type expression, i.e. strips the trailing ".t".
func moduleOf(typeExpr string) string {
	const suffix = ".t"
	if len(typeExpr) > len(suffix) && typeExpr[len(typeExpr)-len(suffix):] == suffix {
		return typeExpr[:len(typeExpr)-len(suffix)]
	}
	return typeExpr
}

func wellKnownEncode(qualifiedName, valueExpr string) string {
	switch qualifiedName {
	case ".google.protobuf.Timestamp":
		return "Js.Json.string(Js.Date.toISOString(" + valueExpr + "))"
	case ".google.protobuf.Duration":
		return fmt.Sprintf(`Js.Json.string(Js.Float.toString(%s) ++ "s")`, valueExpr)
	case ".google.protobuf.Empty":
		return "Js.Json.object_(Js.Dict.empty())"
	case ".google.protobuf.BytesValue":
		return "Js.Json.string(Base64.encode(" + valueExpr + "))"
	case ".google.protobuf.Int64Value", ".google.protobuf.UInt64Value", ".google.protobuf.SInt64Value":
		return "Js.Json.string(Int64Codec.toString(" + valueExpr + "))"
	case ".google.protobuf.StringValue":
		return "Js.Json.string(" + valueExpr + ")"
	case ".google.protobuf.BoolValue":
		return "Js.Json.boolean(" + valueExpr + ")"
	case ".google.protobuf.Struct":
		return "Js.Json.object_(" + valueExpr + ")"
	case ".google.protobuf.Value":
		return valueExpr
	case ".google.protobuf.ListValue":
		return "Js.Json.array(" + valueExpr + ")"
	case ".google.protobuf.NullValue":
		return "Js.Json.null"
	case ".google.protobuf.Any":
		return "anyMessageToJson(" + valueExpr + ")"
	default:
		// DoubleValue/FloatValue/Int32Value/UInt32Value/SInt32Value
		return "Js.Json.number(" + numericToFloat(qualifiedName, valueExpr) + ")"
	}
}

func wellKnownDecode(qualifiedName, jsonExpr string) string {
	switch qualifiedName {
	case ".google.protobuf.Timestamp":
		return "decodeTimestamp(" + jsonExpr + ")"
	case ".google.protobuf.Duration":
		return "decodeDurationSeconds(" + jsonExpr + ")"
	case ".google.protobuf.Empty":
		return "Some()"
	case ".google.protobuf.BytesValue":
		return "Belt.Option.flatMap(Js.Json.decodeString(" + jsonExpr + "), Base64.decode)"
	case ".google.protobuf.Int64Value", ".google.protobuf.UInt64Value", ".google.protobuf.SInt64Value":
		return "Belt.Option.flatMap(Js.Json.decodeString(" + jsonExpr + "), Int64Codec.fromString)"
	case ".google.protobuf.StringValue":
		return "Js.Json.decodeString(" + jsonExpr + ")"
	case ".google.protobuf.BoolValue":
		return "Js.Json.decodeBoolean(" + jsonExpr + ")"
	case ".google.protobuf.Struct":
		return "Js.Json.decodeObject(" + jsonExpr + ")"
	case ".google.protobuf.Value":
		return "Some(" + jsonExpr + ")"
	case ".google.protobuf.ListValue":
		return "Js.Json.decodeArray(" + jsonExpr + ")"
	case ".google.protobuf.NullValue":
		return "Some()"
	case ".google.protobuf.Any":
		return "anyMessageFromJson(" + jsonExpr + ")"
	default:
		if qualifiedName == ".google.protobuf.Int32Value" || qualifiedName == ".google.protobuf.UInt32Value" || qualifiedName == ".google.protobuf.SInt32Value" {
			return "Belt.Option.map(Js.Json.decodeNumber(" + jsonExpr + "), Belt.Float.toInt)"
		}
		return "Js.Json.decodeNumber(" + jsonExpr + ")"
	}
}

func numericToFloat(qualifiedName, valueExpr string) string {
	switch qualifiedName {
	case ".google.protobuf.Int32Value", ".google.protobuf.UInt32Value", ".google.protobuf.SInt32Value":
		return "Belt.Int.toFloat(" + valueExpr + ")"
	default:
		return valueExpr
	}
}

// scalarDefault renders the proto3 zero-default literal for a required
// scalar field, used as the make constructor's labeled-argument default
// (SPEC_FULL.md's supplemented default-values feature).
func scalarDefault(kind protoreflect.Kind) string {
	switch kind {
	case protoreflect.DoubleKind, protoreflect.FloatKind:
		return "0.0"
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Uint32Kind,
		protoreflect.Fixed32Kind, protoreflect.Sfixed32Kind:
		return "0"
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Uint64Kind,
		protoreflect.Fixed64Kind, protoreflect.Sfixed64Kind:
		return `"0"`
	case protoreflect.BoolKind:
		return "false"
	case protoreflect.StringKind:
		return `""`
	case protoreflect.BytesKind:
		return "Js.TypedArray2.Uint8Array.fromLength(0)"
	default:
		return ""
	}
}
