package render

import (
	"fmt"

	"github.com/toba/protoc-gen-rescript/internal/ir"
	"github.com/toba/protoc-gen-rescript/internal/nameutil"
)

// Message renders one message module: nested enum/message modules
// first, then one variant type per real oneof, the record type, the
// make constructor, toJson, fromJson, and — when wasm is true — the
// encode/decode binary-codec stubs. The wasm schema this resolves
// message-typed fields against is scoped to m and its own nested
// messages; File builds a whole-file registry so sibling top-level
// messages resolve too (see messageWithRegistry).
func Message(p *Printer, m *ir.MessageInfo, wasm bool) {
	messageWithRegistry(p, m, wasm, newSchemaRegistry([]*ir.MessageInfo{m}))
}

func messageWithRegistry(p *Printer, m *ir.MessageInfo, wasm bool, reg schemaRegistry) {
	renderDocComment(p, m.Doc)
	p.P("module ", m.Name, " = {")
	p.In()

	for _, e := range m.NestedEnums {
		Enum(p, e)
		p.P()
	}
	for _, nested := range m.NestedMessages {
		messageWithRegistry(p, nested, wasm, reg)
		p.P()
	}

	for _, oo := range m.Oneofs {
		renderOneofType(p, oo)
		p.P()
	}

	renderRecordType(p, m)
	p.P()
	renderMake(p, m)
	p.P()
	renderToJson(p, m)
	p.P()
	renderFromJson(p, m)

	if wasm {
		p.P()
		renderBinaryCodecStubs(p, m, reg)
	}

	p.Out()
	p.P("}")
}

func renderOneofType(p *Printer, oo *ir.OneOfInfo) {
	p.P("type ", oo.TypeName, " =")
	p.In()
	for _, member := range oo.Members {
		p.P("| ", nameutil.TypeName(member.ProtoName), "(", member.TypeExpr, ")")
	}
	p.Out()
}

func renderRecordType(p *Printer, m *ir.MessageInfo) {
	p.P("type t = {")
	p.In()
	for _, f := range m.Fields {
		renderDocComment(p, f.Doc)
		p.P(f.Name, ": ", recordFieldType(f), ",")
	}
	for _, oo := range m.Oneofs {
		p.P(oo.FieldName, ": option<", oo.TypeName, ">,")
	}
	p.Out()
	p.P("}")
}

// recordFieldType wraps a field's bare type according to its
// classification: array<T> for repeated, option<T> for optional, bare T
// for required, and the map-specific shape for map fields.
func recordFieldType(f *ir.FieldInfo) string {
	switch {
	case f.Map != nil:
		return mapFieldType(f.Map)
	case f.Repeated:
		return "array<" + f.TypeExpr + ">"
	case f.Optional:
		return "option<" + f.TypeExpr + ">"
	default:
		return f.TypeExpr
	}
}

func mapFieldType(mi *ir.MapInfo) string {
	if mi.KeyExpr == "string" {
		return "Js.Dict.t<" + mi.ValueExpr + ">"
	}
	return "array<(" + mi.KeyExpr + ", " + mi.ValueExpr + ")>"
}

func renderMake(p *Printer, m *ir.MessageInfo) {
	p.P("let make = (")
	p.In()
	for _, f := range m.Fields {
		p.P(makeParam(f), ",")
	}
	for _, oo := range m.Oneofs {
		p.P("~", oo.FieldName, ": option<", oo.TypeName, ">=None,")
	}
	p.P("(): unit,")
	p.Out()
	p.P("): t => {")
	p.In()
	for _, f := range m.Fields {
		p.P(f.Name, ": ", f.Name, ",")
	}
	for _, oo := range m.Oneofs {
		p.P(oo.FieldName, ": ", oo.FieldName, ",")
	}
	p.Out()
	p.P("}")
}

// makeParam renders one labeled constructor argument; repeated and map
// fields default to empty, optional fields default to None, and required
// scalar fields default to the protobuf zero value (SPEC_FULL.md's
// supplemented default-values feature) so callers may omit them too.
func makeParam(f *ir.FieldInfo) string {
	switch {
	case f.Map != nil:
		def := "[]"
		if f.Map.KeyExpr == "string" {
			def = "Js.Dict.empty()"
		}
		return fmt.Sprintf("~%s: %s=%s", f.Name, recordFieldType(f), def)
	case f.Repeated:
		return fmt.Sprintf("~%s: %s=[]", f.Name, recordFieldType(f))
	case f.Optional:
		return fmt.Sprintf("~%s: %s=None", f.Name, recordFieldType(f))
	default:
		if def := scalarDefault(f.Kind); def != "" && !f.IsMessage && !f.IsEnum {
			return fmt.Sprintf("~%s: %s=%s", f.Name, f.TypeExpr, def)
		}
		return fmt.Sprintf("~%s: %s", f.Name, f.TypeExpr)
	}
}

func renderToJson(p *Printer, m *ir.MessageInfo) {
	p.P("let toJson = (v: t): Js.Json.t => {")
	p.In()
	p.P("let dict = Js.Dict.empty()")
	for _, f := range m.Fields {
		renderEncodeField(p, f)
	}
	for _, oo := range m.Oneofs {
		renderEncodeOneof(p, oo)
	}
	p.P("Js.Json.object_(dict)")
	p.Out()
	p.P("}")
}

func renderEncodeField(p *Printer, f *ir.FieldInfo) {
	key := quote(f.ProtoName)
	switch {
	case f.Map != nil:
		p.P("Js.Dict.set(dict, ", key, ", ", encodeMapExpr(f), ")")
	case f.Repeated:
		p.P("Js.Dict.set(dict, ", key, ", Js.Json.array(Belt.Array.map(v.", f.Name, ", x => ", scalarEncode(f, "x"), ")))")
	case f.Optional:
		p.P("switch v.", f.Name, " {")
		p.In()
		p.P("| Some(", f.Name, ") => Js.Dict.set(dict, ", key, ", ", scalarEncode(f, f.Name), ")")
		p.P("| None => ()")
		p.Out()
		p.P("}")
	default:
		p.P("Js.Dict.set(dict, ", key, ", ", scalarEncode(f, "v."+f.Name), ")")
	}
}

// mapValueField/mapKeyField synthesize bare FieldInfo values so the
// shared scalarEncode/scalarDecode helpers can be reused on a map's key
// and value sides without a parallel set of map-specific cases.
func mapValueField(mi *ir.MapInfo) *ir.FieldInfo {
	return &ir.FieldInfo{TypeExpr: mi.ValueExpr, Kind: mi.ValueKind, IsMessage: mi.ValueIsMessage, IsEnum: mi.ValueIsEnum}
}

func mapKeyField(mi *ir.MapInfo) *ir.FieldInfo {
	return &ir.FieldInfo{TypeExpr: mi.KeyExpr, Kind: mi.KeyKind}
}

func encodeMapExpr(f *ir.FieldInfo) string {
	valField := mapValueField(f.Map)
	if f.Map.KeyExpr == "string" {
		return "Js.Json.object_(Js.Dict.map((. x) => " + scalarEncode(valField, "x") + ", v." + f.Name + "))"
	}
	keyField := mapKeyField(f.Map)
	return "Js.Json.array(Belt.Array.map(v." + f.Name + ", ((k, x)) => Js.Json.object_(Js.Dict.fromArray([" +
		`("key", ` + scalarEncode(keyField, "k") + "), " +
		`("value", ` + scalarEncode(valField, "x") + ")]))))"
}

func renderEncodeOneof(p *Printer, oo *ir.OneOfInfo) {
	p.P("switch v.", oo.FieldName, " {")
	p.In()
	for _, member := range oo.Members {
		ctor := nameutil.TypeName(member.ProtoName)
		p.P("| Some(", ctor, "(x)) => Js.Dict.set(dict, ", quote(member.ProtoName), ", ", scalarEncode(member, "x"), ")")
	}
	p.P("| None => ()")
	p.Out()
	p.P("}")
}

func renderFromJson(p *Printer, m *ir.MessageInfo) {
	p.P("let fromJson = (json: Js.Json.t): option<t> =>")
	p.P("  switch Js.Json.decodeObject(json) {")
	p.P("  | None => None")
	p.P("  | Some(dict) => {")
	p.In()
	p.In()

	var required []*ir.FieldInfo
	for _, f := range m.Fields {
		switch {
		case f.Map != nil:
			p.P("let ", f.Name, " = ", decodeMapExpr(f))
		case f.Repeated:
			p.P("let ", f.Name, " = switch Belt.Option.flatMap(Js.Dict.get(dict, ", quote(f.ProtoName), "), Js.Json.decodeArray) {")
			p.In()
			p.P("| Some(arr) => Belt.Array.keepMap(arr, x => ", scalarDecode(f, "x"), ")")
			p.P("| None => []")
			p.Out()
			p.P("}")
		case f.Optional:
			p.P("let ", f.Name, " = Belt.Option.flatMap(Js.Dict.get(dict, ", quote(f.ProtoName), "), j => ", scalarDecode(f, "j"), ")")
		default:
			p.P("let ", f.Name, "_opt = Belt.Option.flatMap(Js.Dict.get(dict, ", quote(f.ProtoName), "), j => ", scalarDecode(f, "j"), ")")
			required = append(required, f)
		}
	}
	for _, oo := range m.Oneofs {
		p.P("let ", oo.FieldName, " = ", decodeOneofChain(oo.Members))
	}

	if len(required) == 0 {
		renderConstructReturn(p, m)
	} else {
		p.P("switch (", joinRequiredNames(required), ") {")
		p.In()
		p.P("| (", joinRequiredSome(required), ") =>")
		p.In()
		renderConstructReturn(p, m)
		p.Out()
		p.P("| _ => None")
		p.Out()
		p.P("}")
	}

	p.Out()
	p.P("}")
	p.Out()
	p.Out()
	p.P("  }")
}

// decodeMapExpr mirrors encodeMapExpr's two shapes in reverse: a
// string-keyed Js.Dict.t<V> decodes via Js.Dict.entries filtered through
// the value decoder; any other key kind decodes a JSON array of
// {key, value} objects into an array of tuples. Missing or malformed
// entries are dropped rather than failing the whole message, matching
// every other field's degrade-to-default behavior.
func decodeMapExpr(f *ir.FieldInfo) string {
	valField := mapValueField(f.Map)
	key := quote(f.ProtoName)
	if f.Map.KeyExpr == "string" {
		return "switch Belt.Option.flatMap(Js.Dict.get(dict, " + key + "), Js.Json.decodeObject) {\n" +
			"    | Some(obj) => Js.Dict.fromArray(Belt.Array.keepMap(Js.Dict.entries(obj), ((k, x)) => Belt.Option.map(" + scalarDecode(valField, "x") + ", v => (k, v))))\n" +
			"    | None => Js.Dict.empty()\n" +
			"    }"
	}
	keyField := mapKeyField(f.Map)
	return "switch Belt.Option.flatMap(Js.Dict.get(dict, " + key + "), Js.Json.decodeArray) {\n" +
		"    | Some(arr) => Belt.Array.keepMap(arr, entry => switch Js.Json.decodeObject(entry) {\n" +
		"        | Some(eo) => switch (Belt.Option.flatMap(Js.Dict.get(eo, \"key\"), k => " + scalarDecode(keyField, "k") + "), Belt.Option.flatMap(Js.Dict.get(eo, \"value\"), x => " + scalarDecode(valField, "x") + ")) {\n" +
		"          | (Some(k), Some(v)) => Some((k, v))\n" +
		"          | _ => None\n" +
		"          }\n" +
		"        | None => None\n" +
		"        })\n" +
		"    | None => []\n" +
		"    }"
}

func decodeOneofChain(members []*ir.FieldInfo) string {
	if len(members) == 0 {
		return "None"
	}
	head := members[0]
	ctor := nameutil.TypeName(head.ProtoName)
	rest := decodeOneofChain(members[1:])
	return "switch Js.Dict.get(dict, " + quote(head.ProtoName) + ") {\n" +
		"    | Some(j) => Belt.Option.map(" + scalarDecode(head, "j") + ", x => " + ctor + "(x))\n" +
		"    | None => " + rest + "\n" +
		"    }"
}

func joinRequiredNames(fields []*ir.FieldInfo) string {
	s := ""
	for i, f := range fields {
		if i > 0 {
			s += ", "
		}
		s += f.Name + "_opt"
	}
	return s
}

func joinRequiredSome(fields []*ir.FieldInfo) string {
	s := ""
	for i, f := range fields {
		if i > 0 {
			s += ", "
		}
		s += "Some(" + f.Name + ")"
	}
	return s
}

func renderConstructReturn(p *Printer, m *ir.MessageInfo) {
	p.P("Some({")
	p.In()
	for _, f := range m.Fields {
		p.P(f.Name, ": ", f.Name, ",")
	}
	for _, oo := range m.Oneofs {
		p.P(oo.FieldName, ": ", oo.FieldName, ",")
	}
	p.Out()
	p.P("})")
}

// renderBinaryCodecStubs emits the two functions used when the plugin
// is invoked with "wasm": encode/decode delegate to the
// WebAssembly-resident codec compiled from internal/wire, passing it
// the real field-descriptor schema (built by buildSchema/schemaJSON
// from the same MessageInfo, not a placeholder) alongside the message's
// own toJson/fromJson so the codec never needs compile-time knowledge
// of this message's shape.
func renderBinaryCodecStubs(p *Printer, m *ir.MessageInfo, reg schemaRegistry) {
	p.P("let schema = ", quote(schemaJSON(m, reg)))
	p.P()
	p.P("let encode = (v: t): Js.TypedArray2.Uint8Array.t => WireCodec.encode(schema, toJson(v))")
	p.P()
	p.P("let decode = (data: Js.TypedArray2.Uint8Array.t): option<t> =>")
	p.P("  Belt.Option.flatMap(WireCodec.decode(schema, data), fromJson)")
}
