package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/toba/protoc-gen-rescript/internal/ir"
	"github.com/toba/protoc-gen-rescript/internal/wire"
)

func personMessage() *ir.MessageInfo {
	return &ir.MessageInfo{
		Name: "Person",
		Fields: []*ir.FieldInfo{
			{Name: "name", ProtoName: "name", TypeExpr: "string", Kind: protoreflect.StringKind},
			{Name: "tags", ProtoName: "tags", TypeExpr: "string", Kind: protoreflect.StringKind, Repeated: true},
			{Name: "nickname", ProtoName: "nickname", TypeExpr: "string", Kind: protoreflect.StringKind, Optional: true},
			{Name: "status", ProtoName: "status", TypeExpr: "Status.t", Kind: protoreflect.EnumKind, IsEnum: true},
		},
		Oneofs: []*ir.OneOfInfo{
			{
				ProtoName: "contact",
				TypeName:  "Contact",
				FieldName: "contact",
				Members: []*ir.FieldInfo{
					{Name: "email", ProtoName: "email", TypeExpr: "string", Kind: protoreflect.StringKind},
					{Name: "phone", ProtoName: "phone", TypeExpr: "string", Kind: protoreflect.StringKind},
				},
			},
		},
	}
}

func TestMessage_RecordShape(t *testing.T) {
	p := &Printer{}
	Message(p, personMessage(), false)
	out := p.String()

	assert.Contains(t, out, "module Person = {")
	assert.Contains(t, out, "type Contact =")
	assert.Contains(t, out, "| Email(string)")
	assert.Contains(t, out, "| Phone(string)")
	assert.Contains(t, out, "type t = {")
	assert.Contains(t, out, "name: string,")
	assert.Contains(t, out, "tags: array<string>,")
	assert.Contains(t, out, "nickname: option<string>,")
	assert.Contains(t, out, "contact: option<Contact>,")
	assert.Contains(t, out, "status: Status.t,")
}

func TestMessage_MakeDefaults(t *testing.T) {
	p := &Printer{}
	Message(p, personMessage(), false)
	out := p.String()

	assert.Contains(t, out, `~name: string="",`)
	assert.Contains(t, out, "~tags: array<string>=[],")
	assert.Contains(t, out, "~nickname: option<string>=None,")
	assert.Contains(t, out, "~contact: option<Contact>=None,")
	assert.Contains(t, out, "~status: Status.t,")
}

func TestMessage_ToJsonHandlesOneof(t *testing.T) {
	p := &Printer{}
	Message(p, personMessage(), false)
	out := p.String()

	assert.Contains(t, out, `Js.Dict.set(dict, "name", Js.Json.string(v.name))`)
	assert.Contains(t, out, `| Some(Email(x)) => Js.Dict.set(dict, "email", Js.Json.string(x))`)
	assert.Contains(t, out, `| Some(Phone(x)) => Js.Dict.set(dict, "phone", Js.Json.string(x))`)
}

func TestMessage_ToJsonHandlesEnum(t *testing.T) {
	p := &Printer{}
	Message(p, personMessage(), false)
	out := p.String()

	assert.Contains(t, out, `Js.Dict.set(dict, "status", Js.Json.number(Belt.Int.toFloat(Status.toInt(v.status))))`)
	assert.NotContains(t, out, "Status.toJson")
	assert.NotContains(t, out, "Status.fromJson")
}

func TestMessage_FromJsonRequiresRequiredFields(t *testing.T) {
	p := &Printer{}
	Message(p, personMessage(), false)
	out := p.String()

	assert.Contains(t, out, "let name_opt = Belt.Option.flatMap")
	assert.Contains(t, out, "let status_opt = Belt.Option.flatMap(Js.Dict.get(dict, \"status\"), j => Belt.Option.flatMap(Js.Json.decodeNumber(j), n => Status.fromInt(Belt.Float.toInt(n))))")
	assert.Contains(t, out, "switch (name_opt, status_opt) {")
	assert.Contains(t, out, "| (Some(name), Some(status)) =>")
	assert.Contains(t, out, "| _ => None")
}

func TestMessage_MapField(t *testing.T) {
	m := &ir.MessageInfo{
		Name: "Config",
		Fields: []*ir.FieldInfo{
			{
				Name: "labels", ProtoName: "labels", Kind: protoreflect.MessageKind,
				Map: &ir.MapInfo{KeyExpr: "string", KeyKind: protoreflect.StringKind, ValueExpr: "string", ValueKind: protoreflect.StringKind},
			},
		},
	}
	p := &Printer{}
	Message(p, m, false)
	out := p.String()

	assert.Contains(t, out, "labels: Js.Dict.t<string>,")
	assert.Contains(t, out, "~labels: Js.Dict.t<string>=Js.Dict.empty(),")
	assert.Contains(t, out, `Js.Dict.set(dict, "labels", Js.Json.object_(Js.Dict.map((. x) => Js.Json.string(x), v.labels)))`)
}

func TestMessage_WasmEmitsCodecStubs(t *testing.T) {
	p := &Printer{}
	Message(p, personMessage(), true)
	out := p.String()

	assert.Contains(t, out, "let schema =")
	assert.Contains(t, out, "let encode = (v: t): Js.TypedArray2.Uint8Array.t => WireCodec.encode(schema, toJson(v))")
	assert.Contains(t, out, "let decode = (data: Js.TypedArray2.Uint8Array.t): option<t> =>")
}

// The embedded schema must be the real wire.Schema JSON text, not a
// placeholder marker: internal/wire.ParseSchema must accept it, and it
// must describe the message's actual fields.
func TestMessage_WasmSchemaIsRealAndParseable(t *testing.T) {
	m := personMessage()
	p := &Printer{}
	Message(p, m, true)
	out := p.String()

	reg := newSchemaRegistry([]*ir.MessageInfo{m})
	rawJSON, err := json.Marshal(schemaFieldsAsJSON(buildSchema(m, reg)))
	require.NoError(t, err)
	assert.Contains(t, out, quote(string(rawJSON)))
	assert.NotContains(t, out, "__SCHEMA__")

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(rawJSON, &decoded))
	schema, err := wire.ParseSchema(decoded)
	require.NoError(t, err)
	require.Len(t, schema, 6) // name, tags, nickname, status, plus the oneof members email and phone flattened in; only map fields are left out

	var names []string
	for _, fd := range schema {
		names = append(names, fd.Name)
	}
	assert.Contains(t, names, "name")
	assert.Contains(t, names, "status")
	assert.Contains(t, names, "email")
	assert.Contains(t, names, "phone")

	for _, fd := range schema {
		if fd.Name == "status" {
			assert.Equal(t, wire.TypeEnum, fd.Type)
		}
	}
}
