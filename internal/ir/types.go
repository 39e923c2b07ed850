// Package ir builds the generator-internal descriptor model from a
// *protogen.File, applying field classification and a dependency sort.
// Everything here is a plain, immutable value built once per file;
// nothing in this package performs rendering.
package ir

import "google.golang.org/protobuf/reflect/protoreflect"

// FieldInfo is the generator-internal field record.
// Invariant: Repeated and Optional are never both true, and exactly one
// of {regular record field, oneof member, promoted proto3-optional field}
// describes how the field surfaces in the emitted record — a promoted
// field is simply an Optional field with OneofIndex cleared, so by the
// time a FieldInfo is placed in Message.Fields vs. a OneOf's Members,
// that distinction has already been resolved.
type FieldInfo struct {
	Name      string // target identifier (camelCase)
	ProtoName string // original proto name (snake_case), used as the JSON key
	Doc       string // leading .proto source comment, trimmed; empty if none
	Number    int32
	TypeExpr  string // bare ReScript type expression, no array<>/option<> wrapper
	Kind      protoreflect.Kind

	Repeated bool
	Optional bool

	IsMessage bool
	IsEnum    bool

	// Map is non-nil when this field is a proto map<K, V>, whose backing
	// representation is a synthetic map-entry carrier message. When Map
	// != nil, Repeated and Optional are both false: a map field
	// is neither wrapped in array<> nor option<>, it gets its own wrapper
	// type (see internal/render).
	Map *MapInfo

	// OneofIndex is non-nil while the field is still a candidate for
	// routing into a real oneof; it is nil once classification has either
	// promoted the field to a regular optional scalar (synthetic
	// singleton oneof) or the field was never in a oneof to begin with.
	OneofIndex *int

	// WellKnown is set when this field's message type is a
	// google.protobuf.* well-known type with a JSON override.
	WellKnown *WellKnownRef
}

// WellKnownRef names the well-known-type override applied to a field,
// enough for internal/render to find the right entry in internal/typemap
// without re-deriving the qualified type name.
type WellKnownRef struct {
	QualifiedName string // e.g. ".google.protobuf.Timestamp"
}

// MapInfo carries the key/value shape of a proto map<K, V> field,
// elided from MessageInfo.NestedMessages.
type MapInfo struct {
	KeyExpr   string
	KeyKind   protoreflect.Kind
	ValueExpr string
	ValueKind protoreflect.Kind
	// ValueIsMessage/ValueIsEnum mirror FieldInfo's flags, for the value
	// side's JSON codec dispatch.
	ValueIsMessage bool
	ValueIsEnum    bool
}

// OneOfInfo is a real (non-synthetic) oneof: one variant type with one
// constructor per member, in proto declaration order.
type OneOfInfo struct {
	ProtoName string
	TypeName  string // PascalCase variant type name
	FieldName string // camelCase record-field name carrying option<TypeName>
	Members   []*FieldInfo
}

// EnumValue is one constructor of an emitted enum variant type.
type EnumValue struct {
	Name   string // target variant constructor name
	Number int32
}

// EnumInfo is the generator-internal shape of an emitted enum module.
type EnumInfo struct {
	Name   string
	Doc    string
	Values []EnumValue
}

// MessageInfo is the generator-internal shape of an emitted message
// module.
type MessageInfo struct {
	Name      string
	ProtoName string

	// Doc is the message's leading .proto source comment, trimmed of
	// the comment-marker syntax itself; empty when the source message
	// has none. Carried through so internal/render can reproduce it as
	// a target-language doc comment (see DESIGN.md).
	Doc string

	NestedEnums    []*EnumInfo
	NestedMessages []*MessageInfo

	Oneofs []*OneOfInfo
	Fields []*FieldInfo

	// sameFileDeps holds the simple names of same-file messages this
	// message's fields reference directly. It is filled on nested messages
	// too, but only the top-level dependency sort reads it; nested
	// messages are never reordered relative to their siblings.
	sameFileDeps []string
}

// MethodInfo is one RPC method on a service.
type MethodInfo struct {
	Name             string // lowerCamelCase
	ProtoName        string
	InputType        string // fully qualified target record type, e.g. "Hello.t"
	OutputType       string
	ClientStreaming  bool
	ServerStreaming  bool
}

// ServiceInfo is one service's client+server surface.
type ServiceInfo struct {
	Name    string
	Methods []*MethodInfo
}

// FileInfo is everything needed to render one output ".res" file.
type FileInfo struct {
	ModuleStem string
	Package    string

	Enums    []*EnumInfo
	Messages []*MessageInfo
	Services []*ServiceInfo

	// Imports lists the module stems of other proto files this file's
	// messages/services reference fields/types from.
	Imports []string
}
