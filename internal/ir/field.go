package ir

import (
	"strings"

	"google.golang.org/protobuf/compiler/protogen"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/toba/protoc-gen-rescript/internal/nameutil"
	"github.com/toba/protoc-gen-rescript/internal/typemap"
)

// builder carries the mutable state threaded through one file's
// construction: the diagnostics accumulated by field-classification
// degradations and the set of other-file module stems a cross-package
// reference pulled in.
type builder struct {
	fileName    string
	diagnostics []Diagnostic
	imports     map[string]bool
}

func (b *builder) warn(field protoreflect.FieldDescriptor, reason string) {
	b.diagnostics = append(b.diagnostics, Diagnostic{
		File:   b.fileName,
		Field:  string(field.FullName()),
		Reason: reason,
	})
}

// buildField classifies a single field's mode and maps its type. The
// same-file dependencies the topological sort in sort.go uses are
// recorded by buildMessage, not here.
func (b *builder) buildField(f *protogen.Field) *FieldInfo {
	desc := f.Desc

	if desc.IsMap() {
		return b.buildMapField(f)
	}

	info := &FieldInfo{
		ProtoName: string(desc.Name()),
		Name:      nameutil.FieldName(string(desc.Name())),
		Doc:       leadingComment(f.Comments.Leading),
		Number:    int32(desc.Number()),
		Kind:      desc.Kind(),
	}

	var wkt typemap.WellKnown
	var isWellKnown bool
	if desc.Kind() == protoreflect.MessageKind {
		wkt, isWellKnown = typemap.WellKnownFor(messageQualifiedName(f))
	}

	switch {
	case isWellKnown:
		info.IsMessage = true
		info.WellKnown = &WellKnownRef{QualifiedName: messageQualifiedName(f)}
		info.TypeExpr = wkt.TargetType
	case desc.Kind() == protoreflect.GroupKind:
		// Not supported: proto2 groups are an inert placeholder.
		info.TypeExpr = "unit"
		b.warn(desc, "proto2 group field mapped to unit placeholder")
	case desc.Kind() == protoreflect.MessageKind:
		info.IsMessage = true
		info.TypeExpr = b.messageFieldType(f)
	case desc.Kind() == protoreflect.EnumKind:
		info.IsEnum = true
		info.TypeExpr = b.enumFieldType(f)
	default:
		info.TypeExpr = typemap.Scalar(desc.Kind())
	}

	classifyMode(info, desc)
	return info
}

// classifyMode assigns exactly one of {repeated, oneof-member, optional,
// required} by checking, in order, whether the field is a list, a real
// oneof member, a well-known-type reference, explicitly optional, or a
// message type — falling through to required otherwise. oneof-member
// routing is expressed by leaving OneofIndex set; the caller
// (buildMessage) removes the field from Message.Fields and places it on
// the owning OneOfInfo when OneofIndex is still set after this call.
func classifyMode(info *FieldInfo, desc protoreflect.FieldDescriptor) {
	switch {
	case desc.IsList():
		info.Repeated = true
		return
	case desc.ContainingOneof() != nil && !desc.ContainingOneof().IsSynthetic():
		idx := oneofIndex(desc)
		info.OneofIndex = &idx
		return
	case info.WellKnown != nil:
		info.Optional = true
		return
	case desc.HasOptionalKeyword():
		// Either a proto3-optional scalar (synthetic singleton oneof,
		// promoted here) or an explicit proto2 "optional" field; both
		// surface the same way.
		info.Optional = true
		return
	case info.IsMessage:
		info.Optional = true
		return
	default:
		// Required: the target's default value is the protobuf default.
		return
	}
}

func oneofIndex(desc protoreflect.FieldDescriptor) int {
	oo := desc.ContainingOneof()
	return oo.Index()
}

func (b *builder) buildMapField(f *protogen.Field) *FieldInfo {
	desc := f.Desc
	keyDesc := desc.MapKey()
	valDesc := desc.MapValue()

	mi := &MapInfo{
		KeyExpr: typemap.Scalar(keyDesc.Kind()),
		KeyKind: keyDesc.Kind(),
	}

	switch valDesc.Kind() {
	case protoreflect.MessageKind:
		mi.ValueIsMessage = true
		mi.ValueExpr = b.messageFieldTypeDesc(valDesc.Message())
	case protoreflect.EnumKind:
		mi.ValueIsEnum = true
		mi.ValueExpr = b.enumFieldTypeDesc(valDesc.Enum())
	default:
		mi.ValueExpr = typemap.Scalar(valDesc.Kind())
	}
	mi.ValueKind = valDesc.Kind()

	return &FieldInfo{
		ProtoName: string(desc.Name()),
		Name:      nameutil.FieldName(string(desc.Name())),
		Number:    int32(desc.Number()),
		Kind:      protoreflect.MessageKind,
		Map:       mi,
	}
}

// messageFieldType resolves the "TypeName.t" expression for a
// message-typed field: the last dot-delimited segment of the qualified
// type name, qualified with the owning module's stem when the
// referenced message lives in a different proto file.
func (b *builder) messageFieldType(f *protogen.Field) string {
	return b.messageFieldTypeDesc(f.Message.Desc)
}

func (b *builder) messageFieldTypeDesc(md protoreflect.MessageDescriptor) string {
	name := nameutil.TypeName(lastSegment(string(md.Name())))
	if stem := b.foreignStem(md.ParentFile().Path()); stem != "" {
		b.imports[stem] = true
		return stem + "." + name + ".t"
	}
	return name + ".t"
}

func (b *builder) enumFieldType(f *protogen.Field) string {
	return b.enumFieldTypeDesc(f.Enum.Desc)
}

func (b *builder) enumFieldTypeDesc(ed protoreflect.EnumDescriptor) string {
	name := nameutil.TypeName(lastSegment(string(ed.Name())))
	if stem := b.foreignStem(ed.ParentFile().Path()); stem != "" {
		b.imports[stem] = true
		return stem + "." + name + ".t"
	}
	return name + ".t"
}

// foreignStem returns the module stem to qualify a reference with when
// protoPath is not the file currently being generated, or "" for a
// same-file reference.
func (b *builder) foreignStem(protoPath string) string {
	if protoPath == b.fileName {
		return ""
	}
	return nameutil.ModuleStem(protoPath)
}

func lastSegment(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

func messageQualifiedName(f *protogen.Field) string {
	if f.Message == nil {
		return ""
	}
	return "." + string(f.Message.Desc.FullName())
}
