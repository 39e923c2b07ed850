package ir

import (
	"google.golang.org/protobuf/compiler/protogen"

	"github.com/toba/protoc-gen-rescript/internal/nameutil"
)

// buildMessage constructs a MessageInfo, recursing into nested
// messages/enums and grouping oneof members into a variant type apiece.
func (b *builder) buildMessage(m *protogen.Message) *MessageInfo {
	mi := &MessageInfo{
		Name:      nameutil.TypeName(string(m.Desc.Name())),
		ProtoName: string(m.Desc.Name()),
		Doc:       leadingComment(m.Comments.Leading),
	}

	for _, e := range m.Enums {
		mi.NestedEnums = append(mi.NestedEnums, b.buildEnum(e))
	}
	for _, nested := range m.Messages {
		if nested.Desc.IsMapEntry() {
			// Elided: map<K,V> fields are represented as a MapInfo on the
			// referencing FieldInfo, not as a nested message module.
			continue
		}
		mi.NestedMessages = append(mi.NestedMessages, b.buildMessage(nested))
	}

	byField := make(map[*protogen.Field]*FieldInfo, len(m.Fields))
	for _, f := range m.Fields {
		byField[f] = b.buildField(f)
	}

	for _, oo := range m.Oneofs {
		if oo.Desc.IsSynthetic() {
			continue
		}
		ooInfo := &OneOfInfo{
			ProtoName: string(oo.Desc.Name()),
			TypeName:  nameutil.TypeName(string(oo.Desc.Name())),
			FieldName: nameutil.FieldName(string(oo.Desc.Name())),
		}
		for _, f := range oo.Fields {
			ooInfo.Members = append(ooInfo.Members, byField[f])
		}
		mi.Oneofs = append(mi.Oneofs, ooInfo)
	}

	for _, f := range m.Fields {
		info := byField[f]
		if info.OneofIndex != nil {
			continue // routed into a oneof variant above, not a record field
		}
		mi.Fields = append(mi.Fields, info)
		if info.IsMessage && info.Map == nil && info.WellKnown == nil {
			if dep := sameFileMessageName(f, m.Desc.ParentFile().Path()); dep != "" {
				mi.sameFileDeps = append(mi.sameFileDeps, dep)
			}
		}
	}

	return mi
}

// sameFileMessageName returns the simple name of f's message type when it
// is declared in the same file as parentPath, or "" otherwise — used only
// to build the dependency graph for sort.go.
func sameFileMessageName(f *protogen.Field, parentPath string) string {
	if f.Message == nil {
		return ""
	}
	if f.Message.Desc.ParentFile().Path() != parentPath {
		return ""
	}
	return string(f.Message.Desc.Name())
}
