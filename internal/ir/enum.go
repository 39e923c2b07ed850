package ir

import (
	"google.golang.org/protobuf/compiler/protogen"

	"github.com/toba/protoc-gen-rescript/internal/nameutil"
)

// buildEnum constructs an EnumInfo: value order is source order, numbers
// pass through unchanged.
func (b *builder) buildEnum(e *protogen.Enum) *EnumInfo {
	ei := &EnumInfo{
		Name: nameutil.TypeName(string(e.Desc.Name())),
		Doc:  leadingComment(e.Comments.Leading),
	}
	for _, v := range e.Values {
		ei.Values = append(ei.Values, EnumValue{
			Name:   nameutil.EnumVariantName(string(v.Desc.Name())),
			Number: int32(v.Desc.Number()),
		})
	}
	return ei
}
