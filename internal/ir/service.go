package ir

import (
	"google.golang.org/protobuf/compiler/protogen"

	"github.com/toba/protoc-gen-rescript/internal/nameutil"
)

// buildService constructs a ServiceInfo. Method request and response
// types are rendered as module-qualified "In.t"/"Out.t"
// expressions; cross-file input/output types are qualified the same way
// message fields are (see field.go's foreignStem).
func (b *builder) buildService(s *protogen.Service) *ServiceInfo {
	si := &ServiceInfo{Name: nameutil.TypeName(string(s.Desc.Name()))}
	for _, m := range s.Methods {
		si.Methods = append(si.Methods, &MethodInfo{
			Name:            nameutil.FieldName(string(m.Desc.Name())),
			ProtoName:       string(m.Desc.Name()),
			InputType:       b.messageFieldTypeDesc(m.Input.Desc),
			OutputType:      b.messageFieldTypeDesc(m.Output.Desc),
			ClientStreaming: m.Desc.IsStreamingClient(),
			ServerStreaming: m.Desc.IsStreamingServer(),
		})
	}
	return si
}
