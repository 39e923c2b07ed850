package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/descriptorpb"
)

func mapEntry(name string, keyType, valType descriptorpb.FieldDescriptorProto_Type) *descriptorpb.DescriptorProto {
	t := true
	return &descriptorpb.DescriptorProto{
		Name: strPtr(name),
		Field: []*descriptorpb.FieldDescriptorProto{
			{Name: strPtr("key"), Number: i32Ptr(1), Label: labelPtr(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: typePtr(keyType)},
			{Name: strPtr("value"), Number: i32Ptr(2), Label: labelPtr(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: typePtr(valType)},
		},
		Options: &descriptorpb.MessageOptions{MapEntry: &t},
	}
}

func TestBuildFile_MapField(t *testing.T) {
	fdp := syntaxProto3(&descriptorpb.FileDescriptorProto{
		Name: strPtr("m.proto"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("M"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name: strPtr("labels"), Number: i32Ptr(1),
						Label:    labelPtr(descriptorpb.FieldDescriptorProto_LABEL_REPEATED),
						Type:     typePtr(descriptorpb.FieldDescriptorProto_TYPE_MESSAGE),
						TypeName: strPtr(".M.LabelsEntry"),
					},
				},
				NestedType: []*descriptorpb.DescriptorProto{
					mapEntry("LabelsEntry", descriptorpb.FieldDescriptorProto_TYPE_STRING, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				},
			},
		},
	})

	f := buildProtogenFile(t, fdp)
	fi, diags := BuildFile(f)
	require.Empty(t, diags)
	msg := fi.Messages[0]
	require.Empty(t, msg.NestedMessages, "map entry message must be elided")
	require.Len(t, msg.Fields, 1)
	field := msg.Fields[0]
	require.NotNil(t, field.Map)
	assert.False(t, field.Repeated)
	assert.False(t, field.Optional)
	assert.Equal(t, "string", field.Map.KeyExpr)
	assert.Equal(t, "string", field.Map.ValueExpr)
}

func TestBuildFile_CrossFileReferenceQualifies(t *testing.T) {
	dep := syntaxProto3(&descriptorpb.FileDescriptorProto{
		Name: strPtr("other.proto"),
		MessageType: []*descriptorpb.DescriptorProto{
			{Name: strPtr("Other")},
		},
	})
	fdp := syntaxProto3(&descriptorpb.FileDescriptorProto{
		Name:       strPtr("main.proto"),
		Dependency: []string{"other.proto"},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("M"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: strPtr("other"), Number: i32Ptr(1), Label: labelPtr(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: typePtr(descriptorpb.FieldDescriptorProto_TYPE_MESSAGE), TypeName: strPtr(".Other")},
				},
			},
		},
	})

	f := buildProtogenFile(t, fdp, dep)
	fi, diags := BuildFile(f)
	require.Empty(t, diags)
	require.Len(t, fi.Imports, 1)
	assert.Equal(t, "OtherProto", fi.Imports[0])
	assert.Equal(t, "OtherProto.Other.t", fi.Messages[0].Fields[0].TypeExpr)
}

func TestBuildFile_Service(t *testing.T) {
	fdp := syntaxProto3(&descriptorpb.FileDescriptorProto{
		Name: strPtr("svc.proto"),
		MessageType: []*descriptorpb.DescriptorProto{
			{Name: strPtr("Hello")},
			{Name: strPtr("Reply")},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: strPtr("Greeter"),
				Method: []*descriptorpb.MethodDescriptorProto{
					{
						Name: strPtr("SayHello"), InputType: strPtr(".Hello"), OutputType: strPtr(".Reply"),
						ServerStreaming: boolPtr(true),
					},
				},
			},
		},
	})

	f := buildProtogenFile(t, fdp)
	fi, diags := BuildFile(f)
	require.Empty(t, diags)
	require.Len(t, fi.Services, 1)
	svc := fi.Services[0]
	assert.Equal(t, "Greeter", svc.Name)
	require.Len(t, svc.Methods, 1)
	m := svc.Methods[0]
	assert.Equal(t, "sayHello", m.Name)
	assert.Equal(t, "Hello.t", m.InputType)
	assert.Equal(t, "Reply.t", m.OutputType)
	assert.True(t, m.ServerStreaming)
	assert.False(t, m.ClientStreaming)
}

func TestBuildFile_WellKnownTimestampForcesOptional(t *testing.T) {
	wkt := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("google/protobuf/timestamp.proto"),
		Package: strPtr("google.protobuf"),
		MessageType: []*descriptorpb.DescriptorProto{
			{Name: strPtr("Timestamp")},
		},
	}
	fdp := syntaxProto3(&descriptorpb.FileDescriptorProto{
		Name:       strPtr("evt.proto"),
		Dependency: []string{"google/protobuf/timestamp.proto"},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Event"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: strPtr("at"), Number: i32Ptr(1), Label: labelPtr(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: typePtr(descriptorpb.FieldDescriptorProto_TYPE_MESSAGE), TypeName: strPtr(".google.protobuf.Timestamp")},
				},
			},
		},
	})

	f := buildProtogenFile(t, fdp, wkt)
	fi, diags := BuildFile(f)
	require.Empty(t, diags)
	field := fi.Messages[0].Fields[0]
	assert.True(t, field.Optional)
	assert.Equal(t, "Js.Date.t", field.TypeExpr)
	require.NotNil(t, field.WellKnown)
	assert.Equal(t, ".google.protobuf.Timestamp", field.WellKnown.QualifiedName)
}
