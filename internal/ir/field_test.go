package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/descriptorpb"
)

// A simple two-scalar-field message.
func TestBuildFile_SimpleMessage(t *testing.T) {
	fdp := syntaxProto3(&descriptorpb.FileDescriptorProto{
		Name: strPtr("user.proto"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("User"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: strPtr("name"), Number: i32Ptr(1), Label: labelPtr(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: typePtr(descriptorpb.FieldDescriptorProto_TYPE_STRING)},
					{Name: strPtr("id"), Number: i32Ptr(2), Label: labelPtr(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: typePtr(descriptorpb.FieldDescriptorProto_TYPE_INT32)},
				},
			},
		},
	})

	f := buildProtogenFile(t, fdp)
	fi, diags := BuildFile(f)
	require.Empty(t, diags)

	require.Equal(t, "UserProto", fi.ModuleStem)
	require.Len(t, fi.Messages, 1)
	msg := fi.Messages[0]
	assert.Equal(t, "User", msg.Name)
	require.Len(t, msg.Fields, 2)
	assert.Equal(t, "name", msg.Fields[0].Name)
	assert.Equal(t, "string", msg.Fields[0].TypeExpr)
	assert.False(t, msg.Fields[0].Optional)
	assert.False(t, msg.Fields[0].Repeated)
	assert.Equal(t, "id", msg.Fields[1].Name)
	assert.Equal(t, "int", msg.Fields[1].TypeExpr)
}

// Scenario 3: an enum with three values.
func TestBuildFile_Enum(t *testing.T) {
	fdp := syntaxProto3(&descriptorpb.FileDescriptorProto{
		Name: strPtr("status.proto"),
		EnumType: []*descriptorpb.EnumDescriptorProto{
			{
				Name: strPtr("STATUS"),
				Value: []*descriptorpb.EnumValueDescriptorProto{
					{Name: strPtr("UNKNOWN"), Number: i32Ptr(0)},
					{Name: strPtr("ACTIVE"), Number: i32Ptr(1)},
					{Name: strPtr("INACTIVE"), Number: i32Ptr(2)},
				},
			},
		},
	})

	f := buildProtogenFile(t, fdp)
	fi, diags := BuildFile(f)
	require.Empty(t, diags)
	require.Len(t, fi.Enums, 1)
	e := fi.Enums[0]
	require.Len(t, e.Values, 3)
	assert.Equal(t, "Unknown", e.Values[0].Name)
	assert.Equal(t, int32(0), e.Values[0].Number)
	assert.Equal(t, "Active", e.Values[1].Name)
	assert.Equal(t, int32(1), e.Values[1].Number)
	assert.Equal(t, "Inactive", e.Values[2].Name)
	assert.Equal(t, int32(2), e.Values[2].Number)
}

// Scenario 4: a message with a real oneof.
func TestBuildFile_Oneof(t *testing.T) {
	fdp := syntaxProto3(&descriptorpb.FileDescriptorProto{
		Name: strPtr("m.proto"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("M"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: strPtr("s"), Number: i32Ptr(1), Label: labelPtr(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: typePtr(descriptorpb.FieldDescriptorProto_TYPE_STRING), OneofIndex: i32Ptr(0)},
					{Name: strPtr("n"), Number: i32Ptr(2), Label: labelPtr(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: typePtr(descriptorpb.FieldDescriptorProto_TYPE_INT32), OneofIndex: i32Ptr(0)},
				},
				OneofDecl: []*descriptorpb.OneofDescriptorProto{
					{Name: strPtr("payload")},
				},
			},
		},
	})

	f := buildProtogenFile(t, fdp)
	fi, diags := BuildFile(f)
	require.Empty(t, diags)
	require.Len(t, fi.Messages, 1)
	msg := fi.Messages[0]
	require.Len(t, msg.Oneofs, 1)
	oo := msg.Oneofs[0]
	assert.Equal(t, "Payload", oo.TypeName)
	require.Len(t, oo.Members, 2)
	assert.Equal(t, "s", oo.Members[0].Name)
	assert.Equal(t, "string", oo.Members[0].TypeExpr)
	assert.Equal(t, "n", oo.Members[1].Name)
	assert.Equal(t, "int", oo.Members[1].TypeExpr)
	// Oneof members are routed out of the record entirely.
	for _, f := range msg.Fields {
		assert.NotEqual(t, "s", f.Name)
		assert.NotEqual(t, "n", f.Name)
	}
}

// Promoted synthetic singleton oneof (proto3 optional scalar): must
// surface as a plain optional field, not a oneof.
func TestBuildFile_Proto3OptionalPromoted(t *testing.T) {
	fdp := syntaxProto3(&descriptorpb.FileDescriptorProto{
		Name: strPtr("opt.proto"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("M"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name: strPtr("nickname"), Number: i32Ptr(1),
						Label: labelPtr(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL),
						Type:  typePtr(descriptorpb.FieldDescriptorProto_TYPE_STRING),
						OneofIndex:     i32Ptr(0),
						Proto3Optional: boolPtr(true),
					},
				},
				OneofDecl: []*descriptorpb.OneofDescriptorProto{
					{Name: strPtr("_nickname")},
				},
			},
		},
	})

	f := buildProtogenFile(t, fdp)
	fi, diags := BuildFile(f)
	require.Empty(t, diags)
	msg := fi.Messages[0]
	assert.Empty(t, msg.Oneofs, "synthetic singleton oneof must be dropped")
	require.Len(t, msg.Fields, 1)
	assert.Equal(t, "nickname", msg.Fields[0].Name)
	assert.True(t, msg.Fields[0].Optional)
	assert.False(t, msg.Fields[0].Repeated)
}

func TestBuildFile_RepeatedExcludesOptional(t *testing.T) {
	fdp := syntaxProto3(&descriptorpb.FileDescriptorProto{
		Name: strPtr("r.proto"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("M"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: strPtr("tags"), Number: i32Ptr(1), Label: labelPtr(descriptorpb.FieldDescriptorProto_LABEL_REPEATED), Type: typePtr(descriptorpb.FieldDescriptorProto_TYPE_STRING)},
				},
			},
		},
	})
	f := buildProtogenFile(t, fdp)
	fi, _ := BuildFile(f)
	field := fi.Messages[0].Fields[0]
	assert.True(t, field.Repeated)
	assert.False(t, field.Optional)
}

func TestBuildFile_GroupIsPlaceholder(t *testing.T) {
	fdp := &descriptorpb.FileDescriptorProto{
		Name: strPtr("g.proto"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Outer"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: strPtr("grp"), Number: i32Ptr(1), Label: labelPtr(descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL), Type: typePtr(descriptorpb.FieldDescriptorProto_TYPE_GROUP), TypeName: strPtr(".Outer.Grp")},
				},
				NestedType: []*descriptorpb.DescriptorProto{
					{Name: strPtr("Grp")},
				},
			},
		},
	}
	f := buildProtogenFile(t, fdp)
	fi, diags := BuildFile(f)
	require.Len(t, diags, 1)
	assert.Equal(t, "unit", fi.Messages[0].Fields[0].TypeExpr)
}
