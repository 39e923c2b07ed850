package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/compiler/protogen"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

// buildProtogenFile runs the full descriptor-to-protogen pipeline protoc
// itself would drive, so these tests exercise the same construction path
// the real driver in cmd/protoc-gen-rescript uses.
func buildProtogenFile(t *testing.T, target *descriptorpb.FileDescriptorProto, deps ...*descriptorpb.FileDescriptorProto) *protogen.File {
	t.Helper()

	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{target.GetName()},
		ProtoFile:      append(append([]*descriptorpb.FileDescriptorProto{}, deps...), target),
	}
	// protogen refuses a file with no Go import path; BuildFile never reads
	// it, so every file gets the same placeholder one.
	for _, fd := range req.ProtoFile {
		if fd.GetOptions().GetGoPackage() == "" {
			if fd.Options == nil {
				fd.Options = &descriptorpb.FileOptions{}
			}
			fd.Options.GoPackage = strPtr("example.com/testpb")
		}
	}

	gen, err := (protogen.Options{}).New(req)
	require.NoError(t, err)

	for _, f := range gen.Files {
		if f.Generate {
			return f
		}
	}
	t.Fatal("target file not marked Generate")
	return nil
}

func strPtr(s string) *string { return &s }
func i32Ptr(i int32) *int32   { return &i }
func boolPtr(b bool) *bool    { return &b }

func labelPtr(l descriptorpb.FieldDescriptorProto_Label) *descriptorpb.FieldDescriptorProto_Label { return &l }
func typePtr(t descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto_Type     { return &t }
func syntaxProto3(f *descriptorpb.FileDescriptorProto) *descriptorpb.FileDescriptorProto {
	f.Syntax = strPtr("proto3")
	return f
}
