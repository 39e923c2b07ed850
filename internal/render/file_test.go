package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toba/protoc-gen-rescript/internal/ir"
)

func TestFile_OrdersEnumsMessagesServices(t *testing.T) {
	f := &ir.FileInfo{
		ModuleStem: "Greet",
		Imports:    []string{"Common"},
		Enums:      []*ir.EnumInfo{{Name: "Level", Values: []ir.EnumValue{{Name: "Low", Number: 0}}}},
		Messages:   []*ir.MessageInfo{personMessage()},
		Services:   []*ir.ServiceInfo{greeterService()},
	}

	out := File(f, false)

	openIdx := strings.Index(out, "open Common")
	enumIdx := strings.Index(out, "module Level = {")
	msgIdx := strings.Index(out, "module Person = {")
	svcIdx := strings.Index(out, "module Greeter = {")

	assert.True(t, openIdx >= 0 && openIdx < enumIdx, "open statement must precede declarations")
	assert.True(t, enumIdx < msgIdx, "enums must precede messages")
	assert.True(t, msgIdx < svcIdx, "messages must precede services")
}

func TestFile_NoImportsOmitsOpenBlock(t *testing.T) {
	f := &ir.FileInfo{
		ModuleStem: "Greet",
		Messages:   []*ir.MessageInfo{personMessage()},
	}
	out := File(f, false)
	assert.NotContains(t, out, "open ")
}
