package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParams_Empty(t *testing.T) {
	p := ParseParams("", nil)
	assert.False(t, p.Wasm)
	assert.False(t, p.Grpc)
	assert.Equal(t, "", p.Out)
}

func TestParseParams_AllDirectives(t *testing.T) {
	p := ParseParams(" wasm, grpc ,core, out=build/rescript ", nil)
	assert.True(t, p.Wasm)
	assert.True(t, p.Grpc)
	assert.True(t, p.Core)
	assert.Equal(t, "build/rescript", p.Out)
}

func TestParseParams_UnknownDirectiveIgnored(t *testing.T) {
	p := ParseParams("wasm,bogus_flag", nil)
	assert.True(t, p.Wasm)
}
