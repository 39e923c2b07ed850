package ir

import (
	"strings"

	"google.golang.org/protobuf/compiler/protogen"
)

// leadingComment trims a protogen.Comments leading-comment block down to
// its text: drop the trailing newline protoc always appends, and the
// single leading space each line carries after its "//" marker.
func leadingComment(c protogen.Comments) string {
	text := strings.TrimSuffix(string(c), "\n")
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, " ")
	}
	return strings.Join(lines, "\n")
}
