// Package gen composes internal/ir and internal/render into the
// protoc-gen-rescript driver: parsing the plugin parameter string,
// building one FileInfo per requested input, and writing one generated
// ".res" file per input.
package gen

import (
	"log/slog"
	"strings"
)

// Params is the parsed form of the plugin's comma-separated directive
// string.
type Params struct {
	Wasm bool
	Grpc bool
	Core bool
	Out  string
}

// ParseParams splits raw on commas, trims whitespace from each
// directive, and recognizes wasm/grpc/core/out=<path>. Unknown
// directives are logged at debug level and otherwise ignored.
func ParseParams(raw string, logger *slog.Logger) Params {
	var p Params
	if raw == "" {
		return p
	}
	for _, directive := range strings.Split(raw, ",") {
		directive = strings.TrimSpace(directive)
		switch {
		case directive == "":
			continue
		case directive == "wasm":
			p.Wasm = true
		case directive == "grpc":
			p.Grpc = true
		case directive == "core":
			p.Core = true
		case strings.HasPrefix(directive, "out="):
			p.Out = strings.TrimPrefix(directive, "out=")
		default:
			if logger != nil {
				logger.Debug("ignoring unknown plugin directive", "directive", directive)
			}
		}
	}
	return p
}
