// Command protoc-gen-rescript is a protoc compiler plugin that emits
// ReScript source modules from protobuf descriptors: read a
// CodeGeneratorRequest from stdin, write a CodeGeneratorResponse to
// stdout, and exit non-zero with a human-readable diagnostic on stderr
// on any failure.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/protobuf/compiler/protogen"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/toba/protoc-gen-rescript/internal/gen"
	"github.com/toba/protoc-gen-rescript/internal/ir"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	options := protogen.Options{}
	err := options.Run(func(plugin *protogen.Plugin) error {
		plugin.SupportedFeatures = uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)

		params := gen.ParseParams(plugin.Request.GetParameter(), logger)

		for _, f := range plugin.Files {
			if !f.Generate {
				continue
			}
			if err := gen.GenerateFile(plugin, f, params, logger); err != nil {
				return &ir.DriverIOError{Op: "generate " + f.Desc.Path(), Err: err}
			}
		}
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "protoc-gen-rescript:", err)
		os.Exit(1)
	}
}
