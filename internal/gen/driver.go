package gen

import (
	"log/slog"

	"google.golang.org/protobuf/compiler/protogen"

	"github.com/toba/protoc-gen-rescript/internal/ir"
	"github.com/toba/protoc-gen-rescript/internal/render"
)

// GenerateFile builds the descriptor model for f and writes its
// rendered ".res" output into plugin: one output file per input file.
// Non-fatal per-field degradations are logged as warnings rather than
// aborting the whole file.
func GenerateFile(plugin *protogen.Plugin, f *protogen.File, params Params, logger *slog.Logger) error {
	fileInfo, diagnostics := ir.BuildFile(f)
	for _, d := range diagnostics {
		if logger != nil {
			logger.Warn("degraded field during generation", "file", d.File, "field", d.Field, "reason", d.Reason)
		}
	}

	if !params.Grpc {
		fileInfo.Services = nil
	}

	path := fileInfo.ModuleStem + ".res"
	out := plugin.NewGeneratedFile(path, f.GoImportPath)
	out.P(render.File(fileInfo, params.Wasm))

	return nil
}
