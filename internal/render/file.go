package render

import "github.com/toba/protoc-gen-rescript/internal/ir"

// File assembles one output ".res" file's full text: open statements for
// every cross-file module this file references, then top-level enums,
// then messages (already topologically sorted by internal/ir so a
// message never references one declared after it), then services. wasm
// controls whether message modules also emit the binary encode/decode
// stubs, gated by the plugin's "wasm" parameter directive.
func File(f *ir.FileInfo, wasm bool) string {
	p := &Printer{}

	for _, stem := range f.Imports {
		p.P("open ", stem)
	}
	if len(f.Imports) > 0 {
		p.P()
	}

	for i, e := range f.Enums {
		Enum(p, e)
		if i < len(f.Enums)-1 || len(f.Messages) > 0 || len(f.Services) > 0 {
			p.P()
		}
	}

	reg := newSchemaRegistry(f.Messages)
	for i, m := range f.Messages {
		messageWithRegistry(p, m, wasm, reg)
		if i < len(f.Messages)-1 || len(f.Services) > 0 {
			p.P()
		}
	}

	for i, s := range f.Services {
		Service(p, s)
		if i < len(f.Services)-1 {
			p.P()
		}
	}

	return p.String()
}
