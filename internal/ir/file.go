package ir

import (
	"sort"

	"google.golang.org/protobuf/compiler/protogen"

	"github.com/toba/protoc-gen-rescript/internal/nameutil"
)

// BuildFile walks one protogen.File into a FileInfo, applying a
// dependency sort to its top-level messages so each type is emitted
// after the types it depends on. It never fails: malformed or
// unsupported fields degrade to placeholders (recorded as returned
// Diagnostics) rather than aborting generation.
func BuildFile(f *protogen.File) (*FileInfo, []Diagnostic) {
	b := &builder{
		fileName: f.Desc.Path(),
		imports:  map[string]bool{},
	}

	fi := &FileInfo{
		ModuleStem: nameutil.ModuleStem(f.Desc.Path()),
		Package:    string(f.Desc.Package()),
	}

	for _, e := range f.Enums {
		fi.Enums = append(fi.Enums, b.buildEnum(e))
	}

	var messages []*MessageInfo
	for _, m := range f.Messages {
		if m.Desc.IsMapEntry() {
			continue
		}
		messages = append(messages, b.buildMessage(m))
	}
	fi.Messages = topoSortMessages(messages)

	for _, s := range f.Services {
		fi.Services = append(fi.Services, b.buildService(s))
	}

	for stem := range b.imports {
		fi.Imports = append(fi.Imports, stem)
	}
	sort.Strings(fi.Imports)

	return fi, b.diagnostics
}
