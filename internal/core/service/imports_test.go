package service

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Core packages may depend on domain, ports and internal/pkg only.
func TestServiceImportsStayInCore(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}

	forbidden := []string{
		"github.com/movieportal/portal-api/internal/api",
		"github.com/movieportal/portal-api/internal/infrastructure",
	}

	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		for _, imp := range f.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			for _, prefix := range forbidden {
				if strings.HasPrefix(path, prefix) {
					t.Fatalf("%s imports %s", name, path)
				}
			}
		}
	}
}
