package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const projectImportPath = "github.com/rafaelleal24/stock-control"

// layerRule restricts the project packages a directory may import. A file
// matches the first rule whose dir it lives under.
type layerRule struct {
	dir     string
	allowed []string
	reason  string
}

var layerRules = []layerRule{
	{dir: "/core/domain", allowed: []string{"/internal/core/domain"}, reason: "domain only imports third parties and stdlib"},
	{dir: "/core/port", allowed: []string{"/internal/core/domain", "/internal/core/port"}, reason: "ports only depend on the domain"},
	{dir: "/core/", allowed: []string{"/internal/core/"}, reason: "core never depends on adapters"},
	{dir: "/adapters/http", allowed: []string{"/internal/core/", "/internal/adapters/config", "/internal/adapters/http", "/docs"}, reason: "inbound adapters only use config among adapters"},
	{dir: "/adapters/remote", allowed: []string{"/internal/core/", "/internal/adapters/config"}, reason: "the remote source is self contained"},
	{dir: "/docs", allowed: nil, reason: "generated docs import nothing from the project"},
}

func TestArchitecturalRules(t *testing.T) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		t.Fatal("Failed to find project root:", err)
	}

	err = filepath.Walk(projectRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && path != projectRoot && (strings.HasPrefix(info.Name(), "_") || strings.HasPrefix(info.Name(), ".")) {
			return filepath.SkipDir
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Logf("Failed to parse %s: %v", path, err)
			return nil
		}

		relPath, err := filepath.Rel(projectRoot, path)
		if err != nil {
			return err
		}
		relPath = "/" + filepath.ToSlash(relPath)

		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, "\"")
			if rule, violated := checkImport(relPath, importPath); violated {
				t.Errorf("ARCHITECTURE VIOLATION at %v: %s imports %s (%s)", fset.Position(imp.Pos()), relPath, importPath, rule.reason)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal("Failed to walk through project files:", err)
	}
}

func TestCheckImport(t *testing.T) {
	tests := []struct {
		file     string
		imp      string
		violated bool
	}{
		{"/internal/core/domain/product.go", projectImportPath + "/internal/core/port", true},
		{"/internal/core/domain/product.go", "sort", false},
		{"/internal/core/port/source.go", projectImportPath + "/internal/core/domain", false},
		{"/internal/core/service/ledger.go", projectImportPath + "/internal/core/storage", false},
		{"/internal/core/service/ledger.go", projectImportPath + "/internal/adapters/memory", true},
		{"/internal/adapters/http/router.go", projectImportPath + "/internal/adapters/config", false},
		{"/internal/adapters/http/router.go", projectImportPath + "/internal/adapters/redis", true},
		{"/internal/adapters/remote/remote.go", projectImportPath + "/internal/adapters/http", true},
		{"/cmd/http/main.go", projectImportPath + "/internal/adapters/redis", false},
	}

	for _, tt := range tests {
		if _, got := checkImport(tt.file, tt.imp); got != tt.violated {
			t.Errorf("checkImport(%s, %s) = %v, want %v", tt.file, tt.imp, got, tt.violated)
		}
	}
}

func checkImport(filePath, importPath string) (layerRule, bool) {
	if !strings.HasPrefix(importPath, projectImportPath) {
		return layerRule{}, false
	}
	internalPath := strings.TrimPrefix(importPath, projectImportPath)

	for _, rule := range layerRules {
		if !strings.Contains(filePath, rule.dir) {
			continue
		}
		for _, allowed := range rule.allowed {
			if strings.HasPrefix(internalPath, allowed) {
				return rule, false
			}
		}
		return rule, true
	}
	return layerRule{}, false
}

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return os.Getwd()
}
