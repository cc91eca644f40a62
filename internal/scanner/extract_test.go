package scanner

import (
	"testing"
)

func findSymbol(t *testing.T, facts *FileFacts, kind, name string) Symbol {
	t.Helper()
	for _, sym := range facts.Symbols {
		if sym.Kind == kind && sym.Name == name {
			return sym
		}
	}
	t.Fatalf("symbol %s/%s not found in %+v", kind, name, facts.Symbols)
	return Symbol{}
}

const jsSource = `import { helper, format as fmt } from './util';
import Config from './config';

const limit = 10;

async function fetchData(url, options) {
  return helper(url, options);
}

function* pager() {}

class Base {}

class Derived extends Base {
  size = 1;
  run() {
    this.helper.format(limit);
  }
}

export default fetchData;
export { pager };
`

func TestExtractJavaScript(t *testing.T) {
	facts, err := Extract([]byte(jsSource), "app.js")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	t.Run("functions", func(t *testing.T) {
		fetch := findSymbol(t, facts, SymbolFunction, "fetchData")
		if fetch.Line != 6 {
			t.Errorf("fetchData line: got %d, want 6", fetch.Line)
		}
		if fetch.Params != 2 {
			t.Errorf("fetchData params: got %d, want 2", fetch.Params)
		}
		if !fetch.IsAsync {
			t.Error("fetchData should be async")
		}
		if fetch.IsGenerator {
			t.Error("fetchData should not be a generator")
		}

		pager := findSymbol(t, facts, SymbolFunction, "pager")
		if !pager.IsGenerator {
			t.Error("pager should be a generator")
		}
	})

	t.Run("classes", func(t *testing.T) {
		base := findSymbol(t, facts, SymbolClass, "Base")
		if base.Superclass != "" {
			t.Errorf("Base superclass: got %q, want empty", base.Superclass)
		}

		derived := findSymbol(t, facts, SymbolClass, "Derived")
		if derived.Line != 14 {
			t.Errorf("Derived line: got %d, want 14", derived.Line)
		}
		if derived.Superclass != "Base" {
			t.Errorf("Derived superclass: got %q, want Base", derived.Superclass)
		}
		if len(derived.Methods) != 1 || derived.Methods[0] != "run" {
			t.Errorf("Derived methods: got %v, want [run]", derived.Methods)
		}
		if len(derived.Properties) != 1 || derived.Properties[0] != "size" {
			t.Errorf("Derived properties: got %v, want [size]", derived.Properties)
		}
	})

	t.Run("variables", func(t *testing.T) {
		limit := findSymbol(t, facts, SymbolVariable, "limit")
		if limit.Line != 4 {
			t.Errorf("limit line: got %d, want 4", limit.Line)
		}
		if limit.DeclKind != "const" {
			t.Errorf("limit decl kind: got %q, want const", limit.DeclKind)
		}
	})

	t.Run("calls", func(t *testing.T) {
		helper := findSymbol(t, facts, SymbolCall, "helper")
		if helper.Line != 7 {
			t.Errorf("helper call line: got %d, want 7", helper.Line)
		}
		if helper.Args != 2 {
			t.Errorf("helper call args: got %d, want 2", helper.Args)
		}

		// member calls keep the full object.property text
		member := findSymbol(t, facts, SymbolCall, "this.helper.format")
		if member.Args != 1 {
			t.Errorf("member call args: got %d, want 1", member.Args)
		}
	})

	t.Run("imports", func(t *testing.T) {
		if len(facts.Imports) != 3 {
			t.Fatalf("expected 3 imports, got %+v", facts.Imports)
		}
		byLocal := make(map[string]Import)
		for _, imp := range facts.Imports {
			byLocal[imp.Local] = imp
		}

		helper := byLocal["helper"]
		if helper.Source != "./util" || helper.Name != "helper" || helper.Line != 1 || helper.Default {
			t.Errorf("helper import: %+v", helper)
		}

		fmtImp := byLocal["fmt"]
		if fmtImp.Name != "format" {
			t.Errorf("aliased import: got name %q, want format", fmtImp.Name)
		}

		config := byLocal["Config"]
		if !config.Default || config.Source != "./config" || config.Line != 2 {
			t.Errorf("default import: %+v", config)
		}
	})

	t.Run("exports", func(t *testing.T) {
		var defaultName string
		var named []string
		for _, exp := range facts.Exports {
			if exp.Default {
				defaultName = exp.Name
			} else {
				named = append(named, exp.Name)
			}
		}
		if defaultName != "fetchData" {
			t.Errorf("default export: got %q, want fetchData", defaultName)
		}
		if len(named) != 1 || named[0] != "pager" {
			t.Errorf("named exports: got %v, want [pager]", named)
		}
	})
}

const tsSource = `import { Widget } from './widget';

export class Panel extends Widget {
  render(): void {}
}

export const VERSION: string = '1';
`

func TestExtractTypeScript(t *testing.T) {
	facts, err := Extract([]byte(tsSource), "panel.ts")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	panel := findSymbol(t, facts, SymbolClass, "Panel")
	if panel.Line != 3 {
		t.Errorf("Panel line: got %d, want 3", panel.Line)
	}
	if panel.Superclass != "Widget" {
		t.Errorf("Panel superclass: got %q, want Widget", panel.Superclass)
	}
	if len(panel.Methods) != 1 || panel.Methods[0] != "render" {
		t.Errorf("Panel methods: got %v, want [render]", panel.Methods)
	}

	version := findSymbol(t, facts, SymbolVariable, "VERSION")
	if version.DeclKind != "const" {
		t.Errorf("VERSION decl kind: got %q, want const", version.DeclKind)
	}

	exported := make(map[string]bool)
	for _, exp := range facts.Exports {
		exported[exp.Name] = true
	}
	if !exported["Panel"] || !exported["VERSION"] {
		t.Errorf("expected Panel and VERSION exports, got %+v", facts.Exports)
	}
}

func TestExtractUnsupportedFile(t *testing.T) {
	if _, err := Extract([]byte("fn main() {}"), "main.rs"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestExtractInvalidUTF8(t *testing.T) {
	if _, err := Extract([]byte{0xff, 0xfe, 0xfd}, "bad.js"); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}
