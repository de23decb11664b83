// cmd/delaygen/main.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
)

// This binary is a code-generation tool.
//
// It reads a Go source file, locates a named interface, and generates a
// Lazy<Iface> forwarding wrapper: every method forces a deferred handle and
// delegates to the produced value, and an init() registers the wrapper's
// factory in the shared proxy registry.
//
// Key behaviors:
// - Parses the source file with go/parser; embedded interfaces are resolved
//   when declared in the same file (package-qualified embeds are rejected)
// - Methods named in -exclude become panicking stubs instead of delegates,
//   so re-initialization-style operations are never forwarded
// - Reads imports from the source file and keeps only the ones the method
//   signatures actually reference (so the generated file compiles clean)
// - Writes output atomically (temp file + rename) to avoid partial writes

// defaultExclude lists the method names excluded from forwarding unless
// overridden: re-initialization-style operations.
const defaultExclude = "Reset,Init"

// defaultProxyImport is the import path of the registry package referenced
// by generated code.
const defaultProxyImport = "github.com/sghaida/delayed/proxy"

// ImportSpec models one Go import: optional alias and full import path.
type ImportSpec struct {
	Alias string
	Path  string
}

// methodData describes one generated wrapper method.
type methodData struct {
	// Name is the interface method name.
	Name string

	// Params is the rendered parameter list, e.g. "a0 int, a1 ...string".
	Params string

	// Results is the rendered result list with a leading space when
	// non-empty, e.g. " int" or " (int, error)".
	Results string

	// Args is the rendered call argument list, e.g. "a0, a1...".
	Args string

	HasResults bool

	// Excluded methods are generated as panicking stubs.
	Excluded bool
}

// templateData is the input passed to the Go template.
type templateData struct {
	Package     string
	Iface       string
	Wrapper     string
	ProxyImport string
	ProxyAlias  bool
	Imports     []ImportSpec
	Methods     []methodData
}

// run executes the generator logic and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("delaygen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	srcPath := flags.String("src", "", "Go file declaring the interface")
	ifaceName := flags.String("iface", "", "interface name to wrap")
	outPath := flags.String("out", "", "output .gen.go file path")
	exclude := flags.String("exclude", defaultExclude, "comma-separated method names excluded from forwarding")
	proxyImport := flags.String("proxy-import", defaultProxyImport, "import path of the proxy registry package")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(*srcPath) == "" ||
		strings.TrimSpace(*ifaceName) == "" ||
		strings.TrimSpace(*outPath) == "" {
		_, _ = fmt.Fprintln(stderr, "usage: delaygen -src <file.go> -iface <Name> -out <file.gen.go>")
		return 2
	}

	fileSet := token.NewFileSet()
	parsedFile, err := parser.ParseFile(fileSet, *srcPath, nil, 0)
	must(err)

	ifaceType := findInterface(parsedFile, *ifaceName)
	if ifaceType == nil {
		panic(fmt.Errorf("interface %q not found in %s", *ifaceName, *srcPath))
	}

	excluded := parseExcludeList(*exclude)

	methods := collectMethods(fileSet, parsedFile, *srcPath, ifaceType, excluded, map[string]bool{})
	if len(methods) == 0 {
		panic(fmt.Errorf("interface %q has no methods to forward", *ifaceName))
	}

	data := templateData{
		Package:     parsedFile.Name.Name,
		Iface:       *ifaceName,
		Wrapper:     "Lazy" + *ifaceName,
		ProxyImport: *proxyImport,
		ProxyAlias:  path.Base(*proxyImport) != "proxy",
		Imports:     usedImports(parsedFile, methods),
		Methods:     methods,
	}

	var out strings.Builder
	must(genTemplate.Execute(&out, data))

	must(writeFileAtomic(filepath.Clean(*outPath), []byte(out.String()), 0o644))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// parseExcludeList splits the -exclude flag into a name set.
func parseExcludeList(raw string) map[string]bool {
	excluded := map[string]bool{}
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			excluded[name] = true
		}
	}
	return excluded
}

// findInterface returns the named interface declaration, or nil.
func findInterface(parsedFile *ast.File, name string) *ast.InterfaceType {
	for _, declaration := range parsedFile.Decls {
		genDecl, ok := declaration.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok || typeSpec.Name == nil || typeSpec.Name.Name != name {
				continue
			}
			ifaceType, ok := typeSpec.Type.(*ast.InterfaceType)
			if !ok {
				panic(fmt.Errorf("type %q is not an interface", name))
			}
			return ifaceType
		}
	}
	return nil
}

// collectMethods flattens an interface's method set into methodData,
// resolving same-file embedded interfaces recursively.
//
// seen dedupes method names across embeds (identical signatures are assumed,
// as the compiler enforces for overlapping embeds).
func collectMethods(
	fileSet *token.FileSet,
	parsedFile *ast.File,
	srcPath string,
	ifaceType *ast.InterfaceType,
	excluded map[string]bool,
	seen map[string]bool,
) []methodData {
	var methods []methodData

	for _, field := range ifaceType.Methods.List {
		if len(field.Names) == 0 {
			methods = append(methods, collectEmbedded(fileSet, parsedFile, srcPath, field.Type, excluded, seen)...)
			continue
		}

		name := field.Names[0].Name
		if seen[name] {
			continue
		}
		seen[name] = true

		funcType, ok := field.Type.(*ast.FuncType)
		if !ok {
			// Generic interface elements (type terms) have no call syntax to forward.
			panic(fmt.Errorf("interface element %q in %s is not a method", name, srcPath))
		}

		methods = append(methods, renderMethod(fileSet, name, funcType, excluded[name]))
	}

	return methods
}

// collectEmbedded resolves one embedded interface expression.
func collectEmbedded(
	fileSet *token.FileSet,
	parsedFile *ast.File,
	srcPath string,
	expr ast.Expr,
	excluded map[string]bool,
	seen map[string]bool,
) []methodData {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		// Selector (pkg.Iface) or instantiated generic embeds.
		panic(fmt.Errorf("embedded interface %s in %s is not declared in the same file", exprString(fileSet, expr), srcPath))
	}

	embedded := findInterface(parsedFile, ident.Name)
	if embedded == nil {
		panic(fmt.Errorf("embedded interface %q not found in %s", ident.Name, srcPath))
	}

	return collectMethods(fileSet, parsedFile, srcPath, embedded, excluded, seen)
}

// renderMethod renders one method's parameter, result, and argument lists.
//
// Parameter names are always synthesized (a0, a1, ...) so generated code can
// never shadow the receiver or collide with declared names.
func renderMethod(fileSet *token.FileSet, name string, funcType *ast.FuncType, isExcluded bool) methodData {
	var paramDecls, callArgs []string

	paramIndex := 0
	if funcType.Params != nil {
		for _, param := range funcType.Params.List {
			// A grouped declaration (a, b int) contributes one slot per name.
			slots := len(param.Names)
			if slots == 0 {
				slots = 1
			}

			for range slots {
				argName := fmt.Sprintf("a%d", paramIndex)
				paramIndex++

				if ellipsis, ok := param.Type.(*ast.Ellipsis); ok {
					paramDecls = append(paramDecls, argName+" ..."+exprString(fileSet, ellipsis.Elt))
					callArgs = append(callArgs, argName+"...")
					continue
				}

				paramDecls = append(paramDecls, argName+" "+exprString(fileSet, param.Type))
				callArgs = append(callArgs, argName)
			}
		}
	}

	var resultTypes []string
	if funcType.Results != nil {
		for _, result := range funcType.Results.List {
			slots := len(result.Names)
			if slots == 0 {
				slots = 1
			}
			for range slots {
				resultTypes = append(resultTypes, exprString(fileSet, result.Type))
			}
		}
	}

	results := ""
	switch len(resultTypes) {
	case 0:
	case 1:
		results = " " + resultTypes[0]
	default:
		results = " (" + strings.Join(resultTypes, ", ") + ")"
	}

	return methodData{
		Name:       name,
		Params:     strings.Join(paramDecls, ", "),
		Results:    results,
		Args:       strings.Join(callArgs, ", "),
		HasResults: len(resultTypes) > 0,
		Excluded:   isExcluded,
	}
}

// usedImports returns the source file's imports that the rendered method
// signatures actually reference, so the generated file never carries unused
// imports.
func usedImports(parsedFile *ast.File, methods []methodData) []ImportSpec {
	var rendered strings.Builder
	for _, method := range methods {
		rendered.WriteString(method.Params)
		rendered.WriteString(" ")
		rendered.WriteString(method.Results)
		rendered.WriteString(" ")
	}
	signatureText := rendered.String()

	var used []ImportSpec
	for _, importDecl := range parsedFile.Imports {
		importPath := strings.Trim(importDecl.Path.Value, `"`)

		ident := path.Base(importPath)
		if importDecl.Name != nil {
			ident = importDecl.Name.Name
		}
		if ident == "_" || ident == "." {
			continue
		}

		if strings.Contains(signatureText, ident+".") {
			spec := ImportSpec{Path: importPath}
			if importDecl.Name != nil {
				spec.Alias = importDecl.Name.Name
			}
			used = append(used, spec)
		}
	}
	return used
}

// exprString renders a type expression back to Go source.
func exprString(fileSet *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	must(printer.Fprint(&buf, fileSet, expr))
	return buf.String()
}

// genTemplate is the Go source template used to generate the wrapper code.
var genTemplate = template.Must(
	template.New("delaygen").Parse(`// Code generated by delaygen; DO NOT EDIT.

package {{.Package}}

import (
	"reflect"

	{{if .ProxyAlias}}proxy {{end}}"{{.ProxyImport}}"
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)

// {{.Wrapper}} forwards every {{.Iface}} method to a value produced on
// first use. Instances are built by the registered factory; the wrapped
// type's constructor is never invoked through the wrapper.
type {{.Wrapper}} struct {
	force func() (any, error)
}

var _ {{.Iface}} = (*{{.Wrapper}})(nil)

func init() {
	proxy.MustRegister(reflect.TypeFor[{{.Iface}}](), func(force func() (any, error)) any {
		return &{{.Wrapper}}{force: force}
	})
}

func (w *{{.Wrapper}}) value() {{.Iface}} {
	v, err := w.force()
	if err != nil {
		panic(err)
	}
	return v.({{.Iface}})
}
{{range .Methods}}
{{- if .Excluded}}
func (w *{{$.Wrapper}}) {{.Name}}({{.Params}}){{.Results}} {
	panic(proxy.ExcludedMethodError{Method: {{printf "%q" .Name}}})
}
{{- else}}
func (w *{{$.Wrapper}}) {{.Name}}({{.Params}}){{.Results}} {
	{{if .HasResults}}return {{end}}w.value().{{.Name}}({{.Args}})
}
{{- end}}
{{end}}`),
)

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes a file atomically.
//
// It writes to a temporary file in the same directory and then renames it
// over the target path, ensuring readers never observe partial writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	targetDir := filepath.Dir(targetPath)

	tmpFile, err := createTempFile(targetDir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	if err = renameFile(tmpPath, targetPath); err != nil {
		return err
	}
	return nil
}

// must panics if err is non-nil.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
