/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package source

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"dirpx.dev/typeid/apis"
)

// ErrNoPackage is returned when a directory holds no non-test Go files.
var ErrNoPackage = errors.New("source: no Go package found")

// Options configures ParseDir.
type Options struct {
	// Directive is the comment prefix for naming directives (default: typeid).
	Directive string
	// ImportPath overrides the package import path. Empty means it is derived
	// from the enclosing go.mod, or the directory name when there is none.
	ImportPath string
}

// ParseDir parses the non-test Go files in dir.
func ParseDir(dir string, opts Options) (*Package, error) {
	if opts.Directive == "" {
		opts.Directive = "typeid"
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	fset := token.NewFileSet()
	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Join(dir, name), err)
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPackage, dir)
	}
	sort.Slice(files, func(i, j int) bool {
		return fset.Position(files[i].Package).Filename < fset.Position(files[j].Package).Filename
	})

	importPath := opts.ImportPath
	if importPath == "" {
		importPath = ImportPath(dir)
	}

	p := &pkgParser{
		fset:      fset,
		directive: opts.Directive,
		pkg: &Package{
			Dir:        dir,
			Name:       files[0].Name.Name,
			ImportPath: importPath,
		},
		decls:    map[string]*ast.TypeSpec{},
		consts:   map[string]bool{},
		generics: map[string]bool{},
		seen:     map[string]bool{},
	}
	p.collect(files)
	p.classes(files)
	p.instantiations(files)
	sort.Slice(p.pkg.Instantiations, func(i, j int) bool {
		return p.pkg.Instantiations[i].Key() < p.pkg.Instantiations[j].Key()
	})
	return p.pkg, nil
}

// pkgParser holds per-package state across the parsing passes.
type pkgParser struct {
	fset      *token.FileSet
	directive string
	pkg       *Package
	// decls maps local type names to their declarations.
	decls map[string]*ast.TypeSpec
	// consts marks local types that have typed constants.
	consts map[string]bool
	// generics marks generic local types that are kept as classes.
	generics map[string]bool
	// seen deduplicates instantiations by key.
	seen map[string]bool
}

// collect records type declarations and typed constants.
func (p *pkgParser) collect(files []*ast.File) {
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			switch gd.Tok {
			case token.TYPE:
				for _, spec := range gd.Specs {
					if ts, ok := spec.(*ast.TypeSpec); ok && !ts.Assign.IsValid() {
						p.decls[ts.Name.Name] = ts
					}
				}
			case token.CONST:
				for _, spec := range gd.Specs {
					vs, ok := spec.(*ast.ValueSpec)
					if !ok {
						continue
					}
					if id, ok := vs.Type.(*ast.Ident); ok {
						p.consts[id.Name] = true
					}
				}
			}
		}
	}
}

// classes turns exported type declarations into classes.
func (p *pkgParser) classes(files []*ast.File) {
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Assign.IsValid() || !ts.Name.IsExported() {
					continue
				}
				// A lone spec carries its doc on the GenDecl. A type ( ... ) block's
				// doc is not inherited by its specs.
				groups := []*ast.CommentGroup{ts.Doc}
				if len(gd.Specs) == 1 {
					groups = []*ast.CommentGroup{gd.Doc, ts.Doc}
				}
				d := parseDirectives(p.directive, groups...)
				if d.ignore {
					continue
				}
				c := p.class(ts, d)
				if c.Generic() {
					p.generics[ts.Name.Name] = true
				}
				p.pkg.Classes = append(p.pkg.Classes, c)
			}
		}
	}
}

func (p *pkgParser) class(ts *ast.TypeSpec, d directives) Class {
	name := ts.Name.Name
	c := Class{
		Descriptor: apis.ClassDescriptor{
			QualifiedName: p.qualify(name),
			LocalName:     name,
			Kind:          apis.KindClass,
		},
		Attributes: d.attrs,
		Scalar:     d.scalar,
		Position:   p.position(ts.Pos()),
	}
	if ts.TypeParams != nil {
		for _, field := range ts.TypeParams.List {
			for _, n := range field.Names {
				c.TypeParams = append(c.TypeParams, n.Name)
			}
		}
	}

	switch ts.Type.(type) {
	case *ast.InterfaceType:
		c.Descriptor.Kind = apis.KindInterface
	case *ast.StructType:
		if d.enum {
			c.Descriptor.Kind = apis.KindEnum
		}
	default:
		if d.enum || p.consts[name] {
			c.Descriptor.Kind = apis.KindEnum
		} else {
			c.Scalar = true
		}
	}
	if c.Descriptor.Kind == apis.KindEnum {
		c.Scalar = false
	}
	return c
}

// instantiations walks struct field types for uses of local generic classes.
func (p *pkgParser) instantiations(files []*ast.File) {
	for _, f := range files {
		imports := importMap(f)
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok || st.Fields == nil {
					continue
				}
				params := typeParamSet(ts)
				for _, field := range st.Fields.List {
					p.walk(field.Type, imports, params)
				}
			}
		}
	}
}

// walk records every concrete instantiation of a local generic class in expr.
func (p *pkgParser) walk(expr ast.Expr, imports map[string]string, params map[string]bool) {
	switch e := expr.(type) {
	case *ast.StarExpr:
		p.walk(e.X, imports, params)
	case *ast.ArrayType:
		p.walk(e.Elt, imports, params)
	case *ast.MapType:
		p.walk(e.Key, imports, params)
		p.walk(e.Value, imports, params)
	case *ast.ChanType:
		p.walk(e.Value, imports, params)
	case *ast.IndexExpr, *ast.IndexListExpr:
		host, argExprs := indexParts(e)
		for _, a := range argExprs {
			p.walk(a, imports, params)
		}
		id, ok := host.(*ast.Ident)
		if !ok || !p.generics[id.Name] {
			return
		}
		args := make([]apis.TypeArgument, 0, len(argExprs))
		for _, a := range argExprs {
			ta, ok := p.argument(a, imports, params)
			if !ok {
				return
			}
			args = append(args, ta)
		}
		in := Instantiation{Class: p.qualify(id.Name), Arguments: args, Position: p.position(e.Pos())}
		if k := in.Key(); !p.seen[k] {
			p.seen[k] = true
			p.pkg.Instantiations = append(p.pkg.Instantiations, in)
		}
	}
}

// argument converts a type expression into a TypeArgument. It fails when the
// expression mentions a type parameter of the enclosing declaration.
func (p *pkgParser) argument(expr ast.Expr, imports map[string]string, params map[string]bool) (apis.TypeArgument, bool) {
	switch e := expr.(type) {
	case *ast.Ident:
		if params[e.Name] {
			return apis.TypeArgument{}, false
		}
		if e.Name == "any" {
			return apis.TypeArgument{QualifiedName: "any", LocalName: "Any"}, true
		}
		if _, local := p.decls[e.Name]; local {
			return apis.TypeArgument{QualifiedName: p.qualify(e.Name), LocalName: e.Name}, true
		}
		return apis.TypeArgument{QualifiedName: e.Name, LocalName: e.Name}, true
	case *ast.SelectorExpr:
		pkgID, ok := e.X.(*ast.Ident)
		if !ok {
			return apis.TypeArgument{}, false
		}
		path := imports[pkgID.Name]
		if path == "" {
			path = pkgID.Name
		}
		return apis.TypeArgument{QualifiedName: path + "." + e.Sel.Name, LocalName: e.Sel.Name}, true
	case *ast.StarExpr:
		return p.argument(e.X, imports, params)
	case *ast.ChanType:
		return p.argument(e.Value, imports, params)
	case *ast.ArrayType:
		elem, ok := p.argument(e.Elt, imports, params)
		if !ok {
			return apis.TypeArgument{}, false
		}
		return apis.TypeArgument{QualifiedName: "[]", LocalName: "List", Arguments: []apis.TypeArgument{elem}}, true
	case *ast.MapType:
		k, ok := p.argument(e.Key, imports, params)
		if !ok {
			return apis.TypeArgument{}, false
		}
		v, ok := p.argument(e.Value, imports, params)
		if !ok {
			return apis.TypeArgument{}, false
		}
		return apis.TypeArgument{QualifiedName: "map", LocalName: "Map", Arguments: []apis.TypeArgument{k, v}}, true
	case *ast.IndexExpr, *ast.IndexListExpr:
		host, argExprs := indexParts(e)
		base, ok := p.argument(host, imports, params)
		if !ok {
			return apis.TypeArgument{}, false
		}
		for _, a := range argExprs {
			ta, ok := p.argument(a, imports, params)
			if !ok {
				return apis.TypeArgument{}, false
			}
			base.Arguments = append(base.Arguments, ta)
		}
		return base, true
	case *ast.InterfaceType:
		if e.Methods == nil || len(e.Methods.List) == 0 {
			return apis.TypeArgument{QualifiedName: "any", LocalName: "Any"}, true
		}
	}
	return apis.TypeArgument{QualifiedName: "anonymous", LocalName: apis.AnonymousName}, true
}

func (p *pkgParser) qualify(name string) string {
	if p.pkg.ImportPath == "" {
		return name
	}
	return p.pkg.ImportPath + "." + name
}

func (p *pkgParser) position(pos token.Pos) string {
	ps := p.fset.Position(pos)
	return filepath.Base(ps.Filename) + ":" + strconv.Itoa(ps.Line)
}

func indexParts(expr ast.Expr) (ast.Expr, []ast.Expr) {
	switch e := expr.(type) {
	case *ast.IndexExpr:
		return e.X, []ast.Expr{e.Index}
	case *ast.IndexListExpr:
		return e.X, e.Indices
	}
	return nil, nil
}

func typeParamSet(ts *ast.TypeSpec) map[string]bool {
	set := map[string]bool{}
	if ts.TypeParams == nil {
		return set
	}
	for _, field := range ts.TypeParams.List {
		for _, n := range field.Names {
			set[n.Name] = true
		}
	}
	return set
}

// importMap maps the local package name of every import to its path.
// Unnamed imports use the last path element.
func importMap(f *ast.File) map[string]string {
	m := map[string]string{}
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := filepath.Base(path)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		m[name] = path
	}
	return m
}
