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

package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typeid/apis"
	"dirpx.dev/typeid/source"
)

const shopModel = `package shop

import (
	"time"

	money "example.com/money"
)

// Widget is a product.
type Widget struct {
	ID     string
	Tags   Box[[]string]
	Price  Box[money.Amount]
	Owner  *Pair[Widget, time.Time]
	Counts map[string]Box[int]
}

// Gizmo has explicit names.
//
//typeid:type Gadget
//typeid:input NewGadget
type Gizmo struct{}

// Box wraps a value.
type Box[T any] struct{ Value T }

type Pair[K any, V any] struct {
	Key   K
	Value V
	Inner Box[K]
}

type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
)

//typeid:enum LogLevel
type Level struct{}

//typeid:interface Figure
type Shape interface{ Area() float64 }

//typeid:scalar
type Money struct{}

type Email string

//typeid:ignore
type Hidden struct{}

type internal struct{}
`

func writeModule(t *testing.T, module string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if module != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module "+module+"\n\ngo 1.25\n"), 0o644))
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestParseDir_Classes(t *testing.T) {
	dir := writeModule(t, "example.com/shop", map[string]string{
		"model.go":      shopModel,
		"model_test.go": "package shop\n\nthis is not Go\n",
	})

	pkg, err := source.ParseDir(dir, source.Options{})
	require.NoError(t, err)
	assert.Equal(t, "shop", pkg.Name)
	assert.Equal(t, "example.com/shop", pkg.ImportPath)

	names := make([]string, 0, len(pkg.Classes))
	for _, c := range pkg.Classes {
		names = append(names, c.Descriptor.LocalName)
	}
	assert.ElementsMatch(t, []string{"Widget", "Gizmo", "Box", "Pair", "Currency", "Level", "Shape", "Money", "Email"}, names)

	tests := []struct {
		name   string
		kind   apis.Kind
		scalar bool
		attrs  apis.Attributes
		params []string
	}{
		{"Widget", apis.KindClass, false, apis.Attributes{}, nil},
		{"Gizmo", apis.KindClass, false, apis.Attributes{apis.AttrType: "Gadget", apis.AttrInput: "NewGadget"}, nil},
		{"Box", apis.KindClass, false, apis.Attributes{}, []string{"T"}},
		{"Pair", apis.KindClass, false, apis.Attributes{}, []string{"K", "V"}},
		{"Currency", apis.KindEnum, false, apis.Attributes{}, nil},
		{"Level", apis.KindEnum, false, apis.Attributes{apis.AttrEnum: "LogLevel"}, nil},
		{"Shape", apis.KindInterface, false, apis.Attributes{apis.AttrInterface: "Figure"}, nil},
		{"Money", apis.KindClass, true, apis.Attributes{}, nil},
		{"Email", apis.KindClass, true, apis.Attributes{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := pkg.Class("example.com/shop." + tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.kind, c.Descriptor.Kind)
			assert.Equal(t, tt.scalar, c.Scalar)
			assert.Equal(t, tt.attrs, c.Attributes)
			assert.Equal(t, tt.params, c.TypeParams)
			assert.Regexp(t, `^model\.go:\d+$`, c.Position)
		})
	}
}

func TestParseDir_Instantiations(t *testing.T) {
	dir := writeModule(t, "example.com/shop", map[string]string{"model.go": shopModel})

	pkg, err := source.ParseDir(dir, source.Options{})
	require.NoError(t, err)

	keys := make([]string, 0, len(pkg.Instantiations))
	for _, in := range pkg.Instantiations {
		keys = append(keys, in.Key())
	}
	assert.Equal(t, []string{
		"example.com/shop.Box[[][string]]",
		"example.com/shop.Box[example.com/money.Amount]",
		"example.com/shop.Box[int]",
		"example.com/shop.Pair[example.com/shop.Widget,time.Time]",
	}, keys, "sorted, deduplicated, type parameters skipped")

	list := pkg.Instantiations[0].Arguments[0]
	assert.Equal(t, "List", list.LocalName)
	assert.Equal(t, "string", list.Arguments[0].LocalName)

	amount := pkg.Instantiations[1].Arguments[0]
	assert.Equal(t, "Amount", amount.LocalName)
}

func TestParseDir_NestedInstantiations(t *testing.T) {
	dir := writeModule(t, "example.com/nest", map[string]string{"nest.go": `package nest

type Box[T any] struct{ V T }
type List[T any] struct{ Items []T }

type Holder struct {
	A Box[List[int]]
	B Box[List[string]]
	C Box[map[string]any]
}
`})

	pkg, err := source.ParseDir(dir, source.Options{})
	require.NoError(t, err)

	keys := make([]string, 0, len(pkg.Instantiations))
	for _, in := range pkg.Instantiations {
		keys = append(keys, in.Key())
	}
	assert.ElementsMatch(t, []string{
		"example.com/nest.Box[example.com/nest.List[int]]",
		"example.com/nest.Box[example.com/nest.List[string]]",
		"example.com/nest.Box[map[string,any]]",
		"example.com/nest.List[int]",
		"example.com/nest.List[string]",
	}, keys)
}

func TestParseDir_CustomDirective(t *testing.T) {
	dir := writeModule(t, "", map[string]string{"a.go": `package a

//gql:name Thing
//typeid:name Ignored
type T struct{}
`})

	pkg, err := source.ParseDir(dir, source.Options{Directive: "gql", ImportPath: "example.com/a"})
	require.NoError(t, err)
	c, ok := pkg.Class("example.com/a.T")
	require.True(t, ok)
	assert.Equal(t, apis.Attributes{apis.AttrName: "Thing"}, c.Attributes)
}

func TestParseDir_GroupedDeclarations(t *testing.T) {
	dir := writeModule(t, "example.com/a", map[string]string{"a.go": `package a

// Grouped types.
//
//typeid:ignore
//typeid:name Shared
type (
	// Left is kept.
	Left struct{}

	//typeid:type Rightmost
	Right struct{}
)

//typeid:name Solo
type (
	Lone struct{}
)
`})

	pkg, err := source.ParseDir(dir, source.Options{})
	require.NoError(t, err)

	left, ok := pkg.Class("example.com/a.Left")
	require.True(t, ok, "group ignore must not hide its specs")
	assert.Equal(t, apis.Attributes{}, left.Attributes)

	right, ok := pkg.Class("example.com/a.Right")
	require.True(t, ok)
	assert.Equal(t, apis.Attributes{apis.AttrType: "Rightmost"}, right.Attributes)

	lone, ok := pkg.Class("example.com/a.Lone")
	require.True(t, ok)
	assert.Equal(t, apis.Attributes{apis.AttrName: "Solo"}, lone.Attributes)
}

func TestParseDir_DirectiveVerbs(t *testing.T) {
	dir := writeModule(t, "example.com/a", map[string]string{"a.go": `package a

//typeid:TYPE Upper
//typeid:Input
//typeid:color Red
type Widget struct{}
`})

	pkg, err := source.ParseDir(dir, source.Options{})
	require.NoError(t, err)

	w, ok := pkg.Class("example.com/a.Widget")
	require.True(t, ok)
	assert.Equal(t, apis.Attributes{apis.AttrType: "Upper", apis.AttrInput: ""}, w.Attributes)
}

func TestParseDir_Errors(t *testing.T) {
	empty := writeModule(t, "example.com/empty", map[string]string{"README.md": "# nothing"})
	_, err := source.ParseDir(empty, source.Options{})
	assert.ErrorIs(t, err, source.ErrNoPackage)

	broken := writeModule(t, "example.com/broken", map[string]string{"b.go": "package b\n\ntype {\n"})
	_, err = source.ParseDir(broken, source.Options{})
	assert.ErrorContains(t, err, "parsing")

	_, err = source.ParseDir(filepath.Join(t.TempDir(), "missing"), source.Options{})
	assert.Error(t, err)
}

func TestImportPath(t *testing.T) {
	dir := writeModule(t, "example.com/shop", map[string]string{"sub/deep/x.go": "package deep\n"})

	assert.Equal(t, "example.com/shop", source.ImportPath(dir))
	assert.Equal(t, "example.com/shop/sub/deep", source.ImportPath(filepath.Join(dir, "sub", "deep")))

	bare := t.TempDir()
	assert.Equal(t, filepath.Base(bare), source.ImportPath(bare))
}
