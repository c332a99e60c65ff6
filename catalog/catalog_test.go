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

package catalog_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/typeid/apis"
	"dirpx.dev/typeid/builder"
	"dirpx.dev/typeid/catalog"
	"dirpx.dev/typeid/config"
	"dirpx.dev/typeid/registry"
	"dirpx.dev/typeid/source"
)

const shopModel = `package shop

import (
	"time"

	money "example.com/money"
)

type Widget struct {
	Tags  Box[[]string]
	Price Box[money.Amount]
	Count Box[int]
	Owner *Pair[Widget, time.Time]
}

//typeid:type Gadget
//typeid:input NewGadget
type Gizmo struct{}

type Box[T any] struct{ Value T }

type Pair[K any, V any] struct {
	Key   K
	Value V
}

type Currency string

const USD Currency = "USD"

//typeid:enum LogLevel
type Level struct{}

//typeid:interface Figure
type Shape interface{ Area() float64 }

//typeid:scalar
type Money struct{}
`

const nestModel = `package nest

type Box[T any] struct{ V T }
type List[T any] struct{ Items []T }

type Holder struct {
	A Box[List[int]]
	B Box[List[string]]
}
`

const clashModel = `package clash

type Widget struct{}

//typeid:type Widget
type Gadget struct{}
`

// counter counts collisions.
type counter struct{ n int }

func (c *counter) Collision() { c.n++ }

func writePackage(t *testing.T, root, module, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module "+module+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".go"), []byte(content), 0o644))
	return dir
}

func newCatalog(opts ...catalog.Option) *catalog.Catalog {
	cfg := config.DefaultConfig()
	b := builder.New()
	return catalog.New(cfg, b.BuildResolver(cfg, nil), nil, opts...)
}

func names(entries []catalog.Entry) map[string]catalog.Entry {
	out := make(map[string]catalog.Entry, len(entries))
	for _, e := range entries {
		out[e.Role+" "+e.Name] = e
	}
	return out
}

func TestBuild_Shop(t *testing.T) {
	root := t.TempDir()
	dir := writePackage(t, root, "example.com/shop", "shop", shopModel)

	res, err := newCatalog().Build(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Packages)
	assert.Empty(t, res.Collisions)

	got := names(res.Entries)
	for _, key := range []string{
		"TYPE Widget", "INPUT WidgetInput",
		"TYPE Gadget", "INPUT NewGadget",
		"ENUM Currency", "ENUM LogLevel",
		"INTERFACE Figure",
		"SCALAR Money",
		"TYPE Box_List_string", "INPUT Box_List_stringInput",
		"TYPE Box_Amount", "INPUT Box_AmountInput",
		"TYPE Box_int", "INPUT Box_intInput",
		"TYPE Pair_Widget_Time", "INPUT Pair_WidgetInput_TimeInput",
	} {
		assert.Contains(t, got, key)
	}
	assert.Len(t, res.Entries, 16, "generic hosts are only named per instantiation")

	box := got["TYPE Box_List_string"]
	assert.Equal(t, "example.com/shop.Box", box.Class)
	assert.Equal(t, "[[][string]]", box.Instantiation)
	assert.Equal(t, []string{"T=List_string"}, box.Bindings)
	assert.Regexp(t, `^shop\.go:\d+$`, box.Position)

	pair := got["INPUT Pair_WidgetInput_TimeInput"]
	assert.Equal(t, []string{"K=WidgetInput", "V=Time"}, pair.Bindings)

	for i := 1; i < len(res.Entries); i++ {
		assert.LessOrEqual(t, res.Entries[i-1].Name, res.Entries[i].Name)
	}
}

func TestBuild_NestedGenericsDisambiguate(t *testing.T) {
	root := t.TempDir()
	dir := writePackage(t, root, "example.com/nest", "nest", nestModel)

	res, err := newCatalog().Build(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Empty(t, res.Collisions)

	got := names(res.Entries)
	assert.Contains(t, got, "TYPE Box_List_int")
	assert.Contains(t, got, "TYPE Box_List_string")
	assert.Contains(t, got, "TYPE List_int")
	assert.Contains(t, got, "TYPE List_string")
	assert.Contains(t, got, "TYPE Holder")
}

func TestBuild_Collisions(t *testing.T) {
	root := t.TempDir()
	dir := writePackage(t, root, "example.com/clash", "clash", clashModel)

	var buf bytes.Buffer
	c := &counter{}
	cat := newCatalog(
		catalog.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		catalog.WithCollisionObserver(c),
	)

	res, err := cat.Build(context.Background(), []string{dir})
	require.NoError(t, err)
	require.Len(t, res.Collisions, 1)
	assert.Equal(t, catalog.Collision{
		Name:     "Widget",
		Existing: "example.com/clash.Widget (TYPE)",
		Incoming: "example.com/clash.Gadget (TYPE)",
		Position: res.Collisions[0].Position,
	}, res.Collisions[0])
	assert.Equal(t, 1, c.n)
	assert.Contains(t, buf.String(), "Schema name collision")

	id, ok := cat.Registry().Lookup("Widget")
	require.True(t, ok)
	assert.Equal(t, "example.com/clash.Widget", id.ClassName)
}

func TestBuild_Deterministic(t *testing.T) {
	root := t.TempDir()
	dirs := []string{
		writePackage(t, root, "example.com/shop", "shop", shopModel),
		writePackage(t, root, "example.com/nest", "nest", nestModel),
		writePackage(t, root, "example.com/clash", "clash", clashModel),
	}

	first, err := newCatalog(catalog.WithWorkers(1)).Build(context.Background(), dirs)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := newCatalog(catalog.WithWorkers(8)).Build(context.Background(), dirs)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, 3, first.Packages)
}

func TestBuild_SkipsEmptyAndFailsOnBroken(t *testing.T) {
	root := t.TempDir()
	empty := filepath.Join(root, "empty")
	require.NoError(t, os.MkdirAll(empty, 0o755))
	shop := writePackage(t, root, "example.com/shop", "shop", shopModel)

	res, err := newCatalog().Build(context.Background(), []string{empty, shop})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Packages)

	broken := writePackage(t, root, "example.com/broken", "broken", "package broken\n\ntype {\n")
	_, err = newCatalog().Build(context.Background(), []string{shop, broken})
	assert.Error(t, err)
}

func TestBuild_Canceled(t *testing.T) {
	root := t.TempDir()
	dir := writePackage(t, root, "example.com/shop", "shop", shopModel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newCatalog().Build(ctx, []string{dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReference_UsesChildNames(t *testing.T) {
	cfg := config.DefaultConfig()
	res := builder.New().BuildResolver(cfg, nil)
	cat := catalog.New(cfg, res, registry.New())

	pkg := &source.Package{
		ImportPath: "example.com/m",
		Classes: []source.Class{
			{Descriptor: apis.ClassDescriptor{QualifiedName: "example.com/m.Box", LocalName: "Box"}, TypeParams: []string{"T"}},
			{
				Descriptor: apis.ClassDescriptor{QualifiedName: "example.com/m.Item", LocalName: "Item"},
				Attributes: apis.Attributes{apis.AttrType: "Product"},
			},
			{Descriptor: apis.ClassDescriptor{QualifiedName: "example.com/m.Color", LocalName: "Color", Kind: apis.KindEnum}},
		},
	}
	box, _ := pkg.Class("example.com/m.Box")

	ref := cat.Reference(pkg, box, apis.RoleType, []apis.TypeArgument{{QualifiedName: "example.com/m.Item", LocalName: "Item"}})
	assert.Equal(t, "Box_Product", ref.Name, "the child's explicit name feeds the suffix")
	require.Len(t, ref.Parameters, 1)
	assert.Equal(t, "T", ref.Parameters[0].Parameter)
	assert.Equal(t, apis.RoleType, ref.Parameters[0].Reference.Role)

	ref = cat.Reference(pkg, box, apis.RoleInput, []apis.TypeArgument{{QualifiedName: "example.com/m.Color", LocalName: "Color"}})
	assert.Equal(t, "Box_ColorInput", ref.Name, "enum arguments keep the enum role")
	assert.Equal(t, apis.RoleEnum, ref.Parameters[0].Reference.Role)

	other := &apis.Reference{Name: "Box_ColorInput"}
	assert.True(t, ref.SameSchemaType(other))
}
