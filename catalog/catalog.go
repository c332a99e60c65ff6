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

// Package catalog computes the schema names of every class and generic
// instantiation found in Go packages, and interns them to detect collisions.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"dirpx.dev/typeid/apis"
	"dirpx.dev/typeid/registry"
	"dirpx.dev/typeid/source"
)

// Entry is one computed schema name.
type Entry struct {
	Name          string   `yaml:"name" json:"name"`
	Class         string   `yaml:"class" json:"class"`
	Role          string   `yaml:"role" json:"role"`
	Instantiation string   `yaml:"instantiation,omitempty" json:"instantiation,omitempty"`
	Bindings      []string `yaml:"bindings,omitempty" json:"bindings,omitempty"`
	Position      string   `yaml:"position" json:"position"`
}

// Collision reports two host identities that produced the same name.
type Collision struct {
	Name     string `yaml:"name" json:"name"`
	Existing string `yaml:"existing" json:"existing"`
	Incoming string `yaml:"incoming" json:"incoming"`
	Position string `yaml:"position" json:"position"`
}

// Result is the outcome of a catalog build.
type Result struct {
	Packages   int         `yaml:"packages" json:"packages"`
	Entries    []Entry     `yaml:"entries" json:"entries"`
	Collisions []Collision `yaml:"collisions,omitempty" json:"collisions,omitempty"`
}

// CollisionObserver is notified once per collision.
type CollisionObserver interface {
	Collision()
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger. Nil means slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) { c.logger = l }
}

// WithWorkers bounds concurrent directory parsing. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(c *Catalog) { c.workers = n }
}

// WithCollisionObserver sets the collision observer.
func WithCollisionObserver(o CollisionObserver) Option {
	return func(c *Catalog) { c.collisions = o }
}

// WithSourceOptions sets the options passed to source.ParseDir.
func WithSourceOptions(opts source.Options) Option {
	return func(c *Catalog) { c.srcOpts = opts }
}

// Catalog runs a resolver over parsed packages and interns the results.
type Catalog struct {
	cfg        apis.Config
	res        apis.Resolver
	reg        apis.Registry
	logger     *slog.Logger
	workers    int
	collisions CollisionObserver
	srcOpts    source.Options
}

// New creates a Catalog. A nil reg gets a fresh registry.
func New(cfg apis.Config, res apis.Resolver, reg apis.Registry, opts ...Option) *Catalog {
	c := &Catalog{cfg: cfg, res: res, reg: reg, workers: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.reg == nil {
		c.reg = registry.New()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.workers < 1 {
		c.workers = 1
	}
	return c
}

// Registry returns the registry names are interned into.
func (c *Catalog) Registry() apis.Registry {
	return c.reg
}

// Build parses dirs concurrently and then names their content in dirs order,
// so that collision reports are deterministic.
func (c *Catalog) Build(ctx context.Context, dirs []string) (*Result, error) {
	pkgs := make([]*source.Package, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pkg, err := source.ParseDir(dir, c.srcOpts)
			if errors.Is(err, source.ErrNoPackage) {
				c.logger.Debug("Skipping directory without Go files", slog.String("dir", dir))
				return nil
			}
			if err != nil {
				return err
			}
			pkgs[i] = pkg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, pkg := range pkgs {
		if pkg == nil {
			continue
		}
		res.Packages++
		entries, collisions := c.Add(pkg)
		res.Entries = append(res.Entries, entries...)
		res.Collisions = append(res.Collisions, collisions...)
	}
	sort.SliceStable(res.Entries, func(i, j int) bool {
		return res.Entries[i].Name < res.Entries[j].Name
	})
	return res, nil
}

// Add names every class and instantiation of pkg.
func (c *Catalog) Add(pkg *source.Package) ([]Entry, []Collision) {
	var (
		entries    []Entry
		collisions []Collision
	)
	record := func(e Entry, id apis.Identity) {
		entries = append(entries, e)
		if col, ok := c.intern(e, id); ok {
			collisions = append(collisions, col)
		}
	}

	for _, cls := range pkg.Classes {
		if cls.Generic() {
			continue
		}
		for _, role := range classRoles(cls) {
			name := c.res.Resolve(apis.Request{
				Role:       role,
				Class:      cls.Descriptor,
				Attributes: cls.Attributes,
			}, c.cfg)
			record(Entry{
				Name:     name,
				Class:    cls.Descriptor.QualifiedName,
				Role:     role.String(),
				Position: cls.Position,
			}, apis.Identity{ClassName: cls.Descriptor.QualifiedName, Role: role})
		}
	}

	for _, in := range pkg.Instantiations {
		host, ok := pkg.Class(in.Class)
		if !ok {
			continue
		}
		for _, role := range classRoles(host) {
			ref := c.Reference(pkg, host, role, in.Arguments)
			e := Entry{
				Name:          ref.Name,
				Class:         host.Descriptor.QualifiedName,
				Role:          role.String(),
				Instantiation: apis.Instantiation(in.Arguments),
				Position:      in.Position,
			}
			for _, b := range ref.Parameters {
				e.Bindings = append(e.Bindings, b.Parameter+"="+b.Reference.Name)
			}
			record(e, apis.Identity{
				ClassName:     host.Descriptor.QualifiedName,
				Role:          role,
				Instantiation: e.Instantiation,
			})
		}
	}

	c.logger.Debug("Named package",
		slog.String("package", pkg.ImportPath),
		slog.Int("entries", len(entries)),
		slog.Int("collisions", len(collisions)))
	return entries, collisions
}

func (c *Catalog) intern(e Entry, id apis.Identity) (Collision, bool) {
	err := c.reg.Intern(e.Name, id)
	if err == nil {
		return Collision{}, false
	}
	col := Collision{Name: e.Name, Incoming: id.String(), Position: e.Position}
	var ce *registry.CollisionError
	if errors.As(err, &ce) {
		col.Existing = ce.Existing.String()
	}
	c.logger.Warn("Schema name collision",
		slog.String("name", e.Name),
		slog.String("existing", col.Existing),
		slog.String("incoming", col.Incoming),
		slog.String("position", e.Position))
	if c.collisions != nil {
		c.collisions.Collision()
	}
	return col, true
}

// classRoles returns the roles a class is rendered as.
func classRoles(cls source.Class) []apis.ReferenceType {
	switch {
	case cls.Descriptor.Kind == apis.KindEnum:
		return []apis.ReferenceType{apis.RoleEnum}
	case cls.Descriptor.Kind == apis.KindInterface:
		return []apis.ReferenceType{apis.RoleInterface}
	case cls.Scalar:
		return []apis.ReferenceType{apis.RoleScalar}
	default:
		return []apis.ReferenceType{apis.RoleType, apis.RoleInput}
	}
}
