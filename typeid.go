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

package typeid

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/typeid/apis"
	"dirpx.dev/typeid/builder"
	"dirpx.dev/typeid/config"
	"dirpx.dev/typeid/suffix"
	uref "dirpx.dev/typeid/utils/reflect"
)

// init publishes the default snapshot.
func init() {
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil)
	s.res = b.BuildResolver(s.cfg, nil)
	s.bld = b
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("typeid: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("typeid: builder returned nil resolver")
)

// Name computes the schema name of class rendered as role.
// suffix is the parametrization suffix, or "" for non-generic classes.
func Name(role apis.ReferenceType, class apis.ClassDescriptor, attrs apis.AttributeSet, suffix string) string {
	s := st.Load()
	return s.res.Resolve(apis.Request{
		Role:       role,
		Class:      class,
		Attributes: attrs,
		Suffix:     suffix,
	}, s.cfg)
}

// NameOf computes the schema name of the Go type t rendered as role.
// The class, its attributes and its type arguments are read through
// reflection. Types without a name resolve to apis.AnonymousName.
func NameOf(role apis.ReferenceType, t reflect.Type) string {
	s := st.Load()
	req := apis.Request{Role: role}
	if class, err := uref.Describe(t); err == nil {
		req.Class = class
		req.Attributes, _ = uref.Attributes(t)
		if args, err := uref.Arguments(t); err == nil {
			req.Suffix, _ = suffix.FromArguments(args, s.cfg)
		}
	}
	return s.res.Resolve(req, s.cfg)
}

// Suffix encodes raw type arguments with the global configuration.
func Suffix(args []apis.TypeArgument) (string, bool) {
	return suffix.FromArguments(args, st.Load().cfg)
}

// ReferenceSuffix encodes the resolved parameters of ref with the global configuration.
func ReferenceSuffix(ref *apis.Reference) (string, bool) {
	return suffix.FromReference(ref, st.Load().cfg)
}

// Intern records name for id in the global registry.
func Intern(name string, id apis.Identity) error {
	return st.Load().reg.Intern(name, id)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds the layers that are
// not pinned.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.cfg = cfg
	rebuild(&next, old)
	st.Store(&next)
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry replaces and pins the global registry. Nil is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	swap(func(s *state) {
		s.reg = reg
		s.preg = true
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver replaces and pins the global resolver. Nil is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	swap(func(s *state) {
		s.res = res
		s.pres = true
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds the layers that are not
// pinned. Nil is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.bld = b
	rebuild(&next, old)
	st.Store(&next)
}

// SetAll replaces every component in one step and clears both pins unless
// reg or res are given. Nil arguments keep the builder, rebuild the registry
// and resolver, and keep the configuration.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := state{cfg: old.cfg, bld: old.bld}
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}
	next.reg, next.preg = reg, reg != nil
	next.res, next.pres = res, res != nil
	if next.reg == nil {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
	}
	if next.res == nil {
		next.res = next.bld.BuildResolver(next.cfg, old.res)
	}
	mustComplete(&next)
	st.Store(&next)
}

// IsRegistryPinned reports whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops rebuilds of the global registry.
func PinRegistry() {
	swap(func(s *state) { s.preg = true })
}

// UnpinRegistry lets the global registry be rebuilt again.
func UnpinRegistry() {
	swap(func(s *state) { s.preg = false })
}

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops rebuilds of the global resolver.
func PinResolver() {
	swap(func(s *state) { s.pres = true })
}

// UnpinResolver lets the global resolver be rebuilt again.
func UnpinResolver() {
	swap(func(s *state) { s.pres = false })
}

// swap publishes a copy of the current snapshot modified by fn.
func swap(fn func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	fn(&next)
	st.Store(&next)
}

// rebuild rebuilds the layers of next that are not pinned, migrating from old.
func rebuild(next, old *state) {
	if !next.preg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
	}
	if !next.pres {
		next.res = next.bld.BuildResolver(next.cfg, old.res)
	}
	mustComplete(next)
}

func mustComplete(s *state) {
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store; never
// mutate fields of a published state. Writers copy, modify and swap.
type state struct {
	cfg apis.Config
	reg apis.Registry
	res apis.Resolver
	bld apis.Builder
	// preg indicates whether the registry is pinned.
	preg bool
	// pres indicates whether the resolver is pinned.
	pres bool
}
