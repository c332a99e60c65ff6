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

// Package typeid computes the canonical names that host types carry in a
// generated graph-query schema.
//
// Schema languages of this kind are flat and name-addressed: there are no
// generics and no overloading. typeid maps a (class, role, instantiation)
// triple to a single name, deterministically, so that distinct
// instantiations of one generic class get distinct names and explicitly
// named classes keep their names across builds.
//
// # Resolution
//
// A name is resolved from a class descriptor, the schema role the class is
// rendered as, its declarative attributes and an optional parametrization
// suffix. The default resolver walks a priority table, first match wins:
//
//  1. structurally an enum: the "enum" attribute
//  2. structurally an interface: the "interface" attribute
//  3. role TYPE: the "type" attribute
//  4. role INPUT: the "input" attribute, the postfix "Input" on derived names
//  5. role SCALAR: the local name, attributes and suffix ignored
//  6. anything else: a warning and the local name
//
// Rows 1-4 share one override chain: the role attribute, then the "name"
// attribute, then localName + suffix (+ postfix). Explicit names are never
// decorated.
//
//	typeid.Name(apis.RoleInput, widget, apis.Attributes{}, "")       // "WidgetInput"
//	typeid.Name(apis.RoleType, box, apis.Attributes{}, "_Int")       // "Box_Int"
//	typeid.NameOf(apis.RoleType, reflect.TypeOf(Box[List[int]]{}))  // "Box_List_int"
//
// # Suffixes
//
// Package suffix encodes generic instantiations. Raw type arguments are
// encoded recursively (Box[List[int]] gives "_List_int"); resolved child
// references are encoded by name only, since those names already carry their
// own suffix.
//
// # Global snapshot
//
// The package-level configuration, registry, resolver and builder live in
// an immutable snapshot published through an atomic pointer. Reads are
// lock-free; writers (SetConfig, SetBuilder, SetRegistry, SetResolver,
// SetAll) take a build mutex, derive a new snapshot and swap it in. A
// registry or resolver installed directly is pinned and survives rebuilds
// until it is unpinned.
//
// # Concurrency model
//
// Resolution is a pure function of its inputs and holds no mutable state,
// so any number of schema-build goroutines may resolve concurrently. The
// registry is safe for concurrent interning and reports a collision when two
// distinct identities produce the same name.
package typeid
