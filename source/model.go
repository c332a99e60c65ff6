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

// Package source extracts class descriptors, naming attributes and generic
// instantiations from Go source files. It uses go/ast and go/parser to walk
// type declarations, reading naming directives from their doc comments:
//
//	//typeid:type Gadget
//	//typeid:input NewGadget
//	//typeid:name Gizmo
//	//typeid:interface Node
//	//typeid:enum [CurrencyCode]
//	//typeid:scalar
//	//typeid:ignore
//
// The directive prefix is configurable.
package source

import (
	"dirpx.dev/typeid/apis"
)

// Class is one named type declared in a package.
type Class struct {
	Descriptor apis.ClassDescriptor
	Attributes apis.Attributes
	// TypeParams lists the type parameter names of a generic declaration.
	TypeParams []string
	// Scalar marks a class rendered as a scalar: a //typeid:scalar directive,
	// or a non-struct named type that is not an enum.
	Scalar bool
	// Position is "file:line" of the declaration.
	Position string
}

// Generic reports whether the class declares type parameters.
func (c Class) Generic() bool {
	return len(c.TypeParams) > 0
}

// Instantiation is a concrete use of a generic class of the same package,
// found in a field type, e.g. Box[int].
type Instantiation struct {
	// Class is the qualified name of the generic host class.
	Class string
	// Arguments are the concrete type arguments, in declaration order.
	Arguments []apis.TypeArgument
	// Position is "file:line" of the first use.
	Position string
}

// Key renders the instantiation canonically, e.g. "pkg.Box[int]".
func (in Instantiation) Key() string {
	return in.Class + apis.Instantiation(in.Arguments)
}

// Package is the parsed content of one directory.
type Package struct {
	Dir        string
	Name       string
	ImportPath string
	Classes    []Class
	// Instantiations are deduplicated and sorted by Key.
	Instantiations []Instantiation
}

// Class returns the class with the given qualified name.
func (p *Package) Class(qualified string) (Class, bool) {
	for _, c := range p.Classes {
		if c.Descriptor.QualifiedName == qualified {
			return c, true
		}
	}
	return Class{}, false
}
