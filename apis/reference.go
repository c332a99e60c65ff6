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

package apis

// Binding binds one type parameter of a generic class to a resolved child reference.
type Binding struct {
	// Parameter is the type parameter name, e.g. "T". It may be empty when
	// only the position is known.
	Parameter string
	// Reference is the resolved argument.
	Reference *Reference
}

// Reference is the resolved schema identity of one (class, role,
// instantiation) combination. Two references denote the same schema type
// iff their names are equal.
type Reference struct {
	// Name is the computed schema name.
	Name string
	// ClassName is the qualified name of the host class.
	ClassName string
	// Role is the schema role the reference is rendered as.
	Role ReferenceType
	// Parameters holds the bound type parameters in declaration order.
	Parameters []Binding
}

// SameSchemaType reports whether r and o name the same schema type.
func (r *Reference) SameSchemaType(o *Reference) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.Name == o.Name
}

// Request carries the inputs of one name resolution.
type Request struct {
	Role       ReferenceType
	Class      ClassDescriptor
	Attributes AttributeSet
	// Suffix is the parametrization suffix. Empty means the class is not
	// parameterized.
	Suffix string
}

// Identity is the host-side key a schema name is computed from.
// Distinct identities must never share a schema name.
type Identity struct {
	// ClassName is the qualified name of the host class.
	ClassName string
	// Role is the requested schema role.
	Role ReferenceType
	// Instantiation is the canonical rendering of the type arguments, or "".
	Instantiation string
}

// String renders the identity for diagnostics, e.g. "pkg.Box[int] (TYPE)".
func (id Identity) String() string {
	return id.ClassName + id.Instantiation + " (" + id.Role.String() + ")"
}
