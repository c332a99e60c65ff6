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

import "strings"

// AnonymousName is the local name used for a class that carries neither a
// local nor a qualified name.
const AnonymousName = "Anonymous"

// ClassDescriptor is the reflected metadata of one host class.
// It is supplied by a reflection collaborator and treated as read-only.
type ClassDescriptor struct {
	// QualifiedName is the package-qualified name, e.g. "example.com/shop.Widget".
	QualifiedName string
	// LocalName is the unqualified name without type parameters, e.g. "Widget".
	LocalName string
	// Kind is the structural kind.
	Kind Kind
}

// Local returns the local name. A blank LocalName is derived from the last
// segment of QualifiedName, and AnonymousName is returned when both are blank.
func (c ClassDescriptor) Local() string {
	if s := strings.TrimSpace(c.LocalName); s != "" {
		return s
	}
	q := strings.TrimSpace(c.QualifiedName)
	if i := strings.LastIndexByte(q, '/'); i >= 0 {
		q = q[i+1:]
	}
	if i := strings.LastIndexByte(q, '.'); i >= 0 {
		q = q[i+1:]
	}
	if q == "" {
		return AnonymousName
	}
	return q
}

// TypeArgument is one generic type argument prior to resolution.
// Nested instantiations are carried in Arguments, in declaration order.
type TypeArgument struct {
	QualifiedName string
	LocalName     string
	Arguments     []TypeArgument
}

// Parameterized reports whether the argument is itself an instantiated generic.
func (a TypeArgument) Parameterized() bool {
	return len(a.Arguments) > 0
}

// String renders the argument with qualified names, e.g. "pkg.List[int]".
// Two structurally identical arguments render identically.
func (a TypeArgument) String() string {
	var sb strings.Builder
	a.write(&sb)
	return sb.String()
}

func (a TypeArgument) write(sb *strings.Builder) {
	name := a.QualifiedName
	if name == "" {
		name = a.LocalName
	}
	sb.WriteString(name)
	if !a.Parameterized() {
		return
	}
	sb.WriteByte('[')
	for i, arg := range a.Arguments {
		if i > 0 {
			sb.WriteByte(',')
		}
		arg.write(sb)
	}
	sb.WriteByte(']')
}

// Instantiation renders an argument list the way TypeArgument.String does,
// without the surrounding host name. Empty input yields "".
func Instantiation(args []TypeArgument) string {
	if len(args) == 0 {
		return ""
	}
	return TypeArgument{Arguments: args}.String()
}
