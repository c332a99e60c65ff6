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

import (
	"strconv"
	"strings"
)

// ReferenceType is the schema role a class is rendered as.
// The set is closed; values outside it are treated as unrecognized roles.
type ReferenceType int

const (
	// RoleType renders the class as an object type.
	RoleType ReferenceType = iota + 1
	// RoleInput renders the class as an input object type.
	RoleInput
	// RoleInterface renders the class as an interface.
	RoleInterface
	// RoleEnum renders the class as an enum.
	RoleEnum
	// RoleScalar renders the class as a scalar.
	RoleScalar
)

var roleNames = map[ReferenceType]string{
	RoleType:      "TYPE",
	RoleInput:     "INPUT",
	RoleInterface: "INTERFACE",
	RoleEnum:      "ENUM",
	RoleScalar:    "SCALAR",
}

// Roles returns the recognized roles in declaration order.
func Roles() []ReferenceType {
	return []ReferenceType{RoleType, RoleInput, RoleInterface, RoleEnum, RoleScalar}
}

// Known reports whether r is one of the recognized roles.
func (r ReferenceType) Known() bool {
	_, ok := roleNames[r]
	return ok
}

// String returns the upper-case role name, or "ReferenceType(n)" for
// unrecognized values.
func (r ReferenceType) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "ReferenceType(" + strconv.Itoa(int(r)) + ")"
}

// ParseReferenceType parses a role name case-insensitively.
func ParseReferenceType(s string) (ReferenceType, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for r, name := range roleNames {
		if name == s {
			return r, true
		}
	}
	return 0, false
}

// Kind is the structural kind of a host class.
type Kind int

const (
	// KindClass is an ordinary class (Go: struct or other named type).
	KindClass Kind = iota
	// KindInterface is an interface.
	KindInterface
	// KindEnum is an enumeration.
	KindEnum
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Source tells which branch of the resolution produced a name.
type Source string

const (
	// SourceRoleOverride: the role-specific override attribute won.
	SourceRoleOverride Source = "role-override"
	// SourceNameOverride: the generic NAME override attribute won.
	SourceNameOverride Source = "name-override"
	// SourceDefault: the name was derived from the local name, suffix and postfix.
	SourceDefault Source = "default"
	// SourceVerbatim: the local name was used unchanged (scalars).
	SourceVerbatim Source = "verbatim"
	// SourceFallback: the role was not handled and the local name was used.
	SourceFallback Source = "fallback"
)
