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

// AttributeKey identifies a declarative naming attribute attached to a class.
type AttributeKey string

const (
	// AttrType overrides the object type name.
	AttrType AttributeKey = "type"
	// AttrInput overrides the input type name.
	AttrInput AttributeKey = "input"
	// AttrInterface overrides the interface name.
	AttrInterface AttributeKey = "interface"
	// AttrEnum overrides the enum name.
	AttrEnum AttributeKey = "enum"
	// AttrName overrides the name for every role that has no role-specific override.
	AttrName AttributeKey = "name"
)

// AttributeKeys returns every naming attribute key.
func AttributeKeys() []AttributeKey {
	return []AttributeKey{AttrType, AttrInput, AttrInterface, AttrEnum, AttrName}
}

// AttributeSet is the declarative metadata attached to a class.
// Implementations must be safe for concurrent reads.
type AttributeSet interface {
	// Value returns the raw value stored under key and whether the key is present.
	// A present key may carry a nil value.
	Value(key AttributeKey) (v any, ok bool)
}

// Attributes is a map-backed AttributeSet.
type Attributes map[AttributeKey]any

// Ensure Attributes implements AttributeSet.
var _ AttributeSet = Attributes(nil)

// Value implements AttributeSet. A nil map holds no keys.
func (a Attributes) Value(key AttributeKey) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// Annotated is implemented by Go types that declare their own naming attributes.
// It is consulted by the Go reflection collaborator.
type Annotated interface {
	SchemaAttributes() Attributes
}

// Enumerated is implemented by Go types that model an enumeration.
// The Go reflection collaborator reports such types as KindEnum.
type Enumerated interface {
	EnumValues() []string
}
