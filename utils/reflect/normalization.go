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

package reflect

import (
	"errors"
	"reflect"
	"strings"

	"dirpx.dev/typeid/apis"
)

// DefaultMaxUnwrap bounds container unwrapping in Normalize.
const DefaultMaxUnwrap = 8

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping containers)
	// does not contain a named type (e.g., anonymous struct, func, interface{}).
	ErrReflectTypeNotNamed = errors.New("reflect: type has no name")
)

// Normalize unwraps containers and returns the nearest named inner type,
// or an error if none is found within maxUnwrap steps.
//
// Unwrapping policy:
//   - a named type is returned as is, even when it is a slice or map
//   - unnamed ptr/slice/array/chan/map -> Elem()
//   - otherwise ErrReflectTypeNotNamed.
//
// If maxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, maxUnwrap int) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if maxUnwrap <= 0 {
		maxUnwrap = DefaultMaxUnwrap
	}

	for i := 0; t != nil && i < maxUnwrap; i++ {
		if t.Name() != "" {
			return t, nil
		}
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan, reflect.Map:
			t = t.Elem()
		default:
			return nil, ErrReflectTypeNotNamed
		}
	}

	// After reaching max depth, ensure we ended on a named type.
	if t != nil && t.Name() != "" {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}

var (
	enumeratedType = reflect.TypeOf((*apis.Enumerated)(nil)).Elem()
	annotatedType  = reflect.TypeOf((*apis.Annotated)(nil)).Elem()
)

// Describe returns the class descriptor of the nearest named type of t.
// Interfaces are KindInterface; types implementing apis.Enumerated (with a
// value or pointer receiver) are KindEnum.
func Describe(t reflect.Type) (apis.ClassDescriptor, error) {
	b, err := Normalize(t, DefaultMaxUnwrap)
	if err != nil {
		return apis.ClassDescriptor{}, err
	}
	local := stripTypeParams(b.Name())
	qualified := local
	if p := b.PkgPath(); p != "" {
		qualified = p + "." + local
	}

	kind := apis.KindClass
	switch {
	case b.Kind() == reflect.Interface:
		kind = apis.KindInterface
	case implements(b, enumeratedType):
		kind = apis.KindEnum
	}
	return apis.ClassDescriptor{QualifiedName: qualified, LocalName: local, Kind: kind}, nil
}

// Arguments returns the type arguments of an instantiated generic type,
// parsed from its runtime name. Non-generic types yield nil.
func Arguments(t reflect.Type) ([]apis.TypeArgument, error) {
	b, err := Normalize(t, DefaultMaxUnwrap)
	if err != nil {
		return nil, err
	}
	name := b.Name()
	i := strings.IndexByte(name, '[')
	if i < 0 {
		return nil, nil
	}
	if !strings.HasSuffix(name, "]") {
		return nil, ErrMalformedTypeName
	}
	return parseList(name[i+1 : len(name)-1])
}

// TagKey is the struct tag key read from a blank field:
//
//	type Widget struct {
//	    _ struct{} `typeid:"type=Gadget,input=GadgetInput"`
//	}
const TagKey = "typeid"

// Attributes collects the naming attributes of the nearest named type of t.
// Values from apis.Annotated win over struct tag values.
func Attributes(t reflect.Type) (apis.Attributes, error) {
	b, err := Normalize(t, DefaultMaxUnwrap)
	if err != nil {
		return nil, err
	}
	out := apis.Attributes{}
	if b.Kind() == reflect.Struct {
		for i := 0; i < b.NumField(); i++ {
			f := b.Field(i)
			if f.Name != "_" {
				continue
			}
			if tag, ok := f.Tag.Lookup(TagKey); ok {
				for k, v := range parseTag(tag) {
					out[k] = v
				}
			}
		}
	}
	if a := annotated(b); a != nil {
		for k, v := range a.SchemaAttributes() {
			out[k] = v
		}
	}
	return out, nil
}

// parseTag parses "key=value,key=value". Keys are lower-cased; a bare word is
// taken as a NAME override.
func parseTag(tag string) map[apis.AttributeKey]string {
	out := map[apis.AttributeKey]string{}
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			out[apis.AttrName] = part
			continue
		}
		out[apis.AttributeKey(strings.ToLower(strings.TrimSpace(k)))] = strings.TrimSpace(v)
	}
	return out
}

func implements(t, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}

// annotated returns t as apis.Annotated, trying the zero value and then a
// pointer to it. Interface types are never annotated.
func annotated(t reflect.Type) apis.Annotated {
	if t.Kind() == reflect.Interface {
		return nil
	}
	if t.Implements(annotatedType) {
		if a, ok := reflect.Zero(t).Interface().(apis.Annotated); ok {
			return a
		}
	}
	if reflect.PointerTo(t).Implements(annotatedType) {
		if a, ok := reflect.New(t).Interface().(apis.Annotated); ok {
			return a
		}
	}
	return nil
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
