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
	"strings"

	"dirpx.dev/typeid/apis"
)

// ErrMalformedTypeName is returned when a runtime type name has unbalanced
// brackets or an empty type argument.
var ErrMalformedTypeName = errors.New("reflect: malformed generic type name")

// Local names given to unnamed composite type arguments. Slices and arrays
// are lists in the schema, so []T encodes like a List[T] instantiation.
const (
	ListName = "List"
	MapName  = "Map"
	AnyName  = "Any"
)

// parseList splits a comma-separated runtime type argument list at depth 0
// and parses every element.
func parseList(s string) ([]apis.TypeArgument, error) {
	var (
		out   []apis.TypeArgument
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
			if depth < 0 {
				return nil, ErrMalformedTypeName
			}
		case ',':
			if depth == 0 {
				a, err := parseType(s[start:i])
				if err != nil {
					return nil, err
				}
				out = append(out, a)
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, ErrMalformedTypeName
	}
	a, err := parseType(s[start:])
	if err != nil {
		return nil, err
	}
	return append(out, a), nil
}

// parseType parses one runtime type string such as "int",
// "example.com/pkg.List[string]", "[]*pkg.T" or "map[string]int".
func parseType(s string) (apis.TypeArgument, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return apis.TypeArgument{}, ErrMalformedTypeName
	case strings.HasPrefix(s, "*"):
		return parseType(s[1:])
	case strings.HasPrefix(s, "<-chan "):
		return parseType(s[len("<-chan "):])
	case strings.HasPrefix(s, "chan<- "):
		return parseType(s[len("chan<- "):])
	case strings.HasPrefix(s, "chan "):
		return parseType(s[len("chan "):])
	case strings.HasPrefix(s, "map["):
		end := closing(s, len("map"))
		if end < 0 {
			return apis.TypeArgument{}, ErrMalformedTypeName
		}
		k, err := parseType(s[len("map["):end])
		if err != nil {
			return apis.TypeArgument{}, err
		}
		v, err := parseType(s[end+1:])
		if err != nil {
			return apis.TypeArgument{}, err
		}
		return apis.TypeArgument{QualifiedName: "map", LocalName: MapName, Arguments: []apis.TypeArgument{k, v}}, nil
	case strings.HasPrefix(s, "["):
		end := closing(s, 0)
		if end < 0 {
			return apis.TypeArgument{}, ErrMalformedTypeName
		}
		elem, err := parseType(s[end+1:])
		if err != nil {
			return apis.TypeArgument{}, err
		}
		return apis.TypeArgument{QualifiedName: "[]", LocalName: ListName, Arguments: []apis.TypeArgument{elem}}, nil
	case s == "interface {}" || s == "any":
		return apis.TypeArgument{QualifiedName: "any", LocalName: AnyName}, nil
	case strings.HasPrefix(s, "func"), strings.HasPrefix(s, "struct"), strings.HasPrefix(s, "interface"):
		return apis.TypeArgument{QualifiedName: s, LocalName: apis.AnonymousName}, nil
	}

	i := strings.IndexByte(s, '[')
	if i < 0 {
		return named(s, nil), nil
	}
	if !strings.HasSuffix(s, "]") || closing(s, i) != len(s)-1 {
		return apis.TypeArgument{}, ErrMalformedTypeName
	}
	args, err := parseList(s[i+1 : len(s)-1])
	if err != nil {
		return apis.TypeArgument{}, err
	}
	return named(s[:i], args), nil
}

func named(qualified string, args []apis.TypeArgument) apis.TypeArgument {
	return apis.TypeArgument{
		QualifiedName: qualified,
		LocalName:     apis.ClassDescriptor{QualifiedName: qualified}.Local(),
		Arguments:     args,
	}
}

// closing returns the index of the bracket matching s[open], or -1.
func closing(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
