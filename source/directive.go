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

package source

import (
	"go/ast"
	"strings"

	"dirpx.dev/typeid/apis"
)

// directives is the parsed set of naming directives of one declaration.
type directives struct {
	attrs  apis.Attributes
	enum   bool
	scalar bool
	ignore bool
}

// parseDirectives reads "//<prefix>:<verb> [value]" lines from the given
// comment groups. Later groups win over earlier ones.
func parseDirectives(prefix string, groups ...*ast.CommentGroup) directives {
	d := directives{attrs: apis.Attributes{}}
	lead := "//" + prefix + ":"
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			if !strings.HasPrefix(c.Text, lead) {
				continue
			}
			verb, value, _ := strings.Cut(strings.TrimSpace(c.Text[len(lead):]), " ")
			value = strings.TrimSpace(value)
			switch strings.ToLower(verb) {
			case "ignore":
				d.ignore = true
			case "scalar":
				d.scalar = true
			case "enum":
				d.enum = true
				if value != "" {
					d.attrs[apis.AttrEnum] = value
				}
			default:
				// An empty value is kept; the validity policy decides.
				if key, ok := attributeKey(verb); ok {
					d.attrs[key] = value
				}
			}
		}
	}
	return d
}

// attributeKey maps a directive verb to its naming attribute.
func attributeKey(verb string) (apis.AttributeKey, bool) {
	for _, k := range apis.AttributeKeys() {
		if strings.EqualFold(verb, string(k)) {
			return k, true
		}
	}
	return "", false
}
