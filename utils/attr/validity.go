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

// Package attr implements the "valid value" lookup over apis.AttributeSet.
package attr

import (
	"fmt"
	"reflect"
	"strings"

	"dirpx.dev/typeid/apis"
)

// Lookup returns the trimmed override stored under key when it is present
// and valid under policy v.
//
// Strings and fmt.Stringer values are checked as text. Other values are
// usable only under apis.ValidityPresent, where they are formatted with fmt.
// Blank and nil values, typed nils included, are never valid.
func Lookup(set apis.AttributeSet, key apis.AttributeKey, v apis.Validity) (string, bool) {
	if set == nil {
		return "", false
	}
	raw, ok := set.Value(key)
	if !ok || isNil(raw) {
		return "", false
	}

	var s string
	switch x := raw.(type) {
	case string:
		s = x
	case fmt.Stringer:
		s = x.String()
	default:
		if v != apis.ValidityPresent {
			return "", false
		}
		s = fmt.Sprint(x)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// isNil reports whether v is nil or a typed nil held in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Contains reports whether key holds a valid value under policy v.
func Contains(set apis.AttributeSet, key apis.AttributeKey, v apis.Validity) bool {
	_, ok := Lookup(set, key, v)
	return ok
}
