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

// Package suffix encodes generic instantiations as schema name suffixes.
//
// Schema names are flat, so every distinct instantiation of a generic host
// class needs its own name: Box[int] becomes "Box_int" and
// Box[List[string]] becomes "Box_List_string". The encoding is deterministic
// and preserves declaration order at every nesting level.
//
// Two entry points serve two pipeline stages:
//
//   - FromArguments encodes raw, unresolved type arguments and recurses
//     into nested instantiations.
//   - FromReference encodes already-resolved child references. Their names
//     carry their own nested suffix, so it does not recurse.
//
// Both return ok=false when there is nothing to encode, which callers must
// tell apart from an empty suffix.
package suffix

import (
	"strings"

	"dirpx.dev/typeid/apis"
	"dirpx.dev/typeid/config"
)

// FromArguments encodes args depth-first as sep+localName per argument.
func FromArguments(args []apis.TypeArgument, cfg apis.Config) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	sep := separator(cfg)
	var sb strings.Builder
	for _, a := range args {
		appendArgument(&sb, a, sep)
	}
	return sb.String(), true
}

func appendArgument(sb *strings.Builder, a apis.TypeArgument, sep string) {
	sb.WriteString(sep)
	sb.WriteString(argumentName(a))
	for _, nested := range a.Arguments {
		appendArgument(sb, nested, sep)
	}
}

// argumentName is the local name of a, derived from the qualified name when blank.
func argumentName(a apis.TypeArgument) string {
	return apis.ClassDescriptor{QualifiedName: a.QualifiedName, LocalName: a.LocalName}.Local()
}

// FromReference encodes the bound parameters of ref as sep+childName each,
// in binding order. Nil bindings are skipped; if all are nil there is
// nothing to encode.
func FromReference(ref *apis.Reference, cfg apis.Config) (string, bool) {
	if ref == nil || len(ref.Parameters) == 0 {
		return "", false
	}
	sep := separator(cfg)
	var sb strings.Builder
	for _, b := range ref.Parameters {
		if b.Reference == nil {
			continue
		}
		sb.WriteString(sep)
		sb.WriteString(b.Reference.Name)
	}
	if sb.Len() == 0 {
		return "", false
	}
	return sb.String(), true
}

func separator(cfg apis.Config) string {
	if cfg.SuffixSeparator == "" {
		return config.DefaultSuffixSeparator
	}
	return cfg.SuffixSeparator
}
