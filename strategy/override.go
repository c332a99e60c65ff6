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

package strategy

import (
	"strings"

	"dirpx.dev/typeid/apis"
	"dirpx.dev/typeid/utils/attr"
)

// overrideStep is one link of the override chain.
type overrideStep func(req apis.Request, cfg apis.Config) (string, apis.Source, bool)

// byKey resolves from an explicit attribute. Explicit names are absolute:
// neither the suffix nor the postfix is applied.
func byKey(key apis.AttributeKey, src apis.Source) overrideStep {
	return func(req apis.Request, cfg apis.Config) (string, apis.Source, bool) {
		if name, ok := attr.Lookup(req.Attributes, key, cfg.Validity); ok {
			return name, src, true
		}
		return "", "", false
	}
}

// byDefault derives localName + suffix, plus cfg.InputPostfix when postfix
// is set. It always applies.
func byDefault(postfix bool) overrideStep {
	return func(req apis.Request, cfg apis.Config) (string, apis.Source, bool) {
		local := req.Class.Local()
		pf := ""
		if postfix {
			pf = cfg.InputPostfix
		}
		var sb strings.Builder
		sb.Grow(len(local) + len(req.Suffix) + len(pf))
		sb.WriteString(local)
		sb.WriteString(req.Suffix)
		sb.WriteString(pf)
		return sb.String(), apis.SourceDefault, true
	}
}

// overrideChain returns the chain role key -> NAME key -> default.
func overrideChain(key apis.AttributeKey, postfix bool) []overrideStep {
	return []overrideStep{
		byKey(key, apis.SourceRoleOverride),
		byKey(apis.AttrName, apis.SourceNameOverride),
		byDefault(postfix),
	}
}

// runChain returns the result of the first step that applies.
func runChain(steps []overrideStep, req apis.Request, cfg apis.Config) (string, apis.Source) {
	for _, step := range steps {
		if name, src, ok := step(req, cfg); ok {
			return name, src
		}
	}
	// Unreachable while the chain ends with byDefault.
	return req.Class.Local(), apis.SourceDefault
}
