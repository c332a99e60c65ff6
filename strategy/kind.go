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
	"dirpx.dev/typeid/apis"
)

// NewKindStrategy creates an apis.Strategy that handles every class of the
// given structural kind, whatever role was requested, and names it through
// the override chain of key. The input postfix is never applied.
func NewKindStrategy(kind apis.Kind, key apis.AttributeKey) apis.Strategy {
	return &kindStrategy{kind: kind, chain: overrideChain(key, false)}
}

// kindStrategy lets structural kind take precedence over the requested role.
type kindStrategy struct {
	kind  apis.Kind
	chain []overrideStep
}

// Ensure kindStrategy implements apis.Strategy.
var _ apis.Strategy = (*kindStrategy)(nil)

// TryResolve handles req if its class has the strategy's kind.
func (s *kindStrategy) TryResolve(req apis.Request, cfg apis.Config) (string, apis.Source, bool) {
	if req.Class.Kind != s.kind {
		return "", "", false
	}
	name, src := runChain(s.chain, req, cfg)
	return name, src, true
}
