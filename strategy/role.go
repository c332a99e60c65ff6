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

// NewRoleStrategy creates an apis.Strategy that handles requests for role and
// names them through the override chain of key. When postfix is set,
// cfg.InputPostfix is appended to derived names (never to explicit ones).
func NewRoleStrategy(role apis.ReferenceType, key apis.AttributeKey, postfix bool) apis.Strategy {
	return &roleStrategy{role: role, chain: overrideChain(key, postfix)}
}

// roleStrategy matches on the requested role only.
type roleStrategy struct {
	role  apis.ReferenceType
	chain []overrideStep
}

// Ensure roleStrategy implements apis.Strategy.
var _ apis.Strategy = (*roleStrategy)(nil)

// TryResolve handles req if it asks for the strategy's role.
func (s *roleStrategy) TryResolve(req apis.Request, cfg apis.Config) (string, apis.Source, bool) {
	if req.Role != s.role {
		return "", "", false
	}
	name, src := runChain(s.chain, req, cfg)
	return name, src, true
}

// NewVerbatimStrategy creates an apis.Strategy that names requests for role
// with the class's local name, ignoring attributes and suffix.
func NewVerbatimStrategy(role apis.ReferenceType) apis.Strategy {
	return verbatimStrategy{role: role}
}

// verbatimStrategy serves scalars.
type verbatimStrategy struct {
	role apis.ReferenceType
}

// Ensure verbatimStrategy implements apis.Strategy.
var _ apis.Strategy = verbatimStrategy{}

// TryResolve handles req if it asks for the strategy's role.
func (s verbatimStrategy) TryResolve(req apis.Request, _ apis.Config) (string, apis.Source, bool) {
	if req.Role != s.role {
		return "", "", false
	}
	return req.Class.Local(), apis.SourceVerbatim, true
}
