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

package resolver

import (
	"dirpx.dev/typeid/apis"
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies and obs are safe for concurrent use. obs may be nil.
func New(obs apis.Observer, strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out, obs: obs}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
	obs    apis.Observer
}

// Resolve runs strategies in order until one handles the request.
// If none does, or the winner produced an empty name, the class's local
// name is returned, so the result is never empty.
func (r chain) Resolve(req apis.Request, cfg apis.Config) string {
	for _, s := range r.strats {
		name, src, ok := s.TryResolve(req, cfg)
		if !ok {
			continue
		}
		if name == "" {
			break
		}
		r.observe(req.Role, src)
		return name
	}
	r.observe(req.Role, apis.SourceFallback)
	return req.Class.Local()
}

func (r chain) observe(role apis.ReferenceType, src apis.Source) {
	if r.obs != nil {
		r.obs.Resolved(role, src)
	}
}
