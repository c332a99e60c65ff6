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

package builder

import (
	"log/slog"

	"dirpx.dev/typeid/apis"
	"dirpx.dev/typeid/registry"
	"dirpx.dev/typeid/resolver"
	"dirpx.dev/typeid/strategy"
)

// Option configures the default builder.
type Option func(*builder)

// WithLogger sets the logger handed to the fallback strategy.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		b.logger = l
	}
}

// WithObserver sets the observer notified about every resolution.
func WithObserver(obs apis.Observer) Option {
	return func(b *builder) {
		b.obs = obs
	}
}

// New creates and returns a new instance of an apis.Builder.
func New(opts ...Option) apis.Builder {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// builder wires the default priority table.
type builder struct {
	logger *slog.Logger
	obs    apis.Observer
}

// BuildRegistry builds and returns a new apis.Registry. If a previous registry
// is provided, its entries are interned into the new one.
func (b *builder) BuildRegistry(_ apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New()
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Intern(e.Name, e.Identity)
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver over the default
// priority table. The configuration is applied per call, so nothing is
// carried over from a previous resolver.
func (b *builder) BuildResolver(_ apis.Config, _ apis.Resolver) apis.Resolver {
	return resolver.New(b.obs, strategy.PriorityTable(b.logger, b.obs)...)
}
