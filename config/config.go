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

package config

import (
	"dirpx.dev/typeid/apis"
)

const (
	// DefaultInputPostfix is appended to derived input type names.
	DefaultInputPostfix = "Input"
	// DefaultSuffixSeparator precedes every argument of a parametrization suffix.
	DefaultSuffixSeparator = "_"
	// DefaultValidity accepts override strings that are non-blank after trimming.
	DefaultValidity = apis.ValidityNonBlank
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		InputPostfix:    DefaultInputPostfix,
		SuffixSeparator: DefaultSuffixSeparator,
		Validity:        DefaultValidity,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithInputPostfix sets the InputPostfix option.
// An empty postfix makes input names equal to type names and is allowed.
func WithInputPostfix(postfix string) Option {
	return func(c *apis.Config) {
		c.InputPostfix = postfix
	}
}

// WithSuffixSeparator sets the SuffixSeparator option.
// An empty separator resets to the default.
func WithSuffixSeparator(sep string) Option {
	return func(c *apis.Config) {
		if sep == "" {
			c.SuffixSeparator = DefaultSuffixSeparator
			return
		}
		c.SuffixSeparator = sep
	}
}

// WithValidity sets the Validity option.
// Unknown policies reset to the default.
func WithValidity(v apis.Validity) Option {
	return func(c *apis.Config) {
		switch v {
		case apis.ValidityNonBlank, apis.ValidityPresent:
			c.Validity = v
		default:
			c.Validity = DefaultValidity
		}
	}
}
