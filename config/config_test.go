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

package config_test

import (
	"testing"

	"dirpx.dev/typeid/apis"
	"dirpx.dev/typeid/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.InputPostfix != config.DefaultInputPostfix {
		t.Fatalf("InputPostfix = %q, want %q", got.InputPostfix, config.DefaultInputPostfix)
	}
	if got.SuffixSeparator != config.DefaultSuffixSeparator {
		t.Fatalf("SuffixSeparator = %q, want %q", got.SuffixSeparator, config.DefaultSuffixSeparator)
	}
	if got.Validity != config.DefaultValidity {
		t.Fatalf("Validity = %v, want %v", got.Validity, config.DefaultValidity)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithInputPostfix(t *testing.T) {
	c := config.NewConfig(config.WithInputPostfix("Args"))
	if c.InputPostfix != "Args" {
		t.Fatalf("InputPostfix = %q, want Args", c.InputPostfix)
	}

	// An empty postfix is a legitimate choice and is kept.
	c2 := config.NewConfig(config.WithInputPostfix(""))
	if c2.InputPostfix != "" {
		t.Fatalf("InputPostfix = %q, want empty", c2.InputPostfix)
	}
}

func TestWithSuffixSeparator_Empty_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithSuffixSeparator("__"))
	if c.SuffixSeparator != "__" {
		t.Fatalf("SuffixSeparator = %q, want __", c.SuffixSeparator)
	}

	c2 := config.NewConfig(config.WithSuffixSeparator(""))
	if c2.SuffixSeparator != config.DefaultSuffixSeparator {
		t.Fatalf("SuffixSeparator = %q, want default %q", c2.SuffixSeparator, config.DefaultSuffixSeparator)
	}
}

func TestWithValidity_Unknown_ResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithValidity(apis.ValidityPresent))
	if c.Validity != apis.ValidityPresent {
		t.Fatalf("Validity = %v, want present", c.Validity)
	}

	c2 := config.NewConfig(config.WithValidity(apis.Validity(9)))
	if c2.Validity != config.DefaultValidity {
		t.Fatalf("Validity = %v, want default %v", c2.Validity, config.DefaultValidity)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithInputPostfix("A"),
		config.WithInputPostfix("B"),
		config.WithSuffixSeparator("-"),
		config.WithSuffixSeparator("."),
		config.WithValidity(apis.ValidityPresent),
		config.WithValidity(apis.ValidityNonBlank),
	)

	if c.InputPostfix != "B" {
		t.Errorf("InputPostfix = %q, want B (last option wins)", c.InputPostfix)
	}
	if c.SuffixSeparator != "." {
		t.Errorf("SuffixSeparator = %q, want . (last option wins)", c.SuffixSeparator)
	}
	if c.Validity != apis.ValidityNonBlank {
		t.Errorf("Validity = %v, want non-blank (last option wins)", c.Validity)
	}
}
