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

package apis

import "fmt"

// Validity decides when a present attribute value counts as a usable override.
type Validity int

// Blank values are never valid under any policy: a blank name cannot identify
// a schema type.
const (
	// ValidityNonBlank accepts text values (string or fmt.Stringer) that are
	// non-blank after trimming. Other values count as absent.
	ValidityNonBlank Validity = iota
	// ValidityPresent also accepts non-text values, formatted with fmt.
	ValidityPresent
)

var validityNames = [...]string{
	ValidityNonBlank: "non-blank",
	ValidityPresent:  "present",
}

// String returns the policy name used in configuration files.
func (v Validity) String() string {
	if v >= 0 && int(v) < len(validityNames) {
		return validityNames[v]
	}
	return fmt.Sprintf("Validity(%d)", int(v))
}

// ParseValidity parses a policy name.
func ParseValidity(s string) (Validity, error) {
	for i, name := range validityNames {
		if name == s {
			return Validity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown validity policy %q", s)
}

// Config carries read-only naming knobs that influence strategies.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// InputPostfix is appended to derived input type names.
	InputPostfix string

	// SuffixSeparator precedes every argument in a parametrization suffix.
	SuffixSeparator string

	// Validity is the policy that decides whether an override attribute is usable.
	Validity Validity
}
