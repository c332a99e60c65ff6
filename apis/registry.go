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

// Registry interns computed schema names. Each name belongs to exactly one
// Identity; interning the same pair again is a no-op.
type Registry interface {
	// Intern records that name was computed for id. It fails if name is
	// already owned by a different identity.
	Intern(name string, id Identity) error
	// Lookup returns the identity that owns name.
	Lookup(name string) (id Identity, ok bool)
	// Entries returns a snapshot sorted by name.
	Entries() []Entry
	// Count returns the number of interned names.
	Count() int
	// Reset clears all interned names.
	Reset()
}

// Entry is a single (name, identity) association in a Registry snapshot.
type Entry struct {
	// Name is the schema name.
	Name string
	// Identity is its owner.
	Identity Identity
}
