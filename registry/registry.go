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

package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"dirpx.dev/typeid/apis"
)

var (
	// ErrEmptyName is returned when an empty name is interned.
	ErrEmptyName = errors.New("typeid(registry): empty name provided")
	// ErrConflictingRegistration indicates that a name is already owned by
	// a different identity.
	ErrConflictingRegistration = errors.New("typeid(registry): conflicting name registration")
)

// CollisionError describes two identities that produced the same schema name.
// It wraps ErrConflictingRegistration.
type CollisionError struct {
	Name     string
	Existing apis.Identity
	Incoming apis.Identity
}

// Error implements error.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: %q is owned by %s, requested by %s",
		ErrConflictingRegistration, e.Name, e.Existing, e.Incoming)
}

// Unwrap returns ErrConflictingRegistration.
func (e *CollisionError) Unwrap() error { return ErrConflictingRegistration }

// New constructs an empty name-interning Registry.
func New() apis.Registry {
	return &registry{}
}

// registry is a Registry backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps schema name to the owning apis.Identity.
	m sync.Map // map[string]apis.Identity
	// count tracks the number of interned names.
	count int
}

// Intern records name for id. It is idempotent for the same (name, id) pair.
func (r *registry) Intern(name string, id apis.Identity) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(name); ok {
		return conflict(name, old.(apis.Identity), id)
	}

	// Write path: guard with a mutex to keep counter consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(name); ok {
		return conflict(name, old.(apis.Identity), id)
	}

	r.m.Store(name, id)
	r.count++
	return nil
}

func conflict(name string, old, id apis.Identity) error {
	if old == id {
		return nil
	}
	return &CollisionError{Name: name, Existing: old, Incoming: id}
}

// Lookup returns the identity that owns name.
func (r *registry) Lookup(name string) (apis.Identity, bool) {
	if v, ok := r.m.Load(name); ok {
		return v.(apis.Identity), true
	}
	return apis.Identity{}, false
}

// Entries returns a snapshot sorted by name.
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Name:     key.(string),
			Identity: value.(apis.Identity),
		})
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Count returns the number of interned names.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all interned names.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
