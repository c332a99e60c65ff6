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

// Strategy is one row of the resolution priority table. A Resolver chains
// strategies in order and stops at the first one that handles the request.
type Strategy interface {
	// TryResolve returns (name, source, true) if the strategy applies to req;
	// otherwise ("", "", false) to fall through.
	TryResolve(req Request, cfg Config) (name string, src Source, handled bool)
}

// Observer is notified about resolution outcomes.
// Implementations must be safe for concurrent use.
type Observer interface {
	// Resolved is called once per resolved request.
	Resolved(role ReferenceType, src Source)
	// UnknownRole is called when a request falls through to the fallback.
	UnknownRole(role ReferenceType)
}
