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
	"log/slog"

	"dirpx.dev/typeid/apis"
)

// PriorityTable returns the default strategies in resolution order:
// structural kind first (enum, interface), then the requested role (type,
// input, scalar), then the fallback. Adding a role or kind is a row here.
func PriorityTable(logger *slog.Logger, obs apis.Observer) []apis.Strategy {
	return []apis.Strategy{
		NewKindStrategy(apis.KindEnum, apis.AttrEnum),
		NewKindStrategy(apis.KindInterface, apis.AttrInterface),
		NewRoleStrategy(apis.RoleType, apis.AttrType, false),
		NewRoleStrategy(apis.RoleInput, apis.AttrInput, true),
		NewVerbatimStrategy(apis.RoleScalar),
		NewFallbackStrategy(logger, obs),
	}
}
