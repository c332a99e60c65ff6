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

// NewFallbackStrategy creates the last row of the priority table. It handles
// every request, logs a warning and returns the class's local name.
// A nil logger uses slog.Default().
func NewFallbackStrategy(logger *slog.Logger, obs apis.Observer) apis.Strategy {
	return &fallbackStrategy{logger: logger, obs: obs}
}

// fallbackStrategy covers unrecognized roles, and roles that do not fit the
// class (INTERFACE or ENUM requested for an ordinary class).
type fallbackStrategy struct {
	logger *slog.Logger
	obs    apis.Observer
}

// Ensure fallbackStrategy implements apis.Strategy.
var _ apis.Strategy = (*fallbackStrategy)(nil)

// TryResolve always handles req.
func (s *fallbackStrategy) TryResolve(req apis.Request, _ apis.Config) (string, apis.Source, bool) {
	name := req.Class.Local()
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("Using default name",
		slog.String("class", name),
		slog.String("role", req.Role.String()))
	if s.obs != nil {
		s.obs.UnknownRole(req.Role)
	}
	return name, apis.SourceFallback, true
}
