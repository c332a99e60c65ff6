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

// Package metrics exposes resolution outcomes as Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/typeid/apis"
)

const namespace = "typeid"

// Observer implements apis.Observer with Prometheus counters.
type Observer struct {
	resolutions *prometheus.CounterVec
	unknown     *prometheus.CounterVec
	collisions  prometheus.Counter
}

// Ensure Observer implements apis.Observer.
var _ apis.Observer = (*Observer)(nil)

// New creates an Observer and registers its collectors with reg.
// A nil reg leaves the collectors unregistered.
func New(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Schema names resolved, by role and resolution source.",
		}, []string{"role", "source"}),
		unknown: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_roles_total",
			Help:      "Requests that fell through to the default name, by role.",
		}, []string{"role"}),
		collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collisions_total",
			Help:      "Distinct host identities that produced the same schema name.",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{o.resolutions, o.unknown, o.collisions} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return o, nil
}

// Resolved implements apis.Observer.
func (o *Observer) Resolved(role apis.ReferenceType, src apis.Source) {
	o.resolutions.WithLabelValues(role.String(), string(src)).Inc()
}

// UnknownRole implements apis.Observer.
func (o *Observer) UnknownRole(role apis.ReferenceType) {
	o.unknown.WithLabelValues(role.String()).Inc()
}

// Collision counts one name collision.
func (o *Observer) Collision() {
	o.collisions.Inc()
}
