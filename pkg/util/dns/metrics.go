// Copyright 2022 The jackal Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dns

import (
	"strconv"

	"github.com/ortuman/jackal-client/pkg/instance"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	dnsResolveRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "dns",
			Name:      "resolve_requests_total",
			Help:      "The total number of endpoint resolve requests.",
		},
		[]string{"instance", "cached"},
	)
	dnsLookUps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "dns",
			Name:      "srv_lookups_total",
			Help:      "The total number of SRV lookups.",
		},
		[]string{"instance", "success"},
	)
	dnsEndpointsInvalidated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "dns",
			Name:      "endpoints_invalidated_total",
			Help:      "The total number of endpoints marked as invalid.",
		},
		[]string{"instance"},
	)
)

func init() {
	prometheus.MustRegister(dnsResolveRequests)
	prometheus.MustRegister(dnsLookUps)
	prometheus.MustRegister(dnsEndpointsInvalidated)
}

func reportResolve(cached bool) {
	dnsResolveRequests.With(prometheus.Labels{
		"instance": instance.ID(),
		"cached":   strconv.FormatBool(cached),
	}).Inc()
}

func reportLookUp(success bool) {
	dnsLookUps.With(prometheus.Labels{
		"instance": instance.ID(),
		"success":  strconv.FormatBool(success),
	}).Inc()
}

func reportMarkInvalid() {
	dnsEndpointsInvalidated.With(prometheus.Labels{
		"instance": instance.ID(),
	}).Inc()
}
