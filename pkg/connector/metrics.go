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

package connector

import (
	"strconv"
	"time"

	"github.com/ortuman/jackal-client/pkg/instance"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	connectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "connector",
			Name:      "connections_total",
			Help:      "The total number of connection attempts.",
		},
		[]string{"instance", "success"},
	)
	connectDurationBucket = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jackal",
			Subsystem: "connector",
			Name:      "connect_duration_seconds",
			Help:      "Time taken to establish a transport connection.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"instance"},
	)
	incomingElements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "connector",
			Name:      "incoming_elements_total",
			Help:      "The total number of incoming stream elements.",
		},
		[]string{"instance", "name", "type"},
	)
	outgoingElements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "connector",
			Name:      "outgoing_elements_total",
			Help:      "The total number of outgoing stream elements.",
		},
		[]string{"instance", "name", "type"},
	)
	disconnectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "connector",
			Name:      "disconnections_total",
			Help:      "The total number of disconnections.",
		},
		[]string{"instance", "reason"},
	)
)

func init() {
	prometheus.MustRegister(connectionsTotal)
	prometheus.MustRegister(connectDurationBucket)
	prometheus.MustRegister(incomingElements)
	prometheus.MustRegister(outgoingElements)
	prometheus.MustRegister(disconnectionsTotal)
}

func reportConnect(success bool, d time.Duration) {
	connectionsTotal.With(prometheus.Labels{
		"instance": instance.ID(),
		"success":  strconv.FormatBool(success),
	}).Inc()
	if success {
		connectDurationBucket.With(prometheus.Labels{"instance": instance.ID()}).Observe(d.Seconds())
	}
}

func reportIncomingElement(name, typ string) {
	incomingElements.With(prometheus.Labels{
		"instance": instance.ID(),
		"name":     name,
		"type":     typ,
	}).Inc()
}

func reportOutgoingElement(name, typ string) {
	outgoingElements.With(prometheus.Labels{
		"instance": instance.ID(),
		"name":     name,
		"type":     typ,
	}).Inc()
}

func reportDisconnect(reason Reason) {
	disconnectionsTotal.With(prometheus.Labels{
		"instance": instance.ID(),
		"reason":   reason.String(),
	}).Inc()
}
