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

package client

import (
	"strconv"
	"time"

	"github.com/ortuman/jackal-client/pkg/instance"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionStateChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "client",
			Name:      "session_state_changes_total",
			Help:      "The total number of session state transitions.",
		},
		[]string{"instance", "state", "reason"},
	)
	authenticationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "client",
			Name:      "authentications_total",
			Help:      "The total number of SASL authentications.",
		},
		[]string{"instance", "mechanism", "success"},
	)
	incomingStanzas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "client",
			Name:      "incoming_stanzas_total",
			Help:      "The total number of stanzas dispatched to modules.",
		},
		[]string{"instance", "name", "type"},
	)
	outgoingStanzas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "client",
			Name:      "outgoing_stanzas_total",
			Help:      "The total number of stanzas handed to the connector.",
		},
		[]string{"instance", "name", "type"},
	)
	dispatchDurationBucket = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jackal",
			Subsystem: "client",
			Name:      "dispatch_duration_seconds",
			Help:      "Time taken to dispatch an incoming stanza.",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"instance", "name"},
	)
	keepAlivesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "client",
			Name:      "keepalives_total",
			Help:      "The total number of keepalives sent.",
		},
		[]string{"instance", "kind", "success"},
	)
)

func init() {
	prometheus.MustRegister(sessionStateChanges)
	prometheus.MustRegister(authenticationsTotal)
	prometheus.MustRegister(incomingStanzas)
	prometheus.MustRegister(outgoingStanzas)
	prometheus.MustRegister(dispatchDurationBucket)
	prometheus.MustRegister(keepAlivesTotal)
}

func reportSessionState(st SessionState) {
	reason := ""
	if st.State == Disconnected {
		reason = st.Reason.String()
	}
	sessionStateChanges.With(prometheus.Labels{
		"instance": instance.ID(),
		"state":    st.State.String(),
		"reason":   reason,
	}).Inc()
}

func reportAuthentication(mechanism string, success bool) {
	authenticationsTotal.With(prometheus.Labels{
		"instance":  instance.ID(),
		"mechanism": mechanism,
		"success":   strconv.FormatBool(success),
	}).Inc()
}

func reportIncomingStanza(name, typ string, d time.Duration) {
	incomingStanzas.With(prometheus.Labels{
		"instance": instance.ID(),
		"name":     name,
		"type":     typ,
	}).Inc()
	dispatchDurationBucket.With(prometheus.Labels{
		"instance": instance.ID(),
		"name":     name,
	}).Observe(d.Seconds())
}

func reportOutgoingStanza(name, typ string) {
	outgoingStanzas.With(prometheus.Labels{
		"instance": instance.ID(),
		"name":     name,
		"type":     typ,
	}).Inc()
}

func reportKeepAlive(kind string, success bool) {
	keepAlivesTotal.With(prometheus.Labels{
		"instance": instance.ID(),
		"kind":     kind,
		"success":  strconv.FormatBool(success),
	}).Inc()
}
