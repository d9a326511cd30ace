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

package xep0198

import (
	"strconv"

	"github.com/ortuman/jackal-client/pkg/instance"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	smAcksSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "xep0198",
			Name:      "acks_sent_total",
			Help:      "The total number of stream management acks sent.",
		},
		[]string{"instance"},
	)
	smAckRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "xep0198",
			Name:      "ack_requests_total",
			Help:      "The total number of stream management ack requests sent.",
		},
		[]string{"instance"},
	)
	smAcknowledgedStanzas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "xep0198",
			Name:      "acknowledged_stanzas_total",
			Help:      "The total number of outgoing stanzas acknowledged by the server.",
		},
		[]string{"instance"},
	)
	smResentStanzas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "xep0198",
			Name:      "resent_stanzas_total",
			Help:      "The total number of unacknowledged stanzas resent after enable or resume.",
		},
		[]string{"instance"},
	)
	smResumptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jackal",
			Subsystem: "xep0198",
			Name:      "resumptions_total",
			Help:      "The total number of stream resumption attempts.",
		},
		[]string{"instance", "success"},
	)
)

func init() {
	prometheus.MustRegister(smAcksSent)
	prometheus.MustRegister(smAckRequests)
	prometheus.MustRegister(smAcknowledgedStanzas)
	prometheus.MustRegister(smResentStanzas)
	prometheus.MustRegister(smResumptions)
}

func reportAckSent() {
	smAcksSent.With(prometheus.Labels{"instance": instance.ID()}).Inc()
}

func reportAckRequested() {
	smAckRequests.With(prometheus.Labels{"instance": instance.ID()}).Inc()
}

func reportAckReceived(acknowledged int) {
	smAcknowledgedStanzas.With(prometheus.Labels{"instance": instance.ID()}).Add(float64(acknowledged))
}

func reportResent(count int) {
	if count == 0 {
		return
	}
	smResentStanzas.With(prometheus.Labels{"instance": instance.ID()}).Add(float64(count))
}

func reportResumption(success bool) {
	smResumptions.With(prometheus.Labels{
		"instance": instance.ID(),
		"success":  strconv.FormatBool(success),
	}).Inc()
}
