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
	"context"
	"time"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-client/pkg/connector"
	"github.com/ortuman/jackal-client/pkg/module"
	"github.com/ortuman/jackal-client/pkg/module/xep0198"
	"github.com/ortuman/jackal-client/pkg/transport"
	"github.com/ortuman/jackal-client/pkg/util/dns"
)

// Resolver resolves the endpoint of an XMPP server domain.
type Resolver interface {
	Resolve(ctx context.Context, domain string) (*dns.Endpoint, error)
	MarkInvalid(ctx context.Context, domain string, ep *dns.Endpoint, d time.Duration) error
}

//go:generate moq -out connector.mock_test.go . streamConnector:connectorMock
type streamConnector interface {
	State() connector.ConnectionState
	PrepareEndpoint(location string) *dns.Endpoint
	Start(ep *dns.Endpoint)
	Stop(force bool)
	SendElement(ctx context.Context, elem stravaganza.Element) error
	SendWhitespace(ctx context.Context) error
	StartTLS(ctx context.Context) error
	StartCompression(ctx context.Context) error
	RestartStream()
	IsSecured() bool
	IsCompressed() bool
	ChannelBindingBytes(mechanism transport.ChannelBindingMechanism) []byte
}

//go:generate moq -out stream_manager.mock_test.go . streamManager:streamManagerMock
type streamManager interface {
	Enable(ctx context.Context, resumption bool, maxResumption time.Duration, fn func(error)) error
	Resume(ctx context.Context, fn func(error)) error
	Reset(scope xep0198.ResetScope)
	ResumptionEnabled() bool
	ResumptionLocation() string
}

//go:generate moq -out discoverer.mock_test.go . discoverer:discovererMock
type discoverer interface {
	Discover(ctx context.Context)
	HasServerFeature(feature string) bool
	Reset()
}

//go:generate moq -out pinger.mock_test.go . pinger:pingerMock
type pinger interface {
	Ping(ctx context.Context, to string) (time.Duration, error)
}

//go:generate moq -out module.mock_test.go . clientModule:moduleMock
type clientModule interface {
	module.Module
}

//go:generate moq -out filter.mock_test.go . elementFilter:filterMock
type elementFilter interface {
	module.Filter
}
