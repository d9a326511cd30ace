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
	"time"

	"github.com/ortuman/jackal-client/pkg/connector"
	"github.com/ortuman/jackal-client/pkg/module/xep0030"
	"github.com/ortuman/jackal-client/pkg/module/xep0092"
	"github.com/ortuman/jackal-client/pkg/module/xep0198"
)

// AccountConfig contains account configuration.
type AccountConfig struct {
	// JID is the account address. A domain-only address selects anonymous login.
	JID string `fig:"jid"`

	// Password is the account password.
	Password string `fig:"password"`

	// Resource is the preferred resource. Empty lets the server assign one.
	Resource string `fig:"resource"`

	// Mechanisms restricts the SASL mechanisms the client is allowed to use.
	Mechanisms []string `fig:"mechanisms"`
}

// SessionConfig contains session configuration.
type SessionConfig struct {
	// RequestTimeout bounds every iq request.
	RequestTimeout time.Duration `fig:"request_timeout" default:"30s"`

	// KeepAliveInterval is the period between keepalives. Zero disables them.
	KeepAliveInterval time.Duration `fig:"keepalive_interval" default:"180s"`
}

// Config contains client configuration.
type Config struct {
	Account          AccountConfig    `fig:"account"`
	Connection       connector.Config `fig:"connection"`
	Session          SessionConfig    `fig:"session"`
	StreamManagement xep0198.Config   `fig:"stream_management"`
	Disco            xep0030.Config   `fig:"disco"`
	Version          xep0092.Config   `fig:"version"`
}
