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

import "time"

// CertificateConfig contains server certificate validation configuration.
type CertificateConfig struct {
	// Fingerprint pins the server leaf certificate by its SHA-256 or SHA-1 hex fingerprint.
	Fingerprint string `fig:"fingerprint"`

	// Insecure disables server certificate validation.
	Insecure bool `fig:"insecure"`
}

// Config contains connector configuration.
type Config struct {
	// Domain is the XMPP server domain.
	Domain string `fig:"domain"`

	// Host overrides SRV resolution when set.
	Host string `fig:"host"`

	// Port is used along with Host. Defaults to 5222.
	Port int `fig:"port"`

	// DirectTLS tells whether Host expects TLS from the first byte.
	DirectTLS bool `fig:"direct_tls"`

	// WebSocketURL selects RFC 7395 transport when set.
	WebSocketURL string `fig:"websocket_url"`

	// Timeout bounds connection establishment.
	Timeout time.Duration `fig:"timeout" default:"30s"`

	// ReadTimeout closes the connection after a period of read inactivity. Zero disables it.
	ReadTimeout time.Duration `fig:"read_timeout"`

	// WriteTimeout bounds every write operation.
	WriteTimeout time.Duration `fig:"write_timeout" default:"10s"`

	// MaxStanzaSize is the maximum accepted incoming stanza size.
	MaxStanzaSize int `fig:"max_stanza_size" default:"262144"`

	// DisableTLS prevents STARTTLS negotiation.
	DisableTLS bool `fig:"disable_tls"`

	// DisableCompression prevents stream compression negotiation.
	DisableCompression bool `fig:"disable_compression"`

	// CompressionLevel is the zlib level used once compression is negotiated.
	CompressionLevel string `fig:"compression_level" default:"default"`

	// UseSeeOtherHost announces the account address in the stream header so that
	// the server may redirect the client before authentication.
	UseSeeOtherHost bool `fig:"use_see_other_host"`

	// Certificate contains server certificate validation configuration.
	Certificate CertificateConfig `fig:"certificate"`

	// WriteRate limits outgoing bytes per second. Zero means unlimited.
	WriteRate int `fig:"write_rate"`
}
