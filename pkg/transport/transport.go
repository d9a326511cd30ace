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

package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"time"

	"github.com/ortuman/jackal-client/pkg/transport/compress"
	"golang.org/x/time/rate"
)

// Type represents a stream transport type.
type Type int

const (
	// Socket represents a socket transport type.
	Socket Type = iota + 1

	// WebSocket represents a websocket transport type.
	WebSocket
)

// String returns TransportType string representation.
func (tt Type) String() string {
	switch tt {
	case Socket:
		return "socket"
	case WebSocket:
		return "websocket"
	}
	return ""
}

// ChannelBindingMechanism represents a scram channel binding mechanism.
type ChannelBindingMechanism int

const (
	// TLSUnique represents 'tls-unique' channel binding mechanism.
	TLSUnique ChannelBindingMechanism = iota

	// TLSExporter represents 'tls-exporter' channel binding mechanism.
	TLSExporter
)

// String returns the SASL channel binding type name.
func (m ChannelBindingMechanism) String() string {
	switch m {
	case TLSUnique:
		return "tls-unique"
	case TLSExporter:
		return "tls-exporter"
	}
	return ""
}

const tlsExporterLabel = "EXPORTER-Channel-Binding"

// ErrNotSupported will be returned by those transport operations not supported by the underlying transport type.
var ErrNotSupported = errors.New("transport: operation not supported")

// Transport represents a stream transport mechanism.
type Transport interface {
	io.ReadWriteCloser

	// Type returns transport type value.
	Type() Type

	// WriteString writes a raw string to the transport.
	WriteString(s string) (n int, err error)

	// Flush writes any buffered data to the underlying io.Writer.
	Flush() error

	// SetWriteDeadline sets the deadline for future write calls.
	SetWriteDeadline(d time.Time) error

	// SetWriteRateLimiter sets transport write rate limiter.
	SetWriteRateLimiter(wLim *rate.Limiter)

	// StartTLS secures the transport acting as TLS client and performs the handshake.
	StartTLS(ctx context.Context, cfg *tls.Config) error

	// EnableCompression activates a compression mechanism on the transport.
	EnableCompression(compress.Level) error

	// IsSecured tells whether the transport is running over TLS.
	IsSecured() bool

	// IsCompressed tells whether stream compression has been enabled.
	IsCompressed() bool

	// ChannelBindingBytes returns current transport channel binding bytes.
	ChannelBindingBytes(ChannelBindingMechanism) []byte

	// PeerCertificates returns the certificate chain presented by remote peer.
	PeerCertificates() []*x509.Certificate
}

type tlsStateQueryable interface {
	ConnectionState() tls.ConnectionState
}

func channelBindingBytes(conn tlsStateQueryable, mechanism ChannelBindingMechanism) []byte {
	connSt := conn.ConnectionState()
	switch mechanism {
	case TLSUnique:
		if connSt.Version >= tls.VersionTLS13 {
			return nil
		}
		return connSt.TLSUnique
	case TLSExporter:
		if connSt.Version < tls.VersionTLS13 {
			return nil
		}
		b, err := connSt.ExportKeyingMaterial(tlsExporterLabel, nil, 32)
		if err != nil {
			return nil
		}
		return b
	}
	return nil
}
