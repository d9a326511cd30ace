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
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ortuman/jackal-client/pkg/transport/compress"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const xmppSubprotocol = "xmpp"

// WebSocketConn represents a websocket connection interface.
type WebSocketConn interface {
	NextReader() (messageType int, r io.Reader, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
	UnderlyingConn() net.Conn
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

type webSocketTransport struct {
	conn      WebSocketConn
	rdTimeout time.Duration
	r         io.Reader
	wBuf      bytes.Buffer
}

// DialWebSocket opens an RFC 7395 websocket connection against urlStr.
func DialWebSocket(ctx context.Context, urlStr string, tlsCfg *tls.Config, readTimeout time.Duration) (Transport, error) {
	d := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 45 * time.Second,
		TLSClientConfig:  tlsCfg,
		Subprotocols:     []string{xmppSubprotocol},
	}
	conn, _, err := d.DialContext(ctx, urlStr, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: failed to dial %s", urlStr)
	}
	if conn.Subprotocol() != xmppSubprotocol {
		_ = conn.Close()
		return nil, errors.Errorf("transport: %s does not speak xmpp subprotocol", urlStr)
	}
	return NewWebSocketTransport(conn, readTimeout), nil
}

// NewWebSocketTransport creates a websocket class stream transport.
func NewWebSocketTransport(conn WebSocketConn, readTimeout time.Duration) Transport {
	return &webSocketTransport{
		conn:      conn,
		rdTimeout: readTimeout,
	}
}

func (w *webSocketTransport) Read(p []byte) (int, error) {
	for {
		if w.r == nil {
			if w.rdTimeout > 0 {
				_ = w.conn.SetReadDeadline(time.Now().Add(w.rdTimeout))
			}
			_, r, err := w.conn.NextReader()
			if err != nil {
				return 0, err
			}
			w.r = r
		}
		n, err := w.r.Read(p)
		if err == io.EOF {
			w.r = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (w *webSocketTransport) Write(p []byte) (int, error) {
	return w.wBuf.Write(p)
}

func (w *webSocketTransport) WriteString(str string) (int, error) {
	return w.wBuf.WriteString(str)
}

// Flush sends buffered data as a single text message, since every
// websocket message must carry exactly one complete XML element.
func (w *webSocketTransport) Flush() error {
	if w.wBuf.Len() == 0 {
		return nil
	}
	defer w.wBuf.Reset()
	return w.conn.WriteMessage(websocket.TextMessage, w.wBuf.Bytes())
}

func (w *webSocketTransport) Close() error {
	return w.conn.Close()
}

func (w *webSocketTransport) Type() Type {
	return WebSocket
}

func (w *webSocketTransport) SetWriteDeadline(d time.Time) error {
	return w.conn.SetWriteDeadline(d)
}

func (w *webSocketTransport) SetWriteRateLimiter(_ *rate.Limiter) {}

func (w *webSocketTransport) StartTLS(_ context.Context, _ *tls.Config) error {
	return ErrNotSupported
}

func (w *webSocketTransport) EnableCompression(_ compress.Level) error {
	return ErrNotSupported
}

func (w *webSocketTransport) IsSecured() bool {
	_, ok := w.conn.UnderlyingConn().(*tls.Conn)
	return ok
}

func (w *webSocketTransport) IsCompressed() bool {
	return false
}

func (w *webSocketTransport) ChannelBindingBytes(mechanism ChannelBindingMechanism) []byte {
	conn, ok := w.conn.UnderlyingConn().(tlsStateQueryable)
	if !ok {
		return nil
	}
	return channelBindingBytes(conn, mechanism)
}

func (w *webSocketTransport) PeerCertificates() []*x509.Certificate {
	conn, ok := w.conn.UnderlyingConn().(tlsStateQueryable)
	if !ok {
		return nil
	}
	st := conn.ConnectionState()
	return st.PeerCertificates
}
