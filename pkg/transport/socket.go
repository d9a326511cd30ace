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
	"bufio"
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/ortuman/jackal-client/pkg/transport/compress"
	"github.com/ortuman/jackal-client/pkg/util/ratelimiter"
	"golang.org/x/time/rate"
)

const writeBuffSize = 4096

type readWriter struct {
	io.Reader
	io.Writer
}

type socketTransport struct {
	connMu     sync.RWMutex
	conn       net.Conn
	lw         *ratelimiter.Writer
	bw         *bufio.Writer
	rw         io.ReadWriter
	tlsSt      tlsStateQueryable
	secured    bool
	compressed bool
}

// NewSocketTransport creates a socket class stream transport.
// A non-zero readTimeout makes reads fail whenever the peer stays silent for longer than that.
func NewSocketTransport(conn net.Conn, readTimeout time.Duration) Transport {
	s := &socketTransport{
		conn: newDeadlineConn(conn, readTimeout),
	}
	if tlsConn, ok := conn.(*tls.Conn); ok {
		s.tlsSt = tlsConn
		s.secured = true
	}
	s.lw = ratelimiter.NewWriter(s.conn)
	s.bw = bufio.NewWriterSize(s.lw, writeBuffSize)
	s.rw = &readWriter{s.conn, s.bw}
	return s
}

func (s *socketTransport) Read(p []byte) (n int, err error) {
	return s.rw.Read(p)
}

func (s *socketTransport) Write(p []byte) (n int, err error) {
	return s.rw.Write(p)
}

func (s *socketTransport) WriteString(str string) (int, error) {
	n, err := io.Copy(s.rw, strings.NewReader(str))
	return int(n), err
}

func (s *socketTransport) Close() error {
	s.connMu.RLock()
	conn := s.conn
	s.connMu.RUnlock()
	return conn.Close()
}

func (s *socketTransport) Type() Type {
	return Socket
}

func (s *socketTransport) Flush() error {
	return s.bw.Flush()
}

func (s *socketTransport) SetWriteDeadline(d time.Time) error {
	return s.conn.SetWriteDeadline(d)
}

func (s *socketTransport) SetWriteRateLimiter(wLim *rate.Limiter) {
	s.lw.SetWriteRateLimiter(wLim)
}

func (s *socketTransport) StartTLS(ctx context.Context, cfg *tls.Config) error {
	if s.secured {
		return nil
	}
	tlsConn := tls.Client(s.conn, cfg)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return err
	}
	// Close may be invoked from another goroutine while handshaking
	s.connMu.Lock()
	s.conn = tlsConn
	s.connMu.Unlock()

	s.tlsSt = tlsConn
	s.secured = true

	lw := ratelimiter.NewWriter(s.conn)
	if wLim := s.lw.WriteRateLimiter(); wLim != nil {
		lw.SetWriteRateLimiter(wLim)
	}
	s.lw = lw
	s.bw = bufio.NewWriterSize(s.lw, writeBuffSize)
	s.rw = &readWriter{s.conn, s.bw}
	return nil
}

func (s *socketTransport) EnableCompression(level compress.Level) error {
	if s.compressed {
		return nil
	}
	s.rw = compress.NewZlibCompressor(s.rw, s.rw, level)
	s.compressed = true
	return nil
}

func (s *socketTransport) IsSecured() bool {
	return s.secured
}

func (s *socketTransport) IsCompressed() bool {
	return s.compressed
}

func (s *socketTransport) ChannelBindingBytes(mechanism ChannelBindingMechanism) []byte {
	if s.tlsSt == nil {
		return nil
	}
	return channelBindingBytes(s.tlsSt, mechanism)
}

func (s *socketTransport) PeerCertificates() []*x509.Certificate {
	if s.tlsSt == nil {
		return nil
	}
	st := s.tlsSt.ConnectionState()
	return st.PeerCertificates
}
