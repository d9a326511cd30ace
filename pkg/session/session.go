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

package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	xmppparser "github.com/ortuman/jackal-client/pkg/parser"
	"github.com/ortuman/jackal-client/pkg/transport"
)

const envLogStanzas = "JACKAL_LOG_STANZAS"

var logStanzas bool

func init() {
	logStanzas = os.Getenv(envLogStanzas) == "on"
}

const (
	jabberClientNamespace = "jabber:client"
	streamNamespace       = "http://etherx.jabber.org/streams"
	framingNamespace      = "urn:ietf:params:xml:ns:xmpp-framing"

	streamElementName = "stream:stream"
	openElementName   = "open"
	closeElementName  = "close"

	xmlLangAttribute = "xml:lang"
)

var (
	errAlreadyOpened = errors.New("session: already opened")
	errAlreadyClosed = errors.New("session: already closed")
)

// ErrInvalidStreamHeader will be returned by Receive when the first element read from
// the peer is not a valid stream header.
var ErrInvalidStreamHeader = errors.New("session: invalid stream header")

// Config structure is used to establish XMPP session configuration.
type Config struct {
	// MaxStanzaSize defines the maximum stanza size that can be read from the session transport.
	MaxStanzaSize int

	// Domain is the server domain the stream is opened to.
	Domain string

	// From optionally announces the bare JID of the initiating entity.
	From string

	// Lang is the default stream language.
	Lang string
}

// Session represents the client side of an XMPP stream.
type Session struct {
	id     string
	cfg    Config
	tr     transport.Transport
	pr     xmppParser
	logger kitlog.Logger

	streamID string
	opened   bool
	started  bool
}

// New creates a new session instance.
func New(identifier string, tr transport.Transport, cfg Config, logger kitlog.Logger) *Session {
	return &Session{
		id:     identifier,
		cfg:    cfg,
		tr:     tr,
		pr:     getParser(tr, cfg.MaxStanzaSize),
		logger: logger,
	}
}

// StreamID returns the stream identifier assigned by the server.
func (ss *Session) StreamID() string {
	return ss.streamID
}

// Transport returns the session underlying transport.
func (ss *Session) Transport() transport.Transport {
	return ss.tr
}

// IsOpened tells whether the stream header has already been sent.
func (ss *Session) IsOpened() bool {
	return ss.opened
}

// OpenStream sends the stream header using the framing required by the transport.
func (ss *Session) OpenStream(ctx context.Context) error {
	if ss.opened {
		return errAlreadyOpened
	}
	var b *stravaganza.Builder

	buf := &strings.Builder{}
	includeClosing := false

	switch ss.tr.Type() {
	case transport.WebSocket:
		b = stravaganza.NewBuilder(openElementName).
			WithAttribute(stravaganza.Namespace, framingNamespace)
		includeClosing = true

	default:
		b = stravaganza.NewBuilder(streamElementName).
			WithAttribute(stravaganza.Namespace, jabberClientNamespace).
			WithAttribute(stravaganza.StreamNamespace, streamNamespace)
		buf.WriteString(`<?xml version='1.0'?>`)
	}
	b.WithAttribute(stravaganza.Version, "1.0")
	b.WithAttribute(stravaganza.To, ss.cfg.Domain)
	if len(ss.cfg.From) > 0 {
		b.WithAttribute(stravaganza.From, ss.cfg.From)
	}
	if len(ss.cfg.Lang) > 0 {
		b.WithAttribute(xmlLangAttribute, ss.cfg.Lang)
	}
	if err := b.Build().ToXML(buf, includeClosing); err != nil {
		return err
	}
	if err := ss.sendString(ctx, buf.String()); err != nil {
		return err
	}
	ss.opened = true
	return nil
}

// Close sends the stream closing payload.
func (ss *Session) Close(ctx context.Context) error {
	if !ss.opened {
		return errAlreadyClosed
	}
	var outStr string

	switch ss.tr.Type() {
	case transport.WebSocket:
		outStr = fmt.Sprintf(`<close xmlns='%s'/>`, framingNamespace)
	default:
		outStr = "</stream:stream>"
	}
	if err := ss.sendString(ctx, outStr); err != nil {
		return err
	}
	ss.opened = false
	ss.started = false
	return nil
}

// Send writes an XML element to the underlying session transport.
func (ss *Session) Send(ctx context.Context, elem stravaganza.Element) error {
	if logStanzas {
		level.Debug(ss.logger).Log("msg", fmt.Sprintf("SND(%s): %v", ss.id, elem))
	}
	ss.setWriteDeadline(ctx)
	if err := elem.ToXML(ss.tr, true); err != nil {
		return err
	}
	return ss.tr.Flush()
}

// SendKeepAlive writes a single whitespace keepalive.
// WebSocket framing disallows inter-element whitespace, so transport.ErrNotSupported is returned there.
func (ss *Session) SendKeepAlive(ctx context.Context) error {
	if ss.tr.Type() == transport.WebSocket {
		return transport.ErrNotSupported
	}
	return ss.sendString(ctx, " ")
}

// Receive blocks until next incoming element is read.
// The first returned element of every stream is its header.
func (ss *Session) Receive() (stravaganza.Element, error) {
	elem, err := ss.pr.Parse()
	if err != nil {
		return nil, err
	}
	if logStanzas {
		level.Debug(ss.logger).Log("msg", fmt.Sprintf("RCV(%s): %v", ss.id, elem))
	}
	if !ss.started {
		if err := ss.validateStreamElement(elem); err != nil {
			return nil, err
		}
		ss.streamID = elem.Attribute(stravaganza.ID)
		ss.started = true
		return elem, nil
	}
	if ss.tr.Type() == transport.WebSocket && elem.Name() == closeElementName {
		return nil, xmppparser.ErrStreamClosedByPeer
	}
	return elem, nil
}

// Reset drops stream state and rebuilds the parser on top of tr.
func (ss *Session) Reset(tr transport.Transport) {
	ss.tr = tr
	ss.pr = getParser(tr, ss.cfg.MaxStanzaSize)
	ss.streamID = ""
	ss.opened = false
	ss.started = false
}

func (ss *Session) sendString(ctx context.Context, str string) error {
	if logStanzas {
		level.Debug(ss.logger).Log("msg", fmt.Sprintf("SND(%s): %v", ss.id, str))
	}
	ss.setWriteDeadline(ctx)
	_, err := ss.tr.WriteString(str)
	if err != nil {
		return err
	}
	return ss.tr.Flush()
}

func (ss *Session) validateStreamElement(elem stravaganza.Element) error {
	switch ss.tr.Type() {
	case transport.WebSocket:
		if elem.Name() != openElementName || elem.Attribute(stravaganza.Namespace) != framingNamespace {
			return ErrInvalidStreamHeader
		}
	default:
		if elem.Name() != streamElementName {
			return ErrInvalidStreamHeader
		}
		ns := elem.Attribute(stravaganza.Namespace)
		streamNs := elem.Attribute(stravaganza.StreamNamespace)
		if ns != jabberClientNamespace || streamNs != streamNamespace {
			return ErrInvalidStreamHeader
		}
	}
	return nil
}

func (ss *Session) setWriteDeadline(ctx context.Context) {
	d, ok := ctx.Deadline()
	if !ok {
		return
	}
	_ = ss.tr.SetWriteDeadline(d)
}

func getParser(tr transport.Transport, maxStanzaSize int) *xmppparser.Parser {
	var pm xmppparser.ParsingMode
	switch tr.Type() {
	case transport.Socket:
		pm = xmppparser.SocketStream
	}
	return xmppparser.New(tr, pm, maxStanzaSize)
}
