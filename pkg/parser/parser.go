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

package xmppparser

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/jackal-xmpp/stravaganza/v2"
)

const rootElementIndex = -1

const (
	streamName = "stream"

	xmlProcInstTarget = "xml"

	maxDeclarationRestarts = 4
)

// ParsingMode defines the way in which special parsed element
// should be considered or not according to the reader nature.
type ParsingMode int

const (
	// DefaultMode treats incoming elements as provided from raw byte reader.
	DefaultMode = ParsingMode(iota)

	// SocketStream treats incoming elements as provided from a socket transport.
	SocketStream
)

// ErrTooLargeStanza will be returned Parse when the size of the incoming stanza is too large.
var ErrTooLargeStanza = errors.New("parser: too large stanza")

// ErrStreamClosedByPeer will be returned by Parse when stream closed element is parsed.
var ErrStreamClosedByPeer = errors.New("parser: stream closed by peer")

// ErrXMLDeclaration will be returned by Parse when too many embedded XML declarations
// were found in the middle of the stream.
var ErrXMLDeclaration = errors.New("parser: unexpected xml declaration")

// ErrUnexpectedEnd will be returned by Parse when an end element doesn't match its start element.
var ErrUnexpectedEnd = errors.New("parser: unexpected end element")

// Parser reads a continuous XML stream and returns its top level elements one at a time.
type Parser struct {
	mode              ParsingMode
	dec               *xml.Decoder
	nextElement       stravaganza.Element
	stack             []*stravaganza.Builder
	index             int
	inElement         bool
	started           bool
	restarts          int
	rootElementOffset int64
	maxStanzaSize     int64
}

// New creates an empty Parser instance.
func New(reader io.Reader, mode ParsingMode, maxStanzaSize int) *Parser {
	return &Parser{
		mode:          mode,
		dec:           xml.NewDecoder(bufio.NewReader(reader)),
		index:         rootElementIndex,
		maxStanzaSize: int64(maxStanzaSize),
	}
}

// Restarts returns the number of embedded XML declarations skipped so far.
func (p *Parser) Restarts() int {
	return p.restarts
}

// Parse blocks until next XML element is available from reader.
func (p *Parser) Parse() (stravaganza.Element, error) {
	for {
		offset := p.dec.InputOffset()
		t, err := p.dec.RawToken()
		if err != nil {
			return nil, err
		}
		if p.index != rootElementIndex && p.dec.InputOffset()-p.rootElementOffset > p.maxStanzaSize {
			return nil, ErrTooLargeStanza
		}
		switch t1 := t.(type) {
		case xml.ProcInst:
			if t1.Target != xmlProcInstTarget || !p.started {
				break
			}
			if err := p.restart(); err != nil {
				return nil, err
			}

		case xml.CharData:
			if p.inElement {
				p.setElementText(t1)
			}

		case xml.StartElement:
			p.startElement(t1, offset)
			if p.mode == SocketStream && t1.Name.Local == streamName && t1.Name.Space == streamName {
				if err := p.closeElement(xmlName(t1.Name.Space, t1.Name.Local)); err != nil {
					return nil, err
				}
				return p.popElement(), nil
			}

		case xml.EndElement:
			if t1.Name.Local == streamName && t1.Name.Space == streamName {
				return nil, ErrStreamClosedByPeer
			}
			if err := p.endElement(t1); err != nil {
				return nil, err
			}
			if p.index == rootElementIndex {
				return p.popElement(), nil
			}
		}
	}
}

// restart discards any partially parsed element and resumes from the current offset.
func (p *Parser) restart() error {
	p.restarts++
	if p.restarts > maxDeclarationRestarts {
		return ErrXMLDeclaration
	}
	p.stack = nil
	p.index = rootElementIndex
	p.inElement = false
	p.rootElementOffset = 0
	return nil
}

func (p *Parser) startElement(t xml.StartElement, offset int64) {
	name := xmlName(t.Name.Space, t.Name.Local)

	var attrs []stravaganza.Attribute
	for _, a := range t.Attr {
		name := xmlName(a.Name.Space, a.Name.Local)
		attrs = append(attrs, stravaganza.Attribute{Label: name, Value: a.Value})
	}
	builder := stravaganza.NewBuilder(name).WithAttributes(attrs...)
	p.stack = append(p.stack, builder)

	if p.index == rootElementIndex {
		p.rootElementOffset = offset
	}
	p.index = len(p.stack) - 1
	p.inElement = true
	p.started = true
}

func (p *Parser) setElementText(t xml.CharData) {
	p.stack[p.index] = p.stack[p.index].WithText(string(t))
}

func (p *Parser) endElement(t xml.EndElement) error {
	return p.closeElement(xmlName(t.Name.Space, t.Name.Local))
}

func (p *Parser) closeElement(name string) error {
	if p.index == rootElementIndex {
		return errUnexpectedEnd(name)
	}
	builder := p.stack[p.index]
	p.stack = p.stack[:p.index]

	element := builder.Build()

	if name != element.Name() {
		return errUnexpectedEnd(name)
	}
	p.index = len(p.stack) - 1
	if p.index == rootElementIndex {
		p.nextElement = element
		p.rootElementOffset = 0
	} else {
		p.stack[p.index] = p.stack[p.index].WithChild(element)
	}
	p.inElement = false
	return nil
}

func (p *Parser) popElement() stravaganza.Element {
	elem := p.nextElement
	p.nextElement = nil
	return elem
}

func xmlName(space, local string) string {
	if len(space) > 0 {
		return fmt.Sprintf("%s:%s", space, local)
	}
	return local
}

func errUnexpectedEnd(name string) error {
	return fmt.Errorf("%w </%s>", ErrUnexpectedEnd, name)
}
