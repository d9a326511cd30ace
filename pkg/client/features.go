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
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-client/pkg/auth"
)

const (
	tlsNamespace         = "urn:ietf:params:xml:ns:xmpp-tls"
	compressFeatureNS    = "http://jabber.org/features/compress"
	compressNamespace    = "http://jabber.org/protocol/compress"
	bindNamespace        = "urn:ietf:params:xml:ns:xmpp-bind"
	sessionNamespace     = "urn:ietf:params:xml:ns:xmpp-session"
	smNamespace          = "urn:xmpp:sm:3"
	streamNamespace      = "http://etherx.jabber.org/streams"
	zlibCompressMethod   = "zlib"
	streamFeaturesPrefix = "stream:features"
)

// streamFeatures is an immutable snapshot of the last received stream features element.
type streamFeatures struct {
	elem stravaganza.Element
}

func newStreamFeatures(elem stravaganza.Element) *streamFeatures {
	return &streamFeatures{elem: elem}
}

func isStreamFeatures(elem stravaganza.Element) bool {
	if elem.Name() == streamFeaturesPrefix {
		return true
	}
	return elem.Name() == "features" && elem.Attribute(stravaganza.Namespace) == streamNamespace
}

func (f *streamFeatures) child(name, ns string) stravaganza.Element {
	if f == nil || f.elem == nil {
		return nil
	}
	return f.elem.ChildNamespace(name, ns)
}

func (f *streamFeatures) startTLS() bool {
	return f.child("starttls", tlsNamespace) != nil
}

func (f *streamFeatures) compression(method string) bool {
	c := f.child("compression", compressFeatureNS)
	if c == nil {
		return false
	}
	for _, m := range c.Children("method") {
		if m.Text() == method {
			return true
		}
	}
	return false
}

func (f *streamFeatures) mechanisms() []string {
	return auth.OfferedMechanisms(f.child("mechanisms", auth.Namespace))
}

func (f *streamFeatures) bind() bool {
	return f.child("bind", bindNamespace) != nil
}

// sessionRequired tells whether the server requires legacy session establishment.
func (f *streamFeatures) sessionRequired() bool {
	s := f.child("session", sessionNamespace)
	return s != nil && s.Child("optional") == nil
}

func (f *streamFeatures) streamManagement() bool {
	return f.child("sm", smNamespace) != nil
}
