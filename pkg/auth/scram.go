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

package auth

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ortuman/jackal-client/pkg/transport"
	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/sha3"
	"golang.org/x/text/secure/precis"
)

// ScramType represents a scram autheticator class
type ScramType int

const (
	// ScramSHA1 represents SCRAM-SHA-1 authentication method.
	ScramSHA1 ScramType = iota

	// ScramSHA256 represents SCRAM-SHA-256 authentication method.
	ScramSHA256

	// ScramSHA512 represents SCRAM-SHA-512 authentication method.
	ScramSHA512

	// ScramSHA3512 represents SCRAM-SHA3-512 authentication method.
	ScramSHA3512
)

type scramState int

const (
	startScramState scramState = iota
	firstSentScramState
	finalSentScramState
	verifiedScramState
)

// ChannelBinder returns the channel binding data of the underlying TLS channel, or nil if not available.
type ChannelBinder func(mechanism transport.ChannelBindingMechanism) []byte

// Scram represents a client SCRAM mechanism.
type Scram struct {
	tp     ScramType
	usesCb bool
	h      func() hash.Hash
	creds  Credentials
	cb     ChannelBinder
	cache  *SaltedPasswordCache

	nonceFn func() string

	state           scramState
	gs2Header       string
	cbData          []byte
	cNonce          string
	clientFirstBare string
	authMessage     string
	saltedPassword  []byte
	cacheKey        uint64
	cacheHit        bool
}

// NewScram returns a new scram mechanism instance.
// cb may be nil when no TLS channel is available, and cache may be nil to disable salted password caching.
func NewScram(scramType ScramType, usesChannelBinding bool, creds Credentials, cb ChannelBinder, cache *SaltedPasswordCache) *Scram {
	s := &Scram{
		tp:      scramType,
		usesCb:  usesChannelBinding,
		creds:   creds,
		cb:      cb,
		cache:   cache,
		nonceFn: randomNonce,
	}
	switch s.tp {
	case ScramSHA1:
		s.h = sha1.New
	case ScramSHA256:
		s.h = sha256.New
	case ScramSHA512:
		s.h = sha512.New
	case ScramSHA3512:
		s.h = sha3.New512
	}
	return s
}

// Name returns mechanism name.
func (s *Scram) Name() string {
	return scramMechanismName(s.tp, s.usesCb)
}

// UsesChannelBinding returns whether or not scram mechanism binds to the TLS channel.
func (s *Scram) UsesChannelBinding() bool {
	return s.usesCb
}

// Start returns the client-first-message.
func (s *Scram) Start() ([]byte, error) {
	if s.state != startScramState {
		return nil, ErrUnexpectedElement
	}
	username, err := precis.UsernameCasePreserved.String(s.creds.Username)
	if err != nil {
		return nil, errors.Wrap(err, "auth: invalid username")
	}
	var authzID string
	if len(s.creds.AuthzID) > 0 {
		authzID = "a=" + escapeSaslName(s.creds.AuthzID)
	}
	switch {
	case s.usesCb:
		cbMech, cbData := s.channelBinding()
		if cbData == nil {
			return nil, errors.New("auth: channel binding not available")
		}
		s.gs2Header = fmt.Sprintf("p=%s,%s,", cbMech, authzID)
		s.cbData = cbData

	case s.cbSupported():
		// client supports channel binding but the server didn't offer a -PLUS variant
		s.gs2Header = "y," + authzID + ","

	default:
		s.gs2Header = "n," + authzID + ","
	}
	s.cNonce = s.nonceFn()
	s.clientFirstBare = fmt.Sprintf("n=%s,r=%s", escapeSaslName(username), s.cNonce)
	s.state = firstSentScramState

	return []byte(s.gs2Header + s.clientFirstBare), nil
}

// Challenge evaluates the server-first-message returning the client-final-message.
// A challenge received after the final message carries the server signature.
func (s *Scram) Challenge(challenge []byte) ([]byte, error) {
	switch s.state {
	case firstSentScramState:
		return s.handleServerFirst(string(challenge))
	case finalSentScramState:
		if err := s.Verify(challenge); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return nil, ErrUnexpectedElement
}

// Verify checks the server-final-message.
func (s *Scram) Verify(additionalData []byte) error {
	switch s.state {
	case verifiedScramState:
		if len(additionalData) == 0 {
			return nil
		}
		return ErrUnexpectedElement
	case finalSentScramState:
		break
	default:
		return ErrUnexpectedElement
	}
	if err := s.verifyServerFinal(string(additionalData)); err != nil {
		if s.cache != nil {
			s.cache.Delete(s.cacheKey)
		}
		return err
	}
	if s.cache != nil && !s.cacheHit {
		s.cache.Store(s.cacheKey, s.saltedPassword)
	}
	s.state = verifiedScramState
	return nil
}

// Reset resets scram internal state.
func (s *Scram) Reset() {
	s.state = startScramState
	s.gs2Header = ""
	s.cbData = nil
	s.cNonce = ""
	s.clientFirstBare = ""
	s.authMessage = ""
	s.saltedPassword = nil
	s.cacheKey = 0
	s.cacheHit = false
}

func (s *Scram) handleServerFirst(serverFirst string) ([]byte, error) {
	var nonce, saltB64, itStr string
	for i, attr := range strings.Split(serverFirst, ",") {
		key, val := splitAttribute(attr)
		switch {
		case i == 0 && key == "m":
			return nil, errors.Wrap(ErrBadChallenge, "unsupported mandatory extension")
		case key == "r":
			nonce = val
		case key == "s":
			saltB64 = val
		case key == "i":
			itStr = val
		}
	}
	if len(nonce) == 0 || len(saltB64) == 0 || len(itStr) == 0 {
		return nil, ErrBadChallenge
	}
	if !strings.HasPrefix(nonce, s.cNonce) || len(nonce) == len(s.cNonce) {
		return nil, ErrWrongNonce
	}
	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return nil, errors.Wrap(ErrBadChallenge, "invalid salt encoding")
	}
	iterations, err := strconv.Atoi(itStr)
	if err != nil || iterations <= 0 {
		return nil, errors.Wrap(ErrBadChallenge, "invalid iteration count")
	}
	password, err := precis.OpaqueString.String(s.creds.Password)
	if err != nil {
		return nil, errors.Wrap(err, "auth: invalid password")
	}
	s.cacheKey = saltedPasswordKey(s.Name(), s.creds.Username, password, salt, iterations)
	if s.cache != nil {
		s.saltedPassword, s.cacheHit = s.cache.Get(s.cacheKey)
	}
	if !s.cacheHit {
		s.saltedPassword = pbkdf2.Key([]byte(password), salt, iterations, s.h().Size(), s.h)
	}
	cbInput := bytes.NewBufferString(s.gs2Header)
	cbInput.Write(s.cbData)

	clientFinalBare := fmt.Sprintf("c=%s,r=%s", base64.StdEncoding.EncodeToString(cbInput.Bytes()), nonce)
	s.authMessage = s.clientFirstBare + "," + serverFirst + "," + clientFinalBare

	clientKey := s.hmac([]byte("Client Key"), s.saltedPassword)
	storedKey := s.hash(clientKey)
	clientSignature := s.hmac([]byte(s.authMessage), storedKey)

	clientProof := make([]byte, len(clientKey))
	for i := 0; i < len(clientKey); i++ {
		clientProof[i] = clientKey[i] ^ clientSignature[i]
	}
	s.state = finalSentScramState

	return []byte(clientFinalBare + ",p=" + base64.StdEncoding.EncodeToString(clientProof)), nil
}

func (s *Scram) verifyServerFinal(serverFinal string) error {
	key, val := splitAttribute(strings.SplitN(serverFinal, ",", 2)[0])
	switch key {
	case "e":
		return &SASLError{Reason: NotAuthorized, Text: val}
	case "v":
		break
	default:
		return ErrBadChallenge
	}
	v, err := base64.StdEncoding.DecodeString(val)
	if err != nil {
		return errors.Wrap(ErrBadChallenge, "invalid signature encoding")
	}
	serverKey := s.hmac([]byte("Server Key"), s.saltedPassword)
	serverSignature := s.hmac([]byte(s.authMessage), serverKey)
	if !hmac.Equal(v, serverSignature) {
		return ErrInvalidServerSignature
	}
	return nil
}

func (s *Scram) channelBinding() (transport.ChannelBindingMechanism, []byte) {
	if s.cb == nil {
		return 0, nil
	}
	for _, mech := range []transport.ChannelBindingMechanism{transport.TLSExporter, transport.TLSUnique} {
		if b := s.cb(mech); len(b) > 0 {
			return mech, b
		}
	}
	return 0, nil
}

func (s *Scram) cbSupported() bool {
	_, b := s.channelBinding()
	return b != nil
}

func (s *Scram) hmac(b []byte, key []byte) []byte {
	m := hmac.New(s.h, key)
	m.Write(b)
	return m.Sum(nil)
}

func (s *Scram) hash(b []byte) []byte {
	h := s.h()
	h.Write(b)
	return h.Sum(nil)
}

func scramMechanismName(tp ScramType, usesCb bool) string {
	var name string
	switch tp {
	case ScramSHA1:
		name = "SCRAM-SHA-1"
	case ScramSHA256:
		name = "SCRAM-SHA-256"
	case ScramSHA512:
		name = "SCRAM-SHA-512"
	case ScramSHA3512:
		name = "SCRAM-SHA3-512"
	default:
		return ""
	}
	if usesCb {
		return name + "-PLUS"
	}
	return name
}

func splitAttribute(attr string) (key, val string) {
	if len(attr) < 2 || attr[1] != '=' {
		return "", ""
	}
	return attr[:1], attr[2:]
}

func escapeSaslName(s string) string {
	return strings.NewReplacer("=", "=3D", ",", "=2C").Replace(s)
}

func randomNonce() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
