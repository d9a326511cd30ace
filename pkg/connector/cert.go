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

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	errNoPeerCertificates  = errors.New("connector: no peer certificates")
	errFingerprintMismatch = errors.New("connector: certificate fingerprint mismatch")
)

// CertificateValidator validates the certificate chain presented by the server.
type CertificateValidator interface {
	Validate(domain string, certs []*x509.Certificate) error
}

// ValidatorFunc is an adapter to allow the use of ordinary functions as certificate validators.
type ValidatorFunc func(domain string, certs []*x509.Certificate) error

// Validate satisfies CertificateValidator interface.
func (f ValidatorFunc) Validate(domain string, certs []*x509.Certificate) error {
	return f(domain, certs)
}

// DefaultValidator verifies the certificate chain against a set of trusted roots and the server domain.
type DefaultValidator struct {
	// Roots is the set of trusted root certificates. System roots are used if nil.
	Roots *x509.CertPool
}

// Validate satisfies CertificateValidator interface.
func (v DefaultValidator) Validate(domain string, certs []*x509.Certificate) error {
	if len(certs) == 0 {
		return errNoPeerCertificates
	}
	intermediates := x509.NewCertPool()
	for _, cert := range certs[1:] {
		intermediates.AddCert(cert)
	}
	_, err := certs[0].Verify(x509.VerifyOptions{
		Roots:         v.Roots,
		Intermediates: intermediates,
		DNSName:       domain,
	})
	return err
}

// FingerprintValidator accepts only a leaf certificate matching a pinned fingerprint.
// Both SHA-256 and SHA-1 hex encoded fingerprints are accepted, optionally colon separated.
type FingerprintValidator struct {
	Fingerprint string
}

// Validate satisfies CertificateValidator interface.
func (v FingerprintValidator) Validate(_ string, certs []*x509.Certificate) error {
	if len(certs) == 0 {
		return errNoPeerCertificates
	}
	expected, err := hex.DecodeString(strings.ReplaceAll(strings.TrimSpace(v.Fingerprint), ":", ""))
	if err != nil {
		return fmt.Errorf("connector: invalid fingerprint: %w", err)
	}
	var actual []byte
	switch len(expected) {
	case sha256.Size:
		sum := sha256.Sum256(certs[0].Raw)
		actual = sum[:]
	case sha1.Size:
		sum := sha1.Sum(certs[0].Raw)
		actual = sum[:]
	default:
		return fmt.Errorf("connector: unsupported fingerprint length: %d", len(expected))
	}
	if subtle.ConstantTimeCompare(expected, actual) != 1 {
		return errFingerprintMismatch
	}
	return nil
}

// certificateError wraps a certificate validation failure along with the offending chain.
type certificateError struct {
	certs []*x509.Certificate
	err   error
}

func (e *certificateError) Error() string {
	return fmt.Sprintf("connector: certificate validation failed: %v", e.err)
}

func (e *certificateError) Unwrap() error {
	return e.err
}

func newValidator(cfg CertificateConfig) CertificateValidator {
	switch {
	case cfg.Insecure:
		return ValidatorFunc(func(_ string, _ []*x509.Certificate) error { return nil })
	case len(cfg.Fingerprint) > 0:
		return FingerprintValidator{Fingerprint: cfg.Fingerprint}
	default:
		return DefaultValidator{}
	}
}
