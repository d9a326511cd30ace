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

package command

import (
	"fmt"
	"io"
	"time"

	"github.com/ortuman/jackal-client/pkg/module/xep0092"
	"github.com/ortuman/jackal-client/pkg/util/dns"
	"gopkg.in/yaml.v2"
)

type printer interface {
	Ping(to string, rtt time.Duration)
	Send(to string)
	Resolve(domain string, ep *dns.Endpoint, res *dns.Result)
	SoftwareVersion(to string, sv *xep0092.SoftwareVersion)
}

type simplePrinter struct {
	w io.Writer
}

func (p *simplePrinter) Ping(to string, rtt time.Duration) {
	_, _ = fmt.Fprintf(p.w, "Pong from %s: time=%v\n", to, rtt)
}

func (p *simplePrinter) Send(to string) {
	_, _ = fmt.Fprintf(p.w, "Message sent to %s\n", to)
}

func (p *simplePrinter) Resolve(domain string, ep *dns.Endpoint, res *dns.Result) {
	_, _ = fmt.Fprintf(p.w, "%s: %s\n", domain, formatEndpoint(ep))
	if res == nil {
		return
	}
	for _, e := range res.Endpoints {
		_, _ = fmt.Fprintf(p.w, "  %s priority=%d weight=%d\n", formatEndpoint(e), e.Priority, e.Weight)
	}
}

func (p *simplePrinter) SoftwareVersion(to string, sv *xep0092.SoftwareVersion) {
	if len(sv.OS) > 0 {
		_, _ = fmt.Fprintf(p.w, "%s: %s %s (%s)\n", to, sv.Name, sv.Version, sv.OS)
		return
	}
	_, _ = fmt.Fprintf(p.w, "%s: %s %s\n", to, sv.Name, sv.Version)
}

type yamlPrinter struct {
	w io.Writer
}

func (p *yamlPrinter) Ping(to string, rtt time.Duration) {
	p.print(struct {
		To  string `yaml:"to"`
		RTT string `yaml:"rtt"`
	}{to, rtt.String()})
}

func (p *yamlPrinter) Send(to string) {
	p.print(struct {
		To   string `yaml:"to"`
		Sent bool   `yaml:"sent"`
	}{to, true})
}

func (p *yamlPrinter) Resolve(domain string, ep *dns.Endpoint, res *dns.Result) {
	p.print(struct {
		Domain   string        `yaml:"domain"`
		Endpoint *dns.Endpoint `yaml:"endpoint"`
		Result   *dns.Result   `yaml:"result,omitempty"`
	}{domain, ep, res})
}

func (p *yamlPrinter) SoftwareVersion(to string, sv *xep0092.SoftwareVersion) {
	p.print(struct {
		To      string                   `yaml:"to"`
		Version *xep0092.SoftwareVersion `yaml:"version"`
	}{to, sv})
}

func (p *yamlPrinter) print(v interface{}) {
	b, err := yaml.Marshal(v)
	if err != nil {
		ExitWithError(ExitError, err)
	}
	_, _ = p.w.Write(b)
}

func formatEndpoint(ep *dns.Endpoint) string {
	if ep == nil {
		return "no valid endpoint"
	}
	if ep.DirectTLS {
		return fmt.Sprintf("%s:%d (direct TLS)", ep.Host, ep.Port)
	}
	return fmt.Sprintf("%s:%d", ep.Host, ep.Port)
}
