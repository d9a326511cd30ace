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

package xep0092

import (
	"context"
	"os/exec"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-client/pkg/module"
	"github.com/ortuman/jackal-client/pkg/stanza"
	xmpputil "github.com/ortuman/jackal-client/pkg/util/xmpp"
	"github.com/ortuman/jackal-client/pkg/version"
)

// Namespace is the software version protocol namespace.
const Namespace = "jabber:iq:version"

var getOSInfo = func(ctx context.Context) string {
	out, _ := exec.CommandContext(ctx, "uname", "-rs").Output()
	return strings.TrimSpace(string(out))
}

const (
	// ModuleName represents version module name.
	ModuleName = "version"

	// XEPNumber represents version XEP number.
	XEPNumber = "0092"
)

const defaultName = "jackalc"

// Config contains version module configuration options.
type Config struct {
	// Name is the software name announced to requesters.
	Name string `fig:"name" default:"jackalc"`

	// ShowOS tells whether OS info should be revealed or not.
	ShowOS bool `fig:"show_os"`
}

// SoftwareVersion describes the software an entity is running.
type SoftwareVersion struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	OS      string `yaml:"os,omitempty"`
}

// Version represents a version (XEP-0092) module type.
type Version struct {
	cl     module.Client
	cfg    Config
	osInfo string
	logger kitlog.Logger
}

// New returns a new initialized version instance.
func New(cl module.Client, cfg Config, logger kitlog.Logger) *Version {
	if len(cfg.Name) == 0 {
		cfg.Name = defaultName
	}
	return &Version{
		cl:     cl,
		cfg:    cfg,
		logger: kitlog.With(logger, "module", ModuleName, "xep", XEPNumber),
	}
}

// Name returns version module name.
func (v *Version) Name() string { return ModuleName }

// Features returns version disco features.
func (v *Version) Features() []string { return []string{Namespace} }

// Criteria returns version module criteria.
func (v *Version) Criteria() module.Criteria {
	return module.IQ(Namespace, stanza.GetType, stanza.SetType)
}

// Start starts version module.
func (v *Version) Start(ctx context.Context) error {
	if v.cfg.ShowOS {
		v.osInfo = getOSInfo(ctx)
	}
	level.Info(v.logger).Log("msg", "started version module")
	return nil
}

// Stop stops version module.
func (v *Version) Stop(_ context.Context) error {
	level.Info(v.logger).Log("msg", "stopped version module")
	return nil
}

// Process answers an incoming software version request.
func (v *Version) Process(ctx context.Context, stz *stanza.Stanza) error {
	if stz.Type() != stanza.GetType {
		return stanza.E(stanza.NotAllowed)
	}
	q := stz.Element().ChildNamespace("query", Namespace)
	if q == nil || q.ChildrenCount() > 0 {
		return stanza.E(stanza.BadRequest)
	}
	qb := stravaganza.NewBuilder("query").
		WithAttribute(stravaganza.Namespace, Namespace).
		WithChild(stravaganza.NewBuilder("name").WithText(v.cfg.Name).Build()).
		WithChild(stravaganza.NewBuilder("version").WithText(version.Version.Number()).Build())
	if v.cfg.ShowOS && len(v.osInfo) > 0 {
		qb.WithChild(stravaganza.NewBuilder("os").WithText(v.osInfo).Build())
	}
	if err := v.cl.SendElement(ctx, xmpputil.MakeResultIQ(stz.Element(), qb.Build())); err != nil {
		return err
	}
	level.Debug(v.logger).Log("msg", "sent software version", "to", stz.Element().Attribute(stravaganza.From))
	return nil
}

// SoftwareVersion requests the software version of the entity addressed by 'to'.
func (v *Version) SoftwareVersion(ctx context.Context, to string) (*SoftwareVersion, error) {
	iq := xmpputil.MakeIQ(stanza.GetType, to,
		stravaganza.NewBuilder("query").
			WithAttribute(stravaganza.Namespace, Namespace).
			Build(),
	)
	resp, err := v.cl.SendIQ(ctx, iq)
	if err != nil {
		return nil, err
	}
	if resp.Attribute(stravaganza.Type) == stanza.ErrorType {
		return nil, stanza.ParseError(resp)
	}
	q := resp.ChildNamespace("query", Namespace)
	if q == nil {
		return nil, stanza.E(stanza.UndefinedCondition)
	}
	sv := &SoftwareVersion{}
	if name := q.Child("name"); name != nil {
		sv.Name = name.Text()
	}
	if ver := q.Child("version"); ver != nil {
		sv.Version = ver.Text()
	}
	if osElem := q.Child("os"); osElem != nil {
		sv.OS = osElem.Text()
	}
	if len(sv.Name) == 0 || len(sv.Version) == 0 {
		return nil, stanza.E(stanza.UndefinedCondition)
	}
	return sv, nil
}
