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

package module

import (
	"fmt"
	"strings"

	"github.com/jackal-xmpp/stravaganza/v2"
)

// Criteria is a composable predicate used to select the modules that process an element.
type Criteria interface {
	fmt.Stringer

	// Match tells whether elem satisfies the predicate.
	Match(elem stravaganza.Element) bool
}

type falseCriteria struct{}

func (falseCriteria) Match(_ stravaganza.Element) bool { return false }
func (falseCriteria) String() string                   { return "false" }

type andCriteria []Criteria

func (c andCriteria) Match(elem stravaganza.Element) bool {
	for _, cr := range c {
		if !cr.Match(elem) {
			return false
		}
	}
	return true
}

func (c andCriteria) String() string { return join(c, " and ") }

type orCriteria []Criteria

func (c orCriteria) Match(elem stravaganza.Element) bool {
	for _, cr := range c {
		if cr.Match(elem) {
			return true
		}
	}
	return false
}

func (c orCriteria) String() string { return join(c, " or ") }

type nameCriteria string

func (c nameCriteria) Match(elem stravaganza.Element) bool { return elem.Name() == string(c) }
func (c nameCriteria) String() string                      { return "name=" + string(c) }

type namespaceCriteria string

func (c namespaceCriteria) Match(elem stravaganza.Element) bool {
	return elem.Attribute(stravaganza.Namespace) == string(c)
}

func (c namespaceCriteria) String() string { return "xmlns=" + string(c) }

type stanzaTypeCriteria string

func (c stanzaTypeCriteria) Match(elem stravaganza.Element) bool {
	return elem.Attribute(stravaganza.Type) == string(c)
}

func (c stanzaTypeCriteria) String() string { return "type=" + string(c) }

type hasAttributeCriteria string

func (c hasAttributeCriteria) Match(elem stravaganza.Element) bool {
	return len(elem.Attribute(string(c))) > 0
}

func (c hasAttributeCriteria) String() string { return "hasAttribute(" + string(c) + ")" }

type childCriteria struct {
	cr Criteria
}

func (c childCriteria) Match(elem stravaganza.Element) bool {
	for _, ch := range elem.AllChildren() {
		if c.cr.Match(ch) {
			return true
		}
	}
	return false
}

func (c childCriteria) String() string { return "child(" + c.cr.String() + ")" }

// False returns a criteria that never matches.
func False() Criteria { return falseCriteria{} }

// And returns a criteria matching when all of cs match.
func And(cs ...Criteria) Criteria { return andCriteria(cs) }

// Or returns a criteria matching when at least one of cs matches.
func Or(cs ...Criteria) Criteria { return orCriteria(cs) }

// Name returns a criteria matching elements named name.
func Name(name string) Criteria { return nameCriteria(name) }

// Namespace returns a criteria matching elements whose xmlns is ns.
func Namespace(ns string) Criteria { return namespaceCriteria(ns) }

// StanzaType returns a criteria matching the element type attribute.
// An empty typ matches elements without type.
func StanzaType(typ string) Criteria { return stanzaTypeCriteria(typ) }

// HasAttribute returns a criteria matching elements carrying attribute name.
func HasAttribute(name string) Criteria { return hasAttributeCriteria(name) }

// HasChild returns a criteria matching elements having at least one child that matches cr.
func HasChild(cr Criteria) Criteria { return childCriteria{cr: cr} }

// Then returns a criteria matching elements satisfying cr with a child satisfying child.
func Then(cr Criteria, child Criteria) Criteria {
	return And(cr, HasChild(child))
}

// NameNS returns a criteria matching element name and namespace, optionally restricted to types.
func NameNS(name, ns string, types ...string) Criteria {
	crs := []Criteria{Name(name), Namespace(ns)}
	if len(types) > 0 {
		crs = append(crs, typesCriteria(types))
	}
	return And(crs...)
}

// IQ returns a criteria matching iq stanzas whose payload belongs to namespace ns.
// If no types are given get and set requests are matched.
func IQ(ns string, types ...string) Criteria {
	if len(types) == 0 {
		types = []string{"get", "set"}
	}
	return Then(And(Name("iq"), typesCriteria(types)), Namespace(ns))
}

func typesCriteria(types []string) Criteria {
	crs := make([]Criteria, 0, len(types))
	for _, typ := range types {
		crs = append(crs, StanzaType(typ))
	}
	return Or(crs...)
}

func join(crs []Criteria, sep string) string {
	ss := make([]string, 0, len(crs))
	for _, cr := range crs {
		ss = append(ss, cr.String())
	}
	return "(" + strings.Join(ss, sep) + ")"
}
