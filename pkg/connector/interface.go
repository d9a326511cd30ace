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
	"context"
	"time"

	"github.com/ortuman/jackal-client/pkg/util/dns"
)

//go:generate moq -out resolver.mock_test.go . resolver
type resolver interface {
	Resolve(ctx context.Context, domain string) (*dns.Endpoint, error)
	MarkInvalid(ctx context.Context, domain string, ep *dns.Endpoint, d time.Duration) error
}
