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

package xep0198

import (
	"context"
	"time"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/ortuman/jackal-client/pkg/response"
)

//go:generate moq -out writer.mock_test.go . streamWriter
type streamWriter interface {
	SendElement(ctx context.Context, elem stravaganza.Element) error
}

//go:generate moq -out response.mock_test.go . responseManager
type responseManager interface {
	RegisterCondition(cond response.Condition, timeout time.Duration, h response.Handler) response.Key
}
