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

package event

const (
	// DiscoServerFeaturesDiscovered event is posted once server features have been discovered.
	DiscoServerFeaturesDiscovered = "disco.server.features_discovered"

	// DiscoAccountFeaturesDiscovered event is posted once account features have been discovered.
	DiscoAccountFeaturesDiscovered = "disco.account.features_discovered"
)

// DiscoEventInfo contains all info associated to a disco event.
type DiscoEventInfo struct {
	// JID is the queried entity.
	JID string

	// Features contains the discovered features.
	Features []string
}
