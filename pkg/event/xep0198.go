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
	// StreamManagementEnabled event is posted when stream management has been enabled.
	StreamManagementEnabled = "xep0198.enabled"

	// StreamManagementResumed event is posted after a successful stream resumption.
	StreamManagementResumed = "xep0198.resumed"

	// StreamManagementFailed event is posted when enabling or resuming stream management fails.
	StreamManagementFailed = "xep0198.failed"
)

// StreamManagementEventInfo contains all info associated to a stream management event.
type StreamManagementEventInfo struct {
	// ResumptionID is the stream resumption identifier granted by the server.
	ResumptionID string

	// Location is the preferred reconnection address, if any.
	Location string

	// H is the acknowledged stanza count reported by the server.
	H uint32

	// Err is the failure cause, if any.
	Err error
}
