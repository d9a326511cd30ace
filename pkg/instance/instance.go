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

package instance

import (
	"os"

	"github.com/google/uuid"
)

const (
	envInstanceID = "JACKAL_INSTANCE_ID"
	envHostName   = "JACKAL_HOSTNAME"
)

var instID, hostName string

var (
	readCachedResults = true
	osHostname        = os.Hostname
)

func init() {
	instID = getID()
	hostName = getHostname()
}

// ID returns the client process identifier used to label metrics.
func ID() string {
	if readCachedResults {
		return instID
	}
	return getID()
}

// Hostname returns local host name.
func Hostname() string {
	if readCachedResults {
		return hostName
	}
	return getHostname()
}

func getID() string {
	id := os.Getenv(envInstanceID)
	if len(id) == 0 {
		return uuid.New().String() // if unspecified, assign UUID identifier
	}
	return id
}

func getHostname() string {
	if hn := os.Getenv(envHostName); len(hn) > 0 {
		return hn
	}
	hn, err := osHostname()
	if err != nil || len(hn) == 0 {
		return "localhost"
	}
	return hn
}
