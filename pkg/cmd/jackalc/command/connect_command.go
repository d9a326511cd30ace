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
	"os"

	"github.com/ortuman/jackal-client/pkg/jackal"
	"github.com/spf13/cobra"
)

// NewConnectCommand returns a command that keeps a client session open until a stop signal is received.
func NewConnectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Opens a client session and prints incoming messages until interrupted",
		Run:   connectCommandFunc,
	}
}

func connectCommandFunc(cmd *cobra.Command, _ []string) {
	cfg := configFromCmd(cmd)

	j := jackal.New(*cfg, os.Stdout, loggerFromConfig(cfg))
	if err := j.Run(); err != nil {
		ExitWithError(ExitError, err)
	}
}
