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
	"runtime"

	"github.com/ortuman/jackal-client/pkg/version"
	"github.com/spf13/cobra"
)

// NewVersionCommand prints out the version of jackalc, or the software version of an XMPP entity.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version [jid]",
		Short: "Prints the version of jackalc, or the software version of an XMPP entity",
		Run:   versionCommandFunc,
	}
}

func versionCommandFunc(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		fmt.Println("jackalc version:", version.Version)
		fmt.Println("Go version:", runtime.Version())
		return
	}
	j, ctx, cancel := mustSessionFromCmd(cmd)
	defer cancel()

	sv, err := j.Client().Version().SoftwareVersion(ctx, args[0])
	if err != nil {
		ExitWithError(ExitError, err)
	}
	display.SoftwareVersion(args[0], sv)
}
