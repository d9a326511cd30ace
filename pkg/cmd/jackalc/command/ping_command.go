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

	"github.com/spf13/cobra"
)

// NewPingCommand returns a command that pings an XMPP entity.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping [jid]",
		Short: "Pings an XMPP entity, the account server if none is given",
		Run:   pingCommandFunc,
	}
}

func pingCommandFunc(cmd *cobra.Command, args []string) {
	if len(args) > 1 {
		ExitWithError(ExitBadArgs, fmt.Errorf("ping command accepts at most one argument"))
	}
	var to string
	if len(args) == 1 {
		to = args[0]
	}
	j, ctx, cancel := mustSessionFromCmd(cmd)
	defer cancel()

	rtt, err := j.Client().Ping().Ping(ctx, to)
	if err != nil {
		ExitWithError(ExitError, err)
	}
	if len(to) == 0 {
		to = j.Client().JID().Domain()
	}
	display.Ping(to, rtt)
}
