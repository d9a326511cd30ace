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
	"strings"

	"github.com/jackal-xmpp/stravaganza/v2"
	"github.com/jackal-xmpp/stravaganza/v2/jid"
	xmpputil "github.com/ortuman/jackal-client/pkg/util/xmpp"
	"github.com/spf13/cobra"
)

var messageType string

// NewSendCommand returns a command that sends a message to an XMPP entity.
func NewSendCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "send <jid> <text>",
		Short: "Sends a message to an XMPP entity",
		Run:   sendCommandFunc,
	}
	cmd.Flags().StringVar(&messageType, "type", "chat", "message type")

	return &cmd
}

func sendCommandFunc(cmd *cobra.Command, args []string) {
	if len(args) < 2 {
		ExitWithError(ExitBadArgs, fmt.Errorf("send command requires recipient and text as its arguments"))
	}
	to, err := jid.NewWithString(args[0], false)
	if err != nil {
		ExitWithError(ExitBadArgs, err)
	}
	msg := stravaganza.NewBuilder("message").
		WithAttribute(stravaganza.ID, xmpputil.NewID()).
		WithAttribute(stravaganza.To, to.String()).
		WithAttribute(stravaganza.Type, messageType).
		WithChild(
			stravaganza.NewBuilder("body").
				WithText(strings.Join(args[1:], " ")).
				Build(),
		).
		Build()

	j, ctx, cancel := mustSessionFromCmd(cmd)
	defer cancel()

	if err := j.Client().SendElement(ctx, msg); err != nil {
		ExitWithError(ExitError, err)
	}
	display.Send(to.String())
}
