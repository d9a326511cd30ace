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
	"os"
	"time"

	"github.com/ortuman/jackal-client/pkg/jackal"
	"github.com/ortuman/jackal-client/pkg/util/dns"
	"github.com/spf13/cobra"
)

var (
	resolveList  bool
	resolvePurge bool
)

// NewResolveCommand returns a command that resolves the client endpoints of an XMPP domain.
func NewResolveCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "resolve [domain]",
		Short: "Resolves the preferred client endpoint of an XMPP domain",
		Run:   resolveCommandFunc,
	}
	cmd.Flags().BoolVar(&resolveList, "list", false, "list every cached resolution result")
	cmd.Flags().BoolVar(&resolvePurge, "purge", false, "remove the cached resolution result of domain")

	return &cmd
}

func resolveCommandFunc(cmd *cobra.Command, args []string) {
	switch {
	case resolveList && len(args) != 0:
		ExitWithError(ExitBadArgs, fmt.Errorf("resolve --list accepts no arguments"))
	case !resolveList && len(args) != 1:
		ExitWithError(ExitBadArgs, fmt.Errorf("resolve command requires domain as its argument"))
	}
	cfg := configFromCmd(cmd)
	cfg.HTTPPort = 0
	cfg.Account = jackal.DefaultConfig().Account

	j := jackal.New(*cfg, os.Stdout, loggerFromConfig(cfg))
	if err := j.Bootstrap(); err != nil {
		ExitWithError(ExitError, err)
	}
	defer func() { _ = j.Shutdown() }()

	ctx, cancel := commandCtx(cmd)
	defer cancel()

	st := j.Storage()
	if (resolveList || resolvePurge) && st == nil {
		ExitWithError(ExitBadArgs, fmt.Errorf("no storage path configured"))
	}
	switch {
	case resolveList:
		results, err := st.FetchResults(ctx)
		if err != nil {
			ExitWithError(ExitError, err)
		}
		for _, res := range results {
			display.Resolve(res.Domain, res.Endpoint(time.Now()), res)
		}
		return

	case resolvePurge:
		if err := st.DeleteResult(ctx, args[0]); err != nil {
			ExitWithError(ExitError, err)
		}
		return
	}
	domain := args[0]

	ep, err := j.Resolver().Resolve(ctx, domain)
	if err != nil {
		ExitWithError(ExitError, err)
	}
	var res *dns.Result
	if st != nil {
		res, err = st.FetchResult(ctx, domain)
		if err != nil {
			ExitWithError(ExitError, err)
		}
	}
	display.Resolve(domain, ep, res)
}
