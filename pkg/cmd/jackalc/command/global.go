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
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bgentry/speakeasy"
	kitlog "github.com/go-kit/log"
	"github.com/kkyr/fig"
	"github.com/ortuman/jackal-client/pkg/jackal"
	"github.com/ortuman/jackal-client/pkg/log"
	"github.com/spf13/cobra"
)

var display printer

// GlobalFlags are flags that defined globally and are inherited to all sub-commands.
type GlobalFlags struct {
	ConfigFile string

	JID         string
	Password    string
	Interactive bool

	LogLevel       string
	OutputFormat   string
	CommandTimeOut time.Duration
}

func configFromCmd(cmd *cobra.Command) *jackal.Config {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		ExitWithError(ExitError, err)
	}
	cfg, err := jackal.LoadConfig(configFile)
	switch {
	case errors.Is(err, fig.ErrFileNotFound) && !cmd.Flags().Changed("config"):
		cfg = jackal.DefaultConfig()
	case err != nil:
		ExitWithError(ExitError, err)
	}
	if jd, _ := cmd.Flags().GetString("jid"); len(jd) > 0 {
		cfg.Account.JID = jd
	}
	if password, _ := cmd.Flags().GetString("password"); len(password) > 0 {
		cfg.Account.Password = password
	}
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		cfg.Account.Password = readPasswordInteractive(cfg.Account.JID)
	}
	if lv, _ := cmd.Flags().GetString("log-level"); len(lv) > 0 {
		cfg.Logger.Level = lv
	}
	initDisplayFromCmd(cmd)
	return cfg
}

// mustSessionFromCmd returns a runner whose client session is already established.
func mustSessionFromCmd(cmd *cobra.Command) (*jackal.Jackal, context.Context, context.CancelFunc) {
	cfg := configFromCmd(cmd)
	if len(cfg.Account.JID) == 0 {
		ExitWithError(ExitBadArgs, jackal.ErrNoAccount)
	}
	// one-shot commands neither expose metrics nor reconnect
	cfg.HTTPPort = 0
	cfg.ReconnectDelay = 0

	j := jackal.New(*cfg, os.Stdout, loggerFromConfig(cfg))
	if err := j.Bootstrap(); err != nil {
		ExitWithError(ExitError, err)
	}
	ctx, cancel := commandCtx(cmd)
	if err := j.Client().Connect(ctx); err != nil {
		cancel()
		_ = j.Shutdown()
		ExitWithError(ExitError, err)
	}
	return j, ctx, func() {
		cancel()
		if err := j.Shutdown(); err != nil {
			ExitWithError(ExitError, err)
		}
	}
}

func loggerFromConfig(cfg *jackal.Config) kitlog.Logger {
	return log.NewDefaultLogger(cfg.Logger.Level, cfg.Logger.Format)
}

func initDisplayFromCmd(cmd *cobra.Command) {
	outputFormat, err := cmd.Flags().GetString("write-out")
	if err != nil {
		ExitWithError(ExitError, err)
	}
	switch outputFormat {
	case "simple":
		display = &simplePrinter{w: os.Stdout}
	case "yaml":
		display = &yamlPrinter{w: os.Stdout}
	default:
		ExitWithError(ExitBadArgs, fmt.Errorf("unsupported output format: %s", outputFormat))
	}
}

func commandCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeOut, err := cmd.Flags().GetDuration("command-timeout")
	if err != nil {
		ExitWithError(ExitError, err)
	}
	return context.WithTimeout(context.Background(), timeOut)
}

func readPasswordInteractive(name string) string {
	prompt := fmt.Sprintf("Password of %s: ", name)
	password, err := speakeasy.Ask(prompt)
	if err != nil {
		ExitWithError(ExitBadArgs, fmt.Errorf("failed to ask password: %s", err))
	}
	if len(password) == 0 {
		ExitWithError(ExitBadArgs, fmt.Errorf("empty password"))
	}
	return password
}
