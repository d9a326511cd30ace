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

package jackalc

import (
	"strings"
	"time"

	"github.com/ortuman/jackal-client/pkg/cmd/jackalc/command"
	"github.com/spf13/cobra"
)

const (
	cliName        = "jackalc"
	cliDescription = "A command line XMPP client built on the jackal client core."

	defaultCommandTimeOut = 30 * time.Second
)

var logoStr = []string{
	`     __               __            __         `,
	`    |__|____    ____ |  | _______  |  |   ____ `,
	`    |  \__  \ _/ ___\|  |/ /\__  \ |  | _/ ___\`,
	`    |  |/ __ \\  \___|    <  / __ \|  |_\  \___`,
	`/\__|  (____  /\___  >__|_ \(____  /____/\___  >`,
	`\______|    \/     \/     \/     \/          \/ `,
}

var (
	globalFlags = command.GlobalFlags{}
)

var (
	rootCmd = &cobra.Command{
		Use:        cliName,
		Short:      cliDescription,
		Long:       strings.Join(logoStr, "\n") + "\n\n" + cliDescription,
		SuggestFor: []string{"jackalc"},
	}
)

func init() {
	cobra.EnablePrefixMatching = true

	rootCmd.PersistentFlags().StringVar(&globalFlags.ConfigFile, "config", "config.yaml", "configuration file path")

	rootCmd.PersistentFlags().StringVar(&globalFlags.JID, "jid", "", "account JID, overrides configuration value")
	rootCmd.PersistentFlags().StringVar(&globalFlags.Password, "password", "", "account password, overrides configuration value")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Interactive, "interactive", false, "read account password from an interactive terminal")

	rootCmd.PersistentFlags().StringVar(&globalFlags.LogLevel, "log-level", "", "log level, overrides configuration value")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.OutputFormat, "write-out", "o", "simple", "set the output format (simple, yaml)")
	rootCmd.PersistentFlags().DurationVar(&globalFlags.CommandTimeOut, "command-timeout", defaultCommandTimeOut, "timeout for running command")

	rootCmd.AddCommand(
		command.NewConnectCommand(),
		command.NewPingCommand(),
		command.NewSendCommand(),
		command.NewResolveCommand(),
		command.NewVersionCommand(),
	)
}

// Start executes jackalc root command.
func Start() error {
	return rootCmd.Execute()
}

// MustStart executes jackalc root command, exiting on failure.
func MustStart() {
	if err := Start(); err != nil {
		command.ExitWithError(command.ExitError, err)
	}
}
