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

package jackal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/kkyr/fig"
	"github.com/ortuman/jackal-client/pkg/client"
	"github.com/ortuman/jackal-client/pkg/connector"
	"github.com/ortuman/jackal-client/pkg/module/xep0030"
	"github.com/ortuman/jackal-client/pkg/module/xep0092"
	"github.com/ortuman/jackal-client/pkg/module/xep0198"
	"github.com/ortuman/jackal-client/pkg/storage/boltdb"
	"github.com/ortuman/jackal-client/pkg/util/dns"
)

const envConfigFile = "JACKAL_CONFIG_FILE"

// LoggerConfig contains logger configuration.
type LoggerConfig struct {
	Level  string `fig:"level" default:"debug"`
	Format string `fig:"format" default:"logfmt"`
}

// StorageConfig contains storage configuration.
type StorageConfig struct {
	BoltDB boltdb.Config `fig:"boltdb"`
}

// Config contains jackal client runner configuration.
type Config struct {
	Logger   LoggerConfig  `fig:"logger"`
	HTTPPort int           `fig:"http_port" default:"6060"`
	Storage  StorageConfig `fig:"storage"`
	DNS      dns.Config    `fig:"dns"`

	// ReconnectDelay is the wait before logging in again after an unexpected disconnection.
	// Zero disables reconnection.
	ReconnectDelay time.Duration `fig:"reconnect_delay" default:"5s"`

	Account          client.AccountConfig `fig:"account"`
	Connection       connector.Config     `fig:"connection"`
	Session          client.SessionConfig `fig:"session"`
	StreamManagement xep0198.Config       `fig:"stream_management"`
	Disco            xep0030.Config       `fig:"disco"`
	Version          xep0092.Config       `fig:"version"`
}

// ClientConfig returns the client configuration subset.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		Account:          c.Account,
		Connection:       c.Connection,
		Session:          c.Session,
		StreamManagement: c.StreamManagement,
		Disco:            c.Disco,
		Version:          c.Version,
	}
}

// LoadConfig reads configuration from configFile.
// If present, JACKAL_CONFIG_FILE environment variable overrides configFile value.
func LoadConfig(configFile string) (*Config, error) {
	if envCfgFile := os.Getenv(envConfigFile); len(envCfgFile) > 0 {
		configFile = envCfgFile
	}
	var cfg Config
	file := filepath.Base(configFile)
	dir := filepath.Dir(configFile)

	err := fig.Load(&cfg, fig.File(file), fig.Dirs(dir))
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the configuration used when no configuration file is available.
func DefaultConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:  "info",
			Format: "logfmt",
		},
		HTTPPort: 6060,
		Storage: StorageConfig{
			BoltDB: boltdb.Config{Path: ".jackalc.db"},
		},
		DNS:            dns.Config{CacheTTL: time.Hour},
		ReconnectDelay: 5 * time.Second,
		Connection: connector.Config{
			Timeout:          30 * time.Second,
			WriteTimeout:     10 * time.Second,
			MaxStanzaSize:    262144,
			CompressionLevel: "default",
			UseSeeOtherHost:  true,
		},
		Session: client.SessionConfig{
			RequestTimeout:    30 * time.Second,
			KeepAliveInterval: 180 * time.Second,
		},
		StreamManagement: xep0198.Config{
			Enabled:            true,
			Resumption:         true,
			MaxTimeout:         300 * time.Second,
			ResumeFailureReset: "session",
			RequestTimeout:     30 * time.Second,
		},
	}
}
