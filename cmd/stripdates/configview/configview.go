// Copyright 2025 Emiliano Spinella (eminwux)
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
//
// SPDX-License-Identifier: Apache-2.0

package configview

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/eminwux/stripdates/cmd/config"
	"github.com/eminwux/stripdates/internal/errdefs"
	"github.com/eminwux/stripdates/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

// Document mirrors the layout of config.yaml, so its output can be saved and
// reused as a config file.
type Document struct {
	Stripdates Settings `yaml:"stripdates"`
}

type Settings struct {
	KillUserInfo bool   `yaml:"killUserInfo"`
	KeepBlank    bool   `yaml:"keepBlank"`
	LogLevel     string `yaml:"logLevel"`
	LogFile      string `yaml:"logFile,omitempty"`
}

func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration stripdates would run with, after merging flags,
STRIPDATES_* environment variables, the env file and the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer logging.CloseLogFile(cmd.Context())

			logger, ok := cmd.Context().Value(logging.CtxLogger).(*slog.Logger)
			if !ok || logger == nil {
				return errdefs.ErrLoggerNotFound
			}

			doc := Effective()
			out, err := yaml.Marshal(doc)
			if err != nil {
				logger.ErrorContext(cmd.Context(), "failed to marshal config", "error", err)
				return fmt.Errorf("%w: %w", errdefs.ErrMarshalConfig, err)
			}

			w := cmd.OutOrStdout()
			if used := viper.ConfigFileUsed(); used != "" {
				fmt.Fprintf(w, "# config file: %s\n", used)
			}
			_, err = w.Write(out)
			return err
		},
	}
}

// Effective resolves every setting the same way the root command does.
func Effective() Document {
	return Document{
		Stripdates: Settings{
			KillUserInfo: parseBool(config.KILL_USER_INFO.ValueOrDefault()),
			KeepBlank:    parseBool(config.KEEP_BLANK.ValueOrDefault()),
			LogLevel:     config.LOG_LEVEL.ValueOrDefault(),
			LogFile:      config.LOG_FILE.ValueOrDefault(),
		},
	}
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
