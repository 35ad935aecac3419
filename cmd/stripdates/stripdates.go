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

package stripdates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/eminwux/stripdates/cmd/config"
	"github.com/eminwux/stripdates/cmd/stripdates/configview"
	"github.com/eminwux/stripdates/internal/errdefs"
	"github.com/eminwux/stripdates/internal/filter"
	"github.com/eminwux/stripdates/internal/linecopier"
	"github.com/eminwux/stripdates/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func NewStripdatesRootCmd() (*cobra.Command, error) {
	// rootCmd represents the base command when called without any subcommands.
	rootCmd := &cobra.Command{
		Use:     "stripdates",
		Short:   "Strip date and other information from a Nastran-95 output (print) file",
		Long:    longHelp,
		Version: Version,
		Example: `  cat jet.out | stripdates | sha1sum
  stripdates -k < jet.out > jet.stripped
  stripdates config --kill-user-info`,
		SilenceUsage: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: %v", errdefs.ErrTooManyArguments, args)
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := LoadConfig(); err != nil {
				return err
			}
			return setupLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Post-run hooks are skipped when RunE fails.
			defer logging.CloseLogFile(cmd.Context())

			logger, ok := cmd.Context().Value(logging.CtxLogger).(*slog.Logger)
			if !ok || logger == nil {
				return errdefs.ErrLoggerNotFound
			}

			killUserInfo := viper.GetBool(config.KILL_USER_INFO.ViperKey)
			keepBlank := viper.GetBool(config.KEEP_BLANK.ViperKey)

			logger.DebugContext(
				cmd.Context(), "parameters received in stripdates",
				"killUserInfo", killUserInfo,
				"keepBlank", keepBlank,
				"logLevel", viper.GetString(config.LOG_LEVEL.ViperKey),
				"logFile", viper.GetString(config.LOG_FILE.ViperKey),
				"configFile", viper.ConfigFileUsed(),
			)

			if logger.Enabled(cmd.Context(), slog.LevelDebug) {
				cmd.Flags().Visit(func(f *pflag.Flag) {
					logger.DebugContext(cmd.Context(), "flag set", "name", f.Name, "value", f.Value.String())
				})
			}

			return runFilter(
				cmd.Context(),
				logger,
				cmd.InOrStdin(),
				cmd.OutOrStdout(),
				filter.NewHeaderFilter(killUserInfo),
				keepBlank,
			)
		},
	}

	if err := setupRootCmd(rootCmd); err != nil {
		return nil, err
	}

	return rootCmd, nil
}

func setupRootCmd(rootCmd *cobra.Command) error {
	rootCmd.AddCommand(configview.NewConfigCmd())

	setupHelp(rootCmd)
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.SetOut(c.ErrOrStderr())
		_ = c.Usage()
		return fmt.Errorf("%w: %w", errdefs.ErrInvalidFlag, err)
	})

	// Persistent flags
	rootCmd.PersistentFlags().BoolP("kill-user-info", "k", false, "strip Nastran USER information messages as well")
	rootCmd.PersistentFlags().Bool("keep-blank", false, "write empty lines instead of dropping them")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); default warn")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.stripdates/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", "", "dotenv file with STRIPDATES_* variables")

	bindings := []struct {
		flag string
		v    config.Var
	}{
		{"kill-user-info", config.KILL_USER_INFO},
		{"keep-blank", config.KEEP_BLANK},
		{"log-level", config.LOG_LEVEL},
		{"log-file", config.LOG_FILE},
		{"config", config.CONFIG_FILE},
		{"env-file", config.ENV_FILE},
	}
	for _, b := range bindings {
		if err := viper.BindPFlag(b.v.ViperKey, rootCmd.PersistentFlags().Lookup(b.flag)); err != nil {
			return fmt.Errorf("%w: binding flag %s: %w", errdefs.ErrConfig, b.flag, err)
		}
	}
	return nil
}

func setupLogging(cmd *cobra.Command) error {
	level := viper.GetString(config.LOG_LEVEL.ViperKey)
	logging.SetLevel(cmd.Context(), level)

	if logFile := viper.GetString(config.LOG_FILE.ViperKey); logFile != "" {
		return logging.SetupFileLogger(cmd, logFile, level)
	}
	return nil
}

func runFilter(
	ctx context.Context,
	logger *slog.Logger,
	in io.Reader,
	out io.Writer,
	f filter.Filter,
	keepBlank bool,
) error {
	copier := linecopier.NewCopier(ctx, logger, keepBlank)

	logger.DebugContext(ctx, "starting line copier", "keepBlank", keepBlank)
	copier.RunCopier(in, out, f)

	stats, err := copier.Wait()
	logger.DebugContext(
		ctx, "line copier finished",
		"read", stats.Read,
		"written", stats.Written,
		"suppressed", stats.Suppressed,
		"blankDropped", stats.BlankDropped,
		"terminated", stats.Terminated,
		"error", err,
	)
	if err != nil {
		if errors.Is(err, errdefs.ErrContextDone) {
			logger.InfoContext(ctx, "interrupted before end of input", "read", stats.Read)
		}
		return err
	}
	if !stats.Terminated && stats.Read > 0 {
		logger.InfoContext(ctx, "end of input reached without a run trailer", "read", stats.Read)
	}
	return nil
}

func LoadConfig() error {
	for _, v := range config.All() {
		if err := v.BindEnv(); err != nil {
			return fmt.Errorf("%w: %w", errdefs.ErrConfig, err)
		}
		v.ApplyDefault()
	}

	if err := config.LoadEnvFile(viper.GetString(config.ENV_FILE.ViperKey)); err != nil {
		return err
	}

	if configFile := viper.GetString(config.CONFIG_FILE.ViperKey); configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return fmt.Errorf("%w: %w", errdefs.ErrConfig, err)
		}
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.DefaultConfigDir())
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine.
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("%w: %w", errdefs.ErrConfig, err)
		}
	}

	return nil
}
