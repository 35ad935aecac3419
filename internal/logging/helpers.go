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

package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eminwux/stripdates/internal/errdefs"
	"github.com/spf13/cobra"
)

func ParseLevel(lvl string) slog.Level {
	switch lvl {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		// default if unknown
		return slog.LevelInfo
	}
}

func NewNoopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// WithLogger builds a ReformatHandler logger writing to w and stores the
// logger and its level var in the returned context.
func WithLogger(ctx context.Context, w io.Writer, loglevel string) context.Context {
	levelVar := new(slog.LevelVar)
	levelVar.Set(ParseLevel(loglevel))

	logger := slog.New(NewReformatHandler(w, levelVar))

	ctx = context.WithValue(ctx, CtxLogger, logger)
	ctx = context.WithValue(ctx, CtxLevelVar, levelVar)
	return ctx
}

// SetLevel changes the level of the logger stored in ctx, if any.
func SetLevel(ctx context.Context, loglevel string) {
	if lv, ok := ctx.Value(CtxLevelVar).(*slog.LevelVar); ok && lv != nil {
		lv.Set(ParseLevel(loglevel))
	}
}

// SetupFileLogger replaces the command's logger with one appending to
// logfile. The file is stored under CtxCloser so it can be closed after the
// command has run.
func SetupFileLogger(cmd *cobra.Command, logfile string, loglevel string) error {
	if cmd == nil || logfile == "" || loglevel == "" {
		return errors.New("cmd, logfile, and loglevel must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(logfile), 0o700); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrOpenLogFile, err)
	}

	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrOpenLogFile, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = WithLogger(ctx, f, loglevel)
	ctx = context.WithValue(ctx, CtxCloser, f)

	cmd.SetContext(ctx)
	return nil
}

// CloseLogFile closes the file opened by SetupFileLogger, if any.
func CloseLogFile(ctx context.Context) {
	if ctx == nil {
		return
	}
	if c, _ := ctx.Value(CtxCloser).(io.Closer); c != nil {
		_ = c.Close()
	}
}
