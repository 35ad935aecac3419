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

package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/eminwux/stripdates/cmd/config"
	"github.com/eminwux/stripdates/cmd/stripdates"
	"github.com/eminwux/stripdates/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

type rootFactory func() (*cobra.Command, error)

func execRoot(root *cobra.Command) int {
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func runWithFactory(ctx context.Context, factory rootFactory, stderr io.Writer) int {
	root, err := factory()
	if err != nil {
		return 1
	}

	root.SetContext(logging.WithLogger(ctx, stderr, config.LOG_LEVEL.Default))
	return execRoot(root)
}

func main() {
	// The copier stops at the next line boundary and flushes on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	code := runWithFactory(ctx, stripdates.NewStripdatesRootCmd, os.Stderr)
	stop()
	os.Exit(code)
}
