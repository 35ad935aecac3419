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

package linecopier

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/eminwux/stripdates/internal/errdefs"
	"github.com/eminwux/stripdates/internal/filter"
	"github.com/eminwux/stripdates/internal/normalize"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// ShutdownGrace is how long Wait lets the copy loop reach a line boundary
// after the context is cancelled. A read blocked on input cannot be
// interrupted.
const ShutdownGrace = 200 * time.Millisecond

// Stats summarizes one run.
type Stats struct {
	Read       int
	Written    int
	Suppressed int
	// BlankDropped counts empty lines that passed the filter but were not
	// written because KeepBlank is off.
	BlankDropped int
	Terminated   bool
}

type Copier struct {
	ctx       context.Context
	logger    *slog.Logger
	errGroup  *errgroup.Group
	keepBlank bool

	// written by the copy goroutine, read after errGroup.Wait
	stats Stats
}

func NewCopier(ctx context.Context, logger *slog.Logger, keepBlank bool) *Copier {
	errGroup, newCtx := errgroup.WithContext(ctx)

	return &Copier{
		ctx:       newCtx,
		logger:    logger,
		errGroup:  errGroup,
		keepBlank: keepBlank,
	}
}

// CopyLines reads r line by line, normalizes each line, passes it through f
// and writes what f emits to w, one line per output line. It returns when r
// is exhausted, when f asks to terminate, or when the context is done.
func (c *Copier) CopyLines(r io.Reader, w io.Writer, f filter.Filter) (Stats, error) {
	var stats Stats

	c.warnIfTerminal(r)

	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		select {
		case <-c.ctx.Done():
			if err := c.flush(bw); err != nil {
				return stats, err
			}
			c.logger.DebugContext(c.ctx, "context done, stopping at line boundary", "read", stats.Read)
			return stats, fmt.Errorf("%w: %w", errdefs.ErrContextDone, context.Cause(c.ctx))
		default:
		}

		raw, rerr := br.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			_ = c.flush(bw)
			c.logger.ErrorContext(c.ctx, "read error", "error", rerr)
			return stats, fmt.Errorf("%w: %w", errdefs.ErrReadInput, rerr)
		}
		if raw == "" && rerr != nil {
			break
		}

		stats.Read++
		res := f.Process(normalize.Line(raw))

		switch res.Action {
		case filter.Suppress:
			stats.Suppressed++
		case filter.Emit, filter.Terminate:
			if res.Line == "" && !c.keepBlank {
				stats.BlankDropped++
				break
			}
			if err := writeLine(bw, res.Line); err != nil {
				return stats, err
			}
			stats.Written++
		}

		if res.Action == filter.Terminate {
			stats.Terminated = true
			c.logger.DebugContext(c.ctx, "trailer reached, stopping", "line", stats.Read)
			break
		}
		if rerr != nil {
			break
		}
	}

	if err := c.flush(bw); err != nil {
		return stats, err
	}
	return stats, nil
}

// RunCopier starts CopyLines on the copier's error group.
func (c *Copier) RunCopier(r io.Reader, w io.Writer, f filter.Filter) {
	c.logger.DebugContext(
		c.ctx,
		"RunCopier: starting copier goroutine",
		"reader", fmt.Sprintf("%T", r),
		"writer", fmt.Sprintf("%T", w),
	)
	c.errGroup.Go(func() error {
		stats, err := c.CopyLines(r, w, f)
		c.stats = stats
		return err
	})
}

// Wait blocks until the goroutine started by RunCopier returns. If the
// context is cancelled first, the loop gets ShutdownGrace to stop on its own
// before Wait gives up on it.
func (c *Copier) Wait() (Stats, error) {
	done := make(chan error, 1)
	go func() {
		done <- c.errGroup.Wait()
	}()

	select {
	case err := <-done:
		return c.stats, err
	case <-c.ctx.Done():
	}

	select {
	case err := <-done:
		return c.stats, err
	case <-time.After(ShutdownGrace):
		c.logger.WarnContext(c.ctx, "copier did not stop in time, input read still blocked")
		return Stats{}, fmt.Errorf("%w: %w", errdefs.ErrContextDone, context.Cause(c.ctx))
	}
}

func (c *Copier) warnIfTerminal(r io.Reader) {
	f, ok := r.(*os.File)
	if !ok {
		return
	}
	if term.IsTerminal(int(f.Fd())) {
		c.logger.WarnContext(
			c.ctx,
			"reading from a terminal; pipe or redirect a Nastran print file, end input with Ctrl-D",
		)
	}
}

func (c *Copier) flush(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		c.logger.ErrorContext(c.ctx, "flush error", "error", err)
		return fmt.Errorf("%w: %w", errdefs.ErrFlushOutput, err)
	}
	return nil
}

func writeLine(bw *bufio.Writer, line string) error {
	if _, err := bw.WriteString(line); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrWriteOutput, err)
	}
	if err := bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrWriteOutput, err)
	}
	return nil
}
