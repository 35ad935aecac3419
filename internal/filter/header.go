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

package filter

import "strings"

// Column-anchored prefixes found in Nastran-95 print files.
const (
	PageMarker          = '1'
	Separator           = '/'
	UserInfoMessage     = "0*** USER INFORMATION MESSAGE"
	UserInfoMessage3028 = UserInfoMessage + " 3028"
	RestartNotice       = "0   RESTART"
	BanditOpenCore      = "                                        BANDIT OPEN CORE"

	// A page header shorter than this is the run/date/time trailer.
	MinHeaderLen = 10

	// Continuation lines that follow each message header. These are fixed by
	// the report layout.
	userInfo3028Continuations = 2
	userInfoContinuations     = 1
)

// FilterState is the state carried from one line to the next.
type FilterState struct {
	// SuppressRemaining counts continuation lines still to drop after a
	// message header.
	SuppressRemaining int
	// BeforeFirstPage stays true until the first page header is seen.
	BeforeFirstPage bool
	// Terminated is set once the trailer has been reached.
	Terminated bool
	// StripOptionalMessages enables removal of USER INFORMATION messages,
	// RESTART notices and the BANDIT OPEN CORE marker.
	StripOptionalMessages bool
}

func NewFilterState(stripOptionalMessages bool) FilterState {
	return FilterState{
		BeforeFirstPage:       true,
		StripOptionalMessages: stripOptionalMessages,
	}
}

// Classify decides what happens to line and returns the state to use for the
// next one. The first matching rule wins.
func Classify(line string, st FilterState) (Result, FilterState) {
	if st.Terminated {
		return Result{Action: Suppress}, st
	}

	header := isPageHeader(line)

	if st.SuppressRemaining > 0 && !header {
		st.SuppressRemaining--
		return Result{Action: Suppress}, st
	}

	if st.StripOptionalMessages {
		switch {
		case strings.HasPrefix(line, UserInfoMessage3028):
			st.SuppressRemaining = userInfo3028Continuations
			return Result{Action: Suppress}, st
		case strings.HasPrefix(line, UserInfoMessage):
			st.SuppressRemaining = userInfoContinuations
			return Result{Action: Suppress}, st
		case strings.HasPrefix(line, RestartNotice), strings.HasPrefix(line, BanditOpenCore):
			return Result{Action: Suppress}, st
		}
	}

	if !header {
		if st.BeforeFirstPage {
			return Result{Action: Suppress}, st
		}
		return Result{Action: Emit, Line: line}, st
	}

	st.BeforeFirstPage = false
	if len(line) < MinHeaderLen {
		st.Terminated = true
		return Result{Action: Terminate, Line: line}, st
	}

	rewritten, _ := RewriteHeader(line)
	return Result{Action: Emit, Line: rewritten}, st
}

// RewriteHeader collapses the system and date fields of a page header.
// Everything between the first separator and the last one is replaced by a
// single separator, so
//
//	1  TITLE   /  95 SUN SOLARIS NASTRAN / MAY 17, 95 / PAGE 28
//
// becomes
//
//	1  TITLE   /// PAGE 28
//
// The page number is no longer right justified afterwards. Lines with fewer
// than three separators are returned unchanged with ok == false.
func RewriteHeader(line string) (string, bool) {
	first := strings.IndexByte(line, Separator)
	if first < 0 {
		return line, false
	}
	second := strings.IndexByte(line[first+1:], Separator)
	if second < 0 {
		return line, false
	}
	second += first + 1
	if strings.IndexByte(line[second+1:], Separator) < 0 {
		return line, false
	}
	last := strings.LastIndexByte(line, Separator)

	var b strings.Builder
	b.Grow(first + 2 + len(line) - last)
	b.WriteString(line[:first+1])
	b.WriteByte(Separator)
	b.WriteString(line[last:])
	return b.String(), true
}

func isPageHeader(line string) bool {
	return len(line) > 0 && line[0] == PageMarker
}

// HeaderFilter is the stateful Filter for Nastran-95 print files.
type HeaderFilter struct {
	state FilterState
}

func NewHeaderFilter(stripOptionalMessages bool) *HeaderFilter {
	return &HeaderFilter{state: NewFilterState(stripOptionalMessages)}
}

func (f *HeaderFilter) Process(line string) Result {
	var res Result
	res, f.state = Classify(line, f.state)
	return res
}

// State returns a copy of the current state.
func (f *HeaderFilter) State() FilterState {
	return f.state
}
