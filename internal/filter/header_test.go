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

import (
	"slices"
	"strings"
	"testing"
)

const (
	jetHeader = "1     JET TRANSPORT WING DYNAMIC ANALYSIS" +
		"                                   /    95 SUN SOLARIS NASTRAN    / MAY 17, 95 / PAGE    28"
	info225  = "0*** USER INFORMATION MESSAGE 225, GINO TIME CONSTANTS ARE BEING COMPUTED"
	info225b = "     (SEE NASINFO FILE FOR ELIMINATION OF THESE COMPUTATIONS)"
	info3028 = "0*** USER INFORMATION MESSAGE 3028, BANDWIDTH DECREASED"
	fatalMsg = "0*** USER FATAL MESSAGE 2025, UNDEFINED COORDINATE SYSTEM"
)

// run feeds lines through a fresh HeaderFilter and returns what would be
// written, stopping at Terminate.
func run(t *testing.T, strip bool, lines ...string) []string {
	t.Helper()

	f := NewHeaderFilter(strip)
	var out []string
	for _, l := range lines {
		res := f.Process(l)
		switch res.Action {
		case Emit:
			out = append(out, res.Line)
		case Terminate:
			return append(out, res.Line)
		case Suppress:
		}
	}
	return out
}

func TestRewriteHeader(t *testing.T) {
	cases := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{
			name:   "title system date page",
			line:   "1  TITLE   /  95 SUN SOLARIS NASTRAN / MAY 17, 95 / PAGE 28",
			want:   "1  TITLE   /// PAGE 28",
			wantOK: true,
		},
		{
			name:   "full width header",
			line:   jetHeader,
			want:   "1     JET TRANSPORT WING DYNAMIC ANALYSIS                                   /// PAGE    28",
			wantOK: true,
		},
		{
			name:   "separators beyond the third",
			line:   "1 T / SYS / DATE / X / PAGE 3",
			want:   "1 T /// PAGE 3",
			wantOK: true,
		},
		{
			name:   "exactly three separators",
			line:   "1 T / SYS / DATE / PAGE 3",
			want:   "1 T /// PAGE 3",
			wantOK: true,
		},
		{
			name:   "adjacent separators",
			line:   "1 T///",
			want:   "1 T///",
			wantOK: true,
		},
		{name: "two separators", line: "1  TITLE / SYS / PAGE 2", want: "1  TITLE / SYS / PAGE 2"},
		{name: "one separator", line: "1  TITLE / PAGE 2", want: "1  TITLE / PAGE 2"},
		{name: "no separator", line: "1  SUBCASE 1 LOAD", want: "1  SUBCASE 1 LOAD"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := RewriteHeader(tc.line)
			if got != tc.want || ok != tc.wantOK {
				t.Fatalf("expected (%q, %v); got (%q, %v)", tc.want, tc.wantOK, got, ok)
			}
		})
	}
}

func TestClassify_InitialState(t *testing.T) {
	st := NewFilterState(true)
	if !st.BeforeFirstPage || st.SuppressRemaining != 0 || st.Terminated || !st.StripOptionalMessages {
		t.Fatalf("unexpected initial state: %+v", st)
	}
}

func TestClassify_FirstPageSuppressed(t *testing.T) {
	got := run(t, false,
		"                    N A S T R A N    E X E C U T I V E",
		"0        CONTROL DECK ECHO",
		"",
		"1  TITLE / SYS / DATE / PAGE 2",
		"0        BODY LINE",
		"         ANOTHER BODY LINE",
	)
	want := []string{
		"1  TITLE /// PAGE 2",
		"0        BODY LINE",
		"         ANOTHER BODY LINE",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %q; got %q", want, got)
	}
}

func TestClassify_BeforeFirstPageFlipsOnce(t *testing.T) {
	st := NewFilterState(false)
	_, st = Classify("0 body", st)
	if !st.BeforeFirstPage {
		t.Fatalf("BeforeFirstPage cleared by a body line")
	}
	_, st = Classify("1  TITLE / A / B / PAGE 1", st)
	if st.BeforeFirstPage {
		t.Fatalf("BeforeFirstPage still set after a page header")
	}
	_, st = Classify("0 body", st)
	if st.BeforeFirstPage {
		t.Fatalf("BeforeFirstPage set again after a body line")
	}
}

func TestClassify_PassThroughAfterFirstPage(t *testing.T) {
	st := NewFilterState(true)
	_, st = Classify("1  TITLE / A / B / PAGE 1", st)

	lines := []string{
		"0        BODY LINE",
		"  2   1.0E+00",
		fatalMsg,
		"",
		"0 USER INFORMATION MESSAGE WITHOUT STARS",
	}
	for _, l := range lines {
		var res Result
		res, st = Classify(l, st)
		if res.Action != Emit || res.Line != l {
			t.Fatalf("line %q: expected emit unchanged; got %v %q", l, res.Action, res.Line)
		}
	}
}

func TestClassify_UserInfoStripped(t *testing.T) {
	got := run(t, true,
		"1  TITLE / A / B / PAGE 1",
		info225,
		info225b,
		"0 AFTER",
	)
	want := []string{"1  TITLE /// PAGE 1", "0 AFTER"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %q; got %q", want, got)
	}
}

func TestClassify_UserInfo3028Stripped(t *testing.T) {
	got := run(t, true,
		"1  TITLE / A / B / PAGE 1",
		info3028,
		"     CONTINUATION ONE",
		"     CONTINUATION TWO",
		"0 AFTER",
	)
	want := []string{"1  TITLE /// PAGE 1", "0 AFTER"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %q; got %q", want, got)
	}
}

func TestClassify_UserInfoKeptWithoutOption(t *testing.T) {
	lines := []string{
		"1  TITLE / A / B / PAGE 1",
		info225,
		info225b,
		info3028,
		"     CONTINUATION ONE",
		"     CONTINUATION TWO",
		"0   RESTART DATA",
		BanditOpenCore + " = 1000",
	}
	got := run(t, false, lines...)
	want := append([]string{"1  TITLE /// PAGE 1"}, lines[1:]...)
	if !slices.Equal(got, want) {
		t.Fatalf("expected %q; got %q", want, got)
	}
}

func TestClassify_SingleLineSuppressions(t *testing.T) {
	got := run(t, true,
		"1  TITLE / A / B / PAGE 1",
		"0   RESTART DATA WRITTEN",
		BanditOpenCore+" =  12345",
		"0 KEPT",
	)
	want := []string{"1  TITLE /// PAGE 1", "0 KEPT"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %q; got %q", want, got)
	}

	st := NewFilterState(true)
	st.BeforeFirstPage = false
	_, st = Classify("0   RESTART", st)
	if st.SuppressRemaining != 0 {
		t.Fatalf("restart notice must not carry over; got SuppressRemaining=%d", st.SuppressRemaining)
	}
}

func TestClassify_BanditNeedsExactColumn(t *testing.T) {
	shifted := strings.Repeat(" ", 39) + "BANDIT OPEN CORE"
	got := run(t, true, "1  TITLE / A / B / PAGE 1", shifted)
	want := []string{"1  TITLE /// PAGE 1", shifted}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %q; got %q", want, got)
	}
}

func TestClassify_SuppressionInterruptedByHeader(t *testing.T) {
	st := NewFilterState(true)
	_, st = Classify("1  TITLE / A / B / PAGE 1", st)
	_, st = Classify(info3028, st)
	if st.SuppressRemaining != 2 {
		t.Fatalf("expected SuppressRemaining=2; got %d", st.SuppressRemaining)
	}

	res, st := Classify("1  TITLE / A / B / PAGE 2", st)
	if res.Action != Emit || res.Line != "1  TITLE /// PAGE 2" {
		t.Fatalf("header during suppression: got %v %q", res.Action, res.Line)
	}
	if st.SuppressRemaining != 2 {
		t.Fatalf("header must not consume the counter; got %d", st.SuppressRemaining)
	}

	res, st = Classify("     CONTINUATION ONE", st)
	if res.Action != Suppress || st.SuppressRemaining != 1 {
		t.Fatalf("expected suppress with 1 left; got %v with %d", res.Action, st.SuppressRemaining)
	}
}

func TestClassify_ContinuationWinsOverMessagePrefix(t *testing.T) {
	got := run(t, true,
		"1  TITLE / A / B / PAGE 1",
		info225,
		info225,
		"0 AFTER",
	)
	want := []string{"1  TITLE /// PAGE 1", "0 AFTER"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %q; got %q", want, got)
	}
}

func TestClassify_ShortHeaderTerminates(t *testing.T) {
	st := NewFilterState(false)
	_, st = Classify("1  TITLE / A / B / PAGE 1", st)

	res, st := Classify("1", st)
	if res.Action != Terminate || res.Line != "1" || !st.Terminated {
		t.Fatalf("expected terminate on short header; got %v %q state=%+v", res.Action, res.Line, st)
	}

	for _, l := range []string{"0 *** RUN DATE", "1  TITLE / A / B / PAGE 9", ""} {
		res, st = Classify(l, st)
		if res.Action != Suppress {
			t.Fatalf("line %q after termination: expected suppress; got %v", l, res.Action)
		}
	}
}

func TestClassify_ShortHeaderBoundary(t *testing.T) {
	nine := "1 ABCDEFG"
	ten := "1 ABCDEFGH"

	res, _ := Classify(nine, NewFilterState(false))
	if res.Action != Terminate {
		t.Fatalf("%d-byte header: expected terminate; got %v", len(nine), res.Action)
	}
	res, _ = Classify(ten, NewFilterState(false))
	if res.Action != Emit || res.Line != ten {
		t.Fatalf("%d-byte header: expected emit unchanged; got %v %q", len(ten), res.Action, res.Line)
	}
}

func TestClassify_HeaderWithoutSeparators(t *testing.T) {
	got := run(t, false, "1  TITLE / ONLY ONE SEPARATOR", "0 body")
	want := []string{"1  TITLE / ONLY ONE SEPARATOR", "0 body"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %q; got %q", want, got)
	}
}

func TestHeaderFilter_State(t *testing.T) {
	f := NewHeaderFilter(true)
	f.Process("1  TITLE / A / B / PAGE 1")
	f.Process(info3028)

	st := f.State()
	if st.BeforeFirstPage || st.SuppressRemaining != 2 || st.Terminated {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestAction_String(t *testing.T) {
	cases := map[Action]string{
		Emit:       "emit",
		Suppress:   "suppress",
		Terminate:  "terminate",
		Action(42): "unknown",
	}
	for a, want := range cases {
		if got := a.String(); got != want {
			t.Fatalf("expected %q; got %q", want, got)
		}
	}
}
