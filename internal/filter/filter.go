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

// Action tells the driving loop what to do with a processed line.
type Action int

const (
	// Emit writes Result.Line and keeps reading.
	Emit Action = iota
	// Suppress writes nothing and keeps reading.
	Suppress
	// Terminate writes Result.Line and stops reading input.
	Terminate
)

func (a Action) String() string {
	switch a {
	case Emit:
		return "emit"
	case Suppress:
		return "suppress"
	case Terminate:
		return "terminate"
	default:
		return "unknown"
	}
}

type Result struct {
	Action Action
	Line   string
}

type Filter interface {
	// Process classifies one normalized line. It is called once per input
	// line, in order, and may keep state between calls:
	//  - Emit: write Line and continue,
	//  - Suppress: write nothing and continue,
	//  - Terminate: write Line, then stop reading.
	Process(line string) Result
}
