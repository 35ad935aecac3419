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
	"github.com/spf13/cobra"
)

const Version = "1.0"

const longHelp = `stripdates strips date and other information from a Nastran-95 output (print)
file so that it can be compared to a similar file run on another system or on
another date.

With no file redirection, read standard input, write standard output.

The header of each page of Nastran output looks similar to this:

  1     JET TRANSPORT WING DYNAMIC ANALYSIS                                   /    95 SUN SOLARIS NASTRAN    / MAY 17, 95 / PAGE    28

The entire first page of output is skipped. On every page header, both the
system title ("95 SUN SOLARIS NASTRAN" above) and the date in the field
following it are blanked out and reduced to "///" (so don't expect the page
number to be right justified after). Output stops at the short page feed that
precedes the run date and time trailer.

With -k, USER information messages are stripped as well. A sample USER info
message looks like this:

  0*** USER INFORMATION MESSAGE 225, GINO TIME CONSTANTS ARE BEING COMPUTED
       (SEE NASINFO FILE FOR ELIMINATION OF THESE COMPUTATIONS)

Only "0*** USER INFORMATION MESSAGE" is matched, because error messages (which
should be kept) start with variants of "0*** USER FATAL MESSAGE". RESTART
notices and the BANDIT OPEN CORE line are removed with -k too.

Hint: to generate a sha1 checksum of a Nastran output file enter:
  cat <Nastran output> | stripdates | sha1sum
`

// setupHelp sends help to stderr so stdout only ever carries filtered data.
func setupHelp(rootCmd *cobra.Command) {
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		c.SetOut(c.ErrOrStderr())
		defaultHelp(c, args)
	})
	rootCmd.SetVersionTemplate("stripdates version {{.Version}}\n")
}
