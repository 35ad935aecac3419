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

package errdefs

import "errors"

var (
	ErrContextDone      = errors.New("context has been cancelled")
	ErrReadInput        = errors.New("could not read input")
	ErrWriteOutput      = errors.New("could not write output")
	ErrFlushOutput      = errors.New("could not flush output")
	ErrConfig           = errors.New("config error")
	ErrLoadEnvFile      = errors.New("could not load env file")
	ErrLoggerNotFound   = errors.New("logger not found in context")
	ErrInvalidFlag      = errors.New("invalid flag usage")
	ErrTooManyArguments = errors.New("too many arguments; input is read from stdin only")
	ErrOpenLogFile      = errors.New("could not open log file")
	ErrMarshalConfig    = errors.New("could not marshal effective config")
)
