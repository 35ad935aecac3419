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

package config

import (
	"os"

	"github.com/spf13/viper"
)

const Prefix = "STRIPDATES"

type Var struct {
	Key        string // e.g. "STRIPDATES_LOG_LEVEL"
	ViperKey   string // optional, e.g. "stripdates.logLevel"
	Default    string // optional
	HasDefault bool
}

func DefineKV(envName, viperKey string, defaultVal ...string) Var {
	v := Var{Key: Prefix + "_" + envName, ViperKey: viperKey}
	if len(defaultVal) > 0 {
		v.Default = defaultVal[0]
		v.HasDefault = true
	}
	return v
}

func (v *Var) EnvKey() string { return v.Key }

// ValueOrDefault resolves the variable in order: viper (flag, env binding,
// config file), then the raw environment, then the declared default.
func (v *Var) ValueOrDefault() string {
	if v.ViperKey != "" && viper.IsSet(v.ViperKey) {
		return viper.GetString(v.ViperKey)
	}
	if val, ok := os.LookupEnv(v.Key); ok {
		return val
	}
	if v.HasDefault {
		return v.Default
	}
	return ""
}

// BindEnv is safe if ViperKey is empty: does nothing.
func (v *Var) BindEnv() error {
	if v.ViperKey == "" {
		return nil
	}
	return viper.BindEnv(v.ViperKey, v.Key)
}

// ApplyDefault registers the declared default with viper.
func (v *Var) ApplyDefault() {
	if v.ViperKey != "" && v.HasDefault {
		viper.SetDefault(v.ViperKey, v.Default)
	}
}

// ---- Declare statically ----.
var (
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	KILL_USER_INFO = DefineKV("KILL_USER_INFO", "stripdates.killUserInfo", "false")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	KEEP_BLANK = DefineKV("KEEP_BLANK", "stripdates.keepBlank", "false")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	LOG_LEVEL = DefineKV("LOG_LEVEL", "stripdates.logLevel", "warn")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	LOG_FILE = DefineKV("LOG_FILE", "stripdates.logFile")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	CONFIG_FILE = DefineKV("CONFIG_FILE", "stripdates.configFile")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	ENV_FILE = DefineKV("ENV_FILE", "stripdates.envFile")
)

// All lists every variable bound by LoadConfig.
func All() []*Var {
	return []*Var{&KILL_USER_INFO, &KEEP_BLANK, &LOG_LEVEL, &LOG_FILE, &CONFIG_FILE, &ENV_FILE}
}
