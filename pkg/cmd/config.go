// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// A configuration file supplies defaults for command-line flags, using the
// flag names as keys.  Top-level keys apply to every command, whilst a table
// named after a command applies only to that command.  For example:
//
//	keep-names = true
//
//	[convert]
//	format = "sexp"
//	jobs = 4
//
//	[check]
//	allow-loops = true
//
// Flags given explicitly on the command line take precedence.
type configFile map[string]any

// Read a configuration file from disk.
func readConfig(filename string) (configFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	var config configFile
	//
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	//
	return config, nil
}

// Apply a configuration to the flags of a given command.  Keys which name no
// flag of the command are errors, except within tables for other commands.
func applyConfig(cmd *cobra.Command, config configFile) error {
	for key, value := range config {
		if table, ok := value.(map[string]any); ok {
			if key != cmd.Name() {
				continue
			}
			//
			for k, v := range table {
				if err := setDefault(cmd, k, v); err != nil {
					return fmt.Errorf("[%s] %w", cmd.Name(), err)
				}
			}
		} else if err := setDefault(cmd, key, value); err != nil {
			return err
		}
	}
	//
	return nil
}

func setDefault(cmd *cobra.Command, key string, value any) error {
	flag := cmd.Flags().Lookup(key)
	//
	switch {
	case flag == nil:
		return fmt.Errorf("unknown option %s", key)
	case flag.Changed:
		log.Debugf("option %s overridden on command line", key)
		return nil
	}
	//
	if err := flag.Value.Set(fmt.Sprint(value)); err != nil {
		return fmt.Errorf("option %s: %w", key, err)
	}
	//
	return nil
}

// Load and apply the configuration file named by the --config flag (if any).
func loadConfig(cmd *cobra.Command) {
	filename := GetString(cmd, "config")
	//
	if filename == "" {
		return
	}
	//
	config, err := readConfig(filename)
	if err == nil {
		err = applyConfig(cmd, config)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}
