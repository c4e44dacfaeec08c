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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testConfig = `
keep-names = true

[convert]
format = "sexp"
jobs = 4

[check]
allow-loops = true
`

func Test_Config_Apply(t *testing.T) {
	cmd := configCommand(t)
	require.NoError(t, cmd.Flags().Set("jobs", "2"))
	//
	config := writeConfig(t, testConfig)
	require.NoError(t, applyConfig(cmd, config))
	//
	require.True(t, GetFlag(cmd, "keep-names"))
	require.Equal(t, "sexp", GetString(cmd, "format"))
	// Command line takes precedence
	require.Equal(t, uint(2), GetUint(cmd, "jobs"))
}

func Test_Config_Unknown(t *testing.T) {
	config := writeConfig(t, "[convert]\nlevel = 3\n")
	require.ErrorContains(t, applyConfig(configCommand(t), config), "[convert] unknown option level")
	//
	config = writeConfig(t, "[convert]\njobs = \"many\"\n")
	require.ErrorContains(t, applyConfig(configCommand(t), config), "option jobs")
}

func Test_Config_Malformed(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(filename, []byte("[convert\n"), 0o600))
	//
	_, err := readConfig(filename)
	require.ErrorContains(t, err, "parsing")
}

func configCommand(t *testing.T) *cobra.Command {
	t.Helper()
	//
	cmd := &cobra.Command{Use: "convert"}
	cmd.Flags().Bool("keep-names", false, "")
	cmd.Flags().String("format", "json", "")
	cmd.Flags().Uint("jobs", 0, "")
	//
	return cmd
}

func writeConfig(t *testing.T, text string) configFile {
	t.Helper()
	//
	filename := filepath.Join(t.TempDir(), "netgraph.toml")
	require.NoError(t, os.WriteFile(filename, []byte(text), 0o600))
	//
	config, err := readConfig(filename)
	require.NoError(t, err)
	//
	return config
}
