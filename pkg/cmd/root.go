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
	"runtime/debug"

	"github.com/consensys/go-netgraph/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "netgraph",
	Short: "A converter from gate-level netlists to compute graphs.",
	Long: `A converter (and general toolbox) for turning gate-level netlists
	into functional compute graphs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadConfig(cmd)
		//
		log.SetFormatter(&log.TextFormatter{
			DisableTimestamp: true,
			ForceColors:      termio.IsTerminal(os.Stderr),
		})
		//
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Printf("netgraph %s\n", version())
		} else {
			fmt.Println(cmd.UsageString())
		}
	},
}

// Determine the version string.  This is filled by make, is recorded in the
// build info by "go install", and is otherwise unknown (e.g. for "go run").
func version() string {
	if Version != "" {
		return Version
	} else if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	//
	return "(unknown version)"
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("keep-names", false, "bind the names of all public wires")
	rootCmd.PersistentFlags().String("config", "", "read default options from a TOML file")
}
