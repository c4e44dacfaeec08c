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
	"io"
	"os"
	"slices"

	"github.com/consensys/go-netgraph/pkg/export"
	"github.com/consensys/go-netgraph/pkg/graph"
	"github.com/consensys/go-netgraph/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] graph_file ...",
	Short: "check previously exported compute graphs.",
	Long: `Check a given set of exported compute graphs are well formed, and
	report any combinational loops they contain.  Graphs can be given
	either as JSON or S-expression files.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			docs   []*export.Document
			config = checkConfig{
				allowLoops: GetFlag(cmd, "allow-loops"),
				colour:     termio.IsTerminal(os.Stdout),
			}
		)
		//
		for _, filename := range args {
			fdocs, err := ReadDocuments(filename)
			if err != nil {
				printError(err)
				os.Exit(2)
			}
			//
			docs = append(docs, fdocs...)
		}
		//
		if status := checkDocuments(docs, config, os.Stdout); status != 0 {
			os.Exit(status)
		}
	},
}

// checkConfig encapsulates the options of the check command.
type checkConfig struct {
	// Accept documents containing loops.
	allowLoops bool
	// Highlight the summary table.
	colour bool
}

// Check a set of (valid) documents, printing a summary table.  Each document's
// loops are recomputed from its connections and compared against those it
// reports.  This returns 1 if any document reports the wrong loops or (unless
// allowed) contains a loop, and 0 otherwise.
func checkDocuments(docs []*export.Document, config checkConfig, out io.Writer) int {
	var (
		table  = termio.NewTablePrinter(5)
		status = 0
		red    = termio.BoldAnsiEscape().FgColour(termio.TERM_RED)
	)
	//
	table.AddRow("module", "nodes", "outputs", "loops", "status")
	//
	for _, doc := range docs {
		var (
			loops = doc.FindLoops()
			msg   = "ok"
		)
		//
		switch {
		case !sameLoops(loops, doc.Loops):
			log.Errorf("module %s reports %d loop(s), but has %d", doc.Module, len(doc.Loops), len(loops))
			//
			msg, status = "mismatch", 1
		case len(loops) > 0 && !config.allowLoops:
			msg, status = "loops", 1
		}
		//
		row := table.AddRow(doc.Module, fmt.Sprintf("%d", len(doc.Nodes)), fmt.Sprintf("%d", len(doc.Outputs)),
			fmt.Sprintf("%d", len(loops)), msg)
		//
		if msg != "ok" {
			table.SetEscape(4, row, red)
		}
	}
	//
	table.AnsiEscapes(config.colour)
	//
	if err := table.Print(out); err != nil {
		fmt.Println(err)
		return 1
	}
	//
	return status
}

// Check whether two sets of loops are the same, irrespective of the order of
// loops or of the nodes within them.
func sameLoops(actual []graph.Loop, reported [][]uint) bool {
	if len(actual) != len(reported) {
		return false
	}
	//
	lhs := make([][]uint, len(actual))
	rhs := make([][]uint, len(reported))
	//
	for i := range actual {
		lhs[i] = slices.Sorted(slices.Values(actual[i]))
		rhs[i] = slices.Sorted(slices.Values(reported[i]))
	}
	//
	slices.SortFunc(lhs, slices.Compare[[]uint])
	slices.SortFunc(rhs, slices.Compare[[]uint])
	//
	return slices.EqualFunc(lhs, rhs, slices.Equal[[]uint])
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("allow-loops", false, "accept graphs containing combinational loops")
}
