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

	"github.com/consensys/go-netgraph/pkg/compute"
	"github.com/consensys/go-netgraph/pkg/export"
	"github.com/consensys/go-netgraph/pkg/netlist"
	"github.com/consensys/go-netgraph/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] netlist_file",
	Short: "convert a netlist into compute graphs.",
	Long: `Convert every module of a given netlist into a compute graph.
	Netlists can be given either as Yosys JSON or HCL files.  Graphs
	are written as JSON, S-expressions or a human-readable dump.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			cfg = convertConfig{
				format:         GetString(cmd, "format"),
				rejectLoops:    GetFlag(cmd, "reject-loops"),
				assertAdd:      GetFlag(cmd, "assertadd"),
				assertOverflow: GetFlag(cmd, "assert-overflow"),
				metadata:       GetFlag(cmd, "metadata"),
				textWidth:      GetUint(cmd, "textwidth"),
			}
			output = GetString(cmd, "output")
			out    io.Writer
		)
		//
		cfg.compute.KeepWireNames = GetFlag(cmd, "keep-names")
		cfg.compute.ElideBuffers = !GetFlag(cmd, "no-elide")
		cfg.compute.Jobs = GetUint(cmd, "jobs")
		// Check format before doing any work
		if !isFormat(cfg.format) {
			fmt.Printf("unknown output format \"%s\"\n", cfg.format)
			os.Exit(2)
		}
		//
		design, err := ReadDesign(args[0])
		if err != nil {
			printError(err)
			os.Exit(2)
		}
		//
		if output == "" {
			out = os.Stdout
			cfg.colour = termio.IsTerminal(os.Stdout) && !GetFlag(cmd, "no-colour")
		} else {
			file, err := os.Create(output)
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			out = file
		}
		//
		if cfg.textWidth == 0 {
			cfg.textWidth = termio.Width(os.Stdout)
		}
		// Exiting skips deferred calls, so the output is closed explicitly.
		status := convertDesign(design, cfg, out)
		//
		if err := closeOutput(out); err != nil {
			fmt.Println(err)
			status = max(status, 1)
		}
		//
		if status != 0 {
			os.Exit(status)
		}
	},
}

// convertConfig encapsulates the options of the convert command.
type convertConfig struct {
	// Options passed through to conversion.
	compute compute.Config
	// Output format (json, sexp or dump).
	format string
	// Treat combinational loops as failures.
	rejectLoops bool
	// Add bound checks for wires with bound attributes.
	assertAdd bool
	// Add overflow checks for adders (requires assertAdd).
	assertOverflow bool
	// Include node metadata in the output.
	metadata bool
	// Highlight dumps.
	colour bool
	// Maximum width of S-expression output.
	textWidth uint
}

func isFormat(format string) bool {
	return format == "json" || format == "sexp" || format == "dump"
}

// Convert every module of a design and write out those which succeed.  This
// returns the exit status: 0 on success, or 1 if any module failed (or had a
// loop when these are rejected).
func convertDesign(design *netlist.Design, cfg convertConfig, out io.Writer) int {
	var (
		celltypes = netlist.BuiltinCellTypes()
		status    = 0
	)
	// Submodule instances
	celltypes.SetupDesign(design)
	//
	if cfg.assertAdd {
		for _, module := range design.Modules() {
			n := netlist.AssertAdd(module, cfg.assertOverflow)
			log.Debugf("added %d check(s) to module %s", n, module.Name)
		}
	}
	//
	results := compute.ConvertDesign(design, celltypes, cfg.compute)
	converted := make([]*compute.Result, 0, len(results))
	//
	for i := range results {
		result := &results[i]
		//
		switch {
		case result.Err != nil:
			status = 1
		case cfg.rejectLoops && result.HasLoops():
			log.Errorf("module %s rejected (%d loop(s))", result.Module.Name, len(result.Loops))
			//
			status = 1
		default:
			converted = append(converted, result)
		}
	}
	//
	if err := writeResults(converted, cfg, out); err != nil {
		fmt.Println(err)
		return 1
	}
	//
	return status
}

// Close the output written to, unless it is the standard output.
func closeOutput(out io.Writer) error {
	if file, ok := out.(*os.File); ok && file != os.Stdout {
		return file.Close()
	}
	//
	return nil
}

func writeResults(results []*compute.Result, cfg convertConfig, out io.Writer) error {
	if cfg.format == "dump" {
		opts := export.DumpOptions{Colour: cfg.colour, Origins: cfg.metadata}
		//
		for _, result := range results {
			if err := export.Dump(out, result, opts); err != nil {
				return err
			}
		}
		//
		return nil
	}
	//
	docs := make([]*export.Document, len(results))
	//
	for i, result := range results {
		docs[i] = export.FromResult(result, cfg.metadata)
	}
	//
	if cfg.format == "sexp" {
		return export.WriteSExp(out, docs, cfg.textWidth)
	}
	//
	return export.WriteJSON(out, docs)
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("format", "f", "json", "output format (json, sexp or dump)")
	convertCmd.Flags().StringP("output", "o", "", "write output to the given file")
	convertCmd.Flags().Bool("reject-loops", false, "fail on modules with combinational loops")
	convertCmd.Flags().Bool("assertadd", false, "add bound checks for wires with bound attributes")
	convertCmd.Flags().Bool("assert-overflow", false, "also add overflow checks for adders")
	convertCmd.Flags().UintP("jobs", "j", 0, "maximum number of modules converted concurrently")
	convertCmd.Flags().Bool("no-elide", false, "keep unnamed pass-through nodes")
	convertCmd.Flags().Bool("metadata", false, "include the origin of each node")
	convertCmd.Flags().Bool("no-colour", false, "disable highlighting")
	convertCmd.Flags().Uint("textwidth", 0, "maximum width of S-expression output (0 for terminal width)")
}
