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
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/consensys/go-netgraph/pkg/export"
	"github.com/consensys/go-netgraph/pkg/netlist"
	"github.com/consensys/go-netgraph/pkg/netlist/hcl"
	"github.com/consensys/go-netgraph/pkg/netlist/yosys"
	"github.com/consensys/go-netgraph/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected boolean flag, exiting if it is not defined.
func GetFlag(cmd *cobra.Command, flag string) bool {
	return getFlag(flag, cmd.Flags().GetBool)
}

// GetString gets an expected string flag, exiting if it is not defined.
func GetString(cmd *cobra.Command, flag string) string {
	return getFlag(flag, cmd.Flags().GetString)
}

// GetUint gets an expected unsigned integer flag, exiting if it is not
// defined.
func GetUint(cmd *cobra.Command, flag string) uint {
	return getFlag(flag, cmd.Flags().GetUint)
}

// A missing flag is a programming error rather than a user error, but is still
// reported with the usual exit status.
func getFlag[T any](flag string, get func(string) (T, error)) T {
	value, err := get(flag)
	if err != nil {
		log.Errorf("flag %s: %s", flag, err)
		os.Exit(2)
	}
	//
	return value
}

// ReadDesign reads a netlist using a frontend chosen by the extension of the
// filename.
func ReadDesign(filename string) (*netlist.Design, error) {
	log.Debugf("reading netlist %s", filename)
	//
	switch ext := path.Ext(filename); ext {
	case ".json":
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		//
		defer file.Close()
		//
		return yosys.ReadDesign(file)
	case ".hcl":
		return hcl.ReadFile(filename)
	default:
		return nil, fmt.Errorf("unknown netlist file format: %s", ext)
	}
}

// ReadDocuments reads exported compute graphs, using a reader chosen by the
// extension of the filename.
func ReadDocuments(filename string) ([]*export.Document, error) {
	switch ext := path.Ext(filename); ext {
	case ".json":
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		//
		defer file.Close()
		//
		return export.ReadJSON(file)
	case ".sexp", ".lisp":
		srcfile, err := source.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		//
		return export.ReadSExp(srcfile)
	default:
		return nil, fmt.Errorf("unknown graph file format: %s", ext)
	}
}

// Report an error arising from reading some input file.  Syntax errors are
// printed with appropriate highlighting.
func printError(err error) {
	var serr *source.SyntaxError
	//
	if errors.As(err, &serr) {
		printSyntaxError(serr)
	} else {
		fmt.Println(err)
	}
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := min(line.Length()-lineOffset, span.Length())
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Println(strings.Repeat("^", length))
}
