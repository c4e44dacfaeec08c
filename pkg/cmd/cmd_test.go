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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/go-netgraph/pkg/compute"
	"github.com/consensys/go-netgraph/pkg/export"
	"github.com/consensys/go-netgraph/pkg/graph"
	"github.com/consensys/go-netgraph/pkg/util/source"
	"github.com/stretchr/testify/require"
)

const testDir = "../../testdata"

func Test_Convert_Yosys(t *testing.T) {
	docs, status := convertFile(t, "counter.json", defaultConfig("json"))
	require.Equal(t, 0, status)
	require.Len(t, docs, 2)
	// Modules in name order
	counter, top := docs[0], docs[1]
	require.Equal(t, "counter", counter.Module)
	require.Equal(t, "top", top.Module)
	//
	count, ok := counter.Output("count")
	require.True(t, ok)
	require.Equal(t, compute.TagState, counter.Nodes[count].Type)
	// Next state of the register
	next, ok := counter.Output("$procdff$4")
	require.True(t, ok)
	require.Equal(t, "$add", counter.Nodes[next].Type)
	// Submodule instance
	q, ok := top.Output("q")
	require.True(t, ok)
	require.Equal(t, "counter", top.Nodes[q].Type)
	require.Len(t, top.Nodes[q].Connections, 2)
	//
	require.Equal(t, 0, checkDocuments(docs, checkConfig{}, &bytes.Buffer{}))
}

func Test_Convert_Loop(t *testing.T) {
	docs, status := convertFile(t, "ring.hcl", defaultConfig("json"))
	require.Equal(t, 0, status)
	require.Len(t, docs, 1)
	require.Len(t, docs[0].Loops, 1)
	require.GreaterOrEqual(t, len(docs[0].Loops[0]), 2)
	// Loops fail checking unless allowed
	require.Equal(t, 1, checkDocuments(docs, checkConfig{}, &bytes.Buffer{}))
	require.Equal(t, 0, checkDocuments(docs, checkConfig{allowLoops: true}, &bytes.Buffer{}))
	// Reported loops must match
	docs[0].Loops = nil
	require.Equal(t, 1, checkDocuments(docs, checkConfig{allowLoops: true}, &bytes.Buffer{}))
}

func Test_Convert_RejectLoops(t *testing.T) {
	cfg := defaultConfig("json")
	cfg.rejectLoops = true
	//
	docs, status := convertFile(t, "ring.hcl", cfg)
	require.Equal(t, 1, status)
	require.Empty(t, docs)
}

func Test_Convert_AssertAdd(t *testing.T) {
	cfg := defaultConfig("json")
	cfg.assertAdd, cfg.assertOverflow = true, true
	//
	docs, status := convertFile(t, "bounded.hcl", cfg)
	require.Equal(t, 0, status)
	require.Equal(t, 1, countType(docs[0], "$assume"))
	require.Equal(t, 2, countType(docs[0], "$assert"))
	// Without instrumentation
	docs, _ = convertFile(t, "bounded.hcl", defaultConfig("json"))
	require.Equal(t, 0, countType(docs[0], "$assert"))
}

func Test_Convert_SExp(t *testing.T) {
	var buf bytes.Buffer
	//
	design, err := ReadDesign(testDir + "/counter.json")
	require.NoError(t, err)
	require.Equal(t, 0, convertDesign(design, defaultConfig("sexp"), &buf))
	//
	docs, err := export.ReadSExp(source.NewSourceFile("out.sexp", buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "counter", docs[0].Module)
}

func Test_Convert_Dump(t *testing.T) {
	var buf bytes.Buffer
	//
	design, err := ReadDesign(testDir + "/ring.hcl")
	require.NoError(t, err)
	require.Equal(t, 0, convertDesign(design, defaultConfig("dump"), &buf))
	//
	text := buf.String()
	require.True(t, strings.HasPrefix(text, "// module ring\n"))
	require.Contains(t, text, "as y\n")
	require.Contains(t, text, "// loop")
}

func Test_Convert_CloseOutput(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "counter.json")
	file, err := os.Create(filename)
	require.NoError(t, err)
	//
	design, err := ReadDesign(testDir + "/counter.json")
	require.NoError(t, err)
	require.Equal(t, 0, convertDesign(design, defaultConfig("json"), file))
	require.NoError(t, closeOutput(file))
	// Already closed
	require.ErrorIs(t, file.Close(), os.ErrClosed)
	//
	docs, err := ReadDocuments(filename)
	require.NoError(t, err)
	require.Equal(t, "counter", docs[0].Module)
	// Standard output is left open
	require.NoError(t, closeOutput(os.Stdout))
	require.NoError(t, closeOutput(&bytes.Buffer{}))
}

func Test_ReadDesign_Unknown(t *testing.T) {
	_, err := ReadDesign("netlist.blif")
	require.ErrorContains(t, err, "unknown netlist file format")
	//
	_, err = ReadDocuments("graph.txt")
	require.ErrorContains(t, err, "unknown graph file format")
}

func Test_Check_Table(t *testing.T) {
	var buf bytes.Buffer
	//
	docs, _ := convertFile(t, "counter.json", defaultConfig("json"))
	require.Equal(t, 0, checkDocuments(docs[:1], checkConfig{}, &buf))
	//
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], " module "))
	require.True(t, strings.HasPrefix(lines[1], " counter "))
	require.True(t, strings.HasSuffix(lines[1], " ok     |"))
}

func Test_SameLoops(t *testing.T) {
	actual := []graph.Loop{{3, 1}, {0}}
	//
	require.True(t, sameLoops(actual, [][]uint{{0}, {1, 3}}))
	require.False(t, sameLoops(actual, [][]uint{{0}, {1, 2}}))
	require.False(t, sameLoops(actual, [][]uint{{0}}))
	require.True(t, sameLoops(nil, nil))
}

func defaultConfig(format string) convertConfig {
	return convertConfig{compute: compute.DefaultConfig(), format: format, textWidth: 100}
}

// Convert a netlist from the test directory, returning the documents read back
// from the JSON written.
func convertFile(t *testing.T, filename string, cfg convertConfig) ([]*export.Document, int) {
	var buf bytes.Buffer
	//
	design, err := ReadDesign(testDir + "/" + filename)
	require.NoError(t, err)
	//
	status := convertDesign(design, cfg, &buf)
	//
	docs, err := export.ReadJSON(&buf)
	require.NoError(t, err)
	//
	return docs, status
}

func countType(doc *export.Document, kind string) int {
	count := 0
	//
	for _, node := range doc.Nodes {
		if node.Type == kind {
			count++
		}
	}
	//
	return count
}
