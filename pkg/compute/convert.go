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
package compute

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/consensys/go-netgraph/pkg/drive"
	"github.com/consensys/go-netgraph/pkg/graph"
	"github.com/consensys/go-netgraph/pkg/netlist"
	"github.com/consensys/go-netgraph/pkg/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrInvariant indicates that converting a module violated an internal
// invariant, such as an argument index falling out of range.
var ErrInvariant = errors.New("invariant violation")

// Config encapsulates the options which affect conversion.
type Config struct {
	// Bind the names of all public wires to their nodes, thus preventing them
	// from being elided.
	KeepWireNames bool
	// Remove unnamed pass-through nodes.
	ElideBuffers bool
	// Maximum number of modules converted concurrently (0 means one per CPU).
	Jobs uint
}

// DefaultConfig returns the configuration used in the absence of any options.
func DefaultConfig() Config {
	return Config{KeepWireNames: false, ElideBuffers: true, Jobs: 0}
}

// Result captures the outcome of converting a single module.
type Result struct {
	// Module which was converted.
	Module *netlist.Module
	// Final compute graph (nil on failure).
	Graph *Graph
	// Descriptor from which each node was built, indexed by the node's origin.
	Queue []drive.Spec
	// Loops detected, using the final numbering.
	Loops []graph.Loop
	// Number of nodes elided.
	Elided uint
	// Err is non-nil if conversion failed.
	Err error
}

// HasLoops checks whether any loop was detected.
func (p *Result) HasLoops() bool {
	return len(p.Loops) > 0
}

// Descriptor returns the descriptor from which a given node was built.
func (p *Result) Descriptor(node uint) drive.Spec {
	return p.Queue[p.Graph.Node(node).Origin()]
}

// Convert a single module into a compute graph.  The graph is placed into
// topological order (with any loops reported rather than broken) and, if
// enabled, unnamed buffers are then elided.
func Convert(module *netlist.Module, celltypes *netlist.CellTypes, config Config) Result {
	var (
		stats  = util.NewPerfStats()
		result = Result{Module: module}
	)
	//
	g, queue, err := Build(module, celltypes, config)
	if err != nil {
		result.Err = fmt.Errorf("module %s: %w", module.Name, err)
		return result
	}
	//
	loops := graph.Order(g)
	//
	if config.ElideBuffers {
		alias, elided := graph.ForwardAliases(g, isElidable, graph.LoopSet(g.Len(), loops))
		loops = graph.RemapLoops(loops, alias)
		result.Elided = elided
	}
	//
	for _, loop := range loops {
		log.Warnf("module %s has combinational loop over nodes %v", module.Name, []uint(loop))
	}
	//
	result.Graph, result.Queue, result.Loops = g, queue, loops
	//
	stats.Log(fmt.Sprintf("Converting module %s (%d nodes, %d elided)", module.Name, g.Len(), result.Elided))
	//
	return result
}

// ConvertDesign converts every module of a design, concurrently.  Results are
// given in module order.  A module which fails to convert does not prevent the
// others from converting.
func ConvertDesign(design *netlist.Design, celltypes *netlist.CellTypes, config Config) []Result {
	var (
		modules = design.Modules()
		results = make([]Result, len(modules))
		group   errgroup.Group
		jobs    = int(config.Jobs)
	)
	//
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}
	//
	group.SetLimit(jobs)
	//
	for i, module := range modules {
		group.Go(func() error {
			defer recoverModule(module, &results[i])
			//
			results[i] = Convert(module, celltypes, config)
			//
			if results[i].Err != nil {
				log.Errorf("%s", results[i].Err)
			}
			//
			return nil
		})
	}
	// Errors are recorded per module
	_ = group.Wait()
	//
	return results
}

// Turn a panic whilst converting a given module into a failed result, so that
// other modules still convert.
func recoverModule(module *netlist.Module, result *Result) {
	if r := recover(); r != nil {
		*result = Result{Module: module, Err: fmt.Errorf("module %s: %w: %v", module.Name, ErrInvariant, r)}
		//
		log.Errorf("%s", result.Err)
	}
}

func isElidable(node Node) bool {
	return node.Function().Name == TagBuf && node.Name().IsEmpty()
}
