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
package util

import (
	"fmt"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// PerfStats records the time, allocation and garbage collection count at the
// point it was created, so that the cost of some piece of work can be logged.
type PerfStats struct {
	start  time.Time
	memory runtime.MemStats
}

// NewPerfStats takes a snapshot of the current time and memory statistics.
// Memory statistics are only read when debug logging is enabled, since doing
// so stops the world.
func NewPerfStats() *PerfStats {
	stats := &PerfStats{start: time.Now()}
	//
	if log.IsLevelEnabled(log.DebugLevel) {
		runtime.ReadMemStats(&stats.memory)
	}
	//
	return stats
}

// Log reports (at debug level) the time taken and memory allocated since this
// snapshot was taken.
func (p *PerfStats) Log(prefix string) {
	if !log.IsLevelEnabled(log.DebugLevel) {
		return
	}
	//
	var now runtime.MemStats
	//
	runtime.ReadMemStats(&now)
	//
	log.WithFields(log.Fields{
		"time":  time.Since(p.start).Round(time.Millisecond),
		"alloc": mebibytes(now.TotalAlloc - p.memory.TotalAlloc),
		"gc":    now.NumGC - p.memory.NumGC,
		"heap":  mebibytes(now.HeapAlloc),
	}).Debug(prefix)
}

func mebibytes(n uint64) string {
	return fmt.Sprintf("%dMb", n>>20)
}
