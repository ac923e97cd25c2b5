// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package coo

import (
	"runtime"
	"sync/atomic"

	"github.com/bufbuild/coo/internal/radix"
)

// A SortOption is a per-call configuration setting for [Sort] and
// [SortAlt].
type SortOption struct{ apply func(*sortConfig) }

// WithRadixBits sets how many key bits one radix pass processes, between 1
// and [WordBits]. More bits mean fewer passes but exponentially larger
// histograms; the default of 8 is right for almost everyone.
func WithRadixBits(bits int) SortOption {
	return SortOption{func(c *sortConfig) { c.radixBits = bits }}
}

// WithThreads sets the number of concurrent workers for this sort. Setting
// it overrides both the process default and the small-array cutoff that
// normally forces a single worker.
func WithThreads(n int) SortOption {
	return SortOption{func(c *sortConfig) { c.threads = n }}
}

// Process-wide defaults, read once at sort entry. Zero means unset.
var (
	defaultRadixBits atomic.Int64
	defaultThreads   atomic.Int64
)

// SetDefaultRadixBits changes the process-wide radix width used by sorts
// that do not pass [WithRadixBits]. Zero restores the built-in default of
// 8; the value is validated when a sort reads it, not here.
func SetDefaultRadixBits(bits int) { defaultRadixBits.Store(int64(bits)) }

// SetDefaultThreads changes the process-wide worker count used by sorts
// that do not pass [WithThreads]. Zero restores the built-in behavior:
// GOMAXPROCS workers for large arrays, one worker at or below the
// small-array cutoff.
func SetDefaultThreads(n int) { defaultThreads.Store(int64(n)) }

type sortConfig struct {
	radixBits int
	threads   int
}

// resolveSortConfig layers per-call options over the process defaults and
// validates the result. n is the array length, which decides whether an
// unset worker count collapses to one.
func resolveSortConfig(n int, opts []SortOption) (sortConfig, error) {
	cfg := sortConfig{
		radixBits: int(defaultRadixBits.Load()),
		threads:   int(defaultThreads.Load()),
	}
	for _, o := range opts {
		o.apply(&cfg)
	}

	if cfg.radixBits == 0 {
		cfg.radixBits = radix.DefaultBits
	}
	if cfg.radixBits < 1 || cfg.radixBits > WordBits {
		return cfg, badInputf("radix width %d outside [1, %d]", cfg.radixBits, WordBits)
	}

	switch {
	case cfg.threads < 0:
		return cfg, badInputf("thread count %d below 1", cfg.threads)
	case cfg.threads == 0:
		if n <= radix.ParallelThreshold {
			cfg.threads = 1
		} else {
			cfg.threads = runtime.GOMAXPROCS(0)
		}
	}

	return cfg, nil
}
