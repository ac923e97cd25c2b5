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

// Package radix implements the parallel LSD radix sort that powers
// coo.Sort.
//
// The sort never looks at whole keys. A [Plan] turns the caller's dimension
// priorities into a sequence of bit windows, and each pass reorders the
// array by one window: count occurrences into per-worker histogram bands,
// turn the bands into write offsets with a single exclusive prefix sum, and
// scatter rows to those offsets. Because every pass is stable and windows
// are visited from the least significant bit of the lowest-priority
// dimension upward, the final array is ordered by the concatenated fields
// of the requested dimensions.
package radix

import (
	"math/bits"
	"sync"

	"github.com/bufbuild/coo/internal/debug"
)

// Uint is the set of machine-word types the sorter can reorder.
type Uint interface {
	~uint32 | ~uint64
}

// DefaultBits is the radix width used when the caller does not choose one.
const DefaultBits = 8

// ParallelThreshold is the array length at or below which a sort runs on a
// single worker unless the caller demands otherwise.
const ParallelThreshold = 100_000

// A Window is one radix pass: the field of Bits bits starting at bit Offset
// of every packed word.
type Window struct {
	Offset, Bits uint
}

// Plan lays out the passes that sort by dims, highest priority first, given
// the per-dimension field widths and offsets of the packed layout.
//
// Passes run in plan order. LSD sorting wants the least significant part of
// the composite key first, so the windows of the last dimension in dims
// come first, each dimension's field is walked low bits to high in chunks
// of at most radixBits, and no window ever straddles two dimensions.
// Dimensions with zero-width fields contribute no passes.
func Plan(widths, offsets []uint, dims []int, radixBits int) []Window {
	var plan []Window
	for i := len(dims) - 1; i >= 0; i-- {
		dim := dims[i]
		off := offsets[dim]
		for rem := widths[dim]; rem > 0; {
			b := min(uint(radixBits), rem)
			plan = append(plan, Window{Offset: off, Bits: b})
			off += b
			rem -= b
		}
	}
	return plan
}

// Bins returns the histogram size a plan needs: one bin per value of its
// widest window.
func Bins(plan []Window) int {
	var widest uint
	for _, w := range plan {
		widest = max(widest, w.Bits)
	}
	return 1 << widest
}

// Sort runs the plan over src, scattering back and forth between src and
// dst, which must have equal length. If perm is non-nil it is seeded with
// the identity on the first pass and carried through every scatter, so it
// ends up mapping sorted positions to original ones; permAlt must then be a
// buffer of the same length.
//
// workers is the number of concurrent counters/scatterers; bins must hold
// at least workers*Bins(plan) entries and arrive zeroed. Sort reports
// whether the final result landed in dst rather than src.
func Sort[T Uint](src, dst []T, perm, permAlt []T, plan []Window, workers int, bins []int) (swapped bool) {
	if len(plan) == 0 {
		// Nothing to reorder, but the contract still promises a valid
		// permutation.
		for i := range perm {
			perm[i] = T(i)
		}
		return false
	}

	workers = max(workers, 1)
	numBins := Bins(plan)

	for pass, win := range plan {
		mask := fieldMask[T](win.Offset, win.Bits)
		debug.Log(nil, "radix pass", "%d/%d: bits [%d, %d), %d workers", pass+1, len(plan), win.Offset, win.Offset+win.Bits, workers)

		// Phase 1: each worker histograms its slice into its own band of
		// bins. The first pass also seeds the identity permutation.
		parallel(workers, func(t int) {
			lo, hi := slice(len(src), workers, t)
			band := bins[t*numBins:]
			for i := lo; i < hi; i++ {
				if perm != nil && pass == 0 {
					perm[i] = T(i)
				}
				band[(src[i]&mask)>>win.Offset]++
			}
		})

		// Phase 2: exclusive prefix sum in bin-major, worker-minor order.
		// After this, bins[t*numBins+v] is the first output slot for
		// worker t's rows with window value v.
		total := 0
		for v := 0; v < numBins; v++ {
			for t := 0; t < workers; t++ {
				old := bins[t*numBins+v]
				bins[t*numBins+v] = total
				total += old
			}
		}

		// Phase 3: scatter. Workers write disjoint slots by construction
		// of the offsets, so no locks are needed.
		parallel(workers, func(t int) {
			lo, hi := slice(len(src), workers, t)
			band := bins[t*numBins:]
			for i := lo; i < hi; i++ {
				w := src[i]
				pos := band[(w&mask)>>win.Offset]
				band[(w&mask)>>win.Offset] = pos + 1
				dst[pos] = w
				if perm != nil {
					permAlt[pos] = perm[i]
				}
			}
		})

		src, dst = dst, src
		perm, permAlt = permAlt, perm
		swapped = !swapped

		clear(bins[:workers*numBins])
	}

	return swapped
}

// fieldMask selects width bits starting at offset, saturating to all ones
// when the field spans the whole word.
func fieldMask[T Uint](offset, width uint) T {
	all := ^T(0)
	if width >= uint(bits.OnesCount64(uint64(all))) {
		return all
	}
	return (T(1)<<width - 1) << offset
}

// slice returns worker t's half-open share of n elements: equal contiguous
// chunks with the last worker absorbing the remainder.
func slice(n, workers, t int) (lo, hi int) {
	chunk := n / workers
	lo = t * chunk
	hi = lo + chunk
	if t == workers-1 {
		hi = n
	}
	return lo, hi
}

// parallel runs fn(t) for every worker id on its own goroutine and waits
// for all of them. A single worker runs inline.
func parallel(workers int, fn func(t int)) {
	if workers == 1 {
		fn(0)
		return
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for t := 0; t < workers; t++ {
		go func() {
			defer wg.Done()
			fn(t)
		}()
	}
	wg.Wait()
}
