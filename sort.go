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
	"slices"

	"github.com/bufbuild/coo/internal/radix"
	"github.com/bufbuild/coo/internal/sync2"
)

// Sort reorders x by the composite key formed by the bit fields of dims,
// highest sort priority first: rows are ordered by their dims[0]
// coordinate, ties by dims[1], and so on. Bits outside the listed
// dimensions never influence the order, and rows with equal composite keys
// keep their relative order.
//
// If perm is non-nil it must have the same length as x and is filled with
// the permutation that was applied, mapping sorted positions to original
// ones; hand it to [Permute] to reorder any parallel array the same way.
//
// The sort runs a parallel least-significant-digit radix sort over an
// internally allocated twin buffer and always leaves the result in x. Use
// [SortAlt] to supply the twin yourself and skip the final copy.
//
// It returns [ErrBadInput] for an empty or out-of-range dims list, a
// mismatched perm length, or an out-of-range radix width; x and perm are
// untouched in that case.
func Sort(d *Descriptor, x Index, perm Perm, dims []int, opts ...SortOption) error {
	cfg, err := resolveSortConfig(len(x), opts)
	if err != nil {
		return err
	}
	if err := checkSortArgs(d, x, perm, dims); err != nil {
		return err
	}

	buf, drop := wordScratch.Get()
	defer drop()
	n := len(x)
	need := n
	if perm != nil {
		need += n
	}
	*buf = slices.Grow((*buf)[:0], need)[:need]
	alt := Index((*buf)[:n])
	var permAlt Perm
	if perm != nil {
		permAlt = Perm((*buf)[n:])
	}

	if runSort(d, x, alt, perm, permAlt, dims, cfg) {
		copy(x, alt)
		if perm != nil {
			copy(perm, permAlt)
		}
	}
	return nil
}

// SortAlt is [Sort] for callers that want zero copies: the sort scatters
// back and forth between x and xAlt (and perm and permAlt, when tracking a
// permutation) and reports where the result ended up. If swapped is false
// the sorted rows are in x and the permutation in perm; if true they are in
// xAlt and permAlt.
//
// xAlt must match x in length, and permAlt must match perm; [ErrBadInput]
// otherwise, with every buffer untouched.
func SortAlt(d *Descriptor, x, xAlt Index, perm, permAlt Perm, dims []int, opts ...SortOption) (swapped bool, err error) {
	cfg, err := resolveSortConfig(len(x), opts)
	if err != nil {
		return false, err
	}
	if err := checkSortArgs(d, x, perm, dims); err != nil {
		return false, err
	}
	if len(xAlt) != len(x) {
		return false, badInputf("twin index length %d, want %d", len(xAlt), len(x))
	}
	if perm != nil && len(permAlt) != len(perm) {
		return false, badInputf("twin permutation length %d, want %d", len(permAlt), len(perm))
	}

	return runSort(d, x, xAlt, perm, permAlt, dims, cfg), nil
}

// runSort plans the passes and hands off to the radix engine. Arguments are
// already validated.
func runSort(d *Descriptor, x, xAlt Index, perm, permAlt Perm, dims []int, cfg sortConfig) (swapped bool) {
	plan := radix.Plan(d.bitWidth, d.bitOffset, dims, cfg.radixBits)

	bins, drop := binScratch.Get()
	defer drop()
	*bins = slices.Grow((*bins)[:0], cfg.threads*radix.Bins(plan))[:cfg.threads*radix.Bins(plan)]
	clear(*bins)

	return radix.Sort(x, xAlt, perm, permAlt, plan, cfg.threads, *bins)
}

func checkSortArgs(d *Descriptor, x Index, perm Perm, dims []int) error {
	if len(dims) == 0 {
		return badInputf("no sort dimensions given")
	}
	for _, dim := range dims {
		if dim < 0 || dim >= d.order {
			return badInputf("sort dimension %d out of range for order %d", dim, d.order)
		}
	}
	if perm != nil && len(perm) != len(x) {
		return badInputf("permutation length %d, want %d", len(perm), len(x))
	}
	return nil
}

// Scratch buffers shared by all sorts in the process.
var (
	wordScratch = sync2.Pool[[]Word]{
		Reset: func(s *[]Word) { *s = (*s)[:0] },
	}
	binScratch = sync2.Pool[[]int]{
		Reset: func(s *[]int) { *s = (*s)[:0] },
	}
)
