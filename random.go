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
	"math/rand/v2"
)

// SampleIndex fills x with distinct multi-indices drawn uniformly from the
// descriptor's domain. It returns [ErrBadInput] if the domain has fewer
// cells than x has rows.
//
// This is the sort-discard algorithm: draw flat cell numbers, sort,
// redraw whatever collided, repeat until distinct, then spread each cell
// number into per-dimension coordinates. Memory use is proportional to x,
// not to the domain; see [SampleIndexShuffleTake] for the alternative
// trade-off.
func SampleIndex(rng *rand.Rand, d *Descriptor, x Index) error {
	if Word(len(x)) > d.totalSize {
		return badInputf("cannot sample %d distinct indices from a domain of %d cells", len(x), d.totalSize)
	}
	if len(x) == 0 {
		return nil
	}

	dims := make([]int, d.order)
	for i := range dims {
		dims[i] = i
	}

	for i := range x {
		x[i] = randWord(rng, d.totalSize)
	}

	// The values are flat cell numbers for now, but sorting "by all
	// dimensions" still totally orders the bits they occupy, which is all
	// the duplicate scan needs: collisions end up adjacent.
	for distinct := false; !distinct; {
		if err := Sort(d, x, nil, dims); err != nil {
			return err
		}
		distinct = true
		for i := 0; i < len(x)-1; i++ {
			for x[i] == x[i+1] {
				x[i] = randWord(rng, d.totalSize)
				distinct = false
			}
		}
	}

	cellsToIndex(d, x)
	return nil
}

// SampleIndexShuffleTake fills x with distinct multi-indices drawn
// uniformly from the descriptor's domain by running a Fisher-Yates shuffle
// over all totalSize cell numbers and keeping the first len(x) of them. One
// pass, no retries, but the whole domain's worth of shuffle state must fit
// in memory. It returns [ErrBadInput] if the domain has fewer cells than x
// has rows.
func SampleIndexShuffleTake(rng *rand.Rand, d *Descriptor, x Index) error {
	if Word(len(x)) > d.totalSize {
		return badInputf("cannot sample %d distinct indices from a domain of %d cells", len(x), d.totalSize)
	}

	shuffleTake(rng, x, d.totalSize)
	cellsToIndex(d, x)
	return nil
}

// shuffleTake draws len(dst) distinct values from [0, domain) by shuffling
// the virtual array [0, 1, ..., domain-1] just far enough to fix its first
// len(dst) entries. The tail of the virtual array is materialized lazily in
// a side buffer: a zero slot still holds its own position.
func shuffleTake(rng *rand.Rand, dst []Word, domain Word) {
	if len(dst) == 0 {
		return
	}

	// A zero slot means "untouched"; the caller's buffer must start that
	// way.
	clear(dst)
	tail := make([]Word, domain-Word(len(dst)))
	at := func(i Word) Word {
		var v Word
		if i < Word(len(dst)) {
			v = dst[i]
		} else {
			v = tail[i-Word(len(dst))]
		}
		if v == 0 {
			return i
		}
		if v == wordMax {
			return 0
		}
		return v
	}
	set := func(i, v Word) {
		if v == 0 {
			v = wordMax
		}
		if i < Word(len(dst)) {
			dst[i] = v
		} else {
			tail[i-Word(len(dst))] = v
		}
	}

	// Zero stands in for "untouched", so the value zero itself travels
	// around encoded as the all-ones word; at and set translate. The final
	// write of each round stores the decoded value, and slots below i are
	// never read again, so dst needs no second pass.
	for i := range dst {
		k := Word(i) + randWord(rng, domain-Word(i))
		vi, vk := at(Word(i)), at(k)
		set(k, vi)
		dst[i] = vk
	}
}

// cellsToIndex rewrites flat cell numbers in [0, totalSize) into packed
// multi-indices, peeling one coordinate per dimension by div/mod.
func cellsToIndex(d *Descriptor, x Index) {
	for i, v := range x {
		var w Word
		for k := 0; k < d.order; k++ {
			n := d.dimSize[k]
			w |= (v % n) << d.bitOffset[k]
			v /= n
		}
		x[i] = w
	}
}

// SampleElems fills s with uniform values in [0, 1).
func SampleElems(rng *rand.Rand, s []Elem) {
	for i := range s {
		s[i] = Elem(rng.Float64())
	}
}

// SamplePerm fills p with a uniformly random permutation.
func SamplePerm(rng *rand.Rand, p Perm) {
	for i := range p {
		p[i] = Word(i)
	}
	ShufflePerm(rng, p)
}

// ShufflePerm permutes the entries of p uniformly at random.
func ShufflePerm(rng *rand.Rand, p Perm) {
	for i := len(p) - 1; i > 0; i-- {
		k := randWord(rng, Word(i)+1)
		p[k], p[i] = p[i], p[k]
	}
}
