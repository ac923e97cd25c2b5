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

// A Freq counts, for every dimension, how many rows of an index array carry
// each coordinate value. It borrows the descriptor and index it was built
// from and must not outlive them; the counts are a snapshot taken at
// construction.
type Freq struct {
	desc *Descriptor
	indx Index

	dimFreq [][]Word
}

// NewFreq builds the per-dimension histograms of x in a single pass.
func NewFreq(d *Descriptor, x Index) *Freq {
	f := &Freq{
		desc:    d,
		indx:    x,
		dimFreq: make([][]Word, d.order),
	}
	for i := range f.dimFreq {
		f.dimFreq[i] = make([]Word, d.dimSize[i])
	}

	for _, w := range x {
		for k := 0; k < d.order; k++ {
			f.dimFreq[k][d.Extract(w, k)]++
		}
	}

	return f
}

// Count returns how many rows carry coordinate val on dimension dim.
func (f *Freq) Count(dim int, val Word) Word { return f.dimFreq[dim][val] }

// Counts returns the histogram of dimension dim, indexed by coordinate.
// The returned slice is owned by f and must not be modified.
func (f *Freq) Counts(dim int) []Word { return f.dimFreq[dim] }
