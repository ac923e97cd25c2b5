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

import "slices"

// An Index is a dense array of packed multi-indices, one word per row. The
// meaning of each word is fixed by the [Descriptor] the caller pairs it
// with; an Index does not carry its descriptor around.
type Index []Word

// NewIndex allocates a zeroed index array of n rows.
func NewIndex(n int) Index { return make(Index, n) }

// Clone returns a copy of x.
func (x Index) Clone() Index { return slices.Clone(x) }

// Equal reports whether x and y have the same length and rows.
func (x Index) Equal(y Index) bool { return slices.Equal(x, y) }

// Permute reorders x in place so that row i becomes the row previously at
// p[i]. The rows move through a scratch buffer; see [Permute] for the
// out-of-place form.
func (x Index) Permute(p Perm) error { return PermuteInPlace(x, p) }

// An Unpacked is the row-major len×order expansion of an [Index]: plain
// coordinates, one word each, laid out row after row. It exists for I/O and
// printing; everything else operates on the packed form.
type Unpacked []Word

// NewUnpacked allocates a zeroed unpacked array holding rows full
// multi-indices of the given descriptor.
func NewUnpacked(d *Descriptor, rows int) Unpacked {
	return make(Unpacked, rows*d.order)
}

// Rows returns the number of multi-indices held by u under descriptor d.
func (u Unpacked) Rows(d *Descriptor) int { return len(u) / d.order }

// At returns the coordinate of dimension dim in row i.
func (u Unpacked) At(d *Descriptor, i, dim int) Word { return u[i*d.order+dim] }

// Set writes the coordinate of dimension dim in row i.
func (u Unpacked) Set(d *Descriptor, i, dim int, val Word) { u[i*d.order+dim] = val }

// Unpack expands every row of x into dst. dst must hold exactly
// len(x)*order coordinates.
func (d *Descriptor) Unpack(x Index, dst Unpacked) error {
	if len(dst) != len(x)*d.order {
		return badInputf("unpacked length %d, want %d", len(dst), len(x)*d.order)
	}
	for i, w := range x {
		d.UnpackOne(w, dst[i*d.order:(i+1)*d.order])
	}
	return nil
}

// Pack packs every row of u into dst, the inverse of [Descriptor.Unpack].
// Coordinates must be in range for their dimension; out-of-range
// coordinates return [ErrBadInput] with dst untouched.
func (d *Descriptor) Pack(u Unpacked, dst Index) error {
	if len(u) != len(dst)*d.order {
		return badInputf("unpacked length %d, want %d", len(u), len(dst)*d.order)
	}
	for i := range dst {
		if _, err := d.PackOne(u[i*d.order : (i+1)*d.order]); err != nil {
			return err
		}
	}
	for i := range dst {
		dst[i], _ = d.PackOne(u[i*d.order : (i+1)*d.order])
	}
	return nil
}
