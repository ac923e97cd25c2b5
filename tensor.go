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

// A Tensor bundles the three arrays that make up one sparse tensor: the
// descriptor, the packed indices of its non-zero entries and their values.
// It is a convenience aggregate; all the heavy lifting happens on the
// parts, which remain directly accessible.
type Tensor struct {
	Desc  *Descriptor
	Indx  Index
	Elems []Elem
}

// NewTensor builds a tensor with room for nnz non-zero entries in a domain
// with the given dimension sizes.
func NewTensor(nnz int, dimSize ...Word) (*Tensor, error) {
	d, err := NewDescriptor(dimSize...)
	if err != nil {
		return nil, err
	}
	return &Tensor{
		Desc:  d,
		Indx:  NewIndex(nnz),
		Elems: make([]Elem, nnz),
	}, nil
}

// Len returns the number of non-zero entries.
func (t *Tensor) Len() int { return len(t.Indx) }

// Sample fills the tensor with test data: distinct random indices and
// values in [0, 1).
func (t *Tensor) Sample(rng *rand.Rand) error {
	if err := SampleIndex(rng, t.Desc, t.Indx); err != nil {
		return err
	}
	SampleElems(rng, t.Elems)
	return nil
}

// Shuffle reorders the entries randomly, keeping indices and values
// paired.
func (t *Tensor) Shuffle(rng *rand.Rand) error {
	p := NewPerm(t.Len())
	SamplePerm(rng, p)
	if err := t.Indx.Permute(p); err != nil {
		return err
	}
	return PermuteInPlace(t.Elems, p)
}

// Sort orders the entries by one dimension, permuting the values along
// with the indices.
func (t *Tensor) Sort(dim int, opts ...SortOption) error {
	p := NewPerm(t.Len())
	if err := Sort(t.Desc, t.Indx, p, []int{dim}, opts...); err != nil {
		return err
	}
	return PermuteInPlace(t.Elems, p)
}
