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

import "golang.org/x/sync/errgroup"

// A View holds one permutation per dimension of an index array: applying
// Perm(i) to the array yields it sorted on dimension i alone. The array
// itself is never reordered; the view stores every access pattern of the
// same tensor side by side.
//
// Like [Freq], a View borrows its descriptor and index and must not
// outlive them.
type View struct {
	desc *Descriptor
	indx Index

	// sortedDim is the dimension the array is already sorted on, or order
	// if there is none; its permutation is the identity.
	sortedDim int

	dimPerm []Perm
}

// NewView builds the per-dimension sort permutations of x. sortedDim names
// a dimension the caller knows x is already sorted on, which gets the
// identity permutation for free; pass d.Order() (or any value outside
// [0, order)) if no dimension is known sorted.
//
// Each remaining dimension sorts a private copy of x, so x is left exactly
// as it was. The dimensions are processed concurrently.
func NewView(d *Descriptor, x Index, sortedDim int) (*View, error) {
	if sortedDim < 0 || sortedDim >= d.order {
		sortedDim = d.order
	}
	v := &View{
		desc:      d,
		indx:      x,
		sortedDim: sortedDim,
		dimPerm:   make([]Perm, d.order),
	}

	var eg errgroup.Group
	for i := 0; i < d.order; i++ {
		if i == sortedDim {
			v.dimPerm[i] = IdentityPerm(len(x))
			continue
		}
		eg.Go(func() error {
			scratch := x.Clone()
			perm := NewPerm(len(x))
			if err := Sort(d, scratch, perm, []int{i}); err != nil {
				return err
			}
			v.dimPerm[i] = perm
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return v, nil
}

// Perm returns the permutation that sorts the underlying index array on
// dimension dim.
func (v *View) Perm(dim int) Perm { return v.dimPerm[dim] }

// SortedDim returns the dimension the underlying array was declared sorted
// on, or the order if none was.
func (v *View) SortedDim() int { return v.sortedDim }
