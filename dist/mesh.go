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

package dist

import (
	"github.com/bufbuild/coo"
)

// MaxMeshOrder is the largest number of mesh dimensions.
const MaxMeshOrder = 3

// A Mesh arranges the ranks of a [Comm] into a logical grid. Pairing a
// mesh with a [MultiPart] of matching shape assigns every tensor cell a
// rank.
type Mesh struct {
	comm    *Comm
	dimSize []coo.Word
}

// NewMesh shapes c's ranks into a grid with the given dimension sizes.
// The product of the sizes should match the number of ranks; a smaller
// grid leaves ranks idle.
func NewMesh(c *Comm, dimSize ...coo.Word) (*Mesh, error) {
	if len(dimSize) == 0 || len(dimSize) > MaxMeshOrder {
		return nil, errBadInputf("mesh order %d outside [1, %d]", len(dimSize), MaxMeshOrder)
	}

	np := coo.Word(1)
	for _, n := range dimSize {
		np *= n
	}
	if np > coo.Word(c.Size()) {
		return nil, errBadInputf("mesh of %d cells exceeds %d ranks", np, c.Size())
	}

	return &Mesh{comm: c, dimSize: dimSize}, nil
}

// Rank returns the calling rank.
func (m *Mesh) Rank() int { return m.comm.Rank() }

// Size returns the number of ranks.
func (m *Mesh) Size() int { return m.comm.Size() }

// Order returns the number of mesh dimensions.
func (m *Mesh) Order() int { return len(m.dimSize) }

// DimSize returns the size of mesh dimension i.
func (m *Mesh) DimSize(i int) coo.Word { return m.dimSize[i] }

// A MultiPart partitions a tensor along several of its dimensions at once.
// Each partitioned dimension carries its own [coo.Partition]; together they
// tile the domain into a grid of parts that [MultiPart.PartNum] numbers in
// row-major order, first partitioned dimension fastest.
type MultiPart struct {
	desc  *coo.Descriptor
	dims  []int
	parts []*coo.Partition
}

// NewMultiPart partitions d's space along len(numParts) dimensions,
// numParts[j] ways each. The dimensions to partition are taken from
// prioDims first; once those run out, the largest not-yet-partitioned
// dimension is chosen, so the biggest axes get split and small ones stay
// whole.
func NewMultiPart(d *coo.Descriptor, numParts []int, prioDims ...int) (*MultiPart, error) {
	if len(numParts) == 0 || len(numParts) > d.Order() {
		return nil, errBadInputf("cannot partition %d of %d dimensions", len(numParts), d.Order())
	}
	if len(prioDims) > len(numParts) {
		return nil, errBadInputf("%d priority dimensions for %d partitioned dimensions", len(prioDims), len(numParts))
	}

	mp := &MultiPart{
		desc:  d,
		dims:  make([]int, 0, len(numParts)),
		parts: make([]*coo.Partition, len(numParts)),
	}

	for j := range numParts {
		dim := -1
		if j < len(prioDims) {
			dim = prioDims[j]
		} else {
			dim = mp.largestRemainingDim()
		}
		if dim < 0 {
			return nil, errBadInputf("no dimension left to partition")
		}

		pt, err := coo.PartitionBySpace(d, dim, numParts[j])
		if err != nil {
			return nil, err
		}
		mp.dims = append(mp.dims, dim)
		mp.parts[j] = pt
	}

	return mp, nil
}

// largestRemainingDim picks the biggest dimension that is not partitioned
// yet, or -1 if every dimension is.
func (mp *MultiPart) largestRemainingDim() int {
	best := -1
	for i := 0; i < mp.desc.Order(); i++ {
		taken := false
		for _, used := range mp.dims {
			if used == i {
				taken = true
				break
			}
		}
		if taken {
			continue
		}
		if best < 0 || mp.desc.DimSize(best) < mp.desc.DimSize(i) {
			best = i
		}
	}
	return best
}

// NumParts returns the total number of grid parts.
func (mp *MultiPart) NumParts() coo.Word {
	n := coo.Word(1)
	for _, pt := range mp.parts {
		n *= coo.Word(pt.NumParts())
	}
	return n
}

// PartNum returns the grid part that row i of x lands in: each partitioned
// dimension contributes the index of the part covering the row's
// coordinate, and the per-dimension indices combine row-major, first
// partitioned dimension fastest.
func (mp *MultiPart) PartNum(x coo.Index, i int) coo.Word {
	var part, stride coo.Word = 0, 1
	for j, dim := range mp.dims {
		c := mp.desc.Extract(x[i], dim)
		part += stride * partIndex(mp.parts[j], c)
		stride *= coo.Word(mp.parts[j].NumParts())
	}
	return part
}

// partIndex finds the part whose half-open coordinate interval holds c.
func partIndex(pt *coo.Partition, c coo.Word) coo.Word {
	var k coo.Word
	for c >= pt.Offset(int(k)+1) {
		k++
	}
	return k
}
