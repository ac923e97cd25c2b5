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
	"fmt"

	"github.com/bufbuild/coo"
)

func errBadInputf(format string, args ...any) error {
	return fmt.Errorf("dist: %w: "+format, append([]any{coo.ErrBadInput}, args...)...)
}

// A Dist records how many tensor entries belong to each rank and where
// they sit in the master's arrays. Building one reorders the master's
// arrays so each rank's entries are contiguous, which is what lets
// [ScatterIndex] and friends move plain slices.
type Dist struct {
	mesh    *Mesh
	counts  []coo.Word
	offsets []coo.Word // np+1 entries, last is the total
}

// NewDist assigns every row of x a destination part via mp, groups the
// master's x (and elems, if non-nil) by destination, and shares the
// per-rank counts with the whole mesh. All ranks must call it; only the
// master's x and elems are consulted.
func NewDist(m *Mesh, mp *MultiPart, x coo.Index, elems []coo.Elem) (*Dist, error) {
	if mp.NumParts() > coo.Word(m.Size()) {
		return nil, errBadInputf("%d parts exceed %d ranks", mp.NumParts(), m.Size())
	}

	counts := make([]coo.Word, m.Size())

	if m.Rank() == Master {
		// Number every row with its destination, then sort rows by that
		// number so each rank's share is one contiguous run.
		dest := coo.NewIndex(len(x))
		for i := range x {
			pn := mp.PartNum(x, i)
			dest[i] = pn
			counts[pn]++
		}

		destDesc, err := coo.NewDescriptor(coo.Word(m.Size()))
		if err != nil {
			return nil, err
		}
		perm := coo.NewPerm(len(x))
		if err := coo.Sort(destDesc, dest, perm, []int{0}); err != nil {
			return nil, err
		}
		if err := x.Permute(perm); err != nil {
			return nil, err
		}
		if elems != nil {
			if err := coo.PermuteInPlace(elems, perm); err != nil {
				return nil, err
			}
		}
	}

	Bcast(m.comm, Master, counts)

	d := &Dist{
		mesh:    m,
		counts:  counts,
		offsets: make([]coo.Word, m.Size()+1),
	}
	for i, n := range counts {
		d.offsets[i+1] = d.offsets[i] + n
	}

	return d, nil
}

// Count returns how many entries belong to rank r.
func (d *Dist) Count(r int) coo.Word { return d.counts[r] }

// Offset returns where rank r's entries start in the master's arrays.
func (d *Dist) Offset(r int) coo.Word { return d.offsets[r] }

// Sum returns the total number of distributed entries.
func (d *Dist) Sum() coo.Word { return d.offsets[len(d.offsets)-1] }

// ScatterIndex hands each rank its run of the master's index array and
// returns the received part.
func ScatterIndex(d *Dist, x coo.Index) coo.Index {
	return coo.Index(Scatterv(d.mesh.comm, Master, x, d.counts, d.offsets))
}

// GatherIndex reassembles the per-rank parts at the master, which gets the
// full array back; other ranks get nil.
func GatherIndex(d *Dist, part coo.Index) coo.Index {
	return coo.Index(Gatherv(d.mesh.comm, Master, part, d.counts, d.offsets))
}

// ScatterElems hands each rank its run of the master's element array.
func ScatterElems(d *Dist, s []coo.Elem) []coo.Elem {
	return Scatterv(d.mesh.comm, Master, s, d.counts, d.offsets)
}

// GatherElems reassembles the per-rank element parts at the master.
func GatherElems(d *Dist, part []coo.Elem) []coo.Elem {
	return Gatherv(d.mesh.comm, Master, part, d.counts, d.offsets)
}
