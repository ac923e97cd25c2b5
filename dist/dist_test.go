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

package dist_test

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/coo"
	"github.com/bufbuild/coo/dist"
)

func TestCollectives(t *testing.T) {
	t.Parallel()

	comms := dist.NewComms(4)
	counts := []coo.Word{2, 1, 3, 2}
	offsets := []coo.Word{0, 2, 3, 6, 8}
	send := []coo.Word{10, 11, 20, 30, 31, 32, 40, 41}

	var mu sync.Mutex
	parts := make(map[int][]coo.Word)

	err := dist.Run(comms, func(c *dist.Comm) error {
		// Bcast: everyone ends up with the master's buffer.
		buf := make([]coo.Word, 3)
		if c.Rank() == dist.Master {
			copy(buf, []coo.Word{7, 8, 9})
		}
		dist.Bcast(c, dist.Master, buf)
		assert.Equal(t, []coo.Word{7, 8, 9}, buf)

		// Scatterv: each rank gets its slice.
		part := dist.Scatterv(c, dist.Master, send, counts, offsets)
		mu.Lock()
		parts[c.Rank()] = part
		mu.Unlock()

		// Gatherv: the master gets the concatenation back.
		back := dist.Gatherv(c, dist.Master, part, counts, offsets)
		if c.Rank() == dist.Master {
			assert.Equal(t, send, back)
		} else {
			assert.Nil(t, back)
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []coo.Word{10, 11}, parts[0])
	assert.Equal(t, []coo.Word{20}, parts[1])
	assert.Equal(t, []coo.Word{30, 31, 32}, parts[2])
	assert.Equal(t, []coo.Word{40, 41}, parts[3])
}

func TestMultiPartPartNum(t *testing.T) {
	t.Parallel()

	d, err := coo.NewDescriptor(8, 6, 2)
	require.NoError(t, err)

	// 2 parts on dim 0 (coordinates 0-3 and 4-7) and 3 on dim 1
	// (coordinates 0-1, 2-3, 4-5); part numbers go row-major with dim 0
	// fastest.
	mp, err := dist.NewMultiPart(d, []int{2, 3}, 0, 1)
	require.NoError(t, err)
	require.Equal(t, coo.Word(6), mp.NumParts())

	x := coo.NewIndex(4)
	for i, coords := range [][]coo.Word{
		{0, 0, 0}, // parts (0, 0) -> 0
		{4, 0, 1}, // parts (1, 0) -> 1
		{3, 2, 0}, // parts (0, 1) -> 2
		{7, 5, 1}, // parts (1, 2) -> 5
	} {
		x[i], err = d.PackOne(coords)
		require.NoError(t, err)
	}

	assert.Equal(t, coo.Word(0), mp.PartNum(x, 0))
	assert.Equal(t, coo.Word(1), mp.PartNum(x, 1))
	assert.Equal(t, coo.Word(2), mp.PartNum(x, 2))
	assert.Equal(t, coo.Word(5), mp.PartNum(x, 3))
}

func TestMultiPartLargestRemaining(t *testing.T) {
	t.Parallel()

	d, err := coo.NewDescriptor(4, 100, 8)
	require.NoError(t, err)

	// With no priority dimensions, the largest dimensions get split
	// first: 100, then 8.
	mp, err := dist.NewMultiPart(d, []int{2, 2})
	require.NoError(t, err)
	require.Equal(t, coo.Word(4), mp.NumParts())

	w, err := d.PackOne([]coo.Word{0, 99, 7})
	require.NoError(t, err)
	// Coordinate 99 is in the second half of dim 1, coordinate 7 in the
	// second half of dim 2: the last part.
	assert.Equal(t, coo.Word(3), mp.PartNum(coo.Index{w}, 0))
}

func TestDistScatterGather(t *testing.T) {
	t.Parallel()

	const np = 4
	d, err := coo.NewDescriptor(32, 32)
	require.NoError(t, err)

	master := coo.NewIndex(300)
	rng := rand.New(rand.NewPCG(83, 0))
	require.NoError(t, coo.SampleIndex(rng, d, master))
	elems := make([]coo.Elem, len(master))
	coo.SampleElems(rng, elems)

	wantPairs := make(map[coo.Word]coo.Elem)
	for i, w := range master {
		wantPairs[w] = elems[i]
	}

	comms := dist.NewComms(np)
	err = dist.Run(comms, func(c *dist.Comm) error {
		m, err := dist.NewMesh(c, 2, 2)
		if err != nil {
			return err
		}

		mp, err := dist.NewMultiPart(d, []int{2, 2}, 0, 1)
		if err != nil {
			return err
		}

		var x coo.Index
		var e []coo.Elem
		if c.Rank() == dist.Master {
			x, e = master, elems
		}

		dt, err := dist.NewDist(m, mp, x, e)
		if err != nil {
			return err
		}

		// Each rank receives exactly its count, and every row scattered to
		// this rank belongs to its part.
		part := dist.ScatterIndex(dt, x)
		partElems := dist.ScatterElems(dt, e)
		assert.Len(t, part, int(dt.Count(c.Rank())))
		assert.Len(t, partElems, int(dt.Count(c.Rank())))
		for i := range part {
			assert.Equal(t, coo.Word(c.Rank()), mp.PartNum(part, i))
			assert.Equal(t, wantPairs[part[i]], partElems[i])
		}

		// Gathering reassembles the master's (grouped) arrays.
		full := dist.GatherIndex(dt, part)
		fullElems := dist.GatherElems(dt, partElems)
		if c.Rank() == dist.Master {
			assert.True(t, full.Equal(master))
			assert.Equal(t, elems, fullElems)
		}
		return nil
	})
	require.NoError(t, err)

	// NewDist grouped the master copy in place and every index kept its
	// value.
	gotPairs := make(map[coo.Word]coo.Elem)
	for i, w := range master {
		gotPairs[w] = elems[i]
	}
	assert.Equal(t, wantPairs, gotPairs)
}

func TestMeshErrors(t *testing.T) {
	t.Parallel()

	comms := dist.NewComms(2)
	_, err := dist.NewMesh(comms[0], 2, 2, 2, 2)
	assert.ErrorIs(t, err, coo.ErrBadInput)

	_, err = dist.NewMesh(comms[0], 3)
	assert.ErrorIs(t, err, coo.ErrBadInput)
}
