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

package coo_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/coo"
)

// requireDistinctInRange checks that every row is a valid multi-index and
// no two rows collide.
func requireDistinctInRange(t *testing.T, d *coo.Descriptor, x coo.Index) {
	t.Helper()

	seen := make(map[coo.Word]bool, len(x))
	for _, w := range x {
		require.False(t, seen[w], "duplicate row %s", d.TupleString(w))
		seen[w] = true
		for dim := 0; dim < d.Order(); dim++ {
			require.Less(t, d.Extract(w, dim), d.DimSize(dim))
		}
	}
}

func TestSampleIndex(t *testing.T) {
	t.Parallel()

	d, err := coo.NewDescriptor(20, 500, 4, 1000)
	require.NoError(t, err)

	x := coo.NewIndex(500)
	rng := rand.New(rand.NewPCG(41, 0))
	require.NoError(t, coo.SampleIndex(rng, d, x))
	requireDistinctInRange(t, d, x)
}

func TestSampleThenSort(t *testing.T) {
	t.Parallel()

	d, err := coo.NewDescriptor(20, 500, 4, 1000)
	require.NoError(t, err)

	x := coo.NewIndex(500)
	rng := rand.New(rand.NewPCG(43, 0))
	require.NoError(t, coo.SampleIndex(rng, d, x))
	before := x.Clone()

	dims := []int{0, 1, 2, 3}
	perm := coo.NewPerm(len(x))
	require.NoError(t, coo.Sort(d, x, perm, dims))

	// Every adjacent pair obeys the composite order.
	for i := 0; i+1 < len(x); i++ {
		assert.False(t, compositeLess(d, x[i+1], x[i], dims), "rows %d and %d out of order", i, i+1)
	}

	// The permutation rearranges exactly the sampled rows.
	rearranged := coo.NewIndex(len(x))
	require.NoError(t, coo.Permute(rearranged, before, perm))
	assert.True(t, x.Equal(rearranged))
}

func TestSampleIndexTooMany(t *testing.T) {
	t.Parallel()

	d, err := coo.NewDescriptor(3, 3)
	require.NoError(t, err)

	err = coo.SampleIndex(rand.New(rand.NewPCG(1, 0)), d, coo.NewIndex(10))
	assert.ErrorIs(t, err, coo.ErrBadInput)
}

func TestSampleIndexFullDomain(t *testing.T) {
	t.Parallel()

	// Sampling every cell of the domain must produce each exactly once.
	d, err := coo.NewDescriptor(4, 3, 2)
	require.NoError(t, err)

	x := coo.NewIndex(int(d.TotalSize()))
	require.NoError(t, coo.SampleIndex(rand.New(rand.NewPCG(5, 0)), d, x))
	requireDistinctInRange(t, d, x)
}

func TestSampleIndexShuffleTake(t *testing.T) {
	t.Parallel()

	d, err := coo.NewDescriptor(30, 30)
	require.NoError(t, err)

	for _, n := range []int{1, 17, 450, 900} {
		x := coo.NewIndex(n)
		rng := rand.New(rand.NewPCG(uint64(n), 0))
		require.NoError(t, coo.SampleIndexShuffleTake(rng, d, x))
		requireDistinctInRange(t, d, x)
	}

	err = coo.SampleIndexShuffleTake(rand.New(rand.NewPCG(1, 0)), d, coo.NewIndex(901))
	assert.ErrorIs(t, err, coo.ErrBadInput)
}

func TestSamplePerm(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 7))
	p := coo.NewPerm(100)
	coo.SamplePerm(rng, p)

	seen := make([]bool, len(p))
	for _, v := range p {
		require.Less(t, int(v), len(p))
		require.False(t, seen[v])
		seen[v] = true
	}
}

func TestSampleElems(t *testing.T) {
	t.Parallel()

	s := make([]coo.Elem, 200)
	coo.SampleElems(rand.New(rand.NewPCG(9, 0)), s)
	for _, e := range s {
		assert.GreaterOrEqual(t, e, coo.Elem(0))
		assert.Less(t, e, coo.Elem(1))
	}
}
