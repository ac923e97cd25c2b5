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

func TestPartitionByIndex(t *testing.T) {
	t.Parallel()

	d, err := coo.NewDescriptor(6, 40, 2)
	require.NoError(t, err)

	x := coo.NewIndex(100)
	rng := rand.New(rand.NewPCG(17, 0))
	require.NoError(t, coo.SampleIndex(rng, d, x))
	require.NoError(t, coo.Sort(d, x, nil, []int{0}))

	const numParts = 4
	pt, err := coo.PartitionByIndex(d, x, 0, numParts)
	require.NoError(t, err)

	require.Equal(t, numParts, pt.NumParts())
	assert.Equal(t, coo.Word(0), pt.Offset(0))
	assert.Equal(t, coo.Word(len(x)), pt.Offset(numParts))

	chunk := len(x) / numParts
	for k := 0; k < numParts; k++ {
		lo, hi := pt.Bounds(k)
		assert.LessOrEqual(t, lo, hi)

		// No part straddles a run of equal coordinates: the first row of a
		// part never continues the previous part's run.
		if lo > 0 && lo < coo.Word(len(x)) {
			assert.NotEqual(t, d.Extract(x[lo-1], 0), d.Extract(x[lo], 0),
				"part %d splits a run", k)
		}

		// Every part the cursor closed met its quota first; only the
		// remainder-absorbing tail may fall short.
		if hi < coo.Word(len(x)) {
			assert.GreaterOrEqual(t, int(pt.Len(k)), chunk)
		}
	}

	// Parts cover monotonically increasing coordinate ranges.
	for k := 0; k+1 < numParts; k++ {
		_, hi := pt.Bounds(k)
		lo, _ := pt.Bounds(k + 1)
		if hi > 0 && lo < coo.Word(len(x)) {
			assert.LessOrEqual(t, d.Extract(x[hi-1], 0), d.Extract(x[lo], 0))
		}
	}
}

func TestPartitionByIndexSinglePart(t *testing.T) {
	t.Parallel()

	d, err := coo.NewDescriptor(6, 40, 2)
	require.NoError(t, err)

	x := coo.NewIndex(10)
	rng := rand.New(rand.NewPCG(3, 0))
	require.NoError(t, coo.SampleIndex(rng, d, x))
	require.NoError(t, coo.Sort(d, x, nil, []int{0}))

	pt, err := coo.PartitionByIndex(d, x, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, pt.NumParts())
	assert.Equal(t, coo.Word(0), pt.Offset(0))
	assert.Equal(t, coo.Word(len(x)), pt.Offset(1))
}

func TestPartitionByIndexBadInput(t *testing.T) {
	t.Parallel()

	d, err := coo.NewDescriptor(6, 40, 2)
	require.NoError(t, err)

	x := coo.NewIndex(8)

	_, err = coo.PartitionByIndex(d, x, 3, 2)
	assert.ErrorIs(t, err, coo.ErrBadInput)

	// More parts than rows.
	_, err = coo.PartitionByIndex(d, x, 0, 9)
	assert.ErrorIs(t, err, coo.ErrBadInput)

	// More parts than the dimension has values.
	_, err = coo.PartitionByIndex(d, coo.NewIndex(100), 2, 3)
	assert.ErrorIs(t, err, coo.ErrBadInput)

	// More parts than distinct coordinates present: every row of the
	// zeroed array has coordinate 0.
	_, err = coo.PartitionByIndex(d, x, 0, 2)
	assert.ErrorIs(t, err, coo.ErrBadInput)
}

func TestPartitionBySpace(t *testing.T) {
	t.Parallel()

	d, err := coo.NewDescriptor(10, 7)
	require.NoError(t, err)

	// The last part absorbs the remainder.
	pt, err := coo.PartitionBySpace(d, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, coo.Word(0), pt.Offset(0))
	assert.Equal(t, coo.Word(3), pt.Offset(1))
	assert.Equal(t, coo.Word(6), pt.Offset(2))
	assert.Equal(t, coo.Word(10), pt.Offset(3))

	// An even split has no remainder.
	pt, err = coo.PartitionBySpace(d, 0, 5)
	require.NoError(t, err)
	for k := 0; k < 5; k++ {
		assert.Equal(t, coo.Word(2), pt.Len(k))
	}

	_, err = coo.PartitionBySpace(d, 1, 8)
	assert.ErrorIs(t, err, coo.ErrBadInput)

	_, err = coo.PartitionBySpace(d, 2, 2)
	assert.ErrorIs(t, err, coo.ErrBadInput)
}
