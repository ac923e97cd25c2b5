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

func TestFreq(t *testing.T) {
	t.Parallel()

	d, err := coo.NewDescriptor(12, 5, 2)
	require.NoError(t, err)

	x := packRows(t, d, [][]coo.Word{{4, 3, 0}, {4, 1, 1}, {0, 4, 1}, {9, 1, 0}})
	f := coo.NewFreq(d, x)

	assert.Equal(t, coo.Word(2), f.Count(0, 4))
	assert.Equal(t, coo.Word(1), f.Count(0, 0))
	assert.Equal(t, coo.Word(1), f.Count(0, 9))
	assert.Equal(t, coo.Word(0), f.Count(0, 7))
	assert.Equal(t, coo.Word(2), f.Count(1, 1))
	assert.Equal(t, coo.Word(2), f.Count(2, 0))
	assert.Equal(t, coo.Word(2), f.Count(2, 1))
}

func TestFreqSumsToLen(t *testing.T) {
	t.Parallel()

	d, err := coo.NewDescriptor(30, 4, 17)
	require.NoError(t, err)

	x := coo.NewIndex(500)
	rng := rand.New(rand.NewPCG(23, 0))
	require.NoError(t, coo.SampleIndex(rng, d, x))

	f := coo.NewFreq(d, x)
	for dim := 0; dim < d.Order(); dim++ {
		var sum coo.Word
		for _, n := range f.Counts(dim) {
			sum += n
		}
		assert.Equal(t, coo.Word(len(x)), sum, "dim %d", dim)

		// Spot-check against a direct count.
		var direct coo.Word
		for _, w := range x {
			if d.Extract(w, dim) == 0 {
				direct++
			}
		}
		assert.Equal(t, direct, f.Count(dim, 0), "dim %d", dim)
	}
}
