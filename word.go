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

//go:build !coo_word32

package coo

import (
	"math"
	"math/rand/v2"
)

// Word is the machine word that holds one packed multi-index. Permutation
// entries, partition offsets and counts use the same width.
type Word = uint64

const (
	// WordBits is the width of [Word] in bits.
	WordBits = 64

	// MaxOrder is the largest descriptor order. A dimension narrower than
	// one bit does not exist, so a word can never hold more fields than it
	// has bits.
	MaxOrder = WordBits

	wordMax Word = math.MaxUint64
)

// randWord returns an unbiased uniform value in [0, n).
func randWord(rng *rand.Rand, n Word) Word {
	return rng.Uint64N(n)
}
