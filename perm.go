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

// A Perm maps output positions to input positions: applying p to a sequence
// in yields out with out[i] = in[p[i]]. [Sort] returns the permutation it
// applied to the index array so that callers can reorder any parallel array
// the same way.
type Perm []Word

// NewPerm allocates a zeroed permutation of length n. A zeroed permutation
// is not valid until filled; use [IdentityPerm] for the identity.
func NewPerm(n int) Perm { return make(Perm, n) }

// IdentityPerm returns the permutation that maps every position to itself.
func IdentityPerm(n int) Perm {
	p := make(Perm, n)
	for i := range p {
		p[i] = Word(i)
	}
	return p
}

// Equal reports whether p and q are the same mapping.
func (p Perm) Equal(q Perm) bool { return slices.Equal(p, q) }

// Permute applies p out of place: dst[i] = src[p[i]]. dst and src must not
// alias; use [PermuteInPlace] to reorder a buffer in itself.
func Permute[T any](dst, src []T, p Perm) error {
	if len(dst) != len(src) || len(p) != len(src) {
		return badInputf("permute lengths differ: dst %d, src %d, perm %d", len(dst), len(src), len(p))
	}
	for i, j := range p {
		dst[i] = src[j]
	}
	return nil
}

// PermuteInPlace reorders s so that s[i] ends up holding the element
// previously at s[p[i]]. The elements move through a scratch buffer that is
// copied back, so the observable result matches [Permute].
func PermuteInPlace[T any](s []T, p Perm) error {
	if len(p) != len(s) {
		return badInputf("permute lengths differ: buf %d, perm %d", len(s), len(p))
	}
	tmp := make([]T, len(s))
	for i, j := range p {
		tmp[i] = s[j]
	}
	copy(s, tmp)
	return nil
}
