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

// Package coo manipulates sparse tensors stored in coordinate format, where
// each non-zero element is recorded as a multi-index plus a value in a pair
// of parallel arrays:
//
//	     index        values
//	 +---+---+---+   +------+
//	 | 4 | 3 | 0 |   | 0.10 |
//	 +---+---+---+   +------+
//	 | 4 | 1 | 1 |   | 0.20 |
//	 +---+---+---+   +------+
//	 | 0 | 4 | 1 |   | 0.30 |
//	 +---+---+---+   +------+
//	 | 9 | 1 | 0 |   | 0.40 |
//	 +---+---+---+   +------+
//	   0   1   2
//
// Each multi-index is packed into a single machine word using per-dimension
// bit fields laid out by a [Descriptor]. A descriptor for a 12×5×2 tensor
// assigns the first coordinate the low 4 bits of the word, the second the
// next 3, and the third a single bit:
//
//	+---------------------+     +---+---+---+
//	| 00000000 0 011 0100 |  =  | 4 | 3 | 0 |
//	+---------------------+     +---+---+---+
//	           2  1    0          0   1   2
//
// The packed form is what makes the rest of the package fast: extracting a
// coordinate is a mask and a shift, and [Sort] reorders millions of rows per
// second with a parallel least-significant-digit radix sort that walks the
// bit fields of the requested dimensions directly. Sorting returns a [Perm]
// that callers apply to any parallel array with [Permute].
//
// [PartitionByIndex], [PartitionBySpace], [Freq] and [View] are read-only
// helpers over a descriptor/index pair, used to slice and profile an index
// array once it is sorted. Package blob persists the arrays; package dist
// spreads them over a logical process mesh.
//
// The machine word is 64 bits wide and element values are float64 unless the
// coo_word32 / coo_elem32 build tags say otherwise. A descriptor can address
// any domain whose packed bit fields fit in one word.
package coo
