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

import (
	"fmt"
	"strings"
)

// Stringer implementations for the package's types. These exist for
// debugging and example output and are kept off to the side here.

// String renders the descriptor's geometry.
func (d *Descriptor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "desc{order: %d, total: %d, dims: %v", d.order, d.totalSize, d.dimSize)
	fmt.Fprintf(&b, ", widths: %v, offsets: %v}", d.bitWidth, d.bitOffset)
	return b.String()
}

// RowString renders one packed word as grouped binary followed by the
// coordinate tuple, with a gap between adjacent dimension fields. All
// [WordBits] bits are printed; the example below shows only the last eight
// of the leading zeros:
//
//	...00000000 1 001 0100 = (4, 1, 1)
func (d *Descriptor) RowString(w Word) string {
	var b strings.Builder
	for c := int(WordBits) - 1; c >= 0; c-- {
		b.WriteByte('0' + byte(w>>uint(c)&1))
		if c > 0 && d.isFieldBoundary(uint(c)) {
			b.WriteByte(' ')
		}
	}

	b.WriteString(" = ")
	b.WriteString(d.TupleString(w))
	return b.String()
}

// TupleString renders the coordinates of a packed word as "(i, j, k)".
func (d *Descriptor) TupleString(w Word) string {
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < d.order; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", d.Extract(w, i))
	}
	b.WriteByte(')')
	return b.String()
}

// isFieldBoundary reports whether bit position c is the first bit of some
// dimension's field or the first bit past the last field.
func (d *Descriptor) isFieldBoundary(c uint) bool {
	if c == d.bitOffset[d.order-1]+d.bitWidth[d.order-1] {
		return true
	}
	for l := 1; l < d.order; l++ {
		if c == d.bitOffset[l] {
			return true
		}
	}
	return false
}

// DumpIndex renders every row of x under d, one [Descriptor.RowString] per
// line.
func DumpIndex(d *Descriptor, x Index) string {
	var b strings.Builder
	for _, w := range x {
		b.WriteString(d.RowString(w))
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the partition's offsets.
func (pt *Partition) String() string {
	return fmt.Sprintf("part{parts: %d, offsets: %v}", pt.NumParts(), pt.offset)
}

// String lists the tensor's entries as "(i, j, k) = value" lines.
func (t *Tensor) String() string {
	var b strings.Builder
	for i, w := range t.Indx {
		fmt.Fprintf(&b, "%s = %v\n", t.Desc.TupleString(w), t.Elems[i])
	}
	return b.String()
}
