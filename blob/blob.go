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

// Package blob saves and loads the package coo array kinds as
// self-describing binary files.
//
// A file holds exactly one one-dimensional dataset under a fixed name:
// "/indx" for a packed index array, "/elem" for element values, "/upkd"
// for unpacked coordinates and "/perm" for a permutation. The header
// records the dataset name, the element kind and the bit widths the
// writing build was compiled with, so a reader on a mismatched build fails
// cleanly instead of reinterpreting bits. Payloads are little-endian and
// snappy-compressed.
//
// Loading what was saved returns the array element for element.
package blob

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/golang/snappy"

	"github.com/bufbuild/coo"
)

// Dataset names, one per array kind.
const (
	NameIndex    = "/indx"
	NameElems    = "/elem"
	NameUnpacked = "/upkd"
	NamePerm     = "/perm"
)

var magic = [4]byte{'C', 'O', 'O', 'B'}

const version = 1

// Element kinds stored in the header.
const (
	kindWord byte = iota
	kindElem
)

// ErrFormat is the error returned when a file is not a blob file, was
// written by an incompatible build, or holds a different dataset than the
// load call expects.
var ErrFormat = errors.New("malformed blob file")

func formatf(path, format string, args ...any) error {
	return fmt.Errorf("blob: %s: %w: "+format, append([]any{path, ErrFormat}, args...)...)
}

// SaveIndex writes a packed index array to path as the "/indx" dataset.
func SaveIndex(path string, x coo.Index) error {
	return save(path, NameIndex, kindWord, wordsToBytes(x))
}

// LoadIndex reads back a packed index array saved with [SaveIndex].
func LoadIndex(path string) (coo.Index, error) {
	b, n, err := load(path, NameIndex, kindWord)
	if err != nil {
		return nil, err
	}
	return coo.Index(bytesToWords(b, n)), nil
}

// SavePerm writes a permutation to path as the "/perm" dataset.
func SavePerm(path string, p coo.Perm) error {
	return save(path, NamePerm, kindWord, wordsToBytes(p))
}

// LoadPerm reads back a permutation saved with [SavePerm].
func LoadPerm(path string) (coo.Perm, error) {
	b, n, err := load(path, NamePerm, kindWord)
	if err != nil {
		return nil, err
	}
	return coo.Perm(bytesToWords(b, n)), nil
}

// SaveUnpacked writes an unpacked coordinate array to path as the "/upkd"
// dataset.
func SaveUnpacked(path string, u coo.Unpacked) error {
	return save(path, NameUnpacked, kindWord, wordsToBytes(u))
}

// LoadUnpacked reads back an unpacked array saved with [SaveUnpacked].
func LoadUnpacked(path string) (coo.Unpacked, error) {
	b, n, err := load(path, NameUnpacked, kindWord)
	if err != nil {
		return nil, err
	}
	return coo.Unpacked(bytesToWords(b, n)), nil
}

// SaveElems writes an element array to path as the "/elem" dataset.
func SaveElems(path string, s []coo.Elem) error {
	return save(path, NameElems, kindElem, elemsToBytes(s))
}

// LoadElems reads back an element array saved with [SaveElems].
func LoadElems(path string) ([]coo.Elem, error) {
	b, n, err := load(path, NameElems, kindElem)
	if err != nil {
		return nil, err
	}
	return bytesToElems(b, n), nil
}

// save writes one dataset: header, then the snappy-compressed payload.
func save(path, name string, kind byte, payload []byte) error {
	var hdr []byte
	hdr = append(hdr, magic[:]...)
	hdr = append(hdr, version, kindBits(kind), kind, byte(len(name)))
	hdr = append(hdr, name...)
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(payloadCount(kind, payload)))

	comp := snappy.Encode(nil, payload)
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(len(comp)))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("blob: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(hdr); err != nil {
		return fmt.Errorf("blob: %s: %w", path, err)
	}
	if _, err := f.Write(comp); err != nil {
		return fmt.Errorf("blob: %s: %w", path, err)
	}
	return f.Close()
}

// load reads one dataset and checks every header field against what the
// caller and this build expect. It returns the raw payload and the element
// count.
func load(path, name string, kind byte) ([]byte, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("blob: %w", err)
	}

	if len(raw) < len(magic)+4 || [4]byte(raw[:4]) != magic {
		return nil, 0, formatf(path, "bad magic")
	}
	raw = raw[4:]
	if raw[0] != version {
		return nil, 0, formatf(path, "unknown version %d", raw[0])
	}
	if raw[1] != kindBits(kind) {
		return nil, 0, formatf(path, "file has %d-bit entries, this build uses %d", raw[1], kindBits(kind))
	}
	if raw[2] != kind {
		return nil, 0, formatf(path, "wrong element kind %d", raw[2])
	}
	nameLen := int(raw[3])
	raw = raw[4:]
	if len(raw) < nameLen+16 {
		return nil, 0, formatf(path, "truncated header")
	}
	if got := string(raw[:nameLen]); got != name {
		return nil, 0, formatf(path, "holds dataset %q, want %q", got, name)
	}
	raw = raw[nameLen:]

	count := binary.LittleEndian.Uint64(raw)
	compLen := binary.LittleEndian.Uint64(raw[8:])
	raw = raw[16:]
	if uint64(len(raw)) != compLen {
		return nil, 0, formatf(path, "payload is %d bytes, header says %d", len(raw), compLen)
	}

	payload, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, 0, formatf(path, "decompress: %v", err)
	}
	if uint64(len(payload)) != count*uint64(kindBits(kind)/8) {
		return nil, 0, formatf(path, "payload holds %d bytes for %d entries", len(payload), count)
	}
	return payload, int(count), nil
}

func kindBits(kind byte) byte {
	if kind == kindElem {
		return coo.ElemBits
	}
	return coo.WordBits
}

func payloadCount(kind byte, payload []byte) int {
	return len(payload) / int(kindBits(kind)/8)
}

func wordsToBytes[S ~[]coo.Word](s S) []byte {
	b := make([]byte, 0, len(s)*(coo.WordBits/8))
	for _, w := range s {
		if coo.WordBits == 64 {
			b = binary.LittleEndian.AppendUint64(b, uint64(w))
		} else {
			b = binary.LittleEndian.AppendUint32(b, uint32(w))
		}
	}
	return b
}

func bytesToWords(b []byte, n int) []coo.Word {
	s := make([]coo.Word, n)
	for i := range s {
		if coo.WordBits == 64 {
			s[i] = coo.Word(binary.LittleEndian.Uint64(b[i*8:]))
		} else {
			s[i] = coo.Word(binary.LittleEndian.Uint32(b[i*4:]))
		}
	}
	return s
}

func elemsToBytes(s []coo.Elem) []byte {
	b := make([]byte, 0, len(s)*(coo.ElemBits/8))
	for _, e := range s {
		if coo.ElemBits == 64 {
			b = binary.LittleEndian.AppendUint64(b, math.Float64bits(float64(e)))
		} else {
			b = binary.LittleEndian.AppendUint32(b, math.Float32bits(float32(e)))
		}
	}
	return b
}

func bytesToElems(b []byte, n int) []coo.Elem {
	s := make([]coo.Elem, n)
	for i := range s {
		if coo.ElemBits == 64 {
			s[i] = coo.Elem(math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:])))
		} else {
			s[i] = coo.Elem(math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
		}
	}
	return s
}
