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

// Package dist spreads coordinate-format tensors over a logical mesh of
// ranks.
//
// The mesh is an abstraction over message passing: every rank runs the
// same code against its own [Comm] handle and the collectives move array
// slices between them. The handles in this package connect goroutines
// within one process, which is enough for partitioning work across cores
// and for exercising the distribution logic; the bookkeeping ([MultiPart],
// [Dist]) is transport-agnostic.
package dist

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// Master is the rank that owns the full arrays before scattering and
// after gathering.
const Master = 0

// A Comm is one rank's handle on a group of communicating ranks. Every
// collective must be called by all ranks of the group.
type Comm struct {
	rank  int
	state *commState
}

// NewComms connects np ranks and returns one handle per rank.
func NewComms(np int) []*Comm {
	s := &commState{np: np}
	s.cond = sync.NewCond(&s.mu)

	comms := make([]*Comm, np)
	for i := range comms {
		comms[i] = &Comm{rank: i, state: s}
	}
	return comms
}

// Rank returns this handle's rank in [0, Size).
func (c *Comm) Rank() int { return c.rank }

// Size returns the number of ranks in the group.
func (c *Comm) Size() int { return c.state.np }

// Run executes fn once per rank on its own goroutine, the way a
// message-passing program runs one process per rank, and waits for all of
// them. The first error cancels nothing — collectives need every rank — so
// fn should only fail on programmer error.
func Run(comms []*Comm, fn func(c *Comm) error) error {
	var eg errgroup.Group
	for _, c := range comms {
		eg.Go(func() error { return fn(c) })
	}
	return eg.Wait()
}

// Bcast copies root's buf into every other rank's buf. Buffers must have
// equal length across ranks.
func Bcast[T any](c *Comm, root int, buf []T) {
	if c.rank == root {
		c.state.publish(buf)
	}
	c.state.barrier()
	if c.rank != root {
		copy(buf, c.state.load().([]T))
	}
	c.state.barrier()
}

// Scatterv hands each rank its slice of root's send buffer:
// counts[r] elements starting at offsets[r]. Only root's send is read;
// counts and offsets must agree across ranks. It returns the received
// part.
func Scatterv[T any, N ~uint32 | ~uint64](c *Comm, root int, send []T, counts, offsets []N) []T {
	if c.rank == root {
		c.state.publish(send)
	}
	c.state.barrier()
	src := c.state.load().([]T)
	part := make([]T, counts[c.rank])
	copy(part, src[offsets[c.rank]:])
	c.state.barrier()
	return part
}

// Gatherv concatenates every rank's part at root, each landing at its
// offsets[r] slot. It returns the assembled buffer at root and nil
// elsewhere.
func Gatherv[T any, N ~uint32 | ~uint64](c *Comm, root int, part []T, counts, offsets []N) []T {
	var recv []T
	if c.rank == root {
		recv = make([]T, offsets[len(offsets)-1])
		c.state.publish(recv)
	}
	c.state.barrier()
	dst := c.state.load().([]T)
	copy(dst[offsets[c.rank]:], part)
	c.state.barrier()
	return recv
}

// commState is the shared side of a rank group: a sense-reversing barrier
// plus a staging slot for the buffer a collective is moving.
type commState struct {
	np int

	mu      sync.Mutex
	cond    *sync.Cond
	arrived int
	gen     int
	payload any
}

func (s *commState) publish(v any) {
	s.mu.Lock()
	s.payload = v
	s.mu.Unlock()
}

func (s *commState) load() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payload
}

// barrier blocks until all np ranks have arrived.
func (s *commState) barrier() {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.gen
	s.arrived++
	if s.arrived == s.np {
		s.arrived = 0
		s.gen++
		s.cond.Broadcast()
		return
	}
	for gen == s.gen {
		s.cond.Wait()
	}
}
