package source

import (
	"io"
	"sync"
)

// coalesceDropThreshold bounds the cost of reslicing the consumed prefix of
// chunks[0] relative to the copy a coalesce is about to perform: below this
// many consumed bytes it's cheaper to just include them in the copy.
const coalesceDropThreshold = 1024

// StreamSource satisfies byte requests from a growing list of chunks pushed
// by a producer goroutine, with exactly one consumer goroutine blocked in
// Read at a time. It implements the straddling-read coalesce and prefix-drop
// behavior described for the streaming buffer manager.
//
// A zero-value StreamSource is not ready for use; construct with
// NewStreamSource.
type StreamSource struct {
	mu   sync.Mutex
	cond *sync.Cond

	chunks    [][]byte
	offset    int // read cursor inside chunks[0]
	available int // unread bytes across all chunks
	total     int // bytes held across all chunks, including consumed prefix of chunks[0]
	closed    bool

	// MaxBuffered, if non-zero, makes Write block until available drops
	// below this high-water mark. Zero means unbounded, matching the base
	// protocol. This is additive backpressure, not a protocol change: it
	// only throttles the producer and cannot create a second pending
	// request.
	MaxBuffered int
}

// NewStreamSource creates an empty StreamSource ready to receive chunks.
func NewStreamSource() *StreamSource {
	s := &StreamSource{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Write ingests a chunk from the producer. It never takes ownership
// ambiguity lightly: the slice is retained and may later be coalesced into a
// larger buffer, so callers that reuse their own buffers must copy before
// calling Write.
func (s *StreamSource) Write(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	s.mu.Lock()
	for s.MaxBuffered > 0 && s.available >= s.MaxBuffered && !s.closed {
		s.cond.Wait()
	}
	s.chunks = append(s.chunks, chunk)
	s.available += len(chunk)
	s.total += len(chunk)
	s.cond.Broadcast()
	s.mu.Unlock()
}

// Close flushes the source: any Read blocked on insufficient bytes observes
// EOF once already-buffered bytes are exhausted.
func (s *StreamSource) Close() {
	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()
}

// Read implements Source. It blocks the calling goroutine until n bytes are
// available or the source is closed with fewer than n bytes remaining.
func (s *StreamSource) Read(n int) ([]byte, int, error) {
	if n <= 0 {
		return nil, 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.available < n && !s.closed {
		s.cond.Wait()
	}
	if s.available < n {
		return nil, 0, io.EOF
	}
	buf, off, err := s.satisfy(n)
	s.cond.Broadcast() // wake any producer waiting on MaxBuffered
	return buf, off, err
}

// satisfy assumes the caller holds s.mu and that s.available >= n.
func (s *StreamSource) satisfy(n int) ([]byte, int, error) {
	if len(s.chunks[0])-s.offset < n {
		s.coalesce()
	}

	chunk, cur := s.chunks[0], s.offset
	if len(chunk)-s.offset == n {
		s.chunks = s.chunks[1:]
		s.total -= len(chunk)
		s.offset = 0
	} else {
		s.offset += n
	}
	s.available -= n
	return chunk, cur, nil
}

// coalesce merges all buffered chunks into a single contiguous chunk so that
// a straddling read can be satisfied with a single slice. Assumes the caller
// holds s.mu.
func (s *StreamSource) coalesce() {
	if s.offset > coalesceDropThreshold {
		s.chunks[0] = s.chunks[0][s.offset:]
		s.total -= s.offset
		s.offset = 0
	}

	merged := make([]byte, s.total)
	pos := 0
	for _, c := range s.chunks {
		pos += copy(merged[pos:], c)
	}
	s.chunks = [][]byte{merged}
}
