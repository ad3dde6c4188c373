// Package bitfield implements the packed bit-field field parser: reading an
// ordered layout of sub-byte-width entries that together span a known
// number of bits, respecting byte-boundary alignment.
//
// # Precision
//
// The distilled spec describes a right-to-left extraction algorithm with an
// explicit precision-switch threshold around 25 accumulated bits, framed as
// an artifact of 32-bit signed-integer arithmetic in the reference
// environment; it explicitly invites 64-bit-native implementations to do
// the same work "uniformly via 64-bit shifts" while preserving identical
// results for totals up to 53 bits. Because the padding bits of a
// non-byte-multiple layout always fall after the last declared entry (the
// block reads exactly ceil(totalBits/8) bytes, and the declared entries
// consume exactly totalBits of those bits starting from the top),
// straightforward declaration-order, MSB-first sequential bit consumption
// produces identical extracted values to the spec's right-to-left
// algorithm. That's what Decode does, via lib/bitio's Codec — whose own
// byte-aligned fast path already performs the "read in the largest
// available native width" optimization the spec calls for.
package bitfield

import (
	"fmt"
	"io"

	"github.com/thebagchi/binparser/internal/source"
	"github.com/thebagchi/binparser/lib/bitio"
)

// MaxTotalBits is the precision ceiling: builds requesting more are rejected.
const MaxTotalBits = 53

// Entry is one named sub-byte-width field within a bit-field block. A Path
// of length > 1 writes into a nested map, creating intermediate maps on
// demand (e.g. Path: []string{"flags", "urgent"}).
type Entry struct {
	Path []string
	Bits int
}

// Validate checks an entry list against the declared total width before any
// decoding happens: empty paths, non-positive or over-wide individual
// fields, a width sum mismatch, or a total past MaxTotalBits are all
// build-time errors.
func Validate(entries []Entry, totalBits int) error {
	if totalBits <= 0 {
		return fmt.Errorf("bitfield: totalBits must be positive, got %d", totalBits)
	}
	if totalBits > MaxTotalBits {
		return fmt.Errorf("bitfield: totalBits %d exceeds the %d-bit precision limit", totalBits, MaxTotalBits)
	}
	if len(entries) == 0 {
		return fmt.Errorf("bitfield: at least one entry is required")
	}
	sum := 0
	for i, e := range entries {
		if len(e.Path) == 0 {
			return fmt.Errorf("bitfield: entry %d has an empty path", i)
		}
		if e.Bits <= 0 || e.Bits > 64 {
			return fmt.Errorf("bitfield: entry %q has invalid bit width %d", pathString(e.Path), e.Bits)
		}
		sum += e.Bits
	}
	if sum != totalBits {
		return fmt.Errorf("bitfield: entries sum to %d bits, declared totalBits is %d", sum, totalBits)
	}
	return nil
}

// Decode reads ceil(totalBits/8) bytes from src as one contiguous run and
// extracts each entry's value, in declaration order, MSB-first. It returns
// a tree of nested maps keyed by each entry's Path, the top-level keys in
// first-declared order (for deterministic Set ordering by the caller), and
// done=true if src hit EOF before the run could be read in full.
func Decode(src source.Source, entries []Entry, totalBits int) (tree map[string]any, order []string, done bool, err error) {
	nbytes := (totalBits + 7) / 8
	buf, offset, err := src.Read(nbytes)
	if err == io.EOF {
		return nil, nil, true, nil
	}
	if err != nil {
		return nil, nil, false, err
	}

	codec := bitio.CreateReader(buf[offset : offset+nbytes])
	tree = map[string]any{}
	for _, e := range entries {
		val, rerr := codec.Read(uint8(e.Bits))
		if rerr != nil {
			return nil, nil, false, rerr
		}
		if insert(tree, e.Path, val) {
			order = append(order, e.Path[0])
		}
	}
	return tree, order, false, nil
}

// insert writes val at path within tree, creating intermediate maps as
// needed, and reports whether this call introduced a brand new top-level
// key (used to build a stable Set order for the caller).
func insert(tree map[string]any, path []string, val uint64) bool {
	_, existed := tree[path[0]]

	node := tree
	for _, seg := range path[:len(path)-1] {
		next, ok := node[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[seg] = next
		}
		node = next
	}
	node[path[len(path)-1]] = val

	return !existed
}

func pathString(path []string) string {
	out := path[0]
	for _, seg := range path[1:] {
		out += "." + seg
	}
	return out
}
