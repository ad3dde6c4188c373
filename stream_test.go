package binparser

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thebagchi/binparser/internal/source"
)

func scenarioThreeDescriptor() *Parser {
	elem := New(nil).UInt16BE("v")
	return New(nil).UInt8("n").Array("xs", elem, LengthField("n"))
}

// partitions returns every way to split buf into contiguous, non-empty
// chunks (the power set of cut points between bytes).
func partitions(buf []byte) [][][]byte {
	if len(buf) <= 1 {
		return [][][]byte{{buf}}
	}
	cuts := len(buf) - 1
	var out [][][]byte
	for mask := 0; mask < (1 << cuts); mask++ {
		var parts [][]byte
		start := 0
		for i := 0; i < cuts; i++ {
			if mask&(1<<i) != 0 {
				parts = append(parts, buf[start:i+1])
				start = i + 1
			}
		}
		parts = append(parts, buf[start:])
		out = append(out, parts)
	}
	return out
}

func TestStreamChunkingInvariance(t *testing.T) {
	input := []byte{0x02, 0x00, 0x0A, 0x00, 0x0B}

	for _, chunks := range partitions(input) {
		p := scenarioThreeDescriptor()
		pr, pw := io.Pipe()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		results := p.Stream(ctx, pr)

		go func(chunks [][]byte) {
			for _, c := range chunks {
				_, _ = pw.Write(c)
			}
			_ = pw.Close()
		}(chunks)

		var got []Result
		for r := range results {
			got = append(got, r)
		}
		cancel()

		require.Len(t, got, 1, "partition %v", chunks)
		require.NoError(t, got[0].Err)

		n, _ := got[0].Obj.Get("n")
		xs, _ := got[0].Obj.Get("xs")
		require.Equal(t, uint8(2), n)
		elems := xs.([]any)
		require.Len(t, elems, 2)
		v0, _ := elems[0].(Object).Get("v")
		v1, _ := elems[1].(Object).Get("v")
		require.Equal(t, uint16(10), v0)
		require.Equal(t, uint16(11), v1)
	}
}

func TestStreamEquivalentToRepeatedParse(t *testing.T) {
	input := []byte{0x02, 0x00, 0x0A, 0x00, 0x0B, 0x01, 0x00, 0x01}

	p := scenarioThreeDescriptor()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	results := p.Stream(ctx, bytes.NewReader(input))

	var streamed []Object
	for r := range results {
		require.NoError(t, r.Err)
		streamed = append(streamed, r.Obj)
	}

	p2 := scenarioThreeDescriptor()
	src := source.NewBufferSource(input)
	var parsed []Object
	for {
		obj, done, err := p2.decode(src, nil)
		require.NoError(t, err)
		if done {
			break
		}
		parsed = append(parsed, obj)
	}

	require.Equal(t, len(parsed), len(streamed))
}
