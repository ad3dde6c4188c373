package binparser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimitiveByNameMatchesGeneratedMethod(t *testing.T) {
	p := New(nil).Primitive("n", "uint16be")

	obj, err := p.Parse([]byte{0x01, 0x02})
	require.NoError(t, err)
	n, _ := obj.Get("n")
	require.Equal(t, uint16(0x0102), n)
}

func TestPrimitiveUnknownTypeNamePanicsAtBuildTime(t *testing.T) {
	require.Panics(t, func() {
		New(nil).Primitive("n", "uint24be")
	})
}

func TestPrimitivesTableIsRegisterable(t *testing.T) {
	// A caller may register a new entry and immediately reference it by
	// name, without a generated combinator method existing for it.
	Primitives["uint24be"] = PrimitiveType{
		Width: 3,
		Decode: func(buf []byte, offset int) any {
			return uint32(buf[offset])<<16 | uint32(buf[offset+1])<<8 | uint32(buf[offset+2])
		},
	}
	defer delete(Primitives, "uint24be")

	p := New(nil).Primitive("n", "uint24be")
	obj, err := p.Parse([]byte{0x01, 0x00, 0x02})
	require.NoError(t, err)
	n, _ := obj.Get("n")
	require.Equal(t, uint32(0x010002), n)
}
