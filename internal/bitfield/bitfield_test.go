package bitfield

import (
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thebagchi/binparser/internal/source"
	"github.com/thebagchi/binparser/lib/bitio"
)

func TestDecodeScenarioFour(t *testing.T) {
	// a:3 b:5 c:8 over 0xA5 0xC3 => {a:5 b:5 c:195}
	entries := []Entry{
		{Path: []string{"a"}, Bits: 3},
		{Path: []string{"b"}, Bits: 5},
		{Path: []string{"c"}, Bits: 8},
	}
	require.NoError(t, Validate(entries, 16))

	src := source.NewBufferSource([]byte{0xA5, 0xC3})
	tree, order, done, err := Decode(src, entries, 16)
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, []string{"a", "b", "c"}, order)
	require.Equal(t, uint64(5), tree["a"])
	require.Equal(t, uint64(5), tree["b"])
	require.Equal(t, uint64(195), tree["c"])
}

func TestDecodeEOF(t *testing.T) {
	entries := []Entry{{Path: []string{"a"}, Bits: 16}}
	src := source.NewBufferSource([]byte{0x01})
	_, _, done, err := Decode(src, entries, 16)
	require.NoError(t, err)
	require.True(t, done)
}

func TestDecodeNestedPath(t *testing.T) {
	entries := []Entry{
		{Path: []string{"flags", "urgent"}, Bits: 1},
		{Path: []string{"flags", "ack"}, Bits: 1},
		{Path: []string{"reserved"}, Bits: 6},
	}
	require.NoError(t, Validate(entries, 8))

	src := source.NewBufferSource([]byte{0b11_000000})
	tree, order, done, err := Decode(src, entries, 8)
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, []string{"flags", "reserved"}, order)

	flags, ok := tree["flags"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, uint64(1), flags["urgent"])
	require.Equal(t, uint64(1), flags["ack"])
	require.Equal(t, uint64(0), tree["reserved"])
}

func TestValidateRejectsOverflow(t *testing.T) {
	entries := []Entry{{Path: []string{"a"}, Bits: 54}}
	err := Validate(entries, 54)
	require.Error(t, err)
}

func TestValidateRejectsWidthMismatch(t *testing.T) {
	entries := []Entry{{Path: []string{"a"}, Bits: 3}, {Path: []string{"b"}, Bits: 4}}
	err := Validate(entries, 16)
	require.Error(t, err)
}

// bitfieldFixture mirrors one entry of testdata/bitfields.yaml.
type bitfieldFixture struct {
	Name   string `yaml:"name"`
	Fields []struct {
		Path string `yaml:"path"`
		Bits int    `yaml:"bits"`
	} `yaml:"fields"`
}

// TestRoundTripFromYAMLFixtures packs random values into each declared
// layout via lib/bitio.Codec (independent of Decode) and confirms Decode
// recovers them exactly, for every layout described in
// testdata/bitfields.yaml.
func TestRoundTripFromYAMLFixtures(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "bitfields.yaml"))
	require.NoError(t, err)

	var fixtures []bitfieldFixture
	require.NoError(t, yaml.Unmarshal(raw, &fixtures))
	require.NotEmpty(t, fixtures)

	rng := rand.New(rand.NewSource(1))

	for _, fx := range fixtures {
		fx := fx
		t.Run(fx.Name, func(t *testing.T) {
			var entries []Entry
			totalBits := 0
			for _, f := range fx.Fields {
				entries = append(entries, Entry{Path: []string{f.Path}, Bits: f.Bits})
				totalBits += f.Bits
			}
			require.NoError(t, Validate(entries, totalBits))

			want := make([]uint64, len(entries))
			w := bitio.CreateWriter()
			for i, e := range entries {
				max := uint64(1)<<uint(e.Bits) - 1
				v := uint64(rng.Int63()) & max
				want[i] = v
				require.NoError(t, w.Write(uint8(e.Bits), v))
			}
			require.NoError(t, w.Align())

			src := source.NewBufferSource(w.Bytes())
			tree, _, done, err := Decode(src, entries, totalBits)
			require.NoError(t, err)
			require.False(t, done)

			for i, e := range entries {
				require.Equal(t, want[i], tree[e.Path[0]], "field %s", e.Path[0])
			}
		})
	}
}

func TestDecodePropagatesReadError(t *testing.T) {
	entries := []Entry{{Path: []string{"a"}, Bits: 8}}
	_, _, _, err := Decode(errSource{}, entries, 8)
	require.Error(t, err)
}

type errSource struct{}

func (errSource) Read(n int) ([]byte, int, error) {
	return nil, 0, io.ErrClosedPipe
}
