package binparser

import (
	"github.com/thebagchi/binparser/internal/bitfield"
	"github.com/thebagchi/binparser/internal/source"
)

// BitField is one named sub-byte-width entry within a bit-field block.
// Name may contain dots to address a nested key (e.g. "flags.urgent"),
// writing into an intermediate map under "flags".
type BitField struct {
	Name string
	Bits int
}

// bitFieldStep decodes a packed run of sub-byte-width entries spanning
// TotalBits, in declaration order, MSB-first.
type bitFieldStep struct {
	field     string
	entries   []bitfield.Entry
	totalBits int
}

func (s *bitFieldStep) size() Size { return fixedSize((s.totalBits + 7) / 8) }

func (s *bitFieldStep) run(src source.Source, obj Object) (bool, error) {
	tree, order, done, err := bitfield.Decode(src, s.entries, s.totalBits)
	if err != nil {
		return false, wrapf(err, "field %q", s.field)
	}
	if done {
		return true, nil
	}
	for _, name := range order {
		obj.Set(name, tree[name])
	}
	return false, nil
}

// BitFields declares a packed block of bit-width fields spanning totalBits
// bits total (rounded up to the containing byte count). Each entry's Name
// becomes a top-level key directly on obj — not nested under field — since
// the block itself has no combined representation; field exists only to
// name the step for error messages. Splitting a Name on "." nests the
// written value under intermediate maps.
func (p *Parser) BitFields(field string, totalBits int, fields []BitField) *Parser {
	entries := make([]bitfield.Entry, len(fields))
	for i, f := range fields {
		entries[i] = bitfield.Entry{Path: splitPath(f.Name), Bits: f.Bits}
	}
	if err := bitfield.Validate(entries, totalBits); err != nil {
		panic(newBuildError("field %q: %v", field, err))
	}
	return p.append(&bitFieldStep{field: field, entries: entries, totalBits: totalBits})
}

func splitPath(name string) []string {
	var out []string
	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			out = append(out, name[start:i])
			start = i + 1
		}
	}
	out = append(out, name[start:])
	return out
}
