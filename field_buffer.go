package binparser

import (
	"io"

	"github.com/thebagchi/binparser/internal/source"
)

// bufferStep decodes a raw byte-slice field: fixed length or to EOF.
type bufferStep struct {
	field string
	opts  *fieldOpts
}

func (s *bufferStep) size() Size {
	if s.opts.readUntil == "eof" {
		return unknownSize
	}
	if s.opts.hasLength {
		return fixedSize(s.opts.length)
	}
	return unknownSize
}

func (s *bufferStep) run(src source.Source, obj Object) (bool, error) {
	var raw []byte
	if s.opts.readUntil == "eof" {
		var chunks [][]byte
		for {
			buf, offset, err := src.Read(1)
			if err == io.EOF {
				break
			}
			if err != nil {
				return false, wrapf(err, "field %q", s.field)
			}
			chunks = append(chunks, []byte{buf[offset]})
		}
		raw = make([]byte, 0, len(chunks))
		for _, c := range chunks {
			raw = append(raw, c...)
		}
	} else {
		n, err := resolveLength(s.opts, obj, s.field)
		if err != nil {
			return false, err
		}
		buf, offset, rerr := src.Read(n)
		if rerr == io.EOF {
			return true, nil
		}
		if rerr != nil {
			return false, wrapf(rerr, "field %q", s.field)
		}
		raw = buf[offset : offset+n]
	}

	if s.opts.clone {
		cloned := make([]byte, len(raw))
		copy(cloned, raw)
		raw = cloned
	}

	val, err := applyAssertFormat(s.opts, obj, s.field, raw)
	if err != nil {
		return false, err
	}
	obj.Set(s.field, val)
	return false, nil
}

// Buffer declares a raw byte-slice field. At least one of Length,
// LengthField, LengthFunc, or ReadUntilEOF must be supplied (ReadUntilEOF
// wins when combined with a length option). A BufferSource
// never mutates its backing array, so Clone matters only against a
// StreamSource, whose coalesced chunks may be reused or dropped after the
// read returns.
func (p *Parser) Buffer(field string, opts ...Option) *Parser {
	o := resolveOpts(opts)
	if o.readUntil != "eof" && !o.hasLength && o.lengthField == "" && o.lengthFunc == nil {
		panic(newBuildError("field %q: buffer requires Length, LengthField, LengthFunc, or ReadUntilEOF", field))
	}
	return p.append(&bufferStep{field: field, opts: o})
}
