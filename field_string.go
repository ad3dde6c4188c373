package binparser

import (
	"bytes"
	"io"

	"github.com/thebagchi/binparser/internal/source"
)

// stringStep decodes a fixed-length or zero-terminated string field.
type stringStep struct {
	field string
	opts  *fieldOpts
}

func (s *stringStep) size() Size {
	if s.opts.zeroTerm {
		return unknownSize
	}
	if s.opts.hasLength {
		return fixedSize(s.opts.length)
	}
	return unknownSize
}

func (s *stringStep) run(src source.Source, obj Object) (bool, error) {
	var raw []byte
	if s.opts.zeroTerm {
		b, done, err := readZeroTerminated(src, s.opts.maxLength, s.opts.hasMaxLen)
		if err != nil || done {
			return done, err
		}
		raw = b
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

	if s.opts.stripNull {
		raw = bytes.TrimRight(raw, "\x00")
	}

	val, err := applyAssertFormat(s.opts, obj, s.field, string(raw))
	if err != nil {
		return false, err
	}
	obj.Set(s.field, val)
	return false, nil
}

// readZeroTerminated reads one byte at a time until a NUL or, if bounded,
// maxLength bytes are consumed without finding one (the scan is then
// truncated at maxLength, matching a fixed-length read). EOF after at least
// one byte ends the scan with the bytes read so far; EOF before any byte
// reports done.
func readZeroTerminated(src source.Source, maxLength int, bounded bool) ([]byte, bool, error) {
	var out []byte
	for {
		if bounded && len(out) >= maxLength {
			return out, false, nil
		}
		buf, offset, err := src.Read(1)
		if err == io.EOF {
			if len(out) > 0 {
				return out, false, nil
			}
			return nil, true, nil
		}
		if err != nil {
			return nil, false, err
		}
		b := buf[offset]
		if b == 0 {
			return out, false, nil
		}
		out = append(out, b)
	}
}

// String declares a string field. At least one of Length, LengthField,
// LengthFunc, or ZeroTerminated must be supplied; supplying none is a
// BuildError raised at build time, not decode time. ZeroTerminated wins
// over a length option when both are given.
func (p *Parser) String(field string, opts ...Option) *Parser {
	o := resolveOpts(opts)
	if !o.zeroTerm && !o.hasLength && o.lengthField == "" && o.lengthFunc == nil {
		panic(newBuildError("field %q: string requires Length, LengthField, LengthFunc, or ZeroTerminated", field))
	}
	return p.append(&stringStep{field: field, opts: o})
}
