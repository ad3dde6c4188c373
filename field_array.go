package binparser

import "github.com/thebagchi/binparser/internal/source"

// arrayStep decodes a repeated run of sub-parser elements: a fixed count, a
// count read from a sibling field, a predicate, or run to EOF.
type arrayStep struct {
	field string
	elem  *Parser
	opts  *fieldOpts
}

func (s *arrayStep) size() Size {
	if s.opts.hasLength && s.elem.size.Known {
		return fixedSize(s.opts.length * s.elem.size.Bytes)
	}
	return unknownSize
}

func (s *arrayStep) run(src source.Source, obj Object) (bool, error) {
	var count int
	counted := s.opts.hasLength || s.opts.lengthField != "" || s.opts.lengthFunc != nil
	if counted {
		n, err := resolveLength(s.opts, obj, s.field)
		if err != nil {
			return false, err
		}
		count = n
	}

	var elems []any
	decoded := 0
	hitEOF := false
	keyed := s.opts.key != ""
	var keyedMap map[string]any
	if keyed {
		keyedMap = map[string]any{}
	}

	emit := func(v any) {
		decoded++
		if keyed {
			child, _ := v.(Object)
			if child != nil {
				if k, ok := child.Get(s.opts.key); ok {
					keyedMap[anyKey(k)] = v
					return
				}
			}
		}
		elems = append(elems, v)
	}

	switch {
	case counted:
		for i := 0; i < count; i++ {
			child, done, err := s.elem.decode(src, obj)
			if err != nil {
				return false, wrapf(err, "field %q[%d]", s.field, i)
			}
			if done {
				// Partial array on EOF: stop early, keep what decoded so far.
				hitEOF = true
				break
			}
			emit(child)
		}
	case s.opts.readUntil == "eof":
		for {
			child, done, err := s.elem.decode(src, obj)
			if err != nil {
				return false, wrapf(err, "field %q[%d]", s.field, len(elems))
			}
			if done {
				hitEOF = true
				break
			}
			emit(child)
		}
	case s.opts.readUntilF != nil:
		for {
			child, done, err := s.elem.decode(src, obj)
			if err != nil {
				return false, wrapf(err, "field %q[%d]", s.field, len(elems))
			}
			if done {
				hitEOF = true
				break
			}
			emit(child)
			if s.opts.readUntilF(child) {
				break
			}
		}
	default:
		return false, newBuildError("field %q: array requires Length, LengthField, LengthFunc, ReadUntilEOF, or ReadUntilFunc", s.field)
	}

	// EOF before a single element decoded propagates EOF to the parent.
	if hitEOF && decoded == 0 {
		return true, nil
	}

	var val any = elems
	if keyed {
		val = keyedMap
	}
	val, err := applyAssertFormat(s.opts, obj, s.field, val)
	if err != nil {
		return false, err
	}
	obj.Set(s.field, val)
	return false, nil
}

func anyKey(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	n, err := toInt(v)
	if err != nil {
		return ""
	}
	return itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Array declares a repeated field of elem-typed elements. At least one
// termination option — Length, LengthField, LengthFunc, ReadUntilEOF, or
// ReadUntilFunc — must be supplied; supplying none is a BuildError raised
// here. When several are supplied, a count option wins over ReadUntilEOF,
// which wins over ReadUntilFunc. A ReadUntilFunc predicate sees only the
// element just decoded. Key folds the decoded elements into a
// map[string]any instead of a slice.
func (p *Parser) Array(field string, elem *Parser, opts ...Option) *Parser {
	o := resolveOpts(opts)
	counted := o.hasLength || o.lengthField != "" || o.lengthFunc != nil
	if !counted && o.readUntil != "eof" && o.readUntilF == nil {
		panic(newBuildError("field %q: array requires a termination option", field))
	}
	return p.append(&arrayStep{field: field, elem: elem, opts: o})
}
