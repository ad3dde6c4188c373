package binparser

import "github.com/thebagchi/binparser/internal/source"

// nestStep decodes a sub-parser's fields into a child Object, then stores
// that child object on the parent under field.
type nestStep struct {
	field string
	sub   *Parser
	opts  *fieldOpts
}

func (s *nestStep) size() Size { return s.sub.size }

func (s *nestStep) run(src source.Source, obj Object) (bool, error) {
	child, done, err := s.sub.decode(src, obj)
	if err != nil {
		return false, wrapf(err, "field %q", s.field)
	}
	if done {
		// EOF anywhere in the sub-parser's chain propagates to the parent
		// as done: a partially-decoded nested object is never promised to
		// the parent, so there's nothing to distinguish here either.
		return true, nil
	}
	val, err := applyAssertFormat(s.opts, obj, s.field, any(child))
	if err != nil {
		return false, err
	}
	obj.Set(s.field, val)
	return false, nil
}

// Nest declares a field whose value is decoded by a wholly separate
// descriptor, with obj passed as the child's parent context. opts applies
// the common Assert/Formatter pipeline to the decoded child object.
func (p *Parser) Nest(field string, sub *Parser, opts ...Option) *Parser {
	return p.append(&nestStep{field: field, sub: sub, opts: resolveOpts(opts)})
}
