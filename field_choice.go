package binparser

import "github.com/thebagchi/binparser/internal/source"

// choiceStep decodes one of several sub-parsers, selected by a chooser
// function evaluated against the object as already decoded so far.
type choiceStep struct {
	field   string
	chooser func(obj Object) *Parser
	opts    *fieldOpts
}

func (s *choiceStep) size() Size { return unknownSize }

func (s *choiceStep) run(src source.Source, obj Object) (bool, error) {
	sub := s.chooser(obj)
	if sub == nil {
		return false, newBuildError("field %q: chooser returned a nil parser", s.field)
	}
	child, done, err := sub.decode(src, obj)
	if err != nil {
		return false, wrapf(err, "field %q", s.field)
	}
	if done {
		return true, nil
	}
	val, err := applyAssertFormat(s.opts, obj, s.field, any(child))
	if err != nil {
		return false, err
	}
	obj.Set(s.field, val)
	return false, nil
}

// Choice declares a field whose descriptor is picked at decode time by
// chooser, which typically inspects a sibling tag field already present on
// obj (e.g. via obj.Get). The chosen sub-parser's Ctor receives obj as its
// parent. opts applies the common Assert/Formatter pipeline to the decoded
// child object, same as any other field.
func (p *Parser) Choice(field string, chooser func(obj Object) *Parser, opts ...Option) *Parser {
	return p.append(&choiceStep{field: field, chooser: chooser, opts: resolveOpts(opts)})
}
