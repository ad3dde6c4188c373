package binparser

import "github.com/thebagchi/binparser/internal/source"

// Ctor constructs the Object a Parser decodes into, given the parent object
// it is nested under (nil at the top level). Supplying a Ctor lets a caller
// use their own type in place of the default Record, as long as it
// implements Object.
type Ctor func(parent Object) Object

// Parser is a built descriptor: an ordered chain of steps produced by the
// combinator methods (UInt8, String, Nest, Array, Choice, BitFields, ...).
// A Parser is immutable once combinator calls stop being made against it;
// it is safe for concurrent use by multiple goroutines decoding
// independent inputs.
type Parser struct {
	ctor  Ctor
	steps []step
	size  Size
}

// New starts a descriptor whose decoded Object is constructed by ctor. If
// ctor is nil, NewRecord is used.
func New(ctor Ctor) *Parser {
	if ctor == nil {
		ctor = NewRecord
	}
	return &Parser{ctor: ctor, size: fixedSize(0)}
}

// Create sets the constructor of p's decoded Object and returns p for
// chaining, e.g. binparser.New(nil).Create(myCtor). If ctor is nil,
// NewRecord is used. Steps already declared on p are kept.
func (p *Parser) Create(ctor Ctor) *Parser {
	if ctor == nil {
		ctor = NewRecord
	}
	p.ctor = ctor
	return p
}

func (p *Parser) append(s step) *Parser {
	p.steps = append(p.steps, s)
	p.size = p.size.add(s.size())
	return p
}

// decode runs every step against src in order, building one Object via
// p.ctor(parent). EOF on any step — the first or a later one — reports
// done=true and a nil error: a short input yields clean absence of output,
// never a truncation error, matching the distilled spec's "null" result for
// a buffer shorter than a descriptor requires. The partially built obj is
// discarded in that case.
func (p *Parser) decode(src source.Source, parent Object) (Object, bool, error) {
	obj := p.ctor(parent)
	for _, s := range p.steps {
		done, err := s.run(src, obj)
		if err != nil {
			return nil, false, err
		}
		if done {
			return nil, true, nil
		}
	}
	return obj, false, nil
}
