package binparser

import "github.com/thebagchi/binparser/internal/source"

// Parse decodes buf in full against the descriptor and returns the result
// object. Trailing unconsumed bytes are not an error; a buf shorter than
// the descriptor's fields — at any point in the chain — yields a clean
// (nil, nil): absence of output, not an error.
func (p *Parser) Parse(buf []byte) (Object, error) {
	src := source.NewBufferSource(buf)
	obj, done, err := p.decode(src, nil)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, nil
	}
	return obj, nil
}
