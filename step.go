package binparser

import "github.com/thebagchi/binparser/internal/source"

// step is one decode action in a descriptor's chain. Steps compose in
// declaration order; a step that reports done=true stops the chain for
// that object — no subsequent step runs.
type step interface {
	// size reports this step's contribution to the composite fixed size.
	size() Size
	// run executes the step against src, mutating obj in place. done
	// reports whether src hit EOF before this step could complete; err is
	// non-nil only for AssertError/OptionResolutionError, a decode-time
	// BuildError (e.g. a chooser returning nil), or a propagated Source
	// failure.
	run(src source.Source, obj Object) (done bool, err error)
}

// Size is a descriptor's or step's fixed byte size, if statically known.
type Size struct {
	Known bool
	Bytes int
}

// unknownSize is the zero-information marker: propagates through any fold.
var unknownSize = Size{Known: false}

// add folds two sizes per the composite rule: unknown if either is unknown.
func (s Size) add(other Size) Size {
	if !s.Known || !other.Known {
		return unknownSize
	}
	return Size{Known: true, Bytes: s.Bytes + other.Bytes}
}

func fixedSize(n int) Size {
	return Size{Known: true, Bytes: n}
}
