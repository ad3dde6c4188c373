package binparser

// fieldOpts accumulates everything the common field options (§4.1) and the
// per-kind options (zero-terminated strings, array termination, ...) can
// set. Not every field kind consults every member; field_*.go documents
// which ones it honors.
type fieldOpts struct {
	assertValue    any
	hasAssertValue bool
	assertFunc     func(obj Object, val any) bool
	formatter      func(obj Object, val any) any

	length      int
	hasLength   bool
	lengthField string
	lengthFunc  func(obj Object) (int, error)

	clone      bool
	stripNull  bool
	zeroTerm   bool
	maxLength  int
	hasMaxLen  bool
	readUntil  string // "" or "eof"
	readUntilF func(v any) bool
	key        string
}

// Option configures a single field declaration. See the table in §4.1 of
// SPEC_FULL.md for the full list.
type Option func(*fieldOpts)

// Assert requires the decoded value to equal value, or fails with
// AssertError.
func Assert(value any) Option {
	return func(o *fieldOpts) {
		o.assertValue = value
		o.hasAssertValue = true
	}
}

// AssertFunc requires fn(obj, val) to return true, or fails with
// AssertError.
func AssertFunc(fn func(obj Object, val any) bool) Option {
	return func(o *fieldOpts) { o.assertFunc = fn }
}

// Formatter replaces the decoded value with fn(obj, val) before storing it.
// Runs after Assert/AssertFunc, against the raw decoded value.
func Formatter(fn func(obj Object, val any) any) Option {
	return func(o *fieldOpts) { o.formatter = fn }
}

// Length fixes the field's length (string/buffer/array) to a constant.
func Length(n int) Option {
	return func(o *fieldOpts) { o.length = n; o.hasLength = true }
}

// LengthField resolves the field's length from a sibling field already
// present on the object at decode time.
func LengthField(name string) Option {
	return func(o *fieldOpts) { o.lengthField = name }
}

// LengthFunc resolves the field's length by calling fn against the object
// at decode time.
func LengthFunc(fn func(obj Object) (int, error)) Option {
	return func(o *fieldOpts) { o.lengthFunc = fn }
}

// Clone copies a decoded buffer into freshly allocated storage so a later
// stream coalesce cannot mutate it out from under the caller.
func Clone() Option {
	return func(o *fieldOpts) { o.clone = true }
}

// StripNull strips trailing NUL bytes from a decoded string.
func StripNull() Option {
	return func(o *fieldOpts) { o.stripNull = true }
}

// ZeroTerminated reads a string up to (and excluding) the first zero byte
// instead of a fixed length. MaxLength, if also given, bounds the scan.
func ZeroTerminated() Option {
	return func(o *fieldOpts) { o.zeroTerm = true }
}

// MaxLength bounds a ZeroTerminated string scan.
func MaxLength(n int) Option {
	return func(o *fieldOpts) { o.maxLength = n; o.hasMaxLen = true }
}

// ReadUntilEOF makes an array read elements until EOF, discarding the
// EOF-yielding element, or makes a buffer read to EOF.
func ReadUntilEOF() Option {
	return func(o *fieldOpts) { o.readUntil = "eof" }
}

// ReadUntilFunc makes an array stop — keeping the triggering element — once
// fn(element) returns true.
func ReadUntilFunc(fn func(v any) bool) Option {
	return func(o *fieldOpts) { o.readUntilF = fn }
}

// Key folds a decoded array into a map[string]any keyed by
// element[name]. Later entries overwrite earlier ones on key collision.
func Key(name string) Option {
	return func(o *fieldOpts) { o.key = name }
}

func resolveOpts(opts []Option) *fieldOpts {
	o := &fieldOpts{}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// applyAssertFormat runs the common Assert/AssertFunc/Formatter pipeline
// against a freshly decoded value, per §9's preserved ordering: assert
// checks the raw value, formatter then replaces the stored representation.
func applyAssertFormat(o *fieldOpts, obj Object, field string, val any) (any, error) {
	if o.hasAssertValue && val != o.assertValue {
		return nil, newAssertError(field, val)
	}
	if o.assertFunc != nil && !o.assertFunc(obj, val) {
		return nil, newAssertError(field, val)
	}
	if o.formatter != nil {
		val = o.formatter(obj, val)
	}
	return val, nil
}

// resolveLength resolves a string/buffer/array length at decode time: a
// constant, a sibling field name, or a callback — exactly one of which must
// have been supplied at build time (checked by the caller).
func resolveLength(o *fieldOpts, obj Object, field string) (int, error) {
	switch {
	case o.hasLength:
		return o.length, nil
	case o.lengthField != "":
		v, ok := obj.Get(o.lengthField)
		if !ok {
			return 0, newOptionResolutionError(field, o.lengthField)
		}
		return toInt(v)
	case o.lengthFunc != nil:
		return o.lengthFunc(obj)
	default:
		return 0, newBuildError("field %q: no length option was supplied", field)
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case uint:
		return int(n), nil
	default:
		return 0, newBuildError("length field holds a non-integer value: %T", v)
	}
}
