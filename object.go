package binparser

import "github.com/bytedance/sonic"

// Object is the output of a parse: a mapping from field name to decoded
// value. Nested and choice fields are handed their parent as context so
// formatters and asserts further down the chain can reference
// already-decoded sibling data; the parent may be read but must not be
// mutated by a child.
type Object interface {
	// Set stores v under name. Per-step, exactly one name is written (or,
	// for bit-fields, one name per top-level entry in the block).
	Set(name string, v any)
	// Get returns the value stored under name, and whether it was present.
	Get(name string) (any, bool)
	// Parent returns the object that was being built when this object's
	// constructor ran, or nil at the top level.
	Parent() Object
}

// Record is the default Object: an insertion-ordered field map. Callers
// that supply a Ctor to Parser.Create may return any type implementing
// Object instead.
type Record struct {
	parent Object
	fields map[string]any
	order  []string
}

// NewRecord is the default constructor used when none is supplied to
// Parser.Create. It satisfies the Ctor signature.
func NewRecord(parent Object) Object {
	return &Record{parent: parent, fields: make(map[string]any)}
}

// Set implements Object.
func (r *Record) Set(name string, v any) {
	if _, exists := r.fields[name]; !exists {
		r.order = append(r.order, name)
	}
	r.fields[name] = v
}

// Get implements Object.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Parent implements Object.
func (r *Record) Parent() Object {
	return r.parent
}

// Fields returns the record's field names in the order they were first set.
func (r *Record) Fields() []string {
	return append([]string(nil), r.order...)
}

// MarshalJSON renders the record as a JSON object preserving field
// insertion order, using sonic for the actual encoding.
func (r *Record) MarshalJSON() ([]byte, error) {
	buf := append([]byte(nil), '{')
	for i, name := range r.order {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := sonic.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := sonic.Marshal(r.fields[name])
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	buf = append(buf, '}')
	return buf, nil
}
