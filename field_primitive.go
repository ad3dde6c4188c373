package binparser

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/thebagchi/binparser/internal/source"
)

// PrimitiveType describes one registerable fixed-width scalar field kind:
// its byte width, and how to decode Width bytes starting at offset within
// buf into a Go value.
type PrimitiveType struct {
	Width  int
	Decode func(buf []byte, offset int) any
}

// Primitives is the table backing Primitive and the generated combinator
// methods (UInt8, UInt16BE, ...). The engine treats it opaquely: a caller
// may register additional entries — under a new name, or overwriting a
// built-in one — before building any descriptor that references them, and
// decode by name via Primitive. The generated methods are sugar over the
// built-in entries listed here; nothing about them is special beyond
// having their own combinator method.
var Primitives = map[string]PrimitiveType{
	"uint8": {Width: 1, Decode: func(buf []byte, offset int) any { return buf[offset] }},
	"int8":  {Width: 1, Decode: func(buf []byte, offset int) any { return int8(buf[offset]) }},

	"uint16be": {Width: 2, Decode: func(buf []byte, offset int) any { return binary.BigEndian.Uint16(buf[offset:]) }},
	"uint16le": {Width: 2, Decode: func(buf []byte, offset int) any { return binary.LittleEndian.Uint16(buf[offset:]) }},
	"int16be":  {Width: 2, Decode: func(buf []byte, offset int) any { return int16(binary.BigEndian.Uint16(buf[offset:])) }},
	"int16le":  {Width: 2, Decode: func(buf []byte, offset int) any { return int16(binary.LittleEndian.Uint16(buf[offset:])) }},

	"uint32be": {Width: 4, Decode: func(buf []byte, offset int) any { return binary.BigEndian.Uint32(buf[offset:]) }},
	"uint32le": {Width: 4, Decode: func(buf []byte, offset int) any { return binary.LittleEndian.Uint32(buf[offset:]) }},
	"int32be":  {Width: 4, Decode: func(buf []byte, offset int) any { return int32(binary.BigEndian.Uint32(buf[offset:])) }},
	"int32le":  {Width: 4, Decode: func(buf []byte, offset int) any { return int32(binary.LittleEndian.Uint32(buf[offset:])) }},

	"uint64be": {Width: 8, Decode: func(buf []byte, offset int) any { return binary.BigEndian.Uint64(buf[offset:]) }},
	"uint64le": {Width: 8, Decode: func(buf []byte, offset int) any { return binary.LittleEndian.Uint64(buf[offset:]) }},
	"int64be":  {Width: 8, Decode: func(buf []byte, offset int) any { return int64(binary.BigEndian.Uint64(buf[offset:])) }},
	"int64le":  {Width: 8, Decode: func(buf []byte, offset int) any { return int64(binary.LittleEndian.Uint64(buf[offset:])) }},

	"float32be": {Width: 4, Decode: func(buf []byte, offset int) any { return math.Float32frombits(binary.BigEndian.Uint32(buf[offset:])) }},
	"float32le": {Width: 4, Decode: func(buf []byte, offset int) any { return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:])) }},
	"float64be": {Width: 8, Decode: func(buf []byte, offset int) any { return math.Float64frombits(binary.BigEndian.Uint64(buf[offset:])) }},
	"float64le": {Width: 8, Decode: func(buf []byte, offset int) any { return math.Float64frombits(binary.LittleEndian.Uint64(buf[offset:])) }},
}

// primitiveStep decodes a single fixed-width scalar field using a
// PrimitiveType looked up from Primitives at build time.
type primitiveStep struct {
	field string
	pt    PrimitiveType
	opts  *fieldOpts
}

func (s *primitiveStep) size() Size { return fixedSize(s.pt.Width) }

func (s *primitiveStep) run(src source.Source, obj Object) (bool, error) {
	buf, offset, err := src.Read(s.pt.Width)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, wrapf(err, "field %q", s.field)
	}
	val := s.pt.Decode(buf, offset)
	val, err = applyAssertFormat(s.opts, obj, s.field, val)
	if err != nil {
		return false, err
	}
	obj.Set(s.field, val)
	return false, nil
}

// Primitive declares a field decoded by typeName from the Primitives
// table — the same mechanism backing UInt8 and the rest of the built-in
// methods below. A typeName absent from Primitives is a BuildError raised
// here, at build time: register it into Primitives first.
func (p *Parser) Primitive(field, typeName string, opts ...Option) *Parser {
	pt, ok := Primitives[typeName]
	if !ok {
		panic(newBuildError("field %q: unknown primitive type %q", field, typeName))
	}
	return p.append(&primitiveStep{field: field, pt: pt, opts: resolveOpts(opts)})
}

// UInt8 reads an unsigned 8-bit integer.
func (p *Parser) UInt8(field string, opts ...Option) *Parser { return p.Primitive(field, "uint8", opts...) }

// Int8 reads a signed 8-bit integer.
func (p *Parser) Int8(field string, opts ...Option) *Parser { return p.Primitive(field, "int8", opts...) }

// UInt16BE reads a big-endian unsigned 16-bit integer.
func (p *Parser) UInt16BE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "uint16be", opts...)
}

// UInt16LE reads a little-endian unsigned 16-bit integer.
func (p *Parser) UInt16LE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "uint16le", opts...)
}

// Int16BE reads a big-endian signed 16-bit integer.
func (p *Parser) Int16BE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "int16be", opts...)
}

// Int16LE reads a little-endian signed 16-bit integer.
func (p *Parser) Int16LE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "int16le", opts...)
}

// UInt32BE reads a big-endian unsigned 32-bit integer.
func (p *Parser) UInt32BE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "uint32be", opts...)
}

// UInt32LE reads a little-endian unsigned 32-bit integer.
func (p *Parser) UInt32LE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "uint32le", opts...)
}

// Int32BE reads a big-endian signed 32-bit integer.
func (p *Parser) Int32BE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "int32be", opts...)
}

// Int32LE reads a little-endian signed 32-bit integer.
func (p *Parser) Int32LE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "int32le", opts...)
}

// UInt64BE reads a big-endian unsigned 64-bit integer.
func (p *Parser) UInt64BE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "uint64be", opts...)
}

// UInt64LE reads a little-endian unsigned 64-bit integer.
func (p *Parser) UInt64LE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "uint64le", opts...)
}

// Int64BE reads a big-endian signed 64-bit integer.
func (p *Parser) Int64BE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "int64be", opts...)
}

// Int64LE reads a little-endian signed 64-bit integer.
func (p *Parser) Int64LE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "int64le", opts...)
}

// Float32BE reads a big-endian IEEE-754 single-precision float.
func (p *Parser) Float32BE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "float32be", opts...)
}

// Float32LE reads a little-endian IEEE-754 single-precision float.
func (p *Parser) Float32LE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "float32le", opts...)
}

// Float64BE reads a big-endian IEEE-754 double-precision float.
func (p *Parser) Float64BE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "float64be", opts...)
}

// Float64LE reads a little-endian IEEE-754 double-precision float.
func (p *Parser) Float64LE(field string, opts ...Option) *Parser {
	return p.Primitive(field, "float64le", opts...)
}
