package signature

import (
	"bytes"
	"strconv"
)

// EncodingVersion is written at the start of every canonical encoding. It
// must change if the layout of any encoded value changes.
const EncodingVersion = "powledger/v1"

// Encoder produces the canonical encoding used for hashing and signing. Each
// field is written as <byte length>:<bytes>; so no field content can be
// confused with a separator. Integers are base 10 and floats use the
// shortest representation that round trips.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder constructs an encoder with the version tag already written.
func NewEncoder() *Encoder {
	var enc Encoder
	enc.String(EncodingVersion)
	return &enc
}

// String writes a string field.
func (enc *Encoder) String(s string) *Encoder {
	enc.buf.WriteString(strconv.Itoa(len(s)))
	enc.buf.WriteByte(':')
	enc.buf.WriteString(s)
	enc.buf.WriteByte(';')
	return enc
}

// Raw writes a byte field.
func (enc *Encoder) Raw(b []byte) *Encoder {
	enc.buf.WriteString(strconv.Itoa(len(b)))
	enc.buf.WriteByte(':')
	enc.buf.Write(b)
	enc.buf.WriteByte(';')
	return enc
}

// Uint writes an unsigned integer field.
func (enc *Encoder) Uint(v uint64) *Encoder {
	return enc.String(strconv.FormatUint(v, 10))
}

// Int writes a signed integer field.
func (enc *Encoder) Int(v int64) *Encoder {
	return enc.String(strconv.FormatInt(v, 10))
}

// Float writes a floating point field.
func (enc *Encoder) Float(v float64) *Encoder {
	return enc.String(strconv.FormatFloat(v, 'f', -1, 64))
}

// Value writes the canonical encoding of a nested value as a single field.
func (enc *Encoder) Value(value Encodable) *Encoder {
	return enc.Raw(Encode(value))
}

// Bytes returns the encoding written so far.
func (enc *Encoder) Bytes() []byte {
	return bytes.Clone(enc.buf.Bytes())
}
