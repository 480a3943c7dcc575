// Package marc models MARC 21 bibliographic records and serializes them to
// the binary exchange format (ISO 2709 framing: leader, directory, field
// data with dedicated terminator bytes).
package marc

import (
	"bytes"
	"fmt"
)

// Structural bytes of the exchange format.
const (
	recordTerminator  = 0x1d
	fieldTerminator   = 0x1e
	subfieldDelimiter = 0x1f
)

const leaderLength = 24

// Leader holds the variable bytes of the 24-byte record leader. Record
// length and base address are computed at serialization time; the constant
// positions (indicator count "22", entry map "4500") never vary.
type Leader struct {
	Status        byte // 05
	Type          byte // 06
	BibLevel      byte // 07
	Control       byte // 08
	CodingScheme  byte // 09
	EncodingLevel byte // 17
	Form          byte // 18
	Multipart     byte // 19
}

// Subfield is one coded value inside a data field.
type Subfield struct {
	Code  byte
	Value string
}

// Field is a tagged data field with its two indicators and ordered
// subfields.
type Field struct {
	Tag        string
	Ind1, Ind2 byte
	Subfields  []Subfield
}

// Record is a build-once MARC record: construct the field list in order,
// then serialize. Consumers must not reorder fields.
type Record struct {
	Leader Leader
	Fields []Field
}

// NewRecord returns a record with the leader bytes this system always
// emits: language material ('a'), monograph ('m'), MARC-8-era coding
// scheme 'a', full cataloging form 'a', remaining positions blank.
func NewRecord() *Record {
	return &Record{
		Leader: Leader{
			Status:        ' ',
			Type:          'a',
			BibLevel:      'm',
			Control:       ' ',
			CodingScheme:  'a',
			EncodingLevel: ' ',
			Form:          'a',
			Multipart:     ' ',
		},
	}
}

// AddField appends a field. Order of calls is the order on the wire.
func (r *Record) AddField(f Field) {
	r.Fields = append(r.Fields, f)
}

// AsMARC serializes the record to its binary exchange form. All lengths
// and offsets are byte counts of the UTF-8 encoded data.
func (r *Record) AsMARC() []byte {
	var dir, data bytes.Buffer

	for _, f := range r.Fields {
		start := data.Len()
		data.WriteByte(f.Ind1)
		data.WriteByte(f.Ind2)
		for _, sf := range f.Subfields {
			data.WriteByte(subfieldDelimiter)
			data.WriteByte(sf.Code)
			data.WriteString(sf.Value)
		}
		data.WriteByte(fieldTerminator)
		fmt.Fprintf(&dir, "%s%04d%05d", f.Tag, data.Len()-start, start)
	}

	// Base address: leader + directory + the directory's field terminator.
	base := leaderLength + dir.Len() + 1
	total := base + data.Len() + 1

	out := make([]byte, 0, total)
	out = append(out, r.leaderBytes(total, base)...)
	out = append(out, dir.Bytes()...)
	out = append(out, fieldTerminator)
	out = append(out, data.Bytes()...)
	out = append(out, recordTerminator)
	return out
}

func (r *Record) leaderBytes(total, base int) []byte {
	return []byte(fmt.Sprintf("%05d%c%c%c%c%c22%05d%c%c%c4500",
		total,
		r.Leader.Status, r.Leader.Type, r.Leader.BibLevel,
		r.Leader.Control, r.Leader.CodingScheme,
		base,
		r.Leader.EncodingLevel, r.Leader.Form, r.Leader.Multipart))
}
