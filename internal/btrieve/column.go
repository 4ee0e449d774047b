package btrieve

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/alexanderramin/strata/internal/domain"
)

// DateEpoch is the sentinel boundary for packed dates. Any decoded date
// strictly before it is treated as absent.
var DateEpoch = time.Date(1983, 12, 31, 0, 0, 0, 0, time.UTC)

// FieldCoder decodes one fixed-width field from a slot.
type FieldCoder interface {
	// Kind names the encoding, e.g. "short" or "date".
	Kind() string

	// Size is the number of bytes the field occupies.
	Size() int

	// Decode converts exactly Size() bytes into a value. It returns false
	// when the bytes do not hold a usable value.
	Decode(b []byte) (any, bool)
}

// Column places a FieldCoder at a byte offset within a slot. Offsets are
// relative to the slot start, so offset 0 is the version stamp.
type Column struct {
	Name   string
	Offset int
	Coder  FieldCoder
}

// Decode reads the column from buf, where the slot begins at recordStart.
// It returns nil when the value is absent or the field would run past buf.
func (c Column) Decode(buf []byte, recordStart int) any {
	start := recordStart + c.Offset
	end := start + c.Coder.Size()
	if start < 0 || end > len(buf) {
		return nil
	}
	v, ok := c.Coder.Decode(buf[start:end])
	if !ok {
		return nil
	}
	return v
}

func ByteColumn(name string, offset int) Column {
	return Column{Name: name, Offset: offset, Coder: coderByte{}}
}

func ShortColumn(name string, offset int) Column {
	return Column{Name: name, Offset: offset, Coder: coderShort{}}
}

func IntColumn(name string, offset int) Column {
	return Column{Name: name, Offset: offset, Coder: coderInt{}}
}

func StringColumn(name string, offset, width int) Column {
	return Column{Name: name, Offset: offset, Coder: coderString{width: width}}
}

func DateColumn(name string, offset int) Column {
	return Column{Name: name, Offset: offset, Coder: coderDate{}}
}

func BtrieveDateColumn(name string, offset int) Column {
	return Column{Name: name, Offset: offset, Coder: coderBtrieveDate{}}
}

func PercentColumn(name string, offset int) Column {
	return Column{Name: name, Offset: offset, Coder: coderPercent{}}
}

func RelationTypeColumn(name string, offset int) Column {
	return Column{Name: name, Offset: offset, Coder: coderRelationType{}}
}

func DurationColumn(name string, offset int) Column {
	return Column{Name: name, Offset: offset, Coder: coderDuration{}}
}

type coderByte struct{}

func (coderByte) Kind() string { return "byte" }
func (coderByte) Size() int    { return 1 }
func (coderByte) Decode(b []byte) (any, bool) {
	return int(b[0]), true
}

type coderShort struct{}

func (coderShort) Kind() string { return "short" }
func (coderShort) Size() int    { return 2 }
func (coderShort) Decode(b []byte) (any, bool) {
	return int(binary.LittleEndian.Uint16(b)), true
}

type coderInt struct{}

func (coderInt) Kind() string { return "int" }
func (coderInt) Size() int    { return 4 }
func (coderInt) Decode(b []byte) (any, bool) {
	return int(binary.LittleEndian.Uint32(b)), true
}

type coderString struct {
	width int
}

func (coderString) Kind() string { return "string" }
func (c coderString) Size() int  { return c.width }
func (coderString) Decode(b []byte) (any, bool) {
	return string(b), true
}

// coderDate decodes a packed date: a 4 byte integer whose decimal rendering
// is YYYYMMDD followed by two ignored digits.
type coderDate struct{}

func (coderDate) Kind() string { return "date" }
func (coderDate) Size() int    { return 4 }
func (coderDate) Decode(b []byte) (any, bool) {
	t, ok := DecodePackedDate(binary.LittleEndian.Uint32(b))
	if !ok {
		return nil, false
	}
	return t, true
}

// DecodePackedDate converts a raw packed date value. Zero, numerals that are
// not exactly ten digits, out of range months or days, non-existent calendar
// dates and dates before DateEpoch are all reported as absent.
func DecodePackedDate(raw uint32) (time.Time, bool) {
	if raw == 0 {
		return time.Time{}, false
	}
	s := strconv.FormatUint(uint64(raw), 10)
	if len(s) != 10 {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[4:6])
	dayOfMonth, _ := strconv.Atoi(s[6:8])
	if month < 1 || month > 12 || dayOfMonth < 1 || dayOfMonth > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC)
	if t.Day() != dayOfMonth {
		return time.Time{}, false
	}
	if t.Before(DateEpoch) {
		return time.Time{}, false
	}
	return t, true
}

// coderBtrieveDate decodes the engine's native DATE type: day and month
// bytes followed by a little-endian 2 byte year.
type coderBtrieveDate struct{}

func (coderBtrieveDate) Kind() string { return "bdate" }
func (coderBtrieveDate) Size() int    { return 4 }
func (coderBtrieveDate) Decode(b []byte) (any, bool) {
	dayOfMonth := int(b[0])
	month := int(b[1])
	year := int(binary.LittleEndian.Uint16(b[2:4]))
	if year == 0 || month < 1 || month > 12 || dayOfMonth < 1 || dayOfMonth > 31 {
		return nil, false
	}
	t := time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC)
	if t.Day() != dayOfMonth || t.Before(DateEpoch) {
		return nil, false
	}
	return t, true
}

// EncodeBtrieveDate is the inverse of the native DATE decoder.
func EncodeBtrieveDate(t time.Time) [4]byte {
	var b [4]byte
	b[0] = byte(t.Day())
	b[1] = byte(t.Month())
	binary.LittleEndian.PutUint16(b[2:], uint16(t.Year()))
	return b
}

// EncodePackedDate is the inverse of DecodePackedDate for valid dates.
func EncodePackedDate(t time.Time) uint32 {
	return uint32(t.Year()*1000000 + int(t.Month())*10000 + t.Day()*100)
}

// coderPercent stores tenths of a percent in a signed 4 byte integer.
type coderPercent struct{}

func (coderPercent) Kind() string { return "percent" }
func (coderPercent) Size() int    { return 4 }
func (coderPercent) Decode(b []byte) (any, bool) {
	return float64(int32(binary.LittleEndian.Uint32(b))) / 10.0, true
}

var relationTypes = []domain.RelationType{
	domain.RelationStartFinish,
	domain.RelationStartStart,
	domain.RelationFinishStart,
	domain.RelationFinishFinish,
}

// DecodeRelationType maps a raw lag type code. Code 0 and any out of range
// code both collapse to StartFinish.
func DecodeRelationType(raw int) domain.RelationType {
	if raw < 0 || raw >= len(relationTypes) {
		return domain.RelationStartFinish
	}
	return relationTypes[raw]
}

type coderRelationType struct{}

func (coderRelationType) Kind() string { return "relation" }
func (coderRelationType) Size() int    { return 2 }
func (coderRelationType) Decode(b []byte) (any, bool) {
	return DecodeRelationType(int(binary.LittleEndian.Uint16(b))), true
}

// coderDuration stores whole working days in a signed 2 byte integer.
// Float values can be negative.
type coderDuration struct{}

func (coderDuration) Kind() string { return "duration" }
func (coderDuration) Size() int    { return 2 }
func (coderDuration) Decode(b []byte) (any, bool) {
	return domain.Days(float64(int16(binary.LittleEndian.Uint16(b)))), true
}
