package wire

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// Decode parses data against schema, returning a map keyed by field
// name. Repeated fields always start as an empty slice even when absent
// from the wire; unknown fields are skipped per their wire type rather
// than rejected.
func Decode(schema Schema, data []byte) (map[string]any, error) {
	byNumber := make(map[int]FieldDescriptor, len(schema))
	result := make(map[string]any, len(schema))
	for _, fd := range schema {
		byNumber[fd.Number] = fd
		if fd.Repeated {
			result[fd.Name] = []any{}
		}
	}

	off := 0
	for off < len(data) {
		tag, next, err := readVarint(data, off)
		if err != nil {
			return nil, err
		}
		off = next

		number := int(tag >> 3)
		wt := int(tag & 0x7)

		fd, known := byNumber[number]
		if !known {
			off, err = skipField(data, off, wt)
			if err != nil {
				return nil, err
			}
			continue
		}

		naturalWT, _ := wireTypeFor(fd.Type)
		if fd.Repeated && naturalWT != wireBytes && wt == wireBytes {
			values, n, err := decodePacked(fd, data, off)
			if err != nil {
				return nil, err
			}
			off = n
			result[fd.Name] = append(result[fd.Name].([]any), values...)
			continue
		}
		if wt != naturalWT {
			return nil, &DecodeError{Reason: fmt.Sprintf("field %q: wire type %d does not match type %q", fd.Name, wt, fd.Type)}
		}

		value, n, err := decodeScalarValue(fd, data, off, wt)
		if err != nil {
			return nil, err
		}
		off = n

		if value == nil {
			continue
		}
		if fd.Repeated {
			result[fd.Name] = append(result[fd.Name].([]any), value)
		} else {
			result[fd.Name] = value
		}
	}

	return result, nil
}

func skipField(data []byte, off, wt int) (int, error) {
	switch wt {
	case wireVarint:
		_, n, err := readVarint(data, off)
		return n, err
	case wireFixed64:
		if off+8 > len(data) {
			return off, &DecodeError{Reason: "truncated fixed64 while skipping"}
		}
		return off + 8, nil
	case wireFixed32:
		if off+4 > len(data) {
			return off, &DecodeError{Reason: "truncated fixed32 while skipping"}
		}
		return off + 4, nil
	case wireBytes:
		length, n, err := readVarint(data, off)
		if err != nil {
			return off, err
		}
		end := n + int(length)
		if end > len(data) || end < n {
			return off, &DecodeError{Reason: "length-delimited payload overflow while skipping"}
		}
		return end, nil
	default:
		return off, &DecodeError{Reason: fmt.Sprintf("unrecognised wire type %d", wt)}
	}
}

// decodePacked unpacks a length-delimited payload into a stream of
// natural-encoding scalar elements — decoders accept packed repeated
// scalars regardless of which framing the encoder chose.
func decodePacked(fd FieldDescriptor, data []byte, off int) ([]any, int, error) {
	length, start, err := readVarint(data, off)
	if err != nil {
		return nil, off, err
	}
	end := start + int(length)
	if end > len(data) || end < start {
		return nil, off, &DecodeError{Reason: "length-delimited payload overflow"}
	}
	payload := data[start:end]

	var values []any
	p := 0
	for p < len(payload) {
		v, n, err := decodeScalarValue(fd, payload, p, 0)
		if err != nil {
			return nil, off, err
		}
		p = n
		values = append(values, v)
	}
	return values, end, nil
}

// decodeScalarValue decodes one payload value per fd's declared type,
// independent of the wire type actually read (which the caller has
// already matched against fd's natural wire type or the packed case).
func decodeScalarValue(fd FieldDescriptor, data []byte, off, wt int) (any, int, error) {
	switch fd.Type {
	case TypeDouble:
		bits, n, err := readFixed64(data, off)
		if err != nil {
			return nil, off, err
		}
		f := math.Float64frombits(bits)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, n, nil
		}
		return f, n, nil
	case TypeFloat:
		bits, n, err := readFixed32(data, off)
		if err != nil {
			return nil, off, err
		}
		f := math.Float32frombits(bits)
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return nil, n, nil
		}
		return float64(f), n, nil
	case TypeInt32:
		v, n, err := readVarint(data, off)
		if err != nil {
			return nil, off, err
		}
		return float64(int32(uint32(v))), n, nil
	case TypeUint32:
		v, n, err := readVarint(data, off)
		if err != nil {
			return nil, off, err
		}
		return float64(uint32(v)), n, nil
	case TypeEnum:
		v, n, err := readVarint(data, off)
		if err != nil {
			return nil, off, err
		}
		return float64(int32(uint32(v))), n, nil
	case TypeSint32:
		v, n, err := readVarint(data, off)
		if err != nil {
			return nil, off, err
		}
		return float64(zigzagDecode32(uint32(v))), n, nil
	case TypeInt64:
		v, n, err := readVarint(data, off)
		if err != nil {
			return nil, off, err
		}
		return strconv.FormatInt(int64(v), 10), n, nil
	case TypeUint64:
		v, n, err := readVarint(data, off)
		if err != nil {
			return nil, off, err
		}
		return strconv.FormatUint(v, 10), n, nil
	case TypeSint64:
		v, n, err := readVarint(data, off)
		if err != nil {
			return nil, off, err
		}
		return strconv.FormatInt(zigzagDecode64(v), 10), n, nil
	case TypeFixed32:
		v, n, err := readFixed32(data, off)
		if err != nil {
			return nil, off, err
		}
		return float64(v), n, nil
	case TypeSfixed32:
		v, n, err := readFixed32(data, off)
		if err != nil {
			return nil, off, err
		}
		return float64(int32(v)), n, nil
	case TypeFixed64:
		v, n, err := readFixed64(data, off)
		if err != nil {
			return nil, off, err
		}
		return strconv.FormatUint(v, 10), n, nil
	case TypeSfixed64:
		v, n, err := readFixed64(data, off)
		if err != nil {
			return nil, off, err
		}
		return strconv.FormatInt(int64(v), 10), n, nil
	case TypeBool:
		v, n, err := readVarint(data, off)
		if err != nil {
			return nil, off, err
		}
		return v != 0, n, nil
	case TypeString:
		raw, n, err := readLengthDelimited(data, off)
		if err != nil {
			return nil, off, err
		}
		if !utf8.Valid(raw) {
			return nil, off, &DecodeError{Reason: fmt.Sprintf("field %q: invalid UTF-8", fd.Name)}
		}
		return string(raw), n, nil
	case TypeBytes:
		raw, n, err := readLengthDelimited(data, off)
		if err != nil {
			return nil, off, err
		}
		return base64Encode(raw), n, nil
	case TypeMessage:
		raw, n, err := readLengthDelimited(data, off)
		if err != nil {
			return nil, off, err
		}
		nested, err := Decode(fd.Fields, raw)
		if err != nil {
			return nil, off, err
		}
		return nested, n, nil
	default:
		return nil, off, &SchemaError{Reason: fmt.Sprintf("field %q: unknown type %q", fd.Name, fd.Type)}
	}
}

func readFixed32(data []byte, off int) (uint32, int, error) {
	if off+4 > len(data) {
		return 0, off, &DecodeError{Reason: "insufficient bytes for fixed32"}
	}
	v := uint32(data[off]) | uint32(data[off+1])<<8 | uint32(data[off+2])<<16 | uint32(data[off+3])<<24
	return v, off + 4, nil
}

func readFixed64(data []byte, off int) (uint64, int, error) {
	if off+8 > len(data) {
		return 0, off, &DecodeError{Reason: "insufficient bytes for fixed64"}
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(data[off+i]) << (8 * i)
	}
	return v, off + 8, nil
}

func readLengthDelimited(data []byte, off int) ([]byte, int, error) {
	length, start, err := readVarint(data, off)
	if err != nil {
		return nil, off, err
	}
	end := start + int(length)
	if end > len(data) || end < start {
		return nil, off, &DecodeError{Reason: "length-delimited payload overflow"}
	}
	return data[start:end], end, nil
}
