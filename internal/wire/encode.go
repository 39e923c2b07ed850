package wire

import (
	"fmt"
	"math"
)

// Encode serializes values, keyed by field name, to protobuf wire
// format per schema. Absent non-repeated fields emit nothing. Repeated
// scalar fields (varint, fixed32, fixed64 families) are emitted packed
// by default — one tag followed by a single length-delimited run of
// concatenated element encodings; string/bytes/message elements can't
// be packed under the wire format and always emit one tag per element.
// The decoder accepts either framing regardless.
func Encode(schema Schema, values map[string]any) ([]byte, error) {
	var buf []byte
	for _, fd := range schema {
		raw, present := values[fd.Name]
		if !present || raw == nil {
			continue
		}
		wt, ok := wireTypeFor(fd.Type)
		if !ok {
			return nil, &SchemaError{Reason: fmt.Sprintf("field %q: unencodable type %q", fd.Name, fd.Type)}
		}
		if fd.Repeated {
			elems, ok := raw.([]any)
			if !ok {
				return nil, &InvalidValueError{Field: fd.Name, Reason: "repeated field value is not an array"}
			}
			if wt != wireBytes {
				var packed []byte
				for _, elem := range elems {
					payload, err := encodeScalarPayload(fd, elem)
					if err != nil {
						return nil, err
					}
					packed = append(packed, payload...)
				}
				if len(packed) > 0 {
					buf = appendVarint(buf, tagFor(fd.Number, wireBytes))
					buf = appendLengthDelimited(buf, packed)
				}
				continue
			}
			for _, elem := range elems {
				buf = appendVarint(buf, tagFor(fd.Number, wt))
				payload, err := encodeScalarPayload(fd, elem)
				if err != nil {
					return nil, err
				}
				buf = append(buf, payload...)
			}
			continue
		}
		buf = appendVarint(buf, tagFor(fd.Number, wt))
		payload, err := encodeScalarPayload(fd, raw)
		if err != nil {
			return nil, err
		}
		buf = append(buf, payload...)
	}
	return buf, nil
}

func tagFor(number, wireType int) uint64 {
	return uint64(number)<<3 | uint64(wireType)
}

func encodeScalarPayload(fd FieldDescriptor, value any) ([]byte, error) {
	switch fd.Type {
	case TypeDouble:
		f, err := asFloat(fd.Name, value)
		if err != nil {
			return nil, err
		}
		return appendFixed64(nil, math.Float64bits(f)), nil
	case TypeFloat:
		f, err := asFloat(fd.Name, value)
		if err != nil {
			return nil, err
		}
		return appendFixed32(nil, math.Float32bits(float32(f))), nil
	case TypeInt32, TypeUint32, TypeEnum:
		n, err := asInt64(fd.Name, value)
		if err != nil {
			return nil, err
		}
		return appendVarint(nil, uint64(uint32(n))), nil
	case TypeInt64, TypeUint64:
		n, err := asInt64(fd.Name, value)
		if err != nil {
			return nil, err
		}
		return appendVarint(nil, uint64(n)), nil
	case TypeSint32:
		n, err := asInt64(fd.Name, value)
		if err != nil {
			return nil, err
		}
		return appendVarint(nil, uint64(zigzagEncode32(int32(n)))), nil
	case TypeSint64:
		n, err := asInt64(fd.Name, value)
		if err != nil {
			return nil, err
		}
		return appendVarint(nil, zigzagEncode64(n)), nil
	case TypeFixed32, TypeSfixed32:
		n, err := asInt64(fd.Name, value)
		if err != nil {
			return nil, err
		}
		return appendFixed32(nil, uint32(n)), nil
	case TypeFixed64, TypeSfixed64:
		n, err := asInt64(fd.Name, value)
		if err != nil {
			return nil, err
		}
		return appendFixed64(nil, uint64(n)), nil
	case TypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, &InvalidValueError{Field: fd.Name, Reason: "expected boolean"}
		}
		if b {
			return appendVarint(nil, 1), nil
		}
		return appendVarint(nil, 0), nil
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return nil, &InvalidValueError{Field: fd.Name, Reason: "expected string"}
		}
		return appendLengthDelimited(nil, []byte(s)), nil
	case TypeBytes:
		s, ok := value.(string)
		if !ok {
			return nil, &InvalidValueError{Field: fd.Name, Reason: "expected base64 string"}
		}
		raw, err := base64Decode(fd.Name, s)
		if err != nil {
			return nil, err
		}
		return appendLengthDelimited(nil, raw), nil
	case TypeMessage:
		nested, ok := value.(map[string]any)
		if !ok {
			return nil, &InvalidValueError{Field: fd.Name, Reason: "expected message object"}
		}
		sub, err := Encode(fd.Fields, nested)
		if err != nil {
			return nil, err
		}
		return appendLengthDelimited(nil, sub), nil
	default:
		return nil, &SchemaError{Reason: fmt.Sprintf("field %q: unknown type %q", fd.Name, fd.Type)}
	}
}

func appendFixed32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendFixed64(buf []byte, v uint64) []byte {
	return append(buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

func appendLengthDelimited(buf, payload []byte) []byte {
	buf = appendVarint(buf, uint64(len(payload)))
	return append(buf, payload...)
}

// asInt64 accepts either a JSON float64 (the common case for 32-bit
// fields) or a decimal string (64-bit fields cross the JSON boundary as
// strings, since a JS number can't represent the full 64-bit range).
func asInt64(field string, value any) (int64, error) {
	switch v := value.(type) {
	case float64:
		return int64(v), nil
	case string:
		var n int64
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			return 0, &InvalidValueError{Field: field, Reason: "not a valid integer string"}
		}
		return n, nil
	default:
		return 0, &InvalidValueError{Field: field, Reason: "expected number or numeric string"}
	}
}

func asFloat(field string, value any) (float64, error) {
	f, ok := value.(float64)
	if !ok {
		return 0, &InvalidValueError{Field: field, Reason: "expected number"}
	}
	return f, nil
}
