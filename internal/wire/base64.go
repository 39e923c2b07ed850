package wire

import "encoding/base64"

// base64Encode is a straight RFC-4648 encoder with "=" padding — the
// bridge bytes fields use crossing the JSON boundary.
func base64Encode(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// base64Decode tolerates missing trailing padding (RawStdEncoding) in
// addition to the fully padded form; any character outside the standard
// alphabet fails with InvalidValueError.
func base64Decode(field, s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	if b, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return nil, &InvalidValueError{Field: field, Reason: "not valid base64"}
}
