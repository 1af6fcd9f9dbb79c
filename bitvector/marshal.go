package bitvector

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
)

const headerBytes = 8

// marshal encodes a vector as a json string holding the base64 of an
// 8-byte big-endian size followed by the packed bytes.
func marshal(size int, buf []byte) ([]byte, error) {
	raw := make([]byte, headerBytes, headerBytes+len(buf))
	binary.BigEndian.PutUint64(raw, uint64(size))
	raw = append(raw, buf...)
	return json.Marshal(base64.URLEncoding.EncodeToString(raw))
}

func unmarshal(data []byte) (int, []byte, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, nil, invalidData("%v", err)
	}
	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return 0, nil, invalidData("%v", err)
	}
	if len(raw) < headerBytes {
		return 0, nil, invalidData("missing size header")
	}
	size64 := binary.BigEndian.Uint64(raw[:headerBytes])
	buf := raw[headerBytes:]
	if size64 > uint64(len(buf))*8 {
		return 0, nil, invalidData("size %d doesn't fit in %d bytes", size64, len(buf))
	}
	size := int(size64)
	if err := validateBuffer(buf, size); err != nil {
		return 0, nil, err
	}
	return size, buf, nil
}

func validateBuffer(buf []byte, size int) error {
	if len(buf) != byteLen(size) {
		return invalidData("expected %d bytes for size %d, got %d", byteLen(size), size, len(buf))
	}
	if hasDirtyPadding(buf, size) {
		return invalidData("padding bits past size %d are set", size)
	}
	return nil
}
