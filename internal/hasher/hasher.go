package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// DefaultHexLen is the hash length recorded in reports: 16 hex chars (64
// bits), collision-safe for any realistic number of outputs.
const DefaultHexLen = 16

// ContentHash computes the xxHash64 of data and returns it as hex,
// truncated to hexLen characters (0 or out of range = full 16).
func ContentHash(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// ContentHashReader computes xxHash64 from a reader, streaming.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64(), hexLen), nil
}

// Short returns the first n characters of a hash, for file names.
func Short(hash string, n int) string {
	if n <= 0 || n >= len(hash) {
		return hash
	}
	return hash[:n]
}

func format(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
