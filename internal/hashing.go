package internal

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// AsXXHash builds a 128 bit XXH3 digest over the concatenated inputs. Fast
// and collision-resistant enough for cache keys.
func AsXXHash(inputs ...[]byte) []byte {
	h := xxh3.New()
	for _, input := range inputs {
		// The xxh3 writer never fails.
		_, _ = h.Write(input)
	}

	sum := h.Sum128()
	key := make([]byte, 16)
	binary.LittleEndian.PutUint64(key[:8], sum.Lo)
	binary.LittleEndian.PutUint64(key[8:], sum.Hi)
	return key
}
