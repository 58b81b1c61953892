// Package testing provides helpers shared by the codec test suites.
package testing

import (
	"crypto/rand"
	"io"
	mathrand "math/rand"
	"testing"

	"github.com/dargueta/lowpix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// CreateRandomBuffer returns size bytes of random data. It's guaranteed to
// either return a valid slice or fail the test and abort.
func CreateRandomBuffer(t *testing.T, size int) []byte {
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to fill %d bytes with random data", size)
	return data
}

// CreateDistinctBuffer returns size bytes in which every value occurs at most
// once, so no substring of any length is ever repeated. size must be at most
// 256.
func CreateDistinctBuffer(t *testing.T, size int) []byte {
	require.LessOrEqual(t, size, 256, "can't have more than 256 distinct bytes")

	data := make([]byte, size)
	for i := range data {
		// Multiplying by an odd number permutes the bytes so the buffer isn't
		// just a counter.
		data[i] = byte(i * 167)
	}
	return data
}

// CreateTileBuffer returns deterministic data resembling 4bpp tile graphics:
// long runs of a background color, short repeated patterns and some noise.
func CreateTileBuffer(t *testing.T, size int, seed int64) []byte {
	rng := mathrand.New(mathrand.NewSource(seed))
	data := make([]byte, 0, size)
	pattern := []byte{0x11, 0x21, 0x12, 0x22, 0x31, 0x13}

	for len(data) < size {
		switch rng.Intn(4) {
		case 0:
			fill := byte(rng.Intn(4)) * 0x11
			for n := rng.Intn(200) + 1; n > 0; n-- {
				data = append(data, fill)
			}
		case 1:
			for n := rng.Intn(6) + 1; n > 0; n-- {
				data = append(data, pattern...)
			}
		case 2:
			for n := rng.Intn(32) + 1; n > 0; n-- {
				data = append(data, byte(rng.Intn(256)))
			}
		default:
			if len(data) > 0 {
				// Copy something from earlier on, like a repeated tile.
				start := rng.Intn(len(data))
				end := min(len(data), start+rng.Intn(64)+1)
				data = append(data, data[start:end]...)
			}
		}
	}
	return data[:size]
}

// RequireValidBlock checks the invariants every block must satisfy: the tag,
// the declared size, and the alignment.
func RequireValidBlock(t *testing.T, block []byte, tag lowpix.Tag, originalSize int) {
	require.GreaterOrEqual(t, len(block), lowpix.HeaderSize, "block is shorter than its header")
	assert.EqualValues(t, tag, block[0], "wrong tag byte")
	assert.Equal(
		t,
		originalSize,
		int(block[1])|int(block[2])<<8|int(block[3])<<16,
		"wrong original size in header",
	)
	assert.Zero(t, len(block)%4, "block length %d isn't a multiple of 4", len(block))
}

// RequireRoundTrip encodes data with the codec, checks the block, and if the
// codec can decode, checks that decoding gives back the original.
func RequireRoundTrip(t *testing.T, codec lowpix.Codec, data []byte) []byte {
	block, decoded, err := codec.RoundTrip(data)
	require.NoError(t, err, "round trip through %s failed", codec.Name)
	RequireValidBlock(t, block, codec.Tag, len(data))
	t.Logf("%s: %d -> %d bytes", codec.Name, len(data), len(block))

	if codec.CanDecode() {
		require.Equal(t, len(data), len(decoded), "decoded length is wrong")
		require.Equal(t, data, decoded, "decoded data doesn't match the original")
	}
	return block
}

// OpenBlockStream returns a seekable stream over a copy of block. Writes to the
// stream don't affect the original slice.
func OpenBlockStream(t *testing.T, block []byte) io.ReadWriteSeeker {
	require.NotEmpty(t, block, "block is empty")
	backing := make([]byte, len(block))
	copy(backing, block)
	return bytesextra.NewReadWriteSeeker(backing)
}
