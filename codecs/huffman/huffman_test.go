package huffman_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/dargueta/lowpix"
	"github.com/dargueta/lowpix/codecs/huffman"
	lowpixtest "github.com/dargueta/lowpix/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rootOffset is where the BIOS starts walking the node table.
const rootOffset = lowpix.HeaderSize + 1

// biosDecode decodes a Huffman block the way the GBA BIOS does, walking the
// node table one bit at a time.
func biosDecode(t *testing.T, block []byte) []byte {
	header, payload, err := lowpix.ParseHeader(block)
	require.NoError(t, err)
	require.Equal(t, lowpix.TagHuffman, header.Tag.Family())
	require.NotEmpty(t, payload)

	width := int(header.Tag &^ lowpix.TagHuffman)
	require.Contains(t, []int{4, 8}, width)

	tableEnd := lowpix.HeaderSize + (int(payload[0])+1)*2
	pos := tableEnd
	needed := header.Size * 8 / width
	symbols := make([]byte, 0, needed)

	addr := rootOffset
	for len(symbols) < needed {
		require.LessOrEqual(t, pos+4, len(block), "bitstream ran out")
		word := binary.LittleEndian.Uint32(block[pos:])
		pos += 4

		for bit := 31; bit >= 0 && len(symbols) < needed; bit-- {
			node := block[addr]
			child := (addr &^ 1) + int(node&0x3F)*2 + 2
			require.Less(t, child+1, tableEnd, "child of node at %#x is outside the table", addr)
			leaf := node&0x80 != 0
			if (word>>bit)&1 != 0 {
				child++
				leaf = node&0x40 != 0
			}

			if leaf {
				symbols = append(symbols, block[child])
				addr = rootOffset
			} else {
				addr = child
			}
		}
	}

	if width == 8 {
		return symbols
	}
	out := make([]byte, header.Size)
	for i := range out {
		out[i] = symbols[2*i]&0x0F | symbols[2*i+1]<<4
	}
	return out
}

func requireHuffmanRoundTrip(t *testing.T, encode lowpix.EncodeFunc, tag lowpix.Tag, data []byte) []byte {
	block, err := encode(data)
	require.NoError(t, err)
	lowpixtest.RequireValidBlock(t, block, tag, len(data))
	require.Equal(t, data, biosDecode(t, block))
	return block
}

// smallAlphabet returns random bytes drawn from the first n values.
func smallAlphabet(t *testing.T, size, n int) []byte {
	data := lowpixtest.CreateRandomBuffer(t, size)
	for i := range data {
		data[i] %= byte(n)
	}
	return data
}

func TestEncode8__Golden(t *testing.T) {
	block, err := huffman.Encode8([]byte("AAAB"))
	require.NoError(t, err)
	assert.Equal(
		t,
		[]byte{
			0x28, 4, 0, 0,
			0x01,
			0xC0, 'A', 'B',
			0x00, 0x00, 0x00, 0x10,
		},
		block,
	)
}

func TestEncode4__Golden(t *testing.T) {
	block, err := huffman.Encode4([]byte{0x11, 0x11, 0x11, 0x21})
	require.NoError(t, err)
	assert.Equal(
		t,
		[]byte{
			0x24, 4, 0, 0,
			0x01,
			0xC0, 0x01, 0x02,
			0x00, 0x00, 0x00, 0x01,
		},
		block,
	)
}

// Several tiers, and symbols that tie on weight: the table layout and the
// order of equal-weight siblings are both pinned down here.
func TestEncode8__GoldenTiers(t *testing.T) {
	data := bytes.Repeat([]byte("aaaabbccddeeffgh"), 4)
	block := requireHuffmanRoundTrip(t, huffman.Encode8, lowpix.TagHuffman8, data)
	assert.Equal(
		t,
		[]byte{
			0x28, 0x40, 0x00, 0x00,
			0x07,
			0x00, 0x00, 0x81, 0x81, 0xC2, 0x61, 0xC2, 0x63,
			0xC2, 0x66, 0x65, 0x64, 0x62, 0x67, 0x68,
			0x9B, 0x0D, 0xFC, 0xAA, 0xF0, 0xAB, 0x8E, 0x48,
			0x3A, 0x22, 0x6D, 0x36, 0xB4, 0xD9, 0xC0, 0xAF,
			0x03, 0xBF, 0xEA, 0x88, 0x00, 0x23, 0xD2, 0x66,
		},
		block,
	)
}

func TestEncode4__GoldenTiers(t *testing.T) {
	data := []byte{0x10, 0x32, 0x54, 0x76, 0x00, 0x00, 0x11, 0x10, 0x00, 0x00, 0x21, 0x43}
	block := requireHuffmanRoundTrip(t, huffman.Encode4, lowpix.TagHuffman4, data)
	assert.Equal(
		t,
		[]byte{
			0x24, 0x0C, 0x00, 0x00,
			0x07,
			0x40, 0x00, 0x00, 0x80, 0x01, 0x01, 0xC1, 0xC1,
			0xC2, 0x02, 0x04, 0x03, 0x06, 0x05, 0x07,
			0x7F, 0x65, 0x43, 0x82, 0x18, 0x12, 0x3C, 0x02,
		},
		block,
	)
}

func TestEncode__EmptyInput(t *testing.T) {
	for _, encode := range []lowpix.EncodeFunc{huffman.Encode4, huffman.Encode8} {
		block, err := encode(nil)
		assert.ErrorIs(t, err, lowpix.ErrInvalidInput)
		assert.Nil(t, block)

		block, err = encode([]byte{})
		assert.ErrorIs(t, err, lowpix.ErrInvalidInput)
		assert.Nil(t, block)
	}
}

func TestEncode__Deterministic(t *testing.T) {
	data := lowpixtest.CreateTileBuffer(t, 2048, 3)
	first, err := huffman.Encode4(data)
	require.NoError(t, err)
	second, err := huffman.Encode4(data)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncode8__SingleSymbol(t *testing.T) {
	block := requireHuffmanRoundTrip(t, huffman.Encode8, lowpix.TagHuffman8, make([]byte, 64))

	// The zero byte gets the one-bit code 0, paired with a leaf for 0x01 that
	// never appears in the bitstream.
	assert.Equal(t, []byte{0x01, 0xC0, 0x00, 0x01}, block[4:8])
	assert.Equal(t, make([]byte, 64/8), block[8:])
}

func TestEncode4__SingleSymbol(t *testing.T) {
	requireHuffmanRoundTrip(t, huffman.Encode4, lowpix.TagHuffman4, bytes.Repeat([]byte{0x77}, 40))
}

func TestEncode__UnalignedLengths(t *testing.T) {
	data := []byte("HUFFMAN-PADDING")
	for n := 1; n <= len(data); n++ {
		requireHuffmanRoundTrip(t, huffman.Encode8, lowpix.TagHuffman8, data[:n])
		requireHuffmanRoundTrip(t, huffman.Encode4, lowpix.TagHuffman4, data[:n])
	}
}

func TestEncode4__RandomRoundTrip(t *testing.T) {
	requireHuffmanRoundTrip(t, huffman.Encode4, lowpix.TagHuffman4, lowpixtest.CreateRandomBuffer(t, 3000))
}

func TestEncode4__Tiles(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		data := lowpixtest.CreateTileBuffer(t, 4096, seed)
		requireHuffmanRoundTrip(t, huffman.Encode4, lowpix.TagHuffman4, data)
	}
}

func TestEncode8__SmallAlphabetRoundTrip(t *testing.T) {
	// Up to 64 symbols the table can never outgrow the 6-bit child offsets.
	for _, n := range []int{2, 3, 17, 64} {
		data := smallAlphabet(t, 5000, n)
		block := requireHuffmanRoundTrip(t, huffman.Encode8, lowpix.TagHuffman8, data)
		if n <= 17 {
			assert.Less(t, len(block), len(data), "%d symbols should compress", n)
		}
	}
}

func TestEncode8__SkewedRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("aaaaaaaabbbbccde"), 100)
	block := requireHuffmanRoundTrip(t, huffman.Encode8, lowpix.TagHuffman8, data)

	// a=1 bit, b=2, c=3, d and e=4 bits, so 3000 bits in 94 words after a
	// nine-node table.
	assert.Equal(t, lowpix.AlignedSize(4+1+9+94*4), len(block))
}

func TestEncode8__TableTooWide(t *testing.T) {
	// 256 equally likely symbols give a complete tree of depth 8, and the
	// branches on the seventh tier can't reach their children.
	block, err := huffman.Encode8(lowpixtest.CreateDistinctBuffer(t, 256))
	assert.ErrorIs(t, err, lowpix.ErrEncodingOverflow)
	assert.Nil(t, block)
}
