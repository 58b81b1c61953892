// Package huffman implements the Huffman encoder for the GBA BIOS format, with
// 4-bit (tag 0x24) and 8-bit (tag 0x28) symbols.
//
// Decoding is done by hardware, so only the encoder is provided.
//
// A block is laid out as
//
//	[tag][size u24][table size][node table][bitstream]
//
// The table size byte is (len(table)-1)/2. The bitstream is a sequence of
// little-endian 32-bit words, each read from the most significant bit down.
// Symbols are taken from the input a word at a time, least significant bits
// first, so a byte splits into its low nibble then its high nibble.
package huffman

import (
	"encoding/binary"

	"github.com/dargueta/lowpix"
)

// maxCodeLength is the first code length the encoder refuses.
const maxCodeLength = 32

// Encode4 compresses src into a block tagged [lowpix.TagHuffman4].
func Encode4(src []byte) ([]byte, error) {
	return encode(src, 4)
}

// Encode8 compresses src into a block tagged [lowpix.TagHuffman8].
//
// The node table can only point 63 node pairs ahead, so data with many
// distinct byte values is often rejected with [lowpix.ErrEncodingOverflow].
// Random bytes usually are, and input using all 256 values always is. Data
// using 64 or fewer distinct values always encodes.
func Encode8(src []byte) ([]byte, error) {
	return encode(src, 8)
}

func encode(src []byte, width int) ([]byte, error) {
	if err := lowpix.CheckSize(len(src)); err != nil {
		return nil, err
	}

	words := splitWords(src)
	freqs := countSymbols(words, width)

	t := buildTree(freqs)
	codes, err := t.codes()
	if err != nil {
		return nil, err
	}
	table, err := t.serialize(codes)
	if err != nil {
		return nil, err
	}

	packer := newBitPacker(len(words) * 4)
	perWord := 32 / width
	mask := uint32(1)<<width - 1
	for _, word := range words {
		for i := 0; i < perWord; i++ {
			packer.write(codes[(word>>(i*width))&mask])
		}
	}
	bits := packer.flush()

	payload := make([]byte, 0, 1+len(table)+len(bits))
	payload = append(payload, byte((len(table)-1)/2))
	payload = append(payload, table...)
	payload = append(payload, bits...)

	tag := lowpix.TagHuffman | lowpix.Tag(width)
	return lowpix.NewBlock(tag, len(src), payload), nil
}

// splitWords reads src as little-endian 32-bit words. A trailing partial word
// is padded with zeros.
func splitWords(src []byte) []uint32 {
	words := make([]uint32, (len(src)+3)/4)
	full := len(src) / 4
	for i := 0; i < full; i++ {
		words[i] = binary.LittleEndian.Uint32(src[i*4:])
	}
	if full < len(words) {
		var tail [4]byte
		copy(tail[:], src[full*4:])
		words[full] = binary.LittleEndian.Uint32(tail[:])
	}
	return words
}

func countSymbols(words []uint32, width int) []uint32 {
	freqs := make([]uint32, 1<<width)
	mask := uint32(1)<<width - 1
	for _, word := range words {
		for shift := 0; shift < 32; shift += width {
			freqs[(word>>shift)&mask]++
		}
	}
	return freqs
}
