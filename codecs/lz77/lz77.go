// Package lz77 implements the LZSS variant decoded by the GBA BIOS (block tag
// 0x10).
//
// The payload is a sequence of groups. Each group starts with a flag byte whose
// bits, most significant first, describe up to eight units: a 0 bit is one
// literal byte, a 1 bit is a two-byte back-reference
//
//	[ (length-3)<<4 | (distance-1)>>8 ][ (distance-1) & 0xFF ]
//
// copying 3..18 bytes from 1..4096 bytes back.
package lz77

import (
	"fmt"

	"github.com/dargueta/lowpix"
)

// Encode compresses src into a block tagged [lowpix.TagLZ77].
//
// Matches at distance 1 are never emitted, so blocks are safe to decompress
// straight into VRAM.
func Encode(src []byte) ([]byte, error) {
	if err := lowpix.CheckSize(len(src)); err != nil {
		return nil, err
	}

	index := newMatchIndex()
	out := make([]byte, 0, len(src)+len(src)/8+16)

	// The lookahead starts at the end of the ring, so the space before it is
	// the zeroed half of a fresh index.
	s, r := 0, ringSize-maxMatch
	in := 0
	length := 0
	for ; length < maxMatch && in < len(src); length++ {
		index.text[r+length] = src[in]
		in++
	}
	index.insert(r)

	flagPos := 0
	mask := byte(0)
	for length > 0 {
		if mask == 0 {
			flagPos = len(out)
			out = append(out, 0)
			mask = 0x80
		}

		matchPos, matchLen := index.longestMatch()
		matchLen = min(matchLen, length)
		if matchLen <= threshold {
			matchLen = 1
			out = append(out, index.text[r])
		} else {
			out[flagPos] |= mask
			distance := ((r - matchPos) & ringMask) - 1
			out = append(
				out,
				byte((matchLen-(threshold+1))<<4|distance>>8),
				byte(distance),
			)
		}
		mask >>= 1

		i := 0
		for ; i < matchLen && in < len(src); i++ {
			index.remove(s)
			index.put(s, src[in])
			in++
			s = (s + 1) & ringMask
			r = (r + 1) & ringMask
			index.insert(r)
		}
		// Past the end of the input the lookahead only shrinks.
		for ; i < matchLen; i++ {
			index.remove(s)
			s = (s + 1) & ringMask
			r = (r + 1) & ringMask
			length--
			if length > 0 {
				index.insert(r)
			}
		}
	}

	return lowpix.NewBlock(lowpix.TagLZ77, len(src), out), nil
}

// Decode expands a block produced by [Encode] or any other encoder of the same
// format.
//
// Back-references are copied a byte at a time, so one that overlaps the bytes
// it produces repeats them. Output beyond the declared size is dropped.
func Decode(block []byte) ([]byte, error) {
	header, payload, err := lowpix.OpenBlock(block, lowpix.TagLZ77)
	if err != nil {
		return nil, err
	}

	out := lowpix.Resize(nil, header.Size)
	src := 0
	flags := byte(0)
	mask := byte(0)

	for dst := 0; dst < header.Size; mask >>= 1 {
		if mask == 0 {
			if src >= len(payload) {
				return nil, truncated(dst, header.Size)
			}
			flags = payload[src]
			src++
			mask = 0x80
		}

		if flags&mask == 0 {
			if src >= len(payload) {
				return nil, truncated(dst, header.Size)
			}
			out[dst] = payload[src]
			src++
			dst++
			continue
		}

		if src+2 > len(payload) {
			return nil, truncated(dst, header.Size)
		}
		count := int(payload[src]>>4) + threshold + 1
		distance := (int(payload[src]&0x0F)<<8 | int(payload[src+1])) + 1
		src += 2

		if distance > dst {
			return nil, lowpix.ErrCorruptBlock.WithMessage(
				fmt.Sprintf(
					"back-reference at offset %d reaches %d bytes before the start",
					dst,
					distance-dst,
				),
			)
		}

		for end := min(dst+count, header.Size); dst < end; dst++ {
			out[dst] = out[dst-distance]
		}
	}

	return out, nil
}

func truncated(produced, expected int) error {
	return lowpix.ErrCorruptBlock.WithMessage(
		fmt.Sprintf("payload ends after %d of %d bytes", produced, expected))
}
