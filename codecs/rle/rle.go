// Package rle implements the run-length codec used for tile and map data on
// the GBA (block tag 0x30).
//
// The payload is a sequence of records, each starting with a flag byte:
//
//	0xxxxxxx  followed by x+1 literal bytes (1..128)
//	1xxxxxxx  followed by one byte, repeated x+3 times (3..130)
//
// Runs of two equal bytes are cheaper as literals, so a run only starts once
// three equal bytes have been seen.
package rle

import (
	"fmt"

	"github.com/dargueta/lowpix"
)

const (
	minRun     = 3
	maxRun     = 0x7F + minRun
	maxLiteral = 0x80
	runFlag    = 0x80
)

// Encode compresses src into a block tagged [lowpix.TagRLE].
//
// The segmentation is greedy and matches GRIT's encoder byte for byte:
// pending literals are flushed as soon as they would reach 128 bytes, even if
// the last of them could have started a run.
func Encode(src []byte) ([]byte, error) {
	if err := lowpix.CheckSize(len(src)); err != nil {
		return nil, err
	}

	// Alternating bytes can make the output larger than the input: one flag byte
	// per 128 literals.
	out := lowpix.Resize(nil, len(src)+len(src)/maxLiteral+1)[:0]

	size := len(src)
	prev := src[0]
	curr := prev
	runLength := 1
	pending := 0

	// The loop goes one past the last byte so the final segment gets flushed.
	for i := 1; i <= size; i++ {
		if i != size {
			curr = src[i]
		}
		if runLength == maxRun || i == size {
			// Force a mismatch to close the current run.
			prev = ^curr
		}

		if runLength < minRun && (pending+runLength >= maxLiteral || i == size) {
			pending += runLength
			out = appendLiterals(out, src[i-pending:i])
			pending = 0
			runLength = 1
		} else if curr == prev {
			runLength++
			if runLength == minRun && pending > 0 {
				out = appendLiterals(out, src[i-pending-2:i-2])
				pending = 0
			}
		} else {
			if runLength >= minRun {
				out = append(out, runFlag|byte(runLength-minRun), src[i-1])
				pending = -1
				runLength = 1
			}
			pending += runLength
			runLength = 1
		}
		prev = curr
	}

	return lowpix.NewBlock(lowpix.TagRLE, size, out), nil
}

func appendLiterals(out []byte, literals []byte) []byte {
	out = append(out, byte(len(literals)-1))
	return append(out, literals...)
}

// Decode expands a block produced by [Encode].
//
// Decoding stops as soon as the declared size is reached; a record that would
// overshoot it is truncated, and anything after it is ignored.
func Decode(block []byte) ([]byte, error) {
	header, payload, err := lowpix.OpenBlock(block, lowpix.TagRLE)
	if err != nil {
		return nil, err
	}

	out := lowpix.Resize(nil, header.Size)
	src := 0
	for dst := 0; dst < header.Size; {
		if src >= len(payload) {
			return nil, truncated(dst, header.Size)
		}
		flag := payload[src]
		src++

		if flag&runFlag != 0 {
			count := min(int(flag&^runFlag)+minRun, header.Size-dst)
			if src >= len(payload) {
				return nil, truncated(dst, header.Size)
			}
			value := payload[src]
			src++
			for end := dst + count; dst < end; dst++ {
				out[dst] = value
			}
		} else {
			count := min(int(flag)+1, header.Size-dst)
			if src+count > len(payload) {
				return nil, truncated(dst, header.Size)
			}
			dst += copy(out[dst:dst+count], payload[src:src+count])
			src += count
		}
	}

	return out, nil
}

func truncated(produced, expected int) error {
	return lowpix.ErrCorruptBlock.WithMessage(
		fmt.Sprintf("payload ends after %d of %d bytes", produced, expected))
}
