// Package diff implements the differential filters the GBA BIOS can undo
// (block tags 0x81 and 0x82).
//
// A filter doesn't shrink anything by itself. It turns smooth data such as
// gradients or sampled audio into small, repetitive deltas that a real codec
// then compresses better.
package diff

import (
	"encoding/binary"
	"fmt"

	"github.com/dargueta/lowpix"
)

// Encode8 replaces every byte but the first with its difference from the byte
// before it, modulo 256.
func Encode8(src []byte) ([]byte, error) {
	if err := lowpix.CheckSize(len(src)); err != nil {
		return nil, err
	}

	out := make([]byte, len(src))
	out[0] = src[0]
	for i := 1; i < len(src); i++ {
		out[i] = src[i] - src[i-1]
	}
	return lowpix.NewBlock(lowpix.TagDiff8, len(src), out), nil
}

// Encode16 is [Encode8] over little-endian 16-bit units. len(src) must be even.
func Encode16(src []byte) ([]byte, error) {
	if err := lowpix.CheckSize(len(src)); err != nil {
		return nil, err
	}
	if len(src)%2 != 0 {
		return nil, lowpix.ErrInvalidInput.WithMessage(
			fmt.Sprintf("16-bit filter needs an even number of bytes, got %d", len(src)))
	}

	out := make([]byte, len(src))
	prev := uint16(0)
	for i := 0; i < len(src); i += 2 {
		curr := binary.LittleEndian.Uint16(src[i:])
		binary.LittleEndian.PutUint16(out[i:], curr-prev)
		prev = curr
	}
	return lowpix.NewBlock(lowpix.TagDiff16, len(src), out), nil
}

// Decode undoes either filter, depending on the block's tag.
func Decode(block []byte) ([]byte, error) {
	if len(block) == 0 {
		return nil, lowpix.ErrInvalidInput.WithMessage("block is empty")
	}

	tag := lowpix.Tag(block[0])
	if tag != lowpix.TagDiff8 && tag != lowpix.TagDiff16 {
		return nil, lowpix.ErrFormatMismatch.WithMessage(
			fmt.Sprintf("expected a diff block, got %s", tag))
	}

	header, payload, err := lowpix.OpenBlock(block, tag)
	if err != nil {
		return nil, err
	}
	if len(payload) < header.Size {
		return nil, lowpix.ErrCorruptBlock.WithMessage(
			fmt.Sprintf("payload has %d of %d bytes", len(payload), header.Size))
	}

	out := lowpix.Resize(nil, header.Size)
	if tag == lowpix.TagDiff8 {
		var acc byte
		for i := range out {
			acc += payload[i]
			out[i] = acc
		}
		return out, nil
	}

	if header.Size%2 != 0 {
		return nil, lowpix.ErrCorruptBlock.WithMessage(
			fmt.Sprintf("16-bit filter block declares odd size %d", header.Size))
	}
	var acc uint16
	for i := 0; i < header.Size; i += 2 {
		acc += binary.LittleEndian.Uint16(payload[i:])
		binary.LittleEndian.PutUint16(out[i:], acc)
	}
	return out, nil
}
