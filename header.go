package lowpix

import (
	"encoding/binary"
	"fmt"

	"github.com/noxer/bytewriter"
)

// HeaderSize is the size of the header at the start of every block.
const HeaderSize = 4

// MaxSize is the largest buffer a block can describe. The original size is
// stored in 24 bits.
const MaxSize = 1<<24 - 1

// blockAlignment is the alignment of every encoded block. Hardware decoders
// read the payload in 32-bit units, so padding is mandatory.
const blockAlignment = 4

// Header is the decoded form of the first four bytes of a block.
type Header struct {
	Tag Tag
	// Size is the length of the buffer the block decodes to.
	Size int
}

// Word returns the header as the little-endian 32-bit word it occupies at the
// start of a block.
func (h Header) Word() uint32 {
	return uint32(h.Tag) | uint32(h.Size)<<8
}

// AlignedSize rounds n up to the block alignment.
func AlignedSize(n int) int {
	return (n + blockAlignment - 1) &^ (blockAlignment - 1)
}

// CheckSize returns [ErrInvalidInput] if a buffer of n bytes can't be encoded
// into a block.
func CheckSize(n int) error {
	if n <= 0 {
		return ErrInvalidInput.WithMessage("input is empty")
	}
	if n > MaxSize {
		return ErrInvalidInput.WithMessage(
			fmt.Sprintf("input is %d bytes, blocks hold at most %d", n, MaxSize))
	}
	return nil
}

// ParseHeader reads the header at the start of block and returns it along with
// the rest of the block. It doesn't check the tag.
func ParseHeader(block []byte) (Header, []byte, error) {
	cursor := NewCursor(block)
	word, err := cursor.ReadU32LE()
	if err != nil {
		return Header{}, nil, ErrCorruptBlock.Wrap(err)
	}
	return Header{Tag: Tag(word & 0xFF), Size: int(word >> 8)}, cursor.Remaining(), nil
}

// OpenBlock validates the header of a block that's expected to carry the given
// tag, and returns the header and payload.
//
// The tag is checked before anything else is parsed, so a truncated block of
// the wrong family reports [ErrFormatMismatch] rather than [ErrCorruptBlock].
func OpenBlock(block []byte, expected Tag) (Header, []byte, error) {
	if len(block) == 0 {
		return Header{}, nil, ErrInvalidInput.WithMessage("block is empty")
	}
	if Tag(block[0]) != expected {
		return Header{}, nil, ErrFormatMismatch.WithMessage(
			fmt.Sprintf("expected %s block, got %s", expected, Tag(block[0])))
	}

	header, payload, err := ParseHeader(block)
	if err != nil {
		return Header{}, nil, err
	}
	if header.Size == 0 {
		return Header{}, nil, ErrCorruptBlock.WithMessage("block declares zero-length output")
	}
	return header, payload, nil
}

// NewBlock assembles a block from its header fields and payload. The result is
// padded with null bytes to the block alignment.
func NewBlock(tag Tag, originalSize int, payload []byte) []byte {
	block := make([]byte, AlignedSize(HeaderSize+len(payload)))
	writer := bytewriter.New(block)

	// The slice is sized for both writes, so neither can come up short.
	binary.Write(writer, binary.LittleEndian, Header{Tag: tag, Size: originalSize}.Word())
	writer.Write(payload)
	return block
}
