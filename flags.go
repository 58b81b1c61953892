package lowpix

import "fmt"

// Tag is the first byte of a compressed block. It identifies the codec that
// produced the block, and for some families also carries a parameter in its
// low bits.
type Tag uint8

const (
	TagLZ77     Tag = 0x10
	TagHuffman  Tag = 0x20 // Family bits; the low nibble is the symbol width.
	TagHuffman4     = TagHuffman | 4
	TagHuffman8     = TagHuffman | 8
	TagRLE      Tag = 0x30
	TagDiff8    Tag = 0x81
	TagDiff16   Tag = 0x82
)

const familyMask = 0xF0

// Family returns the tag with the parameter bits cleared.
func (t Tag) Family() Tag {
	return t & familyMask
}

func (t Tag) String() string {
	switch t {
	case TagLZ77:
		return "lz77"
	case TagHuffman4:
		return "huff4"
	case TagHuffman8:
		return "huff8"
	case TagRLE:
		return "rle"
	case TagDiff8:
		return "diff8"
	case TagDiff16:
		return "diff16"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(t))
	}
}
