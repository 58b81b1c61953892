package huffman

import "encoding/binary"

// bitPacker accumulates codes into 32-bit words, filling each word from the
// most significant bit down.
type bitPacker struct {
	out   []byte
	chunk uint32
	free  int
}

func newBitPacker(capacity int) *bitPacker {
	return &bitPacker{out: make([]byte, 0, capacity), free: 32}
}

func (p *bitPacker) write(c code) {
	p.free -= c.length
	if p.free < 0 {
		// The code straddles two words.
		p.chunk |= c.bits >> uint(-p.free)
		p.out = binary.LittleEndian.AppendUint32(p.out, p.chunk)
		p.free += 32
		p.chunk = c.bits << uint(p.free)
	} else {
		p.chunk |= c.bits << uint(p.free)
	}
}

// flush emits the last, partially filled word and returns everything written.
func (p *bitPacker) flush() []byte {
	if p.free != 32 {
		p.out = binary.LittleEndian.AppendUint32(p.out, p.chunk)
		p.chunk = 0
		p.free = 32
	}
	return p.out
}
