package lowpix

// EncodeFunc transforms a raw buffer into a complete block. Implementations
// must not retain src or the returned slice.
type EncodeFunc func(src []byte) ([]byte, error)

// DecodeFunc reverses an [EncodeFunc] of the same family. It must check the
// block's tag before reading anything else.
type DecodeFunc func(block []byte) ([]byte, error)

// Codec describes one codec family.
type Codec struct {
	// Name is the short, lowercase name used on the command line.
	Name string
	// Tag is the tag byte of every block Encode produces.
	Tag Tag
	// Encode is never nil.
	Encode EncodeFunc
	// Decode is nil for families only ever decoded by fixed-function hardware.
	Decode DecodeFunc
}

// CanDecode reports whether the codec ships a decoder.
func (c Codec) CanDecode() bool {
	return c.Decode != nil
}

// RoundTrip encodes src and, if the codec can decode, decodes the result. The
// decoded buffer is nil for encode-only codecs.
func (c Codec) RoundTrip(src []byte) (block, decoded []byte, err error) {
	block, err = c.Encode(src)
	if err != nil {
		return nil, nil, err
	}
	if !c.CanDecode() {
		return block, nil, nil
	}

	decoded, err = c.Decode(block)
	if err != nil {
		return block, nil, err
	}
	return block, decoded, nil
}
