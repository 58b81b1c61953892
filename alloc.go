package lowpix

// Resize is the allocation primitive the codecs build their buffers with.
//
// A request for zero bytes releases buf and returns nil. Any other size returns
// a slice of exactly newSize bytes whose common prefix with buf is preserved;
// bytes past the old length are zero. The backing array is reused when it's
// large enough.
func Resize(buf []byte, newSize int) []byte {
	if newSize <= 0 {
		return nil
	}
	if newSize <= cap(buf) {
		oldLen := len(buf)
		buf = buf[:newSize]
		if newSize > oldLen {
			clear(buf[oldLen:])
		}
		return buf
	}

	resized := make([]byte, newSize)
	copy(resized, buf)
	return resized
}
