package compression

import (
	"bytes"
	"io"

	"github.com/dargueta/lowpix"
	"github.com/dargueta/lowpix/codecs"
	"github.com/klauspost/compress/gzip"
)

// gzipMagic is the first two bytes of every gzip stream. No block tag starts
// with 0x1F, so the two can't be confused.
var gzipMagic = []byte{0x1F, 0x8B}

// Options controls how [CompressStream] stores a block.
type Options struct {
	// Gzip wraps the block in a gzip stream. Useful for storing many assets in a
	// repository, not for shipping them to hardware.
	Gzip bool
	// GzipLevel is the gzip compression level. Zero means the best compression.
	GzipLevel int
}

type countingWriter struct {
	writer  io.Writer
	written int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.writer.Write(p)
	w.written += int64(n)
	return n, err
}

// CompressStream reads all of input, encodes it into one block with the given
// codec, and writes the block to output.
//
// The returned int64 gives the number of bytes written to the output stream. If
// an error occurred, the value is undefined and should not be used.
func CompressStream(
	input io.Reader,
	output io.Writer,
	codec lowpix.Codec,
	options Options,
) (int64, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return 0, err
	}
	block, err := codec.Encode(data)
	if err != nil {
		return 0, err
	}

	counter := &countingWriter{writer: output}
	if !options.Gzip {
		_, err = counter.Write(block)
		return counter.written, err
	}

	level := options.GzipLevel
	if level == 0 {
		// The assets are small so we won't notice much of a speed difference
		// between the default and highest levels.
		level = gzip.BestCompression
	}
	gzWriter, err := gzip.NewWriterLevel(counter, level)
	if err != nil {
		return 0, err
	}
	if _, err = gzWriter.Write(block); err != nil {
		gzWriter.Close()
		return counter.written, err
	}
	err = gzWriter.Close()
	return counter.written, err
}

// DecompressStream reads a block, gzipped or not, decodes it with whichever
// codec its tag names, and writes the original bytes to output.
//
// The returned int64 gives the number of bytes written to the output (i.e. the
// decompressed size). If an error occurred, the value is undefined and should
// not be used.
func DecompressStream(input io.Reader, output io.Writer) (int64, error) {
	data, err := DecompressToBytes(input)
	if err != nil {
		return 0, err
	}
	n, err := output.Write(data)
	return int64(n), err
}

// DecompressToBytes is [DecompressStream] returning the decoded data instead of
// writing it to a stream.
func DecompressToBytes(input io.Reader) ([]byte, error) {
	block, err := ReadBlock(input)
	if err != nil {
		return nil, err
	}
	return codecs.Decode(block)
}

// ReadBlock reads a whole block from input, removing the gzip layer if there is
// one.
func ReadBlock(input io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(input)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(raw, gzipMagic) {
		return raw, nil
	}

	gzReader, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, lowpix.ErrCorruptBlock.Wrap(err)
	}
	defer gzReader.Close()

	block, err := io.ReadAll(gzReader)
	if err != nil {
		return nil, lowpix.ErrCorruptBlock.Wrap(err)
	}
	return block, nil
}
