// Package codecs is the registry of every codec family, and decodes a block
// without knowing in advance which family produced it.
package codecs

import (
	"fmt"
	"strings"

	"github.com/dargueta/lowpix"
	"github.com/dargueta/lowpix/codecs/diff"
	"github.com/dargueta/lowpix/codecs/huffman"
	"github.com/dargueta/lowpix/codecs/lz77"
	"github.com/dargueta/lowpix/codecs/rle"
)

var registry = []lowpix.Codec{
	{Name: "lz77", Tag: lowpix.TagLZ77, Encode: lz77.Encode, Decode: lz77.Decode},
	{Name: "huff4", Tag: lowpix.TagHuffman4, Encode: huffman.Encode4},
	{Name: "huff8", Tag: lowpix.TagHuffman8, Encode: huffman.Encode8},
	{Name: "rle", Tag: lowpix.TagRLE, Encode: rle.Encode, Decode: rle.Decode},
	{Name: "diff8", Tag: lowpix.TagDiff8, Encode: diff.Encode8, Decode: diff.Decode},
	{Name: "diff16", Tag: lowpix.TagDiff16, Encode: diff.Encode16, Decode: diff.Decode},
}

// All returns every registered codec, ordered by tag.
func All() []lowpix.Codec {
	result := make([]lowpix.Codec, len(registry))
	copy(result, registry)
	return result
}

// Names returns the names of all registered codecs.
func Names() []string {
	names := make([]string, len(registry))
	for i, codec := range registry {
		names[i] = codec.Name
	}
	return names
}

// Lookup finds a codec by name. Names are matched case-insensitively.
func Lookup(name string) (lowpix.Codec, error) {
	for _, codec := range registry {
		if strings.EqualFold(codec.Name, name) {
			return codec, nil
		}
	}
	return lowpix.Codec{}, lowpix.ErrInvalidInput.WithMessage(
		fmt.Sprintf("unknown codec %q, expected one of %s", name, strings.Join(Names(), ", ")))
}

// ForTag finds the codec that produces blocks with the given tag.
func ForTag(tag lowpix.Tag) (lowpix.Codec, error) {
	for _, codec := range registry {
		if codec.Tag == tag {
			return codec, nil
		}
	}
	return lowpix.Codec{}, lowpix.ErrFormatMismatch.WithMessage(
		fmt.Sprintf("no codec produces blocks tagged %s", tag))
}

// Decode decodes a block of any family. Families only hardware can decode
// return [lowpix.ErrNotSupported].
func Decode(block []byte) ([]byte, error) {
	if len(block) == 0 {
		return nil, lowpix.ErrInvalidInput.WithMessage("block is empty")
	}

	codec, err := ForTag(lowpix.Tag(block[0]))
	if err != nil {
		return nil, err
	}
	if !codec.CanDecode() {
		return nil, lowpix.ErrNotSupported.WithMessage(
			fmt.Sprintf("%s blocks can't be decoded in software", codec.Name))
	}
	return codec.Decode(block)
}
