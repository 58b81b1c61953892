// Package compression moves blocks between byte streams and files.
//
// The codecs work on whole buffers, since a block header has to carry the size
// of the data before any of it. The functions here read a stream to the end,
// encode or decode it in one go, and write the result.
//
// Blocks destined for a ROM are stored as-is. Assets kept around for other
// reasons, such as test fixtures, can be wrapped in gzip as well: gzip on top
// of RLE or LZ77 output usually shrinks it further. A reader never has to be told
// which was used; gzip streams are recognized by their magic number, and the
// codec by the block's tag byte.
package compression
