package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dargueta/lowpix/codecs"
	lowpixtest "github.com/dargueta/lowpix/testing"
	"github.com/dargueta/lowpix/utilities/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBlock(t *testing.T, path, codecName string, data []byte, gzip bool) {
	codec, err := codecs.Lookup(codecName)
	require.NoError(t, err)

	output := bytes.Buffer{}
	_, err = compression.CompressStream(
		bytes.NewReader(data), &output, codec, compression.Options{Gzip: gzip})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, output.Bytes(), 0o644))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	data := lowpixtest.CreateTileBuffer(t, 1024, 4)

	for _, gzip := range []bool{false, true} {
		input := filepath.Join(dir, "map.lz77")
		output := filepath.Join(dir, "map.bin")
		writeBlock(t, input, "lz77", data, gzip)

		stdout := bytes.Buffer{}
		stderr := bytes.Buffer{}
		require.Equal(t, 0, run([]string{"unpackblock", input, output}, &stdout, &stderr), stderr.String())
		assert.Equal(t, "Expanded lz77 block to 1024 bytes.\n", stdout.String())

		result, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, data, result)
	}
}

func TestRun__Usage(t *testing.T) {
	stderr := bytes.Buffer{}
	assert.Equal(t, exitUsage, run([]string{"unpackblock", "only-one"}, &bytes.Buffer{}, &stderr))
	assert.Contains(t, stderr.String(), "Usage:")

	dir := t.TempDir()
	status := run(
		[]string{"unpackblock", filepath.Join(dir, "missing"), filepath.Join(dir, "out")},
		&bytes.Buffer{},
		&bytes.Buffer{})
	assert.Equal(t, exitUsage, status)
}

func TestRun__BadBlockLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.bin")

	// Truncated LZ77 stream.
	corrupt := filepath.Join(dir, "corrupt.lz77")
	require.NoError(t, os.WriteFile(corrupt, []byte{0x10, 0x40, 0x00, 0x00, 0x00, 'a'}, 0o644))

	// Huffman blocks can't be decoded.
	huffman := filepath.Join(dir, "in.huff")
	writeBlock(t, huffman, "huff8", []byte("AAAB"), false)

	for _, input := range []string{corrupt, huffman} {
		stderr := bytes.Buffer{}
		assert.Equal(t, exitBlock, run([]string{"unpackblock", input, output}, &bytes.Buffer{}, &stderr))
		assert.Contains(t, stderr.String(), "Error expanding")
		assert.NoFileExists(t, output)
	}
}
