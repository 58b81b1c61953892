// Command unpackblock expands a single block, gzipped or not, into its raw
// bytes. The codec is picked from the block's tag.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dargueta/lowpix"
	"github.com/dargueta/lowpix/codecs"
	"github.com/dargueta/lowpix/utilities/compression"
)

const (
	exitUsage = 1
	exitBlock = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run does all the work of main and returns the exit status, so the files it
// opens are closed before the process exits.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 3 {
		fmt.Fprintf(
			stderr,
			"Expand a compressed block, gzipped or not.\nUsage: %s input-file output-file\n",
			args[0])
		return exitUsage
	}

	sourceFilePath := args[1]
	outputFilePath := args[2]

	sourceFile, err := os.Open(sourceFilePath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to open file for reading: `%v`: %s\n", sourceFilePath, err)
		return exitUsage
	}
	defer sourceFile.Close()

	block, err := compression.ReadBlock(sourceFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading block: %s\n", err)
		return exitBlock
	}
	header, _, err := lowpix.ParseHeader(block)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading block: %s\n", err)
		return exitBlock
	}

	// Nothing is created until the block decodes, so a bad block never leaves
	// an empty output file behind.
	data, err := codecs.Decode(block)
	if err != nil {
		fmt.Fprintf(stderr, "Error expanding %s block: %s\n", header.Tag, err)
		return exitBlock
	}

	if err := os.WriteFile(outputFilePath, data, 0o644); err != nil {
		fmt.Fprintf(stderr, "Failed to write `%v`: %s\n", outputFilePath, err)
		return exitUsage
	}

	fmt.Fprintf(stdout, "Expanded %s block to %d bytes.\n", header.Tag, len(data))
	return 0
}
