// Package report measures how well each codec does on a set of assets, and
// checks along the way that everything decodable decodes back to the original.
package report

import (
	"encoding/hex"
	"io"

	"github.com/dargueta/lowpix"
	"github.com/gocarina/gocsv"
	"github.com/zeebo/blake3"
)

// Options controls what [Measure] includes.
type Options struct {
	// Baselines adds rows for general-purpose compressors, to put the ratios of
	// the hardware formats into perspective.
	Baselines bool
}

// Row is the outcome of compressing one file with one codec.
type Row struct {
	File       string  `csv:"file"`
	Codec      string  `csv:"codec"`
	Tag        string  `csv:"tag"`
	InputSize  int     `csv:"input_size"`
	OutputSize int     `csv:"output_size"`
	Ratio      float64 `csv:"ratio"`
	// Verified is true if the output was decoded and matched the input. It's
	// always false for encode-only codecs.
	Verified bool `csv:"verified"`
	// Digest is the BLAKE3 hash of the input, so rows for the same file can be
	// matched up even when names differ.
	Digest string `csv:"blake3"`
	Error  string `csv:"error"`
}

func digest(data []byte) [32]byte {
	return blake3.Sum256(data)
}

func newRow(name string, data []byte, sum [32]byte) Row {
	return Row{
		File:      name,
		InputSize: len(data),
		Digest:    hex.EncodeToString(sum[:]),
	}
}

func (r *Row) setOutput(size int) {
	r.OutputSize = size
	if r.InputSize > 0 {
		r.Ratio = float64(size) / float64(r.InputSize)
	}
}

// Measure compresses data with every codec given and returns one row per codec,
// followed by the baselines if requested. A codec failing doesn't stop the
// others; its row carries the error instead.
func Measure(name string, data []byte, codecList []lowpix.Codec, options Options) []Row {
	sum := digest(data)
	rows := make([]Row, 0, len(codecList)+2)

	for _, codec := range codecList {
		row := newRow(name, data, sum)
		row.Codec = codec.Name
		row.Tag = codec.Tag.String()

		block, decoded, err := codec.RoundTrip(data)
		if block != nil {
			row.setOutput(len(block))
		}
		if err != nil {
			row.Error = err.Error()
		} else if decoded != nil {
			row.Verified = digest(decoded) == sum
		}
		rows = append(rows, row)
	}

	if options.Baselines {
		for _, baseline := range baselines {
			row := newRow(name, data, sum)
			row.Codec = baseline.name
			row.Tag = "-"

			compressed, decoded, err := baseline.roundTrip(data)
			if compressed != nil {
				row.setOutput(len(compressed))
			}
			if err != nil {
				row.Error = err.Error()
			} else {
				row.Verified = digest(decoded) == sum
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteCSV writes rows to output as CSV, with a header line.
func WriteCSV(output io.Writer, rows []Row) error {
	return gocsv.Marshal(&rows, output)
}
